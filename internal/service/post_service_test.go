package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/testutil"
)

func strPtr(s string) *string { return &s }

func TestPostService_CreateWithImage(t *testing.T) {
	db := testutil.NewDB(t)
	f := newFixture(t, db, FeedOptions{PageSize: 10})
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "auth")
	group := testutil.CreateGroup(t, db, "slug_slug")
	before := testutil.CountRows(t, db, &model.Post{})

	post, err := f.posts.Create(ctx, user.ID, PostInput{
		Text:    "Текст нового поста",
		GroupID: strPtr(group.ID),
		Image:   &Upload{Filename: "my_gif.gif", Reader: bytes.NewReader(testutil.GIF)},
	})
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.CountRows(t, db, &model.Post{}))
	assert.Equal(t, "posts/my_gif.gif", post.Image)
	require.NotNil(t, post.GroupID)
	assert.Equal(t, group.ID, *post.GroupID)

	ok, err := f.media.Exists(ctx, post.Image)
	require.NoError(t, err)
	assert.True(t, ok)

	again, err := f.posts.Create(ctx, user.ID, PostInput{
		Text:  "Ещё один",
		Image: &Upload{Filename: "my_gif.gif", Reader: bytes.NewReader(testutil.GIF)},
	})
	require.NoError(t, err)
	assert.NotEqual(t, post.Image, again.Image)
	assert.True(t, strings.HasPrefix(again.Image, "posts/my_gif_"))
}

func TestPostService_CreateValidation(t *testing.T) {
	db := testutil.NewDB(t)
	f := newFixture(t, db, FeedOptions{PageSize: 10})
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "auth")

	tests := []struct {
		name  string
		in    PostInput
		field string
	}{
		{"empty text", PostInput{Text: "   "}, "text"},
		{"unknown group", PostInput{Text: "ok", GroupID: strPtr("missing")}, "group"},
		{"not an image", PostInput{Text: "ok", Image: &Upload{Filename: "a.gif", Reader: strings.NewReader("plain text")}}, "image"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.posts.Create(ctx, user.ID, tt.in)
			require.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, FieldErrors(err), tt.field)
		})
	}
	assert.EqualValues(t, 0, testutil.CountRows(t, db, &model.Post{}))

	_, err := f.posts.Create(ctx, "", PostInput{Text: "ok"})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestPostService_Edit(t *testing.T) {
	db := testutil.NewDB(t)
	f := newFixture(t, db, FeedOptions{PageSize: 10})
	ctx := context.Background()
	author := testutil.CreateUser(t, db, "author")
	group := testutil.CreateGroup(t, db, "g")
	post := testutil.CreatePost(t, db, author, group, "Старый текст", 1)

	edited, err := f.posts.Edit(ctx, post.ID, author.ID, PostInput{Text: "Изменённый текст"})
	require.NoError(t, err)
	assert.Equal(t, post.ID, edited.ID)
	assert.Equal(t, "Изменённый текст", edited.Text)
	require.NotNil(t, edited.GroupID)
	assert.Equal(t, group.ID, *edited.GroupID)
	assert.True(t, edited.CreatedAt.Equal(post.CreatedAt))
	assert.EqualValues(t, 1, testutil.CountRows(t, db, &model.Post{}))

	cleared, err := f.posts.Edit(ctx, post.ID, author.ID, PostInput{Text: "Без группы", GroupID: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, cleared.GroupID)
}

func TestPostService_EditByNonAuthorIsForbidden(t *testing.T) {
	db := testutil.NewDB(t)
	f := newFixture(t, db, FeedOptions{PageSize: 10})
	ctx := context.Background()
	author := testutil.CreateUser(t, db, "author")
	other := testutil.CreateUser(t, db, "other")
	post := testutil.CreatePost(t, db, author, nil, "Оригинал", 1)

	_, err := f.posts.Edit(ctx, post.ID, other.ID, PostInput{Text: "Взлом"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.posts.Delete(ctx, post.ID, other.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	var stored model.Post
	require.NoError(t, db.First(&stored, "id = ?", post.ID).Error)
	assert.Equal(t, "Оригинал", stored.Text)
}

func TestPostService_EditReplacesImage(t *testing.T) {
	db := testutil.NewDB(t)
	f := newFixture(t, db, FeedOptions{PageSize: 10})
	ctx := context.Background()
	author := testutil.CreateUser(t, db, "author")

	post, err := f.posts.Create(ctx, author.ID, PostInput{
		Text:  "С картинкой",
		Image: &Upload{Filename: "first.gif", Reader: bytes.NewReader(testutil.GIF)},
	})
	require.NoError(t, err)

	edited, err := f.posts.Edit(ctx, post.ID, author.ID, PostInput{
		Text:  "С другой картинкой",
		Image: &Upload{Filename: "second.gif", Reader: bytes.NewReader(testutil.GIF)},
	})
	require.NoError(t, err)
	assert.Equal(t, "posts/second.gif", edited.Image)

	old, err := f.media.Exists(ctx, "posts/first.gif")
	require.NoError(t, err)
	assert.False(t, old)
}

func TestPostService_DeleteRemovesComments(t *testing.T) {
	db := testutil.NewDB(t)
	f := newFixture(t, db, FeedOptions{PageSize: 10})
	ctx := context.Background()
	author := testutil.CreateUser(t, db, "author")
	post := testutil.CreatePost(t, db, author, nil, "post", 1)
	_, err := f.comments.Add(ctx, post.ID, author.ID, "comment")
	require.NoError(t, err)

	deleted, err := f.posts.Delete(ctx, post.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, deleted.ID)
	assert.EqualValues(t, 0, testutil.CountRows(t, db, &model.Post{}))
	assert.EqualValues(t, 0, testutil.CountRows(t, db, &model.Comment{}))

	_, err = f.posts.Delete(ctx, post.ID, author.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCleanFilename(t *testing.T) {
	assert.Equal(t, "my_gif.gif", cleanFilename("my gif.gif"))
	assert.Equal(t, "passwd", cleanFilename("../../etc/passwd"))
	assert.Equal(t, "a.png", cleanFilename(`C:\tmp\a.png`))
	assert.Equal(t, "upload", cleanFilename(".."))
	assert.Equal(t, "a.b.gif", cleanFilename("a...b.gif"))
}
