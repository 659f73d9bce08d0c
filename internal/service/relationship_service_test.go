package service

import (
    "context"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/d60-Lab/yatube/internal/model"
    "github.com/d60-Lab/yatube/internal/testutil"
)

func TestRelationshipService_FollowIsIdempotent(t *testing.T) {
    db := testutil.NewDB(t)
    f := newFixture(t, db, FeedOptions{PageSize: 10})
    ctx := context.Background()
    author := testutil.CreateUser(t, db, "author")
    follower := testutil.CreateUser(t, db, "follower")

    require.NoError(t, f.rel.Follow(ctx, follower.ID, author.Username))
    require.NoError(t, f.rel.Follow(ctx, follower.ID, author.Username))
    assert.EqualValues(t, 1, testutil.CountRows(t, db, &model.Follow{}))
}

func TestRelationshipService_SelfFollowIsNoop(t *testing.T) {
    db := testutil.NewDB(t)
    f := newFixture(t, db, FeedOptions{PageSize: 10})
    user := testutil.CreateUser(t, db, "author")

    require.NoError(t, f.rel.Follow(context.Background(), user.ID, user.Username))
    assert.EqualValues(t, 0, testutil.CountRows(t, db, &model.Follow{}))
}

func TestRelationshipService_Unfollow(t *testing.T) {
    db := testutil.NewDB(t)
    f := newFixture(t, db, FeedOptions{PageSize: 10})
    ctx := context.Background()
    author := testutil.CreateUser(t, db, "author")
    follower := testutil.CreateUser(t, db, "follower")

    // 没有关注关系时取消关注不改变计数
    require.NoError(t, f.rel.Unfollow(ctx, follower.ID, author.Username))
    assert.EqualValues(t, 0, testutil.CountRows(t, db, &model.Follow{}))

    testutil.Follow(t, db, follower, author)
    require.NoError(t, f.rel.Unfollow(ctx, follower.ID, author.Username))
    assert.EqualValues(t, 0, testutil.CountRows(t, db, &model.Follow{}))
}

func TestRelationshipService_Errors(t *testing.T) {
    db := testutil.NewDB(t)
    f := newFixture(t, db, FeedOptions{PageSize: 10})
    ctx := context.Background()
    user := testutil.CreateUser(t, db, "user")

    assert.ErrorIs(t, f.rel.Follow(ctx, user.ID, "ghost"), ErrNotFound)
    assert.ErrorIs(t, f.rel.Unfollow(ctx, user.ID, "ghost"), ErrNotFound)
    assert.ErrorIs(t, f.rel.Follow(ctx, "", user.Username), ErrUnauthenticated)
}

func TestRelationshipService_Lists(t *testing.T) {
    db := testutil.NewDB(t)
    f := newFixture(t, db, FeedOptions{PageSize: 2})
    ctx := context.Background()
    author := testutil.CreateUser(t, db, "author")
    fans := []*model.User{
        testutil.CreateUser(t, db, "fan1"),
        testutil.CreateUser(t, db, "fan2"),
        testutil.CreateUser(t, db, "fan3"),
    }
    for _, fan := range fans {
        require.NoError(t, f.rel.Follow(ctx, fan.ID, author.Username))
    }

    first, err := f.rel.ListFollowers(ctx, author.Username, "1")
    require.NoError(t, err)
    assert.Equal(t, 2, first.Len())
    assert.EqualValues(t, 3, first.Count)
    assert.True(t, first.HasNext())

    second, err := f.rel.ListFollowers(ctx, author.Username, "2")
    require.NoError(t, err)
    assert.Equal(t, 1, second.Len())

    following, err := f.rel.ListFollowing(ctx, "fan1", "")
    require.NoError(t, err)
    require.Equal(t, 1, following.Len())
    assert.Equal(t, "author", following.Items[0].Username)
}
