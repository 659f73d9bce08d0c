package repository_test

import (
    "context"
    "fmt"
    "math/rand"
    "testing"
    "time"

    "github.com/d60-Lab/yatube/internal/model"
    "github.com/d60-Lab/yatube/internal/repository"
    "github.com/d60-Lab/yatube/internal/testutil"
)

func BenchmarkFollowWrite(b *testing.B) {
    db := testutil.NewDB(b)
    followRepo := repository.NewFollowRepository(db)
    ctx := context.Background()

    // 预创建部分用户
    users := make([]model.User, 1000)
    for i := range users { users[i] = model.User{ID: fmt.Sprintf("u%04d", i), Username: fmt.Sprintf("u%04d", i), Email: fmt.Sprintf("u%04d@example.com", i), Password: "p"} }
    if err := db.Create(&users).Error; err != nil { b.Fatalf("seed users: %v", err) }

    rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
    b.ResetTimer()
    for i := 0; i < b.N; i++ {
        from := users[rnd.Intn(len(users))].ID
        to := users[rnd.Intn(len(users))].ID
        if from == to { continue }
        _ = followRepo.Create(ctx, from, to)
    }
}

func BenchmarkQueryFollowersAndFeed(b *testing.B) {
    db := testutil.NewDB(b)
    followRepo := repository.NewFollowRepository(db)
    postRepo := repository.NewPostRepository(db)
    ctx := context.Background()

    // 构造：u0 有 N 个粉丝，同时 u0 关注这 N 个用户，每人 2 篇帖子
    const N = 2000
    u0 := model.User{ID: "u0", Username: "u0", Email: "u0@example.com", Password: "p"}
    _ = db.Create(&u0).Error
    base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
    for i := 1; i <= N; i++ {
        uid := fmt.Sprintf("u%v", i)
        _ = db.Create(&model.User{ID: uid, Username: uid, Email: uid + "@example.com", Password: "p"}).Error
        _ = followRepo.Create(ctx, uid, u0.ID)
        _ = followRepo.Create(ctx, u0.ID, uid)
        for j := 0; j < 2; j++ {
            p := model.Post{ID: fmt.Sprintf("%s-p%d", uid, j), Text: "bench", AuthorID: uid, CreatedAt: base.Add(time.Duration(i*2+j) * time.Second)}
            _ = db.Omit("Author", "Group").Create(&p).Error
        }
    }

    b.ResetTimer()
    b.Run("ListFollowers", func(b *testing.B) {
        for i := 0; i < b.N; i++ {
            _, _ = followRepo.ListFollowers(ctx, u0.ID, 0, 50)
        }
    })

    b.Run("ListFollowings", func(b *testing.B) {
        for i := 0; i < b.N; i++ {
            _, _ = followRepo.ListFollowings(ctx, u0.ID, 0, 50)
        }
    })

    b.Run("FollowFeedPage", func(b *testing.B) {
        f := repository.PostFilter{FollowerID: u0.ID}
        for i := 0; i < b.N; i++ {
            _, _ = postRepo.Count(ctx, f)
            _, _ = postRepo.List(ctx, f, 0, 10)
        }
    })
}
