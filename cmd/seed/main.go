package main

import (
    "context"
    "fmt"
    "math/rand"
    "os"
    "strconv"
    "time"

    "github.com/google/uuid"
    "go.uber.org/zap"
    "golang.org/x/crypto/bcrypt"

    "github.com/d60-Lab/yatube/config"
    "github.com/d60-Lab/yatube/internal/model"
    "github.com/d60-Lab/yatube/internal/repository"
    "github.com/d60-Lab/yatube/internal/service"
    "github.com/d60-Lab/yatube/pkg/database"
    "github.com/d60-Lab/yatube/pkg/logger"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

func envInt(key string, def int) int {
    if s := os.Getenv(key); s != "" {
        if v, err := strconv.Atoi(s); err == nil && v > 0 { return v }
    }
    return def
}

// 本地开发用的演示数据：USERS 个用户（密码统一为 PASSWORD），GROUPS 个分组，
// 每人 POSTS 篇帖子，每人随机关注 FOLLOWS 个作者。
func main() {
    cfg := must(config.Load())
    _ = logger.Init(cfg.Log.Level, cfg.Log.Format)
    defer logger.Sync()
    db := must(database.InitDB(cfg))
    defer func() { _ = database.Close(db) }()
    if err := repository.Migrate(db); err != nil { panic(err) }

    USERS := envInt("USERS", 50)
    GROUPS := envInt("GROUPS", 5)
    POSTS := envInt("POSTS", 20)
    FOLLOWS := envInt("FOLLOWS", 10)
    password := os.Getenv("PASSWORD")
    if password == "" { password = "yatube-demo" }

    ctx := context.Background()
    rel := service.NewRelationshipService(repository.NewUserRepository(db), repository.NewFollowRepository(db), cfg.Feed.PageSize)
    hash := must(bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost))

    groups := make([]model.Group, GROUPS)
    for i := range groups {
        groups[i] = model.Group{ID: uuid.New().String(), Title: fmt.Sprintf("Группа %d", i+1), Slug: fmt.Sprintf("group-%d", i+1), Description: "Демонстрационная группа"}
    }
    if err := db.CreateInBatches(&groups, 500).Error; err != nil { panic(err) }

    users := make([]model.User, USERS)
    for i := range users {
        id := uuid.New().String()
        users[i] = model.User{ID: id, Username: "user" + id[:8], Email: id[:8] + "@example.com", Password: string(hash)}
    }
    if err := db.CreateInBatches(&users, 1000).Error; err != nil { panic(err) }

    // created_at 从一天前开始递增，feed 的顺序可预测
    start := time.Now().Add(-24 * time.Hour)
    posts := make([]model.Post, 0, USERS*POSTS)
    for i, u := range users {
        for j := 0; j < POSTS; j++ {
            p := model.Post{
                ID:        uuid.New().String(),
                Text:      fmt.Sprintf("Пост %d пользователя %s", j+1, u.Username),
                AuthorID:  u.ID,
                CreatedAt: start.Add(time.Duration(i*POSTS+j) * time.Second),
            }
            if j%2 == 0 && GROUPS > 0 {
                gid := groups[(i+j)%GROUPS].ID
                p.GroupID = &gid
            }
            posts = append(posts, p)
        }
    }
    if err := db.Omit("Author", "Group").CreateInBatches(&posts, 1000).Error; err != nil { panic(err) }

    rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
    edges := 0
    for _, u := range users {
        for k := 0; k < FOLLOWS && k < USERS-1; k++ {
            author := users[rnd.Intn(USERS)]
            if err := rel.Follow(ctx, u.ID, author.Username); err != nil { panic(err) }
            edges++
        }
    }

    logger.Info("seed done",
        zap.Int("users", USERS), zap.Int("groups", GROUPS), zap.Int("posts", len(posts)), zap.Int("follow_calls", edges))
    fmt.Printf("USERS=%d GROUPS=%d POSTS=%d FOLLOWS=%d password=%q\n", USERS, GROUPS, len(posts), FOLLOWS, password)
    if len(users) > 0 { fmt.Printf("login as %s\n", users[0].Username) }
}
