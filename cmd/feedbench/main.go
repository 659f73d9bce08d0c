package main

import (
    "context"
    "fmt"
    "math"
    "os"
    "sort"
    "strconv"
    "time"

    "github.com/redis/go-redis/v9"

    "github.com/d60-Lab/yatube/config"
    "github.com/d60-Lab/yatube/internal/model"
    "github.com/d60-Lab/yatube/internal/repository"
    "github.com/d60-Lab/yatube/internal/service"
    "github.com/d60-Lab/yatube/pkg/cache"
    "github.com/d60-Lab/yatube/pkg/database"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

func pct(vs []time.Duration, p float64) time.Duration {
    if len(vs) == 0 { return 0 }
    xs := append([]time.Duration(nil), vs...)
    sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
    k := int(math.Ceil(p*float64(len(xs)))) - 1
    if k < 0 { k = 0 }
    if k >= len(xs) { k = len(xs)-1 }
    return xs[k]
}

func avg(vs []time.Duration) time.Duration {
    if len(vs) == 0 { return 0 }
    var sum time.Duration
    for _, d := range vs { sum += d }
    return sum / time.Duration(len(vs))
}

func measure(n int, fn func(i int) error) []time.Duration {
    out := make([]time.Duration, 0, n)
    for i := 0; i < n; i++ {
        st := time.Now()
        if err := fn(i); err != nil { panic(err) }
        out = append(out, time.Since(st))
    }
    return out
}

func report(name string, ds []time.Duration) {
    fmt.Printf("%-28s n=%d avg=%v p50=%v p95=%v p99=%v\n", name, len(ds), avg(ds), pct(ds, 0.50), pct(ds, 0.95), pct(ds, 0.99))
}

// 对已有数据（见 cmd/seed）测量首页（缓存/不缓存）、分组页与关注流的读取延迟
func main() {
    cfg := must(config.Load())
    db := must(database.InitDB(cfg))
    defer func() { _ = database.Close(db) }()

    ROUNDS := 200
    PAGES := 5
    if s := os.Getenv("ROUNDS"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { ROUNDS = v } }
    if s := os.Getenv("PAGES"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { PAGES = v } }

    posts := repository.NewPostRepository(db)
    groups := repository.NewGroupRepository(db)
    users := repository.NewUserRepository(db)
    follows := repository.NewFollowRepository(db)
    comments := repository.NewCommentRepository(db)
    opts := service.FeedOptions{PageSize: cfg.Feed.PageSize}

    var pageCache cache.PageCache = cache.NewMemoryCache(cfg.Cache.Size, cfg.Cache.TTL)
    if cfg.Redis.Addr != "" {
        client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
        defer client.Close()
        pageCache = cache.NewRedisCache(client, "yatube:bench:", cfg.Cache.TTL)
    }
    cached := service.NewFeedService(posts, groups, users, follows, comments, pageCache, opts)
    uncached := service.NewFeedService(posts, groups, users, follows, comments, nil, opts)

    ctx := context.Background()
    _ = cached.Clear(ctx)
    page := func(i int) string { return strconv.Itoa(i%PAGES + 1) }

    report("index (no cache)", measure(ROUNDS, func(i int) error { _, err := uncached.Global(ctx, page(i)); return err }))
    report("index (cache)", measure(ROUNDS, func(i int) error { _, err := cached.Global(ctx, page(i)); return err }))

    var g model.Group
    if err := db.Order("slug").First(&g).Error; err == nil {
        report("group "+g.Slug, measure(ROUNDS, func(i int) error { _, err := cached.Group(ctx, g.Slug, page(i)); return err }))
    }

    // 关注数最多的用户的关注流
    var top struct {
        FollowerID string
        N          int64
    }
    err := db.Model(&model.Follow{}).Select("follower_id, count(*) AS n").Group("follower_id").Order("n DESC").Limit(1).Scan(&top).Error
    if err == nil && top.FollowerID != "" {
        report(fmt.Sprintf("follow feed (%d authors)", top.N), measure(ROUNDS, func(i int) error { _, err := cached.Follow(ctx, top.FollowerID, page(i)); return err }))
    }
    _ = cached.Clear(ctx)
}
