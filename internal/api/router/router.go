package router

import (
	"net/http"
	"slices"
	"strings"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/config"
	_ "github.com/d60-Lab/yatube/docs"
	"github.com/d60-Lab/yatube/internal/api/handler"
	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/internal/web"
	"github.com/d60-Lab/yatube/pkg/cache"
	"github.com/d60-Lab/yatube/pkg/storage"
)

// Deps 组装好的服务
type Deps struct {
	Feed     *service.FeedService
	Posts    *service.PostService
	Comments *service.CommentService
	Rel      service.RelationshipService
	Accounts *service.AccountService
	Media    storage.Storage
}

// NewDeps 用同一个 db 构建全部仓储与服务
func NewDeps(cfg *config.Config, db *gorm.DB, pageCache cache.PageCache, media storage.Storage) *Deps {
	posts := repository.NewPostRepository(db)
	groups := repository.NewGroupRepository(db)
	users := repository.NewUserRepository(db)
	follows := repository.NewFollowRepository(db)
	comments := repository.NewCommentRepository(db)

	feed := service.NewFeedService(posts, groups, users, follows, comments, pageCache, service.FeedOptions{
		PageSize:          cfg.Feed.PageSize,
		InvalidateOnWrite: cfg.Cache.InvalidateOnWrite,
	})
	return &Deps{
		Feed:     feed,
		Posts:    service.NewPostService(posts, groups, media, feed),
		Comments: service.NewCommentService(posts, comments),
		Rel:      service.NewRelationshipService(users, follows, cfg.Feed.PageSize),
		Accounts: service.NewAccountService(users, service.TokenOptions{
			Secret: cfg.JWT.Secret,
			Expire: cfg.JWT.Expire,
			Issuer: cfg.JWT.Issuer,
		}),
		Media: media,
	}
}

// New 构建 gin 引擎并挂载网页、API、静态文件与 swagger
func New(cfg *config.Config, d *Deps) (*gin.Engine, error) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := service.RegisterValidations(v); err != nil {
			return nil, err
		}
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(middleware.RequestLogger())

	mediaPrefix := "/" + strings.Trim(cfg.Media.URLPrefix, "/")
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{mediaPrefix, "/swagger/"})))

	tmpl, err := web.Templates(d.Media)
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	store := cookie.NewStore([]byte(cfg.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		Secure:   cfg.Session.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(cfg.Session.Name, store))
	r.Use(middleware.LoadUser(d.Accounts))

	limit := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Middleware()

	if cfg.Media.Driver == "disk" {
		r.Static(mediaPrefix, cfg.Media.Root)
	}

	api := r.Group("/api/v1", cors.New(corsConfig(cfg.Server.CORSOrigins)))
	handler.NewHandler(d.Feed, d.Rel, d.Accounts).Register(api, middleware.JWTAuth(d.Accounts), limit)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	pages := web.NewHandler(d.Feed, d.Posts, d.Comments, d.Rel, d.Accounts)
	pages.Register(r, limit)
	r.NoRoute(pages.NotFound)

	return r, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
