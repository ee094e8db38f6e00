package router

import (
	"github.com/rizkypratama/go-blog-api/internal/application"
	"github.com/rizkypratama/go-blog-api/internal/container"
	pginfra "github.com/rizkypratama/go-blog-api/internal/infrastructure/postgres"
	handlers "github.com/rizkypratama/go-blog-api/internal/interface/http"
	"github.com/rizkypratama/go-blog-api/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it with the registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	postRepo := pginfra.NewPostRepository(pool)

	authSvc := application.NewAuthService(
		userRepo,
		container.GetJWT(),
		container.GetLogger(),
		container.GetRabbitPub(),
		cfg.MailSendEnabled,
	)
	postSvc := application.NewPostService(
		postRepo,
		container.GetRedis(),
		container.GetLogger(),
		container.GetES(),
		cfg.ESPostsIndex,
	)

	authHandler := handlers.NewAuthHandler(authSvc, container.GetLogger())
	postHandler := handlers.NewPostHandler(postSvc, container.GetLogger())

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewPostModule(postHandler, userRepo))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
