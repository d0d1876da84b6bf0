package main

import (
	"context"
	"log"
	"movie_catalog/api"
	"movie_catalog/configs"
	"movie_catalog/db"
	"movie_catalog/db/mongodb"
	"movie_catalog/db/redis"
	"movie_catalog/internal/handler"
	"movie_catalog/internal/repository"
	"movie_catalog/internal/service"
	"time"

	"github.com/getsentry/sentry-go"
)

// @title						Movie Catalog
// @version					1.0
// @description				Movie catalog service: films, comments, ratings and watchlists.
// @termsOfService				http://swagger.io/terms/
// @contact.name				API Support
// @contact.url				http://www.swagger.io/support
// @contact.email				support@swagger.io
// @license.name				Apache 2.0
// @license.url				http://www.apache.org/licenses/LICENSE-2.0.html
// @BasePath					/
// @schemes					https
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
// @description				Type "Bearer" followed by a space and JWT token.
// @Accept						json
// @Produce					json
func main() {
	configs.LoadEnvVariables()

	err := sentry.Init(sentry.ClientOptions{
		Dsn:     configs.GetConfigs().SentryDns,
		Release: configs.GetConfigs().SentryRelease,
		// Set TracesSampleRate to 1.0 to capture 100%
		// of transactions for performance monitoring.
		// We recommend adjusting this value in production,
		TracesSampleRate: 1,
		EnableTracing:    true,
		Debug:            true,
		AttachStacktrace: true,
	})
	if err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}
	// Flush buffered events before the program terminates.
	defer sentry.Flush(2 * time.Second)

	go redis.ConnectRedis()

	mongoDB, err := mongodb.NewDatabase()
	if err != nil {
		log.Fatalf("could not initialize mongodb database connection: %s", err)
	}
	if err := mongoDB.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("could not create mongodb indexes: %s", err)
	}
	go configs.LoadDbConfigs(mongoDB.GetDB())

	postgres, err := db.NewDatabase()
	if err != nil {
		log.Fatalf("could not initialize postgres database connection: %s", err)
	}
	defer postgres.Close()
	if err := postgres.AutoMigrate(); err != nil {
		log.Fatalf("could not migrate postgres database: %s", err)
	}

	userRep := repository.NewUserRepository(postgres.GetDB())
	filmRep := repository.NewFilmRepository(mongoDB.GetDB())
	commentRep := repository.NewCommentRepository(mongoDB.GetDB())
	watchlistRep := repository.NewWatchlistRepository(mongoDB.GetDB())

	notificationSvc := service.NewNotificationService(configs.GetConfigs().RabbitMqUrl)
	defer notificationSvc.Close()

	userSvc := service.NewUserService(userRep)
	commentSvc := service.NewCommentService(commentRep, filmRep, userRep, notificationSvc)
	watchlistSvc := service.NewWatchlistService(watchlistRep, filmRep, userRep)
	filmSvc := service.NewFilmService(filmRep, watchlistRep, userRep, commentSvc, watchlistSvc, notificationSvc)

	userHandler := handler.NewUserHandler(userSvc)
	filmHandler := handler.NewFilmHandler(filmSvc)
	commentHandler := handler.NewCommentHandler(commentSvc)
	watchlistHandler := handler.NewWatchlistHandler(watchlistSvc)

	api.InitRouter(userHandler, filmHandler, commentHandler, watchlistHandler)
	api.Start("0.0.0.0:" + configs.GetConfigs().Port)
}
