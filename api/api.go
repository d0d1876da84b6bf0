package api

import (
	"context"
	"errors"
	"fmt"
	"movie_catalog/api/middleware"
	"movie_catalog/configs"
	_ "movie_catalog/docs"
	"movie_catalog/internal/handler"
	"movie_catalog/pkg/response"
	"slices"
	"strings"
	"time"

	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

var router *fiber.App

func InitRouter(
	userHandler *handler.UserHandler,
	filmHandler *handler.FilmHandler,
	commentHandler *handler.CommentHandler,
	watchlistHandler *handler.WatchlistHandler,
) {
	var defaultErrorHandler = func(c *fiber.Ctx, err error) error {
		// Status code defaults to 500
		code := fiber.StatusInternalServerError

		// Retrieve the custom status code if it's a *fiber.Error
		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
		}

		// Set Content-Type: text/plain; charset=utf-8
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)

		if !strings.Contains(err.Error(), "/favicon.ico") && code >= 500 {
			fmt.Println(err.Error())
		}

		return response.ResponseError(c, "Internal Error", code)
	}

	router = fiber.New(fiber.Config{
		UnescapePath: true,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: defaultErrorHandler,
	})

	router.Use(helmet.New())
	router.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return middleware.LocalhostRegex.MatchString(origin) ||
				slices.Index(configs.GetConfigs().CorsAllowedOrigins, origin) != -1
		},
		AllowCredentials: true,
	}))
	router.Use(timeoutMiddleware(time.Second * 10))
	router.Use(recover.New())
	// router.Use(logger.New())
	router.Use(compress.New())

	router.Use(fibersentry.New(fibersentry.Config{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	router.Static("/upload", configs.GetConfigs().UploadDirectory, fiber.Static{
		Compress:  false,
		ByteRange: true,
		Browse:    false,
		MaxAge:    3600,
	})

	userRoutes := router.Group("v1/users")
	{
		userRoutes.Post("/register", userHandler.Register)
		userRoutes.Post("/login", userHandler.Login)
		userRoutes.Delete("/logout", middleware.AuthMiddleware, userHandler.Logout)
		userRoutes.Post("/:userId/avatar", middleware.AuthMiddleware, userHandler.UploadAvatar)
	}

	filmRoutes := router.Group("v1/films")
	{
		filmRoutes.Get("/", middleware.SoftAuthMiddleware, filmHandler.Index)
		filmRoutes.Get("/genre/:genre", middleware.SoftAuthMiddleware, filmHandler.IndexByGenre)
		filmRoutes.Get("/promo", filmHandler.ShowPromo)
		filmRoutes.Get("/:filmId", filmHandler.Show)
		filmRoutes.Get("/:filmId/comments", commentHandler.Index)
		filmRoutes.Post("/", middleware.AuthMiddleware, filmHandler.Create)
		filmRoutes.Patch("/:filmId", middleware.AuthMiddleware, filmHandler.Update)
		filmRoutes.Delete("/:filmId", middleware.AuthMiddleware, filmHandler.Delete)
	}

	commentRoutes := router.Group("v1/comments")
	{
		commentRoutes.Post("/", middleware.AuthMiddleware, commentHandler.Create)
	}

	watchlistRoutes := router.Group("v1/watchlist")
	{
		watchlistRoutes.Get("/", middleware.AuthMiddleware, watchlistHandler.Index)
		watchlistRoutes.Post("/", middleware.AuthMiddleware, watchlistHandler.Toggle)
	}

	router.Get("/", HealthCheck)
	router.Get("/metrics", monitor.New())

	router.Get("/swagger/*", swagger.HandlerDefault) // default
}

func Start(addr string) error {
	return router.Listen(addr)
}

func timeoutMiddleware(timeout time.Duration) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {

		// wrap the request context with a timeout
		ctx, cancel := context.WithTimeout(c.Context(), timeout)

		defer func() {
			// check if context timeout was reached
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {

				// write response and abort the request
				c.SendStatus(fiber.StatusGatewayTimeout)
			}

			//cancel to clear resources after finished
			cancel()
		}()

		return c.Next()
	}
}

// HealthCheck godoc
//
//	@Summary		Show the status of server.
//	@Description	get the status of server.
//	@Tags			System
//	@Success		200	{object}	map[string]interface{}
//	@Router			/ [get]
func HealthCheck(c *fiber.Ctx) error {
	res := map[string]interface{}{
		"data": "Server is up and running",
	}

	if err := c.JSON(res); err != nil {
		return err
	}

	return nil
}
