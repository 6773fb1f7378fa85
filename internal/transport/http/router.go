package httptransport

import (
	"log/slog"

	"github.com/ErlanBelekov/bookstore/internal/transport/http/handler"
	"github.com/ErlanBelekov/bookstore/internal/transport/http/middleware"
	"github.com/ErlanBelekov/bookstore/internal/usecase"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(logger *slog.Logger, secureTransport bool, authUsecase *usecase.AuthUsecase, authHandler *handler.AuthHandler, bookHandler *handler.BookHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS())
	r.Use(middleware.Security(secureTransport))

	api := r.Group("/api")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.GET("/books", bookHandler.List)

	// Catalog mutations: gate first, then the admin check.
	books := api.Group("/books", middleware.Auth(authUsecase, logger), middleware.RequireAdmin())
	books.POST("", bookHandler.Create)
	books.PUT("/:id", bookHandler.Update)
	books.DELETE("/:id", bookHandler.Delete)

	return r
}
