package router

import (
	"neighbo/internal/adapter/api/handler"
	"neighbo/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {

	userHandler := handler.GetUserHandler()

	me := e.Group("/me")
	me.Use(authMiddleware.Authenticate)

	me.GET("", userHandler.GetMe)
	me.PATCH("", userHandler.UpdateMe)

	me.GET("/favorites", userHandler.ListFavorites)
	me.POST("/favorites/:restaurantId", userHandler.AddFavorite)
	me.DELETE("/favorites/:restaurantId", userHandler.RemoveFavorite)

	me.GET("/reports", userHandler.ListMyReports)
}
