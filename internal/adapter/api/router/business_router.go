package router

import (
	"neighbo/internal/adapter/api/handler"
	"neighbo/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupBusinessRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	claimHandler := handler.GetClaimHandler()

	business := e.Group("/business")
	business.Use(authMiddleware.Authenticate)
	business.GET("/my-restaurant", claimHandler.MyRestaurant)
}
