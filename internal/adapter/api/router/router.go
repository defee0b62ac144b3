package router

import (
	"neighbo/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, ownershipMiddleware *middleware.OwnershipMiddleware) {
	SetupRestaurantRouter(e, authMiddleware, ownershipMiddleware)
	SetupBusinessRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware)
	SetupValueRouter(e)
	SetupHealthRouter(e)
}
