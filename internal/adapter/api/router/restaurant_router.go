package router

import (
	"neighbo/internal/adapter/api/handler"
	"neighbo/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupRestaurantRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, ownershipMiddleware *middleware.OwnershipMiddleware) {

	restaurantHandler := handler.GetRestaurantHandler()
	certificationHandler := handler.GetCertificationHandler()
	reportHandler := handler.GetReportHandler()
	claimHandler := handler.GetClaimHandler()

	restaurants := e.Group("/restaurants")

	// Nearby must be registered before the :id routes so the literal
	// segment wins.
	restaurants.GET("/nearby", restaurantHandler.Nearby)
	restaurants.GET("", restaurantHandler.List)
	restaurants.GET("/:id", restaurantHandler.Get)
	restaurants.GET("/:id/certification", certificationHandler.Get)
	restaurants.GET("/:id/reports", reportHandler.Aggregate)

	restaurants.POST("", restaurantHandler.Create, authMiddleware.Authenticate)
	restaurants.DELETE("/:id", restaurantHandler.Delete, authMiddleware.Authenticate, ownershipMiddleware.RequireOwnerOrAdmin)

	owned := e.Group("/restaurants/:id")
	owned.Use(authMiddleware.Authenticate)
	owned.Use(ownershipMiddleware.RequireOwnership)
	owned.PATCH("", restaurantHandler.Update)
	owned.POST("/certification/self-attest", certificationHandler.SelfAttest)
	owned.POST("/certification/upload-evidence", certificationHandler.UploadEvidence)
	owned.GET("/claim", claimHandler.GetMyClaim)

	authed := e.Group("/restaurants/:id")
	authed.Use(authMiddleware.Authenticate)
	authed.GET("/reports/mine", reportHandler.CheckMine)
	authed.POST("/reports", reportHandler.Submit)
	authed.POST("/claim", claimHandler.Claim)
}
