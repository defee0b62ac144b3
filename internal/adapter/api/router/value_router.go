package router

import (
	"neighbo/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

func SetupValueRouter(e *echo.Echo) {
	valueHandler := handler.GetValueHandler()
	e.GET("/values", valueHandler.List)
}
