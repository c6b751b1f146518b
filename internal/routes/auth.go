package routes

import (
	"github.com/labstack/echo/v4"

	"room-inventory/internal/controllers"
	"room-inventory/pkg/middleware"
)

func runAuthRouter(api *echo.Group, authCtrl *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authCtrl.Register)
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/refresh_token", authCtrl.RefreshToken)
		authGroup.POST("/logout", authCtrl.Logout)
		authGroup.GET("/me", authCtrl.Me, authMW.Auth)
	}
}
