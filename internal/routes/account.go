package routes

import (
	"github.com/labstack/echo/v4"

	"room-inventory/internal/controllers"
)

func runAccountRouter(secureGroup *echo.Group, accountCtrl *controllers.AccountController) {
	account := secureGroup.Group("/account")
	{
		account.PUT("/profile", accountCtrl.UpdateProfile)
		account.PUT("/password", accountCtrl.ChangePassword)
		account.POST("/avatar", accountCtrl.UploadAvatar)
	}
	secureGroup.PUT("/users/:userID/role", accountCtrl.UpdateRole)
}
