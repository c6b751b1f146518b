package routes

import (
	"github.com/labstack/echo/v4"

	"room-inventory/internal/controllers"
)

func runItemRouter(secureGroup *echo.Group, itemCtrl *controllers.ItemController, activityCtrl *controllers.ActivityLogController) {
	room := secureGroup.Group("/rooms/:roomID")
	{
		room.GET("/items", itemCtrl.GetItems)
		room.POST("/items", itemCtrl.CreateItem)
		room.GET("/items/:itemID", itemCtrl.FindItem)
		room.PUT("/items/:itemID", itemCtrl.UpdateItem)
		room.DELETE("/items/:itemID", itemCtrl.DeleteItem)
		room.GET("/activity-logs", activityCtrl.GetRoomActivity)
	}
}
