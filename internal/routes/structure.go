package routes

import (
	"github.com/labstack/echo/v4"

	"room-inventory/internal/controllers"
)

func runStructureRouter(secureGroup *echo.Group, ctrl *controllers.StructureController) {
	secureGroup.GET("/floors", ctrl.GetFloors)
	secureGroup.POST("/floors", ctrl.CreateFloor)

	secureGroup.POST("/rooms", ctrl.CreateRoom)
	secureGroup.GET("/rooms/by-number/:number", ctrl.FindRoomByNumber)
	secureGroup.GET("/rooms/:roomID", ctrl.FindRoom)
	secureGroup.PUT("/rooms/:roomID/status", ctrl.UpdateRoomStatus)
}
