package routes

import (
	"github.com/labstack/echo/v4"

	"room-inventory/internal/controllers"
)

func runReportRouter(secureGroup *echo.Group, dashboardCtrl *controllers.DashboardController, reportCtrl *controllers.ReportController) {
	secureGroup.GET("/dashboard", dashboardCtrl.GetDashboard)
	secureGroup.GET("/rooms/:roomID/report", reportCtrl.GetRoomReport)
}
