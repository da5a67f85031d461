package v1

import (
	"net/http"

	"github.com/Mathmagicians/theslope/internal/domain/maintenance"
	"github.com/gin-gonic/gin"
)

// MaintenanceHandler exposes the scheduled job over HTTP
type MaintenanceHandler interface {
	RunDaily(ctx *gin.Context)
}

type maintenanceHandler struct {
	maintenanceService maintenance.Service
}

// NewMaintenanceHandler creates a new MaintenanceHandler
func NewMaintenanceHandler(maintenanceService maintenance.Service) MaintenanceHandler {
	return &maintenanceHandler{maintenanceService: maintenanceService}
}

// RunDaily handles the POST request the scheduler sends once a day
// @Summary Run daily maintenance
// @Description Closes past dinners, creates transactions, reconciles bookings and generates the billing period on or after the cutoff day.
// @Tags Maintenance
// @Produce json
// @Success 200 {object} DailyReportResponse
// @Failure 500 {object} ErrorResponse
// @Router /maintenance/daily [post]
func (handler *maintenanceHandler) RunDaily(ctx *gin.Context) {
	report, err := handler.maintenanceService.RunDaily(ctx)
	if err != nil {
		respondError(ctx, "running maintenance", err)
		return
	}
	ctx.JSON(http.StatusOK, NewDailyReportResponse(report))
}
