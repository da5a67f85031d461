package v1

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/Mathmagicians/theslope/internal/domain/calendar"
	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/domain/season"
	"github.com/gin-gonic/gin"
)

// DinnerEventHandler defines the interface for handling dinner event operations
type DinnerEventHandler interface {
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	UpdateMenu(ctx *gin.Context)
	Announce(ctx *gin.Context)
	Cancel(ctx *gin.Context)
	ChefReport(ctx *gin.Context)
	Calendar(ctx *gin.Context)
}

type dinnerEventHandler struct {
	dinnerEventService dinner.DinnerEventService
	seasonService      season.SeasonService
}

// NewDinnerEventHandler creates a new DinnerEventHandler
func NewDinnerEventHandler(dinnerEventService dinner.DinnerEventService, seasonService season.SeasonService) DinnerEventHandler {
	return &dinnerEventHandler{
		dinnerEventService: dinnerEventService,
		seasonService:      seasonService,
	}
}

// List handles the GET request to list dinner events
// @Summary List dinner events
// @Description Events ordered by date, optionally filtered by season, date range and states.
// @Tags DinnerEvent
// @Produce json
// @Param season_id query string false "Season ID"
// @Param from query string false "First date (YYYY-MM-DD)"
// @Param to query string false "Last date (YYYY-MM-DD)"
// @Param state query string false "Comma separated states"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Success 200 {array} DinnerEventResponse
// @Failure 400 {object} ErrorResponse
// @Router /dinner-events [get]
func (handler *dinnerEventHandler) List(ctx *gin.Context) {
	query := dinner.NewDinnerEventQuery()
	query.SeasonID = ctx.Query("season_id")

	if from := ctx.Query("from"); len(from) > 0 {
		d, err := calendar.ParseDate(from)
		if err != nil {
			respondBadRequest(ctx, "invalid from: %v", err.Error())
			return
		}
		query.From = d
	}
	if to := ctx.Query("to"); len(to) > 0 {
		d, err := calendar.ParseDate(to)
		if err != nil {
			respondBadRequest(ctx, "invalid to: %v", err.Error())
			return
		}
		query.To = d
	}
	if states := ctx.Query("state"); len(states) > 0 {
		query.States = strings.Split(states, ",")
	}

	var ok bool
	if query.Limit, ok = queryInt(ctx, "limit"); !ok {
		return
	}
	if query.Offset, ok = queryInt(ctx, "offset"); !ok {
		return
	}

	events, err := handler.dinnerEventService.List(ctx, query)
	if err != nil {
		respondError(ctx, "listing dinner events", err)
		return
	}

	listResponse := []DinnerEventResponse{}
	for _, event := range events {
		listResponse = append(listResponse, NewDinnerEventResponse(event))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

// GetByID handles the GET request to fetch a dinner event
// @Summary Retrieve a dinner event by ID
// @Tags DinnerEvent
// @Produce json
// @Param id path string true "Dinner event ID"
// @Success 200 {object} DinnerEventResponse
// @Failure 404 {object} ErrorResponse
// @Router /dinner-events/{id} [get]
func (handler *dinnerEventHandler) GetByID(ctx *gin.Context) {
	event, err := handler.dinnerEventService.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "fetching dinner event", err)
		return
	}
	ctx.JSON(http.StatusOK, NewDinnerEventResponse(event))
}

// UpdateMenu handles the PUT request to set the menu of a dinner
// @Summary Update menu, chef and cost of a dinner event
// @Tags DinnerEvent
// @Accept json
// @Produce json
// @Param id path string true "Dinner event ID"
// @Param requestBody body dinner.MenuUpdate true "Menu"
// @Success 200 {object} DinnerEventResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /dinner-events/{id}/menu [put]
func (handler *dinnerEventHandler) UpdateMenu(ctx *gin.Context) {
	var request dinner.MenuUpdate
	if !bindRequest(ctx, &request) {
		return
	}

	event, err := handler.dinnerEventService.UpdateMenu(ctx, ctx.Param("id"), &request)
	if err != nil {
		respondError(ctx, "updating menu", err)
		return
	}
	ctx.JSON(http.StatusOK, NewDinnerEventResponse(event))
}

// Announce handles the POST request to announce a dinner's menu
// @Summary Announce a dinner event
// @Tags DinnerEvent
// @Produce json
// @Param id path string true "Dinner event ID"
// @Success 200 {object} DinnerEventResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /dinner-events/{id}/announce [post]
func (handler *dinnerEventHandler) Announce(ctx *gin.Context) {
	event, err := handler.dinnerEventService.Announce(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "announcing dinner event", err)
		return
	}
	ctx.JSON(http.StatusOK, NewDinnerEventResponse(event))
}

// Cancel handles the POST request to cancel a dinner
// @Summary Cancel a dinner event
// @Description Cancels the event together with every booked or released ticket on it.
// @Tags DinnerEvent
// @Produce json
// @Param id path string true "Dinner event ID"
// @Param X-User-ID header string true "Acting user"
// @Success 200 {object} DinnerEventResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /dinner-events/{id}/cancel [post]
func (handler *dinnerEventHandler) Cancel(ctx *gin.Context) {
	userID, ok := actingUser(ctx)
	if !ok {
		return
	}

	event, err := handler.dinnerEventService.Cancel(ctx, userID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "cancelling dinner event", err)
		return
	}
	ctx.JSON(http.StatusOK, NewDinnerEventResponse(event))
}

// ChefReport handles the GET request for the kitchen's overview of a dinner
// @Summary Chef report of a dinner event
// @Tags DinnerEvent
// @Produce json
// @Param id path string true "Dinner event ID"
// @Success 200 {object} ChefReportResponse
// @Failure 404 {object} ErrorResponse
// @Router /dinner-events/{id}/report [get]
func (handler *dinnerEventHandler) ChefReport(ctx *gin.Context) {
	report, err := handler.dinnerEventService.ChefReport(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "building chef report", err)
		return
	}
	ctx.JSON(http.StatusOK, NewChefReportResponse(report))
}

// Calendar handles the GET request for the iCalendar feed of a season
// @Summary Export dinners as iCalendar
// @Description Defaults to the active season when no season_id is given.
// @Tags DinnerEvent
// @Produce text/calendar
// @Param season_id query string false "Season ID"
// @Success 200 {string} string "iCalendar feed"
// @Failure 404 {object} ErrorResponse
// @Router /dinner-events/calendar.ics [get]
func (handler *dinnerEventHandler) Calendar(ctx *gin.Context) {
	seasonID := ctx.Query("season_id")
	if len(seasonID) == 0 {
		active, err := handler.seasonService.GetActive(ctx)
		if err != nil {
			respondError(ctx, "finding active season", err)
			return
		}
		seasonID = active.ID
	}

	var buf bytes.Buffer
	if err := handler.dinnerEventService.ExportCalendar(ctx, seasonID, &buf); err != nil {
		respondError(ctx, "exporting calendar", err)
		return
	}

	ctx.Writer.Header().Set("Content-Disposition", "inline; filename=theslope.ics")
	ctx.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}
