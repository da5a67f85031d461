package v1

import (
	"net/http"
	"strings"

	"github.com/Mathmagicians/theslope/internal/domain/booking"
	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/gin-gonic/gin"
)

// OrderHandler defines the interface for handling ticket operations
type OrderHandler interface {
	Book(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Cancel(ctx *gin.Context)
	ChangeDinnerMode(ctx *gin.Context)
	History(ctx *gin.Context)
}

type orderHandler struct {
	bookingService booking.BookingService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(bookingService booking.BookingService) OrderHandler {
	return &orderHandler{bookingService: bookingService}
}

// Book handles the POST request to book tickets for a dinner
// @Summary Book tickets
// @Description Books inhabitant and guest tickets. After the cancellation deadline tickets are claimed from released ones of the same type.
// @Tags Order
// @Accept json
// @Produce json
// @Param id path string true "Dinner event ID"
// @Param X-User-ID header string true "Acting user"
// @Param requestBody body booking.BookingRequest true "Tickets"
// @Success 201 {array} OrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /dinner-events/{id}/orders [post]
func (handler *orderHandler) Book(ctx *gin.Context) {
	userID, ok := actingUser(ctx)
	if !ok {
		return
	}

	var request booking.BookingRequest
	if !bindRequest(ctx, &request) {
		return
	}

	orders, err := handler.bookingService.Book(ctx, userID, ctx.Param("id"), &request)
	if err != nil {
		respondError(ctx, "booking tickets", err)
		return
	}

	listResponse := []OrderResponse{}
	for _, order := range orders {
		listResponse = append(listResponse, NewOrderResponse(order))
	}
	ctx.JSON(http.StatusCreated, listResponse)
}

// List handles the GET request to list tickets
// @Summary List orders
// @Tags Order
// @Produce json
// @Param household_id query string false "Household ID"
// @Param dinner_event_id query string false "Dinner event ID"
// @Param state query string false "Comma separated states"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Success 200 {array} OrderResponse
// @Failure 400 {object} ErrorResponse
// @Router /orders [get]
func (handler *orderHandler) List(ctx *gin.Context) {
	query := booking.NewOrderQuery()
	query.HouseholdID = ctx.Query("household_id")

	if eventID := ctx.Query("dinner_event_id"); len(eventID) > 0 {
		query.DinnerEventIDs = []string{eventID}
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

	orders, err := handler.bookingService.List(ctx, query)
	if err != nil {
		respondError(ctx, "listing orders", err)
		return
	}

	listResponse := []OrderResponse{}
	for _, order := range orders {
		listResponse = append(listResponse, NewOrderResponse(order))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

// GetByID handles the GET request to fetch a ticket
// @Summary Retrieve an order by ID
// @Tags Order
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} OrderResponse
// @Failure 404 {object} ErrorResponse
// @Router /orders/{id} [get]
func (handler *orderHandler) GetByID(ctx *gin.Context) {
	order, err := handler.bookingService.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "fetching order", err)
		return
	}
	ctx.JSON(http.StatusOK, NewOrderResponse(order))
}

// Cancel handles the POST request to give up a ticket
// @Summary Cancel or release a ticket
// @Description Before the cancellation deadline the ticket is cancelled, afterwards it is released for others to claim and still billed unless claimed.
// @Tags Order
// @Produce json
// @Param id path string true "Order ID"
// @Param X-User-ID header string true "Acting user"
// @Success 200 {object} OrderResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /orders/{id}/cancel [post]
func (handler *orderHandler) Cancel(ctx *gin.Context) {
	userID, ok := actingUser(ctx)
	if !ok {
		return
	}

	order, err := handler.bookingService.Cancel(ctx, userID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "cancelling order", err)
		return
	}
	ctx.JSON(http.StatusOK, NewOrderResponse(order))
}

// ChangeDinnerMode handles the PUT request to switch how a ticket is eaten
// @Summary Change the dinner mode of a ticket
// @Tags Order
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param X-User-ID header string true "Acting user"
// @Param requestBody body DinnerModeRequest true "Dinner mode"
// @Success 200 {object} OrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /orders/{id}/dinner-mode [put]
func (handler *orderHandler) ChangeDinnerMode(ctx *gin.Context) {
	userID, ok := actingUser(ctx)
	if !ok {
		return
	}

	var request DinnerModeRequest
	if !bindRequest(ctx, &request) {
		return
	}

	order, err := handler.bookingService.ChangeDinnerMode(ctx, userID, ctx.Param("id"), dinner.Mode(request.DinnerMode))
	if err != nil {
		respondError(ctx, "changing dinner mode", err)
		return
	}
	ctx.JSON(http.StatusOK, NewOrderResponse(order))
}

// History handles the GET request for a ticket's audit trail
// @Summary Order history
// @Tags Order
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {array} OrderHistoryResponse
// @Failure 404 {object} ErrorResponse
// @Router /orders/{id}/history [get]
func (handler *orderHandler) History(ctx *gin.Context) {
	entries, err := handler.bookingService.History(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "fetching order history", err)
		return
	}

	listResponse := []OrderHistoryResponse{}
	for _, entry := range entries {
		listResponse = append(listResponse, NewOrderHistoryResponse(entry))
	}
	ctx.JSON(http.StatusOK, listResponse)
}
