package v1

import (
	"net/http"

	"github.com/Mathmagicians/theslope/internal/domain/booking"
	"github.com/Mathmagicians/theslope/internal/domain/household"
	"github.com/gin-gonic/gin"
)

// HouseholdHandler defines the interface for handling household and inhabitant operations
type HouseholdHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
	Scaffold(ctx *gin.Context)
	AddInhabitant(ctx *gin.Context)
	GetInhabitant(ctx *gin.Context)
	UpdateInhabitant(ctx *gin.Context)
	DeleteInhabitant(ctx *gin.Context)
}

type householdHandler struct {
	householdService household.HouseholdService
	scaffoldService  booking.ScaffoldService
}

// NewHouseholdHandler creates a new HouseholdHandler
func NewHouseholdHandler(householdService household.HouseholdService, scaffoldService booking.ScaffoldService) HouseholdHandler {
	return &householdHandler{
		householdService: householdService,
		scaffoldService:  scaffoldService,
	}
}

// Create handles the POST request to register a household
// @Summary Create a household with its inhabitants
// @Description Inhabitants are pre-booked on the active season's dinners by their preferences.
// @Tags Household
// @Accept json
// @Produce json
// @Param requestBody body HouseholdRequest true "Household"
// @Success 201 {object} HouseholdResponse
// @Failure 400 {object} ErrorResponse
// @Router /households [post]
func (handler *householdHandler) Create(ctx *gin.Context) {
	var request HouseholdRequest
	if !bindRequest(ctx, &request) {
		return
	}

	h, err := request.ToDomain("")
	if err != nil {
		respondBadRequest(ctx, "invalid household: %v", err.Error())
		return
	}

	created, err := handler.householdService.Create(ctx, h)
	if err != nil {
		respondError(ctx, "creating household", err)
		return
	}
	ctx.JSON(http.StatusCreated, NewHouseholdResponse(created))
}

// List handles the GET request to list households
// @Summary List households
// @Tags Household
// @Produce json
// @Param name query string false "Name contains"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Success 200 {array} HouseholdResponse
// @Failure 400 {object} ErrorResponse
// @Router /households [get]
func (handler *householdHandler) List(ctx *gin.Context) {
	query := household.NewHouseholdQuery()
	query.Name = ctx.Query("name")

	var ok bool
	if query.Limit, ok = queryInt(ctx, "limit"); !ok {
		return
	}
	if query.Offset, ok = queryInt(ctx, "offset"); !ok {
		return
	}

	households, err := handler.householdService.List(ctx, query)
	if err != nil {
		respondError(ctx, "listing households", err)
		return
	}

	listResponse := []HouseholdResponse{}
	for _, h := range households {
		listResponse = append(listResponse, NewHouseholdResponse(h))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

// GetByID handles the GET request to fetch a household
// @Summary Retrieve a household by ID
// @Tags Household
// @Produce json
// @Param id path string true "Household ID"
// @Success 200 {object} HouseholdResponse
// @Failure 404 {object} ErrorResponse
// @Router /households/{id} [get]
func (handler *householdHandler) GetByID(ctx *gin.Context) {
	h, err := handler.householdService.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "fetching household", err)
		return
	}
	ctx.JSON(http.StatusOK, NewHouseholdResponse(h))
}

// Update handles the PUT request to change a household
// @Summary Update a household
// @Description Inhabitants in the body are ignored; use the inhabitant routes.
// @Tags Household
// @Accept json
// @Produce json
// @Param id path string true "Household ID"
// @Param requestBody body HouseholdRequest true "Household"
// @Success 200 {object} HouseholdResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /households/{id} [put]
func (handler *householdHandler) Update(ctx *gin.Context) {
	var request HouseholdRequest
	if !bindRequest(ctx, &request) {
		return
	}

	h, err := request.ToDomain(ctx.Param("id"))
	if err != nil {
		respondBadRequest(ctx, "invalid household: %v", err.Error())
		return
	}
	h.Inhabitants = nil

	updated, err := handler.householdService.Update(ctx, h)
	if err != nil {
		respondError(ctx, "updating household", err)
		return
	}
	ctx.JSON(http.StatusOK, NewHouseholdResponse(updated))
}

// DeleteByID handles the DELETE request to remove a household
// @Summary Delete a household by ID
// @Tags Household
// @Param id path string true "Household ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /households/{id} [delete]
func (handler *householdHandler) DeleteByID(ctx *gin.Context) {
	if err := handler.householdService.DeleteByID(ctx, ctx.Param("id")); err != nil {
		respondError(ctx, "deleting household", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Scaffold handles the POST request to reconcile a household's bookings
// @Summary Reconcile bookings with dinner preferences
// @Tags Household
// @Produce json
// @Param id path string true "Household ID"
// @Success 200 {object} ScaffoldResultResponse
// @Failure 404 {object} ErrorResponse
// @Router /households/{id}/scaffold [post]
func (handler *householdHandler) Scaffold(ctx *gin.Context) {
	result, err := handler.scaffoldService.ScaffoldHousehold(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "scaffolding household", err)
		return
	}
	ctx.JSON(http.StatusOK, NewScaffoldResultResponse(result))
}

// AddInhabitant handles the POST request to add an inhabitant to a household
// @Summary Add an inhabitant
// @Tags Inhabitant
// @Accept json
// @Produce json
// @Param id path string true "Household ID"
// @Param requestBody body InhabitantRequest true "Inhabitant"
// @Success 201 {object} InhabitantResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /households/{id}/inhabitants [post]
func (handler *householdHandler) AddInhabitant(ctx *gin.Context) {
	var request InhabitantRequest
	if !bindRequest(ctx, &request) {
		return
	}

	inhabitant, err := request.ToDomain("", ctx.Param("id"))
	if err != nil {
		respondBadRequest(ctx, "invalid inhabitant: %v", err.Error())
		return
	}

	created, err := handler.householdService.AddInhabitant(ctx, inhabitant)
	if err != nil {
		respondError(ctx, "adding inhabitant", err)
		return
	}
	ctx.JSON(http.StatusCreated, NewInhabitantResponse(created))
}

// GetInhabitant handles the GET request to fetch an inhabitant
// @Summary Retrieve an inhabitant by ID
// @Tags Inhabitant
// @Produce json
// @Param id path string true "Inhabitant ID"
// @Success 200 {object} InhabitantResponse
// @Failure 404 {object} ErrorResponse
// @Router /inhabitants/{id} [get]
func (handler *householdHandler) GetInhabitant(ctx *gin.Context) {
	inhabitant, err := handler.householdService.GetInhabitant(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "fetching inhabitant", err)
		return
	}
	ctx.JSON(http.StatusOK, NewInhabitantResponse(inhabitant))
}

// UpdateInhabitant handles the PUT request to change an inhabitant
// @Summary Update an inhabitant
// @Description Changed dinner preferences are applied to the household's bookings right away.
// @Tags Inhabitant
// @Accept json
// @Produce json
// @Param id path string true "Inhabitant ID"
// @Param requestBody body InhabitantRequest true "Inhabitant"
// @Success 200 {object} InhabitantResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /inhabitants/{id} [put]
func (handler *householdHandler) UpdateInhabitant(ctx *gin.Context) {
	var request InhabitantRequest
	if !bindRequest(ctx, &request) {
		return
	}

	inhabitant, err := request.ToDomain(ctx.Param("id"), "")
	if err != nil {
		respondBadRequest(ctx, "invalid inhabitant: %v", err.Error())
		return
	}

	updated, err := handler.householdService.UpdateInhabitant(ctx, inhabitant)
	if err != nil {
		respondError(ctx, "updating inhabitant", err)
		return
	}
	ctx.JSON(http.StatusOK, NewInhabitantResponse(updated))
}

// DeleteInhabitant handles the DELETE request to remove an inhabitant
// @Summary Delete an inhabitant by ID
// @Tags Inhabitant
// @Param id path string true "Inhabitant ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /inhabitants/{id} [delete]
func (handler *householdHandler) DeleteInhabitant(ctx *gin.Context) {
	if err := handler.householdService.DeleteInhabitant(ctx, ctx.Param("id")); err != nil {
		respondError(ctx, "deleting inhabitant", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
