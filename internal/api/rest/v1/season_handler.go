package v1

import (
	"net/http"

	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/domain/season"
	"github.com/Mathmagicians/theslope/internal/domain/team"
	"github.com/gin-gonic/gin"
)

// SeasonHandler defines the interface for handling season-related operations
type SeasonHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
	Activate(ctx *gin.Context)
	GenerateDinnerEvents(ctx *gin.Context)
	AssignTeams(ctx *gin.Context)
}

type seasonHandler struct {
	seasonService      season.SeasonService
	dinnerEventService dinner.DinnerEventService
	cookingTeamService team.CookingTeamService
}

// NewSeasonHandler creates a new SeasonHandler
func NewSeasonHandler(seasonService season.SeasonService, dinnerEventService dinner.DinnerEventService, cookingTeamService team.CookingTeamService) SeasonHandler {
	return &seasonHandler{
		seasonService:      seasonService,
		dinnerEventService: dinnerEventService,
		cookingTeamService: cookingTeamService,
	}
}

// Create handles the POST request to create a season
// @Summary Create a season
// @Description Create a new, inactive season. Omitted deadlines fall back to the defaults.
// @Tags Season
// @Accept json
// @Produce json
// @Param requestBody body SeasonRequest true "Season"
// @Success 201 {object} SeasonResponse
// @Failure 400 {object} ErrorResponse
// @Router /seasons [post]
func (handler *seasonHandler) Create(ctx *gin.Context) {
	var request SeasonRequest
	if !bindRequest(ctx, &request) {
		return
	}

	s, err := request.ToDomain("")
	if err != nil {
		respondBadRequest(ctx, "invalid season: %v", err.Error())
		return
	}

	created, err := handler.seasonService.Create(ctx, s)
	if err != nil {
		respondError(ctx, "creating season", err)
		return
	}

	ctx.JSON(http.StatusCreated, NewSeasonResponse(created))
}

// List handles the GET request to list seasons
// @Summary List seasons
// @Tags Season
// @Produce json
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} SeasonResponse
// @Failure 400 {object} ErrorResponse
// @Router /seasons [get]
func (handler *seasonHandler) List(ctx *gin.Context) {
	query := season.NewSeasonQuery()

	var ok bool
	if query.Limit, ok = queryInt(ctx, "limit"); !ok {
		return
	}
	if query.Offset, ok = queryInt(ctx, "offset"); !ok {
		return
	}
	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	seasons, err := handler.seasonService.List(ctx, query)
	if err != nil {
		respondError(ctx, "listing seasons", err)
		return
	}

	listResponse := []SeasonResponse{}
	for _, s := range seasons {
		listResponse = append(listResponse, NewSeasonResponse(s))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

// GetByID handles the GET request to fetch a season
// @Summary Retrieve a season by ID
// @Tags Season
// @Produce json
// @Param id path string true "Season ID"
// @Success 200 {object} SeasonResponse
// @Failure 404 {object} ErrorResponse
// @Router /seasons/{id} [get]
func (handler *seasonHandler) GetByID(ctx *gin.Context) {
	s, err := handler.seasonService.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "fetching season", err)
		return
	}
	ctx.JSON(http.StatusOK, NewSeasonResponse(s))
}

// Update handles the PUT request to replace a season's settings
// @Summary Update a season
// @Description Replace settings and prices. Dates are frozen once dinner events exist.
// @Tags Season
// @Accept json
// @Produce json
// @Param id path string true "Season ID"
// @Param requestBody body SeasonRequest true "Season"
// @Success 200 {object} SeasonResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /seasons/{id} [put]
func (handler *seasonHandler) Update(ctx *gin.Context) {
	var request SeasonRequest
	if !bindRequest(ctx, &request) {
		return
	}

	s, err := request.ToDomain(ctx.Param("id"))
	if err != nil {
		respondBadRequest(ctx, "invalid season: %v", err.Error())
		return
	}

	updated, err := handler.seasonService.Update(ctx, s)
	if err != nil {
		respondError(ctx, "updating season", err)
		return
	}
	ctx.JSON(http.StatusOK, NewSeasonResponse(updated))
}

// DeleteByID handles the DELETE request to delete a season
// @Summary Delete a season by ID
// @Tags Season
// @Param id path string true "Season ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /seasons/{id} [delete]
func (handler *seasonHandler) DeleteByID(ctx *gin.Context) {
	if err := handler.seasonService.DeleteByID(ctx, ctx.Param("id")); err != nil {
		respondError(ctx, "deleting season", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Activate handles the POST request to make a season the active one
// @Summary Activate a season
// @Description Deactivates every other season and pre-books all households by their preferences.
// @Tags Season
// @Produce json
// @Param id path string true "Season ID"
// @Success 200 {object} SeasonResponse
// @Failure 404 {object} ErrorResponse
// @Router /seasons/{id}/activate [post]
func (handler *seasonHandler) Activate(ctx *gin.Context) {
	s, err := handler.seasonService.Activate(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "activating season", err)
		return
	}
	ctx.JSON(http.StatusOK, NewSeasonResponse(s))
}

// GenerateDinnerEvents handles the POST request to create a season's dinner events
// @Summary Generate dinner events
// @Description Creates an event on every cooking day outside holidays. Existing dates are skipped.
// @Tags Season
// @Produce json
// @Param id path string true "Season ID"
// @Success 201 {array} DinnerEventResponse
// @Failure 404 {object} ErrorResponse
// @Router /seasons/{id}/dinner-events [post]
func (handler *seasonHandler) GenerateDinnerEvents(ctx *gin.Context) {
	events, err := handler.dinnerEventService.GenerateForSeason(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "generating dinner events", err)
		return
	}

	listResponse := []DinnerEventResponse{}
	for _, event := range events {
		listResponse = append(listResponse, NewDinnerEventResponse(event))
	}
	ctx.JSON(http.StatusCreated, listResponse)
}

// AssignTeams handles the POST request to rotate cooking teams over the season
// @Summary Assign cooking teams to dinner events
// @Tags Season
// @Produce json
// @Param id path string true "Season ID"
// @Success 200 {object} CountResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /seasons/{id}/assign-teams [post]
func (handler *seasonHandler) AssignTeams(ctx *gin.Context) {
	assigned, err := handler.cookingTeamService.AssignToEvents(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "assigning cooking teams", err)
		return
	}
	ctx.JSON(http.StatusOK, CountResponse{Count: assigned})
}
