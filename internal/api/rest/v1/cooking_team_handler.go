package v1

import (
	"net/http"

	"github.com/Mathmagicians/theslope/internal/domain/team"
	"github.com/gin-gonic/gin"
)

// CookingTeamHandler defines the interface for handling cooking team operations
type CookingTeamHandler interface {
	Create(ctx *gin.Context)
	ListBySeason(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

type cookingTeamHandler struct {
	cookingTeamService team.CookingTeamService
}

// NewCookingTeamHandler creates a new CookingTeamHandler
func NewCookingTeamHandler(cookingTeamService team.CookingTeamService) CookingTeamHandler {
	return &cookingTeamHandler{cookingTeamService: cookingTeamService}
}

// Create handles the POST request to add a team to a season
// @Summary Create a cooking team
// @Tags CookingTeam
// @Accept json
// @Produce json
// @Param id path string true "Season ID"
// @Param requestBody body CookingTeamRequest true "Cooking team"
// @Success 201 {object} CookingTeamResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /seasons/{id}/teams [post]
func (handler *cookingTeamHandler) Create(ctx *gin.Context) {
	var request CookingTeamRequest
	if !bindRequest(ctx, &request) {
		return
	}

	created, err := handler.cookingTeamService.Create(ctx, request.ToDomain("", ctx.Param("id")))
	if err != nil {
		respondError(ctx, "creating cooking team", err)
		return
	}
	ctx.JSON(http.StatusCreated, NewCookingTeamResponse(created))
}

// ListBySeason handles the GET request to list a season's teams
// @Summary List cooking teams of a season
// @Tags CookingTeam
// @Produce json
// @Param id path string true "Season ID"
// @Success 200 {array} CookingTeamResponse
// @Router /seasons/{id}/teams [get]
func (handler *cookingTeamHandler) ListBySeason(ctx *gin.Context) {
	teams, err := handler.cookingTeamService.ListBySeason(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "listing cooking teams", err)
		return
	}

	listResponse := []CookingTeamResponse{}
	for _, t := range teams {
		listResponse = append(listResponse, NewCookingTeamResponse(t))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

// GetByID handles the GET request to fetch a team
// @Summary Retrieve a cooking team by ID
// @Tags CookingTeam
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} CookingTeamResponse
// @Failure 404 {object} ErrorResponse
// @Router /teams/{id} [get]
func (handler *cookingTeamHandler) GetByID(ctx *gin.Context) {
	t, err := handler.cookingTeamService.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "fetching cooking team", err)
		return
	}
	ctx.JSON(http.StatusOK, NewCookingTeamResponse(t))
}

// Update handles the PUT request to replace name and members of a team
// @Summary Update a cooking team
// @Tags CookingTeam
// @Accept json
// @Produce json
// @Param id path string true "Team ID"
// @Param requestBody body CookingTeamRequest true "Cooking team"
// @Success 200 {object} CookingTeamResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /teams/{id} [put]
func (handler *cookingTeamHandler) Update(ctx *gin.Context) {
	var request CookingTeamRequest
	if !bindRequest(ctx, &request) {
		return
	}

	updated, err := handler.cookingTeamService.Update(ctx, request.ToDomain(ctx.Param("id"), ""))
	if err != nil {
		respondError(ctx, "updating cooking team", err)
		return
	}
	ctx.JSON(http.StatusOK, NewCookingTeamResponse(updated))
}

// DeleteByID handles the DELETE request to remove a team
// @Summary Delete a cooking team by ID
// @Tags CookingTeam
// @Param id path string true "Team ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /teams/{id} [delete]
func (handler *cookingTeamHandler) DeleteByID(ctx *gin.Context) {
	if err := handler.cookingTeamService.DeleteByID(ctx, ctx.Param("id")); err != nil {
		respondError(ctx, "deleting cooking team", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
