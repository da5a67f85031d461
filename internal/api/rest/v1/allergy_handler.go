package v1

import (
	"net/http"

	"github.com/Mathmagicians/theslope/internal/domain/household"
	"github.com/gin-gonic/gin"
)

// AllergyHandler defines the interface for handling allergy operations
type AllergyHandler interface {
	CreateType(ctx *gin.Context)
	ListTypes(ctx *gin.Context)
	DeleteType(ctx *gin.Context)
	AddAllergy(ctx *gin.Context)
	ListAllergies(ctx *gin.Context)
	DeleteAllergy(ctx *gin.Context)
}

type allergyHandler struct {
	allergyService household.AllergyService
}

// NewAllergyHandler creates a new AllergyHandler
func NewAllergyHandler(allergyService household.AllergyService) AllergyHandler {
	return &allergyHandler{allergyService: allergyService}
}

// CreateType handles the POST request to register an allergen
// @Summary Create an allergy type
// @Tags Allergy
// @Accept json
// @Produce json
// @Param requestBody body AllergyTypeRequest true "Allergy type"
// @Success 201 {object} AllergyTypeResponse
// @Failure 400 {object} ErrorResponse
// @Router /allergy-types [post]
func (handler *allergyHandler) CreateType(ctx *gin.Context) {
	var request AllergyTypeRequest
	if !bindRequest(ctx, &request) {
		return
	}

	created, err := handler.allergyService.CreateType(ctx, request.ToDomain())
	if err != nil {
		respondError(ctx, "creating allergy type", err)
		return
	}
	ctx.JSON(http.StatusCreated, NewAllergyTypeResponse(created))
}

// ListTypes handles the GET request to list allergens
// @Summary List allergy types
// @Tags Allergy
// @Produce json
// @Success 200 {array} AllergyTypeResponse
// @Router /allergy-types [get]
func (handler *allergyHandler) ListTypes(ctx *gin.Context) {
	types, err := handler.allergyService.ListTypes(ctx)
	if err != nil {
		respondError(ctx, "listing allergy types", err)
		return
	}

	listResponse := []AllergyTypeResponse{}
	for _, allergyType := range types {
		listResponse = append(listResponse, NewAllergyTypeResponse(allergyType))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

// DeleteType handles the DELETE request to remove an allergen
// @Summary Delete an allergy type by ID
// @Tags Allergy
// @Param id path string true "Allergy type ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /allergy-types/{id} [delete]
func (handler *allergyHandler) DeleteType(ctx *gin.Context) {
	if err := handler.allergyService.DeleteType(ctx, ctx.Param("id")); err != nil {
		respondError(ctx, "deleting allergy type", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// AddAllergy handles the POST request to record an inhabitant's allergy
// @Summary Add an allergy to an inhabitant
// @Tags Allergy
// @Accept json
// @Produce json
// @Param id path string true "Inhabitant ID"
// @Param requestBody body AllergyRequest true "Allergy"
// @Success 201 {object} AllergyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /inhabitants/{id}/allergies [post]
func (handler *allergyHandler) AddAllergy(ctx *gin.Context) {
	var request AllergyRequest
	if !bindRequest(ctx, &request) {
		return
	}

	created, err := handler.allergyService.AddAllergy(ctx, request.ToDomain(ctx.Param("id")))
	if err != nil {
		respondError(ctx, "adding allergy", err)
		return
	}
	ctx.JSON(http.StatusCreated, NewAllergyResponse(created))
}

// ListAllergies handles the GET request to list an inhabitant's allergies
// @Summary List allergies of an inhabitant
// @Tags Allergy
// @Produce json
// @Param id path string true "Inhabitant ID"
// @Success 200 {array} AllergyResponse
// @Failure 404 {object} ErrorResponse
// @Router /inhabitants/{id}/allergies [get]
func (handler *allergyHandler) ListAllergies(ctx *gin.Context) {
	allergies, err := handler.allergyService.ListAllergies(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "listing allergies", err)
		return
	}

	listResponse := []AllergyResponse{}
	for _, allergy := range allergies {
		listResponse = append(listResponse, NewAllergyResponse(allergy))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

// DeleteAllergy handles the DELETE request to remove an allergy
// @Summary Delete an allergy by ID
// @Tags Allergy
// @Param id path string true "Allergy ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /allergies/{id} [delete]
func (handler *allergyHandler) DeleteAllergy(ctx *gin.Context) {
	if err := handler.allergyService.DeleteAllergy(ctx, ctx.Param("id")); err != nil {
		respondError(ctx, "deleting allergy", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
