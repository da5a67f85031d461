package v1

import (
	"github.com/Mathmagicians/theslope/internal/domain/billing"
	"github.com/Mathmagicians/theslope/internal/domain/booking"
	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/domain/household"
	"github.com/Mathmagicians/theslope/internal/domain/maintenance"
	"github.com/Mathmagicians/theslope/internal/domain/season"
	"github.com/Mathmagicians/theslope/internal/domain/team"

	"github.com/gin-gonic/gin"
)

// Services are the application services the routes delegate to
type Services struct {
	Seasons      season.SeasonService
	DinnerEvents dinner.DinnerEventService
	CookingTeams team.CookingTeamService
	Households   household.HouseholdService
	Allergies    household.AllergyService
	Bookings     booking.BookingService
	Scaffold     booking.ScaffoldService
	Billing      billing.BillingService
	Maintenance  maintenance.Service
}

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine, services Services) {
	v1 := r.Group(BasePath) // lookup in version file

	// Seasons Routes
	seasonHandler := NewSeasonHandler(services.Seasons, services.DinnerEvents, services.CookingTeams)
	v1.POST("/seasons", seasonHandler.Create)
	v1.GET("/seasons", seasonHandler.List)
	v1.GET("/seasons/:id", seasonHandler.GetByID)
	v1.PUT("/seasons/:id", seasonHandler.Update)
	v1.DELETE("/seasons/:id", seasonHandler.DeleteByID)
	v1.POST("/seasons/:id/activate", seasonHandler.Activate)
	v1.POST("/seasons/:id/dinner-events", seasonHandler.GenerateDinnerEvents)
	v1.POST("/seasons/:id/assign-teams", seasonHandler.AssignTeams)

	// Cooking Teams Routes
	cookingTeamHandler := NewCookingTeamHandler(services.CookingTeams)
	v1.POST("/seasons/:id/teams", cookingTeamHandler.Create)
	v1.GET("/seasons/:id/teams", cookingTeamHandler.ListBySeason)
	v1.GET("/teams/:id", cookingTeamHandler.GetByID)
	v1.PUT("/teams/:id", cookingTeamHandler.Update)
	v1.DELETE("/teams/:id", cookingTeamHandler.DeleteByID)

	// Dinner Events Routes
	dinnerEventHandler := NewDinnerEventHandler(services.DinnerEvents, services.Seasons)
	v1.GET("/dinner-events", dinnerEventHandler.List)
	v1.GET("/dinner-events/calendar.ics", dinnerEventHandler.Calendar)
	v1.GET("/dinner-events/:id", dinnerEventHandler.GetByID)
	v1.PUT("/dinner-events/:id/menu", dinnerEventHandler.UpdateMenu)
	v1.POST("/dinner-events/:id/announce", dinnerEventHandler.Announce)
	v1.POST("/dinner-events/:id/cancel", dinnerEventHandler.Cancel)
	v1.GET("/dinner-events/:id/report", dinnerEventHandler.ChefReport)

	// Households Routes
	householdHandler := NewHouseholdHandler(services.Households, services.Scaffold)
	v1.POST("/households", householdHandler.Create)
	v1.GET("/households", householdHandler.List)
	v1.GET("/households/:id", householdHandler.GetByID)
	v1.PUT("/households/:id", householdHandler.Update)
	v1.DELETE("/households/:id", householdHandler.DeleteByID)
	v1.POST("/households/:id/scaffold", householdHandler.Scaffold)
	v1.POST("/households/:id/inhabitants", householdHandler.AddInhabitant)
	v1.GET("/inhabitants/:id", householdHandler.GetInhabitant)
	v1.PUT("/inhabitants/:id", householdHandler.UpdateInhabitant)
	v1.DELETE("/inhabitants/:id", householdHandler.DeleteInhabitant)

	// Allergies Routes
	allergyHandler := NewAllergyHandler(services.Allergies)
	v1.POST("/allergy-types", allergyHandler.CreateType)
	v1.GET("/allergy-types", allergyHandler.ListTypes)
	v1.DELETE("/allergy-types/:id", allergyHandler.DeleteType)
	v1.POST("/inhabitants/:id/allergies", allergyHandler.AddAllergy)
	v1.GET("/inhabitants/:id/allergies", allergyHandler.ListAllergies)
	v1.DELETE("/allergies/:id", allergyHandler.DeleteAllergy)

	// Orders Routes
	orderHandler := NewOrderHandler(services.Bookings)
	v1.POST("/dinner-events/:id/orders", orderHandler.Book)
	v1.GET("/orders", orderHandler.List)
	v1.GET("/orders/:id", orderHandler.GetByID)
	v1.POST("/orders/:id/cancel", orderHandler.Cancel)
	v1.PUT("/orders/:id/dinner-mode", orderHandler.ChangeDinnerMode)
	v1.GET("/orders/:id/history", orderHandler.History)

	// Billing Routes
	billingHandler := NewBillingHandler(services.Billing)
	v1.GET("/billing-periods", billingHandler.ListPeriods)
	v1.POST("/billing-periods", billingHandler.GeneratePeriod)
	v1.GET("/billing-periods/:id", billingHandler.GetPeriod)
	v1.GET("/billing-periods/:id/invoices.csv", billingHandler.ExportInvoices)
	v1.GET("/households/:id/invoices", billingHandler.ListHouseholdInvoices)
	v1.GET("/households/:id/transactions", billingHandler.ListHouseholdTransactions)

	// Maintenance Routes
	maintenanceHandler := NewMaintenanceHandler(services.Maintenance)
	v1.POST("/maintenance/daily", maintenanceHandler.RunDaily)
}
