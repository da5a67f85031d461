package v1

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/Mathmagicians/theslope/internal/domain/billing"
	"github.com/Mathmagicians/theslope/internal/domain/calendar"
	"github.com/gin-gonic/gin"
)

// BillingHandler defines the interface for handling billing operations
type BillingHandler interface {
	ListPeriods(ctx *gin.Context)
	GeneratePeriod(ctx *gin.Context)
	GetPeriod(ctx *gin.Context)
	ExportInvoices(ctx *gin.Context)
	ListHouseholdInvoices(ctx *gin.Context)
	ListHouseholdTransactions(ctx *gin.Context)
}

type billingHandler struct {
	billingService billing.BillingService
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(billingService billing.BillingService) BillingHandler {
	return &billingHandler{billingService: billingService}
}

// ListPeriods handles the GET request to list billing periods
// @Summary List billing periods
// @Tags Billing
// @Produce json
// @Success 200 {array} BillingPeriodResponse
// @Router /billing-periods [get]
func (handler *billingHandler) ListPeriods(ctx *gin.Context) {
	periods, err := handler.billingService.ListPeriods(ctx)
	if err != nil {
		respondError(ctx, "listing billing periods", err)
		return
	}

	listResponse := []BillingPeriodResponse{}
	for _, period := range periods {
		listResponse = append(listResponse, NewBillingPeriodResponse(period))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

// GeneratePeriod handles the POST request to invoice a billing period
// @Summary Generate the billing period ending at a cutoff date
// @Description Invoices every unbilled transaction up to the cutoff. An existing period is returned unchanged with status 200.
// @Tags Billing
// @Accept json
// @Produce json
// @Param requestBody body GenerateBillingPeriodRequest true "Cutoff"
// @Success 201 {object} BillingPeriodResponse
// @Success 200 {object} BillingPeriodResponse
// @Failure 400 {object} ErrorResponse
// @Router /billing-periods [post]
func (handler *billingHandler) GeneratePeriod(ctx *gin.Context) {
	var request GenerateBillingPeriodRequest
	if !bindRequest(ctx, &request) {
		return
	}

	cutoff, err := calendar.ParseDate(request.CutoffDate)
	if err != nil {
		respondBadRequest(ctx, "invalid cutoff_date: %v", err.Error())
		return
	}

	summary, created, err := handler.billingService.GenerateBillingPeriod(ctx, cutoff)
	if err != nil {
		respondError(ctx, "generating billing period", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ctx.JSON(status, NewBillingPeriodResponse(summary))
}

// GetPeriod handles the GET request to fetch a billing period with its invoices
// @Summary Retrieve a billing period by ID
// @Tags Billing
// @Produce json
// @Param id path string true "Billing period ID"
// @Success 200 {object} BillingPeriodResponse
// @Failure 404 {object} ErrorResponse
// @Router /billing-periods/{id} [get]
func (handler *billingHandler) GetPeriod(ctx *gin.Context) {
	summary, err := handler.billingService.GetPeriod(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "fetching billing period", err)
		return
	}
	ctx.JSON(http.StatusOK, NewBillingPeriodResponse(summary))
}

// ExportInvoices handles the GET request to download a period's invoices
// @Summary Export invoices as CSV for the payment service
// @Tags Billing
// @Produce text/csv
// @Param id path string true "Billing period ID"
// @Success 200 {string} string "CSV"
// @Failure 404 {object} ErrorResponse
// @Router /billing-periods/{id}/invoices.csv [get]
func (handler *billingHandler) ExportInvoices(ctx *gin.Context) {
	var buf bytes.Buffer
	if err := handler.billingService.ExportInvoices(ctx, ctx.Param("id"), &buf); err != nil {
		respondError(ctx, "exporting invoices", err)
		return
	}

	ctx.Writer.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=invoices-%s.csv", ctx.Param("id")))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ListHouseholdInvoices handles the GET request to list a household's invoices
// @Summary List invoices of a household
// @Tags Billing
// @Produce json
// @Param id path string true "Household ID"
// @Success 200 {array} InvoiceResponse
// @Failure 404 {object} ErrorResponse
// @Router /households/{id}/invoices [get]
func (handler *billingHandler) ListHouseholdInvoices(ctx *gin.Context) {
	invoices, err := handler.billingService.ListHouseholdInvoices(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "listing invoices", err)
		return
	}

	listResponse := []InvoiceResponse{}
	for _, invoice := range invoices {
		listResponse = append(listResponse, NewInvoiceResponse(invoice))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

// ListHouseholdTransactions handles the GET request to list a household's charges
// @Summary List transactions of a household
// @Tags Billing
// @Produce json
// @Param id path string true "Household ID"
// @Success 200 {array} TransactionResponse
// @Failure 404 {object} ErrorResponse
// @Router /households/{id}/transactions [get]
func (handler *billingHandler) ListHouseholdTransactions(ctx *gin.Context) {
	transactions, err := handler.billingService.ListHouseholdTransactions(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "listing transactions", err)
		return
	}

	listResponse := []TransactionResponse{}
	for _, transaction := range transactions {
		listResponse = append(listResponse, NewTransactionResponse(transaction))
	}
	ctx.JSON(http.StatusOK, listResponse)
}
