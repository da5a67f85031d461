//go:build unit
// +build unit

package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestSetupRoutes_RoutesRegistered verifies that routes are properly registered
func TestSetupRoutes_RoutesRegistered(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := newMockServices()

	// Setup mocks to return nil
	m.seasons.On("List", mock.Anything, mock.Anything).Return(nil, nil)
	m.dinnerEvents.On("List", mock.Anything, mock.Anything).Return(nil, nil)
	m.households.On("List", mock.Anything, mock.Anything).Return(nil, nil)
	m.allergies.On("ListTypes", mock.Anything).Return(nil, nil)
	m.bookings.On("List", mock.Anything, mock.Anything).Return(nil, nil)
	m.billing.On("ListPeriods", mock.Anything).Return(nil, nil)

	r := gin.New()
	SetupRoutes(r, m.services())

	// Verify routes are registered by testing they respond (even with errors)
	tests := []struct {
		method string
		url    string
	}{
		{"GET", "/api/v1/theslope/seasons"},
		{"POST", "/api/v1/theslope/seasons"},
		{"GET", "/api/v1/theslope/dinner-events"},
		{"PUT", "/api/v1/theslope/dinner-events/x/menu"},
		{"POST", "/api/v1/theslope/dinner-events/x/orders"},
		{"POST", "/api/v1/theslope/dinner-events/x/cancel"},
		{"GET", "/api/v1/theslope/households"},
		{"POST", "/api/v1/theslope/households"},
		{"POST", "/api/v1/theslope/households/x/inhabitants"},
		{"PUT", "/api/v1/theslope/inhabitants/x"},
		{"POST", "/api/v1/theslope/inhabitants/x/allergies"},
		{"GET", "/api/v1/theslope/allergy-types"},
		{"GET", "/api/v1/theslope/orders"},
		{"POST", "/api/v1/theslope/orders/x/cancel"},
		{"PUT", "/api/v1/theslope/orders/x/dinner-mode"},
		{"GET", "/api/v1/theslope/billing-periods"},
		{"POST", "/api/v1/theslope/billing-periods"},
		{"POST", "/api/v1/theslope/seasons/x/teams"},
		{"PUT", "/api/v1/theslope/teams/x"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, tt.url, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			// Just verify route exists (status != 404)
			assert.NotEqual(t, http.StatusNotFound, w.Code, "Route should be registered")
		})
	}
}
