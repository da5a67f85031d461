//go:build unit
// +build unit

package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Mathmagicians/theslope/internal/domain/errs"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = "4d2d7c0e-2f0a-4b8e-9a3c-6b1f5a7e8c90"

// newTestContext builds a gin context for a request with optional JSON body
// and path parameters. The acting user header is set unless userID is empty.
func newTestContext(method, url, body, userID string, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()

	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	if userID != "" {
		req.Header.Set(UserIDHeader, userID)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = params
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestRespondError_MapsKindsToStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   errs.Kind
	}{
		{"not found", errs.NotFound("get order", "x"), http.StatusNotFound, errs.KindNotFound},
		{"validation", errs.Validation("book", errors.New("bad")), http.StatusBadRequest, errs.KindValidation},
		{"conflict", errs.Conflict("announce", "x", "no menu"), http.StatusConflict, errs.KindConflict},
		{"deadline", errs.DeadlinePassed("cancel", "x", "dinner started"), http.StatusConflict, errs.KindDeadlinePassed},
		{"wrapped sentinel", fmt.Errorf("loading: %w", errs.ErrNotFound), http.StatusNotFound, errs.KindNotFound},
		{"internal", errors.New("connection refused"), http.StatusInternalServerError, errs.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext("GET", "/", "", "")

			respondError(c, "doing things", tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, string(tt.kind), decodeError(t, w).Kind)
		})
	}
}

func TestRespondError_HidesInternalCause(t *testing.T) {
	c, w := newTestContext("GET", "/", "", "")

	respondError(c, "loading season", errors.New("dial tcp 10.0.0.3:5432"))

	response := decodeError(t, w)
	assert.Equal(t, "error loading season", response.Message)
	assert.NotContains(t, w.Body.String(), "10.0.0.3")
}

func TestQueryInt(t *testing.T) {
	c, _ := newTestContext("GET", "/orders?limit=20", "", "")
	n, ok := queryInt(c, "limit")
	assert.True(t, ok)
	assert.Equal(t, 20, n)

	c, _ = newTestContext("GET", "/orders", "", "")
	n, ok = queryInt(c, "limit")
	assert.True(t, ok)
	assert.Equal(t, 0, n)

	c, w := newTestContext("GET", "/orders?limit=lots", "", "")
	_, ok = queryInt(c, "limit")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
