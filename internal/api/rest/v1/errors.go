package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Mathmagicians/theslope/internal/domain/errs"
	"github.com/gin-gonic/gin"
)

var statusByKind = map[errs.Kind]int{
	errs.KindNotFound:       http.StatusNotFound,
	errs.KindValidation:     http.StatusBadRequest,
	errs.KindConflict:       http.StatusConflict,
	errs.KindDeadlinePassed: http.StatusConflict,
}

// statusOf maps an error kind to its HTTP status
func statusOf(err error) int {
	if status, ok := statusByKind[errs.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// respondError writes err as ErrorResponse. Internal errors are reported
// without their cause.
func respondError(ctx *gin.Context, action string, err error) {
	kind := errs.KindOf(err)
	status := statusOf(err)

	var errorResponse ErrorResponse
	errorResponse.Kind = string(kind)
	if kind == errs.KindInternal {
		errorResponse.Message = fmt.Sprintf("error %s", action)
		_ = ctx.Error(err)
	} else {
		errorResponse.Message = fmt.Sprintf("error %s: %v", action, err.Error())
	}
	ctx.JSON(status, errorResponse)
}

func respondBadRequest(ctx *gin.Context, format string, args ...interface{}) {
	var errorResponse ErrorResponse
	errorResponse.Message = fmt.Sprintf(format, args...)
	errorResponse.Kind = string(errs.KindValidation)
	ctx.JSON(http.StatusBadRequest, errorResponse)
}

type validatable interface {
	Validate() error
}

// bindRequest decodes and validates a JSON body, answering 400 on failure.
func bindRequest(ctx *gin.Context, request validatable) bool {
	if err := ctx.ShouldBindJSON(request); err != nil {
		respondBadRequest(ctx, "invalid request body: %v", err.Error())
		return false
	}
	if err := request.Validate(); err != nil {
		respondBadRequest(ctx, "validation failed: %v", err.Error())
		return false
	}
	return true
}

// actingUser reads the acting user from the request header, answering 401
// when it is missing.
func actingUser(ctx *gin.Context) (string, bool) {
	userID := ctx.GetHeader(UserIDHeader)
	if userID == "" {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("missing %s header", UserIDHeader)
		ctx.JSON(http.StatusUnauthorized, errorResponse)
		return "", false
	}
	return userID, true
}

// queryInt parses an optional integer query parameter.
func queryInt(ctx *gin.Context, name string) (int, bool) {
	value := ctx.Query(name)
	if len(value) == 0 {
		return 0, true
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		respondBadRequest(ctx, "invalid %s: %s", name, value)
		return 0, false
	}
	return n, true
}
