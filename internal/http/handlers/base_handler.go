// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"claimcipher/internal/maps"
	"claimcipher/internal/modules/firm"
	"claimcipher/internal/modules/mileage"
	"claimcipher/internal/modules/route"
	"claimcipher/internal/types"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeServiceError maps module errors onto HTTP statuses. Anything it does
// not recognise is a 500 with the detail kept out of the response body.
func writeServiceError(c *gin.Context, err error) {
	var verr types.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(c, http.StatusBadRequest, errorResponse{Error: verr.Error(), Field: verr.Field})
	case errors.Is(err, firm.ErrNotFound), errors.Is(err, route.ErrExportNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, firm.ErrDuplicate), errors.Is(err, firm.ErrLastPolicy):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, route.ErrExportStale):
		writeError(c, http.StatusGone, err.Error())
	case errors.Is(err, maps.ErrNoRoute):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, route.ErrNoLegSource), errors.Is(err, mileage.ErrNoTripLog),
		errors.Is(err, mileage.ErrNoRouteImporter):
		writeError(c, http.StatusServiceUnavailable, err.Error())
	default:
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// bindJSON decodes the body into req and answers 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

func Health(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"status": "ok"})
}
