// README: Firm handlers for billing policy CRUD.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"claimcipher/internal/modules/firm"
	"claimcipher/internal/types"
)

type FirmHandler struct {
	firm *firm.Service
}

func NewFirmHandler(svc *firm.Service) *FirmHandler {
	return &FirmHandler{firm: svc}
}

type policyReq struct {
	Name             string  `json:"name"`
	FreeMiles        float64 `json:"free_miles"`
	RatePerMile      float64 `json:"rate_per_mile"`
	RoundTripDefault bool    `json:"round_trip_default"`
}

func (h *FirmHandler) List(c *gin.Context) {
	policies, err := h.firm.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if policies == nil {
		policies = []firm.Policy{}
	}
	writeJSON(c, http.StatusOK, gin.H{"firms": policies})
}

func (h *FirmHandler) Get(c *gin.Context) {
	p, err := h.firm.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, p)
}

func (h *FirmHandler) Create(c *gin.Context) {
	var req policyReq
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.firm.Create(c.Request.Context(), firm.CreateCommand{
		Name:             req.Name,
		FreeMiles:        req.FreeMiles,
		RatePerMile:      req.RatePerMile,
		RoundTripDefault: req.RoundTripDefault,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, p)
}

func (h *FirmHandler) Update(c *gin.Context) {
	var req policyReq
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.firm.Update(c.Request.Context(), firm.UpdateCommand{
		ID:               types.ID(c.Param("id")),
		Name:             req.Name,
		FreeMiles:        req.FreeMiles,
		RatePerMile:      req.RatePerMile,
		RoundTripDefault: req.RoundTripDefault,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, p)
}

func (h *FirmHandler) Delete(c *gin.Context) {
	if err := h.firm.Delete(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
