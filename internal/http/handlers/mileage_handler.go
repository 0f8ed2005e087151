// README: Mileage handlers for calculate, trip history and route import.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"claimcipher/internal/modules/mileage"
	"claimcipher/internal/types"
)

type MileageHandler struct {
	mileage *mileage.Service
}

func NewMileageHandler(svc *mileage.Service) *MileageHandler {
	return &MileageHandler{mileage: svc}
}

type calculateReq struct {
	FirmID        string  `json:"firm_id"`
	PointA        string  `json:"point_a"`
	PointB        string  `json:"point_b"`
	DistanceMiles float64 `json:"distance_miles"`
	RoundTrip     *bool   `json:"round_trip"`
	Note          string  `json:"note"`
	Save          bool    `json:"save"`
}

type importReq struct {
	ExportID  string `json:"export_id"`
	FirmID    string `json:"firm_id"`
	RoundTrip *bool  `json:"round_trip"`
	Note      string `json:"note"`
	Save      bool   `json:"save"`
}

type calculationResp struct {
	Calculation mileage.Calculation `json:"calculation"`
	Amount      string              `json:"amount"`
	Summary     string              `json:"summary"`
}

func toCalculationResp(calc mileage.Calculation) calculationResp {
	return calculationResp{
		Calculation: calc,
		Amount:      calc.AmountMoney().String(),
		Summary:     calc.Summary(),
	}
}

func (h *MileageHandler) Calculate(c *gin.Context) {
	var req calculateReq
	if !bindJSON(c, &req) {
		return
	}
	calc, err := h.mileage.Calculate(c.Request.Context(), mileage.CalculateCommand{
		FirmID:        types.ID(req.FirmID),
		PointA:        req.PointA,
		PointB:        req.PointB,
		DistanceMiles: req.DistanceMiles,
		RoundTrip:     req.RoundTrip,
		Note:          req.Note,
		Save:          req.Save,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	status := http.StatusOK
	if req.Save {
		status = http.StatusCreated
	}
	writeJSON(c, status, toCalculationResp(calc))
}

func (h *MileageHandler) Trips(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(c, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}
	trips, err := h.mileage.History(c.Request.Context(), limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	out := make([]calculationResp, 0, len(trips))
	for _, t := range trips {
		out = append(out, toCalculationResp(t))
	}
	writeJSON(c, http.StatusOK, gin.H{"trips": out})
}

func (h *MileageHandler) Import(c *gin.Context) {
	var req importReq
	if !bindJSON(c, &req) {
		return
	}
	calc, err := h.mileage.ImportRoute(c.Request.Context(), mileage.ImportCommand{
		ExportID:  types.ID(req.ExportID),
		FirmID:    types.ID(req.FirmID),
		RoundTrip: req.RoundTrip,
		Note:      req.Note,
		Save:      req.Save,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toCalculationResp(calc))
}
