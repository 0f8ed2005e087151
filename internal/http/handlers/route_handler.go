// README: Route handlers for split, plan and export.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"claimcipher/internal/modules/route"
)

type RouteHandler struct {
	route *route.Service
}

func NewRouteHandler(svc *route.Service) *RouteHandler {
	return &RouteHandler{route: svc}
}

// settingsReq leaves every field optional; omitted ones use the server defaults.
type settingsReq struct {
	MaxLegMiles     *float64 `json:"max_leg_miles"`
	SplitEnabled    *bool    `json:"split_enabled"`
	OptimizeEnabled *bool    `json:"optimize_enabled"`
}

func (r settingsReq) apply(s route.Settings) route.Settings {
	if r.MaxLegMiles != nil {
		s.MaxLegMiles = *r.MaxLegMiles
	}
	if r.SplitEnabled != nil {
		s.SplitEnabled = *r.SplitEnabled
	}
	if r.OptimizeEnabled != nil {
		s.OptimizeEnabled = *r.OptimizeEnabled
	}
	return s
}

type splitReq struct {
	settingsReq
	Legs []route.Leg `json:"legs"`
}

type planReq struct {
	settingsReq
	Start        string   `json:"start"`
	Destinations []string `json:"destinations"`
}

type routeResp struct {
	Route   route.SplitRoute `json:"route"`
	Summary string           `json:"summary"`
}

func (h *RouteHandler) Split(c *gin.Context) {
	var req splitReq
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.route.Split(req.Legs, req.apply(h.route.DefaultSettings()))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, routeResp{Route: r, Summary: r.Summary()})
}

func (h *RouteHandler) Plan(c *gin.Context) {
	var req planReq
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.route.Plan(c.Request.Context(), route.PlanCommand{
		Start:        req.Start,
		Destinations: req.Destinations,
		Settings:     req.apply(h.route.DefaultSettings()),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, routeResp{Route: r, Summary: r.Summary()})
}

// Export re-splits the submitted legs and stores the server-computed totals.
func (h *RouteHandler) Export(c *gin.Context) {
	var req splitReq
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.route.Split(req.Legs, req.apply(h.route.DefaultSettings()))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	e, err := h.route.Export(c.Request.Context(), r)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, e)
}
