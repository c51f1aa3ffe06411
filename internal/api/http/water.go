package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/api/service"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/aussiebroadwan/healthmate/pkg/httpx"
)

type WaterHandler struct {
	WaterService *service.WaterService
}

// HandleSummary godoc
//
//	@Summary		Hydration summary
//	@Description	Daily goal, recent drinks (newest first) and calendar day, week and month totals.
//	@Tags			Water
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	healthsdk.WaterSummary
//	@Router			/api/water/summary [get].
func (h *WaterHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.WaterService.Summary(r.Context(), httpx.UserIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, healthsdk.WaterSummary{
		Goal:   sum.Goal,
		Logs:   mapAll(sum.Logs, h.loc(), toWaterEntry),
		Totals: healthsdk.WaterTotals(sum.Totals),
	})
}

// HandleAddLog godoc
//
//	@Summary	Log a drink
//	@Tags		Water
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		healthsdk.WaterLogRequest	true	"Amount in ml"
//	@Success	201		{object}	healthsdk.WaterLogResponse
//	@Failure	400		{object}	healthsdk.ErrorResponse
//	@Router		/api/water/logs [post].
func (h *WaterHandler) HandleAddLog(w http.ResponseWriter, r *http.Request) {
	var req healthsdk.WaterLogRequest
	if !decode(w, r, &req) {
		return
	}

	l, logs, err := h.WaterService.AddLog(r.Context(), httpx.UserIDFromCtx(r.Context()), req.Amount)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, healthsdk.WaterLogResponse{
		Entry: toWaterEntry(l, h.loc()),
		Logs:  mapAll(logs, h.loc(), toWaterEntry),
	})
}

// HandleSetGoal godoc
//
//	@Summary		Set daily goal
//	@Description	Non-positive goals reset to 2000 ml.
//	@Tags			Water
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		healthsdk.WaterGoalRequest	true	"Goal in ml"
//	@Success		200		{object}	healthsdk.WaterGoalResponse
//	@Router			/api/water/goal [put].
func (h *WaterHandler) HandleSetGoal(w http.ResponseWriter, r *http.Request) {
	var req healthsdk.WaterGoalRequest
	if !decode(w, r, &req) {
		return
	}

	goal, err := h.WaterService.SetGoal(r.Context(), httpx.UserIDFromCtx(r.Context()), req.Goal)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, healthsdk.WaterGoalResponse{Goal: goal})
}

func (h *WaterHandler) loc() *time.Location {
	if h.WaterService.Location != nil {
		return h.WaterService.Location
	}
	return time.UTC
}
