package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/api/service"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/aussiebroadwan/healthmate/pkg/httpx"
)

type MetricsHandler struct {
	MetricService *service.MetricService
	Location      *time.Location
}

func (h *MetricsHandler) loc() *time.Location {
	if h.Location != nil {
		return h.Location
	}
	return time.UTC
}

// HandleRecordBMI godoc
//
//	@Summary	Record BMI
//	@Tags		Metrics
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		healthsdk.BMIRequest	true	"Measurement"
//	@Success	201		{object}	healthsdk.LogResponse[healthsdk.BMIEntry]
//	@Failure	400		{object}	healthsdk.ErrorResponse
//	@Router		/api/metrics/bmi [post].
func (h *MetricsHandler) HandleRecordBMI(w http.ResponseWriter, r *http.Request) {
	var req healthsdk.BMIRequest
	if !decode(w, r, &req) {
		return
	}

	l, logs, err := h.MetricService.RecordBMI(r.Context(), httpx.UserIDFromCtx(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	latest := toBMIEntry(l, h.loc())
	httpx.WriteJSON(w, http.StatusCreated, healthsdk.LogResponse[healthsdk.BMIEntry]{
		Latest: &latest,
		Logs:   mapAll(logs, h.loc(), toBMIEntry),
	})
}

// HandleListBMI godoc
//
//	@Summary	BMI history
//	@Tags		Metrics
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	healthsdk.LogResponse[healthsdk.BMIEntry]	"Newest first"
//	@Router		/api/metrics/bmi [get].
func (h *MetricsHandler) HandleListBMI(w http.ResponseWriter, r *http.Request) {
	logs, err := h.MetricService.ListBMI(r.Context(), httpx.UserIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, healthsdk.LogResponse[healthsdk.BMIEntry]{Logs: mapAll(logs, h.loc(), toBMIEntry)})
}

// HandleRecordBMR godoc
//
//	@Summary	Record BMR and TDEE
//	@Tags		Metrics
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		healthsdk.BMRRequest	true	"Inputs"
//	@Success	201		{object}	healthsdk.LogResponse[healthsdk.BMREntry]
//	@Failure	400		{object}	healthsdk.ErrorResponse
//	@Router		/api/metrics/bmr [post].
func (h *MetricsHandler) HandleRecordBMR(w http.ResponseWriter, r *http.Request) {
	var req healthsdk.BMRRequest
	if !decode(w, r, &req) {
		return
	}

	l, logs, err := h.MetricService.RecordBMR(r.Context(), httpx.UserIDFromCtx(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	latest := toBMREntry(l, h.loc())
	httpx.WriteJSON(w, http.StatusCreated, healthsdk.LogResponse[healthsdk.BMREntry]{
		Latest: &latest,
		Logs:   mapAll(logs, h.loc(), toBMREntry),
	})
}

// HandleListBMR godoc
//
//	@Summary	BMR history
//	@Tags		Metrics
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	healthsdk.LogResponse[healthsdk.BMREntry]	"Newest first"
//	@Router		/api/metrics/bmr [get].
func (h *MetricsHandler) HandleListBMR(w http.ResponseWriter, r *http.Request) {
	logs, err := h.MetricService.ListBMR(r.Context(), httpx.UserIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, healthsdk.LogResponse[healthsdk.BMREntry]{Logs: mapAll(logs, h.loc(), toBMREntry)})
}

// HandleRecordHeartRate godoc
//
//	@Summary	Record target heart rate
//	@Tags		Metrics
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		healthsdk.HeartRateRequest	true	"Age and optional resting rate"
//	@Success	201		{object}	healthsdk.LogResponse[healthsdk.HeartRateEntry]
//	@Failure	400		{object}	healthsdk.ErrorResponse
//	@Router		/api/metrics/heart-rate [post].
func (h *MetricsHandler) HandleRecordHeartRate(w http.ResponseWriter, r *http.Request) {
	var req healthsdk.HeartRateRequest
	if !decode(w, r, &req) {
		return
	}

	l, logs, err := h.MetricService.RecordHeartRate(r.Context(), httpx.UserIDFromCtx(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	latest := toHeartRateEntry(l, h.loc())
	httpx.WriteJSON(w, http.StatusCreated, healthsdk.LogResponse[healthsdk.HeartRateEntry]{
		Latest: &latest,
		Logs:   mapAll(logs, h.loc(), toHeartRateEntry),
	})
}

// HandleListHeartRate godoc
//
//	@Summary	Heart rate history
//	@Tags		Metrics
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	healthsdk.LogResponse[healthsdk.HeartRateEntry]	"Newest first"
//	@Router		/api/metrics/heart-rate [get].
func (h *MetricsHandler) HandleListHeartRate(w http.ResponseWriter, r *http.Request) {
	logs, err := h.MetricService.ListHeartRate(r.Context(), httpx.UserIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, healthsdk.LogResponse[healthsdk.HeartRateEntry]{Logs: mapAll(logs, h.loc(), toHeartRateEntry)})
}
