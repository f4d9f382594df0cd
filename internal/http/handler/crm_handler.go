package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/agenciaworcode-source/dashboard-expatur/internal/domain"
	"go.uber.org/zap"
)

const (
	actionSync      = "sync"
	actionDashboard = "dashboard"
)

// SyncRunner triggers a full CRM synchronization
type SyncRunner interface {
	Run(ctx context.Context) (*domain.SyncSummary, error)
}

// DashboardProvider computes the dashboard payload for a filter
type DashboardProvider interface {
	GetDashboard(ctx context.Context, filter domain.DashboardFilter) (*domain.DashboardResponse, error)
}

// CRMHandler is the single entry point of the API. Requests carry an action
// name ("sync" or "dashboard") in the query string or the JSON body; the
// handler dispatches to the matching service.
type CRMHandler struct {
	syncService      SyncRunner
	dashboardService DashboardProvider
	logger           *zap.Logger
}

func NewCRMHandler(syncService SyncRunner, dashboardService DashboardProvider, logger *zap.Logger) *CRMHandler {
	return &CRMHandler{
		syncService:      syncService,
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// crmRequest is the JSON body accepted on POST. All fields are optional.
// Dashboard filters arrive nested under "filters"; top-level fields are
// accepted as an alias.
type crmRequest struct {
	Action      string     `json:"action"`
	Filters     crmFilters `json:"filters"`
	DateFrom    string     `json:"dateFrom"`
	DateTo      string     `json:"dateTo"`
	StageFilter string     `json:"stageFilter"`
}

type crmFilters struct {
	DateFrom    string `json:"dateFrom"`
	DateTo      string `json:"dateTo"`
	StageFilter string `json:"stageFilter"`
}

// @Summary CRM action dispatch
// @Description Single endpoint for the sales dashboard. The `action` parameter selects the operation:
// @Description - `sync`: pulls ticketed and flown deals from Bitrix24 and upserts them into the local store
// @Description - `dashboard` (default): returns dashboard metrics, per-currency breakdown and the deal list
// @Description
// @Description Dashboard filters (`dateFrom`, `dateTo`, `stageFilter`) may be passed in the query
// @Description string or in the JSON body under `filters`; query parameters take precedence.
// @Tags CRM
// @Accept json
// @Produce json
// @Param action query string false "Action to perform" Enums(sync, dashboard)
// @Param dateFrom query string false "Filter start date (YYYY-MM-DD or RFC 3339)"
// @Param dateTo query string false "Filter end date (YYYY-MM-DD or RFC 3339)"
// @Param stageFilter query string false "Stage filter" Enums(all, ticketed, flown)
// @Param request body crmRequest false "Action and filters as JSON"
// @Success 200 {object} domain.DashboardResponse
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /crm [post]
// @Router /crm [get]
func (h *CRMHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var body crmRequest
	if r.Method == http.MethodPost && r.Body != nil {
		// Body parse failures are not fatal; the action may be in the query
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			h.logger.Debug("ignoring unparseable request body", zap.Error(err))
		}
	}

	action := r.URL.Query().Get("action")
	if action == "" {
		action = body.Action
	}
	if action == "" {
		action = actionDashboard
	}

	switch action {
	case actionSync:
		h.handleSync(w, r)
	case actionDashboard:
		h.handleDashboard(w, r, body)
	default:
		respondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("unknown action: %s (valid actions: %s, %s)", action, actionSync, actionDashboard))
	}
}

func (h *CRMHandler) handleSync(w http.ResponseWriter, r *http.Request) {
	summary, err := h.syncService.Run(r.Context())
	if err != nil {
		h.logger.Error("sync failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

func (h *CRMHandler) handleDashboard(w http.ResponseWriter, r *http.Request, body crmRequest) {
	query := r.URL.Query()

	filter := domain.DashboardFilter{
		DateFrom:    firstNonEmpty(query.Get("dateFrom"), body.Filters.DateFrom, body.DateFrom),
		DateTo:      firstNonEmpty(query.Get("dateTo"), body.Filters.DateTo, body.DateTo),
		StageFilter: firstNonEmpty(query.Get("stageFilter"), body.Filters.StageFilter, body.StageFilter),
	}

	if err := validate.Struct(&filter); err != nil {
		respondValidationError(w, err)
		return
	}

	response, err := h.dashboardService.GetDashboard(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to build dashboard", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, response)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
