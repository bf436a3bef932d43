package water

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/lucasmr/fitdiario/internal/telemetry/metrics"
	"github.com/lucasmr/fitdiario/pkg"
)

type Handler struct {
	store   *Store
	metrics *metrics.Manager
}

func NewHandler(store *Store, metrics *metrics.Manager) *Handler {
	return &Handler{
		store:   store,
		metrics: metrics,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/water", handler.HandleGetState).Methods("GET", "OPTIONS").Name("water-state")
	r.HandleFunc("/water/target", handler.HandleSetTarget).Methods("PUT", "OPTIONS").Name("set-target")
	r.HandleFunc("/water/presets", handler.HandleSetPresets).Methods("PUT", "OPTIONS").Name("set-presets")
	r.HandleFunc("/water/entry", handler.HandleAddEntry).Methods("POST", "OPTIONS").Name("new-entry")
	r.HandleFunc("/water/entry/{index}", handler.HandleUpdateEntry).Methods("PUT", "OPTIONS").Name("update-entry")
	r.HandleFunc("/water/entry/{index}", handler.HandleRemoveEntry).Methods("DELETE", "OPTIONS").Name("remove-entry")
	r.HandleFunc("/water/today/reset", handler.HandleResetToday).Methods("POST", "OPTIONS").Name("reset-today")
	r.HandleFunc("/water/today/commit", handler.HandleCommitToday).Methods("POST", "OPTIONS").Name("commit-today")
	r.HandleFunc("/water/history/{date}", handler.HandleUpdateHistory).Methods("PUT", "OPTIONS").Name("update-history")
	r.HandleFunc("/water/history/{date}", handler.HandleRemoveHistory).Methods("DELETE", "OPTIONS").Name("remove-history")
	r.HandleFunc("/water/stats", handler.HandleStats).Methods("GET", "OPTIONS").Name("water-stats")
}

func (handler *Handler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	writeJson(w, handler.store.State(), http.StatusOK)
}

type amountRequest struct {
	ML int `json:"ml"`
}

func (handler *Handler) HandleSetTarget(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("set target, unmarshal json params: %s", err)
		http.Error(w, "set target failed", http.StatusBadRequest)
		return
	}

	if !handler.store.SetTarget(r.Context(), req.ML) {
		http.Error(w, "error, target must be positive", http.StatusBadRequest)
		return
	}
	handler.metrics.MutationDone("water", "setTarget")

	writeJson(w, handler.store.State().Config, http.StatusOK)
}

type presetsRequest struct {
	Presets []int `json:"presets"`
}

func (handler *Handler) HandleSetPresets(w http.ResponseWriter, r *http.Request) {
	var req presetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("set presets, unmarshal json params: %s", err)
		http.Error(w, "set presets failed", http.StatusBadRequest)
		return
	}

	handler.store.SetPresets(r.Context(), req.Presets)
	handler.metrics.MutationDone("water", "setPresets")

	writeJson(w, handler.store.State().Config, http.StatusOK)
}

func (handler *Handler) HandleAddEntry(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("add water entry, unmarshal json params: %s", err)
		http.Error(w, "add entry failed", http.StatusBadRequest)
		return
	}

	if !handler.store.AddEntry(r.Context(), req.ML) {
		http.Error(w, "error, amount must be positive", http.StatusBadRequest)
		return
	}
	handler.metrics.MutationDone("water", "addEntry")

	writeJson(w, handler.store.State().Today, http.StatusCreated)
}

func (handler *Handler) HandleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		http.Error(w, "error, index NaN", http.StatusBadRequest)
		return
	}

	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update water entry, unmarshal json params: %s", err)
		http.Error(w, "update entry failed", http.StatusBadRequest)
		return
	}

	if !handler.store.UpdateTodayEntry(r.Context(), index, req.ML) {
		http.Error(w, "error, invalid index or amount", http.StatusBadRequest)
		return
	}
	handler.metrics.MutationDone("water", "updateTodayEntry")

	writeJson(w, handler.store.State().Today, http.StatusOK)
}

func (handler *Handler) HandleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		http.Error(w, "error, index NaN", http.StatusBadRequest)
		return
	}

	if !handler.store.RemoveTodayEntry(r.Context(), index) {
		http.Error(w, "error, invalid index", http.StatusBadRequest)
		return
	}
	handler.metrics.MutationDone("water", "removeTodayEntry")

	writeJson(w, handler.store.State().Today, http.StatusOK)
}

func (handler *Handler) HandleResetToday(w http.ResponseWriter, r *http.Request) {
	handler.store.ResetToday(r.Context())
	handler.metrics.MutationDone("water", "resetToday")
	writeJson(w, handler.store.State().Today, http.StatusOK)
}

func (handler *Handler) HandleCommitToday(w http.ResponseWriter, r *http.Request) {
	handler.store.CommitToday(r.Context())
	handler.metrics.MutationDone("water", "commitToday")
	writeJson(w, handler.store.State().History, http.StatusOK)
}

type updateHistoryRequest struct {
	Total int `json:"total"`
}

func (handler *Handler) HandleUpdateHistory(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	var req updateHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update water history, unmarshal json params: %s", err)
		http.Error(w, "update history failed", http.StatusBadRequest)
		return
	}

	if !handler.store.UpdateHistoryEntry(r.Context(), date, req.Total) {
		http.Error(w, "history entry not found or total invalid", http.StatusBadRequest)
		return
	}
	handler.metrics.MutationDone("water", "updateHistoryEntry")

	writeJson(w, handler.store.State().History, http.StatusOK)
}

func (handler *Handler) HandleRemoveHistory(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	if !handler.store.RemoveHistoryEntry(r.Context(), date) {
		http.Error(w, "history entry not found", http.StatusNotFound)
		return
	}
	handler.metrics.MutationDone("water", "removeHistoryEntry")

	writeJson(w, handler.store.State().History, http.StatusOK)
}

// StatsResponse is the derived hydration summary.
type StatsResponse struct {
	TotalToday  int              `json:"totalToday"`
	Progress    float64          `json:"progress"`
	Streak      int              `json:"streak"`
	MonthGroups map[string][]Log `json:"monthGroups"`
}

func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	state := handler.store.State()
	writeJson(w, StatsResponse{
		TotalToday:  TotalIntake(state.Today),
		Progress:    IntakeProgress(state.Today),
		Streak:      Streak(state.History, state.Config.TargetML),
		MonthGroups: GroupByMonth(state.History),
	}, http.StatusOK)
}

func writeJson(w http.ResponseWriter, v any, statusCode int) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Errorf("water handler: marshal response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, data, statusCode)
}
