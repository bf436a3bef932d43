package weight

import (
	"encoding/json"
	"net/http"

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
	r.HandleFunc("/weight", handler.HandleGetState).Methods("GET", "OPTIONS").Name("weight-state")
	r.HandleFunc("/weight/config", handler.HandleUpdateConfig).Methods("PUT", "OPTIONS").Name("update-weight-config")
	r.HandleFunc("/weight/entry", handler.HandleAddEntry).Methods("POST", "OPTIONS").Name("new-weight-entry")
	r.HandleFunc("/weight/entry/{date}", handler.HandleUpdateEntry).Methods("PUT", "OPTIONS").Name("update-weight-entry")
	r.HandleFunc("/weight/entry/{date}", handler.HandleRemoveEntry).Methods("DELETE", "OPTIONS").Name("remove-weight-entry")
	r.HandleFunc("/weight/stats", handler.HandleStats).Methods("GET", "OPTIONS").Name("weight-stats")
	r.HandleFunc("/weight/chart", handler.HandleChart).Methods("GET", "OPTIONS").Name("weight-chart")
}

func (handler *Handler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	writeJson(w, handler.store.State(), http.StatusOK)
}

func (handler *Handler) HandleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var patch ConfigPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Tracef("update weight config, unmarshal json params: %s", err)
		http.Error(w, "update config failed", http.StatusBadRequest)
		return
	}

	config := handler.store.UpdateConfig(r.Context(), patch)
	handler.metrics.MutationDone("weight", "updateConfig")

	writeJson(w, config, http.StatusOK)
}

type addEntryRequest struct {
	Kg      float64 `json:"kg"`
	DateISO string  `json:"dateISO"`
}

func (handler *Handler) HandleAddEntry(w http.ResponseWriter, r *http.Request) {
	var req addEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new weight entry, unmarshal json params: %s", err)
		http.Error(w, "add entry failed", http.StatusBadRequest)
		return
	}

	if !handler.store.AddEntry(r.Context(), req.Kg, req.DateISO) {
		http.Error(w, "error, invalid weight", http.StatusBadRequest)
		return
	}
	handler.metrics.MutationDone("weight", "addEntry")

	writeJson(w, handler.store.State().Entries, http.StatusCreated)
}

type updateEntryRequest struct {
	Kg float64 `json:"kg"`
}

func (handler *Handler) HandleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	var req updateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update weight entry, unmarshal json params: %s", err)
		http.Error(w, "update entry failed", http.StatusBadRequest)
		return
	}

	if !handler.store.UpdateEntry(r.Context(), date, req.Kg) {
		http.Error(w, "entry not found or invalid weight", http.StatusBadRequest)
		return
	}
	handler.metrics.MutationDone("weight", "updateEntry")

	pkg.WriteResponseOK(w, "", "updated:"+date)
}

func (handler *Handler) HandleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	if !handler.store.RemoveEntry(r.Context(), date) {
		http.Error(w, "entry not found", http.StatusNotFound)
		return
	}
	handler.metrics.MutationDone("weight", "removeEntry")

	pkg.WriteResponseOK(w, "", "removed:"+date)
}

// StatsResponse bundles the summary with the goal progress.
type StatsResponse struct {
	Stats
	ProgressToTarget float64 `json:"progressToTarget"`
}

func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	state := handler.store.State()
	writeJson(w, StatsResponse{
		Stats:            ComputeStats(state.Entries, state.Config),
		ProgressToTarget: ProgressToTarget(state.Entries, state.Config.TargetKg),
	}, http.StatusOK)
}

func (handler *Handler) HandleChart(w http.ResponseWriter, r *http.Request) {
	writeJson(w, ChartData(handler.store.State().Entries), http.StatusOK)
}

func writeJson(w http.ResponseWriter, v any, statusCode int) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Errorf("weight handler: marshal response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, data, statusCode)
}
