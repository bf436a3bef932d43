package training

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
	r.HandleFunc("/training", handler.HandleGetState).Methods("GET", "OPTIONS").Name("training-state")
	r.HandleFunc("/training/catalog", handler.HandleAddCatalogExercise).Methods("POST", "OPTIONS").Name("new-catalog-exercise")
	r.HandleFunc("/training/catalog/{id}", handler.HandleUpdateCatalogExercise).Methods("PUT", "OPTIONS").Name("update-catalog-exercise")
	r.HandleFunc("/training/catalog/{id}", handler.HandleRemoveCatalogExercise).Methods("DELETE", "OPTIONS").Name("remove-catalog-exercise")
	r.HandleFunc("/training/cardio-kind", handler.HandleAddCardioKind).Methods("POST", "OPTIONS").Name("new-cardio-kind")
	r.HandleFunc("/training/cardio-kind/{id}", handler.HandleRemoveCardioKind).Methods("DELETE", "OPTIONS").Name("remove-cardio-kind")
	r.HandleFunc("/training/split/{split}/am", handler.HandleAddAmBlock).Methods("POST", "OPTIONS").Name("new-am-block")
	r.HandleFunc("/training/split/{split}/am/{blockId}", handler.HandleRemoveAmBlock).Methods("DELETE", "OPTIONS").Name("remove-am-block")
	r.HandleFunc("/training/split/{split}/pm", handler.HandleAddPmExercise).Methods("POST", "OPTIONS").Name("new-pm-exercise")
	r.HandleFunc("/training/split/{split}/pm/{id}", handler.HandleUpdatePmExercise).Methods("PUT", "OPTIONS").Name("update-pm-exercise")
	r.HandleFunc("/training/split/{split}/pm/{id}", handler.HandleRemovePmExercise).Methods("DELETE", "OPTIONS").Name("remove-pm-exercise")
	r.HandleFunc("/training/split/{split}/pm/{id}/move", handler.HandleMovePmExercise).Methods("PUT", "OPTIONS").Name("move-pm-exercise")
	r.HandleFunc("/training/split/{split}/cardio/{blockId}/toggle", handler.HandleToggleCardioBlock).Methods("POST", "OPTIONS").Name("toggle-cardio-block")
	r.HandleFunc("/training/split/{split}/part/{part}/toggle", handler.HandleToggleSessionPart).Methods("POST", "OPTIONS").Name("toggle-session-part")
	r.HandleFunc("/training/split/{split}/exercise/{exerciseId}/toggle", handler.HandleToggleExerciseDone).Methods("POST", "OPTIONS").Name("toggle-exercise-done")
	r.HandleFunc("/training/split/{split}/exercise/{exerciseId}/sets", handler.HandleSetSetProgress).Methods("PUT", "OPTIONS").Name("set-set-progress")
	r.HandleFunc("/training/split/{split}/exercise/{exerciseId}/load", handler.HandleRecordLoad).Methods("PUT", "OPTIONS").Name("record-load")
	r.HandleFunc("/training/week/reset", handler.HandleResetWeek).Methods("POST", "OPTIONS").Name("reset-week")
	r.HandleFunc("/training/preferences", handler.HandleSetPreferences).Methods("PUT", "OPTIONS").Name("set-preferences")
	r.HandleFunc("/training/progress", handler.HandleProgress).Methods("GET", "OPTIONS").Name("training-progress")
	r.HandleFunc("/training/split/{split}/progress", handler.HandleSessionProgress).Methods("GET", "OPTIONS").Name("session-progress")
}

func (handler *Handler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	writeJson(w, handler.store.State(), http.StatusOK)
}

func (handler *Handler) HandleAddCatalogExercise(w http.ResponseWriter, r *http.Request) {
	var fields CatalogFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		log.Tracef("new catalog exercise, unmarshal json params: %s", err)
		http.Error(w, "add catalog exercise failed", http.StatusBadRequest)
		return
	}
	if fields.Name == "" {
		http.Error(w, "error, exercise name empty", http.StatusBadRequest)
		return
	}

	item := handler.store.AddCatalogExercise(r.Context(), fields)
	handler.metrics.MutationDone("training", "addCatalogExercise")

	writeJson(w, item, http.StatusCreated)
}

func (handler *Handler) HandleUpdateCatalogExercise(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var patch CatalogPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Tracef("update catalog exercise, unmarshal json params: %s", err)
		http.Error(w, "update catalog exercise failed", http.StatusBadRequest)
		return
	}

	if !handler.store.UpdateCatalogExercise(r.Context(), id, patch) {
		http.Error(w, "catalog exercise not found", http.StatusNotFound)
		return
	}
	handler.metrics.MutationDone("training", "updateCatalogExercise")

	pkg.WriteResponseOK(w, "", "updated:"+id)
}

func (handler *Handler) HandleRemoveCatalogExercise(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	handler.store.RemoveCatalogExercise(r.Context(), id)
	handler.metrics.MutationDone("training", "removeCatalogExercise")

	pkg.WriteResponseOK(w, "", "removed:"+id)
}

type addCardioKindRequest struct {
	Kind string `json:"kind"`
}

func (handler *Handler) HandleAddCardioKind(w http.ResponseWriter, r *http.Request) {
	var req addCardioKindRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new cardio kind, unmarshal json params: %s", err)
		http.Error(w, "add cardio kind failed", http.StatusBadRequest)
		return
	}

	item, ok := handler.store.AddCardioKind(r.Context(), req.Kind)
	if !ok {
		http.Error(w, "error, cardio kind empty", http.StatusBadRequest)
		return
	}
	handler.metrics.MutationDone("training", "addCardioKind")

	writeJson(w, item, http.StatusCreated)
}

func (handler *Handler) HandleRemoveCardioKind(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if !handler.store.RemoveCardioKind(r.Context(), id) {
		http.Error(w, "cardio kind not found", http.StatusNotFound)
		return
	}
	handler.metrics.MutationDone("training", "removeCardioKind")

	pkg.WriteResponseOK(w, "", "removed:"+id)
}

type addAmBlockRequest struct {
	Kind    string `json:"kind"`
	Minutes int    `json:"minutes"`
}

func (handler *Handler) HandleAddAmBlock(w http.ResponseWriter, r *http.Request) {
	split := mux.Vars(r)["split"]

	var req addAmBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new am block, unmarshal json params: %s", err)
		http.Error(w, "add am block failed", http.StatusBadRequest)
		return
	}

	if !handler.store.AddAmBlock(r.Context(), split, req.Kind, req.Minutes) {
		http.Error(w, "error, invalid split, kind or minutes", http.StatusBadRequest)
		return
	}
	handler.metrics.MutationDone("training", "addAmBlock")

	writeJson(w, handler.store.State().Template[split], http.StatusOK)
}

func (handler *Handler) HandleRemoveAmBlock(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	split, blockID := vars["split"], vars["blockId"]

	if !handler.store.RemoveAmBlock(r.Context(), split, blockID) {
		http.Error(w, "cardio block not found", http.StatusNotFound)
		return
	}
	handler.metrics.MutationDone("training", "removeAmBlock")

	pkg.WriteResponseOK(w, "", "removed:"+blockID)
}

type addPmExerciseRequest struct {
	CatalogID string `json:"catalogId"`
	Sets      int    `json:"sets"`
	Reps      string `json:"reps"`
	RestSec   int    `json:"restSec"`
}

func (handler *Handler) HandleAddPmExercise(w http.ResponseWriter, r *http.Request) {
	split := mux.Vars(r)["split"]

	var req addPmExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new pm exercise, unmarshal json params: %s", err)
		http.Error(w, "add pm exercise failed", http.StatusBadRequest)
		return
	}

	ex, ok := handler.store.AddPmExercise(r.Context(), split, req.CatalogID, req.Sets, req.Reps, req.RestSec)
	if !ok {
		http.Error(w, "error, invalid split or sets", http.StatusBadRequest)
		return
	}
	handler.metrics.MutationDone("training", "addPmExercise")

	writeJson(w, ex, http.StatusCreated)
}

func (handler *Handler) HandleUpdatePmExercise(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	split, id := vars["split"], vars["id"]

	var patch ExercisePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Tracef("update pm exercise, unmarshal json params: %s", err)
		http.Error(w, "update pm exercise failed", http.StatusBadRequest)
		return
	}

	if !handler.store.UpdatePmExercise(r.Context(), split, id, patch) {
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	}
	handler.metrics.MutationDone("training", "updatePmExercise")

	pkg.WriteResponseOK(w, "", "updated:"+id)
}

func (handler *Handler) HandleRemovePmExercise(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	split, id := vars["split"], vars["id"]

	if !handler.store.RemovePmExercise(r.Context(), split, id) {
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	}
	handler.metrics.MutationDone("training", "removePmExercise")

	pkg.WriteResponseOK(w, "", "removed:"+id)
}

type moveExerciseRequest struct {
	Direction string `json:"direction"`
}

func (handler *Handler) HandleMovePmExercise(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	split, id := vars["split"], vars["id"]

	var req moveExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("move pm exercise, unmarshal json params: %s", err)
		http.Error(w, "move pm exercise failed", http.StatusBadRequest)
		return
	}

	if !handler.store.MovePmExercise(r.Context(), split, id, req.Direction) {
		http.Error(w, "error, invalid move", http.StatusBadRequest)
		return
	}
	handler.metrics.MutationDone("training", "movePmExercise")

	writeJson(w, handler.store.State().Template[split], http.StatusOK)
}

func (handler *Handler) HandleToggleCardioBlock(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	split, blockID := vars["split"], vars["blockId"]

	if !handler.store.ToggleCardioBlock(r.Context(), split, blockID) {
		http.Error(w, "error, invalid split", http.StatusBadRequest)
		return
	}
	handler.metrics.MutationDone("training", "toggleCardioBlock")

	entry, _ := handler.store.State().LogForSplit(split)
	writeJson(w, entry, http.StatusOK)
}

func (handler *Handler) HandleToggleSessionPart(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	split, part := vars["split"], vars["part"]

	if !handler.store.ToggleSessionPart(r.Context(), split, part) {
		http.Error(w, "error, invalid split or part", http.StatusBadRequest)
		return
	}
	handler.metrics.MutationDone("training", "toggleSessionPart")

	entry, _ := handler.store.State().LogForSplit(split)
	writeJson(w, entry, http.StatusOK)
}

func (handler *Handler) HandleToggleExerciseDone(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	split, exerciseID := vars["split"], vars["exerciseId"]

	if !handler.store.ToggleExerciseDone(r.Context(), split, exerciseID) {
		http.Error(w, "error, invalid split", http.StatusBadRequest)
		return
	}
	handler.metrics.MutationDone("training", "toggleExerciseDone")

	entry, _ := handler.store.State().LogForSplit(split)
	writeJson(w, entry, http.StatusOK)
}

type setProgressRequest struct {
	Completed int `json:"completed"`
}

func (handler *Handler) HandleSetSetProgress(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	split, exerciseID := vars["split"], vars["exerciseId"]

	var req setProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("set set progress, unmarshal json params: %s", err)
		http.Error(w, "set set progress failed", http.StatusBadRequest)
		return
	}

	if !handler.store.SetExerciseSetProgress(r.Context(), split, exerciseID, req.Completed) {
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	}
	handler.metrics.MutationDone("training", "setExerciseSetProgress")

	entry, _ := handler.store.State().LogForSplit(split)
	writeJson(w, entry, http.StatusOK)
}

type recordLoadRequest struct {
	LoadKg float64 `json:"loadKg"`
}

func (handler *Handler) HandleRecordLoad(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	split, exerciseID := vars["split"], vars["exerciseId"]

	var req recordLoadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("record load, unmarshal json params: %s", err)
		http.Error(w, "record load failed", http.StatusBadRequest)
		return
	}

	if !handler.store.RecordExerciseLoad(r.Context(), split, exerciseID, req.LoadKg) {
		http.Error(w, "error, invalid exercise or load", http.StatusBadRequest)
		return
	}
	handler.metrics.MutationDone("training", "recordExerciseLoad")

	writeJson(w, handler.store.State().Template[split], http.StatusOK)
}

func (handler *Handler) HandleResetWeek(w http.ResponseWriter, r *http.Request) {
	week := handler.store.ResetWeek(r.Context())
	handler.metrics.MutationDone("training", "resetWeek")

	writeJson(w, week, http.StatusOK)
}

func (handler *Handler) HandleSetPreferences(w http.ResponseWriter, r *http.Request) {
	var patch PreferencesPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Tracef("set preferences, unmarshal json params: %s", err)
		http.Error(w, "set preferences failed", http.StatusBadRequest)
		return
	}

	prefs := handler.store.SetPreferences(r.Context(), patch)
	handler.metrics.MutationDone("training", "setPreferences")

	writeJson(w, prefs, http.StatusOK)
}

func (handler *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	state := handler.store.State()
	writeJson(w, ComputeProgress(state.Template, state.Week), http.StatusOK)
}

type sessionProgressResponse struct {
	Split    string  `json:"split"`
	Progress float64 `json:"progress"`
}

func (handler *Handler) HandleSessionProgress(w http.ResponseWriter, r *http.Request) {
	split := mux.Vars(r)["split"]
	if !IsValidSplit(split) {
		http.Error(w, "error, invalid split", http.StatusBadRequest)
		return
	}

	state := handler.store.State()
	var entry *Log
	for i := range state.Week {
		if state.Week[i].Split == split {
			entry = &state.Week[i]
			break
		}
	}
	writeJson(w, sessionProgressResponse{
		Split:    split,
		Progress: SessionProgress(state.Template[split], entry),
	}, http.StatusOK)
}

func writeJson(w http.ResponseWriter, v any, statusCode int) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Errorf("training handler: marshal response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, data, statusCode)
}
