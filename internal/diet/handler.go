package diet

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
	r.HandleFunc("/diet", handler.HandleGetState).Methods("GET", "OPTIONS").Name("diet-state")
	r.HandleFunc("/diet/dish", handler.HandleAddDish).Methods("POST", "OPTIONS").Name("new-dish")
	r.HandleFunc("/diet/dish/{id}", handler.HandleUpdateDish).Methods("PUT", "OPTIONS").Name("update-dish")
	r.HandleFunc("/diet/dish/{id}", handler.HandleRemoveDish).Methods("DELETE", "OPTIONS").Name("remove-dish")
	r.HandleFunc("/diet/template/{weekday}/{meal}", handler.HandleAssignDish).Methods("POST", "OPTIONS").Name("assign-dish")
	r.HandleFunc("/diet/template/{weekday}/swap", handler.HandleSwapMeals).Methods("PUT", "OPTIONS").Name("swap-meals")
	r.HandleFunc("/diet/day/select", handler.HandleSelectDate).Methods("POST", "OPTIONS").Name("select-date")
	r.HandleFunc("/diet/day/regenerate", handler.HandleRegenerateDay).Methods("POST", "OPTIONS").Name("regenerate-day")
	r.HandleFunc("/diet/day/meal/{meal}/toggle", handler.HandleToggleMeal).Methods("POST", "OPTIONS").Name("toggle-meal")
	r.HandleFunc("/diet/day/meal/{meal}/item/{itemId}/toggle", handler.HandleToggleItem).Methods("POST", "OPTIONS").Name("toggle-item")
	r.HandleFunc("/diet/day/progress", handler.HandleDayProgress).Methods("GET", "OPTIONS").Name("diet-progress")
}

func (handler *Handler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	writeJson(w, handler.store.State(), http.StatusOK)
}

func (handler *Handler) HandleAddDish(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var fields DishFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		log.Tracef("new dish, unmarshal json params: %s", err)
		http.Error(w, "add dish failed", http.StatusBadRequest)
		return
	}
	if fields.Name == "" {
		http.Error(w, "error, dish name empty", http.StatusBadRequest)
		return
	}

	dish := handler.store.AddDish(r.Context(), fields)
	handler.metrics.MutationDone("diet", "addDish")

	writeJson(w, dish, http.StatusCreated)
}

func (handler *Handler) HandleUpdateDish(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	var patch DishPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Tracef("update dish, unmarshal json params: %s", err)
		http.Error(w, "update dish failed", http.StatusBadRequest)
		return
	}

	if !handler.store.UpdateDish(r.Context(), id, patch) {
		http.Error(w, "dish not found", http.StatusNotFound)
		return
	}
	handler.metrics.MutationDone("diet", "updateDish")

	pkg.WriteResponseOK(w, "", "updated:"+id)
}

func (handler *Handler) HandleRemoveDish(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	handler.store.RemoveDish(r.Context(), id)
	handler.metrics.MutationDone("diet", "removeDish")

	pkg.WriteResponseOK(w, "", "removed:"+id)
}

type assignDishRequest struct {
	DishID string  `json:"dishId"`
	Qty    float64 `json:"qty"`
}

func (handler *Handler) HandleAssignDish(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	weekday, meal := vars["weekday"], vars["meal"]

	var req assignDishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("assign dish, unmarshal json params: %s", err)
		http.Error(w, "assign dish failed", http.StatusBadRequest)
		return
	}
	if req.DishID == "" {
		http.Error(w, "error, dish id empty", http.StatusBadRequest)
		return
	}

	if !handler.store.AssignDishToDay(r.Context(), weekday, meal, req.DishID, req.Qty) {
		http.Error(w, "error, invalid weekday, meal or quantity", http.StatusBadRequest)
		return
	}
	handler.metrics.MutationDone("diet", "assignDishToDay")

	writeJson(w, handler.store.State().Weekly, http.StatusOK)
}

type swapMealsRequest struct {
	MealA string `json:"mealA"`
	MealB string `json:"mealB"`
}

func (handler *Handler) HandleSwapMeals(w http.ResponseWriter, r *http.Request) {
	weekday := mux.Vars(r)["weekday"]

	var req swapMealsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("swap meals, unmarshal json params: %s", err)
		http.Error(w, "swap meals failed", http.StatusBadRequest)
		return
	}

	if !handler.store.SwapMeals(r.Context(), weekday, req.MealA, req.MealB) {
		http.Error(w, "error, invalid weekday or meals", http.StatusBadRequest)
		return
	}
	handler.metrics.MutationDone("diet", "swapMeals")

	writeJson(w, handler.store.State().Weekly, http.StatusOK)
}

type selectDateRequest struct {
	DateISO string `json:"dateISO"`
}

func (handler *Handler) HandleSelectDate(w http.ResponseWriter, r *http.Request) {
	var req selectDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("select date, unmarshal json params: %s", err)
		http.Error(w, "select date failed", http.StatusBadRequest)
		return
	}

	day := handler.store.SelectDate(r.Context(), req.DateISO)
	handler.metrics.MutationDone("diet", "selectDate")

	writeJson(w, day, http.StatusOK)
}

func (handler *Handler) HandleRegenerateDay(w http.ResponseWriter, r *http.Request) {
	var req selectDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("regenerate day, unmarshal json params: %s", err)
		http.Error(w, "regenerate day failed", http.StatusBadRequest)
		return
	}

	day := handler.store.RegenerateDay(r.Context(), req.DateISO)
	handler.metrics.MutationDone("diet", "regenerateDay")

	writeJson(w, day, http.StatusOK)
}

func (handler *Handler) HandleToggleMeal(w http.ResponseWriter, r *http.Request) {
	meal := mux.Vars(r)["meal"]

	if !handler.store.ToggleMeal(r.Context(), meal) {
		http.Error(w, "error, meal empty or unknown", http.StatusBadRequest)
		return
	}
	handler.metrics.MutationDone("diet", "toggleMeal")

	day, _ := handler.store.State().SelectedDay()
	writeJson(w, day, http.StatusOK)
}

func (handler *Handler) HandleToggleItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	meal, itemID := vars["meal"], vars["itemId"]

	if !handler.store.ToggleItem(r.Context(), meal, itemID) {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}
	handler.metrics.MutationDone("diet", "toggleItem")

	day, _ := handler.store.State().SelectedDay()
	writeJson(w, day, http.StatusOK)
}

func (handler *Handler) HandleDayProgress(w http.ResponseWriter, r *http.Request) {
	day, ok := handler.store.State().SelectedDay()
	if !ok {
		day = DayProgress{}
	}
	writeJson(w, ComputeProgress(day), http.StatusOK)
}

func writeJson(w http.ResponseWriter, v any, statusCode int) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Errorf("diet handler: marshal response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, data, statusCode)
}
