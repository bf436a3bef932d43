package home

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/lucasmr/fitdiario/pkg"
)

type Handler struct {
	aggregator *Aggregator
}

func NewHandler(aggregator *Aggregator) *Handler {
	return &Handler{aggregator: aggregator}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/home/progress", handler.HandleProgress).Methods("GET", "OPTIONS").Name("home-progress")
}

func (handler *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	data, err := json.Marshal(handler.aggregator.Summarize())
	if err != nil {
		log.Errorf("home handler: marshal response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, data, http.StatusOK)
}
