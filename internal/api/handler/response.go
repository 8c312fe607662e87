package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/pinterest-insights-api/pkg/apiErrors"
	"github.com/vfg2006/pinterest-insights-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("http: failed to encode response")
	}
}

func writeOK(w http.ResponseWriter, r *http.Request, body any) {
	writeJSON(w, r, http.StatusOK, body)
}

// writeInternalError esconde a causa do cliente e registra no log
func writeInternalError(w http.ResponseWriter, r *http.Request, err error, message string) {
	log.ForContext(r.Context()).WithError(err).Error("http: " + message)
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, message, nil)
}
