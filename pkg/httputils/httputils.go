package httputils

import (
	"encoding/json"
	"net/http"
	"strings"

	chi "github.com/go-chi/chi/v5"
	"go.uber.org/fx"
)

type Handler interface {
	OnRouter(chi.Router)
}

func AsHandler(groupTag string, handler any) any {
	return fx.Annotate(handler, fx.ResultTags(groupTag), fx.As(new(Handler)))
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteErrorResponse(w http.ResponseWriter, statusCode int, errorMessage ...string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(ErrorResponse{
		Error: strings.Join(errorMessage, " "),
	})
}

func WriteJSONResponse(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(payload)
}
