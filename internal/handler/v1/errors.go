package handler

import (
	"errors"
	"net/http"

	"github.com/Zzz0801/iNews/internal/service"
	"github.com/Zzz0801/iNews/pkg/httputils"
)

// apiErrHandler maps service sentinel errors onto HTTP statuses. Upstream
// failures never reach here; the feed gateway absorbs them.
func apiErrHandler(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrInvalidCredentials):
		httputils.WriteErrorResponse(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrArticleNotFound),
		errors.Is(err, service.ErrCommentNotFound):
		httputils.WriteErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrMissingCredentials),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmptyComment),
		errors.Is(err, service.ErrCommentTooLong):
		httputils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		httputils.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
	}
}
