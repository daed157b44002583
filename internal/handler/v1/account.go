package handler

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/Zzz0801/iNews/internal/service"
	"github.com/Zzz0801/iNews/pkg/httputils"
)

type CredentialsBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AccountHandler interface {
	Register(w http.ResponseWriter, r *http.Request, body *CredentialsBody)
	Login(w http.ResponseWriter, r *http.Request, body *CredentialsBody)
}

type accountHandler struct {
	accountService *service.AccountService
}

type registerResponse struct {
	Message string `json:"message"`
}

func (hand *accountHandler) Register(w http.ResponseWriter, r *http.Request, body *CredentialsBody) {
	if err := hand.accountService.Register(body.Username, body.Password); err != nil {
		apiErrHandler(w, err)
		return
	}
	httputils.WriteJSONResponse(w, http.StatusOK, &registerResponse{Message: "registration successful"})
}

type loginResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

func (hand *accountHandler) Login(w http.ResponseWriter, r *http.Request, body *CredentialsBody) {
	username, err := hand.accountService.Login(body.Username, body.Password)
	if err != nil {
		apiErrHandler(w, err)
		return
	}
	httputils.WriteJSONResponse(w, http.StatusOK, &loginResponse{Message: "login successful", Username: username})
}

var _ AccountHandler = (*accountHandler)(nil)

type accountParamsWrapperHandler struct {
	handler AccountHandler
}

func (h *accountParamsWrapperHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body CredentialsBody
	if !decodeBody(w, r, &body) {
		return
	}
	h.handler.Register(w, r, &body)
}

func (h *accountParamsWrapperHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body CredentialsBody
	if !decodeBody(w, r, &body) {
		return
	}
	h.handler.Login(w, r, &body)
}

func (h *accountParamsWrapperHandler) OnRouter(router chi.Router) {
	router.Post("/api/register", h.Register)
	router.Post("/api/login", h.Login)
}

func NewAccountHandler(accountService *service.AccountService) *accountParamsWrapperHandler {
	return &accountParamsWrapperHandler{
		handler: &accountHandler{accountService: accountService},
	}
}
