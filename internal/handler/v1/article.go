package handler

import (
	"encoding/json"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/Zzz0801/iNews/internal/model"
	"github.com/Zzz0801/iNews/internal/service"
	"github.com/Zzz0801/iNews/pkg/httputils"
)

type ArticleURLParams struct {
	ID string
}

type CommentURLParams struct {
	ArticleID string
	CommentID string
}

type UsernameBody struct {
	Username string `json:"username"`
}

type PostCommentBody struct {
	Username string `json:"username"`
	Text     string `json:"text"`
}

type ArticleHandler interface {
	GetArticleByID(w http.ResponseWriter, r *http.Request, params *ArticleURLParams)
	ToggleArticleLike(w http.ResponseWriter, r *http.Request, params *ArticleURLParams, body *UsernameBody)
	GetComments(w http.ResponseWriter, r *http.Request, params *ArticleURLParams, username string)
	PostComment(w http.ResponseWriter, r *http.Request, params *ArticleURLParams, body *PostCommentBody)
	ToggleCommentLike(w http.ResponseWriter, r *http.Request, params *CommentURLParams, body *UsernameBody)
}

type articleHandler struct {
	engagementService *service.EngagementService
}

func (hand *articleHandler) GetArticleByID(w http.ResponseWriter, r *http.Request, params *ArticleURLParams) {
	item, err := hand.engagementService.ArticleByID(params.ID)
	if err != nil {
		apiErrHandler(w, err)
		return
	}
	httputils.WriteJSONResponse(w, http.StatusOK, &item)
}

type toggleLikeResponse struct {
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
}

func (hand *articleHandler) ToggleArticleLike(w http.ResponseWriter, r *http.Request, params *ArticleURLParams, body *UsernameBody) {
	likes, liked, err := hand.engagementService.ToggleLike(params.ID, body.Username)
	if err != nil {
		apiErrHandler(w, err)
		return
	}
	httputils.WriteJSONResponse(w, http.StatusOK, &toggleLikeResponse{Likes: likes, Liked: liked})
}

type getCommentsResponse struct {
	Items []model.CommentView `json:"items"`
}

func (hand *articleHandler) GetComments(w http.ResponseWriter, r *http.Request, params *ArticleURLParams, username string) {
	httputils.WriteJSONResponse(w, http.StatusOK, &getCommentsResponse{
		Items: hand.engagementService.ListComments(params.ID, username),
	})
}

type postCommentResponse struct {
	OK      bool          `json:"ok"`
	Comment model.Comment `json:"comment"`
}

func (hand *articleHandler) PostComment(w http.ResponseWriter, r *http.Request, params *ArticleURLParams, body *PostCommentBody) {
	comment, err := hand.engagementService.AddComment(params.ID, body.Username, body.Text)
	if err != nil {
		apiErrHandler(w, err)
		return
	}
	httputils.WriteJSONResponse(w, http.StatusOK, &postCommentResponse{OK: true, Comment: comment})
}

func (hand *articleHandler) ToggleCommentLike(w http.ResponseWriter, r *http.Request, params *CommentURLParams, body *UsernameBody) {
	likes, liked, err := hand.engagementService.ToggleCommentLike(params.ArticleID, params.CommentID, body.Username)
	if err != nil {
		apiErrHandler(w, err)
		return
	}
	httputils.WriteJSONResponse(w, http.StatusOK, &toggleLikeResponse{Likes: likes, Liked: liked})
}

var _ ArticleHandler = (*articleHandler)(nil)

type articleParamsWrapperHandler struct {
	handler ArticleHandler
}

func (h *articleParamsWrapperHandler) GetArticleByID(w http.ResponseWriter, r *http.Request) {
	h.handler.GetArticleByID(w, r, &ArticleURLParams{ID: chi.URLParam(r, "id")})
}

func (h *articleParamsWrapperHandler) ToggleArticleLike(w http.ResponseWriter, r *http.Request) {
	var body UsernameBody
	if !decodeBody(w, r, &body) {
		return
	}
	h.handler.ToggleArticleLike(w, r, &ArticleURLParams{ID: chi.URLParam(r, "id")}, &body)
}

func (h *articleParamsWrapperHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	h.handler.GetComments(w, r,
		&ArticleURLParams{ID: chi.URLParam(r, "id")},
		r.URL.Query().Get(USERNAME_QUERY_PARAM_NAME),
	)
}

func (h *articleParamsWrapperHandler) PostComment(w http.ResponseWriter, r *http.Request) {
	var body PostCommentBody
	if !decodeBody(w, r, &body) {
		return
	}
	h.handler.PostComment(w, r, &ArticleURLParams{ID: chi.URLParam(r, "id")}, &body)
}

func (h *articleParamsWrapperHandler) ToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	var body UsernameBody
	if !decodeBody(w, r, &body) {
		return
	}
	h.handler.ToggleCommentLike(w, r, &CommentURLParams{
		ArticleID: chi.URLParam(r, "id"),
		CommentID: chi.URLParam(r, "commentId"),
	}, &body)
}

func (h *articleParamsWrapperHandler) OnRouter(router chi.Router) {
	router.Get("/api/articles/{id}", h.GetArticleByID)
	router.Post("/api/articles/{id}/like", h.ToggleArticleLike)
	router.Get("/api/articles/{id}/comments", h.GetComments)
	router.Post("/api/articles/{id}/comments", h.PostComment)
	router.Post("/api/articles/{id}/comments/{commentId}/like", h.ToggleCommentLike)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httputils.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func NewArticleHandler(engagementService *service.EngagementService) *articleParamsWrapperHandler {
	return &articleParamsWrapperHandler{
		handler: &articleHandler{engagementService: engagementService},
	}
}
