package handler

import (
	"net/http"
	"strconv"

	chi "github.com/go-chi/chi/v5"

	"github.com/Zzz0801/iNews/internal/model"
	"github.com/Zzz0801/iNews/internal/service"
	"github.com/Zzz0801/iNews/pkg/httputils"
)

const (
	CATEGORY_QUERY_PARAM_NAME  = "category"
	TEXT_QUERY_PARAM_NAME      = "q"
	PAGE_QUERY_PARAM_NAME      = "page"
	PAGE_SIZE_QUERY_PARAM_NAME = "pageSize"
	USERNAME_QUERY_PARAM_NAME  = "username"
)

type GetNewsQueryParams struct {
	Category string
	Query    string
	Page     int
	PageSize int
}

type FeedHandler interface {
	GetNews(w http.ResponseWriter, r *http.Request, queryParams *GetNewsQueryParams)
	GetTrending(w http.ResponseWriter, r *http.Request)
	GetCategories(w http.ResponseWriter, r *http.Request)
}

type feedHandler struct {
	feedService *service.FeedService
}

func (hand *feedHandler) GetNews(w http.ResponseWriter, r *http.Request, queryParams *GetNewsQueryParams) {
	result := hand.feedService.Feed(r.Context(),
		queryParams.Category,
		queryParams.Query,
		queryParams.Page,
		queryParams.PageSize,
	)
	httputils.WriteJSONResponse(w, http.StatusOK, &result)
}

type getTrendingResponse struct {
	Items []model.TrendingItem `json:"items"`
}

func (hand *feedHandler) GetTrending(w http.ResponseWriter, r *http.Request) {
	httputils.WriteJSONResponse(w, http.StatusOK, &getTrendingResponse{
		Items: hand.feedService.Trending(r.Context()),
	})
}

type getCategoriesResponse struct {
	Categories []model.Category `json:"categories"`
}

func (hand *feedHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	httputils.WriteJSONResponse(w, http.StatusOK, &getCategoriesResponse{
		Categories: hand.feedService.Categories(),
	})
}

var _ FeedHandler = (*feedHandler)(nil)

type feedParamsWrapperHandler struct {
	handler FeedHandler
}

func (h *feedParamsWrapperHandler) GetNews(w http.ResponseWriter, r *http.Request) {
	h.handler.GetNews(w, r, &GetNewsQueryParams{
		Category: getStringQuery(r, CATEGORY_QUERY_PARAM_NAME, service.DEFAULT_CATEGORY),
		Query:    r.URL.Query().Get(TEXT_QUERY_PARAM_NAME),
		Page:     getIntQuery(r, PAGE_QUERY_PARAM_NAME, service.DEFAULT_PAGE),
		PageSize: getIntQuery(r, PAGE_SIZE_QUERY_PARAM_NAME, service.DEFAULT_PAGE_SIZE),
	})
}

func (h *feedParamsWrapperHandler) GetTrending(w http.ResponseWriter, r *http.Request) {
	h.handler.GetTrending(w, r)
}

func (h *feedParamsWrapperHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	h.handler.GetCategories(w, r)
}

func (h *feedParamsWrapperHandler) OnRouter(router chi.Router) {
	router.Get("/api/news", h.GetNews)
	router.Get("/api/trending", h.GetTrending)
	router.Get("/api/categories", h.GetCategories)
}

func getStringQuery(r *http.Request, queryName, defaultVal string) string {
	if val := r.URL.Query().Get(queryName); val != "" {
		return val
	}
	return defaultVal
}

func getIntQuery(r *http.Request, queryName string, defaultVal int) int {
	val, err := strconv.Atoi(r.URL.Query().Get(queryName))
	if err != nil || val < 1 {
		return defaultVal
	}
	return val
}

func NewFeedHandler(feedService *service.FeedService) *feedParamsWrapperHandler {
	return &feedParamsWrapperHandler{
		handler: &feedHandler{feedService: feedService},
	}
}
