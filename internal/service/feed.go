package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Zzz0801/iNews/internal/model"
	"github.com/Zzz0801/iNews/internal/newsapi"
	"github.com/Zzz0801/iNews/internal/storage"
	"github.com/Zzz0801/iNews/pkg/hashutils"
)

const (
	DEFAULT_CATEGORY   = "tech"
	DEFAULT_PAGE       = 1
	DEFAULT_PAGE_SIZE  = 10
	TRENDING_PAGE_SIZE = 10
	UPSTREAM_COUNTRY   = "us"
)

// CATEGORY_MAP translates local category ids into the upstream provider's
// taxonomy. Unknown ids fall back to the provider's general bucket.
var CATEGORY_MAP = map[string]string{
	"tech":   "technology",
	"china":  "business",
	"world":  "general",
	"sports": "sports",
}

// CATEGORIES is the static catalogue served to the client.
var CATEGORIES = []model.Category{
	{ID: "tech", Name: "Technology"},
	{ID: "china", Name: "Business"},
	{ID: "world", Name: "World"},
	{ID: "sports", Name: "Sports"},
	{ID: "news", Name: "General"},
}

type FeedResult struct {
	Items        []model.FeedItem `json:"items"`
	TotalResults int              `json:"totalResults"`
}

// FeedService is the gateway to the upstream provider. It normalizes
// provider articles into the local shape, assigns content-addressed ids,
// refreshes the article cache as a byproduct and overlays like counts.
type FeedService struct {
	client *newsapi.Client
	store  *storage.Store
	log    *zap.Logger
}

type NewFeedServiceParams struct {
	fx.In

	Client *newsapi.Client
	Store  *storage.Store
	Log    *zap.Logger
}

func NewFeedService(params NewFeedServiceParams) *FeedService {
	return &FeedService{
		client: params.Client,
		store:  params.Store,
		log:    params.Log.Named("feed"),
	}
}

// Feed returns one merged page of the article feed. Upstream failures are
// absorbed: the caller always gets a successful result, degraded to
// synthesized placeholder items when the provider is unreachable.
func (s *FeedService) Feed(ctx context.Context, category, query string, page, pageSize int) FeedResult {
	upstreamCategory, ok := CATEGORY_MAP[category]
	if !ok {
		upstreamCategory = "general"
	}

	resp, err := s.client.TopHeadlines(ctx, newsapi.TopHeadlinesParams{
		Category: upstreamCategory,
		Query:    query,
		Country:  UPSTREAM_COUNTRY,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		s.log.Warn("upstream fetch failed, serving placeholders",
			zap.String("category", category), zap.Error(errors.Join(ErrUpstreamUnavailable, err)))
		return s.placeholderFeed(category)
	}

	items := make([]model.FeedItem, 0, len(resp.Articles))
	for _, upstream := range resp.Articles {
		article := model.Article{
			ID:          hashutils.ArticleID(upstream.URL),
			Title:       upstream.Title,
			Summary:     upstream.Description,
			Cover:       upstream.URLToImage,
			Category:    category,
			PublishedAt: upstream.PublishedAt,
			Source:      upstream.Source.Name,
			URL:         upstream.URL,
		}
		s.store.PutArticle(article)

		items = append(items, model.FeedItem{
			Article: article,
			Likes:   s.store.LikeCount(article.ID),
		})
	}

	return FeedResult{Items: items, TotalResults: resp.TotalResults}
}

// Trending returns the current top technology headlines with like counts.
// Metadata is cached only for first-seen ids. Upstream failures degrade to a
// fixed trio of placeholders.
func (s *FeedService) Trending(ctx context.Context) []model.TrendingItem {
	resp, err := s.client.TopHeadlines(ctx, newsapi.TopHeadlinesParams{
		Category: "technology",
		Country:  UPSTREAM_COUNTRY,
		PageSize: TRENDING_PAGE_SIZE,
	})
	if err != nil {
		s.log.Warn("upstream trending fetch failed, serving placeholders",
			zap.Error(errors.Join(ErrUpstreamUnavailable, err)))
		return []model.TrendingItem{
			{ID: "local_tr_1", Title: "Local trending sample 1", URL: "", Likes: 0},
			{ID: "local_tr_2", Title: "Local trending sample 2", URL: "", Likes: 0},
			{ID: "local_tr_3", Title: "Local trending sample 3", URL: "", Likes: 0},
		}
	}

	items := make([]model.TrendingItem, 0, len(resp.Articles))
	for _, upstream := range resp.Articles {
		id := hashutils.ArticleID(upstream.URL)
		s.store.PutArticleIfAbsent(model.Article{
			ID:          id,
			Title:       upstream.Title,
			Summary:     upstream.Description,
			Cover:       upstream.URLToImage,
			Category:    "tech",
			PublishedAt: upstream.PublishedAt,
			Source:      upstream.Source.Name,
			URL:         upstream.URL,
		})

		items = append(items, model.TrendingItem{
			ID:    id,
			Title: upstream.Title,
			URL:   upstream.URL,
			Likes: s.store.LikeCount(id),
		})
	}
	return items
}

func (s *FeedService) Categories() []model.Category {
	return CATEGORIES
}

// placeholderFeed synthesizes a small fixed feed so the UI stays populated
// when the provider is down. Ids are process-scoped and carry zero likes.
func (s *FeedService) placeholderFeed(category string) FeedResult {
	now := time.Now()
	publishedAt := now.UTC().Format(time.RFC3339)

	items := []model.FeedItem{
		{
			Article: model.Article{
				ID:          fmt.Sprintf("local_%d_1", now.UnixMilli()),
				Title:       fmt.Sprintf("Sample article - %s - 1", category),
				Summary:     fmt.Sprintf("Placeholder summary for the %s category, shown while the provider is unreachable.", category),
				Category:    category,
				PublishedAt: publishedAt,
			},
		},
		{
			Article: model.Article{
				ID:          fmt.Sprintf("local_%d_2", now.UnixMilli()),
				Title:       fmt.Sprintf("Sample article - %s - 2", category),
				Summary:     "Second placeholder item, useful for testing category filtering.",
				Category:    category,
				PublishedAt: publishedAt,
			},
		},
	}
	return FeedResult{Items: items, TotalResults: len(items)}
}
