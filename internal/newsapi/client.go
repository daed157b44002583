package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/fx"

	"github.com/Zzz0801/iNews/internal/config"
)

const (
	DEFAULT_BASE_URL = "https://newsapi.org/v2/top-headlines"
	// DEFAULT_TIMEOUT bounds every upstream call. The request is cancelled on
	// expiry; nothing blocks indefinitely.
	DEFAULT_TIMEOUT = 10 * time.Second
)

type ArticleSource struct {
	Name string `json:"name"`
}

// Article is the provider's own article shape. It carries no stable id; the
// URL is the only content-addressable anchor.
type Article struct {
	Source      ArticleSource `json:"source"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	URLToImage  string        `json:"urlToImage"`
	PublishedAt string        `json:"publishedAt"`
}

type HeadlinesResponse struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
	Message      string    `json:"message"`
}

type TopHeadlinesParams struct {
	Category string
	Query    string
	Country  string
	Page     int
	PageSize int
}

// Client talks to the NewsAPI top-headlines endpoint. BaseURL, HTTPClient
// and Timeout are exported so tests can point it at a local server.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	apiKey     string
}

type NewClientParams struct {
	fx.In

	Config config.Config
}

func NewClient(params NewClientParams) (*Client, error) {
	transport := http.DefaultTransport
	if params.Config.ProxyURL != "" {
		proxyURL, err := url.Parse(params.Config.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy url %q: %w", params.Config.ProxyURL, err)
		}
		transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
	}

	return &Client{
		BaseURL:    DEFAULT_BASE_URL,
		HTTPClient: &http.Client{Transport: transport},
		Timeout:    DEFAULT_TIMEOUT,
		apiKey:     params.Config.NewsAPIKey,
	}, nil
}

// TopHeadlines fetches one page of headlines. Non-2xx responses become
// errors carrying the upstream status and message; the caller decides what
// degraded behavior looks like.
func (c *Client) TopHeadlines(ctx context.Context, params TopHeadlinesParams) (*HeadlinesResponse, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DEFAULT_TIMEOUT
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	query := url.Values{}
	query.Set("category", params.Category)
	if params.Query != "" {
		query.Set("q", params.Query)
	}
	query.Set("country", params.Country)
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.PageSize > 0 {
		query.Set("pageSize", strconv.Itoa(params.PageSize))
	}
	query.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("unable to build headlines request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("headlines request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload HeadlinesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil && resp.StatusCode < 300 {
		return nil, fmt.Errorf("unable to decode headlines response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := payload.Message
		if message == "" {
			message = "unknown error"
		}
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, message)
	}

	return &payload, nil
}
