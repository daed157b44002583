package model

// Article is the cached metadata of an externally sourced article. The
// upstream provider stays the source of truth for content; this record only
// exists so engagement lookups can resolve the same id between fetches.
type Article struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Cover       string `json:"cover"`
	Category    string `json:"category"`
	PublishedAt string `json:"publishedAt"`
	Source      string `json:"source"`
	URL         string `json:"url"`
}

var NilArticle = Article{}

// FeedItem is the wire shape of an article in list and detail responses:
// cached metadata plus the current like count overlay.
type FeedItem struct {
	Article
	Likes int `json:"likes"`
}

type TrendingItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Likes int    `json:"likes"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
