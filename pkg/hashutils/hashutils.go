package hashutils

import (
	"crypto/sha1"
	"fmt"
	"time"
)

func generateHash(data string) string {
	hash := sha1.New()
	hash.Write([]byte(data))
	return fmt.Sprintf("%x", hash.Sum(nil))
}

// ArticleID derives a stable article id from the article's canonical URL.
// The same URL always maps to the same id, so engagement records keep
// resolving across restarts and repeated upstream fetches. Request-time
// values must never be mixed into the hash.
func ArticleID(url string) string {
	if url == "" {
		return LocalID()
	}
	return generateHash(url)
}

// LocalID produces a best-effort unique id for articles that have no
// canonical URL. Such ids are scoped to the current process and are not
// stable across restarts.
func LocalID() string {
	return fmt.Sprintf("local_%d", time.Now().UnixMilli())
}

// CommentID derives a comment id from its article, author, creation time and
// text. The separator and field order are a compatibility contract with ids
// already present in persisted snapshots.
func CommentID(articleID, username, createdAt, text string) string {
	return generateHash(fmt.Sprintf("%s|%s|%s|%s", articleID, username, createdAt, text))
}
