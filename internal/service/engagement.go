package service

import (
	"strings"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Zzz0801/iNews/internal/model"
	"github.com/Zzz0801/iNews/internal/storage"
	"github.com/Zzz0801/iNews/pkg/hashutils"
)

// EngagementService owns the mutable social state layered over externally
// sourced articles: article likes, comments and comment likes.
type EngagementService struct {
	store *storage.Store
	log   *zap.Logger
}

type NewEngagementServiceParams struct {
	fx.In

	Store *storage.Store
	Log   *zap.Logger
}

func NewEngagementService(params NewEngagementServiceParams) *EngagementService {
	return &EngagementService{
		store: params.Store,
		log:   params.Log.Named("engagement"),
	}
}

// ToggleLike flips the user's like on an article. Deliberately a toggle, not
// an idempotent like: the same user calling twice reverts it. The article id
// is accepted even when the cache has never seen it, since likes must survive
// cache rebuilds.
func (s *EngagementService) ToggleLike(articleID, username string) (likes int, liked bool, err error) {
	if username == "" {
		return 0, false, ErrUnauthorized
	}
	likes, liked = s.store.ToggleLike(articleID, username)
	return likes, liked, nil
}

// ArticleByID returns cached article metadata merged with the current like
// count.
func (s *EngagementService) ArticleByID(id string) (model.FeedItem, error) {
	article, ok := s.store.GetArticle(id)
	if !ok {
		return model.FeedItem{}, ErrArticleNotFound
	}
	return model.FeedItem{Article: article, Likes: s.store.LikeCount(id)}, nil
}

// AddComment validates and appends a comment. The id is derived from the
// article, author, timestamp and trimmed text; identical text from the same
// user within the same second collides, a known and accepted weakness.
func (s *EngagementService) AddComment(articleID, username, text string) (model.Comment, error) {
	if username == "" {
		return model.NilComment, ErrUnauthorized
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return model.NilComment, ErrEmptyComment
	}
	if len([]rune(text)) > model.MaxCommentLength {
		return model.NilComment, ErrCommentTooLong
	}

	createdAt := time.Now().UTC().Format(time.RFC3339)
	comment := model.Comment{
		ID:        hashutils.CommentID(articleID, username, createdAt, text),
		Username:  username,
		Text:      text,
		CreatedAt: createdAt,
		LikedBy:   []string{},
	}

	s.store.AppendComment(articleID, comment)
	s.log.Info("comment added",
		zap.String("article_id", articleID),
		zap.String("username", username),
	)
	return comment, nil
}

// ListComments returns the article's comments in storage order, each
// annotated with its like count and whether the requesting user (optional)
// is in its voter set.
func (s *EngagementService) ListComments(articleID, requestingUsername string) []model.CommentView {
	comments := s.store.Comments(articleID)

	views := make([]model.CommentView, 0, len(comments))
	for _, comment := range comments {
		liked := false
		if requestingUsername != "" {
			for _, voter := range comment.LikedBy {
				if voter == requestingUsername {
					liked = true
					break
				}
			}
		}
		views = append(views, model.CommentView{
			Comment: comment,
			Likes:   len(comment.LikedBy),
			Liked:   liked,
		})
	}
	return views
}

// ToggleCommentLike follows the same toggle semantics as article likes,
// scoped to one comment's voter set.
func (s *EngagementService) ToggleCommentLike(articleID, commentID, username string) (likes int, liked bool, err error) {
	if username == "" {
		return 0, false, ErrUnauthorized
	}
	likes, liked, ok := s.store.ToggleCommentLike(articleID, commentID, username)
	if !ok {
		return 0, false, ErrCommentNotFound
	}
	return likes, liked, nil
}
