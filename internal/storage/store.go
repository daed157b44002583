package storage

import (
	"sort"
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Zzz0801/iNews/internal/config"
	"github.com/Zzz0801/iNews/internal/model"
)

// commentState is the in-memory form of a comment. The voter set is a real
// set here; it only becomes a sorted array at the serialization boundary.
type commentState struct {
	id        string
	username  string
	text      string
	createdAt string
	voters    map[string]struct{}
}

// Store owns the engagement overlay: accounts, per-article voter sets,
// per-article comment lists and the article metadata cache. It is constructed
// once at startup and passed by handle into every request path; there is no
// package-level state. A single mutex serializes all mutations and snapshot
// writes, which is what keeps count-equals-voters true under concurrent
// requests.
type Store struct {
	mu       sync.Mutex
	fs       afero.Fs
	dataFile string
	log      *zap.Logger

	accounts []model.Account
	likes    map[string]map[string]struct{}
	comments map[string][]*commentState
	articles map[string]model.Article
}

type NewStoreParams struct {
	fx.In

	Fs     afero.Fs
	Config config.Config
	Log    *zap.Logger
}

func NewStore(params NewStoreParams) (*Store, error) {
	store := &Store{
		fs:       params.Fs,
		dataFile: params.Config.DataFile,
		log:      params.Log.Named("store"),
		likes:    make(map[string]map[string]struct{}),
		comments: make(map[string][]*commentState),
		articles: make(map[string]model.Article),
	}
	if err := store.load(); err != nil {
		return nil, err
	}
	return store, nil
}

// ToggleLike flips username's membership in the article's voter set and
// reports the post-operation count and liked state. The record is created
// lazily, so likes work even for articles the cache has never seen.
func (s *Store) ToggleLike(articleID, username string) (count int, liked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	voters, ok := s.likes[articleID]
	if !ok {
		voters = make(map[string]struct{})
		s.likes[articleID] = voters
	}

	if _, voted := voters[username]; voted {
		delete(voters, username)
		liked = false
	} else {
		voters[username] = struct{}{}
		liked = true
	}

	s.persistLocked()
	return len(voters), liked
}

// LikeCount returns the current like count for an article, zero when no one
// ever liked it.
func (s *Store) LikeCount(articleID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.likes[articleID])
}

// PutArticle overwrites the cached metadata for the article's id with the
// latest fetched version. The cache is a rebuildable view, so this does not
// trigger a snapshot write; metadata rides along with the next mutation.
func (s *Store) PutArticle(article model.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles[article.ID] = article
}

// PutArticleIfAbsent caches metadata only for first-seen ids and persists
// when it did. Reports whether the article was inserted.
func (s *Store) PutArticleIfAbsent(article model.Article) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.articles[article.ID]; ok {
		return false
	}
	s.articles[article.ID] = article
	s.persistLocked()
	return true
}

func (s *Store) GetArticle(id string) (model.Article, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	article, ok := s.articles[id]
	if !ok {
		return model.NilArticle, false
	}
	return article, true
}

// AppendComment appends a comment to the article's sequence. Append order is
// the storage order; newest-first is the client's concern.
func (s *Store) AppendComment(articleID string, comment model.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := &commentState{
		id:        comment.ID,
		username:  comment.Username,
		text:      comment.Text,
		createdAt: comment.CreatedAt,
		voters:    make(map[string]struct{}),
	}
	for _, voter := range comment.LikedBy {
		state.voters[voter] = struct{}{}
	}

	s.comments[articleID] = append(s.comments[articleID], state)
	s.persistLocked()
}

// Comments returns copies of the article's comments in storage order, voter
// sets materialized as sorted arrays.
func (s *Store) Comments(articleID string) []model.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	states := s.comments[articleID]
	out := make([]model.Comment, 0, len(states))
	for _, state := range states {
		out = append(out, state.toModel())
	}
	return out
}

// ToggleCommentLike flips username's membership in one comment's voter set.
// ok is false when the comment id does not exist under that article.
func (s *Store) ToggleCommentLike(articleID, commentID, username string) (count int, liked bool, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var target *commentState
	for _, state := range s.comments[articleID] {
		if state.id == commentID {
			target = state
			break
		}
	}
	if target == nil {
		return 0, false, false
	}

	if _, voted := target.voters[username]; voted {
		delete(target.voters, username)
		liked = false
	} else {
		target.voters[username] = struct{}{}
		liked = true
	}

	s.persistLocked()
	return len(target.voters), liked, true
}

// AddAccount appends the account and persists. Reports false when the
// username is already taken (case-sensitive exact match), in which case
// nothing changes.
func (s *Store) AddAccount(account model.Account) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if existing.Username == account.Username {
			return false
		}
	}

	s.accounts = append(s.accounts, account)
	s.persistLocked()
	return true
}

// Authenticate reports whether an account matches both username and password
// exactly.
func (s *Store) Authenticate(username, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if account.Username == username && account.Password == password {
			return true
		}
	}
	return false
}

func (c *commentState) toModel() model.Comment {
	likedBy := make([]string, 0, len(c.voters))
	for voter := range c.voters {
		likedBy = append(likedBy, voter)
	}
	sort.Strings(likedBy)

	return model.Comment{
		ID:        c.id,
		Username:  c.username,
		Text:      c.text,
		CreatedAt: c.createdAt,
		LikedBy:   likedBy,
		Likes:     len(likedBy),
	}
}
