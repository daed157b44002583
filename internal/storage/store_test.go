package storage

import (
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Zzz0801/iNews/internal/config"
	"github.com/Zzz0801/iNews/internal/model"
	"github.com/Zzz0801/iNews/pkg/hashutils"
)

const testDataFile = "data.json"

func newTestStore(t *testing.T, fs afero.Fs) *Store {
	t.Helper()
	store, err := NewStore(NewStoreParams{
		Fs:     fs,
		Config: config.Config{DataFile: testDataFile},
		Log:    zap.NewNop(),
	})
	require.NoError(t, err)
	return store
}

func readSnapshot(t *testing.T, fs afero.Fs) model.Snapshot {
	t.Helper()
	data, err := afero.ReadFile(fs, testDataFile)
	require.NoError(t, err)

	var snapshot model.Snapshot
	require.NoError(t, json.Unmarshal(data, &snapshot))
	return snapshot
}

func TestToggleLike(t *testing.T) {
	store := newTestStore(t, afero.NewMemMapFs())

	count, liked := store.ToggleLike("article-1", "alice")
	assert.Equal(t, 1, count)
	assert.True(t, liked)

	count, liked = store.ToggleLike("article-1", "bob")
	assert.Equal(t, 2, count)
	assert.True(t, liked)

	// Same user again reverts: toggle, not idempotent like.
	count, liked = store.ToggleLike("article-1", "alice")
	assert.Equal(t, 1, count)
	assert.False(t, liked)

	assert.Equal(t, 1, store.LikeCount("article-1"))
	assert.Equal(t, 0, store.LikeCount("article-never-seen"))
}

func TestToggleLikeTwiceReturnsToBaseline(t *testing.T) {
	store := newTestStore(t, afero.NewMemMapFs())

	store.ToggleLike("article-1", "alice")
	count, liked := store.ToggleLike("article-1", "alice")

	assert.Equal(t, 0, count)
	assert.False(t, liked)
}

func TestLikeCountMatchesVoterSetOnDisk(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := newTestStore(t, fs)

	store.ToggleLike("article-1", "carol")
	store.ToggleLike("article-1", "alice")
	store.ToggleLike("article-1", "bob")
	store.ToggleLike("article-1", "carol")
	store.ToggleLike("article-1", "carol")

	record := readSnapshot(t, fs).LikesDB["article-1"]
	assert.Equal(t, len(record.Users), record.Count)
	// Sorted on disk, not map iteration order.
	assert.Equal(t, []string{"alice", "bob", "carol"}, record.Users)
}

func TestCommentsKeepAppendOrder(t *testing.T) {
	store := newTestStore(t, afero.NewMemMapFs())

	store.AppendComment("article-1", model.Comment{ID: "c1", Username: "alice", Text: "first"})
	store.AppendComment("article-1", model.Comment{ID: "c2", Username: "bob", Text: "second"})

	comments := store.Comments("article-1")
	require.Len(t, comments, 2)
	assert.Equal(t, "c1", comments[0].ID)
	assert.Equal(t, "c2", comments[1].ID)
	assert.Equal(t, []string{}, comments[0].LikedBy)
	assert.Empty(t, store.Comments("article-2"))
}

func TestToggleCommentLike(t *testing.T) {
	store := newTestStore(t, afero.NewMemMapFs())
	store.AppendComment("article-1", model.Comment{ID: "c1", Username: "alice", Text: "hello"})

	count, liked, ok := store.ToggleCommentLike("article-1", "c1", "bob")
	require.True(t, ok)
	assert.Equal(t, 1, count)
	assert.True(t, liked)

	count, liked, ok = store.ToggleCommentLike("article-1", "c1", "bob")
	require.True(t, ok)
	assert.Equal(t, 0, count)
	assert.False(t, liked)

	_, _, ok = store.ToggleCommentLike("article-1", "missing", "bob")
	assert.False(t, ok)
	_, _, ok = store.ToggleCommentLike("article-2", "c1", "bob")
	assert.False(t, ok)
}

func TestAccounts(t *testing.T) {
	store := newTestStore(t, afero.NewMemMapFs())

	require.True(t, store.AddAccount(model.Account{Username: "alice", Password: "secret"}))
	assert.False(t, store.AddAccount(model.Account{Username: "alice", Password: "other"}))

	assert.True(t, store.Authenticate("alice", "secret"))
	assert.False(t, store.Authenticate("alice", "wrong"))
	assert.False(t, store.Authenticate("bob", "secret"))
}

func TestArticleCacheLastWriteWins(t *testing.T) {
	store := newTestStore(t, afero.NewMemMapFs())

	store.PutArticle(model.Article{ID: "a1", Title: "old"})
	store.PutArticle(model.Article{ID: "a1", Title: "new"})

	article, ok := store.GetArticle("a1")
	require.True(t, ok)
	assert.Equal(t, "new", article.Title)

	_, ok = store.GetArticle("a2")
	assert.False(t, ok)
}

func TestPutArticleIfAbsent(t *testing.T) {
	store := newTestStore(t, afero.NewMemMapFs())

	assert.True(t, store.PutArticleIfAbsent(model.Article{ID: "a1", Title: "first seen"}))
	assert.False(t, store.PutArticleIfAbsent(model.Article{ID: "a1", Title: "later"}))

	article, _ := store.GetArticle("a1")
	assert.Equal(t, "first seen", article.Title)
}

func TestSnapshotRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()

	store := newTestStore(t, fs)
	store.AddAccount(model.Account{Username: "alice", Password: "secret"})
	store.PutArticle(model.Article{ID: "a1", Title: "cached", URL: "https://example.com/a1"})
	store.ToggleLike("a1", "alice")
	store.ToggleLike("a1", "bob")
	store.AppendComment("a1", model.Comment{ID: "c1", Username: "alice", Text: "nice", CreatedAt: "2024-01-01T00:00:00Z"})
	store.ToggleCommentLike("a1", "c1", "bob")

	reloaded := newTestStore(t, fs)

	assert.Equal(t, 2, reloaded.LikeCount("a1"))
	assert.True(t, reloaded.Authenticate("alice", "secret"))

	article, ok := reloaded.GetArticle("a1")
	require.True(t, ok)
	assert.Equal(t, "cached", article.Title)

	comments := reloaded.Comments("a1")
	require.Len(t, comments, 1)
	assert.Equal(t, "c1", comments[0].ID)
	assert.Equal(t, "nice", comments[0].Text)
	assert.Equal(t, []string{"bob"}, comments[0].LikedBy)
	assert.Equal(t, 1, comments[0].Likes)
}

func TestMissingSnapshotStartsEmpty(t *testing.T) {
	store := newTestStore(t, afero.NewMemMapFs())

	assert.Equal(t, 0, store.LikeCount("anything"))
	assert.Empty(t, store.Comments("anything"))
}

func TestLegacyCommentMigration(t *testing.T) {
	fs := afero.NewMemMapFs()
	legacy := `{
		"users": [],
		"likesDB": {},
		"articleStore": {},
		"commentsDB": {
			"a1": [
				{"username": "bob", "text": "hi", "createdAt": "2020-01-01T00:00:00Z"}
			]
		}
	}`
	require.NoError(t, afero.WriteFile(fs, testDataFile, []byte(legacy), 0o644))

	store := newTestStore(t, fs)

	comments := store.Comments("a1")
	require.Len(t, comments, 1)
	wantID := hashutils.CommentID("a1", "bob", "2020-01-01T00:00:00Z", "hi")
	assert.Equal(t, wantID, comments[0].ID)
	assert.Equal(t, []string{}, comments[0].LikedBy)

	// Migration is rewritten to disk once, at load time.
	snapshot := readSnapshot(t, fs)
	require.Len(t, snapshot.CommentsDB["a1"], 1)
	assert.Equal(t, wantID, snapshot.CommentsDB["a1"][0].ID)
}

func TestCorruptSnapshotFailsLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, testDataFile, []byte("{not json"), 0o644))

	_, err := NewStore(NewStoreParams{
		Fs:     fs,
		Config: config.Config{DataFile: testDataFile},
		Log:    zap.NewNop(),
	})
	assert.Error(t, err)
}
