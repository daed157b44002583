package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/Zzz0801/iNews/internal/model"
	"github.com/Zzz0801/iNews/pkg/hashutils"
)

// load restores the persisted snapshot. A missing file means a fresh
// deployment and leaves the store empty. Legacy comments written before ids
// and voter sets existed are migrated here, once, so the read paths stay
// pure; a migrated snapshot is rewritten immediately.
func (s *Store) load() error {
	data, err := afero.ReadFile(s.fs, s.dataFile)
	if errors.Is(err, os.ErrNotExist) {
		s.log.Info("no snapshot file, starting empty", zap.String("data_file", s.dataFile))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read snapshot %s: %w", s.dataFile, err)
	}

	var snapshot model.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("failed to decode snapshot %s: %w", s.dataFile, err)
	}

	s.accounts = snapshot.Users

	for id, record := range snapshot.LikesDB {
		voters := make(map[string]struct{}, len(record.Users))
		for _, voter := range record.Users {
			voters[voter] = struct{}{}
		}
		s.likes[id] = voters
	}

	for id, article := range snapshot.ArticleStore {
		s.articles[id] = article
	}

	migrated := 0
	for articleID, comments := range snapshot.CommentsDB {
		states := make([]*commentState, 0, len(comments))
		for _, comment := range comments {
			if comment.ID == "" {
				comment.ID = hashutils.CommentID(articleID, comment.Username, comment.CreatedAt, comment.Text)
				migrated++
			}
			state := &commentState{
				id:        comment.ID,
				username:  comment.Username,
				text:      comment.Text,
				createdAt: comment.CreatedAt,
				voters:    make(map[string]struct{}, len(comment.LikedBy)),
			}
			for _, voter := range comment.LikedBy {
				state.voters[voter] = struct{}{}
			}
			states = append(states, state)
		}
		s.comments[articleID] = states
	}

	s.log.Info("snapshot loaded",
		zap.String("data_file", s.dataFile),
		zap.Int("accounts", len(s.accounts)),
		zap.Int("articles", len(s.articles)),
	)

	if migrated > 0 {
		s.log.Info("backfilled legacy comment ids", zap.Int("comments", migrated))
		if err := s.saveLocked(); err != nil {
			return fmt.Errorf("failed to rewrite migrated snapshot: %w", err)
		}
	}
	return nil
}

// snapshotLocked materializes the current state into the on-disk shape.
// Voter sets become sorted arrays so the serialization is deterministic
// rather than an accident of map iteration order.
func (s *Store) snapshotLocked() model.Snapshot {
	users := s.accounts
	if users == nil {
		// `users` serializes as an empty array, never null.
		users = []model.Account{}
	}

	snapshot := model.Snapshot{
		Users:        users,
		LikesDB:      make(map[string]model.LikeRecord, len(s.likes)),
		ArticleStore: make(map[string]model.Article, len(s.articles)),
		CommentsDB:   make(map[string][]model.Comment, len(s.comments)),
	}

	for id, voters := range s.likes {
		users := make([]string, 0, len(voters))
		for voter := range voters {
			users = append(users, voter)
		}
		sort.Strings(users)
		snapshot.LikesDB[id] = model.LikeRecord{Count: len(users), Users: users}
	}

	for id, article := range s.articles {
		snapshot.ArticleStore[id] = article
	}

	for articleID, states := range s.comments {
		comments := make([]model.Comment, 0, len(states))
		for _, state := range states {
			comments = append(comments, state.toModel())
		}
		snapshot.CommentsDB[articleID] = comments
	}

	return snapshot
}

// saveLocked rewrites the whole snapshot file. Single-instance deployment
// only: there is no cross-process locking and no partial-write protection.
func (s *Store) saveLocked() error {
	data, err := json.MarshalIndent(s.snapshotLocked(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.dataFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", s.dataFile, err)
	}
	return nil
}

// persistLocked is the every-mutation flush. A failed write is logged, not
// propagated: the in-memory mutation stays applied and the request still
// succeeds, trading a memory/disk inconsistency window for availability.
func (s *Store) persistLocked() {
	if err := s.saveLocked(); err != nil {
		s.log.Error("snapshot write failed, in-memory state is ahead of disk", zap.Error(err))
	}
}
