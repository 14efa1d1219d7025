package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	sessionFile     = "session.yaml"
	leaderboardFile = "leaderboard.yaml"

	// LeaderboardSize caps the number of persisted leaderboard rows.
	LeaderboardSize = 10
)

// FileRepo persists sessions and the leaderboard under a save directory.
type FileRepo struct {
	Dir string
}

// NewFileRepo returns a FileRepo rooted at dir.
func NewFileRepo(dir string) *FileRepo {
	return &FileRepo{Dir: dir}
}

func (r *FileRepo) Save(s *GameSession) error {
	if s.ID == "" {
		return errors.New("session has no id")
	}
	dir := filepath.Join(r.Dir, s.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	tmp := filepath.Join(dir, sessionFile+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, filepath.Join(dir, sessionFile))
}

func (r *FileRepo) LoadSession(id string) (*GameSession, error) {
	data, err := os.ReadFile(filepath.Join(r.Dir, id, sessionFile))
	if err != nil {
		return nil, err
	}
	var s GameSession
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", id, err)
	}
	if s.ID == "" {
		s.ID = id
	}
	return &s, nil
}

func (r *FileRepo) ListSessions() ([]string, error) {
	if _, err := os.Stat(r.Dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(r.Dir)
	if err != nil {
		return nil, err
	}

	var sessions []string
	for _, entry := range entries {
		if entry.IsDir() {
			// session.yaml marks a valid session
			path := filepath.Join(r.Dir, entry.Name(), sessionFile)
			if _, err := os.Stat(path); err == nil {
				sessions = append(sessions, entry.Name())
			}
		}
	}
	return sessions, nil
}

// Leaderboard returns the persisted leaderboard, best first.
func (r *FileRepo) Leaderboard() ([]LeaderboardEntry, error) {
	data, err := os.ReadFile(filepath.Join(r.Dir, leaderboardFile))
	if err != nil {
		if os.IsNotExist(err) {
			return []LeaderboardEntry{}, nil
		}
		return nil, err
	}
	var rows []LeaderboardEntry
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse leaderboard: %w", err)
	}
	return rows, nil
}

// RecordScore inserts e into the leaderboard, keeping it sorted by net
// assets and capped at LeaderboardSize.
func (r *FileRepo) RecordScore(e LeaderboardEntry) ([]LeaderboardEntry, error) {
	rows, err := r.Leaderboard()
	if err != nil {
		return nil, err
	}
	rows = InsertScore(rows, e)

	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("marshal leaderboard: %w", err)
	}
	if err := os.WriteFile(filepath.Join(r.Dir, leaderboardFile), data, 0644); err != nil {
		return nil, err
	}
	return rows, nil
}

// InsertScore returns rows with e added, sorted descending and capped.
func InsertScore(rows []LeaderboardEntry, e LeaderboardEntry) []LeaderboardEntry {
	out := append(append([]LeaderboardEntry(nil), rows...), e)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NetAssets > out[j].NetAssets
	})
	if len(out) > LeaderboardSize {
		out = out[:LeaderboardSize]
	}
	return out
}
