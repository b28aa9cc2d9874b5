package engine

import (
	"time"

	"github.com/darch7/zenko/internal/fsstore"
	"github.com/darch7/zenko/llm"
)

// Session state lives for the process lifetime; snapshots are a
// best-effort convenience across restarts, not a durability
// guarantee.

type snapshotFile struct {
	SavedAt  time.Time  `json:"saved_at"`
	Sessions []*Session `json:"sessions"`
}

func (s *Session) clone() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := &Session{
		UserID:      s.UserID,
		Language:    s.Language,
		Flags:       map[string]bool{},
		Artifacts:   append([]Artifact(nil), s.Artifacts...),
		ArtifactSeq: s.ArtifactSeq,
		Reminders:   map[string]string{},
		Notes:       map[string]string{},
		Tasks:       map[string]Task{},
		TaskSeq:     s.TaskSeq,
		History:     append([]HistoryEntry(nil), s.History...),
		Chat:        append([]llm.Message(nil), s.Chat...),
		LastSeen:    s.LastSeen,
	}
	for k, v := range s.Flags {
		out.Flags[k] = v
	}
	for k, v := range s.Reminders {
		out.Reminders[k] = v
	}
	for k, v := range s.Notes {
		out.Notes[k] = v
	}
	for k, v := range s.Tasks {
		out.Tasks[k] = v
	}
	if s.Context != nil {
		c := *s.Context
		out.Context = &c
	}
	return out
}

// SaveSnapshot atomically writes every session to path.
func (st *Store) SaveSnapshot(path string) error {
	st.mu.RLock()
	sessions := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		sessions = append(sessions, s)
	}
	st.mu.RUnlock()

	snap := snapshotFile{SavedAt: time.Now().UTC(), Sessions: make([]*Session, 0, len(sessions))}
	for _, s := range sessions {
		snap.Sessions = append(snap.Sessions, s.clone())
	}
	return fsstore.WriteJSONAtomic(path, snap)
}

// LoadSnapshot restores sessions from path, if present. Existing
// in-memory sessions with the same user id are kept, not overwritten.
func (st *Store) LoadSnapshot(path string) (int, error) {
	var snap snapshotFile
	found, err := fsstore.ReadJSON(path, &snap)
	if err != nil || !found {
		return 0, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	restored := 0
	for _, s := range snap.Sessions {
		if s == nil || s.UserID == "" {
			continue
		}
		if _, exists := st.sessions[s.UserID]; exists {
			continue
		}
		if s.Flags == nil {
			s.Flags = map[string]bool{FlagAnalysis: true}
		}
		if s.Reminders == nil {
			s.Reminders = map[string]string{}
		}
		if s.Notes == nil {
			s.Notes = map[string]string{}
		}
		if s.Tasks == nil {
			s.Tasks = map[string]Task{}
		}
		if !SupportedLanguage(s.Language) {
			s.Language = st.defaultLanguage
		}
		st.sessions[s.UserID] = s
		restored++
	}
	return restored, nil
}
