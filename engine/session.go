package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/darch7/zenko/llm"
)

type ContextKind string

const (
	ContextScript  ContextKind = "script"
	ContextSummary ContextKind = "summary"
)

// Continuation is the single resumable task a session carries. It is
// overwritten whole, never merged.
type Continuation struct {
	Kind    ContextKind `json:"kind"`
	Payload string      `json:"payload"`
	SetAt   time.Time   `json:"set_at"`
}

type Artifact struct {
	ID      string    `json:"id"`
	Text    string    `json:"text"`
	SavedAt time.Time `json:"saved_at"`
}

type Task struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

type HistoryEntry struct {
	At          time.Time `json:"at"`
	Description string    `json:"description"`
}

const (
	historyCap     = 50
	chatHistoryCap = 20

	// FlagAnalysis gates automatic script detection; on by default.
	FlagAnalysis = "analysis"
)

// Session is the per-user mutable state bag. All access goes through
// methods holding the session mutex, so concurrent requests for the
// same user serialize their read-modify-write cycles.
type Session struct {
	mu sync.Mutex

	UserID      string            `json:"user_id"`
	Language    string            `json:"language"`
	Flags       map[string]bool   `json:"flags"`
	Artifacts   []Artifact        `json:"artifacts"`
	ArtifactSeq int               `json:"artifact_seq"`
	Reminders   map[string]string `json:"reminders"`
	Notes       map[string]string `json:"notes"`
	Tasks       map[string]Task   `json:"tasks"`
	TaskSeq     int               `json:"task_seq"`
	History     []HistoryEntry    `json:"history"`
	Context     *Continuation     `json:"context,omitempty"`
	Chat        []llm.Message     `json:"chat"`
	LastSeen    time.Time         `json:"last_seen"`
}

func newSession(userID, language string) *Session {
	return &Session{
		UserID:    userID,
		Language:  language,
		Flags:     map[string]bool{FlagAnalysis: true},
		Reminders: map[string]string{},
		Notes:     map[string]string{},
		Tasks:     map[string]Task{},
		LastSeen:  time.Now().UTC(),
	}
}

func (s *Session) Lang() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Language
}

func (s *Session) SetLanguage(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Language = code
}

func (s *Session) Flag(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Flags[name]
}

func (s *Session) SetFlag(name string, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Flags[name] = on
}

func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastSeen = time.Now().UTC()
}

func (s *Session) LastSeenAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.LastSeen
}

// AppendHistory records one action; the log is a ring capped at
// historyCap with oldest entries evicted.
func (s *Session) AppendHistory(description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.History = append(s.History, HistoryEntry{At: time.Now().UTC(), Description: description})
	if len(s.History) > historyCap {
		s.History = s.History[len(s.History)-historyCap:]
	}
}

func (s *Session) HistoryEntries() []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]HistoryEntry(nil), s.History...)
}

// PutArtifact stores a text blob under a fresh timestamp-derived id.
// The per-session sequence keeps ids collision-free within a second.
func (s *Session) PutArtifact(text string) Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	s.ArtifactSeq++
	a := Artifact{
		ID:      fmt.Sprintf("scr-%s-%d", now.Format("20060102-150405"), s.ArtifactSeq),
		Text:    text,
		SavedAt: now,
	}
	s.Artifacts = append(s.Artifacts, a)
	return a
}

func (s *Session) ArtifactByID(id string) (Artifact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.Artifacts {
		if a.ID == id {
			return a, true
		}
	}
	return Artifact{}, false
}

func (s *Session) ListArtifacts() []Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Artifact(nil), s.Artifacts...)
}

func (s *Session) SetContext(kind ContextKind, payload string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Context = &Continuation{Kind: kind, Payload: payload, SetAt: time.Now().UTC()}
}

func (s *Session) Continuation() *Continuation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Context == nil {
		return nil
	}
	c := *s.Context
	return &c
}

func (s *Session) SetReminder(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reminders[key] = value
}

func (s *Session) AllReminders() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.Reminders))
	for k, v := range s.Reminders {
		out[k] = v
	}
	return out
}

func (s *Session) SetNote(id, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Notes[id] = text
}

func (s *Session) AllNotes() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.Notes))
	for k, v := range s.Notes {
		out[k] = v
	}
	return out
}

// AddTask assigns the next task id under the lock, so N concurrent
// calls yield N distinct tasks.
func (s *Session) AddTask(text string) Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TaskSeq++
	t := Task{ID: fmt.Sprintf("t%d", s.TaskSeq), Text: text}
	s.Tasks[t.ID] = t
	return t
}

func (s *Session) CompleteTask(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.Tasks[id]
	if !ok {
		return false
	}
	t.Done = true
	s.Tasks[id] = t
	return true
}

func (s *Session) AllTasks() map[string]Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Task, len(s.Tasks))
	for k, v := range s.Tasks {
		out[k] = v
	}
	return out
}

// AppendChat keeps the rolling conversational window forwarded to the
// generation backend in normal chat.
func (s *Session) AppendChat(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Chat = append(s.Chat, llm.Message{Role: role, Content: content})
	if len(s.Chat) > chatHistoryCap {
		s.Chat = s.Chat[len(s.Chat)-chatHistoryCap:]
	}
}

func (s *Session) ChatWindow() []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]llm.Message(nil), s.Chat...)
}

// Store keys sessions by user id. Sessions are created lazily and
// never evicted here; a deployer can sweep by LastSeen externally.
type Store struct {
	mu              sync.RWMutex
	sessions        map[string]*Session
	defaultLanguage string
}

func NewStore(defaultLanguage string) *Store {
	if !SupportedLanguage(defaultLanguage) {
		defaultLanguage = DefaultLanguage
	}
	return &Store{
		sessions:        map[string]*Session{},
		defaultLanguage: defaultLanguage,
	}
}

// GetOrCreate is idempotent: concurrent calls for the same user id
// observe the same record, first writer wins.
func (st *Store) GetOrCreate(userID string) *Session {
	st.mu.RLock()
	s, ok := st.sessions[userID]
	st.mu.RUnlock()
	if ok {
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[userID]; ok {
		return s
	}
	s = newSession(userID, st.defaultLanguage)
	st.sessions[userID] = s
	return s
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
