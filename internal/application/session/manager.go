// Package session tracks multi-turn conversations: per-session state,
// accumulated context and the bounded archive of closed sessions.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/auraos/aibridge/internal/domain"
	"github.com/auraos/aibridge/internal/ports"
)

const (
	defaultArchiveSize  = 100
	defaultContextTurns = 5
)

// Manager owns every live conversation. All methods are safe for concurrent
// use; returned sessions are deep copies, never internal state.
type Manager struct {
	logger ports.Logger

	archiveSize  int
	contextTurns int

	mu      sync.Mutex
	active  map[string]*domain.ConversationSession
	archive []domain.ConversationSession

	now func() time.Time
}

func NewManager(cfg domain.SessionSettings, logger ports.Logger) *Manager {
	archiveSize := cfg.HistorySize
	if archiveSize <= 0 {
		archiveSize = defaultArchiveSize
	}
	contextTurns := cfg.ContextTurns
	if contextTurns <= 0 {
		contextTurns = defaultContextTurns
	}
	return &Manager{
		logger:       logger,
		archiveSize:  archiveSize,
		contextTurns: contextTurns,
		active:       make(map[string]*domain.ConversationSession),
		now:          time.Now,
	}
}

// CreateSession opens a new conversation. An empty id gets a generated one;
// reusing a live id is an error.
func (m *Manager) CreateSession(id string) (domain.ConversationSession, error) {
	if id == "" {
		id = uuid.NewString()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.active[id]; exists {
		return domain.ConversationSession{}, domain.NewError(domain.CodeValidationFailed, "session %q already exists", id)
	}
	now := m.now()
	session := &domain.ConversationSession{
		ID:           id,
		State:        domain.SessionInitial,
		StartedAt:    now,
		LastActivity: now,
		Context:      make(map[string]any),
	}
	m.active[id] = session

	m.logger.Debug("session created", map[string]any{"session": id})
	return copySession(session), nil
}

// AddTurn appends a turn and folds its context delta into the session
// context, later keys overwriting earlier ones.
func (m *Manager) AddTurn(sessionID string, turn domain.Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.active[sessionID]
	if !ok {
		return domain.NewError(domain.CodeNotFound, "no active session %q", sessionID)
	}

	if turn.Timestamp.IsZero() {
		turn.Timestamp = m.now()
	}
	session.Turns = append(session.Turns, turn)
	for key, value := range turn.ContextDelta {
		session.Context[key] = value
	}
	session.LastActivity = m.now()

	if turn.ErrorMessage != "" {
		session.State = domain.SessionError
	} else if session.State == domain.SessionInitial || session.State == domain.SessionError {
		session.State = domain.SessionActive
	}
	return nil
}

// GetSession returns a copy of a live or archived session.
func (m *Manager) GetSession(id string) (domain.ConversationSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.active[id]; ok {
		return copySession(session), nil
	}
	for i := len(m.archive) - 1; i >= 0; i-- {
		if m.archive[i].ID == id {
			return copySession(&m.archive[i]), nil
		}
	}
	return domain.ConversationSession{}, domain.NewError(domain.CodeNotFound, "unknown session %q", id)
}

// GetContext returns the provider-facing view of a session: its aggregate
// context map plus the most recent turns, capped at maxTurns (or the
// configured default when maxTurns is zero).
func (m *Manager) GetContext(id string, maxTurns int) (domain.ContextView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.active[id]
	if !ok {
		return domain.ContextView{}, domain.NewError(domain.CodeNotFound, "no active session %q", id)
	}
	if maxTurns <= 0 {
		maxTurns = m.contextTurns
	}
	start := len(session.Turns) - maxTurns
	if start < 0 {
		start = 0
	}
	view := domain.ContextView{
		SessionID:   session.ID,
		State:       session.State,
		TurnCount:   len(session.Turns),
		RecentTurns: append([]domain.Turn(nil), session.Turns[start:]...),
		Context:     copyContext(session.Context),
	}
	return view, nil
}

// UpdateState sets the session state directly, for caller-driven moves like
// pausing or waiting for input.
func (m *Manager) UpdateState(id string, state domain.SessionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.active[id]
	if !ok {
		return domain.NewError(domain.CodeNotFound, "no active session %q", id)
	}
	session.State = state
	session.LastActivity = m.now()
	return nil
}

// CloseSession moves a session to the bounded archive.
func (m *Manager) CloseSession(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.active[id]
	if !ok {
		return domain.NewError(domain.CodeNotFound, "no active session %q", id)
	}
	session.State = domain.SessionCompleted
	session.Closed = true
	session.LastActivity = m.now()

	m.archive = append(m.archive, copySession(session))
	if len(m.archive) > m.archiveSize {
		m.archive = m.archive[len(m.archive)-m.archiveSize:]
	}
	delete(m.active, id)
	return nil
}

// ActiveSessions lists copies of every live session.
func (m *Manager) ActiveSessions() []domain.ConversationSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.ConversationSession, 0, len(m.active))
	for _, session := range m.active {
		out = append(out, copySession(session))
	}
	return out
}

func copySession(s *domain.ConversationSession) domain.ConversationSession {
	out := *s
	out.Turns = append([]domain.Turn(nil), s.Turns...)
	out.Context = copyContext(s.Context)
	return out
}

func copyContext(ctx map[string]any) map[string]any {
	out := make(map[string]any, len(ctx))
	for key, value := range ctx {
		out[key] = value
	}
	return out
}

var _ ports.SessionRecorder = (*Manager)(nil)
