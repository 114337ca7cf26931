// Package session holds per-operator application state between login and
// logout: who is signed in, which screen they see and the ticket they have
// open.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-desk/internal/auth"
	"github.com/spec-kit/maintenance-desk/internal/domain"
	"github.com/spec-kit/maintenance-desk/internal/navigation"
	"github.com/spec-kit/maintenance-desk/internal/query"
	"github.com/spec-kit/maintenance-desk/internal/repository"
	apperrors "github.com/spec-kit/maintenance-desk/pkg/util/errorutil"
)

// Session is one signed-in operator.
type Session struct {
	ID        string
	Staff     domain.StaffProfile
	StartedAt time.Time

	mu       sync.Mutex
	nav      *navigation.Navigator
	selected *domain.Ticket
}

// Screen is what the session currently presents.
type Screen struct {
	navigation.State
	Ticket *domain.Ticket
}

// Manager owns every live session.
type Manager struct {
	tokens  *auth.TokenManager
	tickets repository.TicketRepository
	units   navigation.UnitResolver
	logger  *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager wires the manager to the ticket store so open tickets stay
// current.
func NewManager(tokens *auth.TokenManager, tickets repository.TicketRepository, units navigation.UnitResolver, logger *zap.Logger) *Manager {
	m := &Manager{
		tokens:   tokens,
		tickets:  tickets,
		units:    units,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
	tickets.Subscribe(m.onTicketChanged)
	return m
}

// Start opens a session for staff and returns its signed token.
func (m *Manager) Start(staff domain.StaffProfile) (*Session, string, domain.SessionToken, error) {
	if staff.ID() == "" {
		return nil, "", domain.SessionToken{}, apperrors.NewValidationError("staff name is required", nil)
	}
	sess := &Session{
		ID:        uuid.NewString(),
		Staff:     staff,
		StartedAt: time.Now(),
		nav:       navigation.New(m.units),
	}
	token, meta, err := m.tokens.GenerateToken(sess.ID, staff.ID())
	if err != nil {
		return nil, "", domain.SessionToken{}, apperrors.NewInternalError(err)
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	m.logger.Info("session started", zap.String("session_id", sess.ID), zap.String("staff_id", staff.ID()))
	return sess, token, meta, nil
}

// Get returns the live session with id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, apperrors.NewNotFound("session", map[string]any{"session_id": id})
	}
	return sess, nil
}

// Active reports whether id is a live session.
func (m *Manager) Active(id string) bool {
	_, err := m.Get(id)
	return err == nil
}

// End tears the session down.
func (m *Manager) End(id string) error {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return apperrors.NewNotFound("session", map[string]any{"session_id": id})
	}
	m.logger.Info("session ended", zap.String("session_id", id), zap.String("staff_id", sess.Staff.ID()))
	return nil
}

// OpenDetails selects ticketID and shows its details. The ticket is read
// under the session lock so a concurrent change is applied to the mirror.
func (m *Manager) OpenDetails(ctx context.Context, sess *Session, ticketID string, fromTab query.View) (Screen, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	ticket, err := m.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return Screen{}, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return Screen{}, apperrors.MapError(err)
	}
	if err := sess.nav.OpenDetails(ticketID, fromTab); err != nil {
		return Screen{}, err
	}
	sess.selected = ticket
	return sess.screenLocked(), nil
}

// ViewUnitHistory moves the session to the history screen of unitNumber.
func (m *Manager) ViewUnitHistory(ctx context.Context, sess *Session, unitNumber string) (Screen, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.nav.ViewUnitHistory(ctx, unitNumber); err != nil {
		return Screen{}, err
	}
	return sess.screenLocked(), nil
}

// Screen returns the current screen of the session.
func (s *Session) Screen() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screenLocked()
}

// Back goes one screen up.
func (s *Session) Back() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.Back()
	s.syncSelectionLocked()
	return s.screenLocked()
}

// Navigate jumps to the queue or profile screen, optionally switching the
// queue tab.
func (s *Session) Navigate(screen domain.Screen, tab query.View) (Screen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tab != "" {
		if err := s.nav.SelectTab(tab); err != nil {
			return Screen{}, err
		}
	}
	if err := s.nav.Navigate(screen); err != nil {
		return Screen{}, err
	}
	s.syncSelectionLocked()
	return s.screenLocked(), nil
}

func (s *Session) syncSelectionLocked() {
	if s.nav.State().SelectedTicketID == "" {
		s.selected = nil
	}
}

func (s *Session) screenLocked() Screen {
	out := Screen{State: s.nav.State()}
	if s.selected != nil {
		ticket := s.selected.Clone()
		out.Ticket = &ticket
	}
	return out
}

// onTicketChanged replaces the mirror of every session that has the
// ticket open.
func (m *Manager) onTicketChanged(ticket domain.Ticket) {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		sessions = append(sessions, sess)
	}
	m.mu.RUnlock()

	for _, sess := range sessions {
		sess.mu.Lock()
		if sess.selected != nil && sess.selected.ID == ticket.ID {
			mirror := ticket.Clone()
			sess.selected = &mirror
		}
		sess.mu.Unlock()
	}
}
