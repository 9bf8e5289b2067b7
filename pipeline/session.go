package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-audiokit/dsp/buffer"
)

var (
	// ErrUnknownSession reports a session id that is not open.
	ErrUnknownSession = errors.New("unknown session")
	// ErrSessionClosed reports use of a session handle after Close handed
	// its buffer back.
	ErrSessionClosed = errors.New("session closed")
)

// Session owns one buffer and serialises every pipeline run against it.
type Session struct {
	id string

	mu  sync.Mutex
	buf *buffer.Buffer
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Run applies p to the session buffer.
func (s *Session) Run(ctx context.Context, p *Pipeline) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buf == nil {
		return Result{}, fmt.Errorf("%s: %w", s.id, ErrSessionClosed)
	}

	return p.Run(ctx, s.buf)
}

// Snapshot returns a deep copy of the current buffer.
func (s *Session) Snapshot() (*buffer.Buffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buf == nil {
		return nil, fmt.Errorf("%s: %w", s.id, ErrSessionClosed)
	}

	return s.buf.Clone(), nil
}

// Sessions is a concurrency-safe set of open sessions keyed by id.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessions creates an empty session store.
func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string]*Session)}
}

// Open validates buf, takes ownership of it and returns a new session.
func (s *Sessions) Open(buf *buffer.Buffer) (*Session, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	sess := &Session{id: uuid.NewString(), buf: buf}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	return sess, nil
}

// Get returns an open session.
func (s *Sessions) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrUnknownSession)
	}

	return sess, nil
}

// Close removes a session and returns its final buffer. The session handle
// is detached from the buffer; later Run and Snapshot calls fail with
// ErrSessionClosed.
func (s *Sessions) Close(id string) (*buffer.Buffer, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrUnknownSession)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	buf := sess.buf
	sess.buf = nil

	return buf, nil
}

// Len returns the number of open sessions.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}
