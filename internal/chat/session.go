// session.go - Chat session controller: linear history and the in-flight gate.

package chat

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/agrisense/farm_assist_gemini/internal/common"
	"github.com/agrisense/farm_assist_gemini/internal/identify"
)

// Role of a message author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Session states. A new send while awaiting a response is rejected, not
// queued; the client keeps its input locked during that window.
const (
	stateIdle     = "idle"
	stateAwaiting = "awaiting-response"
)

// ErrAwaitingResponse is returned when Send is called while a previous call
// is still in flight. No message is appended and no upstream call is made.
var ErrAwaitingResponse = errors.New("a response is already in flight for this session")

const transportErrorPrefix = "Sorry, I couldn't reach the assistant right now. Please try again."

// Message is one immutable turn in a conversation.
type Message struct {
	ID            string    `json:"id"`
	Role          Role      `json:"role"`
	Text          string    `json:"text"`
	CreatedAt     time.Time `json:"createdAt"`
	AttachedImage string    `json:"attachedImage,omitempty"`
}

// Responder is the single capability a session needs from the AI layer.
// Injected once at composition time; there is no ambient provider lookup.
type Responder interface {
	AnswerQuery(ctx context.Context, query string, reqCtx *common.RequestContext) (string, *common.TokenUsage, error)
}

// Session owns the append-only message history for one conversation and
// drives calls to the model, the sanitizer and the classifier fallback.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	state     string
	messages  []Message
	responder Responder
}

// NewSession creates an idle session bound to a responder.
func NewSession(id string, responder Responder) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		state:     stateIdle,
		responder: responder,
	}
}

// Send appends a user message, calls the model, and appends exactly one
// assistant message whether the call succeeds or fails. A second Send while
// the first is in flight returns ErrAwaitingResponse and leaves the history
// untouched. There is no retry and no cancellation once the call starts.
func (s *Session) Send(ctx context.Context, reqCtx *common.RequestContext, text, imagePath string) (Message, error) {
	s.mu.Lock()
	if s.state == stateAwaiting {
		s.mu.Unlock()
		return Message{}, ErrAwaitingResponse
	}
	s.state = stateAwaiting

	userMsg := newMessage(RoleUser, text)
	userMsg.AttachedImage = imagePath
	s.messages = append(s.messages, userMsg)
	s.mu.Unlock()

	// Single outstanding network call; no lock held while waiting.
	answer, _, err := s.responder.AnswerQuery(ctx, text, reqCtx)

	var assistantText string
	if err != nil {
		// Remote classification is unavailable; the local keyword matcher
		// decides between the refusal sentence and an error turn.
		if !identify.IsInDomain(text) {
			assistantText = identify.RefusalMessage
		} else {
			assistantText = transportErrorPrefix + " (" + err.Error() + ")"
		}
		if reqCtx != nil {
			reqCtx.LogWarning("chat model call failed, answered locally: %v", err)
		}
	} else {
		assistantText = identify.Sanitize(answer)
	}

	assistantMsg := newMessage(RoleAssistant, assistantText)

	s.mu.Lock()
	s.messages = append(s.messages, assistantMsg)
	s.state = stateIdle
	s.mu.Unlock()

	return assistantMsg, nil
}

// Messages returns a copy of the history in send/receive order.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// newMessage builds an immutable message with a timestamp-derived id.
func newMessage(role Role, text string) Message {
	now := time.Now()
	return Message{
		ID:        strconv.FormatInt(now.UnixNano(), 10),
		Role:      role,
		Text:      text,
		CreatedAt: now,
	}
}

// Manager hands out sessions by id. Sessions live for the process lifetime;
// history is not persisted.
type Manager struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	responder Responder
}

// NewManager creates a session manager bound to one responder.
func NewManager(responder Responder) *Manager {
	return &Manager{
		sessions:  make(map[string]*Session),
		responder: responder,
	}
}

// GetOrCreate returns the session for id, creating it on first use.
func (m *Manager) GetOrCreate(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := NewSession(id, m.responder)
	m.sessions[id] = s
	return s
}
