// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chat holds the state of one conversation with the research
// assistant: the server-assigned session ID and the transcript. A Session
// allows one request in flight at a time and drops replies that arrive
// after the conversation was left.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/da-ros/researchpal/pkg/types"
)

// Greeting is the assistant message every new conversation opens with.
const Greeting = "Hello! I'm your AI research assistant. I can help you find papers, " +
	"explain concepts, and analyze research trends. What would you like to explore today?"

var (
	// ErrEmptyInput is returned when the input is blank.
	ErrEmptyInput = errors.New("message is empty")

	// ErrBusy is returned when a send is attempted while another is in flight.
	ErrBusy = errors.New("a message is already being sent")

	// ErrStale is returned when the reply arrived after Reset; the reply
	// was discarded and the session was not modified.
	ErrStale = errors.New("conversation was reset while waiting for the reply")
)

// Chatter sends a single chat turn to the server.
type Chatter interface {
	Chat(ctx context.Context, req types.ChatRequest) (types.ChatResponse, error)
}

// Sender identifies who wrote a transcript message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is one line of the transcript.
type Message struct {
	Sender  Sender    `json:"sender" yaml:"sender"`
	Content string    `json:"content" yaml:"content"`
	Time    time.Time `json:"timestamp" yaml:"timestamp"`
}

// SendError reports a failed send. Input holds the original text so the
// caller can offer it again for editing.
type SendError struct {
	Input string
	Err   error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("failed to send message: %v", e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

// Session is one conversation. It is safe for concurrent use.
type Session struct {
	client Chatter
	now    func() time.Time

	mu         sync.Mutex
	id         string
	transcript []Message
	inFlight   bool
	generation uint64
}

// NewSession starts a conversation that sends turns through client.
func NewSession(client Chatter) *Session {
	s := &Session{client: client, now: time.Now}
	s.transcript = []Message{s.greeting()}
	return s
}

func (s *Session) greeting() Message {
	return Message{Sender: SenderAssistant, Content: Greeting, Time: s.now()}
}

// ID returns the server-assigned session ID, or "" before the first reply.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Transcript returns a copy of the conversation so far.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Send posts input as the next user turn and returns the assistant reply.
//
// The user message is appended to the transcript while the request is in
// flight. On failure it is removed again and a *SendError carrying input is
// returned. The first successful reply fixes the session ID; later replies
// never change it.
func (s *Session) Send(ctx context.Context, input string) (Message, error) {
	if strings.TrimSpace(input) == "" {
		return Message{}, ErrEmptyInput
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return Message{}, ErrBusy
	}
	s.inFlight = true
	gen := s.generation
	sessionID := s.id
	userIdx := len(s.transcript)
	s.transcript = append(s.transcript, Message{Sender: SenderUser, Content: input, Time: s.now()})
	s.mu.Unlock()

	resp, err := s.client.Chat(ctx, types.ChatRequest{Message: input, SessionID: sessionID})

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		// Reset already cleared the transcript and the in-flight flag.
		return Message{}, ErrStale
	}
	s.inFlight = false

	if err != nil {
		s.transcript = append(s.transcript[:userIdx], s.transcript[userIdx+1:]...)
		return Message{}, &SendError{Input: input, Err: err}
	}

	if s.id == "" {
		s.id = resp.SessionID
	}
	reply := Message{Sender: SenderAssistant, Content: resp.Response, Time: s.now()}
	s.transcript = append(s.transcript, reply)
	return reply, nil
}

// Reset leaves the conversation: the session ID and transcript are cleared
// and any reply still in flight will be discarded when it arrives.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.inFlight = false
	s.id = ""
	s.transcript = []Message{s.greeting()}
}
