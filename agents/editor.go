package agents

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/firebase/genkit/go/ai"
	logcontext "github.com/va6996/newsletter-agent/context"
	"github.com/va6996/newsletter-agent/log"
)

// BaseSystemPrompt is the assistant persona.
const BaseSystemPrompt = "You are a helpful assistant"

// Recorder persists conversation turns.
type Recorder interface {
	AppendTurn(ctx context.Context, sessionID, role, content string) error
}

// Editor is a conversation with the model. It keeps the message history
// between turns; turns are serialized.
type Editor struct {
	responder Responder
	system    string
	sessionID string
	recorder  Recorder

	mu      sync.Mutex
	history []*ai.Message
}

// NewEditor creates a conversation. A non-empty primer is appended to the
// system prompt as reference material.
func NewEditor(responder Responder, sessionID, primer string) *Editor {
	return &Editor{
		responder: responder,
		system:    SystemPrompt(primer),
		sessionID: sessionID,
	}
}

// SystemPrompt builds the system prompt around the priming context.
func SystemPrompt(primer string) string {
	if strings.TrimSpace(primer) == "" {
		return BaseSystemPrompt
	}
	return BaseSystemPrompt + ".\n\nUse the following reference material when answering.\n\n" + primer
}

// SetRecorder makes the editor store every completed turn.
func (e *Editor) SetRecorder(r Recorder) {
	e.recorder = r
}

// SessionID returns the id used for logging and transcripts.
func (e *Editor) SessionID() string {
	return e.sessionID
}

// Invoke sends input and returns the reply. History only grows when the
// model call succeeds.
func (e *Editor) Invoke(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("input is required")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ctx = logcontext.WithSessionID(ctx, e.sessionID)
	log.Infof(ctx, "User: %s", input)

	reply, err := e.responder.Respond(ctx, ChatRequest{
		System:  e.system,
		History: append([]*ai.Message(nil), e.history...),
		Prompt:  input,
	})
	if err != nil {
		log.Errorf(ctx, "Turn failed: %v", err)
		return "", err
	}

	e.history = append(e.history, ai.NewUserTextMessage(input), ai.NewModelTextMessage(reply))
	log.Infof(ctx, "Assistant replied (%d chars)", len(reply))

	if e.recorder != nil {
		e.record(ctx, ai.RoleUser, input)
		e.record(ctx, ai.RoleModel, reply)
	}
	return reply, nil
}

// Reset forgets the conversation so far.
func (e *Editor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = nil
}

// Len returns the number of messages in the history.
func (e *Editor) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.history)
}

func (e *Editor) record(ctx context.Context, role ai.Role, text string) {
	if err := e.recorder.AppendTurn(ctx, e.sessionID, string(role), text); err != nil {
		log.Warnf(ctx, "Failed to record %s turn: %v", role, err)
	}
}
