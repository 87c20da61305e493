package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/va6996/newsletter-agent/agents"
	logcontext "github.com/va6996/newsletter-agent/context"
	"github.com/va6996/newsletter-agent/log"
	"github.com/va6996/newsletter-agent/orm"
	"gorm.io/gorm"
)

// Session limits of the chat server.
const (
	DefaultIdleTTL     = 30 * time.Minute
	DefaultMaxSessions = 1000
)

// EditorFactory starts a conversation for a session id. An empty id asks the
// factory to allocate one.
type EditorFactory func(ctx context.Context, sessionID string) *agents.Editor

// ChatRequest is the body of POST /v1/chat.
type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

// ChatResponse is returned by POST /v1/chat.
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

// TranscriptReader loads a stored conversation.
type TranscriptReader interface {
	GetSession(ctx context.Context, id string) (*orm.Session, error)
}

// TranscriptTurn is one message of a TranscriptResponse.
type TranscriptTurn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// TranscriptResponse is returned by GET /v1/sessions/{id}.
type TranscriptResponse struct {
	SessionID string           `json:"session_id"`
	Mode      string           `json:"mode"`
	CreatedAt time.Time        `json:"created_at"`
	Turns     []TranscriptTurn `json:"turns"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ChatServer exposes the agent over HTTP, keeping one conversation per session id.
// Sessions idle longer than IdleTTL are dropped, and at most MaxSessions are
// kept; the least recently used goes first. Zero disables either limit.
type ChatServer struct {
	IdleTTL     time.Duration
	MaxSessions int

	newEditor   EditorFactory
	transcripts TranscriptReader
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	editor   *agents.Editor
	lastUsed time.Time
}

// NewChatServer creates a server using factory for new sessions. transcripts
// may be nil when history is disabled.
func NewChatServer(factory EditorFactory, transcripts TranscriptReader) *ChatServer {
	return &ChatServer{
		IdleTTL:     DefaultIdleTTL,
		MaxSessions: DefaultMaxSessions,
		newEditor:   factory,
		transcripts: transcripts,
		now:         time.Now,
		sessions:    make(map[string]*session),
	}
}

// Handler returns the routes of the server.
func (s *ChatServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat", s.handleChat)
	mux.HandleFunc("GET /v1/sessions/{id}", s.handleTranscript)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

func (s *ChatServer) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "message is required"})
		return
	}

	ctx := r.Context()
	editor := s.session(ctx, req.SessionID)
	ctx = logcontext.WithSessionID(ctx, editor.SessionID())

	reply, err := editor.Invoke(ctx, req.Message)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, context.Canceled) {
			status = http.StatusRequestTimeout
		}
		log.Errorf(ctx, "Chat request failed: %v", err)
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{SessionID: editor.SessionID(), Reply: reply})
}

func (s *ChatServer) handleTranscript(w http.ResponseWriter, r *http.Request) {
	if s.transcripts == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "transcripts are disabled"})
		return
	}

	id := r.PathValue("id")
	ctx := logcontext.WithSessionID(r.Context(), id)
	stored, err := s.transcripts.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
			return
		}
		log.Errorf(ctx, "Failed to load transcript: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load transcript"})
		return
	}

	resp := TranscriptResponse{
		SessionID: stored.ID,
		Mode:      stored.Mode,
		CreatedAt: stored.CreatedAt,
		Turns:     make([]TranscriptTurn, 0, len(stored.Turns)),
	}
	for _, turn := range stored.Turns {
		resp.Turns = append(resp.Turns, TranscriptTurn{Role: turn.Role, Content: turn.Content, CreatedAt: turn.CreatedAt})
	}
	writeJSON(w, http.StatusOK, resp)
}

// session returns the editor for id, creating one when id is empty or unknown.
// The factory may hit the transcript store, so it runs without the lock.
func (s *ChatServer) session(ctx context.Context, id string) *agents.Editor {
	if id != "" {
		s.mu.Lock()
		if existing, ok := s.sessions[id]; ok {
			existing.lastUsed = s.now()
			s.mu.Unlock()
			return existing.editor
		}
		s.mu.Unlock()
	}

	editor := s.newEditor(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	// A concurrent request may have created the same session meanwhile.
	if existing, ok := s.sessions[editor.SessionID()]; ok {
		existing.lastUsed = now
		return existing.editor
	}
	s.evictLocked(now)
	s.sessions[editor.SessionID()] = &session{editor: editor, lastUsed: now}
	log.Infof(logcontext.WithSessionID(ctx, editor.SessionID()), "Started session (%d active)", len(s.sessions))
	return editor
}

// evictLocked drops idle sessions, then the least recently used ones until a
// new session fits. s.mu must be held.
func (s *ChatServer) evictLocked(now time.Time) {
	if s.IdleTTL > 0 {
		for id, sess := range s.sessions {
			if now.Sub(sess.lastUsed) > s.IdleTTL {
				delete(s.sessions, id)
			}
		}
	}
	if s.MaxSessions <= 0 {
		return
	}
	for len(s.sessions) >= s.MaxSessions {
		var oldestID string
		var oldest time.Time
		for id, sess := range s.sessions {
			if oldestID == "" || sess.lastUsed.Before(oldest) {
				oldestID, oldest = id, sess.lastUsed
			}
		}
		delete(s.sessions, oldestID)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// withCORS allows browser clients from any origin.
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		h.ServeHTTP(w, r)
	})
}
