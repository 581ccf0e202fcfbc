// Package session is the state machine behind the prompt studio: it owns
// access level, admin settings, generation history, the canonical generated
// prompt, and the two chat threads (refine and test). The HTTP surface only
// reads snapshots and dispatches intents; nothing else writes this state.
package session

import (
	"context"
	"iter"
	"strings"
	"sync"
	"time"

	sentry "github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"promptsmith/config"
	"promptsmith/gemini"
	"promptsmith/models"
	"promptsmith/store"
	"promptsmith/stream"
)

// Backend is the generative collaborator: one-shot streaming generation and
// stateful chat sessions. A nil Backend means the credential is missing and
// every generation/chat operation degrades to ErrNotConfigured.
type Backend interface {
	GenerateStream(ctx context.Context, system, prompt string) iter.Seq2[string, error]
	StartChat(ctx context.Context, system string, history []models.ChatMessage) (ChatSession, error)
}

// ChatSession is an opaque conversation handle bound to the system
// instruction it was created with.
type ChatSession interface {
	SendStream(ctx context.Context, message string) iter.Seq2[string, error]
}

type Session struct {
	mu      sync.Mutex
	store   *store.Store
	backend Backend

	access   models.AccessLevel
	settings models.AdminSettings

	history      []models.HistoryItem
	historyLimit int

	// Current form values, restored when a history item is selected.
	userInput string
	tone      string
	audience  string

	prompt        string // canonical generated prompt
	refineAnchor  string // prompt context the next refine turn operates on
	generationErr string

	refineThread []models.ChatMessage
	testThread   []models.ChatMessage

	// testChat is created lazily on the first test message and stays bound
	// to the prompt in effect at creation until explicitly invalidated.
	testChat    ChatSession
	testContext string

	generating bool
	refining   bool
	testing    bool

	copiedAt time.Time
	now      func() time.Time
}

// New restores persisted state and returns a ready session. backend may be
// nil when the credential is missing.
func New(st *store.Store, backend Backend) *Session {
	defaults := models.AdminSettings{
		AccessSecret: config.Config.Access.DefaultSecret,
		GateEnabled:  true,
	}
	return &Session{
		store:        st,
		backend:      backend,
		access:       st.LoadAccessLevel(),
		settings:     st.LoadAdminSettings(defaults),
		history:      st.LoadHistory(),
		historyLimit: config.Config.Options.HistoryLimit,
		refineThread: []models.ChatMessage{},
		testThread:   []models.ChatMessage{},
		now:          time.Now,
	}
}

// Snapshot is the read-only view of session state handed to the view layer.
type Snapshot struct {
	AccessLevel     models.AccessLevel   `json:"accessLevel"`
	GateEnabled     bool                 `json:"gateEnabled"`
	BackendReady    bool                 `json:"backendReady"`
	GeneratedPrompt string               `json:"generatedPrompt"`
	GenerationError string               `json:"generationError,omitempty"`
	UserInput       string               `json:"userInput"`
	Tone            string               `json:"tone"`
	TargetAudience  string               `json:"targetAudience"`
	History         []models.HistoryItem `json:"history"`
	RefineThread    []models.ChatMessage `json:"chatHistory"`
	TestThread      []models.ChatMessage `json:"testChatHistory"`
	Generating      bool                 `json:"generating"`
	Refining        bool                 `json:"refining"`
	Testing         bool                 `json:"testing"`
	CopiedRecently  bool                 `json:"copiedRecently"`
}

// Snapshot returns a consistent copy of all view-facing state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		AccessLevel:     s.effectiveAccessLocked(),
		GateEnabled:     s.settings.GateEnabled,
		BackendReady:    s.backend != nil,
		GeneratedPrompt: s.prompt,
		GenerationError: s.generationErr,
		UserInput:       s.userInput,
		Tone:            s.tone,
		TargetAudience:  s.audience,
		History:         append([]models.HistoryItem{}, s.history...),
		RefineThread:    append([]models.ChatMessage{}, s.refineThread...),
		TestThread:      append([]models.ChatMessage{}, s.testThread...),
		Generating:      s.generating,
		Refining:        s.refining,
		Testing:         s.testing,
		CopiedRecently:  s.copiedRecentlyLocked(),
	}
}

// resetThreadsLocked empties both chat threads and invalidates the test
// conversation handle. Context must never carry over between generations.
func (s *Session) resetThreadsLocked() {
	s.refineThread = []models.ChatMessage{}
	s.testThread = []models.ChatMessage{}
	s.testChat = nil
	s.testContext = ""
}

// GeneratePrompt runs one streaming generation. The publish callback (may
// be nil) receives the full accumulated prompt after each fragment. On
// success the new prompt is returned, a HistoryItem is prepended, and both
// chat threads are reset.
func (s *Session) GeneratePrompt(ctx context.Context, description, tone, audience string, publish func(string)) (string, error) {
	description = strings.TrimSpace(description)
	audience = strings.TrimSpace(audience)
	if description == "" || audience == "" {
		return "", ErrMissingFields
	}
	if s.backend == nil {
		return "", ErrNotConfigured
	}

	s.mu.Lock()
	if s.generating {
		s.mu.Unlock()
		return "", ErrBusy
	}
	s.generating = true
	s.prompt = ""
	s.refineAnchor = ""
	s.generationErr = ""
	s.userInput = description
	s.tone = tone
	s.audience = audience
	s.resetThreadsLocked()
	s.mu.Unlock()

	frags := s.backend.GenerateStream(ctx, gemini.GenerationSystemInstruction,
		gemini.ComposeGenerationPrompt(description, tone, audience))

	final, err := stream.Accumulate(frags, func(full string) {
		s.mu.Lock()
		s.prompt = full
		s.mu.Unlock()
		if publish != nil {
			publish(full)
		}
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = false

	if err != nil {
		log.Errorf("prompt generation failed: %v", err)
		sentry.CaptureException(err)
		s.prompt = ""
		s.generationErr = err.Error()
		return "", err
	}

	s.prompt = final
	s.refineAnchor = final
	s.prependHistoryLocked(models.HistoryItem{
		ID:             uuid.NewString(),
		Prompt:         final,
		Timestamp:      s.now().UnixMilli(),
		UserInput:      description,
		Tone:           tone,
		TargetAudience: audience,
	})
	return final, nil
}

// CopyPrompt returns the canonical prompt for the clipboard surface and
// opens the transient acknowledgment window.
func (s *Session) CopyPrompt() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prompt == "" {
		return "", ErrNoPrompt
	}
	s.copiedAt = s.now()
	return s.prompt, nil
}

// CopiedRecently reports whether a copy happened within the last 2 seconds.
func (s *Session) CopiedRecently() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copiedRecentlyLocked()
}

func (s *Session) copiedRecentlyLocked() bool {
	return !s.copiedAt.IsZero() && s.now().Sub(s.copiedAt) < 2*time.Second
}

// SaveAdminSettings overwrites both settings as a unit; the new secret is
// used by the very next access-code check.
func (s *Session) SaveAdminSettings(secret string, gateEnabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = models.AdminSettings{AccessSecret: secret, GateEnabled: gateEnabled}
	s.store.SaveAdminSettings(s.settings)
}

// AdminSettings returns the current settings for the admin panel.
func (s *Session) AdminSettings() models.AdminSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}
