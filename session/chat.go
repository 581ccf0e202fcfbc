package session

import (
	"context"
	"strings"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	"promptsmith/gemini"
	"promptsmith/models"
	"promptsmith/stream"
)

// setThreadContent rewrites the streaming placeholder at idx. Bounds
// are checked because a concurrent generation may have reset the thread
// while a reply was still streaming; a stale update is simply dropped.
func setThreadContent(s *Session, thread *[]models.ChatMessage, idx int, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx >= 0 && idx < len(*thread) {
		(*thread)[idx].Content = content
	}
}

// SendRefineMessage runs one refine turn: the edit command is applied to the
// current prompt context and the full rewritten prompt streams back into a
// placeholder message. On success the rewrite becomes the canonical prompt
// and the context anchor for the next turn. Blank input is a silent no-op.
func (s *Session) SendRefineMessage(ctx context.Context, text string, publish func(string)) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}
	if s.backend == nil {
		return "", ErrNotConfigured
	}

	s.mu.Lock()
	if s.refining {
		s.mu.Unlock()
		return "", ErrBusy
	}
	s.refining = true
	anchor := s.refineAnchor
	s.refineThread = append(s.refineThread,
		models.ChatMessage{Role: models.RoleUser, Content: text},
		models.ChatMessage{Role: models.RoleModel, Content: ""},
	)
	placeholder := len(s.refineThread) - 1
	s.mu.Unlock()

	finish := func() {
		s.mu.Lock()
		s.refining = false
		s.mu.Unlock()
	}

	// Each turn gets a fresh backend conversation seeded with the latest
	// accepted prompt text, so edits always apply to the newest version.
	seed := []models.ChatMessage{
		{Role: models.RoleUser, Content: gemini.ComposeRefineSeed(anchor)},
	}
	chat, err := s.backend.StartChat(ctx, gemini.RefineSystemInstruction, seed)
	if err != nil {
		log.Errorf("failed to start refine chat: %v", err)
		sentry.CaptureException(err)
		setThreadContent(s, &s.refineThread, placeholder, "Error: "+err.Error())
		finish()
		return "", err
	}

	final, err := stream.Accumulate(chat.SendStream(ctx, text), func(full string) {
		setThreadContent(s, &s.refineThread, placeholder, full)
		if publish != nil {
			publish(full)
		}
	})
	if err != nil {
		log.Errorf("refine stream failed: %v", err)
		sentry.CaptureException(err)
		// Partial output is replaced by an error marker; the canonical
		// prompt is left exactly as it was.
		setThreadContent(s, &s.refineThread, placeholder, "Error: "+err.Error())
		finish()
		return "", err
	}

	s.mu.Lock()
	// A missing placeholder means a new generation reset the thread while
	// this turn was streaming. Its result belongs to the old prompt and
	// must not replace the freshly generated one.
	if placeholder < len(s.refineThread) {
		s.refineThread[placeholder].Content = final
		s.prompt = final
		s.refineAnchor = final
	}
	s.refining = false
	s.mu.Unlock()
	return final, nil
}

// SendTestMessage runs one turn of the test conversation against the
// generated persona. The first message after a reset lazily creates the
// backend conversation bound to whatever prompt is canonical at that
// moment; later messages reuse it regardless of prompt edits.
func (s *Session) SendTestMessage(ctx context.Context, text string, publish func(string)) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}
	if s.backend == nil {
		return "", ErrNotConfigured
	}

	s.mu.Lock()
	if s.testing {
		s.mu.Unlock()
		return "", ErrBusy
	}
	if s.prompt == "" {
		s.mu.Unlock()
		return "", ErrNoPrompt
	}
	s.testing = true
	chat := s.testChat
	prompt := s.prompt
	transcript := append([]models.ChatMessage{}, s.testThread...)
	s.mu.Unlock()

	finish := func() {
		s.mu.Lock()
		s.testing = false
		s.mu.Unlock()
	}

	if chat == nil {
		created, err := s.backend.StartChat(ctx, prompt, transcript)
		if err != nil {
			log.Errorf("failed to start test chat: %v", err)
			sentry.CaptureException(err)
			finish()
			return "", err
		}
		chat = created
		s.mu.Lock()
		s.testChat = created
		s.testContext = prompt
		s.mu.Unlock()
	}

	s.mu.Lock()
	s.testThread = append(s.testThread,
		models.ChatMessage{Role: models.RoleUser, Content: text},
		models.ChatMessage{Role: models.RoleModel, Content: ""},
	)
	placeholder := len(s.testThread) - 1
	s.mu.Unlock()

	final, err := stream.Accumulate(chat.SendStream(ctx, text), func(full string) {
		setThreadContent(s, &s.testThread, placeholder, full)
		if publish != nil {
			publish(full)
		}
	})
	if err != nil {
		log.Errorf("test stream failed: %v", err)
		sentry.CaptureException(err)
		setThreadContent(s, &s.testThread, placeholder, "Error: "+err.Error())
		finish()
		return "", err
	}

	setThreadContent(s, &s.testThread, placeholder, final)
	finish()
	return final, nil
}

// ClearTestThread empties the test transcript and invalidates its backend
// handle. The refine thread and the canonical prompt are untouched; the
// next test message binds a fresh handle to the prompt current then.
func (s *Session) ClearTestThread() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.testThread = []models.ChatMessage{}
	s.testChat = nil
	s.testContext = ""
}
