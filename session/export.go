package session

import (
	"fmt"
	"strings"

	"promptsmith/models"
)

// ExportThread renders a thread as a plain-text document: a header, the
// prompt context in effect for that thread, and the full transcript with
// role labels. The suggested filename is <thread>-conversation-<date>.txt.
func (s *Session) ExportThread(which models.Thread) (filename, content string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var title, promptContext string
	var thread []models.ChatMessage
	switch which {
	case models.ThreadRefine:
		title = "Refine Conversation"
		promptContext = s.refineAnchor
		thread = s.refineThread
	case models.ThreadTest:
		title = "Test Conversation"
		// The test thread talks to the prompt bound at handle creation,
		// which may differ from the current canonical prompt.
		promptContext = s.testContext
		if promptContext == "" {
			promptContext = s.prompt
		}
		thread = s.testThread
	default:
		return "", "", ErrUnknownThread
	}

	date := s.now().Format("2006-01-02")

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s - %s\n", title, date)
	sb.WriteString("=====================================\n\n")
	sb.WriteString("System prompt in effect:\n\n")
	sb.WriteString(promptContext)
	sb.WriteString("\n\n-------------------------------------\n\n")
	for _, msg := range thread {
		fmt.Fprintf(&sb, "%s:\n%s\n\n", strings.ToUpper(string(msg.Role)), msg.Content)
	}

	filename = NormalizeTxtFilename(fmt.Sprintf("%s-conversation-%s", which, date))
	return filename, sb.String(), nil
}

// NormalizeTxtFilename appends a .txt extension when the name has none.
func NormalizeTxtFilename(name string) string {
	if strings.Contains(name, ".") {
		return name
	}
	return name + ".txt"
}
