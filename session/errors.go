package session

import "errors"

var (
	// ErrNotConfigured means the backend credential is missing. Actions are
	// disabled-but-informative, never a crash.
	ErrNotConfigured = errors.New("AI backend is not configured: set GEMINI_API_KEY to enable generation and chat")

	// ErrBusy rejects a duplicate submission while a call on the same
	// channel is still in flight. Duplicates are rejected, never queued.
	ErrBusy = errors.New("a request is already in flight on this channel")

	ErrMissingFields        = errors.New("description and target audience are required")
	ErrNoPrompt             = errors.New("no prompt has been generated yet")
	ErrInvalidAccessCode    = errors.New("invalid access code")
	ErrHistoryItemNotFound  = errors.New("history item not found")
	ErrConfirmationRequired = errors.New("clearing all history requires confirmation")
	ErrUnknownThread        = errors.New("unknown thread")
)
