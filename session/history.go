package session

import "promptsmith/models"

// prependHistoryLocked puts item at the front and evicts the oldest entries
// past the cap, then persists the whole record.
func (s *Session) prependHistoryLocked(item models.HistoryItem) {
	s.history = append([]models.HistoryItem{item}, s.history...)
	if len(s.history) > s.historyLimit {
		s.history = s.history[:s.historyLimit]
	}
	s.store.SaveHistory(s.history)
}

// SelectHistoryItem restores a past generation as the current one: form
// values and prompt come back, both chat threads reset, and the test handle
// is invalidated. No backend call, no new history entry.
func (s *Session) SelectHistoryItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.history {
		if item.ID != id {
			continue
		}
		s.userInput = item.UserInput
		s.tone = item.Tone
		s.audience = item.TargetAudience
		s.prompt = item.Prompt
		s.refineAnchor = item.Prompt
		s.generationErr = ""
		s.resetThreadsLocked()
		return nil
	}
	return ErrHistoryItemNotFound
}

// DeleteHistoryItem removes exactly one entry by id. No-op if absent.
func (s *Session) DeleteHistoryItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.history {
		if item.ID == id {
			s.history = append(s.history[:i], s.history[i+1:]...)
			s.store.SaveHistory(s.history)
			return
		}
	}
}

// ClearAllHistory wipes the whole history. Irreversible, so the caller must
// pass an explicit confirmation.
func (s *Session) ClearAllHistory(confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = []models.HistoryItem{}
	s.store.SaveHistory(s.history)
	return nil
}

// History returns a copy of the generation history, newest first.
func (s *Session) History() []models.HistoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.HistoryItem{}, s.history...)
}
