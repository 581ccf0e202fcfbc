package store

import "promptsmith/models"

// One typed accessor pair per persisted record keeps the decode-failure
// fallback mechanical: every reader gets a well-formed default even when
// the stored value is missing or corrupt.
const (
	keyAdminSettings = "admin_settings"
	keyAccessLevel   = "access_level"
	keyHistory       = "prompt_history"
)

func (s *Store) LoadAdminSettings(def models.AdminSettings) models.AdminSettings {
	return Load(s, keyAdminSettings, def)
}

func (s *Store) SaveAdminSettings(settings models.AdminSettings) {
	Save(s, keyAdminSettings, settings)
}

func (s *Store) LoadAccessLevel() models.AccessLevel {
	level := Load(s, keyAccessLevel, models.AccessNone)
	if !level.Valid() {
		return models.AccessNone
	}
	return level
}

func (s *Store) SaveAccessLevel(level models.AccessLevel) {
	Save(s, keyAccessLevel, level)
}

// LoadHistory returns the persisted generation history, newest first.
// Always returns a non-nil slice.
func (s *Store) LoadHistory() []models.HistoryItem {
	history := Load(s, keyHistory, []models.HistoryItem{})
	if history == nil {
		return []models.HistoryItem{}
	}
	return history
}

func (s *Store) SaveHistory(history []models.HistoryItem) {
	Save(s, keyHistory, history)
}
