package directory

import (
	"context"

	"peer-match/internal/domain"
)

// MockDirectory permite tests sin un directorio real.
type MockDirectory struct {
	Set CandidateSet
	Err error

	LastUserID string
	LastPrefs  domain.MatchingPreferences
	LastLimit  int
	Calls      int
}

func (m *MockDirectory) FindCandidates(_ context.Context, userID string, prefs domain.MatchingPreferences, limit int) (CandidateSet, error) {
	m.LastUserID = userID
	m.LastPrefs = prefs
	m.LastLimit = limit
	m.Calls++
	return m.Set, m.Err
}
