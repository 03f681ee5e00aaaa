package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"peer-match/internal/directory"
	"peer-match/internal/domain"
	"peer-match/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubMatchRepo struct {
	matchesByID map[string]domain.MatchRecord
}

func newStubMatchRepo() *stubMatchRepo {
	return &stubMatchRepo{matchesByID: make(map[string]domain.MatchRecord)}
}

func (s *stubMatchRepo) Create(_ context.Context, match domain.MatchRecord) error {
	s.matchesByID[match.ID] = match
	return nil
}

func (s *stubMatchRepo) GetByID(_ context.Context, id string) (domain.MatchRecord, error) {
	match, ok := s.matchesByID[id]
	if !ok {
		return domain.MatchRecord{}, pgx.ErrNoRows
	}
	return match, nil
}

func (s *stubMatchRepo) ListByUserID(_ context.Context, userID string) ([]domain.MatchRecord, error) {
	var matches []domain.MatchRecord
	for _, match := range s.matchesByID {
		if match.Involves(userID) {
			matches = append(matches, match)
		}
	}
	return matches, nil
}

func (s *stubMatchRepo) UpdateStatus(_ context.Context, id string, status domain.MatchStatus, chatSessionID string) error {
	match, ok := s.matchesByID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	match.Status = status
	match.ChatSessionID = chatSessionID
	s.matchesByID[id] = match
	return nil
}

type stubSessionRepo struct {
	sessionsByID map[string]domain.ChatSession
}

func newStubSessionRepo(sessions ...domain.ChatSession) *stubSessionRepo {
	repo := &stubSessionRepo{sessionsByID: make(map[string]domain.ChatSession)}
	for _, session := range sessions {
		repo.sessionsByID[session.ID] = session
	}
	return repo
}

func (s *stubSessionRepo) Create(_ context.Context, session domain.ChatSession) error {
	s.sessionsByID[session.ID] = session
	return nil
}

func (s *stubSessionRepo) GetByID(_ context.Context, id string) (domain.ChatSession, error) {
	session, ok := s.sessionsByID[id]
	if !ok {
		return domain.ChatSession{}, pgx.ErrNoRows
	}
	return session, nil
}

type stubMessageRepo struct {
	messages []domain.ChatMessage
}

func (s *stubMessageRepo) Create(_ context.Context, message domain.ChatMessage) error {
	s.messages = append(s.messages, message)
	return nil
}

func (s *stubMessageRepo) ListBySessionID(_ context.Context, sessionID string) ([]domain.ChatMessage, error) {
	var out []domain.ChatMessage
	for _, message := range s.messages {
		if message.SessionID == sessionID {
			out = append(out, message)
		}
	}
	return out, nil
}

type stubReportRepo struct {
	reports []domain.SafetyReport
	err     error
}

func (s *stubReportRepo) Create(_ context.Context, report domain.SafetyReport) error {
	if s.err != nil {
		return s.err
	}
	s.reports = append(s.reports, report)
	return nil
}

type routerFixture struct {
	router   *gin.Engine
	dir      *directory.MockDirectory
	matches  *stubMatchRepo
	sessions *stubSessionRepo
	messages *stubMessageRepo
	reports  *stubReportRepo
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	logger := zap.NewNop()
	dir := &directory.MockDirectory{}
	matches := newStubMatchRepo()
	sessions := newStubSessionRepo(domain.ChatSession{
		ID:           "session-1",
		MatchID:      "match-1",
		Participants: []string{"user-1", "user-2"},
		CreatedAt:    time.Now().UTC(),
	})
	messages := &stubMessageRepo{}
	reports := &stubReportRepo{}

	chatSvc := service.NewChatService(logger, sessions, messages, service.KeywordClassifier{}, nil, nil)
	matchSvc := service.NewMatchService(logger, dir, matches, chatSvc)
	safetySvc := service.NewSafetyService(logger, reports)

	router := NewRouter(
		logger,
		NewMatchHandler(logger, matchSvc),
		NewChatHandler(logger, chatSvc),
		NewSafetyHandler(logger, safetySvc),
		nil,
		nil,
		nil,
		[]string{"*"},
	)

	return &routerFixture{
		router:   router,
		dir:      dir,
		matches:  matches,
		sessions: sessions,
		messages: messages,
		reports:  reports,
	}
}

func (f *routerFixture) postJSON(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *routerFixture) getJSON(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func directoryProfile(id string, mod func(p *domain.UserProfile)) domain.UserProfile {
	p := domain.UserProfile{
		ID:                 id,
		DisplayName:        "Peer " + id,
		Age:                29,
		Challenges:         []string{"anxiety"},
		Goals:              []string{"mindfulness"},
		ExperienceLevel:    domain.ExperienceIntermediate,
		CommunicationStyle: domain.StyleSupportive,
		Timezone:           "America/Bogota",
		LastActive:         time.Date(2025, 11, 2, 10, 0, 0, 0, time.UTC),
		Bio:                "peer supporter",
	}
	if mod != nil {
		mod(&p)
	}
	return p
}
