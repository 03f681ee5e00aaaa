package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"peer-match/internal/domain"
)

// CandidateSet es la respuesta del directorio a una consulta de candidatos.
type CandidateSet struct {
	Requester  *domain.UserProfile  `json:"requester"`
	Candidates []domain.UserProfile `json:"candidates"`
}

// Directory define la interfaz hacia el servicio de perfiles.
type Directory interface {
	FindCandidates(ctx context.Context, userID string, prefs domain.MatchingPreferences, limit int) (CandidateSet, error)
}

// HTTPClient implementa Directory contra la API interna del directorio.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient construye un cliente HTTP apuntando al directorio de perfiles.
func NewHTTPClient(baseURL, apiKey string, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

func (c *HTTPClient) FindCandidates(ctx context.Context, userID string, prefs domain.MatchingPreferences, limit int) (CandidateSet, error) {
	reqBody := candidatesRequest{
		UserID:      userID,
		Preferences: prefs,
		Limit:       limit,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return CandidateSet{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/internal/matching/candidates", bytes.NewReader(bodyBytes))
	if err != nil {
		return CandidateSet{}, fmt.Errorf("create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return CandidateSet{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return CandidateSet{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if c.logger != nil {
			c.logger.Warn("directory error response",
				zap.Int("status", resp.StatusCode),
				zap.ByteString("body", respBody),
			)
		}
		return CandidateSet{}, fmt.Errorf("directory http error: status=%d", resp.StatusCode)
	}

	var cr candidatesResponse
	if err := json.Unmarshal(respBody, &cr); err != nil {
		return CandidateSet{}, fmt.Errorf("unmarshal response: %w", err)
	}

	if cr.Error != "" {
		return CandidateSet{}, fmt.Errorf("directory api error: %s", cr.Error)
	}

	return CandidateSet{Requester: cr.Requester, Candidates: cr.Candidates}, nil
}

type candidatesRequest struct {
	UserID      string                     `json:"userId"`
	Preferences domain.MatchingPreferences `json:"preferences"`
	Limit       int                        `json:"limit"`
}

type candidatesResponse struct {
	Requester  *domain.UserProfile  `json:"requester"`
	Candidates []domain.UserProfile `json:"candidates"`
	Error      string               `json:"error,omitempty"`
}
