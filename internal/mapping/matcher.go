// internal/mapping/matcher.go
package mapping

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Candidate is one ranked match from the ingredient-name service.
type Candidate struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// AliasStore remembers a user's past mapping choices. Implemented by the
// SQLite storage layer; passed in explicitly rather than kept as ambient
// state so the learning cache is visible and testable.
type AliasStore interface {
	GetAlias(userID, rawName string) (string, bool, error)
	PutAlias(userID, rawName, canonicalName string) error
}

// Matcher resolves free-text ingredient names against the remote matching
// service, consulting the alias store first.
type Matcher struct {
	baseURL string
	apiKey  string
	client  *http.Client
	aliases AliasStore
}

func NewMatcher(baseURL, apiKey string, aliases AliasStore) *Matcher {
	return &Matcher{
		baseURL: baseURL,
		apiKey:  apiKey,
		aliases: aliases,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Match returns ranked candidates for an ingredient name. A learned alias
// short-circuits the remote call with a single full-score candidate.
func (m *Matcher) Match(ctx context.Context, userID, name string) ([]Candidate, error) {
	if m.aliases != nil && userID != "" {
		canonical, ok, err := m.aliases.GetAlias(userID, name)
		if err != nil {
			return nil, fmt.Errorf("failed to look up alias: %w", err)
		}
		if ok {
			return []Candidate{{Name: canonical, Score: 1.0}}, nil
		}
	}

	reqURL, err := url.Parse(m.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	params := reqURL.Query()
	params.Add("name", name)
	params.Add("max_results", "10")
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if m.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("matcher request failed with status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var apiResponse struct {
		Message string      `json:"message"`
		Data    []Candidate `json:"data"`
	}
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return apiResponse.Data, nil
}

// Learn records the canonical name the user picked for a raw ingredient
// name, so the next Match resolves locally.
func (m *Matcher) Learn(userID, rawName, canonicalName string) error {
	if m.aliases == nil {
		return fmt.Errorf("no alias store configured")
	}
	return m.aliases.PutAlias(userID, rawName, canonicalName)
}
