//go:build integration_test || all_tests

package test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/2beens/trainerdash/internal/strava"
)

func (s *IntegrationTestSuite) doRequest(ctx context.Context, method, path string) (*http.Response, []byte) {
	t := s.T()

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, nil)
	s.Require().NoError(err)
	req.Header.Set("User-Agent", "test-agent")

	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err, t.Name())

	return resp, respBytes
}

func (s *IntegrationTestSuite) doJSON(ctx context.Context, method, path string, expectedStatus int, out any) {
	resp, respBytes := s.doRequest(ctx, method, path)
	s.Require().Equal(expectedStatus, resp.StatusCode, string(respBytes))
	if out != nil {
		s.Require().NoError(json.Unmarshal(respBytes, out), string(respBytes))
	}
}

// connect stores a session for the fake athlete, as the oauth callback would.
func (s *IntegrationTestSuite) connect(ctx context.Context, expiresAt time.Time) {
	s.Require().NoError(s.sessions.Save(ctx, &strava.Session{
		AccessToken:  "seeded-access",
		RefreshToken: "seeded-refresh",
		ExpiresAt:    expiresAt.Unix(),
		AthleteID:    fakeAthleteID,
	}))
}
