//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"
	"net/url"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestHealthAndVersion() {
	ctx := context.Background()
	t := s.T()

	var health map[string]string
	s.doJSON(ctx, http.MethodGet, "/health", http.StatusOK, &health)
	assert.Equal(t, "ok", health["status"])

	resp, body := s.doRequest(ctx, http.MethodGet, "/version")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "test-version-info", string(body))
}

func (s *IntegrationTestSuite) TestProtectedRoutesNeedSession() {
	ctx := context.Background()
	t := s.T()

	for _, path := range []string{"/athlete/profile", "/athlete/stats", "/records", "/sync/status"} {
		resp, _ := s.doRequest(ctx, http.MethodGet, path)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}

	resp, _ := s.doRequest(ctx, http.MethodPost, "/sync")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestOAuthLoginCallbackDisconnect() {
	ctx := context.Background()
	t := s.T()

	resp, _ := s.doRequest(ctx, http.MethodGet, "/auth/strava/login")
	require.Equal(t, http.StatusFound, resp.StatusCode)

	authURL, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/oauth/authorize", authURL.Path)
	assert.Equal(t, fakeClientID, authURL.Query().Get("client_id"))
	state := authURL.Query().Get("state")
	require.NotEmpty(t, state)

	// unknown state is rejected and does not burn the issued one
	resp, _ = s.doRequest(ctx, http.MethodGet, "/auth/strava/callback?code="+fakeAuthCode+"&state=forged")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.doRequest(ctx, http.MethodGet, "/auth/strava/callback?code="+fakeAuthCode+"&state="+url.QueryEscape(state))
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000/", resp.Header.Get("Location"))

	// state is single use
	resp, _ = s.doRequest(ctx, http.MethodGet, "/auth/strava/callback?code="+fakeAuthCode+"&state="+url.QueryEscape(state))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	stored, err := s.sessions.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, fakeAthleteID, stored.AthleteID)
	assert.NotEmpty(t, stored.AccessToken)

	// the callback stores the athlete summary right away
	var profile struct {
		Attributes      map[string]any `json:"attributes"`
		ActivitiesCount int            `json:"activitiesCount"`
	}
	s.doJSON(ctx, http.MethodGet, "/athlete/profile", http.StatusOK, &profile)
	assert.Equal(t, "Mila", profile.Attributes["firstname"])
	assert.Equal(t, 0, profile.ActivitiesCount)

	var disconnected map[string]bool
	s.doJSON(ctx, http.MethodDelete, "/auth/strava/session", http.StatusOK, &disconnected)
	assert.True(t, disconnected["disconnected"])

	resp, _ = s.doRequest(ctx, http.MethodGet, "/athlete/profile")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestOAuthCallbackDenied() {
	ctx := context.Background()

	resp, _ := s.doRequest(ctx, http.MethodGet, "/auth/strava/callback?error=access_denied")
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	_, err := s.sessions.Load(ctx)
	s.Error(err)
}
