package strava

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/trainerdash/internal/telemetry/tracing"

	"golang.org/x/oauth2"
)

// https://developers.strava.com/docs/authentication/

const (
	DefaultAuthURL  = "https://www.strava.com/oauth/authorize"
	DefaultTokenURL = "https://www.strava.com/oauth/token"
	DefaultScope    = "read,activity:read_all,profile:read_all"
)

// Session is the bearer credential pair of one athlete.
// It is invalid once the current time is past ExpiresAt.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	// ExpiresAt is in unix seconds.
	ExpiresAt int64 `json:"expires_at"`
	AthleteID int64 `json:"athlete_id"`
}

func (s *Session) IsExpired(now time.Time) bool {
	return now.Unix() > s.ExpiresAt
}

type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
	Scopes       []string
}

// TokenManager exchanges authorization codes and refresh tokens at the provider token endpoint.
type TokenManager struct {
	oauthConfig *oauth2.Config
	httpClient  *http.Client
	// Now can be swapped in tests.
	Now func() time.Time
}

func NewTokenManager(cfg OAuthConfig, httpClient *http.Client) *TokenManager {
	if cfg.AuthURL == "" {
		cfg.AuthURL = DefaultAuthURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = []string{DefaultScope}
	}

	return &TokenManager{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: httpClient,
		Now:        time.Now,
	}
}

func (tm *TokenManager) AuthCodeURL(state string) string {
	return tm.oauthConfig.AuthCodeURL(state, oauth2.SetAuthURLParam("approval_prompt", "auto"))
}

func (tm *TokenManager) IsExpired(session *Session) bool {
	return session.IsExpired(tm.Now())
}

// Exchange trades an authorization code for a new session and the athlete summary
// the provider sends along with the first token.
func (tm *TokenManager) Exchange(ctx context.Context, code string) (_ *Session, _ Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "strava.tokenManager.exchange")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tok, err := tm.oauthConfig.Exchange(tm.clientContext(ctx), code)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: exchange code: %w", ErrAuthentication, err)
	}

	athlete := Profile{}
	if raw, ok := tok.Extra("athlete").(map[string]any); ok {
		athlete = raw
	}

	session := tm.sessionFromToken(tok)
	session.AthleteID = athlete.ID()
	if session.AthleteID == 0 {
		return nil, nil, fmt.Errorf("%w: token response without athlete id", ErrAuthentication)
	}

	return session, athlete, nil
}

// Refresh exchanges a refresh token for a new access/refresh pair.
// The returned session has no athlete id; callers keep the one they already hold.
func (tm *TokenManager) Refresh(ctx context.Context, refreshToken string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "strava.tokenManager.refresh")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if refreshToken == "" {
		return nil, fmt.Errorf("%w: empty refresh token", ErrAuthentication)
	}

	src := tm.oauthConfig.TokenSource(tm.clientContext(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return nil, fmt.Errorf("%w: refresh token: HTTP %d: %w", ErrAuthentication, retrieveErr.Response.StatusCode, err)
		}
		return nil, fmt.Errorf("%w: refresh token: %w", ErrAuthentication, err)
	}

	return tm.sessionFromToken(tok), nil
}

// EnsureFresh returns the given session when still valid, otherwise a refreshed one.
// The boolean reports whether a refresh took place.
func (tm *TokenManager) EnsureFresh(ctx context.Context, session *Session) (*Session, bool, error) {
	if session == nil || session.AccessToken == "" {
		return nil, false, fmt.Errorf("%w: no session", ErrAuthentication)
	}
	if !tm.IsExpired(session) {
		return session, false, nil
	}

	refreshed, err := tm.Refresh(ctx, session.RefreshToken)
	if err != nil {
		return nil, false, err
	}
	refreshed.AthleteID = session.AthleteID

	return refreshed, true, nil
}

func (tm *TokenManager) clientContext(ctx context.Context) context.Context {
	if tm.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, tm.httpClient)
}

func (tm *TokenManager) sessionFromToken(tok *oauth2.Token) *Session {
	expiresAt := tok.Expiry.Unix()
	switch v := tok.Extra("expires_at").(type) {
	case float64:
		expiresAt = int64(v)
	case int64:
		expiresAt = v
	}

	return &Session{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    expiresAt,
	}
}
