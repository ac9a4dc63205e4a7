// Package api is the HTTP transport wrapper for the Sports360 backend.
// It attaches the bearer token, measures request latency, and classifies
// every failure before it reaches calling code: transport failures,
// 401s and 5xx responses are additionally broadcast on the global error
// signal; everything else stays local to the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/misanthropic-codes/sports360/internal/domain"
	"github.com/misanthropic-codes/sports360/internal/signal"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Sports360/1.0"
)

// TokenSource returns the current bearer token, or "" when logged out.
// The token lives in the on-device store; only the auth flow writes it.
type TokenSource func() string

// Client implements domain.API against the Sports360 REST backend
type Client struct {
	baseURL    string
	token      TokenSource
	httpClient *http.Client
	errs       *signal.Broadcaster
	logger     *slog.Logger
}

// NewClient creates a Sports360 API client
func NewClient(baseURL string, token TokenSource, errs *signal.Broadcaster, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		errs:   errs,
		logger: logger,
	}
}

// errorBody is the backend's failure payload shape
type errorBody struct {
	Message string `json:"message"`
}

// do performs an authenticated request and returns the raw response body.
// Failures come back as *APIError after classification; see classify.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	reqURL := c.baseURL + path
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		c.logger.Error("request failed", "method", method, "path", path, "elapsed", elapsed, "error", err)
		return nil, c.classify(0, nil, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("request", "method", method, "path", path, "status", resp.StatusCode, "elapsed", elapsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.classify(resp.StatusCode, respBody, nil)
	}

	return respBody, nil
}

// classify turns a failed round trip into an *APIError, broadcasting the
// kinds that need a global UI reaction. Evaluated in order: no response at
// all, then 401, then 5xx; everything else is the caller's problem.
func (c *Client) classify(status int, body []byte, transportErr error) error {
	if transportErr != nil {
		msg := transportErr.Error()
		if c.errs != nil {
			c.errs.NotifyNetworkError(msg)
		}
		return &APIError{Kind: KindNetwork, Message: msg, cause: transportErr}
	}

	serverMsg := http.StatusText(status)
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil && eb.Message != "" {
		serverMsg = eb.Message
	}

	switch {
	case status == http.StatusUnauthorized:
		if c.errs != nil {
			c.errs.NotifySessionExpired()
		}
		return &APIError{
			Kind:       KindSessionExpired,
			StatusCode: status,
			Message:    "Your session has expired. Please log in again.",
		}
	case status >= 500:
		if c.errs != nil {
			c.errs.NotifyServerError(status, serverMsg)
		}
		return &APIError{Kind: KindServer, StatusCode: status, Message: serverMsg}
	default:
		return &APIError{Kind: KindRequest, StatusCode: status, Message: serverMsg}
	}
}

func decode[T any](body []byte) (T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("failed to parse response: %w", err)
	}
	return v, nil
}

// decodePtr decodes a single-object payload. A 2xx response with a null
// body is an empty value, not an error, so callers never see a nil pointer
// from a successful request.
func decodePtr[T any](body []byte) (*T, error) {
	v, err := decode[*T](body)
	if err != nil {
		return nil, err
	}
	if v == nil {
		v = new(T)
	}
	return v, nil
}

// === Auth ===

func (c *Client) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	return decodePtr[domain.Session](body)
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*domain.Session, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/register", nil, map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	return decodePtr[domain.Session](body)
}

// === Teams ===

func (c *Client) MyTeams(ctx context.Context) ([]domain.Team, error) {
	body, err := c.do(ctx, http.MethodGet, "/teams/mine", nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[[]domain.Team](body)
}

func (c *Client) Team(ctx context.Context, teamID string) (*domain.Team, []domain.TeamMember, error) {
	body, err := c.do(ctx, http.MethodGet, "/teams/"+teamID, nil, nil)
	if err != nil {
		return nil, nil, err
	}
	var resp struct {
		Team    domain.Team         `json:"team"`
		Members []domain.TeamMember `json:"members"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &resp.Team, resp.Members, nil
}

func (c *Client) JoinTeam(ctx context.Context, joinCode string) (*domain.Team, error) {
	body, err := c.do(ctx, http.MethodPost, "/teams/join", nil, map[string]string{
		"joinCode": joinCode,
	})
	if err != nil {
		return nil, err
	}
	return decodePtr[domain.Team](body)
}

func (c *Client) JoinRequests(ctx context.Context, teamID string) ([]domain.JoinRequest, error) {
	body, err := c.do(ctx, http.MethodGet, "/teams/"+teamID+"/requests", nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[[]domain.JoinRequest](body)
}

func (c *Client) ApproveJoinRequest(ctx context.Context, teamID, requestID string) error {
	_, err := c.do(ctx, http.MethodPost, "/teams/"+teamID+"/requests/"+requestID+"/approve", nil, nil)
	return err
}

// === Tournaments ===

func (c *Client) Tournaments(ctx context.Context) ([]domain.Tournament, error) {
	body, err := c.do(ctx, http.MethodGet, "/tournaments", nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[[]domain.Tournament](body)
}

func (c *Client) TournamentFixtures(ctx context.Context, tournamentID string) ([]domain.Fixture, error) {
	body, err := c.do(ctx, http.MethodGet, "/tournaments/"+tournamentID+"/fixtures", nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[[]domain.Fixture](body)
}

func (c *Client) TournamentStandings(ctx context.Context, tournamentID string) ([]domain.Standing, error) {
	body, err := c.do(ctx, http.MethodGet, "/tournaments/"+tournamentID+"/standings", nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[[]domain.Standing](body)
}

// === Grounds ===

func (c *Client) Grounds(ctx context.Context) ([]domain.Ground, error) {
	body, err := c.do(ctx, http.MethodGet, "/grounds", nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[[]domain.Ground](body)
}

func (c *Client) GroundSlots(ctx context.Context, groundID, date string) ([]domain.Slot, error) {
	query := url.Values{}
	query.Set("date", date)

	body, err := c.do(ctx, http.MethodGet, "/grounds/"+groundID+"/slots", query, nil)
	if err != nil {
		return nil, err
	}
	return decode[[]domain.Slot](body)
}

func (c *Client) BookSlot(ctx context.Context, slotID, teamID string) (*domain.Booking, error) {
	body, err := c.do(ctx, http.MethodPost, "/bookings", nil, map[string]string{
		"slotId": slotID,
		"teamId": teamID,
	})
	if err != nil {
		return nil, err
	}
	return decodePtr[domain.Booking](body)
}

// === Aggregates ===

func (c *Client) TeamAnalytics(ctx context.Context, teamID string) (*domain.TeamAnalytics, error) {
	body, err := c.do(ctx, http.MethodGet, "/analytics/teams/"+teamID, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodePtr[domain.TeamAnalytics](body)
}

func (c *Client) GuestHighlights(ctx context.Context) (*domain.GuestHighlights, error) {
	body, err := c.do(ctx, http.MethodGet, "/guest/highlights", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodePtr[domain.GuestHighlights](body)
}
