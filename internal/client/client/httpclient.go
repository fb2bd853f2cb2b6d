package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/smarttask/internal/client/models"
	"github.com/dmitrijs2005/smarttask/internal/common"
	"github.com/dmitrijs2005/smarttask/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// Options configure an HTTPClient.
type Options struct {
	// APIBaseURL serves tasks and AI endpoints.
	APIBaseURL string
	// AuthBaseURL serves /api/auth/*. Empty means APIBaseURL.
	AuthBaseURL string
	Timeout     time.Duration
	// Token returns the current bearer token; "" means signed out.
	Token func() string
	// Transport is the base round tripper; nil means http.DefaultTransport.
	Transport http.RoundTripper
	Logger    logging.Logger
}

// HTTPClient implements Client over JSON/HTTP.
type HTTPClient struct {
	apiBase  *url.URL
	authBase *url.URL
	plain    *http.Client
	authed   *http.Client
	log      logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// bearerSource adapts the session token getter to oauth2.TokenSource.
type bearerSource func() string

func (s bearerSource) Token() (*oauth2.Token, error) {
	tok := s()
	if tok == "" {
		return nil, ErrUnauthorized
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}

func NewHTTPClient(opts Options) (*HTTPClient, error) {
	apiBase, err := parseBase(opts.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("api base url: %w", err)
	}
	authBase := apiBase
	if opts.AuthBaseURL != "" {
		if authBase, err = parseBase(opts.AuthBaseURL); err != nil {
			return nil, fmt.Errorf("auth base url: %w", err)
		}
	}

	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	token := opts.Token
	if token == nil {
		token = func() string { return "" }
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	return &HTTPClient{
		apiBase:  apiBase,
		authBase: authBase,
		plain:    &http.Client{Timeout: opts.Timeout, Transport: base},
		authed: &http.Client{
			Timeout:   opts.Timeout,
			Transport: &oauth2.Transport{Source: bearerSource(token), Base: base},
		},
		log: log.With("component", "http"),
	}, nil
}

func parseBase(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%q is not an absolute URL", raw)
	}
	return u, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type meResponse struct {
	User *models.User `json:"user"`
}

type completeRequest struct {
	CompletionTime int `json:"completion_time"`
}

type suggestResponse struct {
	SuggestedTime string `json:"suggested_time"`
}

type voiceRequest struct {
	Text string `json:"text"`
}

func (c *HTTPClient) Register(ctx context.Context, name, email string, password []byte) error {
	req := registerRequest{Name: name, Email: email, Password: string(password)}
	return c.do(ctx, c.plain, c.authBase, http.MethodPost, "/api/auth/register", req, nil)
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (string, *models.User, error) {
	var resp loginResponse
	req := loginRequest{Email: email, Password: string(password)}
	if err := c.do(ctx, c.plain, c.authBase, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return "", nil, err
	}
	if resp.Token == "" {
		return "", nil, fmt.Errorf("%w: login response without token", ErrMalformed)
	}
	return resp.Token, resp.User, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var resp meResponse
	if err := c.do(ctx, c.authed, c.authBase, http.MethodGet, "/api/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, fmt.Errorf("%w: no user in /me response", ErrMalformed)
	}
	return resp.User, nil
}

func (c *HTTPClient) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, c.authed, c.apiBase, http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

func (c *HTTPClient) CreateTask(ctx context.Context, draft models.Draft) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, c.authed, c.apiBase, http.MethodPost, "/api/tasks", draft, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *HTTPClient) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, c.authed, c.apiBase, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) CompleteTask(ctx context.Context, id string, minutes int) error {
	req := completeRequest{CompletionTime: minutes}
	return c.do(ctx, c.authed, c.apiBase, http.MethodPut, "/api/tasks/complete/"+url.PathEscape(id), req, nil)
}

func (c *HTTPClient) SuggestTime(ctx context.Context) (string, error) {
	var resp suggestResponse
	if err := c.do(ctx, c.authed, c.apiBase, http.MethodPost, "/api/ai/suggest-time", struct{}{}, &resp); err != nil {
		return "", err
	}
	return resp.SuggestedTime, nil
}

func (c *HTTPClient) VoiceTask(ctx context.Context, text string) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, c.authed, c.apiBase, http.MethodPost, "/api/ai/voice-task", voiceRequest{Text: text}, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// do sends one JSON request and decodes a JSON response into out when out is
// non-nil and the body is not empty.
func (c *HTTPClient) do(ctx context.Context, hc *http.Client, base *url.URL, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, base.String()+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return c.mapTransportError(ctx, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "request done", "method", method, "path", path, "status", resp.StatusCode,
		"request_id", requestID, "elapsed", time.Since(started))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

func (c *HTTPClient) mapTransportError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return ErrUnauthorized
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}

// errorMessage pulls a human-readable message out of an error body.
func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		for _, m := range []string{body.Message, body.Error, body.Msg} {
			if m != "" {
				return m
			}
		}
	}
	s := strings.TrimSpace(string(data))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
