// Package deptapi implements the client for the remote department service.
package deptapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/target/deptdash/internal/domain/auth"
	"github.com/target/deptdash/internal/domain/model"
	apperrors "github.com/target/deptdash/internal/errors"
	"github.com/target/deptdash/internal/observability/metrics"
	"github.com/target/deptdash/internal/ports"
)

// DefaultBaseURL is the public deployment of the department service.
const DefaultBaseURL = "https://employee-react.onrender.com/emp"

const (
	defaultTimeout  = 15 * time.Second
	maxResponseBody = 1 << 20
)

var errResponseTooLarge = fmt.Errorf("response body exceeds %d bytes", maxResponseBody)

// AuthScheme selects how the token is written into the Authorization header.
type AuthScheme string

const (
	// AuthSchemeBearer sends "Authorization: Bearer <token>".
	AuthSchemeBearer AuthScheme = "bearer"
	// AuthSchemeRaw sends the bare token as the header value.
	AuthSchemeRaw AuthScheme = "raw"
)

// Operation names used for logging and metrics.
const (
	OpLogin            = "login"
	OpRegister         = "register"
	OpListDepartments  = "list_departments"
	OpAddDepartment    = "add_department"
	OpDeleteDepartment = "delete_department"
	OpGetDepartment    = "get_department"
)

// Config captures the client settings for one deployment.
type Config struct {
	BaseURL    string
	AuthScheme AuthScheme
	Timeout    time.Duration
	Client     *http.Client
	Logger     *slog.Logger
	Metrics    metrics.Sink
}

// Client talks to the department service. A Client holds no per-call state; the token
// is read from the TokenSource it was bound to with WithTokens on every authenticated call.
type Client struct {
	baseURL string
	scheme  AuthScheme
	client  *http.Client
	logger  *slog.Logger
	metrics metrics.Sink
	tokens  ports.TokenSource
}

var _ ports.DepartmentAPI = (*Client)(nil)

// NewClient builds a department service client.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse department api base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("department api base url must be an absolute http(s) url: %q", base)
	}

	scheme, err := ParseAuthScheme(string(cfg.AuthScheme))
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: base,
		scheme:  scheme,
		client:  hc,
		logger:  logger.With("component", "deptapi"),
		metrics: cfg.Metrics,
	}, nil
}

// ParseAuthScheme parses an AuthScheme; the empty string selects bearer.
func ParseAuthScheme(s string) (AuthScheme, error) {
	switch AuthScheme(strings.ToLower(strings.TrimSpace(s))) {
	case "", AuthSchemeBearer:
		return AuthSchemeBearer, nil
	case AuthSchemeRaw:
		return AuthSchemeRaw, nil
	default:
		return "", fmt.Errorf("unknown auth scheme %q (want bearer or raw)", s)
	}
}

// WithTokens returns a copy of the client bound to the given token source.
func (c *Client) WithTokens(tokens ports.TokenSource) *Client {
	cp := *c
	cp.tokens = tokens
	return &cp
}

// Factory returns a DepartmentAPIFactory producing clients bound to a token source.
func (c *Client) Factory() ports.DepartmentAPIFactory {
	return func(tokens ports.TokenSource) ports.DepartmentAPI {
		return c.WithTokens(tokens)
	}
}

// Login exchanges credentials for a token. The caller persists the token.
func (c *Client) Login(ctx context.Context, creds domainauth.Credentials) (string, error) {
	body, err := c.call(ctx, request{
		op:     OpLogin,
		method: http.MethodPost,
		path:   "/login",
		body: map[string]string{
			"email":    creds.Email,
			"password": creds.Password,
		},
		fail: func(status int, msg string) error {
			return apperrors.AuthFailed(status, fallback(msg, "Login failed"))
		},
	})
	if err != nil {
		return "", err
	}

	token := extractToken(body)
	if token == "" {
		return "", apperrors.AuthFailed(http.StatusOK, "Token not received.")
	}
	return token, nil
}

// Register creates an account. The result carries the server message and, when
// the service issues one, a token.
func (c *Client) Register(ctx context.Context, reg domainauth.Registration) (domainauth.RegistrationResult, error) {
	body, err := c.call(ctx, request{
		op:     OpRegister,
		method: http.MethodPost,
		path:   "/register",
		body: map[string]string{
			"name":     reg.Name,
			"email":    reg.Email,
			"password": reg.Password,
		},
		fail: func(status int, msg string) error {
			return apperrors.RegistrationFailed(status, fallback(msg, "Registration failed"))
		},
	})
	if err != nil {
		return domainauth.RegistrationResult{}, err
	}

	return domainauth.RegistrationResult{
		Message: extractMessage(body),
		Token:   extractToken(body),
	}, nil
}

// ListDepartments returns the departments in server order.
func (c *Client) ListDepartments(ctx context.Context) ([]model.Department, error) {
	body, err := c.call(ctx, request{
		op:     OpListDepartments,
		method: http.MethodGet,
		path:   "/departments",
		auth:   true,
		fail:   departmentFailure("fetch departments"),
		strict: "Unexpected department list response",
	})
	if err != nil {
		return nil, err
	}

	depts, err := normalizeList(body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Unexpected department list response")
	}
	return depts, nil
}

// AddDepartment creates a department. Callers validate name and description first.
func (c *Client) AddDepartment(ctx context.Context, name, description string) (model.Department, error) {
	body, err := c.call(ctx, request{
		op:     OpAddDepartment,
		method: http.MethodPost,
		path:   "/add-department",
		auth:   true,
		body: map[string]string{
			"name":        name,
			"description": description,
		},
		fail: departmentFailure("add department"),
	})
	if err != nil {
		return model.Department{}, err
	}

	dept, err := normalizeOne(body)
	if err != nil {
		c.logger.DebugContext(ctx, "add department response not recognized, echoing input",
			"op", OpAddDepartment,
			"error", err,
		)
		dept = model.Department{}
	}
	if dept.Name == "" {
		dept.Name = name
	}
	if dept.Description == "" {
		dept.Description = description
	}
	return dept, nil
}

// DeleteDepartment deletes a department by id. A missing department is reported as an error.
func (c *Client) DeleteDepartment(ctx context.Context, id string) error {
	_, err := c.call(ctx, request{
		op:     OpDeleteDepartment,
		method: http.MethodDelete,
		path:   "/delete-department/" + url.PathEscape(id),
		auth:   true,
		fail:   departmentFailure("delete department"),
	})
	return err
}

// GetDepartment fetches a single department.
func (c *Client) GetDepartment(ctx context.Context, id string) (model.Department, error) {
	body, err := c.call(ctx, request{
		op:     OpGetDepartment,
		method: http.MethodGet,
		path:   "/department/" + url.PathEscape(id),
		auth:   true,
		fail:   departmentFailure("fetch department"),
		strict: "Unexpected department response",
	})
	if err != nil {
		return model.Department{}, err
	}

	dept, err := normalizeOne(body)
	if err != nil {
		return model.Department{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Unexpected department response")
	}
	return dept, nil
}

type request struct {
	op     string
	method string
	path   string
	body   any
	auth   bool
	// fail maps a non-2xx status and the server-supplied message (possibly empty) to an error.
	fail func(status int, msg string) error
	// strict, when set, is the message of the error returned for a 2xx body that is
	// oversized or not JSON. Without it such a body is treated as absent.
	strict string
}

// call performs one request and returns the decoded JSON body (nil when empty).
func (c *Client) call(ctx context.Context, r request) (_ any, err error) {
	var token string
	if r.auth {
		if c.tokens == nil {
			return nil, apperrors.NotAuthenticated()
		}
		token, err = c.tokens.RequireToken(ctx)
		if err != nil {
			return nil, err
		}
	}

	start := time.Now()
	status := 0
	defer func() {
		metrics.EmitAPICall(c.metrics, metrics.APICallMetric{
			Operation: r.op,
			Status:    status,
			Duration:  time.Since(start),
			Err:       err,
		})
		if err != nil {
			c.logger.WarnContext(ctx, "department api call failed",
				"op", r.op,
				"status", status,
				"code", apperrors.GetCode(err),
				"error", apperrors.Message(err),
			)
		}
	}()

	req, err := c.newRequest(ctx, r, token)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	status = resp.StatusCode

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	raw, err := readBody(resp)
	if err != nil && !errors.Is(err, errResponseTooLarge) {
		if !ok {
			// Error body parsing is best effort.
			return nil, r.fail(resp.StatusCode, "")
		}
		return nil, transportError(ctx, err)
	}

	var body any
	decodeErr := err
	if decodeErr == nil {
		body, decodeErr = decodeJSON(raw)
	}
	if !ok {
		return nil, r.fail(resp.StatusCode, extractMessage(body))
	}
	if decodeErr != nil {
		if r.strict != "" {
			return nil, apperrors.Wrap(decodeErr, apperrors.ErrCodeInternal, r.strict)
		}
		c.logger.DebugContext(ctx, "ignoring undecodable response body",
			"op", r.op,
			"status", status,
			"error", decodeErr,
		)
	}
	return body, nil
}

func (c *Client) newRequest(ctx context.Context, r request, token string) (*http.Request, error) {
	var reader io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return nil, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "encode %s request", r.op)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, reader)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "create %s request", r.op)
	}
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.auth {
		req.Header.Set("Authorization", authorizationValue(c.scheme, token))
	}
	return req, nil
}

// authorizationValue is the single place the Authorization header is built.
func authorizationValue(scheme AuthScheme, token string) string {
	if scheme == AuthSchemeRaw {
		return token
	}
	return "Bearer " + token
}

// departmentFailure maps non-2xx responses of department operations. 400 and 401
// both mean the token was rejected.
func departmentFailure(action string) func(int, string) error {
	return func(status int, msg string) error {
		switch status {
		case http.StatusUnauthorized:
			return apperrors.Unauthorized(status, fallback(msg, "Unauthorized. Please login again."))
		case http.StatusBadRequest:
			return apperrors.Unauthorized(status, fallback(msg, "Invalid token. Please login again."))
		default:
			return apperrors.Server(status, fallback(msg, fmt.Sprintf("Failed to %s (%d)", action, status)))
		}
	}
}

func transportError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.Canceled) && ctx.Err() != nil:
		return apperrors.Wrap(err, apperrors.ErrCodeCanceled, "Request was canceled.")
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Wrap(err, apperrors.ErrCodeTimeout, "Request timed out. Please try again.")
	default:
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return apperrors.Wrap(err, apperrors.ErrCodeTimeout, "Request timed out. Please try again.")
		}
		return apperrors.Network(err)
	}
}

func readBody(resp *http.Response) ([]byte, error) {
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody+1))
	closeErr := resp.Body.Close()
	if readErr != nil {
		if closeErr != nil {
			return nil, errors.Join(
				fmt.Errorf("read response body: %w", readErr),
				fmt.Errorf("close response body: %w", closeErr),
			)
		}
		return nil, fmt.Errorf("read response body: %w", readErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("close response body: %w", closeErr)
	}
	if len(raw) > maxResponseBody {
		return nil, errResponseTooLarge
	}
	return raw, nil
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
