package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrMissingCredentials is returned when the endpoint or the token is empty
	ErrMissingCredentials = errors.New("API endpoint and access token must be set")
	// ErrTokenExpired is returned before sending a request with an expired token
	ErrTokenExpired = errors.New("access token has expired")
	// ErrNoData is returned when a response carries no data
	ErrNoData = errors.New("response contains no data")
)

const (
	// maxResponseBody caps how much of a response is read
	maxResponseBody = 32 << 20
	// maxErrorBody caps how much of an error response is kept
	maxErrorBody = 4096
)

// Config holds the connection settings of an HTTP transport
type Config struct {
	Endpoint    string
	AccessToken string
	Timeout     time.Duration
	UserAgent   string
}

// StatusError is returned for non-2xx responses that carry no GraphQL body
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d: %s", e.StatusCode, e.Body)
}

// HTTPTransport posts operations as JSON with a bearer token
type HTTPTransport struct {
	config Config
	client *http.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewHTTP creates an HTTP transport. The endpoint must be an absolute
// http(s) URL and the token must not be empty.
func NewHTTP(config Config, logger *zap.Logger) (*HTTPTransport, error) {
	if config.Endpoint == "" || config.AccessToken == "" {
		return nil, ErrMissingCredentials
	}
	u, err := url.Parse(config.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid API endpoint %q: must be an absolute http(s) URL", config.Endpoint)
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = "mozaik-cli"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &HTTPTransport{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger,
		now:    time.Now,
	}, nil
}

// Execute sends op and decodes the response. GraphQL errors in the body are
// returned in Response.Errors, not as the error value.
func (t *HTTPTransport) Execute(ctx context.Context, op Operation) (*Response, error) {
	if err := t.checkToken(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(op)
	if err != nil {
		return nil, fmt.Errorf("encoding operation: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+t.config.AccessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", t.config.UserAgent)
	req.Header.Set("X-Request-ID", requestID)

	start := t.now()
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending %s: %w", operationLabel(op), err)
	}
	defer resp.Body.Close()

	t.logger.Debug("graphql request",
		zap.String("operation", operationLabel(op)),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", t.now().Sub(start)),
	)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("reading response of %s: %w", operationLabel(op), err)
	}

	var result Response
	decodeErr := json.Unmarshal(raw, &result)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && len(result.Errors) > 0 {
			return &result, nil
		}
		if len(raw) > maxErrorBody {
			raw = raw[:maxErrorBody]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decoding response of %s: %w", operationLabel(op), decodeErr)
	}

	return &result, nil
}

// checkToken rejects tokens that are JWTs with an expiry in the past. The
// signature is not verified; the backend does that.
func (t *HTTPTransport) checkToken() error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(t.config.AccessToken, claims); err != nil {
		// Opaque API keys are not JWTs
		return nil
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	if t.now().After(exp.Time) {
		return fmt.Errorf("%w at %s", ErrTokenExpired, exp.Time.Format(time.RFC3339))
	}
	return nil
}

func operationLabel(op Operation) string {
	if op.OperationName != "" {
		return op.OperationName
	}
	return "anonymous operation"
}
