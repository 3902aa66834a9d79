package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/freelancehub/agency-inbox/infra"
	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/utils"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const (
	CollaboratorUserAgent = "AgencyInbox/1.0"

	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderContentType    = "Content-Type"

	defaultCollaboratorTimeout = 10 * time.Second
)

// CollaboratorError is the rejection of a request by the collaborator service. Message is the
// message the service returned, or the status text when it returned none.
type CollaboratorError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e CollaboratorError) Error() string {
	return fmt.Sprintf("%s: collaborator service returned %d: %s", e.Operation, e.StatusCode, e.Message)
}

// CollaboratorClient talks to the service that persists the inbox data. It never retries: a
// failed request is reported to the caller as is.
type CollaboratorClient struct {
	baseUrl    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewCollaboratorClient(cfg infra.CollaboratorConfig) *CollaboratorClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultCollaboratorTimeout
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit)
	}

	return &CollaboratorClient{
		baseUrl: strings.TrimSuffix(cfg.ApiUrl, "/"),
		apiKey:  cfg.ApiKey,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		limiter: limiter,
	}
}

// get reads a resource and returns the raw response body.
func (c *CollaboratorClient) get(ctx context.Context, operation, path string) ([]byte, error) {
	body, err := c.do(ctx, operation, http.MethodGet, path, nil)
	if err != nil {
		return nil, markFailure(err, models.ErrFetchFailed)
	}
	return body, nil
}

// send writes to the collaborator service and decodes the response into out, when out is not nil.
func (c *CollaboratorClient) send(ctx context.Context, operation, method, path string, payload, out any) error {
	body, err := c.do(ctx, operation, method, path, payload)
	if err != nil {
		return markFailure(err, models.ErrWriteFailed)
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Mark(
			errors.Wrapf(err, "%s: could not parse collaborator response", operation),
			models.ErrWriteFailed)
	}
	return nil
}

func (c *CollaboratorClient) do(ctx context.Context, operation, method, path string, payload any) ([]byte, error) {
	logger := utils.LoggerFromContext(ctx)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrapf(err, "%s: waiting for rate limiter", operation)
	}

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: could not encode request", operation)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseUrl+path, reqBody)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: could not create request", operation)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", CollaboratorUserAgent)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if payload != nil {
		req.Header.Set(HeaderContentType, "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set(HeaderIdempotencyKey, uuid.NewString())
	}

	logger.DebugContext(ctx, "sending collaborator request",
		"operation", operation,
		"method", method,
		"path", path)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	utils.MetricCollaboratorLatency.
		With(prometheus.Labels{"operation": operation}).
		Observe(time.Since(start).Seconds())
	if err != nil {
		utils.MetricCollaboratorRequests.
			With(prometheus.Labels{"operation": operation, "status": "error"}).
			Inc()
		return nil, errors.Wrapf(err, "%s: request failed", operation)
	}
	defer resp.Body.Close()

	utils.MetricCollaboratorRequests.
		With(prometheus.Labels{"operation": operation, "status": strconv.Itoa(resp.StatusCode)}).
		Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: could not read response", operation)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.DebugContext(ctx, "collaborator request rejected",
			"operation", operation,
			"status_code", resp.StatusCode)
		return nil, statusError(operation, resp.StatusCode, body)
	}

	return body, nil
}

func statusError(operation string, statusCode int, body []byte) error {
	message := gjson.GetBytes(body, "message").String()
	if message == "" {
		message = gjson.GetBytes(body, "error").String()
	}
	if message == "" {
		message = http.StatusText(statusCode)
	}

	var err error = CollaboratorError{
		Operation:  operation,
		StatusCode: statusCode,
		Message:    message,
	}

	switch statusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		err = errors.Mark(err, models.BadParameterError)
	case http.StatusUnauthorized, http.StatusForbidden:
		err = errors.Mark(err, models.ForbiddenError)
	case http.StatusNotFound:
		err = errors.Mark(err, models.NotFoundError)
	case http.StatusConflict:
		err = errors.Mark(err, models.ConflictError)
	}
	return err
}

func markFailure(err error, kind error) error {
	if models.IsCancellation(err) {
		return errors.Mark(err, models.ErrCancelled)
	}
	return errors.Mark(err, kind)
}

// CollaboratorMessage returns the message sent back by the collaborator service, if err carries one.
func CollaboratorMessage(err error) (string, bool) {
	var collaboratorErr CollaboratorError
	if errors.As(err, &collaboratorErr) {
		return collaboratorErr.Message, true
	}
	return "", false
}
