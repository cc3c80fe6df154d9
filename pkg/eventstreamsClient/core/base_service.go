package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/jpillora/backoff"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	Version        = "1.3.0"
	ServiceVersion = "V1"
)

// Operation declares one API call: everything the request builder needs besides
// the per-call options.
type Operation struct {
	ID         string
	Method     string
	Path       string
	PathParams map[string]string
	// Query values may be pointers, nil ones are not sent.
	Query []QueryParam
	// Headers are operation specific, e.g. X-Registry-ArtifactId.
	Headers map[string]string
	// Body is encoded with MarshalModel when non-nil.
	Body interface{}
	// AcceptJSON requests a JSON response body.
	AcceptJSON bool
}

type QueryParam struct {
	Name  string
	Value interface{}
}

// BaseService executes Operations against one API endpoint. A BaseService is
// immutable; WithRetries and WithoutRetries return new views sharing the same
// transport and rate limiter.
type BaseService struct {
	name    string
	options ServiceOptions
	client  *http.Client
	limiter *rate.Limiter
	retry   *RetryOptions
}

func NewBaseService(name string, options *ServiceOptions) (*BaseService, error) {
	if options == nil || options.URL == "" {
		return nil, ErrServiceURLMissing
	}
	if options.Authenticator == nil {
		return nil, ErrAuthenticatorMissing
	}
	if err := options.Authenticator.Validate(); err != nil {
		return nil, err
	}

	s := &BaseService{
		name:    name,
		options: *options,
		client:  options.HTTPClient,
	}
	if s.client == nil {
		s.client = http.DefaultClient
	}
	if s.options.Timeout <= 0 {
		s.options.Timeout = DefaultTimeout
	}
	if options.Retry != nil {
		s.retry = options.Retry.withDefaults()
	}
	if options.RateLimit > 0 {
		burst := options.RateBurst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(options.RateLimit), burst)
	}
	return s, nil
}

func (s *BaseService) Name() string {
	return s.name
}

func (s *BaseService) ServiceURL() string {
	return s.options.URL
}

func (s *BaseService) Authenticator() Authenticator {
	return s.options.Authenticator
}

func (s *BaseService) HTTPClient() *http.Client {
	return s.client
}

func (s *BaseService) RetriesEnabled() bool {
	return s.retry != nil
}

// WithRetries returns a view of s that retries transport failures, 429 and 5xx
// responses up to maxRetries times with exponential backoff capped at maxInterval.
// Calls already running on s are not affected.
func (s *BaseService) WithRetries(maxRetries int, maxInterval time.Duration) *BaseService {
	clone := *s
	clone.retry = (&RetryOptions{MaxRetries: maxRetries, MaxInterval: maxInterval}).withDefaults()
	return &clone
}

func (s *BaseService) WithoutRetries() *BaseService {
	clone := *s
	clone.retry = nil
	return &clone
}

// SDKHeaders identifies the client and operation to the service.
func SDKHeaders(serviceName, serviceVersion, operationID string) map[string]string {
	return map[string]string{
		HeaderUserAgent: fmt.Sprintf("eventstreams-go-sdk/%s (lang=go; arch=%s; os=%s; go.version=%s)",
			Version, runtime.GOARCH, runtime.GOOS, runtime.Version()),
		HeaderAnalytics: fmt.Sprintf("service_name=%s;service_version=%s;operation_id=%s",
			serviceName, serviceVersion, operationID),
	}
}

// NewRequest builds the HTTP request for op. Header precedence, lowest first:
// SDK headers, service defaults, operation headers, Content-Type/Accept, call headers.
func (s *BaseService) NewRequest(ctx context.Context, op Operation, call CallOptions) (*http.Request, error) {
	builder := NewRequestBuilder(op.Method).WithContext(ctx)
	if _, err := builder.ResolveRequestURL(s.options.URL, op.Path, op.PathParams); err != nil {
		return nil, err
	}
	for _, q := range op.Query {
		builder.AddQuery(q.Name, q.Value)
	}

	builder.AddHeaders(SDKHeaders(s.name, ServiceVersion, op.ID))
	builder.AddHeaders(s.options.Headers)
	builder.AddHeaders(op.Headers)
	if op.Body != nil {
		if _, err := builder.SetBodyContentJSON(op.Body); err != nil {
			return nil, err
		}
	}
	if op.AcceptJSON {
		builder.AddHeader(HeaderAccept, string(ContentTypeJSON))
	}
	builder.AddHeaders(call.Headers)

	return builder.Build()
}

// Invoke runs op and decodes a 2xx body into result when result is non-nil.
func (s *BaseService) Invoke(ctx context.Context, op Operation, call CallOptions, result interface{}) (*DetailedResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := s.options.Timeout
	if call.Timeout > 0 {
		timeout = call.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	request, err := s.NewRequest(ctx, op, call)
	if err != nil {
		return nil, err
	}
	return s.Request(request, result)
}

// InvokeAs runs op and returns the decoded body as *T, nil when the response had
// no body.
func InvokeAs[T any](ctx context.Context, s *BaseService, op Operation, call CallOptions) (*T, *DetailedResponse, error) {
	result := new(T)
	response, err := s.Invoke(ctx, op, call, result)
	if err != nil || response.Result == nil {
		return nil, response, err
	}
	return result, response, nil
}

// Request authenticates and sends request, then maps the response.
func (s *BaseService) Request(request *http.Request, result interface{}) (*DetailedResponse, error) {
	if err := s.options.Authenticator.Authenticate(request); err != nil {
		return nil, fmt.Errorf("authenticating request: %w", err)
	}

	response, err := s.do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	bodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	zap.S().Debugf("%s %s -> %d (%d bytes)", request.Method, request.URL.Redacted(), response.StatusCode, len(bodyBytes))

	detailed := &DetailedResponse{
		StatusCode: response.StatusCode,
		Headers:    response.Header,
		RawResult:  bodyBytes,
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return detailed, newHTTPError(response, bodyBytes)
	}
	if result == nil || len(bytes.TrimSpace(bodyBytes)) == 0 {
		return detailed, nil
	}
	if err = UnmarshalModel(bodyBytes, result); err != nil {
		return detailed, err
	}
	detailed.Result = result
	return detailed, nil
}

func newHTTPError(response *http.Response, bodyBytes []byte) *HTTPError {
	httpErr := &HTTPError{
		StatusCode: response.StatusCode,
		Headers:    response.Header,
		RawBody:    bodyBytes,
	}
	if len(bytes.TrimSpace(bodyBytes)) == 0 {
		return httpErr
	}

	// Best effort, a body that is not JSON leaves Raw and Body nil.
	var raw map[string]interface{}
	if err := jsoniter.Unmarshal(bodyBytes, &raw); err != nil {
		zap.S().Debugf("Error body is not JSON: %v", err)
		return httpErr
	}
	httpErr.Raw = raw

	var errorBody ErrorBody
	if err := jsoniter.Unmarshal(bodyBytes, &errorBody); err == nil {
		httpErr.Body = &errorBody
	}
	return httpErr
}

func (s *BaseService) do(request *http.Request) (*http.Response, error) {
	ctx := request.Context()
	attempts := 1
	var b *backoff.Backoff
	if s.retry != nil {
		attempts += s.retry.MaxRetries
		b = &backoff.Backoff{
			Factor: 2,
			Jitter: true,
			Min:    s.retry.MinInterval,
			Max:    s.retry.MaxInterval,
		}
	}

	for attempt := 1; ; attempt++ {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limiter: %w", err)
			}
		}

		attemptRequest, err := requestForAttempt(request, attempt)
		if err != nil {
			return nil, err
		}
		response, err := s.client.Do(attemptRequest)
		if attempt >= attempts || !shouldRetry(ctx, response, err) {
			if err != nil {
				zap.S().Errorf("Error sending request %s %s: %v", request.Method, request.URL.Redacted(), err)
				return nil, err
			}
			return response, nil
		}

		delay := b.Duration()
		if response != nil {
			if after := retryAfter(response); after > 0 && after <= s.retry.MaxInterval {
				delay = after
			}
			_, _ = io.Copy(io.Discard, response.Body)
			response.Body.Close()
			zap.S().Warnf("Retrying %s %s after status %d (attempt %d/%d) in %s",
				request.Method, request.URL.Redacted(), response.StatusCode, attempt, attempts-1, delay)
		} else {
			zap.S().Warnf("Retrying %s %s after error (attempt %d/%d) in %s: %v",
				request.Method, request.URL.Redacted(), attempt, attempts-1, delay, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
}

func requestForAttempt(request *http.Request, attempt int) (*http.Request, error) {
	if attempt == 1 || request.GetBody == nil {
		return request, nil
	}
	body, err := request.GetBody()
	if err != nil {
		return nil, err
	}
	clone := request.Clone(request.Context())
	clone.Body = body
	return clone, nil
}

func shouldRetry(ctx context.Context, response *http.Response, err error) bool {
	if err != nil {
		return ctx.Err() == nil && !errors.Is(err, context.Canceled)
	}
	switch response.StatusCode {
	case http.StatusTooManyRequests:
		return true
	case http.StatusNotImplemented:
		return false
	}
	return response.StatusCode >= 500
}

func retryAfter(response *http.Response) time.Duration {
	value := response.Header.Get("Retry-After")
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		return time.Until(at)
	}
	return 0
}
