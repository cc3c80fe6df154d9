package eventstreamsClient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/united-manufacturing-hub/eventstreamsClient/pkg/eventstreamsClient/adminrest"
	"github.com/united-manufacturing-hub/eventstreamsClient/pkg/eventstreamsClient/core"
	"github.com/united-manufacturing-hub/eventstreamsClient/pkg/eventstreamsClient/schemaregistry"
	"go.uber.org/zap"
)

type HTTPClientOptions struct {
	// AdminURL is the admin REST endpoint, the admin client is skipped when empty.
	AdminURL string
	// SchemaRegistryURL is the schema registry endpoint, skipped when empty.
	SchemaRegistryURL string
	Authenticator     core.Authenticator
	HTTPClient        *http.Client
	Timeout           time.Duration
	Retry             *core.RetryOptions
	RateLimit         float64
	RateBurst         int
	Headers           map[string]string
}

// EventStreamsClient bundles both API clients of one Event Streams instance.
type EventStreamsClient struct {
	httpOpts       *HTTPClientOptions
	admin          *adminrest.AdminService
	schemaRegistry *schemaregistry.SchemaRegistryService
	canUseAdmin    bool
	canUseRegistry bool
}

func New(httpOpts *HTTPClientOptions) *EventStreamsClient {
	return &EventStreamsClient{
		httpOpts: httpOpts,
	}
}

func (e *EventStreamsClient) serviceOptions(url string) *core.ServiceOptions {
	return &core.ServiceOptions{
		URL:           url,
		Authenticator: e.httpOpts.Authenticator,
		HTTPClient:    e.httpOpts.HTTPClient,
		Timeout:       e.httpOpts.Timeout,
		Retry:         e.httpOpts.Retry,
		RateLimit:     e.httpOpts.RateLimit,
		RateBurst:     e.httpOpts.RateBurst,
		Headers:       e.httpOpts.Headers,
	}
}

// Connect builds the configured clients and checks that each answers: Alive for the admin API,
// ListSchemas for the registry. An endpoint that fails stays unusable until the
// next Connect.
func (e *EventStreamsClient) Connect(ctx context.Context) (adminConnected, registryConnected bool, adminConnectError error, registryConnectError error) {
	if e.httpOpts == nil {
		err := fmt.Errorf("cannot connect: no HTTP options")
		return false, false, err, err
	}

	e.canUseAdmin = false
	if e.httpOpts.AdminURL != "" {
		var err error
		e.admin, err = adminrest.NewAdminService(e.serviceOptions(e.httpOpts.AdminURL))
		if err != nil {
			adminConnectError = err
		} else if _, err = e.admin.Alive(ctx, nil); err != nil {
			adminConnectError = fmt.Errorf("admin connection failed: %w", err)
		} else {
			e.canUseAdmin = true
		}
	}

	e.canUseRegistry = false
	if e.httpOpts.SchemaRegistryURL != "" {
		var err error
		e.schemaRegistry, err = schemaregistry.NewSchemaRegistryService(e.serviceOptions(e.httpOpts.SchemaRegistryURL))
		if err != nil {
			registryConnectError = err
		} else if _, _, err = e.schemaRegistry.ListSchemas(ctx, nil); err != nil {
			registryConnectError = fmt.Errorf("schema registry connection failed: %w", err)
		} else {
			e.canUseRegistry = true
		}
	}

	if adminConnectError != nil {
		zap.S().Warnf("Admin API unavailable: %v", adminConnectError)
	}
	if registryConnectError != nil {
		zap.S().Warnf("Schema registry unavailable: %v", registryConnectError)
	}
	return e.canUseAdmin, e.canUseRegistry, adminConnectError, registryConnectError
}

// Admin returns nil unless the admin API answered the last Connect.
func (e *EventStreamsClient) Admin() *adminrest.AdminService {
	if !e.canUseAdmin {
		return nil
	}
	return e.admin
}

// SchemaRegistry returns nil unless the registry answered the last Connect.
func (e *EventStreamsClient) SchemaRegistry() *schemaregistry.SchemaRegistryService {
	if !e.canUseRegistry {
		return nil
	}
	return e.schemaRegistry
}

func (e *EventStreamsClient) Ready() bool {
	return e.canUseAdmin || e.canUseRegistry
}

// Close drops idle connections of the configured HTTP client.
func (e *EventStreamsClient) Close() {
	if e.httpOpts != nil && e.httpOpts.HTTPClient != nil {
		e.httpOpts.HTTPClient.CloseIdleConnections()
	}
	e.canUseAdmin = false
	e.canUseRegistry = false
}
