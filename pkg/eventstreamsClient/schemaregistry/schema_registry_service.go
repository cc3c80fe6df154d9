// Package schemaregistry is the client of the Event Streams schema registry API.
//
// Schemas are AVRO documents stored under an ID with numbered versions.
// COMPATIBILITY rules, set globally or per schema, decide which new versions
// are accepted. Schemas and versions carry a state that the client sets but
// does not interpret; illegal transitions are reported by the server.
package schemaregistry

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/united-manufacturing-hub/eventstreamsClient/pkg/eventstreamsClient/core"
)

const (
	DefaultServiceName = "schemaregistry"

	HeaderArtifactID = "X-Registry-ArtifactId"
)

type SchemaRegistryService struct {
	Service *core.BaseService
}

func NewSchemaRegistryService(options *core.ServiceOptions) (*SchemaRegistryService, error) {
	service, err := core.NewBaseService(DefaultServiceName, options)
	if err != nil {
		return nil, err
	}
	return &SchemaRegistryService{Service: service}, nil
}

// NewFromEnvironment reads SCHEMAREGISTRY_URL, SCHEMAREGISTRY_APIKEY and friends.
func NewFromEnvironment() (*SchemaRegistryService, error) {
	options, err := core.ConfigFromEnvironment(DefaultServiceName)
	if err != nil {
		return nil, err
	}
	return NewSchemaRegistryService(options)
}

func (s *SchemaRegistryService) WithRetries(maxRetries int, maxInterval time.Duration) *SchemaRegistryService {
	return &SchemaRegistryService{Service: s.Service.WithRetries(maxRetries, maxInterval)}
}

func (s *SchemaRegistryService) WithoutRetries() *SchemaRegistryService {
	return &SchemaRegistryService{Service: s.Service.WithoutRetries()}
}

func (s *SchemaRegistryService) GetGlobalRule(ctx context.Context, options *GetGlobalRuleOptions) (*Rule, *core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "getGlobalRuleOptions"); err != nil {
		return nil, nil, err
	}
	return core.InvokeAs[Rule](ctx, s.Service, core.Operation{
		ID:         "get_global_rule",
		Method:     http.MethodGet,
		Path:       "/rules/{rule}",
		PathParams: map[string]string{"rule": string(*options.Rule)},
		AcceptJSON: true,
	}, options.CallOptions)
}

func (s *SchemaRegistryService) UpdateGlobalRule(ctx context.Context, options *UpdateGlobalRuleOptions) (*Rule, *core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "updateGlobalRuleOptions"); err != nil {
		return nil, nil, err
	}
	return core.InvokeAs[Rule](ctx, s.Service, core.Operation{
		ID:         "update_global_rule",
		Method:     http.MethodPut,
		Path:       "/rules/{rule}",
		PathParams: map[string]string{"rule": string(*options.Rule)},
		Body:       &Rule{Type: *options.Type, Config: *options.Config},
		AcceptJSON: true,
	}, options.CallOptions)
}

// CreateSchemaRule overrides the global rule for one schema.
func (s *SchemaRegistryService) CreateSchemaRule(ctx context.Context, options *CreateSchemaRuleOptions) (*Rule, *core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "createSchemaRuleOptions"); err != nil {
		return nil, nil, err
	}
	return core.InvokeAs[Rule](ctx, s.Service, core.Operation{
		ID:         "create_schema_rule",
		Method:     http.MethodPost,
		Path:       "/artifacts/{id}/rules",
		PathParams: map[string]string{"id": *options.ID},
		Body:       &Rule{Type: *options.Type, Config: *options.Config},
		AcceptJSON: true,
	}, options.CallOptions)
}

func (s *SchemaRegistryService) GetSchemaRule(ctx context.Context, options *SchemaRuleOptions) (*Rule, *core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "getSchemaRuleOptions"); err != nil {
		return nil, nil, err
	}
	return core.InvokeAs[Rule](ctx, s.Service, core.Operation{
		ID:         "get_schema_rule",
		Method:     http.MethodGet,
		Path:       "/artifacts/{id}/rules/{rule}",
		PathParams: map[string]string{"id": *options.ID, "rule": string(*options.Rule)},
		AcceptJSON: true,
	}, options.CallOptions)
}

func (s *SchemaRegistryService) UpdateSchemaRule(ctx context.Context, options *UpdateSchemaRuleOptions) (*Rule, *core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "updateSchemaRuleOptions"); err != nil {
		return nil, nil, err
	}
	return core.InvokeAs[Rule](ctx, s.Service, core.Operation{
		ID:         "update_schema_rule",
		Method:     http.MethodPut,
		Path:       "/artifacts/{id}/rules/{rule}",
		PathParams: map[string]string{"id": *options.ID, "rule": string(*options.Rule)},
		Body:       &Rule{Type: *options.Type, Config: *options.Config},
		AcceptJSON: true,
	}, options.CallOptions)
}

// DeleteSchemaRule reverts the schema to the global rule.
func (s *SchemaRegistryService) DeleteSchemaRule(ctx context.Context, options *SchemaRuleOptions) (*core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "deleteSchemaRuleOptions"); err != nil {
		return nil, err
	}
	return s.Service.Invoke(ctx, core.Operation{
		ID:         "delete_schema_rule",
		Method:     http.MethodDelete,
		Path:       "/artifacts/{id}/rules/{rule}",
		PathParams: map[string]string{"id": *options.ID, "rule": string(*options.Rule)},
	}, options.CallOptions, nil)
}

func (s *SchemaRegistryService) SetSchemaState(ctx context.Context, options *SetSchemaStateOptions) (*core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "setSchemaStateOptions"); err != nil {
		return nil, err
	}
	return s.Service.Invoke(ctx, core.Operation{
		ID:         "set_schema_state",
		Method:     http.MethodPut,
		Path:       "/artifacts/{id}/state",
		PathParams: map[string]string{"id": *options.ID},
		Body:       &stateModification{State: *options.State},
	}, options.CallOptions, nil)
}

func (s *SchemaRegistryService) SetSchemaVersionState(ctx context.Context, options *SetSchemaVersionStateOptions) (*core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "setSchemaVersionStateOptions"); err != nil {
		return nil, err
	}
	return s.Service.Invoke(ctx, core.Operation{
		ID:     "set_schema_version_state",
		Method: http.MethodPut,
		Path:   "/artifacts/{id}/versions/{version}/state",
		PathParams: map[string]string{
			"id":      *options.ID,
			"version": strconv.FormatInt(*options.Version, 10),
		},
		Body: &stateModification{State: *options.State},
	}, options.CallOptions, nil)
}

// ListVersions returns the version numbers of a schema. The result is decoded as
// numbers, JSONFormatObject responses fail to decode and are left in RawResult.
func (s *SchemaRegistryService) ListVersions(ctx context.Context, options *ListVersionsOptions) ([]int64, *core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "listVersionsOptions"); err != nil {
		return nil, nil, err
	}
	result, response, err := core.InvokeAs[[]int64](ctx, s.Service, core.Operation{
		ID:         "list_versions",
		Method:     http.MethodGet,
		Path:       "/artifacts/{id}/versions",
		PathParams: map[string]string{"id": *options.ID},
		Query:      []core.QueryParam{{Name: "jsonformat", Value: options.JSONFormat}},
		AcceptJSON: true,
	}, options.CallOptions)
	if result == nil {
		return nil, response, err
	}
	return *result, response, err
}

func (s *SchemaRegistryService) CreateVersion(ctx context.Context, options *CreateVersionOptions) (*SchemaMetadata, *core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "createVersionOptions"); err != nil {
		return nil, nil, err
	}
	return core.InvokeAs[SchemaMetadata](ctx, s.Service, core.Operation{
		ID:         "create_version",
		Method:     http.MethodPost,
		Path:       "/artifacts/{id}/versions",
		PathParams: map[string]string{"id": *options.ID},
		Body:       &AvroSchema{Schema: options.Schema},
		AcceptJSON: true,
	}, options.CallOptions)
}

func (s *SchemaRegistryService) GetVersion(ctx context.Context, options *SchemaVersionOptions) (*AvroSchema, *core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "getVersionOptions"); err != nil {
		return nil, nil, err
	}
	return core.InvokeAs[AvroSchema](ctx, s.Service, core.Operation{
		ID:     "get_version",
		Method: http.MethodGet,
		Path:   "/artifacts/{id}/versions/{version}",
		PathParams: map[string]string{
			"id":      *options.ID,
			"version": strconv.FormatInt(*options.Version, 10),
		},
		AcceptJSON: true,
	}, options.CallOptions)
}

// DeleteVersion removes one version. Deleting the last version deletes the schema.
func (s *SchemaRegistryService) DeleteVersion(ctx context.Context, options *SchemaVersionOptions) (*core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "deleteVersionOptions"); err != nil {
		return nil, err
	}
	return s.Service.Invoke(ctx, core.Operation{
		ID:     "delete_version",
		Method: http.MethodDelete,
		Path:   "/artifacts/{id}/versions/{version}",
		PathParams: map[string]string{
			"id":      *options.ID,
			"version": strconv.FormatInt(*options.Version, 10),
		},
	}, options.CallOptions, nil)
}

func (s *SchemaRegistryService) ListSchemas(ctx context.Context, options *ListSchemasOptions) ([]string, *core.DetailedResponse, error) {
	if options == nil {
		options = &ListSchemasOptions{}
	}
	result, response, err := core.InvokeAs[[]string](ctx, s.Service, core.Operation{
		ID:         "list_schemas",
		Method:     http.MethodGet,
		Path:       "/artifacts",
		Query:      []core.QueryParam{{Name: "jsonformat", Value: options.JSONFormat}},
		AcceptJSON: true,
	}, options.CallOptions)
	if result == nil {
		return nil, response, err
	}
	return *result, response, err
}

func (s *SchemaRegistryService) CreateSchema(ctx context.Context, options *CreateSchemaOptions) (*SchemaMetadata, *core.DetailedResponse, error) {
	if options == nil {
		options = &CreateSchemaOptions{}
	}
	var headers map[string]string
	if options.ArtifactID != nil {
		headers = map[string]string{HeaderArtifactID: *options.ArtifactID}
	}
	return core.InvokeAs[SchemaMetadata](ctx, s.Service, core.Operation{
		ID:         "create_schema",
		Method:     http.MethodPost,
		Path:       "/artifacts",
		Headers:    headers,
		Body:       &AvroSchema{Schema: options.Schema},
		AcceptJSON: true,
	}, options.CallOptions)
}

func (s *SchemaRegistryService) GetLatestSchema(ctx context.Context, options *SchemaOptions) (*AvroSchema, *core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "getLatestSchemaOptions"); err != nil {
		return nil, nil, err
	}
	return core.InvokeAs[AvroSchema](ctx, s.Service, core.Operation{
		ID:         "get_latest_schema",
		Method:     http.MethodGet,
		Path:       "/artifacts/{id}",
		PathParams: map[string]string{"id": *options.ID},
		AcceptJSON: true,
	}, options.CallOptions)
}

// DeleteSchema removes the schema with all its versions.
func (s *SchemaRegistryService) DeleteSchema(ctx context.Context, options *SchemaOptions) (*core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "deleteSchemaOptions"); err != nil {
		return nil, err
	}
	return s.Service.Invoke(ctx, core.Operation{
		ID:         "delete_schema",
		Method:     http.MethodDelete,
		Path:       "/artifacts/{id}",
		PathParams: map[string]string{"id": *options.ID},
	}, options.CallOptions, nil)
}

func (s *SchemaRegistryService) UpdateSchema(ctx context.Context, options *UpdateSchemaOptions) (*SchemaMetadata, *core.DetailedResponse, error) {
	if err := core.ValidateStruct(options, "updateSchemaOptions"); err != nil {
		return nil, nil, err
	}
	return core.InvokeAs[SchemaMetadata](ctx, s.Service, core.Operation{
		ID:         "update_schema",
		Method:     http.MethodPut,
		Path:       "/artifacts/{id}",
		PathParams: map[string]string{"id": *options.ID},
		Body:       &AvroSchema{Schema: options.Schema},
		AcceptJSON: true,
	}, options.CallOptions)
}
