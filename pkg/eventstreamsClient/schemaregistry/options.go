package schemaregistry

import (
	"github.com/united-manufacturing-hub/eventstreamsClient/pkg/eventstreamsClient/core"
)

type GetGlobalRuleOptions struct {
	Rule *RuleType `json:"rule" validate:"required"`
	core.CallOptions
}

func NewGetGlobalRuleOptions(rule RuleType) *GetGlobalRuleOptions {
	return &GetGlobalRuleOptions{Rule: &rule}
}

type UpdateGlobalRuleOptions struct {
	Rule   *RuleType          `json:"rule" validate:"required"`
	Type   *RuleType          `json:"type" validate:"required"`
	Config *CompatibilityMode `json:"config" validate:"required"`
	core.CallOptions
}

func NewUpdateGlobalRuleOptions(rule RuleType, config CompatibilityMode) *UpdateGlobalRuleOptions {
	return &UpdateGlobalRuleOptions{Rule: &rule, Type: &rule, Config: &config}
}

type CreateSchemaRuleOptions struct {
	ID     *string            `json:"id" validate:"required,nonempty"`
	Type   *RuleType          `json:"type" validate:"required"`
	Config *CompatibilityMode `json:"config" validate:"required"`
	core.CallOptions
}

func NewCreateSchemaRuleOptions(id string, ruleType RuleType, config CompatibilityMode) *CreateSchemaRuleOptions {
	return &CreateSchemaRuleOptions{ID: &id, Type: &ruleType, Config: &config}
}

// SchemaRuleOptions addresses the rule of one schema, used by GetSchemaRule and
// DeleteSchemaRule.
type SchemaRuleOptions struct {
	ID   *string   `json:"id" validate:"required,nonempty"`
	Rule *RuleType `json:"rule" validate:"required"`
	core.CallOptions
}

func NewSchemaRuleOptions(id string, rule RuleType) *SchemaRuleOptions {
	return &SchemaRuleOptions{ID: &id, Rule: &rule}
}

type UpdateSchemaRuleOptions struct {
	ID     *string            `json:"id" validate:"required,nonempty"`
	Rule   *RuleType          `json:"rule" validate:"required"`
	Type   *RuleType          `json:"type" validate:"required"`
	Config *CompatibilityMode `json:"config" validate:"required"`
	core.CallOptions
}

func NewUpdateSchemaRuleOptions(id string, rule RuleType, config CompatibilityMode) *UpdateSchemaRuleOptions {
	return &UpdateSchemaRuleOptions{ID: &id, Rule: &rule, Type: &rule, Config: &config}
}

// SetSchemaStateOptions.State is not interpreted by the client, e.g. ENABLED or DISABLED.
type SetSchemaStateOptions struct {
	ID    *string `json:"id" validate:"required,nonempty"`
	State *string `json:"state" validate:"required,nonempty"`
	core.CallOptions
}

func NewSetSchemaStateOptions(id, state string) *SetSchemaStateOptions {
	return &SetSchemaStateOptions{ID: &id, State: &state}
}

type SetSchemaVersionStateOptions struct {
	ID      *string `json:"id" validate:"required,nonempty"`
	Version *int64  `json:"version" validate:"required"`
	State   *string `json:"state" validate:"required,nonempty"`
	core.CallOptions
}

func NewSetSchemaVersionStateOptions(id string, version int64, state string) *SetSchemaVersionStateOptions {
	return &SetSchemaVersionStateOptions{ID: &id, Version: &version, State: &state}
}

type ListVersionsOptions struct {
	ID         *string     `json:"id" validate:"required,nonempty"`
	JSONFormat *JSONFormat `json:"jsonformat"`
	core.CallOptions
}

func NewListVersionsOptions(id string) *ListVersionsOptions {
	return &ListVersionsOptions{ID: &id}
}

type CreateVersionOptions struct {
	ID     *string                `json:"id" validate:"required,nonempty"`
	Schema map[string]interface{} `json:"schema"`
	core.CallOptions
}

func NewCreateVersionOptions(id string, schema map[string]interface{}) *CreateVersionOptions {
	return &CreateVersionOptions{ID: &id, Schema: schema}
}

// SchemaVersionOptions addresses one version of a schema, used by GetVersion and
// DeleteVersion.
type SchemaVersionOptions struct {
	ID      *string `json:"id" validate:"required,nonempty"`
	Version *int64  `json:"version" validate:"required"`
	core.CallOptions
}

func NewSchemaVersionOptions(id string, version int64) *SchemaVersionOptions {
	return &SchemaVersionOptions{ID: &id, Version: &version}
}

type ListSchemasOptions struct {
	JSONFormat *JSONFormat `json:"jsonformat"`
	core.CallOptions
}

type CreateSchemaOptions struct {
	Schema map[string]interface{} `json:"schema"`
	// ArtifactID is sent as X-Registry-ArtifactId and must be unique, the server
	// assigns a UUID when nil.
	ArtifactID *string `json:"X-Registry-ArtifactId"`
	core.CallOptions
}

// SchemaOptions addresses a schema, used by GetLatestSchema and DeleteSchema.
type SchemaOptions struct {
	ID *string `json:"id" validate:"required,nonempty"`
	core.CallOptions
}

func NewSchemaOptions(id string) *SchemaOptions {
	return &SchemaOptions{ID: &id}
}

type UpdateSchemaOptions struct {
	ID     *string                `json:"id" validate:"required,nonempty"`
	Schema map[string]interface{} `json:"schema"`
	core.CallOptions
}

func NewUpdateSchemaOptions(id string, schema map[string]interface{}) *UpdateSchemaOptions {
	return &UpdateSchemaOptions{ID: &id, Schema: schema}
}
