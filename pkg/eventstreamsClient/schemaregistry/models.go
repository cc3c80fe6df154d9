package schemaregistry

import (
	"github.com/united-manufacturing-hub/eventstreamsClient/pkg/eventstreamsClient/core"
)

// RuleType names a registry rule. COMPATIBILITY is the only one.
type RuleType string

const RuleTypeCompatibility RuleType = "COMPATIBILITY"

var ruleTypes = []string{string(RuleTypeCompatibility)}

func (r RuleType) Validate() error {
	if r == RuleTypeCompatibility {
		return nil
	}
	return &core.InvalidParameterError{Value: string(r), Allowed: ruleTypes}
}

// CompatibilityMode is the config value of a COMPATIBILITY rule.
type CompatibilityMode string

const (
	CompatibilityBackward           CompatibilityMode = "BACKWARD"
	CompatibilityBackwardTransitive CompatibilityMode = "BACKWARD_TRANSITIVE"
	CompatibilityForward            CompatibilityMode = "FORWARD"
	CompatibilityForwardTransitive  CompatibilityMode = "FORWARD_TRANSITIVE"
	CompatibilityFull               CompatibilityMode = "FULL"
	CompatibilityFullTransitive     CompatibilityMode = "FULL_TRANSITIVE"
	CompatibilityNone               CompatibilityMode = "NONE"
)

var compatibilityModes = []string{
	string(CompatibilityBackward),
	string(CompatibilityBackwardTransitive),
	string(CompatibilityForward),
	string(CompatibilityForwardTransitive),
	string(CompatibilityFull),
	string(CompatibilityFullTransitive),
	string(CompatibilityNone),
}

func (c CompatibilityMode) Validate() error {
	for _, mode := range compatibilityModes {
		if string(c) == mode {
			return nil
		}
	}
	return &core.InvalidParameterError{Value: string(c), Allowed: compatibilityModes}
}

// JSONFormat selects the list element shape of ListVersions and ListSchemas.
type JSONFormat string

const (
	JSONFormatNumber JSONFormat = "number"
	JSONFormatObject JSONFormat = "object"
)

// AvroSchema wraps an AVRO schema document, kept opaque.
type AvroSchema struct {
	Schema map[string]interface{} `json:"schema"`
}

// Rule constrains which new schema versions the registry accepts.
type Rule struct {
	Type   RuleType          `json:"type" validate:"required"`
	Config CompatibilityMode `json:"config" validate:"required"`
}

// SchemaMetadata describes a schema version after it was written. Timestamps
// are UNIX epoch milliseconds.
type SchemaMetadata struct {
	CreatedOn  int64  `json:"createdOn" validate:"required"`
	GlobalID   int64  `json:"globalId" validate:"required"`
	ID         string `json:"id" validate:"required"`
	ModifiedOn int64  `json:"modifiedOn" validate:"required"`
	// Type is always AVRO.
	Type    string `json:"type" validate:"required"`
	Version int64  `json:"version" validate:"required"`
}

type stateModification struct {
	State string `json:"state"`
}
