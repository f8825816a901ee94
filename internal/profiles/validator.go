package profiles

import (
	"encoding/json"
	"fmt"
	"strings"

	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/machine-profile-v1.json
var machineProfileSchemaJSON string

type Validator struct {
	schema *jsonschema.Schema
}

func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()

	if err := compiler.AddResource("machine-profile-v1.json",
		strings.NewReader(machineProfileSchemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile("machine-profile-v1.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// ValidateProfile validates a JSON document against the profile schema.
func (v *Validator) ValidateProfile(data []byte) error {
	var profile interface{}
	if err := json.Unmarshal(data, &profile); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := v.schema.Validate(profile); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	// Cross-field checks the schema can't express.
	var mp MachineProfile
	if err := json.Unmarshal(data, &mp); err != nil {
		return fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	for i, ax := range mp.Axes {
		if ax.MinLimit >= ax.MaxLimit {
			return fmt.Errorf("axis %d (%s): min_limit must be below max_limit", i, ax.Name)
		}
		if ax.HomingVel == 0 {
			return fmt.Errorf("axis %d (%s): homing_vel must be nonzero", i, ax.Name)
		}
	}

	return nil
}
