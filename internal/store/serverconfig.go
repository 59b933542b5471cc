package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/mcpswitch/mcpswitch/internal/errors"
)

// ServerConfig is the decoded form of a server's value blob.
type ServerConfig struct {
	Command     string            `json:"command"`
	Args        []string          `json:"args"`
	Env         map[string]string `json:"env,omitempty"`
	Description string            `json:"description,omitempty"`
}

// ServerValue is the tagged result of decoding a value blob: either a parsed
// config, or the raw string carried as-is when decoding failed. Keeping the
// unparsed branch explicit lets materialization substitute its degraded
// placeholder with a plain branch instead of an error path.
type ServerValue struct {
	Config ServerConfig
	Raw    string
	parsed bool
}

// Parsed reports whether the blob decoded into a ServerConfig.
func (v ServerValue) Parsed() bool {
	return v.parsed
}

// ParseServerValue decodes a server's raw value blob. Decoding failures are
// not errors: the store tolerates malformed blobs and callers degrade them at
// materialization time.
func ParseServerValue(raw string) ServerValue {
	var cfg ServerConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return ServerValue{Raw: raw}
	}

	return ServerValue{Config: cfg, Raw: raw, parsed: true}
}

// serverConfigSchema validates the shape of a server value blob. The store
// itself never enforces this; commands run it before accepting user input so
// that typos surface at create/update time instead of as degraded entries in
// a materialized config.
const serverConfigSchema = `{
	"type": "object",
	"required": ["command"],
	"properties": {
		"command": {"type": "string", "minLength": 1},
		"args": {"type": "array", "items": {"type": "string"}},
		"env": {"type": "object", "additionalProperties": {"type": "string"}},
		"description": {"type": "string"}
	},
	"additionalProperties": false
}`

// ValidateServerValue checks a raw value blob against the server config
// schema. It returns ErrValidation with the collected schema violations when
// the blob is not valid JSON or does not match the expected shape.
func ValidateServerValue(raw string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(serverConfigSchema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("%w: server value is not valid JSON: %w", errors.ErrValidation, err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("%w: %s", errors.ErrValidation, strings.Join(msgs, "; "))
	}

	return nil
}
