package schema

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DefaultExtension is the file extension of tool schema files.
const DefaultExtension = ".json"

// ErrInvalidSchema is returned when a schema document can not be parsed.
var ErrInvalidSchema = errors.New("invalid tool schema")

// Parameter describes a single string parameter of a tool.
type Parameter struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ToolSchema is the declarative description of a tool loaded from a file.
type ToolSchema struct {
	// Name is the tool name, the base name of the schema file.
	// It drives service resolution.
	Name string `json:"name" yaml:"name"`
	// FunctionName is the name exposed to the LLM,
	// `function.name` of the document or Name when omitted.
	FunctionName string `json:"function_name" yaml:"function_name"`
	// Description is shown to the LLM.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Parameters in the order of the document.
	Parameters []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	// Source is the file the schema was loaded from, if any.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
	// Digest is xxhash of the raw document.
	Digest uint64 `json:"digest,omitempty" yaml:"digest,omitempty"`
}

type document struct {
	Function *functionSpec `json:"function"`
}

type functionSpec struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  *parametersSpec `json:"parameters"`
}

type parametersSpec struct {
	Type       string                                       `json:"type"`
	Properties *orderedmap.OrderedMap[string, propertySpec] `json:"properties"`
}

type propertySpec struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Parse parses a tool schema document for the tool with the given name.
// The order of `function.parameters.properties` is preserved.
func Parse(name string, data []byte) (*ToolSchema, error) {
	if name == "" {
		return nil, errors.WithMessage(ErrInvalidSchema, "empty tool name")
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(ErrInvalidSchema, "%s: %s", name, err.Error())
	}

	s := &ToolSchema{
		Name:         name,
		FunctionName: name,
		Digest:       xxhash.Sum64(data),
	}

	fn := doc.Function
	if fn == nil {
		return s, nil
	}
	if fn.Name != "" {
		s.FunctionName = fn.Name
	}
	s.Description = fn.Description

	if fn.Parameters == nil || fn.Parameters.Properties == nil {
		return s, nil
	}
	for pair := fn.Parameters.Properties.Oldest(); pair != nil; pair = pair.Next() {
		s.Parameters = append(s.Parameters, Parameter{
			Name:        pair.Key,
			Description: pair.Value.Description,
		})
	}
	return s, nil
}

// ParseFile loads a tool schema from file,
// the tool name is the file name without extension.
func ParseFile(path string) (*ToolSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read schema")
	}
	base := filepath.Base(path)
	s, err := Parse(strings.TrimSuffix(base, filepath.Ext(base)), data)
	if err != nil {
		return nil, err
	}
	s.Source = path
	return s, nil
}

// ParameterNames returns the parameter names in schema order.
func (s *ToolSchema) ParameterNames() []string {
	names := make([]string, 0, len(s.Parameters))
	for _, p := range s.Parameters {
		names = append(names, p.Name)
	}
	return names
}

// Docstring returns the description followed by one line per parameter.
func (s *ToolSchema) Docstring() string {
	return Docstring(s.Description, s.Parameters)
}

// JSONSchema returns the function parameters definition for the LLM,
// every parameter is a required string.
func (s *ToolSchema) JSONSchema() *jsonschema.Schema {
	return ParametersSchema(s.Parameters)
}

func (s *ToolSchema) String() string {
	js, _ := json.MarshalIndent(s.JSONSchema(), "", "\t")
	return string(js)
}

// Docstring builds the tool documentation used by tool-calling introspection.
func Docstring(description string, params []Parameter) string {
	var b strings.Builder
	b.WriteString(description)
	if len(params) > 0 {
		b.WriteString("\n\nParameters:")
		for _, p := range params {
			b.WriteString("\n  ")
			b.WriteString(p.Name)
			b.WriteString(": ")
			b.WriteString(p.Description)
		}
	}
	return b.String()
}

// ParametersSchema returns JSON schema of an object with string properties.
func ParametersSchema(params []Parameter) *jsonschema.Schema {
	props := jsonschema.NewProperties()
	required := make([]string, 0, len(params))
	for _, p := range params {
		props.Set(p.Name, &jsonschema.Schema{
			Type:        "string",
			Description: p.Description,
		})
		required = append(required, p.Name)
	}
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}
