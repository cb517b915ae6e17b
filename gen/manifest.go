package gen

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/jnibind/descriptor"
	"github.com/wippyai/jnibind/errors"
)

//go:embed manifest.schema.json
var manifestSchemaJSON []byte

var manifestSchema *jsonschema.Schema

func init() {
	var doc any
	if err := json.Unmarshal(manifestSchemaJSON, &doc); err != nil {
		panic(fmt.Sprintf("failed to decode manifest schema: %v", err))
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("manifest.schema.json", doc); err != nil {
		panic(fmt.Sprintf("failed to add manifest schema: %v", err))
	}
	var err error
	manifestSchema, err = c.Compile("manifest.schema.json")
	if err != nil {
		panic(fmt.Sprintf("failed to compile manifest schema: %v", err))
	}
}

// Manifest declares bindings without Go source, e.g. for functions written
// by hand or generated elsewhere.
type Manifest struct {
	Package  string            `yaml:"package"`
	Library  string            `yaml:"library"`
	Bindings []ManifestBinding `yaml:"bindings"`
}

// ManifestBinding is one entry of Manifest.Bindings.
type ManifestBinding struct {
	Returns *TypeRef        `yaml:"returns"`
	Static  *bool           `yaml:"static"` // defaults to true
	Class   string          `yaml:"class"`
	Method  string          `yaml:"method"` // defaults to Func
	Func    string          `yaml:"func"`
	Params  []ManifestParam `yaml:"params"`
	Throws  bool            `yaml:"throws"`
}

// ManifestParam is a named parameter of a ManifestBinding.
type ManifestParam struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Go   string `yaml:"go"`
}

// TypeRef is a Java type with an optional Go type override. In YAML it is
// either a bare type string or a mapping with "type" and "go" keys.
type TypeRef struct {
	Type string `yaml:"type"`
	Go   string `yaml:"go"`
}

// UnmarshalYAML accepts the scalar shorthand.
func (r *TypeRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		r.Type = node.Value
		return nil
	}
	type plain TypeRef
	return node.Decode((*plain)(r))
}

// LoadManifest reads a YAML manifest, validates it against the embedded
// schema and decodes it.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest validates and decodes manifest YAML.
func ParseManifest(data []byte) (*Manifest, error) {
	if err := ValidateManifest(data); err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.ParseFailed("manifest", err)
	}
	return &m, nil
}

// ValidateManifest checks raw YAML against the manifest schema.
func ValidateManifest(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return errors.ParseFailed("manifest", err)
	}
	if err := manifestSchema.Validate(convertYAMLToJSON(raw)); err != nil {
		return errors.Wrap(errors.PhaseValidate, errors.KindInvalidData, err, "manifest does not match schema")
	}
	return nil
}

// convertYAMLToJSON converts YAML-decoded values to the types the schema
// validator expects.
func convertYAMLToJSON(v any) any {
	switch v := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(v))
		for k, val := range v {
			result[k] = convertYAMLToJSON(val)
		}
		return result
	case []any:
		result := make([]any, len(v))
		for i, val := range v {
			result[i] = convertYAMLToJSON(val)
		}
		return result
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return v
	}
}

// Config returns the generation settings declared by the manifest.
func (m *Manifest) Config(source string) Config {
	return Config{Package: m.Package, Library: m.Library, Source: source}
}

// Resolve turns manifest entries into bindings. source labels diagnostics.
func (m *Manifest) Resolve(source string) ([]*Binding, error) {
	out := make([]*Binding, 0, len(m.Bindings))
	for i, mb := range m.Bindings {
		pos := fmt.Sprintf("%s:bindings[%d]", source, i)
		b := &Binding{
			Class:  mb.Class,
			Method: mb.Method,
			Func:   mb.Func,
			Pos:    pos,
			Static: mb.Static == nil || *mb.Static,
			Throws: mb.Throws,
		}
		if b.Method == "" {
			b.Method = mb.Func
		}
		for _, mp := range mb.Params {
			p, err := resolveParam(mp.Name, TypeRef{Type: mp.Type, Go: mp.Go})
			if err != nil {
				return nil, fmt.Errorf("%s: parameter %s: %w", pos, mp.Name, err)
			}
			if p.Java.Kind() == descriptor.KindVoid {
				return nil, fmt.Errorf("%s: %w", pos, errors.InvalidInput(errors.PhaseParse, "parameter "+mp.Name+" has type void"))
			}
			b.Params = append(b.Params, p)
		}
		if mb.Returns != nil {
			p, err := resolveParam("result", *mb.Returns)
			if err != nil {
				return nil, fmt.Errorf("%s: returns: %w", pos, err)
			}
			if p.Java.Kind() != descriptor.KindVoid {
				b.Result = &p
			}
		}
		out = append(out, b)
	}
	return out, nil
}

func resolveParam(name string, ref TypeRef) (Param, error) {
	t, err := descriptor.ParseJava(ref.Type)
	if err != nil {
		return Param{}, err
	}
	if t.Kind() == descriptor.KindVoid {
		if ref.Go != "" {
			return Param{}, errors.InvalidInput(errors.PhaseParse, "void cannot carry a Go type")
		}
		return Param{Name: name, Java: t}, nil
	}
	if ref.Go == "" {
		g, err := GoTypeFor(t)
		if err != nil {
			return Param{}, errors.InvalidInput(errors.PhaseParse, err.Error())
		}
		return Param{Name: name, Java: t, Go: g}, nil
	}
	g, ok := LookupGoType(ref.Go)
	if !ok || !compatible(g, t) {
		return Param{}, errors.TypeMismatch(errors.PhaseParse, []string{name}, ref.Go, t.Descriptor())
	}
	return Param{Name: name, Java: t, Go: g}, nil
}

// compatible reports whether a Go type override can carry Java type t.
func compatible(g GoType, t descriptor.Type) bool {
	switch g.Conv {
	case ConvObject, ConvRef:
		return t.IsReference()
	case ConvArray:
		elem, ok := t.Elem()
		return g.Java.Equal(t) || (g.Name == "jni.ObjectArray" && ok && elem.IsReference())
	default:
		return g.Java.Equal(t)
	}
}
