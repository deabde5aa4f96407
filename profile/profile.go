// Package profile loads bot personalities: YAML definitions of decisions,
// their considerations and curves, validated against an embedded JSON
// schema before anything is constructed.
package profile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/MegaMek/megamek-sub083/considerations"
	"github.com/MegaMek/megamek-sub083/curve"
	"github.com/MegaMek/megamek-sub083/model"
	"github.com/MegaMek/megamek-sub083/neural"
	"github.com/MegaMek/megamek-sub083/utility"
)

//go:embed profile.schema.json
var schemaSource []byte

const schemaURL = "https://megamek.org/schemas/bot-profile.schema.json"

// ErrUnknownConsideration is returned for a consideration type that is
// neither built in nor an expression.
var ErrUnknownConsideration = errors.New("unknown consideration type")

// ErrInvalid wraps schema violations.
var ErrInvalid = errors.New("invalid profile")

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, bytes.NewReader(schemaSource)); err != nil {
			schemaErr = fmt.Errorf("load profile schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}

// CurveDef is a curve as written in a profile.
type CurveDef struct {
	Kind string  `yaml:"kind" json:"kind"`
	M    float64 `yaml:"m,omitempty" json:"m,omitempty"`
	B    float64 `yaml:"b,omitempty" json:"b,omitempty"`
	K    float64 `yaml:"k,omitempty" json:"k,omitempty"`
	C    float64 `yaml:"c,omitempty" json:"c,omitempty"`
}

// ConsiderationDef names a consideration type and tunes it.
type ConsiderationDef struct {
	Type   string         `yaml:"type" json:"type"`
	Name   string         `yaml:"name,omitempty" json:"name,omitempty"`
	Curve  CurveDef       `yaml:"curve" json:"curve"`
	Params map[string]any `yaml:"params,omitempty" json:"params,omitempty"`
}

// EvaluatorDef is a DecisionScoreEvaluator as written in a profile.
type EvaluatorDef struct {
	Name           string             `yaml:"name" json:"name"`
	Description    string             `yaml:"description,omitempty" json:"description,omitempty"`
	Notes          string             `yaml:"notes,omitempty" json:"notes,omitempty"`
	Type           string             `yaml:"type,omitempty" json:"type,omitempty"`
	Considerations []ConsiderationDef `yaml:"considerations" json:"considerations"`
}

// DecisionDef binds an action to an evaluator. A missing weight means 1;
// an explicit 0 disables the decision.
type DecisionDef struct {
	Action    string       `yaml:"action" json:"action"`
	Weight    *float64     `yaml:"weight,omitempty" json:"weight,omitempty"`
	Evaluator EvaluatorDef `yaml:"evaluator" json:"evaluator"`
}

// Definition is the serialized form of a profile.
type Definition struct {
	Name        string                 `yaml:"name" json:"name"`
	Description string                 `yaml:"description,omitempty" json:"description,omitempty"`
	Behavior    model.BehaviorSettings `yaml:"behavior" json:"behavior"`
	Network     []neural.Layer         `yaml:"network,omitempty" json:"network,omitempty"`
	Decisions   []DecisionDef          `yaml:"decisions" json:"decisions"`
}

// Profile is a constructed, ready-to-score personality.
type Profile struct {
	Name        string
	Description string
	Settings    model.BehaviorSettings
	Decisions   []*utility.Decision
}

// Considerations counts every consideration across decisions.
func (p *Profile) Considerations() int {
	n := 0
	for _, d := range p.Decisions {
		n += len(d.Evaluator.Considerations)
	}
	return n
}

// Load reads and builds the profile at path.
func Load(path string) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse validates and builds a YAML profile.
func Parse(raw []byte) (*Profile, error) {
	def, err := ParseDefinition(raw)
	if err != nil {
		return nil, err
	}
	return Build(def)
}

// ParseDefinition validates raw YAML against the schema and decodes it.
// Behavior fields left out keep their defaults; an unnamed behavior takes
// the profile's name.
func ParseDefinition(raw []byte) (Definition, error) {
	def := Definition{Behavior: model.DefaultBehaviorSettings()}
	def.Behavior.Name = ""
	if err := Validate(raw); err != nil {
		return def, err
	}
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return def, fmt.Errorf("decode profile: %w", err)
	}
	return def, nil
}

// Validate checks raw YAML against the profile schema.
func Validate(raw []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse profile: %w", err)
	}
	// Round-trip through JSON so the validator sees JSON types only.
	js, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("profile is not JSON-compatible: %w", err)
	}
	var inst any
	if err := json.Unmarshal(js, &inst); err != nil {
		return fmt.Errorf("profile is not JSON-compatible: %w", err)
	}
	if err := s.Validate(inst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Build constructs the profile a definition describes.
func Build(def Definition) (*Profile, error) {
	settings := def.Behavior
	if settings.Name == "" {
		settings.Name = def.Name
	}
	settings.Validate()

	var net *neural.Network
	if len(def.Network) > 0 {
		n, err := neural.New(def.Network...)
		if err != nil {
			return nil, fmt.Errorf("profile %q network: %w", def.Name, err)
		}
		net = n
	}

	p := &Profile{Name: def.Name, Description: def.Description, Settings: settings}
	for i, dd := range def.Decisions {
		weight := 1.0
		if dd.Weight != nil {
			weight = *dd.Weight
		}
		if weight == 0 {
			slog.Debug("decision disabled by weight", "profile", def.Name, "action", dd.Action, "evaluator", dd.Evaluator.Name)
			continue
		}
		ev, err := buildEvaluator(dd.Evaluator, net)
		if err != nil {
			return nil, fmt.Errorf("profile %q decision %d (%s): %w", def.Name, i, dd.Action, err)
		}
		p.Decisions = append(p.Decisions, &utility.Decision{
			Action:    utility.Action(dd.Action),
			Weight:    weight,
			Evaluator: ev,
		})
	}
	return p, nil
}

func buildEvaluator(ed EvaluatorDef, net *neural.Network) (*utility.DecisionScoreEvaluator, error) {
	dse := &utility.DecisionScoreEvaluator{
		Name:        ed.Name,
		Description: ed.Description,
		Notes:       ed.Notes,
	}
	for _, cd := range ed.Considerations {
		c, err := buildConsideration(cd)
		if err != nil {
			return nil, err
		}
		dse.Considerations = append(dse.Considerations, c)
	}

	if strings.EqualFold(ed.Type, "learned_model") {
		if net == nil {
			return nil, fmt.Errorf("evaluator %q: learned_model needs a network", ed.Name)
		}
		if want := utility.ThreatFeatures + len(dse.Considerations); net.InputSize() != want {
			return nil, fmt.Errorf("evaluator %q: network takes %d inputs, want %d", ed.Name, net.InputSize(), want)
		}
		dse.Evaluator = utility.LearnedModel{Net: net}
		return dse, nil
	}
	ev, err := utility.ParseEvaluator(ed.Type)
	if err != nil {
		return nil, err
	}
	dse.Evaluator = ev
	return dse, nil
}

func buildConsideration(cd ConsiderationDef) (utility.Consideration, error) {
	kind, err := curve.ParseKind(cd.Curve.Kind)
	if err != nil {
		return nil, fmt.Errorf("consideration %q: %w", cd.Type, err)
	}
	cv := curve.New(kind, cd.Curve.M, cd.Curve.B, cd.Curve.K, cd.Curve.C)
	c, ok, err := considerations.New(cd.Type, cd.Name, cv, utility.NewParameters(cd.Params))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConsideration, cd.Type)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Marshal renders a definition as YAML.
func Marshal(def Definition) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(def); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
