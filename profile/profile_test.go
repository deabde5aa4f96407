package profile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MegaMek/megamek-sub083/model"
	"github.com/MegaMek/megamek-sub083/neural"
	"github.com/MegaMek/megamek-sub083/utility"
)

const sample = `
name: Skirmisher
description: hit and run
behavior:
  bravery: 0.3
  retreat_edge: south
decisions:
  - action: move
    weight: 1.2
    evaluator:
      name: Kite
      type: geometric_mean
      considerations:
        - type: DistanceToClosestEnemy
          curve: {kind: logistic, m: 1, b: 0.4, k: 12}
          params: {distance: 18}
        - type: Expression
          name: Hidden
          curve: {kind: linear, m: 1}
          params:
            expr: 'Terrain("woods") ? 1.0 : 0.5'
  - action: attack
    evaluator:
      name: Snipe
      considerations:
        - type: TargetWithinRange
          curve: {kind: band_pass, m: 0.5, b: 1, k: 0, c: 0}
`

func TestParseSample(t *testing.T) {
	p, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Name != "Skirmisher" || len(p.Decisions) != 2 {
		t.Fatalf("profile = %q with %d decisions", p.Name, len(p.Decisions))
	}
	if p.Settings.Bravery != 0.3 || p.Settings.RetreatEdge != model.EdgeSouth {
		t.Errorf("behavior not applied: %+v", p.Settings)
	}
	if p.Settings.HerdMentality != model.DefaultBehaviorSettings().HerdMentality {
		t.Error("omitted behavior field lost its default")
	}
	if p.Settings.Name != "Skirmisher" {
		t.Errorf("settings name = %q", p.Settings.Name)
	}

	kite := p.Decisions[0]
	if kite.Name() != "move::Kite" || kite.Weight != 1.2 {
		t.Errorf("decision 0 = %s weight %v", kite.Name(), kite.Weight)
	}
	if kite.Evaluator.Evaluator.Name() != "GeometricMean" {
		t.Errorf("evaluator = %s", kite.Evaluator.Evaluator.Name())
	}
	if got := kite.Evaluator.Considerations[0].Parameters().Int("distance"); got != 18 {
		t.Errorf("distance param = %d", got)
	}
	if got := kite.Evaluator.Considerations[1].Name(); got != "Hidden" {
		t.Errorf("expression name = %q", got)
	}

	snipe := p.Decisions[1]
	if snipe.Weight != 1 || snipe.Evaluator.Evaluator.Name() != "Utilitarian" {
		t.Errorf("defaults not applied: weight %v evaluator %s", snipe.Weight, snipe.Evaluator.Evaluator.Name())
	}
	if p.Considerations() != 3 {
		t.Errorf("Considerations = %d, want 3", p.Considerations())
	}
}

func TestSchemaRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no decisions", "name: x\n"},
		{"empty decisions", "name: x\ndecisions: []\n"},
		{"bravery out of range", "name: x\nbehavior: {bravery: 2}\ndecisions: [{action: move, evaluator: {name: a, considerations: []}}]\n"},
		{"unknown edge", "name: x\nbehavior: {retreat_edge: up}\ndecisions: [{action: move, evaluator: {name: a, considerations: []}}]\n"},
		{"unknown field", "name: x\ncolour: red\ndecisions: [{action: move, evaluator: {name: a, considerations: []}}]\n"},
		{"bad evaluator", "name: x\ndecisions: [{action: move, evaluator: {name: a, type: softmax, considerations: []}}]\n"},
		{"curve without kind", "name: x\ndecisions: [{action: move, evaluator: {name: a, considerations: [{type: MyUnitArmor, curve: {m: 1}}]}}]\n"},
		{"negative weight", "name: x\ndecisions: [{action: move, weight: -1, evaluator: {name: a, considerations: []}}]\n"},
	}
	for _, tt := range tests {
		if _, err := Parse([]byte(tt.yaml)); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: err = %v, want ErrInvalid", tt.name, err)
		}
	}
}

func TestZeroWeightDisablesDecision(t *testing.T) {
	raw := "name: x\ndecisions:\n" +
		"  - {action: move, weight: 0, evaluator: {name: off, considerations: []}}\n" +
		"  - {action: move, evaluator: {name: on, considerations: []}}\n"
	p, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(p.Decisions) != 1 || p.Decisions[0].Name() != "move::on" || p.Decisions[0].Weight != 1 {
		t.Fatalf("decisions = %d, first %s", len(p.Decisions), p.Decisions[0].Name())
	}

	zero, half := 0.0, 0.5
	def := Definition{Name: "y", Decisions: []DecisionDef{
		{Action: "move", Weight: &zero, Evaluator: EvaluatorDef{Name: "off"}},
		{Action: "attack", Weight: &half, Evaluator: EvaluatorDef{Name: "light"}},
	}}
	p, err = Build(def)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(p.Decisions) != 1 || p.Decisions[0].Weight != 0.5 {
		t.Errorf("built %d decisions, want only the 0.5-weight attack", len(p.Decisions))
	}
}

func TestBuildErrors(t *testing.T) {
	base := func(cd ConsiderationDef, typ string) Definition {
		return Definition{
			Name:     "x",
			Behavior: model.DefaultBehaviorSettings(),
			Decisions: []DecisionDef{{
				Action:    "move",
				Evaluator: EvaluatorDef{Name: "e", Type: typ, Considerations: []ConsiderationDef{cd}},
			}},
		}
	}
	armor := ConsiderationDef{Type: "MyUnitArmor", Curve: CurveDef{Kind: "linear", M: 1}}

	_, err := Build(base(ConsiderationDef{Type: "Psychic", Curve: CurveDef{Kind: "linear"}}, ""))
	if !errors.Is(err, ErrUnknownConsideration) {
		t.Errorf("unknown type: err = %v, want ErrUnknownConsideration", err)
	}
	if _, err := Build(base(ConsiderationDef{Type: "MyUnitArmor", Curve: CurveDef{Kind: "sigmoid"}}, "")); err == nil {
		t.Error("unknown curve kind built")
	}
	if _, err := Build(base(ConsiderationDef{Type: "Expression", Curve: CurveDef{Kind: "linear"}, Params: map[string]any{"expr": "Nope()"}}, "")); err == nil {
		t.Error("bad expression built")
	}
	if _, err := Build(base(armor, "learned_model")); err == nil {
		t.Error("learned_model without a network built")
	}

	def := base(armor, "learned_model")
	def.Network = []neural.Layer{{Weights: [][]float64{make([]float64, utility.ThreatFeatures)}, Biases: []float64{0}}}
	if _, err := Build(def); err == nil || !strings.Contains(err.Error(), "inputs") {
		t.Errorf("mis-sized network: err = %v", err)
	}
}

func TestLearnedModelRoundTrip(t *testing.T) {
	w := make([]float64, utility.ThreatFeatures+1)
	w[utility.ThreatFeatures] = 1
	def := Definition{
		Name:     "learned",
		Behavior: model.DefaultBehaviorSettings(),
		Network:  []neural.Layer{{Weights: [][]float64{w}, Biases: []float64{0}}},
		Decisions: []DecisionDef{{
			Action: "move",
			Evaluator: EvaluatorDef{
				Name:           "net",
				Type:           "learned_model",
				Considerations: []ConsiderationDef{{Type: "MyUnitArmor", Curve: CurveDef{Kind: "linear", M: 1}}},
			},
		}},
	}
	raw, err := Marshal(def)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	p, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v\n%s", err, raw)
	}
	if got := p.Decisions[0].Evaluator.Evaluator.Name(); got != "LearnedModel" {
		t.Errorf("evaluator = %s", got)
	}
}

func TestDefaultProfile(t *testing.T) {
	s := model.DefaultBehaviorSettings()
	p := Default(s)
	var names []string
	for _, d := range p.Decisions {
		names = append(names, d.Name())
	}
	want := []string{"move::Advance", "move::Withdraw", "attack::Engage"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("decisions = %v, want %v", names, want)
	}

	s.ForcedWithdrawal = false
	if got := len(Default(s).Decisions); got != 2 {
		t.Errorf("without withdrawal: %d decisions, want 2", got)
	}
}

func TestCompiledProfileValidates(t *testing.T) {
	for _, v := range []float64{0, 0.5, 1} {
		s := model.DefaultBehaviorSettings()
		s.Bravery, s.HyperAggression, s.SelfPreservation, s.FocusFire = v, v, v, v
		raw, err := Marshal(Compile(s))
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if _, err := Parse(raw); err != nil {
			t.Errorf("compiled profile at %v does not parse: %v\n%s", v, err, raw)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bot.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Name != "Skirmisher" {
		t.Errorf("Name = %q", p.Name)
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
}
