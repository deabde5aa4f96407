package profile

import (
	"fmt"

	"github.com/MegaMek/megamek-sub083/model"
	"github.com/MegaMek/megamek-sub083/utility"
)

func weight(w float64) *float64 { return &w }

func linear(m, b float64) CurveDef { return CurveDef{Kind: "linear", M: m, B: b} }

// rising maps [0,1] onto [1-span, 1]; falling onto [1, 1-span].
func rising(span float64) CurveDef  { return linear(span, 1-span) }
func falling(span float64) CurveDef { return linear(-span, 1) }

// Compile generates a complete profile definition from behavior settings.
// Every tunable shapes a curve or a weight through Lerp; expressions are
// built with fmt.Sprintf from the same numbers, so the output always
// validates.
func Compile(s model.BehaviorSettings) Definition {
	s.Validate()
	var decisions []DecisionDef

	// --- Movement ---

	advance := []ConsiderationDef{
		{Type: "TerrainHazard", Curve: falling(0.9)},
		{Type: "ProgressToDestination", Curve: linear(1, 0)},
		{Type: "EnemyThreat", Curve: falling(model.Lerp(0.2, 0.9, s.SelfPreservation)), Params: map[string]any{"radius": 1}},
		{Type: "DistanceToClosestEnemy", Curve: falling(model.Lerp(0, 0.8, s.HyperAggression))},
		{Type: "ClusterCohesion", Curve: rising(model.Lerp(0, 0.8, s.HerdMentality))},
		{Type: "CoverAtFinal", Curve: rising(0.5)},
		{Type: "StrategicGoalProximity", Curve: rising(0.4)},
		{Type: "FacingTheEnemy", Curve: rising(0.3)},
		{
			Type:  "Expression",
			Name:  "ElevationRisk",
			Curve: falling(model.Lerp(0, 0.6, s.FallShame)),
			Params: map[string]any{
				"expr": `Jumping ? 1.0 : 0.0`,
			},
		},
		{
			Type:  "Expression",
			Name:  "HurtAndExposed",
			Curve: falling(model.Lerp(0.3, 1, s.SelfPreservation)),
			Params: map[string]any{
				"expr": fmt.Sprintf(`Armor < %.2f ? Threat() : 0.0`, model.Lerp(0.6, 0.2, s.Bravery)),
			},
		},
	}
	decisions = append(decisions, DecisionDef{
		Action: string(utility.ActionMove),
		Weight: weight(1),
		Evaluator: EvaluatorDef{
			Name:           "Advance",
			Description:    "Close on the enemy or the destination while staying covered",
			Type:           "geometric_mean",
			Considerations: advance,
		},
	})

	if s.ForcedWithdrawal {
		decisions = append(decisions, DecisionDef{
			Action: string(utility.ActionMove),
			Weight: weight(model.Lerp(1.5, 1.1, s.Bravery)),
			Evaluator: EvaluatorDef{
				Name:        "Withdraw",
				Description: "Head for the retreat edge once withdrawal is ordered",
				Type:        "utilitarian",
				Considerations: []ConsiderationDef{
					{Type: "Expression", Name: "Withdrawing", Curve: linear(1, 0), Params: map[string]any{"expr": `Withdrawn ? 1.0 : 0.0`}},
					{Type: "ProgressToDestination", Curve: linear(1, 0)},
					{Type: "Exposure", Curve: falling(0.8)},
				},
			},
		})
	}

	// --- Attacks ---

	focus := model.Lerp(-0.6, 0.3, s.FocusFire)
	attack := []ConsiderationDef{
		{Type: "TargetWithinRange", Curve: linear(1, 0)},
		{Type: "DamageRatio", Curve: CurveDef{Kind: "logistic", M: 1, B: 0.5, K: 10}},
		{Type: "TargetArmor", Curve: falling(model.Lerp(0.2, 0.7, s.FocusFire))},
		{Type: "TargetIsVIP", Curve: rising(0.3)},
		{Type: "TargetCommitment", Curve: linear(focus, 1-max(focus, 0))},
		{Type: "MyUnitArmor", Curve: rising(model.Lerp(0.8, 0.1, s.Bravery))},
	}
	decisions = append(decisions, DecisionDef{
		Action: string(utility.ActionAttack),
		Weight: weight(model.Lerp(0.8, 1.5, s.HyperAggression)),
		Evaluator: EvaluatorDef{
			Name:           "Engage",
			Description:    "Fire on reachable targets, preferring damaged and important ones",
			Type:           "adjusted_utilitarian",
			Considerations: attack,
		},
	})

	name := s.Name
	if name == "" {
		name = "Default"
	}
	return Definition{
		Name:        name,
		Description: "Compiled from behavior settings",
		Behavior:    s,
		Decisions:   decisions,
	}
}

// Default builds the compiled profile for s. Compile only emits known types
// and valid expressions, so a build failure is a bug.
func Default(s model.BehaviorSettings) *Profile {
	p, err := Build(Compile(s))
	if err != nil {
		panic(fmt.Sprintf("profile: compiled profile does not build: %v", err))
	}
	return p
}
