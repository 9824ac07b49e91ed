package checks

import (
	"fmt"

	"collbool/core/reconcile"
	"collbool/feature/scene"
)

// Violation rules reported by CheckInvariants.
const (
	RuleMissingEffect    = "missing_effect"
	RuleStaleEffect      = "stale_effect"
	RuleMisnamedEffect   = "misnamed_effect"
	RuleWrongOperation   = "wrong_operation"
	RuleVisibleTarget    = "visible_target"
	RuleUnreleasedTarget = "unreleased_target"
	RuleEnabledOperand   = "enabled_operand"
	RuleUnknown          = "unknown"
)

// Violation is one difference between a scene and its converged state.
type Violation struct {
	Rule   string `json:"rule"`
	Object string `json:"object"`
	Effect string `json:"effect,omitempty"`
	Target string `json:"target,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// InvariantReport is the result of auditing one scene.
type InvariantReport struct {
	Scene      string      `json:"scene"`
	Consistent bool        `json:"consistent"`
	Violations []Violation `json:"violations"`
	Errors     []string    `json:"errors,omitempty"`
}

// CheckInvariants audits sc without mutating it. A pass runs on a copy of
// the scene; every mutation that pass would make is a violation.
func CheckInvariants(sc *scene.Scene, identity reconcile.Identity) (*InvariantReport, error) {
	clone, err := sc.Clone()
	if err != nil {
		return nil, fmt.Errorf("failed to copy scene %s: %w", sc.Name(), err)
	}

	pass := reconcile.New(reconcile.WithIdentity(identity)).Pass(reconcile.NewContext(), clone)

	report := &InvariantReport{
		Scene:      sc.Name(),
		Violations: []Violation{},
		Errors:     pass.Errors,
	}
	for _, a := range pass.Actions {
		report.Violations = append(report.Violations, Violation{
			Rule:   ruleFor(a.Type),
			Object: a.Object,
			Effect: a.Effect,
			Target: a.Target,
			Detail: a.Reason,
		})
	}
	report.Consistent = len(report.Violations) == 0 && len(report.Errors) == 0
	return report, nil
}

func ruleFor(t reconcile.ActionType) string {
	switch t {
	case reconcile.ActionCreateEffect:
		return RuleMissingEffect
	case reconcile.ActionRemoveEffect:
		return RuleStaleEffect
	case reconcile.ActionRenameEffect:
		return RuleMisnamedEffect
	case reconcile.ActionSetOperation:
		return RuleWrongOperation
	case reconcile.ActionHideTarget:
		return RuleVisibleTarget
	case reconcile.ActionRestoreTarget:
		return RuleUnreleasedTarget
	case reconcile.ActionDisableObject:
		return RuleEnabledOperand
	default:
		return RuleUnknown
	}
}
