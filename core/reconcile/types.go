package reconcile

// Operation is the boolean operation a generated effect performs.
type Operation string

const (
	// OperationDifference subtracts the target from the host.
	OperationDifference Operation = "DIFFERENCE"
	// OperationUnion merges the target into the host.
	OperationUnion Operation = "UNION"
	// OperationIntersect keeps the volume shared by host and target.
	OperationIntersect Operation = "INTERSECT"
)

// IsValid reports whether op is one of the three supported operations.
func (op Operation) IsValid() bool {
	switch op {
	case OperationDifference, OperationUnion, OperationIntersect:
		return true
	default:
		return false
	}
}

// Slot names one of the three grouping slots on an object's settings.
type Slot string

const (
	SlotDifference Slot = "difference"
	SlotUnion      Slot = "union"
	SlotIntersect  Slot = "intersect"
)

// Slots lists the slots in evaluation order.
var Slots = []Slot{SlotDifference, SlotUnion, SlotIntersect}

// Operation returns the boolean operation driven by the slot.
func (s Slot) Operation() Operation {
	switch s {
	case SlotDifference:
		return OperationDifference
	case SlotUnion:
		return OperationUnion
	case SlotIntersect:
		return OperationIntersect
	default:
		return ""
	}
}

// ParseSlot converts a slot name (case-sensitive) into a Slot.
func ParseSlot(name string) (Slot, bool) {
	for _, s := range Slots {
		if string(s) == name {
			return s, true
		}
	}
	return "", false
}

// ObjectKind classifies scene objects. Only meshes take part in reconciliation.
type ObjectKind string

const (
	KindMesh  ObjectKind = "MESH"
	KindOther ObjectKind = "OTHER"
)

// EffectKind classifies modifier stack entries.
type EffectKind string

const (
	EffectBoolean EffectKind = "BOOLEAN"
	EffectOther   EffectKind = "OTHER"
)

// DisplayType is the viewport display mode of an object.
type DisplayType string

const (
	DisplayTextured DisplayType = "TEXTURED"
	DisplaySolid    DisplayType = "SOLID"
	DisplayWire     DisplayType = "WIRE"
	DisplayBounds   DisplayType = "BOUNDS"
)

// Display holds the host-visible display attributes of an object.
type Display struct {
	Type       DisplayType `json:"display_type" yaml:"display_type"`
	HideRender bool        `json:"hide_render" yaml:"hide_render"`
}

var (
	// VisibleDisplay is applied to released targets that have no saved display.
	VisibleDisplay = Display{Type: DisplayTextured, HideRender: false}
	// HiddenDisplay is applied to every target referenced by a generated effect.
	HiddenDisplay = Display{Type: DisplayBounds, HideRender: true}
)

// Settings is the per-object boolean declaration record.
// Slot values are grouping names; an empty string means the slot is unset.
type Settings struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	Difference string `json:"difference,omitempty" yaml:"difference,omitempty"`
	Union      string `json:"union,omitempty" yaml:"union,omitempty"`
	Intersect  string `json:"intersect,omitempty" yaml:"intersect,omitempty"`

	// SavedDisplay is the display the object had before it was first hidden
	// as a boolean target. It is cleared once the display is restored.
	SavedDisplay *Display `json:"saved_display,omitempty" yaml:"saved_display,omitempty"`
}

// Slot returns the grouping name held in s.
func (st Settings) Slot(s Slot) string {
	switch s {
	case SlotDifference:
		return st.Difference
	case SlotUnion:
		return st.Union
	case SlotIntersect:
		return st.Intersect
	default:
		return ""
	}
}

// SetSlot stores grouping in slot s. Unknown slots are ignored.
func (st *Settings) SetSlot(s Slot, grouping string) {
	switch s {
	case SlotDifference:
		st.Difference = grouping
	case SlotUnion:
		st.Union = grouping
	case SlotIntersect:
		st.Intersect = grouping
	}
}

// Assigned returns the non-empty slots in evaluation order.
func (st Settings) Assigned() []SlotAssignment {
	var out []SlotAssignment
	for _, s := range Slots {
		if g := st.Slot(s); g != "" {
			out = append(out, SlotAssignment{Slot: s, Grouping: g})
		}
	}
	return out
}

// SlotAssignment pairs a slot with the grouping name it holds.
type SlotAssignment struct {
	Slot     Slot
	Grouping string
}

// Effect is a snapshot of one modifier stack entry.
type Effect struct {
	Name      string     `json:"name" yaml:"name"`
	Kind      EffectKind `json:"kind" yaml:"kind"`
	Operation Operation  `json:"operation,omitempty" yaml:"operation,omitempty"`

	// Target is the name of the referenced object. Empty means the
	// reference no longer resolves.
	Target   string `json:"target,omitempty" yaml:"target,omitempty"`
	Expanded bool   `json:"expanded" yaml:"expanded"`
}

// ActionType represents the type of mutation performed by the engine.
type ActionType string

const (
	// ActionCreateEffect adds a generated effect to a stack.
	ActionCreateEffect ActionType = "create_effect"
	// ActionRenameEffect renames a generated effect in place.
	ActionRenameEffect ActionType = "rename_effect"
	// ActionRemoveEffect removes a generated effect from a stack.
	ActionRemoveEffect ActionType = "remove_effect"
	// ActionApplyEffect resolves a generated effect into geometry.
	ActionApplyEffect ActionType = "apply_effect"
	// ActionSetOperation changes the operation of a generated effect.
	ActionSetOperation ActionType = "set_operation"
	// ActionHideTarget hides an object referenced as a boolean operand.
	ActionHideTarget ActionType = "hide_target"
	// ActionRestoreTarget restores the display of a released operand.
	ActionRestoreTarget ActionType = "restore_target"
	// ActionDisableObject clears the enabled flag of an operand.
	ActionDisableObject ActionType = "disable_object"
)

// Action represents one mutation performed during a pass or bake.
type Action struct {
	// Type specifies what was done.
	Type ActionType `json:"type"`

	// Object is the object whose stack or settings changed.
	Object string `json:"object"`

	// Effect is the affected effect name, if any.
	Effect string `json:"effect,omitempty"`

	// Target is the operand involved, if any.
	Target string `json:"target,omitempty"`

	// Reason explains why the action was needed.
	Reason string `json:"reason,omitempty"`
}

// PassReport describes the outcome of one reconciliation pass.
type PassReport struct {
	// Suspended is true when the pass was skipped because a bake held the guard.
	Suspended bool `json:"suspended"`

	// Objects counts the enabled mesh objects that were reconciled.
	Objects int `json:"objects"`

	// Actions lists every mutation in the order it was made.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PassSummary `json:"summary"`

	// Errors lists host errors that were tolerated during the pass.
	Errors []string `json:"errors,omitempty"`
}

// Changed reports whether the pass mutated anything.
func (r *PassReport) Changed() bool {
	return len(r.Actions) > 0
}

// PassSummary provides aggregate statistics for a pass.
type PassSummary struct {
	Created    int `json:"created"`
	Renamed    int `json:"renamed"`
	Removed    int `json:"removed"`
	Hidden     int `json:"hidden"`
	Restored   int `json:"restored"`
	Disabled   int `json:"disabled"`
	Operations int `json:"operations"`
}

// BakeReport describes the outcome of a bake.
type BakeReport struct {
	// Object is the baked object.
	Object string `json:"object"`

	// Applied counts effects resolved into geometry.
	Applied int `json:"applied"`

	// Dropped counts dangling effects removed without applying.
	Dropped int `json:"dropped"`

	// Actions lists the mutations performed.
	Actions []Action `json:"actions"`

	// Message is the user-facing confirmation.
	Message string `json:"message"`
}
