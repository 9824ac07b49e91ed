package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentity_NameFor(t *testing.T) {
	id := NewIdentity("")

	assert.Equal(t, "collbool_diff_6_Cutter_Holes", id.NameFor(OperationDifference, "Cutter", "Holes"))
	assert.Equal(t, "collbool_unio_1_A_G", id.NameFor(OperationUnion, "A", "G"))
	assert.Equal(t, "collbool_inte_1_A_G", id.NameFor(OperationIntersect, "A", "G"))
}

func TestIdentity_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		op       Operation
		target   string
		grouping string
	}{
		{"plain", OperationDifference, "Cube", "Cutters"},
		{"underscores in target", OperationUnion, "my_cube_01", "G"},
		{"underscores in grouping", OperationIntersect, "Cube", "cut_set_a"},
		{"underscores everywhere", OperationDifference, "a_b", "c_d_e"},
		{"digits", OperationUnion, "12_3", "4_5"},
		{"unicode", OperationDifference, "Würfel", "Löcher"},
	}

	id := NewIdentity("")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := id.NameFor(tt.op, tt.target, tt.grouping)

			ref, ok := id.References(name)
			assert.True(t, ok)
			assert.True(t, id.OwnedByEngine(name))
			assert.Equal(t, Reference{Operation: tt.op, Target: tt.target, Grouping: tt.grouping}, ref)
		})
	}
}

func TestIdentity_Injective(t *testing.T) {
	id := NewIdentity("")

	// These collide under a plain underscore join.
	a := id.NameFor(OperationDifference, "a_b", "c")
	b := id.NameFor(OperationDifference, "a", "b_c")

	assert.NotEqual(t, a, b)
}

func TestIdentity_RejectsForeignNames(t *testing.T) {
	id := NewIdentity("")

	for _, name := range []string{
		"",
		"Boolean",
		"Boolean.001",
		"collbool_",
		"collbool_custom",
		"collbool_diff",
		"collbool_diff_x_A_G",
		"collbool_diff_01_A_G",
		"collbool_diff_-1_A_G",
		"collbool_diff_5_A_G",
		"collbool_diff_1_A_",
		"collbool_diff_1_AxG",
		"collbool_xxxx_1_A_G",
		"other_diff_1_A_G",
	} {
		assert.False(t, id.OwnedByEngine(name), name)
	}
}

func TestIdentity_CustomPrefix(t *testing.T) {
	id := NewIdentity("cb.")
	name := id.NameFor(OperationUnion, "A", "G")

	assert.Equal(t, "cb.unio_1_A_G", name)
	assert.True(t, id.OwnedByEngine(name))
	assert.False(t, NewIdentity("").OwnedByEngine(name))
}

func TestIdentity_ZeroValueUsesDefault(t *testing.T) {
	var id Identity

	assert.Equal(t, NewIdentity("").NameFor(OperationDifference, "A", "G"), id.NameFor(OperationDifference, "A", "G"))
}
