package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRecorder tallies engine activity.
type countingRecorder struct {
	passes    int
	suspended int
	bakes     int
	bakeErrs  int
}

func (c *countingRecorder) PassCompleted(*PassReport) { c.passes++ }
func (c *countingRecorder) PassSuspended()            { c.suspended++ }
func (c *countingRecorder) BakeCompleted(_ *BakeReport, err error) {
	c.bakes++
	if err != nil {
		c.bakeErrs++
	}
}

// cutterScene builds S with difference=G where G holds meshes A and B.
func cutterScene() *fakeScene {
	s := newFakeScene()
	host := s.mesh("S")
	host.settings = Settings{Enabled: true, Difference: "G"}
	s.mesh("A")
	s.mesh("B")
	s.group("G", "A", "B")
	return s
}

func TestPass_Convergence(t *testing.T) {
	s := cutterScene()
	e := New()
	id := e.Identity()

	report := e.Pass(NewContext(), s)

	assert.False(t, report.Suspended)
	assert.Equal(t, 1, report.Objects)
	assert.Empty(t, report.Errors)

	host := s.get("S")
	require.Len(t, host.stack.effects, 2)
	assert.Equal(t, []string{
		id.NameFor(OperationDifference, "A", "G"),
		id.NameFor(OperationDifference, "B", "G"),
	}, host.names())
	for _, eff := range host.stack.effects {
		assert.Equal(t, EffectBoolean, eff.Kind)
		assert.Equal(t, OperationDifference, eff.Operation)
		assert.False(t, eff.Expanded)
	}
	assert.Equal(t, "A", host.stack.effects[0].Target)
	assert.Equal(t, "B", host.stack.effects[1].Target)

	for _, name := range []string{"A", "B"} {
		obj := s.get(name)
		assert.Equal(t, HiddenDisplay, obj.display, name)
		assert.False(t, obj.settings.Enabled, name)
	}
	assert.Equal(t, 2, report.Summary.Created)
	assert.Equal(t, 2, report.Summary.Hidden)
}

func TestPass_Idempotent(t *testing.T) {
	s := cutterScene()
	s.get("S").stack.effects = []Effect{{Name: "Bevel", Kind: EffectOther}}
	e := New()
	rc := NewContext()

	e.Pass(rc, s)
	before := s.get("S").stack.List()

	second := e.Pass(rc, s)

	assert.False(t, second.Changed())
	assert.Empty(t, second.Actions)
	assert.Equal(t, before, s.get("S").stack.List())
}

func TestPass_SlotCleared(t *testing.T) {
	s := cutterScene()
	host := s.get("S")
	host.stack.effects = []Effect{{Name: "Bevel", Kind: EffectOther}}
	e := New()
	rc := NewContext()
	e.Pass(rc, s)
	require.Len(t, host.stack.effects, 3)

	host.settings.Difference = ""
	report := e.Pass(rc, s)

	assert.Equal(t, []string{"Bevel"}, host.names())
	assert.Equal(t, 2, report.Summary.Removed)
	assert.Equal(t, VisibleDisplay, s.get("A").display)
	assert.Equal(t, VisibleDisplay, s.get("B").display)
}

func TestPass_MembershipRemoval(t *testing.T) {
	s := cutterScene()
	e := New()
	id := e.Identity()
	rc := NewContext()
	e.Pass(rc, s)
	effA := s.get("S").stack.effects[0]

	s.groupings["G"].members = []string{"A"}
	e.Pass(rc, s)

	host := s.get("S")
	require.Len(t, host.stack.effects, 1)
	assert.Equal(t, effA, host.stack.effects[0])
	assert.Equal(t, id.NameFor(OperationDifference, "A", "G"), host.stack.effects[0].Name)
	assert.Equal(t, VisibleDisplay, s.get("B").display)
	assert.Nil(t, s.get("B").settings.SavedDisplay)
	assert.Equal(t, HiddenDisplay, s.get("A").display)
}

func TestPass_HostRemovedRestoresTargets(t *testing.T) {
	s := cutterScene()
	s.get("A").display = Display{Type: DisplaySolid}
	e := New()
	rc := NewContext()
	e.Pass(rc, s)
	require.Equal(t, HiddenDisplay, s.get("A").display)

	s.objects = s.objects[1:]
	report := e.Pass(rc, s)

	assert.Equal(t, Display{Type: DisplaySolid}, s.get("A").display)
	assert.Nil(t, s.get("A").settings.SavedDisplay)
	assert.Equal(t, VisibleDisplay, s.get("B").display)
	assert.Nil(t, s.get("B").settings.SavedDisplay)
	assert.Equal(t, 2, report.Summary.Restored)

	next := e.Pass(rc, s)
	assert.False(t, next.Changed())
}

func TestPass_Disable(t *testing.T) {
	s := cutterScene()
	host := s.get("S")
	host.settings.Union = "U"
	s.mesh("C")
	s.group("U", "C")
	host.stack.effects = []Effect{{Name: "Bevel", Kind: EffectOther}}
	e := New()
	rc := NewContext()
	e.Pass(rc, s)
	require.Len(t, host.stack.effects, 4)

	host.settings.Enabled = false
	report := e.Pass(rc, s)

	assert.Equal(t, []string{"Bevel"}, host.names())
	assert.Equal(t, 0, report.Objects)
	for _, name := range []string{"A", "B", "C"} {
		assert.Equal(t, VisibleDisplay, s.get(name).display, name)
	}
}

func TestPass_SuspendedIsNoop(t *testing.T) {
	s := cutterScene()
	rec := &countingRecorder{}
	e := New(WithRecorder(rec))
	rc := NewContext()
	g := rc.Suspend()

	report := e.Pass(rc, s)

	assert.True(t, report.Suspended)
	assert.Empty(t, s.get("S").stack.effects)
	assert.Equal(t, VisibleDisplay, s.get("A").display)
	assert.Equal(t, 1, rec.suspended)
	assert.Equal(t, 0, rec.passes)

	g.Release()
	e.Pass(rc, s)
	assert.Len(t, s.get("S").stack.effects, 2)
	assert.Equal(t, 1, rec.passes)
}

func TestPass_ReassignRenamesInPlace(t *testing.T) {
	s := cutterScene()
	s.group("H", "A")
	host := s.get("S")
	host.stack.effects = []Effect{{Name: "Bevel", Kind: EffectOther}}
	e := New()
	id := e.Identity()
	rc := NewContext()
	e.Pass(rc, s)

	host.settings.Difference = "H"
	report := e.Pass(rc, s)

	assert.Equal(t, []string{"Bevel", id.NameFor(OperationDifference, "A", "H")}, host.names())
	assert.Equal(t, 1, report.Summary.Renamed)
	assert.Equal(t, 0, report.Summary.Created)
	assert.Equal(t, VisibleDisplay, s.get("B").display)
}

func TestPass_SameTargetInTwoSlots(t *testing.T) {
	s := cutterScene()
	host := s.get("S")
	host.settings.Union = "U"
	s.group("U", "A")
	e := New()
	id := e.Identity()
	rc := NewContext()

	e.Pass(rc, s)
	second := e.Pass(rc, s)

	assert.ElementsMatch(t, []string{
		id.NameFor(OperationDifference, "A", "G"),
		id.NameFor(OperationDifference, "B", "G"),
		id.NameFor(OperationUnion, "A", "U"),
	}, host.names())
	assert.False(t, second.Changed())
}

func TestPass_InvalidSlotsTolerated(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		groups   map[string][]string
		want     int
	}{
		{
			name:     "grouping contains host",
			settings: Settings{Enabled: true, Difference: "G"},
			groups:   map[string][]string{"G": {"S", "A"}},
			want:     0,
		},
		{
			name:     "missing grouping",
			settings: Settings{Enabled: true, Difference: "Gone"},
			want:     0,
		},
		{
			name:     "same grouping in two slots",
			settings: Settings{Enabled: true, Difference: "G", Intersect: "G"},
			groups:   map[string][]string{"G": {"A"}},
			want:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newFakeScene()
			host := s.mesh("S")
			host.settings = tt.settings
			s.mesh("A")
			for name, members := range tt.groups {
				s.group(name, members...)
			}

			report := New().Pass(NewContext(), s)

			assert.Empty(t, report.Errors)
			assert.Len(t, host.stack.effects, tt.want)
			for _, eff := range host.stack.effects {
				assert.Equal(t, OperationDifference, eff.Operation)
			}
		})
	}
}

func TestPass_SkipsNonMeshMembers(t *testing.T) {
	s := newFakeScene()
	host := s.mesh("S")
	host.settings = Settings{Enabled: true, Difference: "G"}
	s.mesh("A")
	s.other("Lamp")
	s.group("G", "A", "Lamp")

	New().Pass(NewContext(), s)

	require.Len(t, host.stack.effects, 1)
	assert.Equal(t, "A", host.stack.effects[0].Target)
	assert.Equal(t, VisibleDisplay, s.get("Lamp").display)
}

func TestPass_DanglingTargetRemoved(t *testing.T) {
	s := cutterScene()
	e := New()
	rc := NewContext()
	e.Pass(rc, s)

	s.remove("B")
	report := e.Pass(rc, s)

	host := s.get("S")
	require.Len(t, host.stack.effects, 1)
	assert.Equal(t, "A", host.stack.effects[0].Target)
	assert.Equal(t, 1, report.Summary.Removed)
}

func TestPass_UserEffectsUntouched(t *testing.T) {
	s := cutterScene()
	host := s.get("S")
	user := []Effect{
		{Name: "collbool_custom", Kind: EffectBoolean, Target: "A", Operation: OperationUnion},
		{Name: "Mirror", Kind: EffectOther},
		{Name: DefaultPrefix + "diff_1_A_Z", Kind: EffectOther},
	}
	host.stack.effects = append([]Effect{}, user...)

	New().Pass(NewContext(), s)

	assert.Equal(t, user, host.stack.effects[:3])
	assert.Len(t, host.stack.effects, 5)
}

func TestPass_OwnershipCollisionIsManaged(t *testing.T) {
	// A user effect whose name parses as a generated one is indistinguishable
	// from engine output and is pruned like any stale generated effect.
	s := cutterScene()
	host := s.get("S")
	id := NewIdentity("")
	impostor := id.NameFor(OperationUnion, "A", "Other")
	host.stack.effects = []Effect{{Name: impostor, Kind: EffectBoolean, Target: "A"}}

	New().Pass(NewContext(), s)

	assert.NotContains(t, host.names(), impostor)
	assert.Len(t, host.stack.effects, 2)
}

func TestPass_RestoresSavedDisplay(t *testing.T) {
	s := cutterScene()
	wire := Display{Type: DisplayWire, HideRender: false}
	s.get("A").display = wire
	e := New()
	rc := NewContext()

	e.Pass(rc, s)
	require.NotNil(t, s.get("A").settings.SavedDisplay)
	assert.Equal(t, wire, *s.get("A").settings.SavedDisplay)

	s.get("S").settings.Difference = ""
	e.Pass(rc, s)

	assert.Equal(t, wire, s.get("A").display)
	assert.Nil(t, s.get("A").settings.SavedDisplay)
}

func TestPass_SharedTargetStaysHidden(t *testing.T) {
	s := cutterScene()
	other := s.mesh("T")
	other.settings = Settings{Enabled: true, Union: "K"}
	s.group("K", "A")
	e := New()
	rc := NewContext()
	e.Pass(rc, s)

	s.get("S").settings.Difference = ""
	e.Pass(rc, s)

	assert.Equal(t, HiddenDisplay, s.get("A").display)
	assert.Equal(t, VisibleDisplay, s.get("B").display)
	assert.Len(t, other.stack.effects, 1)
}

func TestPass_OperandIsDisabled(t *testing.T) {
	s := cutterScene()
	a := s.get("A")
	a.settings = Settings{Enabled: true, Difference: "Q"}
	s.mesh("Z")
	s.group("Q", "Z")
	e := New()
	rc := NewContext()

	e.Pass(rc, s)
	e.Pass(rc, s)

	assert.False(t, a.settings.Enabled)
	assert.Empty(t, a.stack.effects)
}

func TestPass_HostErrorsTolerated(t *testing.T) {
	s := cutterScene()
	s.get("S").stack.failCreate = true
	second := s.mesh("T")
	second.settings = Settings{Enabled: true, Union: "K"}
	s.mesh("C")
	s.group("K", "C")

	report := New().Pass(NewContext(), s)

	assert.Len(t, report.Errors, 2)
	assert.Empty(t, s.get("S").stack.effects)
	assert.Len(t, second.stack.effects, 1)
}

func TestSyncOne(t *testing.T) {
	s := cutterScene()
	e := New()
	host := s.get("S")
	target := s.get("A")
	g, _ := s.Grouping("G")

	eff, err := e.SyncOne(s, host, target, OperationIntersect, g)
	require.NoError(t, err)
	assert.Equal(t, OperationIntersect, eff.Operation)
	assert.Equal(t, e.Identity().NameFor(OperationIntersect, "A", "G"), eff.Name)

	again, err := e.SyncOne(s, host, target, OperationIntersect, g)
	require.NoError(t, err)
	assert.Equal(t, eff, again)
	assert.Len(t, host.stack.effects, 1)
}

func TestSubscribe(t *testing.T) {
	s := cutterScene()
	n := newFakeNotifier()
	e := New()
	rc := NewContext()

	e.Subscribe(rc, n)
	n.fire(s)
	assert.Len(t, s.get("S").stack.effects, 2)

	e.Unsubscribe()
	assert.Empty(t, n.handlers)

	s.get("S").settings.Difference = ""
	n.fire(s)
	assert.Len(t, s.get("S").stack.effects, 2)
}

func TestSubscribe_ReplacesPrevious(t *testing.T) {
	first := newFakeNotifier()
	second := newFakeNotifier()
	e := New()

	e.Subscribe(NewContext(), first)
	e.Subscribe(NewContext(), second)

	assert.Empty(t, first.handlers)
	assert.Len(t, second.handlers, 1)
}
