package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBake(t *testing.T) {
	s := cutterScene()
	host := s.get("S")
	host.stack.effects = []Effect{{Name: "Bevel", Kind: EffectOther}}
	rec := &countingRecorder{}
	e := New(WithRecorder(rec))
	rc := NewContext()
	e.Pass(rc, s)

	report, err := e.Bake(rc, s, "S")

	require.NoError(t, err)
	assert.Equal(t, BakeMessage, report.Message)
	assert.Equal(t, 2, report.Applied)
	assert.Equal(t, 0, report.Dropped)
	assert.Equal(t, []string{"Bevel"}, host.names())
	assert.Len(t, host.stack.applied, 2)
	assert.False(t, host.settings.Enabled)
	assert.False(t, rc.Suspended())
	assert.Equal(t, []string{BakeUndoLabel}, s.undo)
	assert.Equal(t, VisibleDisplay, s.get("A").display)
	assert.Equal(t, VisibleDisplay, s.get("B").display)
	assert.Equal(t, 1, rec.bakes)

	// Nothing is regenerated afterwards.
	next := e.Pass(rc, s)
	assert.False(t, next.Changed())
	assert.Equal(t, []string{"Bevel"}, host.names())
}

func TestBake_DropsDanglingTarget(t *testing.T) {
	s := newFakeScene()
	host := s.mesh("S")
	host.settings = Settings{Enabled: true, Difference: "G"}
	s.mesh("A")
	s.mesh("B")
	s.mesh("C")
	s.group("G", "A", "B", "C")
	e := New()
	rc := NewContext()
	e.Pass(rc, s)
	require.Len(t, host.stack.effects, 3)

	s.remove("B")
	report, err := e.Bake(rc, s, "S")

	require.NoError(t, err)
	assert.Equal(t, 2, report.Applied)
	assert.Equal(t, 1, report.Dropped)
	assert.Empty(t, host.stack.effects)
	require.Len(t, host.stack.applied, 2)
	assert.Equal(t, "A", host.stack.applied[0].Target)
	assert.Equal(t, "C", host.stack.applied[1].Target)
}

func TestBake_SuspendsPasses(t *testing.T) {
	s := cutterScene()
	n := newFakeNotifier()
	rec := &countingRecorder{}
	e := New(WithRecorder(rec))
	rc := NewContext()
	e.Subscribe(rc, n)
	n.fire(s)
	require.Equal(t, 1, rec.passes)

	host := s.get("S")
	host.stack.onApply = func() {
		assert.True(t, rc.Suspended())
		n.fire(s)
	}

	_, err := e.Bake(rc, s, "S")

	require.NoError(t, err)
	assert.Equal(t, 2, rec.suspended)
	assert.Equal(t, 1, rec.passes)
	assert.False(t, rc.Suspended())
}

func TestBake_ApplyErrorReleasesGuard(t *testing.T) {
	s := cutterScene()
	rec := &countingRecorder{}
	e := New(WithRecorder(rec))
	rc := NewContext()
	e.Pass(rc, s)
	host := s.get("S")
	host.stack.failApply = e.Identity().NameFor(OperationDifference, "B", "G")

	report, err := e.Bake(rc, s, "S")

	require.Error(t, err)
	assert.ErrorContains(t, err, "kernel failure")
	assert.Equal(t, 1, report.Applied)
	assert.Empty(t, report.Message)
	assert.False(t, rc.Suspended())
	assert.Equal(t, 1, rec.bakeErrs)
	// The host's undo step covers the partial bake.
	assert.Equal(t, []string{BakeUndoLabel}, s.undo)
}

func TestBake_Preconditions(t *testing.T) {
	s := cutterScene()
	s.other("Lamp")
	s.mesh("Plain")

	tests := []struct {
		name   string
		object string
		err    error
	}{
		{"missing object", "Nope", ErrObjectNotFound},
		{"not a mesh", "Lamp", ErrNotMesh},
		{"not enabled", "Plain", ErrNotEnabled},
	}

	e := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Bake(NewContext(), s, tt.object)

			assert.ErrorIs(t, err, tt.err)
			assert.Empty(t, s.undo)
		})
	}
}

func TestBake_RejectsWhileSuspended(t *testing.T) {
	s := cutterScene()
	rc := NewContext()
	g := rc.Suspend()
	defer g.Release()

	_, err := New().Bake(rc, s, "S")

	assert.ErrorIs(t, err, ErrBakeInProgress)
	assert.True(t, s.get("S").settings.Enabled)
}

func TestBake_NilContext(t *testing.T) {
	s := cutterScene()
	e := New()
	e.Pass(nil, s)

	report, err := e.Bake(nil, s, "S")

	require.NoError(t, err)
	assert.Equal(t, 2, report.Applied)
}
