package booleans

import (
	"testing"

	"collbool/core/reconcile"
	"collbool/feature/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollback_FullHistory(t *testing.T) {
	sc := scene.New("hull")
	_, err := sc.AddObject("Hull", reconcile.KindMesh)
	require.NoError(t, err)
	for i := 0; i < scene.MaxUndoSteps; i++ {
		sc.PushUndo("step")
	}
	pushes := sc.UndoPushes()

	sc.PushUndo(reconcile.BakeUndoLabel)
	_, err = sc.AddObject("Partial", reconcile.KindMesh)
	require.NoError(t, err)
	require.Len(t, sc.UndoLabels(), scene.MaxUndoSteps)

	require.NoError(t, rollback(sc, pushes))

	assert.Equal(t, []string{"Hull"}, sc.ObjectNames())
	assert.Len(t, sc.UndoLabels(), scene.MaxUndoSteps-1)
}

func TestRollback_NoStepRecorded(t *testing.T) {
	sc := scene.New("hull")
	sc.PushUndo("earlier")
	_, err := sc.AddObject("Hull", reconcile.KindMesh)
	require.NoError(t, err)

	require.NoError(t, rollback(sc, sc.UndoPushes()))

	assert.Equal(t, []string{"Hull"}, sc.ObjectNames())
	assert.Equal(t, []string{"earlier"}, sc.UndoLabels())
}
