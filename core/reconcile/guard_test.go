package reconcile

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContext_Suspend(t *testing.T) {
	rc := NewContext()
	assert.False(t, rc.Suspended())

	outer := rc.Suspend()
	inner := rc.Suspend()
	assert.True(t, rc.Suspended())

	inner.Release()
	assert.True(t, rc.Suspended())

	inner.Release()
	assert.True(t, rc.Suspended(), "double release must not drop another guard's hold")

	outer.Release()
	assert.False(t, rc.Suspended())
}

func TestGuard_ReleaseNil(t *testing.T) {
	var g *Guard
	assert.NotPanics(t, g.Release)
}

func TestGuard_ConcurrentRelease(t *testing.T) {
	rc := NewContext()
	g := rc.Suspend()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Release()
		}()
	}
	wg.Wait()

	assert.False(t, rc.Suspended())
}
