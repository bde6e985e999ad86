//go:build !windows

package overlay

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTarget_Fixed(t *testing.T) {
	geom := Geometry{Width: 1920, Height: 1080}
	tgt, err := NewTarget(TargetOptions{Pid: 42, Fallback: geom})
	require.NoError(t, err)

	g, ok := tgt.Geometry()
	assert.True(t, ok)
	assert.Equal(t, geom, g)
}

func TestNewTarget_InvalidFallback(t *testing.T) {
	_, err := NewTarget(TargetOptions{Pid: 42})
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestFixedTarget_Alive(t *testing.T) {
	tests := []struct {
		name   string
		pid    int32
		exists bool
		err    error
		alive  bool
	}{
		{"running", 42, true, nil, true},
		{"exited", 42, false, nil, false},
		{"lookup error", 42, true, errors.New("boom"), false},
		{"no pid", 0, true, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exists := func(int32) (bool, error) { return tt.exists, tt.err }
			tgt := &fixedTarget{pid: tt.pid, geom: Geometry{Width: 1, Height: 1}, exists: exists}
			assert.Equal(t, tt.alive, tgt.Alive())
		})
	}
}
