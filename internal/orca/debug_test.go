package orca

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/orca/internal/entity"
)

func TestLogStreams(t *testing.T) {
	var ops, diag, trace bytes.Buffer
	SetLogWriters(LogWriters{Ops: &ops, Diag: &diag, Trace: &trace})
	defer SetLogWriters(LogWriters{})

	s, err := New(DefaultConfig())
	require.NoError(t, err)

	subject := entity.NewAgent(r2.Vec{}, r2.Vec{X: 0.1}, 0.15).WithID("subject")
	neighbor := entity.NewAgent(r2.Vec{X: 3}, r2.Vec{}, 0.15)
	_, err = s.Solve(subject, []entity.Agent{neighbor}, nil)
	require.NoError(t, err)

	assert.Contains(t, diag.String(), `solve "subject"`)
	assert.Contains(t, trace.String(), "neighbor 0")
	assert.Empty(t, ops.String())

	_, err = s.Solve(entity.Agent{ID: "broken", Radius: -1}, nil, nil)
	require.Error(t, err)
	assert.Contains(t, ops.String(), "rejected solve")
}

func TestLogStreams_Disabled(t *testing.T) {
	SetLogWriters(LogWriters{})
	// Must not panic with every stream disabled.
	Opsf("ops %d", 1)
	Diagf("diag %d", 2)
	Tracef("trace %d", 3)
}
