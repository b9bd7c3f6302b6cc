package scene

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/orca/internal/entity"
	"github.com/banshee-data/orca/internal/fsutil"
	"github.com/banshee-data/orca/internal/testutil"
)

const corridorJSON = `{
  "name": "corridor",
  "subject": "a",
  "time_horizon": 3,
  "bounds": {"width": 10, "height": 4, "radius": 0.05},
  "agents": [
    {"id": "a", "position": [1, 2], "velocity": [0, 0], "radius": 0.3, "max_speed": 1.2, "target": [9, 2]},
    {"id": "b", "position": [9, 2], "velocity": [-1, 0], "radius": 0.3, "confidence": 0.05},
    {"position": [5, 1], "velocity": [0, 0], "radius": 0.2}
  ],
  "obstacles": [
    {"start": [5, 0], "end": [5, 0.5], "radius": 0.1}
  ]
}`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(corridorJSON))
	require.NoError(t, err)

	assert.Equal(t, "corridor", s.Name)
	assert.Equal(t, "a", s.Subject)
	assert.Equal(t, 3.0, s.TimeHorizon)
	_, err = uuid.Parse(s.ID)
	assert.NoError(t, err, "scene ID should be a UUID")

	require.Len(t, s.Agents, 3)
	a := s.Agents[0]
	assert.Equal(t, 1.2, a.MaxSpeed)
	assert.Equal(t, r2.Vec{X: 9, Y: 2}, a.Target)
	assert.True(t, s.Steered["a"])

	b := s.Agents[1]
	assert.Equal(t, 0.05, b.Confidence)
	assert.InDelta(t, 1.0, b.MaxSpeed, 1e-12, "max speed defaults to initial speed")
	assert.Equal(t, b.Position, b.Target, "target defaults to position")
	assert.False(t, s.Steered["b"])

	_, err = uuid.Parse(s.Agents[2].ID)
	assert.NoError(t, err, "missing agent IDs are generated")

	// Four walls from bounds plus one explicit obstacle.
	require.Len(t, s.Obstacles, 5)
	assert.Equal(t, entity.BoundingObstacles(10, 4, 0.05), s.Obstacles[:4])
	assert.Equal(t, entity.Obstacle{Start: r2.Vec{X: 5}, End: r2.Vec{X: 5, Y: 0.5}, Radius: 0.1}, s.Obstacles[4])
}

func TestParse_DefaultSubject(t *testing.T) {
	s, err := Parse([]byte(`{"agents": [{"id": "only", "position": [0, 0], "velocity": [1, 0], "radius": 1}]}`))
	require.NoError(t, err)
	assert.Equal(t, "only", s.Subject)
	assert.Empty(t, s.Obstacles)
}

func TestParse_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
	}{
		{"malformed", `{"agents": [`},
		{"no_agents", `{"agents": []}`},
		{"negative_radius", `{"agents": [{"position": [0, 0], "velocity": [0, 0], "radius": -1}]}`},
		{"negative_confidence", `{"agents": [{"position": [0, 0], "velocity": [0, 0], "radius": 1, "confidence": -0.1}]}`},
		{"duplicate_ids", `{"agents": [{"id": "x", "position": [0, 0], "velocity": [0, 0], "radius": 1}, {"id": "x", "position": [3, 0], "velocity": [0, 0], "radius": 1}]}`},
		{"unknown_subject", `{"subject": "ghost", "agents": [{"id": "x", "position": [0, 0], "velocity": [0, 0], "radius": 1}]}`},
		{"negative_horizon", `{"time_horizon": -1, "agents": [{"position": [0, 0], "velocity": [0, 0], "radius": 1}]}`},
		{"bad_bounds", `{"bounds": {"width": 0, "height": 2}, "agents": [{"position": [0, 0], "velocity": [0, 0], "radius": 1}]}`},
		{"bad_obstacle", `{"agents": [{"position": [0, 0], "velocity": [0, 0], "radius": 1}], "obstacles": [{"start": [0, 0], "end": [1, 0], "radius": -2}]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidScene), "got %v", err)
		})
	}
}

func TestParse_WrapsEntityErrors(t *testing.T) {
	_, err := Parse([]byte(`{"agents": [{"position": [0, 0], "velocity": [0, 0], "radius": -1}]}`))
	assert.True(t, errors.Is(err, entity.ErrInvalidAgent), "got %v", err)

	_, err = Parse([]byte(`{"agents": [{"position": [0, 0], "velocity": [0, 0], "radius": 1}], "obstacles": [{"start": [0, 0], "end": [1, 0], "radius": -2}]}`))
	assert.True(t, errors.Is(err, entity.ErrInvalidObstacle), "got %v", err)
}

func TestLoad(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	require.NoError(t, fsys.WriteFile("scenes/corridor.json", []byte(corridorJSON), 0644))

	s, err := Load(fsys, "scenes/corridor.json")
	require.NoError(t, err)
	assert.Equal(t, "corridor", s.Name)

	_, err = Load(fsys, "scenes/missing.json")
	assert.Error(t, err)
}

func TestLoad_TooLarge(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	require.NoError(t, fsys.WriteFile("big.json", make([]byte, maxSceneSize+1), 0644))

	_, err := Load(fsys, "big.json")
	assert.True(t, errors.Is(err, ErrInvalidScene), "got %v", err)
}

func TestSaveReload(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	orig, err := Parse([]byte(corridorJSON))
	require.NoError(t, err)

	require.NoError(t, orig.Save(fsys, "out/final.json"))
	again, err := Load(fsys, "out/final.json")
	require.NoError(t, err)

	assert.NotEqual(t, orig.ID, again.ID, "every load gets a fresh scene ID")
	if diff := cmp.Diff(orig.Agents, again.Agents); diff != "" {
		t.Errorf("agents mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(orig.Obstacles, again.Obstacles); diff != "" {
		t.Errorf("obstacles mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(orig.Steered, again.Steered); diff != "" {
		t.Errorf("steered mismatch (-want +got):\n%s", diff)
	}
}

func TestNeighbors(t *testing.T) {
	s, err := Parse([]byte(corridorJSON))
	require.NoError(t, err)

	got := s.Neighbors(1)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, s.Agents[2].ID, got[1].ID)

	// The returned slice does not alias the scene.
	got[0].Radius = 99
	assert.Equal(t, 0.3, s.Agents[0].Radius)
}

func TestClone(t *testing.T) {
	s := Deadlock()
	c := s.Clone()

	c.Agents[0].Position = r2.Vec{X: 5, Y: 5}
	c.Steered["idle-1"] = true

	assert.Equal(t, s.ID, c.ID)
	assert.NotEqual(t, c.Agents[0].Position, s.Agents[0].Position)
	assert.False(t, s.Steered["idle-1"])
}

func TestDeadlock(t *testing.T) {
	s := Deadlock()
	require.NoError(t, s.Validate())

	idx, err := s.SubjectIndex()
	require.NoError(t, err)
	subject := s.Agents[idx]

	assert.Equal(t, 0.2, subject.MaxSpeed)
	assert.Equal(t, r2.Vec{X: 0.2, Y: 0.2}, subject.Target)
	// Already aimed at the target at full speed.
	assert.InDelta(t, 0.2, subject.Speed(), 1e-12)
	testutil.AssertParallel(t, r2.Sub(subject.Target, subject.Position), subject.Velocity, testutil.DefaultTolerance)

	require.Len(t, s.Obstacles, 2)
	assert.Equal(t, r2.Vec{X: 1.6, Y: 2}, s.Obstacles[0].Start)
	assert.Equal(t, r2.Vec{X: 1.6, Y: 0}, s.Obstacles[0].End)
	assert.Equal(t, r2.Vec{X: 0, Y: 0}, s.Obstacles[1].End)

	for _, a := range s.Neighbors(idx) {
		assert.True(t, a.IsStatic(0), a.ID)
	}
}
