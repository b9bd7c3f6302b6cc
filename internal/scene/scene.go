package scene

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/orca/internal/entity"
	"github.com/banshee-data/orca/internal/fsutil"
)

// ErrInvalidScene is returned by Parse, Load and Scene.Validate.
var ErrInvalidScene = errors.New("invalid scene")

// maxSceneSize bounds scene files read by Load.
const maxSceneSize = 1 * 1024 * 1024 // 1MB

// Vec is a 2D vector encoded as a JSON array [x, y].
type Vec [2]float64

func (v Vec) toR2() r2.Vec { return r2.Vec{X: v[0], Y: v[1]} }

func vecOf(v r2.Vec) Vec { return Vec{v.X, v.Y} }

// AgentSpec is the JSON form of an agent. When MaxSpeed or Target is set the
// agent steers towards Target (default: Position) at no more than MaxSpeed
// (default: the initial speed).
type AgentSpec struct {
	ID         string   `json:"id,omitempty"`
	Position   Vec      `json:"position"`
	Velocity   Vec      `json:"velocity"`
	Radius     float64  `json:"radius"`
	Confidence float64  `json:"confidence,omitempty"`
	MaxSpeed   *float64 `json:"max_speed,omitempty"`
	Target     *Vec     `json:"target,omitempty"`
}

// ObstacleSpec is the JSON form of a wall segment.
type ObstacleSpec struct {
	Start  Vec     `json:"start"`
	End    Vec     `json:"end"`
	Radius float64 `json:"radius"`
}

// BoundsSpec adds the four walls of [0,width]x[0,height].
type BoundsSpec struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Radius float64 `json:"radius"`
}

// File is the on-disk scene document.
type File struct {
	Name        string         `json:"name,omitempty"`
	Subject     string         `json:"subject,omitempty"`
	TimeHorizon float64        `json:"time_horizon,omitempty"`
	Bounds      *BoundsSpec    `json:"bounds,omitempty"`
	Agents      []AgentSpec    `json:"agents"`
	Obstacles   []ObstacleSpec `json:"obstacles,omitempty"`
}

// Scene is a validated, solver-ready scene.
type Scene struct {
	// ID is a fresh UUID per loaded scene; it tags runs and output files.
	ID   string
	Name string
	// Subject is the ID of the agent whose solve is reported by the driver.
	Subject string
	// TimeHorizon overrides the solver configuration when positive.
	TimeHorizon float64
	Agents      []entity.Agent
	Obstacles   []entity.Obstacle
	// Steered holds the IDs of agents that re-aim at their Target every
	// step. Other agents keep their initial velocity as the preferred one.
	Steered map[string]bool
}

// Load reads and parses a scene file.
func Load(fsys fsutil.FileSystem, path string) (*Scene, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat scene file: %w", err)
	}
	if info.Size() > maxSceneSize {
		return nil, fmt.Errorf("%w: scene file too large: %d bytes (max %d)", ErrInvalidScene, info.Size(), maxSceneSize)
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scene document. Agents without an ID get a generated one
// and an empty subject defaults to the first agent.
func Parse(data []byte) (*Scene, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: failed to parse scene JSON: %v", ErrInvalidScene, err)
	}
	return f.Scene()
}

// Scene converts the document to a validated Scene.
func (f File) Scene() (*Scene, error) {
	s := &Scene{
		ID:          uuid.New().String(),
		Name:        f.Name,
		Subject:     f.Subject,
		TimeHorizon: f.TimeHorizon,
		Steered:     make(map[string]bool),
	}

	for _, spec := range f.Agents {
		a := entity.NewAgent(spec.Position.toR2(), spec.Velocity.toR2(), spec.Radius).
			WithConfidence(spec.Confidence)
		if spec.MaxSpeed != nil || spec.Target != nil {
			maxSpeed, target := a.MaxSpeed, a.Target
			if spec.MaxSpeed != nil {
				maxSpeed = *spec.MaxSpeed
			}
			if spec.Target != nil {
				target = spec.Target.toR2()
			}
			a = a.WithInnerState(maxSpeed, target)
		}
		id := spec.ID
		if id == "" {
			id = uuid.New().String()
		}
		if spec.MaxSpeed != nil || spec.Target != nil {
			s.Steered[id] = true
		}
		s.Agents = append(s.Agents, a.WithID(id))
	}

	if f.Bounds != nil {
		if f.Bounds.Width <= 0 || f.Bounds.Height <= 0 {
			return nil, fmt.Errorf("%w: bounds must be positive, got %gx%g", ErrInvalidScene, f.Bounds.Width, f.Bounds.Height)
		}
		s.Obstacles = append(s.Obstacles, entity.BoundingObstacles(f.Bounds.Width, f.Bounds.Height, f.Bounds.Radius)...)
	}
	for _, o := range f.Obstacles {
		s.Obstacles = append(s.Obstacles, entity.Obstacle{Start: o.Start.toR2(), End: o.End.toR2(), Radius: o.Radius})
	}

	if s.Subject == "" && len(s.Agents) > 0 {
		s.Subject = s.Agents[0].ID
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// File converts the scene back to its document form. Bounds are emitted as
// plain obstacles.
func (s *Scene) File() File {
	f := File{
		Name:        s.Name,
		Subject:     s.Subject,
		TimeHorizon: s.TimeHorizon,
		Agents:      make([]AgentSpec, 0, len(s.Agents)),
	}
	for _, a := range s.Agents {
		spec := AgentSpec{
			ID:         a.ID,
			Position:   vecOf(a.Position),
			Velocity:   vecOf(a.Velocity),
			Radius:     a.Radius,
			Confidence: a.Confidence,
		}
		if s.Steered[a.ID] {
			maxSpeed, target := a.MaxSpeed, vecOf(a.Target)
			spec.MaxSpeed, spec.Target = &maxSpeed, &target
		}
		f.Agents = append(f.Agents, spec)
	}
	for _, o := range s.Obstacles {
		f.Obstacles = append(f.Obstacles, ObstacleSpec{Start: vecOf(o.Start), End: vecOf(o.End), Radius: o.Radius})
	}
	return f
}

// Save writes the scene as indented JSON.
func (s *Scene) Save(fsys fsutil.FileSystem, path string) error {
	data, err := json.MarshalIndent(s.File(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode scene: %w", err)
	}
	if err := fsys.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write scene file: %w", err)
	}
	return nil
}

// Validate checks agent and obstacle parameters, agent ID uniqueness and
// that the subject names an agent.
func (s *Scene) Validate() error {
	if len(s.Agents) == 0 {
		return fmt.Errorf("%w: no agents", ErrInvalidScene)
	}
	if s.TimeHorizon < 0 {
		return fmt.Errorf("%w: time horizon must be non-negative, got %f", ErrInvalidScene, s.TimeHorizon)
	}
	seen := make(map[string]bool, len(s.Agents))
	for i, a := range s.Agents {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("%w: agent %d: %w", ErrInvalidScene, i, err)
		}
		if seen[a.ID] {
			return fmt.Errorf("%w: duplicate agent id %q", ErrInvalidScene, a.ID)
		}
		seen[a.ID] = true
	}
	for i, o := range s.Obstacles {
		if err := o.Validate(); err != nil {
			return fmt.Errorf("%w: obstacle %d: %w", ErrInvalidScene, i, err)
		}
	}
	if _, err := s.SubjectIndex(); err != nil {
		return err
	}
	return nil
}

// SubjectIndex returns the index of the subject agent.
func (s *Scene) SubjectIndex() (int, error) {
	for i, a := range s.Agents {
		if a.ID == s.Subject {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: subject %q not found", ErrInvalidScene, s.Subject)
}

// Neighbors returns every agent except the one at index i.
func (s *Scene) Neighbors(i int) []entity.Agent {
	out := make([]entity.Agent, 0, len(s.Agents))
	out = append(out, s.Agents[:i]...)
	return append(out, s.Agents[i+1:]...)
}

// Clone returns a deep copy with the same ID.
func (s *Scene) Clone() *Scene {
	c := *s
	c.Agents = append([]entity.Agent(nil), s.Agents...)
	c.Obstacles = append([]entity.Obstacle(nil), s.Obstacles...)
	c.Steered = make(map[string]bool, len(s.Steered))
	for id, ok := range s.Steered {
		c.Steered[id] = ok
	}
	return &c
}
