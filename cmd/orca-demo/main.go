// Command orca-demo solves an ORCA scene and optionally steps it forward,
// writing the tracks as PNG and HTML charts.
//
// With no -scene it runs the built-in deadlock scene once and prints the
// subject's new velocity.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/orca/internal/config"
	"github.com/banshee-data/orca/internal/fsutil"
	"github.com/banshee-data/orca/internal/halfplane"
	"github.com/banshee-data/orca/internal/orca"
	"github.com/banshee-data/orca/internal/scene"
	"github.com/banshee-data/orca/internal/scenechart"
	"github.com/banshee-data/orca/internal/security"
	"github.com/banshee-data/orca/internal/timeutil"
	"github.com/banshee-data/orca/internal/units"
	"github.com/banshee-data/orca/internal/version"
)

var (
	scenePath   = flag.String("scene", "", "Scene JSON file (default: built-in deadlock scene)")
	configPath  = flag.String("config", "", "Solver config JSON file (default: built-in defaults)")
	steps       = flag.Int("steps", 1, "Number of simulation steps")
	dt          = flag.Float64("dt", 0.1, "Step length in seconds")
	outDir      = flag.String("out", ".", "Directory for chart and final scene output")
	writePNG    = flag.Bool("png", false, "Write a PNG chart of the run")
	writeHTML   = flag.Bool("html", false, "Write an interactive HTML chart of the run")
	speedUnits  = flag.String("units", units.MPS, "Units for printed speeds: "+fmt.Sprint(units.ValidUnits))
	verbose     = flag.Bool("verbose", false, "Log solver diagnostics to stderr")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

// options holds the parsed flags so run can be driven from tests.
type options struct {
	ScenePath  string
	ConfigPath string
	Steps      int
	DT         float64
	OutDir     string
	PNG        bool
	HTML       bool
	Units      string
	Verbose    bool
	Clock      timeutil.Clock
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := options{
		ScenePath:  *scenePath,
		ConfigPath: *configPath,
		Steps:      *steps,
		DT:         *dt,
		OutDir:     *outDir,
		PNG:        *writePNG,
		HTML:       *writeHTML,
		Units:      *speedUnits,
		Verbose:    *verbose,
		Clock:      timeutil.RealClock{},
	}
	if err := run(ctx, fsutil.OSFileSystem{}, opts, os.Stdout, os.Stderr); err != nil {
		log.Fatalf("orca-demo: %v", err)
	}
}

func run(ctx context.Context, fsys fsutil.FileSystem, o options, stdout, stderr io.Writer) error {
	if o.Units == "" {
		o.Units = units.MPS
	}
	if err := units.Validate(o.Units); err != nil {
		return err
	}
	if o.Clock == nil {
		o.Clock = timeutil.RealClock{}
	}

	if o.Verbose {
		orca.SetLogWriters(orca.LogWriters{Ops: stderr, Diag: stderr, Trace: stderr})
		halfplane.SetDebugLogger(stderr)
		defer func() {
			orca.SetLogWriters(orca.LogWriters{})
			halfplane.SetDebugLogger(nil)
		}()
	}

	cfg := config.EmptySolverConfig()
	if o.ConfigPath != "" {
		var err error
		if cfg, err = config.LoadSolverConfig(o.ConfigPath); err != nil {
			return err
		}
	}
	solver, err := orca.New(cfg.OrcaConfig())
	if err != nil {
		return fmt.Errorf("invalid solver config: %w", err)
	}

	s := scene.Deadlock()
	if o.ScenePath != "" {
		if s, err = scene.Load(fsys, o.ScenePath); err != nil {
			return err
		}
	}

	start := o.Clock.Now()
	r, err := scene.Simulate(ctx, solver, s, o.Steps, o.DT)
	if err != nil {
		return err
	}
	elapsed := o.Clock.Since(start)

	first, err := r.SubjectResult(0)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "scene %s (%s) run %s\n", displayName(s), s.ID, r.ID)
	fmt.Fprintf(stdout, "subject %s velocity (%.6f, %.6f) speed %s feasible=%t relaxations=%d\n",
		s.Subject, first.Velocity.X, first.Velocity.Y, units.FormatSpeed(r2.Norm(first.Velocity), o.Units),
		first.Feasible, first.Relaxations)
	if o.Verbose {
		if err := printClusters(stdout, s, first); err != nil {
			return err
		}
	}
	if o.Steps > 1 {
		infeasible := 0
		for _, st := range r.Steps {
			infeasible += st.Infeasible
		}
		idx, _ := r.Final.SubjectIndex()
		final := r.Final.Agents[idx]
		fmt.Fprintf(stdout, "after %d steps: subject at (%.4f, %.4f), %d infeasible solves\n",
			o.Steps, final.Position.X, final.Position.Y, infeasible)
	}
	fmt.Fprintf(stdout, "solved %d agents x %d steps in %s\n", len(s.Agents), o.Steps, elapsed.Round(time.Microsecond))

	if !o.PNG && !o.HTML && o.Steps <= 1 {
		return nil
	}
	return writeOutputs(fsys, o, r, solver.Config().TimeHorizon, stdout)
}

// printClusters lists the neighbours folded into cluster obstacles for the
// subject's first solve.
func printClusters(w io.Writer, s *scene.Scene, res orca.Result) error {
	idx, err := s.SubjectIndex()
	if err != nil {
		return err
	}
	for _, a := range scene.MergedAgents(s, idx, res) {
		if a.MergedIntoObstacle {
			fmt.Fprintf(w, "merged %s into a cluster obstacle\n", a.ID)
		}
	}
	for _, c := range res.ClusterObstacles {
		fmt.Fprintf(w, "cluster obstacle (%.4f, %.4f)-(%.4f, %.4f) radius %.3f\n",
			c.Start.X, c.Start.Y, c.End.X, c.End.Y, c.Radius)
	}
	return nil
}

// writeOutputs writes the final scene and the requested charts into o.OutDir.
func writeOutputs(fsys fsutil.FileSystem, o options, r *scene.Run, tau float64, stdout io.Writer) error {
	if err := fsys.MkdirAll(o.OutDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if r.Final.TimeHorizon > 0 {
		tau = r.Final.TimeHorizon
	}

	base := security.SanitizeFilename(displayName(r.Final))
	outputs := []struct {
		enabled bool
		name    string
		write   func(path string) error
	}{
		{o.Steps > 1, base + ".final.json", func(path string) error { return r.Final.Save(fsys, path) }},
		{o.PNG, base + ".png", func(path string) error {
			return scenechart.WritePNG(fsys, path, r.Final, r.Tracks, tau)
		}},
		{o.HTML, base + ".html", func(path string) error {
			return scenechart.WriteHTML(fsys, path, r.Final, r.Tracks)
		}},
	}

	var errs []error
	for _, out := range outputs {
		if !out.enabled {
			continue
		}
		path, err := security.OutputPath(o.OutDir, out.name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := out.write(path); err != nil {
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(stdout, "wrote %s\n", filepath.Base(path))
	}
	return errors.Join(errs...)
}

func displayName(s *scene.Scene) string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}
