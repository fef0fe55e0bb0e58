package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/billiards/internal/automation"
	"github.com/san-kum/billiards/internal/config"
	"github.com/san-kum/billiards/internal/dynamo"
	"github.com/san-kum/billiards/internal/export"
	"github.com/san-kum/billiards/internal/metrics"
	"github.com/san-kum/billiards/internal/sim"
	"github.com/san-kum/billiards/internal/viz"
)

var (
	configFile string
	preset     string
	logLevel   string
	logFile    string

	// Table overrides, applied only when set on the command line.
	width       float64
	height      float64
	balls       int
	minRadius   float64
	maxRadius   float64
	friction    float64
	restitution float64
	pushForce   float64
	seed        int64
	fps         int

	runTicks   int
	benchTicks int
	svgTicks   int
	steer      string
	steerTicks int
	jsonOut    bool
	runs       int
	seedStart  int64
	outFile    string
	trail      bool
	felt       string
	savePath   string
	themeName  string

	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	sweepTicks int
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newRootCmd registers the billiards commands. With no subcommand the preset
// menu opens in the terminal.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "billiards",
		Short:         "elastic billiard balls on a bounded table",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := tuiLogger()
			if err != nil {
				return err
			}
			defer closeLog()
			viz.SetTheme(themeName)
			return viz.RunInteractive(logger)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "classic", "preset configuration")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "log file for the terminal UI")
	pf.Float64Var(&width, "width", config.DefaultWidth, "surface width")
	pf.Float64Var(&height, "height", config.DefaultHeight, "surface height")
	pf.IntVar(&balls, "balls", config.DefaultBallCount, "number of balls")
	pf.Float64Var(&minRadius, "min-radius", config.DefaultMinRadius, "smallest ball radius")
	pf.Float64Var(&maxRadius, "max-radius", config.DefaultMaxRadius, "largest ball radius")
	pf.Float64Var(&friction, "friction", config.DefaultFriction, "per tick velocity multiplier")
	pf.Float64Var(&restitution, "restitution", config.DefaultRestitution, "wall restitution")
	pf.Float64Var(&pushForce, "push", config.DefaultPushForce, "steering speed")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frames per second for the live view")
	pf.StringVar(&themeName, "theme", viz.ThemeFelt.Name, "felt theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "play the table in the terminal",
		RunE:  runLive,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and report metrics",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&runTicks, "ticks", 600, "number of ticks")
	runCmd.Flags().StringVar(&steer, "steer", "", "steer ball 0 toward x,y")
	runCmd.Flags().IntVar(&steerTicks, "steer-ticks", 30, "ticks to hold the steering pointer")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as json")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run many seeds in parallel",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchTicks, "ticks", 600, "ticks per run")
	benchCmd.Flags().IntVar(&runs, "runs", 8, "number of seeds")
	benchCmd.Flags().Int64Var(&seedStart, "seed-start", 1, "first seed")

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "run and write the final frame as svg",
		RunE:  runSVG,
	}
	svgCmd.Flags().IntVar(&svgTicks, "ticks", 600, "number of ticks")
	svgCmd.Flags().StringVarP(&outFile, "output", "o", "table.svg", "output file")
	svgCmd.Flags().BoolVar(&trail, "trail", false, "draw each ball's path")
	svgCmd.Flags().StringVar(&felt, "felt", export.DefaultFelt, "table color")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		RunE:  showConfig,
	}
	configCmd.Flags().StringVar(&savePath, "save", "", "also write it to this file")

	scriptCmd := &cobra.Command{
		Use:   "script [file]",
		Short: "replay a yaml pointer script",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter over a fixed rack",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "friction", "parameter ("+strings.Join(automation.SweepParams(), ", ")+")")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.95, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1.0, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 6, "number of values")
	sweepCmd.Flags().IntVar(&sweepTicks, "ticks", 300, "ticks per run")

	rootCmd.AddCommand(liveCmd, runCmd, benchCmd, svgCmd, presetsCmd, configCmd, scriptCmd, sweepCmd)
	return rootCmd
}

// loadConfig resolves the table configuration: preset, then config file,
// then any flag set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.GetPreset(preset)
	if err != nil {
		return nil, err
	}
	if configFile != "" {
		if err := config.Overlay(cfg, configFile); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("balls") {
		cfg.BallCount = balls
	}
	if flags.Changed("min-radius") {
		cfg.MinRadius = minRadius
	}
	if flags.Changed("max-radius") {
		cfg.MaxRadius = maxRadius
	}
	if flags.Changed("friction") {
		cfg.Friction = friction
	}
	if flags.Changed("restitution") {
		cfg.Restitution = restitution
	}
	if flags.Changed("push") {
		cfg.PushForce = pushForce
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}

	return cfg, cfg.Validate()
}

// count is an integer flag with its smallest accepted value.
type count struct {
	flag  string
	value int
	least int
}

// checkCounts rejects integer flags below their minimum before anything is
// allocated from them.
func checkCounts(counts ...count) error {
	for _, c := range counts {
		if c.value < c.least {
			return fmt.Errorf("%w: --%s must be at least %d, got %d", dynamo.ErrParameterBounds, c.flag, c.least, c.value)
		}
	}
	return nil
}

func newLogger(w io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "billiards",
		Level:           lvl,
	}), nil
}

// tuiLogger keeps log output off the alternate screen: it writes to
// --log-file when given and discards otherwise.
func tuiLogger() (*log.Logger, func(), error) {
	if logFile == "" {
		l, err := newLogger(io.Discard)
		return l, func() {}, err
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	l, err := newLogger(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return l, func() { f.Close() }, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := tuiLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	viz.SetTheme(themeName)
	logger.Info("starting live table", "preset", preset, "balls", cfg.BallCount)
	return viz.Run(cfg, logger)
}

// energyTrace records total kinetic energy after every tick.
type energyTrace struct {
	values []float64
}

func (e *energyTrace) OnTick(tick int, bodies []dynamo.Body) {
	e.values = append(e.values, metrics.Kinetic(bodies))
}

// steerScript holds the pointer on a target for a number of ticks, then
// releases it.
type steerScript struct {
	sim      *sim.Simulator
	target   dynamo.Vec2
	until    int
	released bool
}

func (s *steerScript) OnTick(tick int, bodies []dynamo.Body) {
	if s.released {
		return
	}
	if tick >= s.until {
		s.sim.PointerUp()
		s.released = true
		return
	}
	s.sim.PointerMove(s.target.X, s.target.Y)
}

func parsePoint(v string) (dynamo.Vec2, error) {
	parts := strings.Split(v, ",")
	if len(parts) != 2 {
		return dynamo.Vec2{}, fmt.Errorf("point %q: want x,y", v)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return dynamo.Vec2{}, fmt.Errorf("point %q: %w", v, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return dynamo.Vec2{}, fmt.Errorf("point %q: %w", v, err)
	}
	return dynamo.Vec2{X: x, Y: y}, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	if err := checkCounts(count{"ticks", runTicks, 0}, count{"steer-ticks", steerTicks, 0}); err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	s, err := sim.FromConfig(cfg)
	if err != nil {
		return err
	}
	s.SetLogger(logger)
	for _, m := range metrics.Defaults(cfg.Width, cfg.Height) {
		s.AddMetric(m)
	}
	trace := &energyTrace{values: make([]float64, 0, runTicks)}
	s.AddObserver(trace)

	if steer != "" {
		target, err := parsePoint(steer)
		if err != nil {
			return err
		}
		b := s.Table().Body(0)
		if b == nil {
			return fmt.Errorf("--steer needs at least one ball")
		}
		s.PointerDown(b.Pos.X, b.Pos.Y)
		s.PointerMove(target.X, target.Y)
		s.AddObserver(&steerScript{sim: s, target: target, until: steerTicks})
		logger.Info("steering", "ball", 0, "target", target, "ticks", steerTicks)
	}

	start := time.Now()
	result, err := s.Run(cmd.Context(), dynamo.Config{Ticks: runTicks, ValidateState: true})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Seed    int64              `json:"seed"`
			Ticks   int                `json:"ticks"`
			Metrics map[string]float64 `json:"metrics"`
			Final   []dynamo.Snapshot  `json:"final"`
		}{s.Seed(), result.Ticks, result.Metrics, result.Final})
	}

	fmt.Printf("seed: %d\n", s.Seed())
	fmt.Printf("ticks: %d (%v)\n\n", result.Ticks, elapsed.Round(time.Microsecond))

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.4f\n", name, result.Metrics[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(trace.values) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(trace.values,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("kinetic energy per tick"),
		))
	}

	if len(result.Errors) > 0 {
		return result.Errors[0]
	}
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	if err := checkCounts(count{"ticks", benchTicks, 0}, count{"runs", runs, 1}); err != nil {
		return err
	}
	if seedStart < 1 {
		return fmt.Errorf("%w: --seed-start must be at least 1, got %d", dynamo.ErrParameterBounds, seedStart)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ens := sim.NewEnsemble(cfg, runs, seedStart, func(c *config.Config) []dynamo.Metric {
		return metrics.Defaults(c.Width, c.Height)
	})

	fmt.Printf("benchmarking %d balls, %d runs of %d ticks\n\n", cfg.BallCount, runs, benchTicks)

	start := time.Now()
	results, err := ens.Run(cmd.Context(), dynamo.Config{Ticks: benchTicks, ValidateState: true})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tTICKS\tENERGY\tDECAY\tOVERLAP\tPENETRATION\tERRORS")
	total := 0
	for i, r := range results {
		total += r.Ticks
		fmt.Fprintf(w, "%d\t%d\t%.2f\t%.3f\t%.3f\t%.3f\t%d\n",
			seedStart+int64(i), r.Ticks,
			r.Metrics["energy"], r.Metrics["energy_decay"],
			r.Metrics["max_overlap"], r.Metrics["max_wall_penetration"],
			len(r.Errors))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d ticks in %v (%.0f ticks/sec)\n", total, elapsed.Round(time.Microsecond), float64(total)/elapsed.Seconds())
	return nil
}

func runSVG(cmd *cobra.Command, args []string) error {
	if err := checkCounts(count{"ticks", svgTicks, 0}); err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	s, err := sim.FromConfig(cfg)
	if err != nil {
		return err
	}
	s.SetLogger(logger)

	var trails [][]dynamo.Vec2
	if trail {
		trails = make([][]dynamo.Vec2, s.Table().Len())
	}
	err = s.RunWithCallback(cmd.Context(), svgTicks, func(tick int, bodies []dynamo.Body) bool {
		for i := range trails {
			trails[i] = append(trails[i], bodies[i].Pos)
		}
		return true
	})
	if err != nil {
		return err
	}
	for i, b := range s.Table().Bodies() {
		if i < len(trails) {
			trails[i] = append(trails[i], b.Pos)
		}
	}

	svg := export.SnapshotsToSVG(cfg.Width, cfg.Height, s.Snapshot(nil), trails, felt)
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("wrote frame", "file", outFile, "ticks", s.Ticks(), "seed", s.Seed())
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	s, err := sim.FromConfig(cfg)
	if err != nil {
		return err
	}
	s.SetLogger(logger)
	for _, m := range metrics.Defaults(cfg.Width, cfg.Height) {
		s.AddMetric(m)
	}

	logger.Info("playing scenario", "name", sc.Name, "events", len(sc.Events), "ticks", sc.Ticks)
	result, err := automation.Play(cmd.Context(), s, sc)
	if result == nil {
		return err
	}
	if err != nil {
		logger.Warn("scenario finished with errors", "err", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BALL\tX\tY\tRADIUS\tCOLOR")
	for i, b := range result.Final {
		fmt.Fprintf(w, "%d\t%.1f\t%.1f\t%.1f\t%s\n", i, b.X, b.Y, b.Radius, b.Color)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	if err := checkCounts(count{"ticks", sweepTicks, 0}, count{"steps", sweepSteps, 1}); err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	results, err := automation.RunSweep(cmd.Context(), cfg, &automation.ParameterSweep{
		Param: sweepParam,
		Min:   sweepMin,
		Max:   sweepMax,
		Steps: sweepSteps,
		Ticks: sweepTicks,
	})
	if err != nil {
		return err
	}

	fmt.Printf("sweeping %s over seed %d, %d ticks each\n\n", sweepParam, cfg.Seed, sweepTicks)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tSTART KE\tFINAL KE\tDECAY\tOVERLAP")
	decay := make([]float64, 0, len(results))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%.2f\t%.2f\t%.3f\t%.3f\n", r.Value, r.Steering, r.Final, r.EnergyDecay, r.MaxOverlap)
		decay = append(decay, r.EnergyDecay)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(decay) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(decay,
			asciigraph.Height(8),
			asciigraph.Caption("energy decay by "+sweepParam),
		))
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tBALLS\tRADIUS\tFRICTION\tPUSH")
	for _, name := range config.ListPresets() {
		cfg, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%g-%g\t%g\t%g\n", name, cfg.BallCount, cfg.MinRadius, cfg.MaxRadius, cfg.Friction, cfg.PushForce)
	}
	return w.Flush()
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))

	if savePath != "" {
		return config.Save(savePath, cfg)
	}
	return nil
}
