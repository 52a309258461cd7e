package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/san-kum/forcebox/internal/config"
	"github.com/san-kum/forcebox/internal/dynamo"
	"github.com/san-kum/forcebox/internal/experiment"
	"github.com/san-kum/forcebox/internal/export"
	"github.com/san-kum/forcebox/internal/gui"
	"github.com/san-kum/forcebox/internal/logging"
	"github.com/san-kum/forcebox/internal/metrics"
	"github.com/san-kum/forcebox/internal/sim"
	"github.com/san-kum/forcebox/internal/storage"
	"github.com/san-kum/forcebox/internal/store"
	"github.com/san-kum/forcebox/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	prof       bool

	dt        float64
	duration  float64
	scale     int
	screenSVG bool
	svgWidth  int
	svgHeight int
	forceIdx  int
	param     string
	values    []float64

	logger   *log.Logger
	profiler interface{ Stop() }
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "forcebox [preset]",
		Short:             "keyboard driven 2d force sandbox",
		SilenceUsage:      true,
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: setup,
		RunE: runWindow,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".forcebox", "data directory")
	pf.StringVar(&configFile, "config", "", "scene config file (yaml or hjson)")
	pf.StringVar(&preset, "preset", "", "use a built-in scene")
	pf.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	pf.BoolVar(&prof, "prof", false, "write a cpu profile to the data directory")

	windowCmd := &cobra.Command{
		Use:   "window [preset]",
		Short: "open the scene in a raylib window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWindow,
	}
	rootCmd.Flags().IntVar(&scale, "scale", 4, "window pixels per screen unit")
	windowCmd.Flags().IntVar(&scale, "scale", 4, "window pixels per screen unit")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "drive the scene in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", 0, "fixed timestep (0 steps by wall clock)")

	menuCmd := &cobra.Command{
		Use:   "menu",
		Short: "pick a built-in scene in the terminal",
		RunE:  runMenu,
	}

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run the scene headless with its script and save the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0, "override timestep")
	runCmd.Flags().Float64Var(&duration, "time", 0, "override duration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot body speeds of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id] [file]",
		Short: "export a saved run to JSON",
		Args:  cobra.ExactArgs(2),
		RunE:  exportJSON,
	}

	exportSQLiteCmd := &cobra.Command{
		Use:   "export-sqlite [run_id] [file]",
		Short: "export a saved run to a new SQLite database",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSQLite,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [file]",
		Short: "draw the body paths of a saved run as SVG",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().BoolVar(&screenSVG, "screen", false, "draw wrapped screen coordinates")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", config.DefaultWidth, "screen width for --screen")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", config.DefaultHeight, "screen height for --screen")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "run the scene once per value of a force parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&forceIdx, "force", 0, "index into the scene's forces")
	sweepCmd.Flags().StringVar(&param, "param", "value", "parameter to vary")
	sweepCmd.Flags().Float64SliceVar(&values, "values", nil, "parameter values")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenes",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Printf("  %-10s %s\n", name, describe(config.GetPreset(name)))
			}
			return nil
		},
	}

	rootCmd.AddCommand(windowCmd, liveCmd, menuCmd, runCmd, listCmd, plotCmd,
		exportJSONCmd, exportSQLiteCmd, exportSVGCmd, sweepCmd, presetsCmd)

	if err := execute(rootCmd); err != nil {
		os.Exit(1)
	}
}

// execute runs the command tree and stops the profiler whether or not the
// command failed.
func execute(root *cobra.Command) error {
	defer func() {
		if profiler != nil {
			profiler.Stop()
			profiler = nil
		}
	}()
	return root.Execute()
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	logger, err = logging.New(os.Stderr, logLevel)
	if err != nil {
		return err
	}
	if prof {
		profiler = profile.Start(profile.ProfilePath(dataDir), profile.NoShutdownHook, profile.Quiet)
	}
	return nil
}

// logToFile moves logging off the terminal while a TUI owns it.
func logToFile() (func(), error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	f, err := tea.LogToFile(filepath.Join(dataDir, "forcebox.log"), "")
	if err != nil {
		return nil, err
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		f.Close()
	}, nil
}

// loadConfig picks --config over --preset (or a preset argument) over the
// default scene.
func loadConfig(args []string) (*config.Config, error) {
	if len(args) == 1 && preset == "" {
		preset = args[0]
	}
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded config", "path", configFile, "scene", cfg.Name)
		return cfg, nil
	}
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		return cfg, nil
	}
	return config.DefaultConfig(), nil
}

func builder(cfg *config.Config, reg *experiment.Registry) func() (*experiment.Scene, error) {
	return func() (*experiment.Scene, error) {
		return experiment.Build(cfg.Clone(), reg, nil)
	}
}

func describe(cfg *config.Config) string {
	kinds := make([]string, len(cfg.Forces))
	for i, f := range cfg.Forces {
		kinds[i] = f.Kind
	}
	return fmt.Sprintf("%d bodies, %d routers, forces [%s]", len(cfg.Bodies), len(cfg.Controls), strings.Join(kinds, " "))
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	logger.Info("opening window", "scene", cfg.Name, "scale", scale)
	return gui.Run(builder(cfg, experiment.NewRegistry()), scale)
}

func liveOptions(cfg *config.Config) viz.Options {
	return viz.Options{
		Dt:         dt,
		HoldWindow: time.Duration(cfg.HoldWindow * float64(time.Second)),
		FPS:        cfg.Screen.FPS,
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	m, err := viz.NewModel(builder(cfg, experiment.NewRegistry()), liveOptions(cfg))
	if err != nil {
		return err
	}
	restore, err := logToFile()
	if err != nil {
		return err
	}
	defer restore()
	logger.Info("live", "scene", cfg.Name, "buttons", m.Scene().Buttons())
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func runMenu(cmd *cobra.Command, args []string) error {
	reg := experiment.NewRegistry()
	names := config.ListPresets()
	info := make(map[string]string, len(names))
	for _, name := range names {
		info[name] = describe(config.GetPreset(name))
	}

	launch := func(name string) (viz.Model, error) {
		cfg := config.GetPreset(name)
		if cfg == nil {
			return viz.Model{}, fmt.Errorf("unknown preset: %s", name)
		}
		logger.Info("launch", "scene", name)
		return viz.NewModel(builder(cfg, reg), liveOptions(cfg))
	}

	restore, err := logToFile()
	if err != nil {
		return err
	}
	defer restore()
	_, err = tea.NewProgram(viz.NewMenu(names, info, launch), tea.WithAltScreen()).Run()
	return err
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}

	exp, err := experiment.New(cfg, experiment.NewRegistry())
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	simCfg := exp.SimConfig()
	logger.Info("running", "scene", cfg.Name, "dt", simCfg.Dt, "duration", simCfg.Duration)
	start := time.Now()
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	for _, e := range result.Errors {
		logger.Warn("step rejected", "err", e)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(cfg.Name, simCfg.Dt, simCfg.Duration, result)
	if err != nil {
		return err
	}

	logger.Info("run saved", "id", id, "steps", result.StepsTaken, "elapsed", time.Since(start).Round(time.Millisecond))
	keys := make([]string, 0, len(result.Metrics))
	for k := range result.Metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		logger.Info("metric", "name", k, "value", result.Metrics[k])
	}
	fmt.Println(id)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tDURATION\tDT\tSTEPS\tBODIES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Steps,
			len(run.Masses),
		)
	}
	return w.Flush()
}

// loadResult rebuilds a result from a saved run. Force details are not
// stored, so acted descriptors carry names only.
func loadResult(runID string) (*storage.RunMetadata, *sim.Result, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, acted, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(frames) == 0 {
		return nil, nil, fmt.Errorf("run %s has no frames", runID)
	}

	result := &sim.Result{
		Frames:     frames,
		Times:      make([]float64, len(frames)),
		Acted:      make([][]dynamo.ForceDescriptor, len(frames)),
		Metrics:    meta.Metrics,
		StepsTaken: meta.Steps,
	}
	for i, f := range frames {
		result.Times[i] = f.Time
		for _, name := range acted[i] {
			result.Acted[i] = append(result.Acted[i], dynamo.ForceDescriptor{Name: name})
		}
	}
	return meta, result, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadResult(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d\n\n", len(result.Frames))

	for body := 0; body < result.Frames[0].Len(); body++ {
		data := make([]float64, len(result.Frames))
		for i, f := range result.Frames {
			data[i] = metrics.Speeds(f)[body]
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("body %d speed", body)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	if err := store.ExportJSON(args[1], meta.Scene, meta.Dt, meta.Duration, result); err != nil {
		return err
	}
	logger.Info("exported", "run", meta.ID, "path", args[1])
	return nil
}

func exportSQLite(cmd *cobra.Command, args []string) error {
	meta, result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	if err := store.ExportSQLite(args[1], meta.Scene, meta.Dt, meta.Duration, result); err != nil {
		return err
	}
	logger.Info("exported", "run", meta.ID, "path", args[1])
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, result, err := loadResult(args[0])
	if err != nil {
		return err
	}

	tracks := export.TracksFromFrames(result.Frames, nil)
	var svg string
	if screenSVG {
		svg = export.ScreenToSVG(tracks, svgWidth, svgHeight, 4)
	} else {
		svg = export.TrajectoryToSVG(tracks, 800, 600)
	}
	if err := os.WriteFile(args[1], []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("exported", "run", meta.ID, "path", args[1], "tracks", len(tracks))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	if len(values) == 0 {
		return fmt.Errorf("--values is required")
	}
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logger.Info("sweeping", "scene", cfg.Name, "force", forceIdx, "param", param, "runs", len(values))
	results, err := experiment.Sweep(ctx, cfg, experiment.NewRegistry(), forceIdx, param, values)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tKINETIC\tPEAK SPEED\tPATH\tREST\n", strings.ToUpper(param))
	for i, r := range results {
		fmt.Fprintf(w, "%.4g\t%.3f\t%.3f\t%.3f\t%.2f\n",
			values[i],
			r.Metrics["kinetic_energy"],
			r.Metrics["peak_speed"],
			r.Metrics["path_length"],
			r.Metrics["rest_fraction"],
		)
	}
	return w.Flush()
}
