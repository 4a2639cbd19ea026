package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/fieldtrace/internal/config"
	"github.com/san-kum/fieldtrace/internal/export"
	"github.com/san-kum/fieldtrace/internal/gui"
	"github.com/san-kum/fieldtrace/internal/storage"
	"github.com/san-kum/fieldtrace/internal/trace"
	"github.com/san-kum/fieldtrace/internal/viz"
)

var (
	dataDir    string
	configFile string
	scene      string
	maxSteps   int
	resolution int
	workers    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fieldtrace",
		Short: "interactive 3d electric field line visualizer",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the GUI when no command given
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			gui.Run(cfg)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fieldtrace", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&scene, "scene", config.DefaultScene, "starting scene")
	rootCmd.PersistentFlags().IntVar(&maxSteps, "steps", config.DefaultMaxSteps, "trace step budget")
	rootCmd.PersistentFlags().IntVar(&resolution, "resolution", config.DefaultResolution, "seed density")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "trace workers (0 = NumCPU)")

	traceCmd := &cobra.Command{
		Use:   "trace [scene]",
		Short: "trace a scene headlessly and save the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  traceScene,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write run segments as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write run data as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "write a top-down SVG rendering to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "benchmark frame tracing",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScene,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "terminal live view",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return viz.Run(cfg)
		},
	}

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list built-in scenes",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListScenes() {
				charges := config.GetScene(name)
				fmt.Printf("  %-12s %d charges\n", name, len(charges))
			}
			return nil
		},
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "interactive 3d view",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			gui.Run(cfg)
			return nil
		},
	}

	rootCmd.AddCommand(traceCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, benchCmd, liveCmd, scenesCmd, guiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig merges defaults, the optional yaml file and CLI flags;
// flags win over the file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("scene") || cfg.Scene == "" {
		cfg.Scene = scene
	}
	if cmd.Flags().Changed("steps") {
		cfg.MaxSteps = maxSteps
	}
	if cmd.Flags().Changed("resolution") {
		cfg.Resolution = resolution
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}

	if config.GetScene(cfg.Scene) == nil {
		return nil, fmt.Errorf("unknown scene: %s (available: %v)", cfg.Scene, config.ListScenes())
	}
	return cfg, nil
}

func traceScene(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Scene = args[0]
		if config.GetScene(cfg.Scene) == nil {
			return fmt.Errorf("unknown scene: %s (available: %v)", cfg.Scene, config.ListScenes())
		}
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	charges := config.GetScene(cfg.Scene)
	fc := cfg.FrameConfig()
	o := trace.NewOrchestrator(fc)

	fmt.Printf("tracing %s...\n", cfg.Scene)
	start := time.Now()

	frame, err := o.FrameParallel(context.Background(), charges)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Scene, fc, len(charges), frame)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("traces: %d\n", frame.Stats.Traces)
	fmt.Printf("segments: %d\n", len(frame.Segments))
	fmt.Println("\nterminations:")
	for _, t := range []trace.Termination{trace.Absorbed, trace.Stalled, trace.Escaped, trace.Exhausted} {
		fmt.Printf("  %s: %d\n", t, frame.Stats.Count(t))
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tCHARGES\tTRACES\tSEGMENTS\tMEAN STEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.1f\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Charges,
			run.Traces,
			run.Segments,
			run.MeanSteps,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	segments, err := st.LoadSegments(runID)
	if err != nil {
		return err
	}
	if len(segments) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("segments: %d\n\n", len(segments))

	// Radial profile: distance from origin sampled along the segment
	// stream, so the overall line geometry shows up in the terminal.
	samples := 160
	if samples > len(segments) {
		samples = len(segments)
	}
	data := make([]float64, samples)
	for i := 0; i < samples; i++ {
		seg := segments[i*len(segments)/samples]
		mid := seg.Start.Add(seg.End).Scale(0.5)
		data[i] = mid.Length()
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("segment radius along trace order"),
	)
	fmt.Println(graph)
	fmt.Println()

	fmt.Println("terminations:")
	names := make([]string, 0, len(meta.Terminations))
	for name := range meta.Terminations {
		names = append(names, name)
	}
	sort.Strings(names)
	total := 0
	for _, name := range names {
		total += meta.Terminations[name]
	}
	for _, name := range names {
		count := meta.Terminations[name]
		pct := 0.0
		if total > 0 {
			pct = 100 * float64(count) / float64(total)
		}
		bar := ""
		for i := 0; i < int(math.Round(pct/4)); i++ {
			bar += "#"
		}
		fmt.Printf("  %-10s %5d  %5.1f%%  %s\n", name, count, pct, bar)
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	segments, err := st.LoadSegments(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"x1", "y1", "z1", "x2", "y2", "z2", "r", "g", "b", "a"}); err != nil {
		return err
	}
	for _, seg := range segments {
		row := []string{
			fmt.Sprintf("%.6f", seg.Start.X), fmt.Sprintf("%.6f", seg.Start.Y), fmt.Sprintf("%.6f", seg.Start.Z),
			fmt.Sprintf("%.6f", seg.End.X), fmt.Sprintf("%.6f", seg.End.Y), fmt.Sprintf("%.6f", seg.End.Z),
			strconv.Itoa(int(seg.Color.R)), strconv.Itoa(int(seg.Color.G)),
			strconv.Itoa(int(seg.Color.B)), strconv.Itoa(int(seg.Color.A)),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	segments, err := st.LoadSegments(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, segments)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	segments, err := st.LoadSegments(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, export.SegmentsToSVG(segments, 1200, 1200))
	return err
}

func benchScene(cmd *cobra.Command, args []string) error {
	name := config.DefaultScene
	if len(args) > 0 {
		name = args[0]
	}
	charges := config.GetScene(name)
	if charges == nil {
		return fmt.Errorf("unknown scene: %s (available: %v)", name, config.ListScenes())
	}

	resolutions := []int{1, 2, 3, 4}
	budgets := []int{500, 1500, 3000}

	fmt.Printf("benchmarking %s\n\n", name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RESOLUTION\tSTEPS\tTRACES\tSEGMENTS\tTIME\tTRACES/SEC")

	for _, res := range resolutions {
		for _, budget := range budgets {
			o := trace.NewOrchestrator(trace.FrameConfig{
				MaxSteps:   budget,
				Resolution: res,
				Palette:    trace.DefaultPalette(),
				Workers:    workers,
			})

			start := time.Now()
			frame, err := o.FrameParallel(context.Background(), charges)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			tracesPerSec := float64(frame.Stats.Traces) / elapsed.Seconds()
			fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%v\t%.0f\n",
				res, budget, frame.Stats.Traces, len(frame.Segments), elapsed.Round(time.Microsecond), tracesPerSec)
		}
	}

	return w.Flush()
}
