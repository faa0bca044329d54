// Command plasmademo renders the two plasma cubes headlessly and saves the
// last frame.
//
// Usage:
//
//	plasmademo -frames 120 -output plasma.png
//	plasmademo -backend vulkan -config plasma.yaml -fps 60 -v
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/gogpu/plasma"
	"github.com/gogpu/plasma/backend/wgpu"
	"github.com/gogpu/plasma/scene"
)

type demo struct {
	width    int
	height   int
	frames   int
	fps      int
	inFlight int
	samples  uint
	backend  string
	config   string
	output   string
	verbose  bool
	quiet    bool
}

func (d *demo) parse(args []string) error {
	fs := flag.NewFlagSet("plasmademo", flag.ContinueOnError)
	fs.IntVar(&d.width, "width", 640, "target width")
	fs.IntVar(&d.height, "height", 480, "target height")
	fs.IntVar(&d.frames, "frames", 120, "number of frames to render")
	fs.IntVar(&d.fps, "fps", 0, "frame rate limit, 0 renders as fast as possible")
	fs.IntVar(&d.inFlight, "inflight", 0, "uniform ring slots, 0 keeps the configured value")
	fs.UintVar(&d.samples, "samples", wgpu.DefaultSampleCount, "MSAA sample count, 1 or 4")
	fs.StringVar(&d.backend, "backend", "noop", "GPU backend: noop or vulkan")
	fs.StringVar(&d.config, "config", "", "YAML or TOML config file")
	fs.StringVar(&d.output, "output", "plasma.png", "snapshot file (.png or .bmp), empty to skip")
	fs.BoolVar(&d.verbose, "v", false, "debug logging")
	fs.BoolVar(&d.quiet, "q", false, "no progress bar")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if d.frames < 0 || d.fps < 0 || d.inFlight < 0 {
		return errors.New("frames, fps and inflight must not be negative")
	}
	return nil
}

func (d *demo) loadConfig() (plasma.Config, error) {
	cfg := plasma.DefaultConfig()
	if d.config != "" {
		var err error
		if cfg, err = plasma.LoadConfig(d.config); err != nil {
			return cfg, err
		}
	}
	if d.inFlight > 0 {
		cfg.InFlight = d.inFlight
	}
	return cfg, cfg.Validate()
}

func (d *demo) openGPU() (*wgpu.Renderer, error) {
	opts := []wgpu.Option{wgpu.WithSampleCount(uint32(d.samples))}
	switch d.backend {
	case "noop":
		return wgpu.NewNoop(d.width, d.height, opts...)
	case "vulkan":
		return wgpu.NewStandalone(d.width, d.height, opts...)
	default:
		return nil, fmt.Errorf("unknown backend %q", d.backend)
	}
}

func (d *demo) run(ctx context.Context, stderr io.Writer) error {
	level := slog.LevelInfo
	if d.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	plasma.SetLogger(logger)

	cfg, err := d.loadConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	gpu, err := d.openGPU()
	if err != nil {
		return fmt.Errorf("open GPU: %w", err)
	}
	defer gpu.Close()
	logger.Info("plasmademo: device opened", "gpu", gpu.Info().String())

	r, err := plasma.New(gpu, cfg)
	if err != nil {
		return err
	}
	r.Reshape(d.width, d.height, scene.OrientationFor(d.width, d.height))

	start := time.Now()
	renderErr := d.loop(ctx, r, stderr)

	// Drain even after a failed frame so the GPU is idle before Close.
	closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.Close(closeCtx); err != nil {
		return errors.Join(renderErr, err)
	}
	if renderErr != nil {
		return renderErr
	}

	st := r.Stats()
	elapsed := time.Since(start)
	logger.Info("plasmademo: done",
		"frames", st.Frames,
		"skipped", st.Skipped,
		"elapsed", elapsed.Round(time.Millisecond),
		"fps", float64(st.Frames)/elapsed.Seconds())

	if d.output == "" || st.Frames == 0 {
		return nil
	}
	img, err := gpu.Snapshot()
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := saveImage(d.output, img); err != nil {
		return err
	}
	logger.Info("plasmademo: snapshot saved", "path", d.output)
	return nil
}

// loop renders d.frames frames, paced by a ticker when fps is set.
func (d *demo) loop(ctx context.Context, r *plasma.Renderer, stderr io.Writer) error {
	var tick <-chan time.Time
	if d.fps > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(d.fps))
		defer ticker.Stop()
		tick = ticker.C
	}

	var pb *progressbar.ProgressBar
	if !d.quiet {
		pb = progressbar.NewOptions(d.frames,
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("rendering"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("frames"),
		)
		defer pb.Close()
	}

	for i := 0; i < d.frames; i++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}
		r.Update()
		if err := r.Render(ctx); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if pb != nil {
			pb.Add(1)
		}
	}
	return nil
}

func main() {
	var d demo
	if err := d.parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "plasmademo: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := d.run(ctx, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "plasmademo: %v\n", err)
		stop()
		os.Exit(1)
	}
}
