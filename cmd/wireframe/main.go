// wireframe - Terminal 3D wireframe viewer
// Loads a JSON scene of cameras, primitives and glTF meshes and draws it
// as clipped perspective line art in the terminal or to an image file.
//
// Controls (view):
//
//	W/S         - Move forward/back
//	A/D         - Move left/right
//	Q/E         - Move up/down
//	Left/Right  - Turn the camera
//	H/L, drag   - Orbit around the target
//	Space       - Pause/resume animation
//	R           - Reload the scene file
//	?           - Toggle HUD overlay
//	Esc         - Quit
package main

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/wireframe/pkg/models"
	"github.com/taigrr/wireframe/pkg/render"
	"github.com/taigrr/wireframe/pkg/scene"
)

var version = "dev"

//go:embed demo.json
var demoScene []byte

type options struct {
	logLevel string
	logFile  string
	bg       string
	fg       string
	grid     float64
	axes     float64
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "wireframe",
		Short: "Terminal 3D wireframe viewer",
		Long: "wireframe draws JSON scenes of cubes, cylinders, spheres, cones, " +
			"explicit line sets and glTF meshes as perspective line art.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	root.PersistentFlags().StringVar(&opts.bg, "bg", rgbFlag(render.ColorSlate), "Background color (R,G,B)")
	root.PersistentFlags().StringVar(&opts.fg, "fg", rgbFlag(render.ColorGreen), "Line color (R,G,B)")
	root.PersistentFlags().Float64Var(&opts.grid, "grid", 0, "Add a floor grid this many units wide")
	root.PersistentFlags().Float64Var(&opts.axes, "axes", 0, "Add coordinate axes this many units long")

	root.AddCommand(newViewCmd(opts), newRenderCmd(opts))
	return root
}

// setupLogging installs a text logger for the render and scene packages.
// Without a file, logs go to fallback; nil leaves logging off.
func (o *options) setupLogging(fallback io.Writer) (func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	w := fallback
	closeFn := func() {}
	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}
	if w == nil {
		render.SetLogger(nil)
		return closeFn, nil
	}

	render.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return closeFn, nil
}

// rgbFlag formats c the way ParseRGB reads it.
func rgbFlag(c render.Color) string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

// colors parses the background and line colors.
func (o *options) colors() (bg, fg render.Color, err error) {
	if bg, err = render.ParseRGB(o.bg); err != nil {
		return bg, fg, err
	}
	fg, err = render.ParseRGB(o.fg)
	return bg, fg, err
}

// loadScene loads path, or the built-in demo when path is empty, and adds
// the requested guides.
func (o *options) loadScene(path string) (*scene.Scene, error) {
	var sc *scene.Scene
	var err error
	if path == "" {
		sc, err = scene.Parse(demoScene)
	} else {
		sc, err = scene.Load(path)
	}
	if err != nil {
		return nil, err
	}

	if o.grid > 0 {
		g, err := models.Grid(-1.5, o.grid, o.grid/10)
		if err != nil {
			return nil, err
		}
		if _, err := sc.Add(g); err != nil {
			return nil, err
		}
	}
	if o.axes > 0 {
		a, err := models.Axes(o.axes)
		if err != nil {
			return nil, err
		}
		if _, err := sc.Add(a); err != nil {
			return nil, err
		}
	}
	return sc, nil
}
