package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/taigrr/wireframe/pkg/render"
	"github.com/taigrr/wireframe/pkg/scene"
)

const (
	moveStep  = 0.25 // world units per key press
	turnStep  = 0.1  // radians per arrow press
	orbitStep = 0.2  // radians per H/L press
	dragScale = 0.03 // radians per cell dragged
)

type viewOptions struct {
	fps int
}

func newViewCmd(opts *options) *cobra.Command {
	vo := &viewOptions{}
	cmd := &cobra.Command{
		Use:   "view [scene.json]",
		Short: "View a scene interactively in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// stderr belongs to the alt screen; only log to a file here
			closeLog, err := opts.setupLogging(nil)
			if err != nil {
				return err
			}
			defer closeLog()

			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runView(cmd.Context(), path, opts, vo)
		},
	}
	cmd.Flags().IntVar(&vo.fps, "fps", 60, "Target FPS")
	return cmd
}

// viewer is the state of an interactive session. It is owned by the frame
// loop goroutine.
type viewer struct {
	opts  *options
	path  string
	scene *scene.Scene
	orbit *Orbit

	term *uv.Terminal
	out  *render.TerminalRenderer
	fb   *render.Framebuffer

	bg, fg    render.Color
	baseClip  render.Clip
	paused    bool
	showHUD   bool
	status    string
	mouseDown bool
	lastX     int

	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

func runView(ctx context.Context, path string, opts *options, vo *viewOptions) error {
	bg, fg, err := opts.colors()
	if err != nil {
		return err
	}
	if vo.fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", vo.fps)
	}

	sc, err := opts.loadScene(path)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1002h") // Button-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode

	v := &viewer{
		opts:     opts,
		path:     path,
		scene:    sc,
		orbit:    NewOrbit(vo.fps),
		term:     term,
		bg:       bg,
		fg:       fg,
		baseClip: sc.Camera().Clip,
		fpsTime:  time.Now(),
	}
	defer v.cleanup()

	if err := v.resize(width, height); err != nil {
		return err
	}
	return v.loop(ctx, vo.fps)
}

func (v *viewer) cleanup() {
	fmt.Fprint(os.Stdout, "\x1b[?1002l")
	fmt.Fprint(os.Stdout, "\x1b[?1006l")
	v.term.ExitAltScreen()
	v.term.ShowCursor()
	_ = v.term.Shutdown(context.Background())
}

// resize rebuilds the framebuffer for a width×height cell area and widens
// the camera window to the new aspect ratio so the picture is not stretched.
func (v *viewer) resize(width, height int) error {
	if err := v.term.Resize(width, height); err != nil {
		return fmt.Errorf("resize: %w", err)
	}
	v.term.Erase()
	v.out = render.NewTerminalRenderer(v.term, width, height)
	fbw, fbh := v.out.FramebufferSize()
	if v.fb == nil {
		v.fb = render.NewFramebuffer(fbw, fbh)
	} else {
		v.fb.Resize(fbw, fbh)
	}
	v.scene.SetViewport(fbw, fbh)

	if fbh == 0 {
		return nil
	}
	aspect := float64(fbw) / float64(fbh)
	cam := v.scene.Camera()
	cam.Clip = v.baseClip
	mid := (cam.Clip.UMin + cam.Clip.UMax) / 2
	half := (cam.Clip.VMax - cam.Clip.VMin) / 2 * aspect
	cam.Clip.UMin, cam.Clip.UMax = mid-half, mid+half
	if err := v.scene.SetCamera(cam); err != nil {
		render.Logger().Warn("keeping camera window", slog.Any("err", err))
	}
	return nil
}

func (v *viewer) loop(ctx context.Context, fps int) error {
	targetDuration := time.Second / time.Duration(fps)
	lastFrame := time.Now()
	events := v.term.Events()

	for {
		// Drain pending input before drawing.
	drain:
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev := <-events:
				quit, err := v.handle(ev)
				if err != nil {
					return err
				}
				if quit {
					return nil
				}
			default:
				break drain
			}
		}

		now := time.Now()
		dt := now.Sub(lastFrame)
		lastFrame = now
		if dt > 100*time.Millisecond {
			dt = 100 * time.Millisecond
		}

		if !v.orbit.Settled() {
			if err := v.scene.RotateCameraAboutTarget(v.orbit.Step()); err != nil {
				v.status = err.Error()
			}
		}

		var frame render.Frame
		var err error
		if v.paused {
			frame, err = v.scene.Render()
		} else {
			frame, err = v.scene.Advance(float64(dt) / float64(time.Millisecond))
		}
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}

		v.fb.Clear(v.bg)
		v.fb.DrawFrame(frame, v.fg)
		v.updateFPS()
		if v.showHUD || v.status != "" {
			v.fb.Caption(v.hud(frame), render.ColorWhite)
		}

		v.out.Render(v.fb)
		if err := v.out.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}

		if elapsed := time.Since(now); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// handle applies one input event. It reports true when the viewer should
// exit.
func (v *viewer) handle(ev uv.Event) (bool, error) {
	var err error
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		return false, v.resize(ev.Width, ev.Height)

	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("escape", "ctrl+c"):
			return true, nil
		case ev.MatchString("w"):
			err = v.scene.MoveCamera(0, 0, -moveStep)
		case ev.MatchString("s"):
			err = v.scene.MoveCamera(0, 0, moveStep)
		case ev.MatchString("a"):
			err = v.scene.MoveCamera(-moveStep, 0, 0)
		case ev.MatchString("d"):
			err = v.scene.MoveCamera(moveStep, 0, 0)
		case ev.MatchString("q"):
			err = v.scene.MoveCamera(0, moveStep, 0)
		case ev.MatchString("e"):
			err = v.scene.MoveCamera(0, -moveStep, 0)
		case ev.MatchString("left"):
			err = v.scene.TurnCamera(turnStep)
		case ev.MatchString("right"):
			err = v.scene.TurnCamera(-turnStep)
		case ev.MatchString("h"):
			v.orbit.Nudge(-orbitStep)
		case ev.MatchString("l"):
			v.orbit.Nudge(orbitStep)
		case ev.MatchString("space"):
			v.paused = !v.paused
		case ev.MatchString("r"):
			v.reload()
		case ev.MatchString("?"), ev.MatchString("shift+/"):
			v.showHUD = !v.showHUD
		}

	case uv.MouseClickEvent:
		v.mouseDown = true
		v.lastX = ev.X

	case uv.MouseReleaseEvent:
		v.mouseDown = false

	case uv.MouseMotionEvent:
		if v.mouseDown {
			v.orbit.Nudge(-float64(ev.X-v.lastX) * dragScale)
			v.lastX = ev.X
		}
	}

	if err != nil {
		v.status = err.Error()
	} else if _, ok := ev.(uv.KeyPressEvent); ok {
		v.status = ""
	}
	return false, nil
}

// reload replaces the scene with a fresh copy of its file. On failure the
// current scene stays and the error is shown.
func (v *viewer) reload() {
	next, err := v.opts.loadScene(v.path)
	if err != nil {
		v.status = err.Error()
		render.Logger().Warn("reload failed", slog.String("path", v.path), slog.Any("err", err))
		return
	}
	v.scene.Replace(next)
	v.baseClip = next.Camera().Clip
	w, h := v.out.FramebufferSize()
	if err := v.resize(w, h/2); err != nil {
		v.status = err.Error()
	}
}

// updateFPS updates the FPS counter (call once per frame)
func (v *viewer) updateFPS() {
	v.fpsFrames++
	elapsed := time.Since(v.fpsTime)
	if elapsed >= time.Second {
		v.fps = float64(v.fpsFrames) / elapsed.Seconds()
		v.fpsFrames = 0
		v.fpsTime = time.Now()
	}
}

func (v *viewer) hud(f render.Frame) string {
	name := "demo"
	if v.path != "" {
		name = filepath.Base(v.path)
	}
	text := fmt.Sprintf("%s  %.0f FPS\n%s", name, v.fps, statsLine(v.scene, f))
	if v.paused {
		text += "\npaused"
	}
	if v.status != "" {
		text += "\n" + v.status
	}
	return text
}
