package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/taigrr/wireframe/pkg/render"
	"github.com/taigrr/wireframe/pkg/scene"
)

type renderOptions struct {
	out     string
	width   int
	height  int
	advance float64
	caption bool
}

func newRenderCmd(opts *options) *cobra.Command {
	ro := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render [scene.json]",
		Short: "Render a scene to a PNG or WebP image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			closeLog, err := opts.setupLogging(os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runRender(path, opts, ro)
		},
	}
	cmd.Flags().StringVarP(&ro.out, "output", "o", "wireframe.png", "Output file (.png or .webp)")
	cmd.Flags().IntVar(&ro.width, "width", 640, "Image width in pixels")
	cmd.Flags().IntVar(&ro.height, "height", 480, "Image height in pixels")
	cmd.Flags().Float64Var(&ro.advance, "advance", 0, "Advance animations by this many milliseconds first")
	cmd.Flags().BoolVar(&ro.caption, "caption", false, "Write frame statistics into the image")
	return cmd
}

func runRender(path string, opts *options, ro *renderOptions) error {
	bg, fg, err := opts.colors()
	if err != nil {
		return err
	}

	sc, err := opts.loadScene(path)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	sc.SetViewport(ro.width, ro.height)

	var frame render.Frame
	if ro.advance != 0 {
		frame, err = sc.Advance(ro.advance)
	} else {
		frame, err = sc.Render()
	}
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	fb := render.NewFramebuffer(ro.width, ro.height)
	fb.Clear(bg)
	fb.DrawFrame(frame, fg)
	if ro.caption {
		fb.Caption(statsLine(sc, frame), render.ColorWhite)
	}

	if err := fb.Save(ro.out); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d segments)\n", ro.out, len(frame.Segments))
	return nil
}

// statsLine summarizes a frame for captions and the HUD.
func statsLine(sc *scene.Scene, f render.Frame) string {
	return fmt.Sprintf("%d models  %d/%d lines  %d culled",
		sc.Len(), f.Stats.Visible, f.Stats.Lines, f.Stats.Culled)
}
