package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gioui.org/app"
	"gioui.org/unit"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/zoomview/internal/core"
	"github.com/elektrokombinacija/zoomview/internal/env"
	"github.com/elektrokombinacija/zoomview/internal/loader"
	"github.com/elektrokombinacija/zoomview/internal/vis"
)

func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "preview", Usage: "low resolution `LOCATION` shown while the image loads"},
		&cli.StringFlag{Name: "remote", Usage: "alternative `LOCATION` of the full image"},
		&cli.FloatFlag{Name: "width", Usage: "natural image width in pixels, when known"},
		&cli.FloatFlag{Name: "height", Usage: "natural image height in pixels, when known"},
	}
}

func sourceFromArgs(cmd *cli.Command) (core.ImageSource, error) {
	if cmd.Args().Len() == 0 {
		return core.ImageSource{}, errors.New("no SOURCE has been specified")
	}
	return core.ImageSource{
		URL:        cmd.Args().Get(0),
		PreviewURL: cmd.String("preview"),
		RemoteURL:  cmd.String("remote"),
		Width:      cmd.Float("width"),
		Height:     cmd.Float("height"),
	}, nil
}

func viewImage(ctx context.Context, cmd *cli.Command) error {
	e := env.EnvFromContext(ctx)

	src, err := sourceFromArgs(cmd)
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		e.Log.Warn("Malformed command line, too many sources", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	w := new(app.Window)
	w.Option(
		app.Title(e.Cfg.Window.Title),
		app.Size(unit.Dp(e.Cfg.Window.Width), unit.Dp(e.Cfg.Window.Height)),
	)

	e.Log.Info("Showing image", zap.String("source", src.URL))
	return vis.NewApp(src, e.Cfg, e.Log).Run(ctx, w)
}

func printTransform(ctx context.Context, cmd *cli.Command) error {
	e := env.EnvFromContext(ctx)

	src, err := sourceFromArgs(cmd)
	if err != nil {
		return err
	}
	viewport, err := core.ParseSize(cmd.String("viewport"))
	if err != nil {
		return err
	}

	dims := src.Dimensions()
	if !dims.Known() {
		res, err := loader.New(0, e.Log).Load(ctx, src)
		if err != nil {
			return fmt.Errorf("unable to discover image size: %w", err)
		}
		dims = res.Dimensions
	}

	fit := core.ComputeTransform(dims, viewport)
	maxScale := core.MaxScale(fit)
	target := core.DoubleTapTarget(false, maxScale)

	fmt.Fprintf(os.Stdout, "image:      %s\n", dims)
	fmt.Fprintf(os.Stdout, "viewport:   %s\n", viewport)
	fmt.Fprintf(os.Stdout, "scale:      %g\n", fit.Scale)
	fmt.Fprintf(os.Stdout, "translate:  %g, %g\n", fit.TranslateX, fit.TranslateY)
	fmt.Fprintf(os.Stdout, "max zoom:   %g (scale %g)\n", maxScale, fit.Zoomed(maxScale))
	fmt.Fprintf(os.Stdout, "double tap: %g (scale %g)\n", target, fit.Zoomed(target))
	return nil
}
