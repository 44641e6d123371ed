// Command zoomview shows a single image in a zoomable, swipe-to-dismiss viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"syscall"

	"gioui.org/app"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/zoomview/internal/config"
	"github.com/elektrokombinacija/zoomview/internal/env"
)

func appName() string {
	return filepath.Base(os.Args[0])
}

func version() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "dev"
}

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	e := env.EnvFromContext(ctx)
	e.Debug = cmd.Bool("debug")

	configFile := cmd.String("config")
	if e.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if e.Log, err = e.Cfg.Logging.Prepare(appName(), e.Debug); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	e.RedirectStdLog()

	e.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", version()), zap.String("runtime", runtime.Version()))
	if len(configFile) == 0 {
		e.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	e := env.EnvFromContext(ctx)
	e.Log.Debug("Program ended", zap.Duration("elapsed", e.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))

	// log is synced now, errors must be reported directly to stderr from now on
	e.RestoreStdLog()
	return nil
}

// Errors from subcommands are logged here, before the log is closed.
var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	e := env.EnvFromContext(ctx)
	if e.Cfg != nil {
		e.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	env.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func run() int {
	ctx, stop := signal.NotifyContext(env.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := &cli.Command{
		Name:            appName(),
		Usage:           "zoomable single image viewer",
		Version:         version() + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting"},
		},
		Commands: []*cli.Command{
			{
				Name:         "view",
				Usage:        "Opens the image in a viewer window",
				OnUsageError: usageErrorHandler,
				Action:       viewImage,
				Flags:        sourceFlags(),
				ArgsUsage:    "SOURCE",
				CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    path or file:// URL of the image to show
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "transform",
				Usage:        "Prints the fit transform and zoom limits for an image and viewport",
				OnUsageError: usageErrorHandler,
				Action:       printTransform,
				Flags: append(sourceFlags(),
					&cli.StringFlag{Name: "viewport", Value: "1080x1920", Usage: "viewport `SIZE` in pixels as WIDTHxHEIGHT"},
				),
				ArgsUsage: "SOURCE",
				CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    path or file:// URL of the image, only decoded when --width and
    --height are not given
`, cli.CommandHelpTemplate),
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values which is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
			},
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		// It may happen that log is either not set yet (argument parsing) or already closed,
		// report errors to stderr directly
		if !errWasHandled {
			fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
		}
		return 1
	}
	return 0
}

func main() {
	// Gio needs the main goroutine for its event loop.
	go func() {
		os.Exit(run())
	}()
	app.Main()
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	e := env.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		e.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(e.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	e.Log.Info("Outputing configuration", zap.String("state", state), zap.String("file", fname))

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
