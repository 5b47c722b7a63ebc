package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/config"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/icon"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/platform/evdevinput"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/platform/sdlhost"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/resources"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/source/httpsource"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view/memview"
)

type runOptions struct {
	contentURL string
	device     string
	window     bool
	watch      bool
	visit      []string
	logPath    string
}

func addRun(topLevel *cobra.Command) {
	o := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the navigation engine against remote content",
		Long: `Run restores the saved session, then visits each --visit destination in
order. With --window or --device it keeps running until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd.Context(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&o.contentURL, "content-url", "", "base URL for page addresses (overrides content_url)")
	cmd.Flags().StringVar(&o.device, "device", "", "evdev input device for step/back keys, e.g. /dev/input/event0")
	cmd.Flags().BoolVar(&o.window, "window", false, "open an SDL window as the viewport")
	cmd.Flags().BoolVar(&o.watch, "watch", true, "reload the config file when it changes")
	cmd.Flags().StringSliceVar(&o.visit, "visit", nil, "destinations to navigate to after restoring")
	cmd.Flags().StringVar(&o.logPath, "log-file", "", "also write logs to this file")
	topLevel.AddCommand(cmd)
}

type reporterFunc func(dest string, err error)

func (f reporterFunc) ReportError(dest string, err error) { f(dest, err) }

func (o *runOptions) run(ctx context.Context, out io.Writer) error {
	if o.logPath != "" {
		path, err := homedir.Expand(o.logPath)
		if err != nil {
			return err
		}
		waypoint.SetLogPath(path)
	}
	logger := waypoint.GetLogger()
	defer waypoint.CloseLogger()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := waypoint.OptionsFromConfig(cfg, logger)
	opts.Icons = icon.NewCache()
	opts.Catalog, err = catalog(cfg, logger)
	if err != nil {
		return err
	}

	base := o.contentURL
	if base == "" {
		base = cfg.ContentURL
	}
	src, err := httpsource.New(httpsource.Options{BaseURL: base, Logger: logger})
	if err != nil {
		return err
	}

	collab := waypoint.Collaborators{
		Renderer:        src,
		PageContainer:   memview.New("page"),
		MasterContainer: memview.New("master"),
		Reporter: reporterFunc(func(dest string, err error) {
			fmt.Fprintf(out, "! %s: %v\n", dest, err)
		}),
	}

	var win *sdlhost.Window
	if o.window {
		win, err = sdlhost.Open("waypoint", sdlhost.WindowOptions{Resizable: true})
		if err != nil {
			return err
		}
		defer win.Close()
		collab.Viewport = win
		collab.Animator = &sdlhost.Animator{}
	}

	ctl, err := waypoint.New(collab, opts)
	if err != nil {
		return err
	}
	defer ctl.Close()

	ctl.OnTransitionCommitted(func(d waypoint.Destination) {
		fmt.Fprintf(out, "→ %s\t%s\n", d, opts.Catalog.Title(string(d)))
	})

	g, gctx := errgroup.WithContext(ctx)
	if o.watch && cfg.Path() != "" {
		if _, err := os.Stat(cfg.Path()); err == nil {
			g.Go(func() error {
				return config.Watch(gctx, cfg.Path(),
					func(c config.Config) {
						if err := ctl.ApplyConfig(c); err != nil {
							logger.Warn("Config rejected", "error", err)
						}
					},
					func(err error) { logger.Warn("Config reload failed", "error", err) })
			})
		}
	}
	if o.device != "" {
		g.Go(func() error {
			return evdevinput.New(o.device, ctl, evdevinput.Options{Logger: logger}).Run(gctx)
		})
	}

	report(ctx, out, ctl.RestoreSaved(ctx))
	for _, d := range o.visit {
		report(ctx, out, ctl.RequestNavigate(ctx, waypoint.Destination(d), waypoint.Origin{Source: "cli"}))
	}

	switch {
	case win != nil:
		if err := win.Run(gctx, func() { ctl.Relayout() }); err != nil {
			return err
		}
	case o.device != "":
		<-gctx.Done()
	}
	cancel()

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func catalog(cfg config.Config, logger *slog.Logger) (*resources.Catalog, error) {
	c := resources.NewCatalog(logger)
	if cfg.LocaleDir != "" {
		dir, err := homedir.Expand(cfg.LocaleDir)
		if err != nil {
			return nil, err
		}
		if err := c.LoadDir(dir); err != nil {
			return nil, err
		}
	}
	if cfg.Locale != "" {
		if err := c.SetLocale(cfg.Locale); err != nil {
			logger.Warn("Ignoring locale", "locale", cfg.Locale, "error", err)
		}
	}
	return c, nil
}

func report(ctx context.Context, out io.Writer, tr *waypoint.Transition) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute+10*time.Second)
	defer cancel()
	outcome, err := tr.Wait(ctx)
	if err != nil && outcome != waypoint.Committed {
		fmt.Fprintf(out, "%s %s: %v\n", outcome, tr.Destination(), err)
		return
	}
	if outcome != waypoint.Committed {
		fmt.Fprintf(out, "%s %s\n", outcome, tr.Destination())
	}
}
