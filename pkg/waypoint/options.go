package waypoint

import (
	"log/slog"
	"time"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/config"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/icon"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/layout"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/navindex"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/resources"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/session"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view"
)

// Destination is an opaque navigable identifier.
type Destination = router.Destination

// Collaborators are the host-provided pieces the controller drives.
type Collaborators struct {
	Renderer        view.Renderer       // Required
	PageContainer   view.Container      // Required
	MasterContainer view.Container      // Optional; master pairing is disabled without it
	Animator        view.Animator       // Defaults to view.NoAnimation
	Viewport        view.ViewportSource // Defaults to a fixed 1024x768 viewport
	Reporter        view.ErrorReporter  // Optional build failure sink
}

// Options configures the Controller.
type Options struct {
	Home             Destination      // Start destination; transitions to it are neutral
	GuardTimeout     time.Duration    // Chain-wide unload check timeout (default 120s)
	OrientationRetry time.Duration    // Yield before a deferred orientation change (default 50ms)
	Orientation      view.Orientation // Initial navigation index orientation
	GuardBypass      []Destination    // Destinations whose transitions skip the page guard
	HistoryLimit     int              // Back stack size; 0 is unbounded
	Routes           *router.Routes   // Defaults to an empty table (conventional page addresses)
	Pairs            *router.Pairs    // Defaults to no pairs
	NavItems         []navindex.Item
	Layout           layout.Options
	Icons            *icon.Cache        // Optional shared icon cache
	Catalog          *resources.Catalog // Optional; relabels the index after every commit
	Session          *session.Store     // Optional; the state is saved after every commit
	Logger           *slog.Logger
}

// OptionsFromConfig converts a loaded configuration into controller options.
// Icons that cannot be read are logged and skipped.
func OptionsFromConfig(cfg config.Config, logger *slog.Logger) Options {
	if logger == nil {
		logger = GetLogger()
	}

	routes := router.NewRoutes()
	for dest, address := range cfg.Routes {
		routes.Register(Destination(dest), address)
	}
	pairs := router.NewPairs()
	for detail, master := range cfg.Masters {
		pairs.Pair(Destination(detail), Destination(master))
	}

	bypass := make([]Destination, 0, len(cfg.GuardBypass))
	for _, d := range cfg.GuardBypass {
		bypass = append(bypass, Destination(d))
	}

	opts := Options{
		Home:             Destination(cfg.Home),
		GuardTimeout:     cfg.GuardTimeout.Duration,
		OrientationRetry: cfg.OrientationRetry.Duration,
		Orientation:      view.ParseOrientation(cfg.Orientation),
		GuardBypass:      bypass,
		HistoryLimit:     cfg.HistoryLimit,
		Routes:           routes,
		Pairs:            pairs,
		NavItems:         NavItems(cfg, logger),
		Logger:           logger,
	}
	if cfg.SessionDir != "" {
		opts.Session = session.Open(cfg.SessionDir, "")
	}
	return opts
}

// NavItems converts the configured navigation entries to index items.
func NavItems(cfg config.Config, logger *slog.Logger) []navindex.Item {
	items := make([]navindex.Item, 0, len(cfg.Nav))
	for _, n := range cfg.Nav {
		svg, err := cfg.IconSource(n)
		if err != nil && logger != nil {
			logger.Warn("Skipping nav icon", "id", n.ID, "error", err)
		}
		items = append(items, navindex.Item{
			ID:           n.ID,
			Group:        n.Group,
			Disabled:     n.Disabled,
			DisplayWidth: n.Width,
			Label:        n.Label,
			Icon:         svg,
		})
	}
	return items
}
