package waypoint

import (
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/config"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view"
)

// ApplyConfig applies a reloaded configuration. Tables and tuning values
// take effect for the next transition; the displayed content is kept. The
// orientation change, if any, runs in the background.
func (c *Controller) ApplyConfig(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if c.closed.Load() {
		return ErrClosed
	}

	routes := make(map[router.Destination]string, len(cfg.Routes))
	for d, a := range cfg.Routes {
		routes[Destination(d)] = a
	}
	c.routes.Replace(routes)

	masters := make(map[router.Destination]router.Destination, len(cfg.Masters))
	for d, m := range cfg.Masters {
		masters[Destination(d)] = Destination(m)
	}
	c.pairs.Replace(masters)

	c.chain.SetTimeout(cfg.GuardTimeout.Duration)

	c.mu.Lock()
	c.home = Destination(cfg.Home)
	c.bypass = make(map[Destination]bool, len(cfg.GuardBypass))
	for _, d := range cfg.GuardBypass {
		c.bypass[Destination(d)] = true
	}
	current := c.current
	c.mu.Unlock()

	c.index.SetItems(NavItems(cfg, c.logger))
	c.index.Sync(string(current))

	if c.catalog != nil && cfg.Locale != "" {
		if err := c.catalog.SetLocale(cfg.Locale); err != nil {
			c.logger.Warn("Ignoring locale", "locale", cfg.Locale, "error", err)
		}
		c.catalog.Relabel(c.index)(string(current))
	}
	if cfg.LogLevel != "" {
		internal.SetRawLogLevel(cfg.LogLevel)
	}

	if o := view.ParseOrientation(cfg.Orientation); o != c.index.Orientation() {
		c.spawn(func() {
			if err := c.index.SetOrientation(c.ctx, o); err != nil {
				c.logger.Debug("Orientation change abandoned", "error", err)
			}
			c.Relayout()
		})
	}

	c.Relayout()
	c.logger.Info("Configuration applied", "path", cfg.Path())
	return nil
}
