// Package resources localizes navigation labels and page titles.
//
// Messages are go-i18n message files in TOML. Navigation labels live under
// the "nav" table and page titles under "title":
//
//	[nav]
//	home = "Accueil"
//
//	[title]
//	home = "Page d'accueil"
package resources

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/navindex"
)

// Catalog holds the loaded messages and the active locale.
type Catalog struct {
	logger *slog.Logger

	mu        sync.RWMutex
	bundle    *i18n.Bundle
	tag       language.Tag
	localizer *i18n.Localizer
}

// NewCatalog creates an empty catalog whose fallback language is English.
func NewCatalog(logger *slog.Logger) *Catalog {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return &Catalog{
		logger:    internal.OrDefault(logger, "resources"),
		bundle:    bundle,
		tag:       language.English,
		localizer: i18n.NewLocalizer(bundle, language.English.String()),
	}
}

// LoadDir loads every *.toml message file in dir. File names carry the
// language tag, for example active.fr.toml.
func (c *Catalog) LoadDir(dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return fmt.Errorf("resources: list %s: %w", dir, err)
	}
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("resources: read %s: %w", f, err)
		}
		if err := c.LoadBytes(data, filepath.Base(f)); err != nil {
			return err
		}
	}
	return nil
}

// LoadBytes parses one message file. path only supplies the language tag
// and format, as in "active.de.toml".
func (c *Catalog) LoadBytes(data []byte, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.bundle.ParseMessageFileBytes(data, path); err != nil {
		return fmt.Errorf("resources: parse %s: %w", path, err)
	}
	c.localizer = i18n.NewLocalizer(c.bundle, c.tag.String())
	return nil
}

// SetLocale selects the best supported language for locale, a BCP 47 tag.
func (c *Catalog) SetLocale(locale string) error {
	want, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("resources: locale %q: %w", locale, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	matcher := language.NewMatcher(c.bundle.LanguageTags())
	_, idx, confidence := matcher.Match(want)
	tag := c.bundle.LanguageTags()[idx]
	if confidence == language.No {
		c.logger.Warn("No messages for locale, using fallback", "locale", locale, "fallback", tag.String())
	}
	c.tag = tag
	c.localizer = i18n.NewLocalizer(c.bundle, want.String(), tag.String())
	return nil
}

// Locale returns the selected language.
func (c *Catalog) Locale() language.Tag {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tag
}

func (c *Catalog) localize(id, fallback string) string {
	c.mu.RLock()
	loc := c.localizer
	c.mu.RUnlock()

	s, err := loc.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{ID: id, Other: fallback},
	})
	if err != nil || s == "" {
		return fallback
	}
	return s
}

// Label returns the navigation label for destination id.
func (c *Catalog) Label(id, fallback string) string {
	return c.localize("nav."+id, fallback)
}

// Title returns the page title for destination id, or id itself.
func (c *Catalog) Title(id string) string {
	return c.localize("title."+id, id)
}

// Labels localizes the labels of items, keyed by item id.
func (c *Catalog) Labels(items []navindex.Item) map[string]string {
	out := make(map[string]string, len(items))
	for _, it := range items {
		fallback := it.Label
		if fallback == "" {
			fallback = it.ID
		}
		out[it.ID] = c.Label(it.ID, fallback)
	}
	return out
}

// Relabel returns a commit hook that refreshes the labels of index.
func (c *Catalog) Relabel(index *navindex.Index) func(destination string) {
	return func(string) {
		index.SetLabels(c.Labels(index.Items()))
	}
}
