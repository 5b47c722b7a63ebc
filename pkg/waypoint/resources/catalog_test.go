package resources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/navindex"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view"
)

const french = `
[nav]
home = "Accueil"
library = "Bibliothèque"

[title]
home = "Page d'accueil"
`

func TestLabelsFollowLocale(t *testing.T) {
	c := NewCatalog(nil)
	require.NoError(t, c.LoadBytes([]byte(french), "active.fr.toml"))

	assert.Equal(t, "Home", c.Label("home", "Home"))

	require.NoError(t, c.SetLocale("fr-CA"))
	assert.Equal(t, language.French, c.Locale())
	assert.Equal(t, "Accueil", c.Label("home", "Home"))
	assert.Equal(t, "Page d'accueil", c.Title("home"))
	assert.Equal(t, "settings", c.Title("settings"))
	assert.Equal(t, "Settings", c.Label("settings", "Settings"))
}

func TestUnsupportedLocaleFallsBack(t *testing.T) {
	c := NewCatalog(nil)
	require.NoError(t, c.LoadBytes([]byte(french), "active.fr.toml"))

	require.NoError(t, c.SetLocale("ja"))
	assert.Equal(t, "Home", c.Label("home", "Home"))

	assert.Error(t, c.SetLocale("not a tag!"))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "active.fr.toml"), []byte(french), 0o644))

	c := NewCatalog(nil)
	require.NoError(t, c.LoadDir(dir))
	require.NoError(t, c.SetLocale("fr"))
	assert.Equal(t, "Bibliothèque", c.Label("library", "Library"))
}

func TestRelabelUpdatesIndex(t *testing.T) {
	c := NewCatalog(nil)
	require.NoError(t, c.LoadBytes([]byte(french), "active.fr.toml"))
	require.NoError(t, c.SetLocale("fr"))

	idx := navindex.New([]navindex.Item{
		{ID: "home", Group: 1, Label: "Home"},
		{ID: "about", Group: 1},
	}, navindex.Options{})

	c.Relabel(idx)("home")

	items := idx.Widget(view.Horizontal).Items
	assert.Equal(t, "Accueil", items[0].Label)
	assert.Equal(t, "about", items[1].Label)
}
