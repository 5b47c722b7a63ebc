package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/config"
)

func init() {
	color.NoColor = true
}

func TestRoutesCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
home = "home"
guard_bypass = ["login"]

[routes]
login = "https://example.com/login.html"

[masters]
album = "library"

[[nav]]
id = "home"
group = 1

[[nav]]
id = "album"
group = 2
disabled = true
`), 0o644))

	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"routes", "--config", path})
	require.NoError(t, cmd.Execute())

	got := out.String()
	assert.Contains(t, got, "home (home)")
	assert.Contains(t, got, "/pages/home/home.html")
	assert.Contains(t, got, "https://example.com/login.html")
	assert.Contains(t, got, "bypass")
	assert.Contains(t, got, "library")
	assert.Contains(t, got, "2 (disabled)")
}

func TestDestinationsOrder(t *testing.T) {
	cfg := config.Default()
	cfg.Nav = []config.NavItem{{ID: "b"}, {ID: "a"}}
	cfg.Routes = map[string]string{"z": "/z.html", "a": "/a.html"}
	cfg.Masters = map[string]string{"m": "n"}

	assert.Equal(t, []string{"home", "b", "a", "m", "n", "z"}, destinations(cfg))
}

func TestLayoutCommand(t *testing.T) {
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"layout", "--width", "650", "--height", "800", "--paired"})
	require.NoError(t, cmd.Execute())

	got := out.String()
	assert.Contains(t, got, "medium-small")
	assert.Contains(t, got, "master-maximized")
}
