package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const sample = `
home = "library"
guard_timeout = "30s"
orientation_retry = "10ms"
orientation = "vertical"
guard_bypass = ["register", "account-after-login"]
history_limit = 20

[routes]
store = "https://example.com/store.html"

[masters]
album = "library"

[[nav]]
id = "library"
group = 1
label = "Library"

[[nav]]
id = "store"
group = 2
width = 120
disabled = true
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "library", cfg.Home)
	assert.Equal(t, 30*time.Second, cfg.GuardTimeout.Duration)
	assert.Equal(t, 10*time.Millisecond, cfg.OrientationRetry.Duration)
	assert.Equal(t, "vertical", cfg.Orientation)
	assert.Equal(t, []string{"register", "account-after-login"}, cfg.GuardBypass)
	assert.Equal(t, "https://example.com/store.html", cfg.Routes["store"])
	assert.Equal(t, "library", cfg.Masters["album"])
	require.Len(t, cfg.Nav, 2)
	assert.True(t, cfg.Nav[1].Disabled)
	assert.Equal(t, 120, cfg.Nav[1].Width)
	assert.Equal(t, "en", cfg.Locale)
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`home = "start"`))
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultGuardTimeout, cfg.GuardTimeout.Duration)
	assert.Equal(t, constants.DefaultOrientationRetry, cfg.OrientationRetry.Duration)
	assert.Equal(t, "horizontal", cfg.Orientation)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown key", `colour = "red"`},
		{"bad duration", `guard_timeout = "soon"`},
		{"bad orientation", `orientation = "diagonal"`},
		{"empty home", `home = ""`},
		{"duplicate nav", "[[nav]]\nid = \"a\"\n[[nav]]\nid = \"a\""},
		{"self pair", "[masters]\na = \"a\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultHome, cfg.Home)
	assert.Equal(t, path, cfg.Path())
}

func TestDefaultPathHonoursEnv(t *testing.T) {
	t.Setenv(constants.ConfigPathEnvVar, "/etc/waypoint.toml")

	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/waypoint.toml", p)
}

func TestIconSourceResolvesRelativeToConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`home = "home"`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "home.svg"), []byte("<svg/>"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	svg, err := cfg.IconSource(NavItem{ID: "home", Icon: "home.svg"})
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", svg)
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`home = "first"`), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c Config) {
			select {
			case changes <- c:
			default:
			}
		}, nil)
	}()

	// Keep rewriting until the watcher, which starts asynchronously, sees it.
	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(300 * time.Millisecond)
	defer ticker.Stop()
	var got Config
loop:
	for {
		select {
		case got = <-changes:
			break loop
		case <-ticker.C:
			require.NoError(t, os.WriteFile(path, []byte(`home = "second"`), 0o644))
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, "second", got.Home)
}
