package commands

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/config"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
)

var bold = color.New(color.Bold).SprintFunc()

func addRoutes(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the configured destinations, their addresses and masters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return printRoutes(cmd.OutOrStdout(), cfg)
		},
	}
	topLevel.AddCommand(cmd)
}

// destinations collects every destination the config mentions, in order.
func destinations(cfg config.Config) []string {
	seen := map[string]bool{}
	var out []string
	add := func(d string) {
		if d != "" && !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	add(cfg.Home)
	for _, n := range cfg.Nav {
		add(n.ID)
	}
	rest := make([]string, 0, len(cfg.Routes)+len(cfg.Masters))
	for d := range cfg.Routes {
		rest = append(rest, d)
	}
	for d, m := range cfg.Masters {
		rest = append(rest, d, m)
	}
	slices.Sort(rest)
	for _, d := range rest {
		add(d)
	}
	return out
}

func printRoutes(w io.Writer, cfg config.Config) error {
	routes := router.NewRoutes()
	for d, a := range cfg.Routes {
		routes.Register(router.Destination(d), a)
	}
	groups := make(map[string]config.NavItem, len(cfg.Nav))
	for _, n := range cfg.Nav {
		groups[n.ID] = n
	}
	bypass := make(map[string]bool, len(cfg.GuardBypass))
	for _, d := range cfg.GuardBypass {
		bypass[d] = true
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Destination"), bold("Address"), bold("Master"), bold("Group"), bold("Guard"))
	for _, d := range destinations(cfg) {
		group := "-"
		if n, ok := groups[d]; ok {
			group = strconv.Itoa(n.Group)
			if n.Disabled {
				group += " (disabled)"
			}
		}
		master := cfg.Masters[d]
		if master == "" {
			master = "-"
		}
		guard := "checked"
		if bypass[d] {
			guard = "bypass"
		}
		address := routes.Resolve(router.Destination(d))
		if d == cfg.Home {
			d += " (home)"
		}
		tbl.AddRow(d, address, master, group, guard)
	}
	_, err := fmt.Fprintln(w, tbl)
	return err
}
