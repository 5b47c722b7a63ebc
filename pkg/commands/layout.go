package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/layout"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view"
)

type layoutOptions struct {
	width       int
	height      int
	paired      bool
	revealed    bool
	noIndex     bool
	orientation string
}

func addLayout(topLevel *cobra.Command) {
	o := &layoutOptions{}
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute the layout for a viewport size",
		Example: `  waypoint layout --width 650 --paired
  waypoint layout --width 1280 --height 800 --orientation vertical`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res := layout.NewEngine().Compute(layout.Input{
				Viewport:       view.Viewport{Width: o.width, Height: o.height},
				MasterPaired:   o.paired,
				DetailRevealed: o.revealed,
				IndexPresent:   !o.noIndex,
				Orientation:    view.ParseOrientation(o.orientation),
			})
			return printLayout(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().IntVar(&o.width, "width", 1024, "viewport width in pixels")
	cmd.Flags().IntVar(&o.height, "height", 768, "viewport height in pixels")
	cmd.Flags().BoolVar(&o.paired, "paired", false, "a master view is paired with the page")
	cmd.Flags().BoolVar(&o.revealed, "revealed", false, "the page is revealed over a maximized master")
	cmd.Flags().BoolVar(&o.noIndex, "no-index", false, "lay out without a navigation index")
	cmd.Flags().StringVar(&o.orientation, "orientation", "horizontal", "navigation index orientation")
	topLevel.AddCommand(cmd)
}

func printLayout(w io.Writer, res layout.Result) error {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Region"), bold("Visible"), bold("X"), bold("Y"), bold("W"), bold("H"))
	row := func(name string, visible bool, r view.Rect) {
		tbl.AddRow(name, visible, r.X, r.Y, r.W, r.H)
	}
	row("index", res.IndexVisible, res.Index)
	row("master", res.MasterVisible, res.Master)
	row("page", res.PageVisible, res.Page)

	_, err := fmt.Fprintf(w, "%s %s\n%s %s\n%s\n",
		bold("Breakpoint:"), res.Breakpoint,
		bold("Classes:"), strings.Join(res.Classes, " "),
		tbl)
	return err
}
