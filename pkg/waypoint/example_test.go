package waypoint_test

import (
	"context"
	"fmt"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view/memview"
)

type page string

func (p page) Address() string { return string(p) }

func Example() {
	render := view.RendererFunc(func(ctx context.Context, address string, into view.Element) (view.Root, error) {
		into.Mount(address)
		return page(address), nil
	})

	ctl, err := waypoint.New(waypoint.Collaborators{
		Renderer:        render,
		PageContainer:   memview.New("page"),
		MasterContainer: memview.New("master"),
		Viewport:        view.FixedViewport{Width: 650, Height: 800},
	}, waypoint.Options{
		Pairs: router.NewPairs().Pair("album", "library"),
	})
	if err != nil {
		panic(err)
	}
	defer ctl.Close()

	ctx := context.Background()
	for _, dest := range []waypoint.Destination{"home", "album", "album"} {
		outcome, err := ctl.RequestNavigate(ctx, dest, waypoint.Origin{}).Wait(ctx)
		fmt.Println(dest, outcome, err)
	}
	fmt.Println("master:", ctl.CurrentMasterDestination(), "maximized:", ctl.IsMasterMaximized())
	fmt.Println("page visible:", ctl.IsPageVisible())

	// Output:
	// home committed <nil>
	// album committed <nil>
	// album no-op <nil>
	// master: library maximized: true
	// page visible: false
}
