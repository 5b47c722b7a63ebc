package router_test

import (
	"fmt"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
)

// Resume types - position state for back navigation
type LibraryResume struct {
	SelectedIndex  int
	ScrollPosition int
}

// Example demonstrates resolving destinations with and without explicit routes.
func Example() {
	routes := router.NewRoutes().
		Register("home", "/pages/home/home.html").
		Register("store", "https://example.com/store.html")

	fmt.Println(routes.Resolve("home"))
	fmt.Println(routes.Resolve("store"))
	fmt.Println(routes.Resolve("settings"))

	// Output:
	// /pages/home/home.html
	// https://example.com/store.html
	// /pages/settings/settings.html
}

// ExamplePairs demonstrates the master/detail table.
func ExamplePairs() {
	pairs := router.NewPairs().
		Pair("album", "library").
		Pair("artist", "library")

	if master, ok := pairs.Master("album"); ok {
		fmt.Println("album is shown beside", master)
	}
	if _, ok := pairs.Master("settings"); !ok {
		fmt.Println("settings has no master")
	}
	fmt.Println(pairs.Details())

	// Output:
	// album is shown beside library
	// settings has no master
	// [album artist]
}

// ExampleStack demonstrates back navigation with resume state.
func ExampleStack() {
	stack := router.NewStack()

	// Forward: library -> album, remembering where the list was scrolled
	stack.Push("library", &LibraryResume{SelectedIndex: 4, ScrollPosition: 120})
	// Forward: album -> track
	stack.Push("album", nil)

	// Back: track -> album
	entry := stack.Pop()
	fmt.Printf("Back to %s (resume: %v)\n", entry.Destination, entry.Resume != nil)

	// Back: album -> library, restoring position
	entry = stack.Pop()
	resume := entry.Resume.(*LibraryResume)
	fmt.Printf("Back to %s at index %d\n", entry.Destination, resume.SelectedIndex)

	fmt.Println("Empty:", stack.IsEmpty())

	// Output:
	// Back to album (resume: false)
	// Back to library at index 4
	// Empty: true
}

// ExampleNewStackWithLimit demonstrates a bounded history.
func ExampleNewStackWithLimit() {
	stack := router.NewStackWithLimit(2)
	stack.Push("a", nil)
	stack.Push("b", nil)
	stack.Push("c", nil)

	for _, e := range stack.Entries() {
		fmt.Println(e.Destination)
	}

	// Output:
	// b
	// c
}
