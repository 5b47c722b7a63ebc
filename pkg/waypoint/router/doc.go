// Package router resolves destinations to content addresses and keeps the
// static tables and history the navigation controller consults.
//
// # Basic Usage
//
//	routes := router.NewRoutes().
//	    Register("home", "/pages/home/home.html").
//	    Register("library", "https://example.com/library.html")
//
//	routes.Resolve("home")     // "/pages/home/home.html"
//	routes.Resolve("settings") // "/pages/settings/settings.html"
//
//	pairs := router.NewPairs().Pair("album", "library")
//	master, ok := pairs.Master("album") // "library", true
//
// # Resolution
//
// Resolve is a pure, total function of the destination: a registered
// destination maps to its registered address and every other destination
// maps to the conventional page address.
//
// # Back Stack
//
// The controller pushes the previous destination on a Stack after every
// forward commit. Entries can carry resume state (such as a scroll
// position) that the page restores when navigated back to.
package router
