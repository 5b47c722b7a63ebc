package httpsource

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view"
)

// Document is a parsed page. It implements view.Root, view.HostProvider and
// view.Disposer.
type Document struct {
	address string
	url     string
	title   string
	guarded bool
	hostIDs []string
	node    *html.Node

	mu       sync.Mutex
	parent   view.Container
	hosts    map[string]view.Container
	disposed bool
}

func newDocument(address, url string, node *html.Node) *Document {
	d := &Document{address: address, url: url, node: node, hosts: make(map[string]view.Container)}
	d.scan(node)
	return d
}

func (d *Document) scan(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Title:
			if d.title == "" {
				d.title = strings.TrimSpace(text(n))
			}
		case atom.Body:
			if _, ok := attr(n, GuardAttr); ok {
				d.guarded = true
			}
		}
		if id, ok := attr(n, HostAttr); ok && id != "" {
			d.hostIDs = append(d.hostIDs, id)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.scan(c)
	}
}

func (d *Document) createHosts(into view.Element) error {
	parent, ok := into.(view.Container)
	if !ok || len(d.hostIDs) == 0 {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.parent = parent
	for _, id := range d.hostIDs {
		if _, dup := d.hosts[id]; dup {
			continue
		}
		child, err := parent.CreateChild(id)
		if err != nil {
			return fmt.Errorf("httpsource: placeholder %q: %w", id, err)
		}
		c, ok := child.(view.Container)
		if !ok {
			parent.RemoveChild(child)
			return fmt.Errorf("httpsource: placeholder %q cannot host content", id)
		}
		c.SetVisible(true)
		d.hosts[id] = c
	}
	return nil
}

func (d *Document) Address() string { return d.address }

// URL returns the absolute URL the document was fetched from.
func (d *Document) URL() string { return d.url }

// Title returns the text of the first <title>.
func (d *Document) Title() string { return d.title }

// Node returns the parsed tree.
func (d *Document) Node() *html.Node { return d.node }

// HostIDs returns the placeholder ids in document order.
func (d *Document) HostIDs() []string { return append([]string(nil), d.hostIDs...) }

// Guarded reports whether the document asks before unloading.
func (d *Document) Guarded() bool { return d.guarded }

func (d *Document) Host(id string) (view.Container, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.hosts[id]
	return c, ok
}

// Dispose removes the placeholders.
func (d *Document) Dispose() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.disposed {
		return
	}
	d.disposed = true
	for _, c := range d.hosts {
		d.parent.RemoveChild(c)
	}
	clear(d.hosts)
}

type guardedDocument struct {
	*Document
	confirm ConfirmFunc
}

func (g *guardedDocument) CheckUnload(ctx context.Context) (bool, error) {
	if g.confirm == nil {
		return true, nil
	}
	return g.confirm(ctx, g.Document)
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
