package markup

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	"imgeng/internal/core/domain"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document keeps the latest rendered view of every component and writes them out as HTML.
type Document struct {
	mutex sync.Mutex
	order []string
	views map[string]domain.View
}

func NewDocument() *Document {
	return &Document{views: make(map[string]domain.View)}
}

// Render implements port.Renderer.
func (d *Document) Render(view domain.View) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if _, ok := d.views[view.ID]; !ok {
		d.order = append(d.order, view.ID)
	}
	d.views[view.ID] = view
}

func (d *Document) View(id string) (domain.View, bool) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	v, ok := d.views[id]
	return v, ok
}

// Nodes returns one wrapper node per component, in first render order.
func (d *Document) Nodes() []*html.Node {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	nodes := make([]*html.Node, 0, len(d.order))
	for _, id := range d.order {
		nodes = append(nodes, Node(d.views[id]))
	}
	return nodes
}

// Write renders every component, one wrapper per line.
func (d *Document) Write(w io.Writer) error {
	for _, n := range d.Nodes() {
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("error rendering component: %w", err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Node builds the wrapper element for view and, when the image should be shown, its img child.
func Node(view domain.View) *html.Node {
	wrapper := element(atom.Div,
		attr("class", strings.Join(view.WrapperClasses, " ")),
		attr("data-component", view.ID),
	)
	if style := styleAttr(view.WrapperStyles); style != "" {
		wrapper.Attr = append(wrapper.Attr, attr("style", style))
	}

	if !view.ShowImage() {
		return wrapper
	}

	img := element(atom.Img,
		attr("class", strings.Join(view.ImageClasses, " ")),
		attr("src", view.Src),
		attr("alt", view.Alt),
	)
	if style := styleAttr(view.ImageStyles); style != "" {
		img.Attr = append(img.Attr, attr("style", style))
	}
	if view.Width.Valid {
		img.Attr = append(img.Attr, attr("width", strconv.Itoa(view.Width.Px)))
	}
	if view.Height.Valid {
		img.Attr = append(img.Attr, attr("height", strconv.Itoa(view.Height.Px)))
	}
	if view.Lazy {
		img.Attr = append(img.Attr, attr("loading", "lazy"))
	}

	wrapper.AppendChild(img)
	return wrapper
}

// RenderString renders a single view.
func RenderString(view domain.View) (string, error) {
	var sb strings.Builder
	if err := html.Render(&sb, Node(view)); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     a.String(),
		DataAtom: a,
		Attr:     attrs,
	}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func styleAttr(styles map[string]string) string {
	if len(styles) == 0 {
		return ""
	}

	keys := make([]string, 0, len(styles))
	for k := range styles {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+styles[k])
	}
	return strings.Join(parts, "; ")
}
