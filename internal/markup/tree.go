// Package markup builds the structural element tree consumed by style
// resolution.
package markup

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"
	"golang.org/x/net/html"

	"github.com/yacobolo/html2wf/internal/stylesheet"
)

// Element is one parsed markup element. Parents own their children; there
// are no back references, use Tree.Parent instead.
type Element struct {
	ID          string                 `json:"id"`
	Tag         string                 `json:"tag"`
	Attributes  map[string]string      `json:"attributes,omitempty"` // Excludes class and style
	Classes     []string               `json:"classes,omitempty"`    // Original names, duplicates removed
	InlineStyle *stylesheet.Properties `json:"inlineStyle,omitempty"`
	Text        string                 `json:"text,omitempty"` // Direct text content only
	Children    []*Element             `json:"children,omitempty"`

	node *html.Node
}

// Tree is a parsed document.
type Tree struct {
	Roots       []*Element
	StyleSheets []string // Contents of <style> elements in document order

	byID    map[string]*Element
	parents map[string]string
	order   []*Element
}

// Len returns the number of elements.
func (t *Tree) Len() int {
	return len(t.order)
}

// ByID returns the element with the given id.
func (t *Tree) ByID(id string) (*Element, bool) {
	e, ok := t.byID[id]
	return e, ok
}

// Parent returns the parent element of id. Root elements have none.
func (t *Tree) Parent(id string) (*Element, bool) {
	parentID, ok := t.parents[id]
	if !ok {
		return nil, false
	}
	return t.ByID(parentID)
}

// Walk visits every element depth-first in document order. Returning
// false from fn skips the element's children.
func (t *Tree) Walk(fn func(e *Element) bool) {
	var visit func(e *Element)
	visit = func(e *Element) {
		if !fn(e) {
			return
		}
		for _, c := range e.Children {
			visit(c)
		}
	}
	for _, r := range t.Roots {
		visit(r)
	}
}

// Elements returns every element in document order.
func (t *Tree) Elements() []*Element {
	out := make([]*Element, len(t.order))
	copy(out, t.order)
	return out
}

// Match returns the elements, in document order, whose underlying node
// satisfies match.
func (t *Tree) Match(match func(n *html.Node) bool) []*Element {
	var out []*Element
	for _, e := range t.order {
		if match(e.node) {
			out = append(out, e)
		}
	}
	return out
}

// Print renders the tree as an indented outline.
func (t *Tree) Print() string {
	root := treeprint.NewWithRoot("document")
	for _, e := range t.Roots {
		printElement(root, e)
	}
	return root.String()
}

func printElement(branch treeprint.Tree, e *Element) {
	label := e.Label()
	if len(e.Children) == 0 {
		branch.AddNode(label)
		return
	}
	child := branch.AddBranch(label)
	for _, c := range e.Children {
		printElement(child, c)
	}
}

// Label is a short description such as "el-3 div.card.wide".
func (e *Element) Label() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", e.ID, e.Tag)
	for _, c := range e.Classes {
		b.WriteByte('.')
		b.WriteString(c)
	}
	if e.Text != "" {
		text := e.Text
		if r := []rune(text); len(r) > 32 {
			text = string(r[:29]) + "..."
		}
		fmt.Fprintf(&b, " %q", text)
	}
	return b.String()
}
