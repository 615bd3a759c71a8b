package markup

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/yacobolo/html2wf/internal/stylesheet"
)

// Elements that carry no visual structure.
var skipTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"head":     true,
	"meta":     true,
	"link":     true,
	"title":    true,
}

// Builder turns markup into a Tree.
type Builder struct {
	log *zap.Logger
}

// NewBuilder creates a builder.
func NewBuilder(log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{log: log.Named("markup")}
}

// ParseString parses a markup document or fragment.
func (b *Builder) ParseString(src string) (*Tree, error) {
	return b.Parse(strings.NewReader(src))
}

// Parse reads markup from r. Fragments are accepted; the HTML parser
// wraps them in a body. Elements are taken from the body in document
// order and numbered el-0, el-1, ...
func (b *Builder) Parse(r io.Reader) (*Tree, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}

	t := &Tree{
		byID:    make(map[string]*Element),
		parents: make(map[string]string),
	}

	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		if css := s.Text(); strings.TrimSpace(css) != "" {
			t.StyleSheets = append(t.StyleSheets, css)
		}
	})

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return t, nil
	}
	for c := body.Get(0).FirstChild; c != nil; c = c.NextSibling {
		if e := b.build(t, c, ""); e != nil {
			t.Roots = append(t.Roots, e)
		}
	}

	b.log.Debug("Parsed markup",
		zap.Int("elements", t.Len()),
		zap.Int("styleBlocks", len(t.StyleSheets)))
	return t, nil
}

func (b *Builder) build(t *Tree, n *html.Node, parentID string) *Element {
	if n.Type != html.ElementNode || skipTags[n.Data] {
		return nil
	}

	e := &Element{
		ID:   "el-" + strconv.Itoa(len(t.order)),
		Tag:  n.Data,
		node: n,
	}
	t.order = append(t.order, e)
	t.byID[e.ID] = e
	if parentID != "" {
		t.parents[e.ID] = parentID
	}

	for _, attr := range n.Attr {
		switch attr.Key {
		case "class":
			e.Classes = splitClasses(attr.Val)
		case "style":
			props, err := stylesheet.ParseInlineStyle(attr.Val)
			if err != nil {
				b.log.Warn("Ignoring unparsable inline style",
					zap.String("element", e.ID),
					zap.Error(err))
				continue
			}
			if props.Len() > 0 {
				e.InlineStyle = props
			}
		default:
			if e.Attributes == nil {
				e.Attributes = make(map[string]string)
			}
			e.Attributes[attr.Key] = attr.Val
		}
	}

	var text []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if s := strings.Join(strings.Fields(c.Data), " "); s != "" {
				text = append(text, s)
			}
		case html.ElementNode:
			if child := b.build(t, c, e.ID); child != nil {
				e.Children = append(e.Children, child)
			}
		}
	}
	e.Text = strings.Join(text, " ")
	return e
}

// splitClasses splits a class attribute, keeping first occurrences only.
func splitClasses(attr string) []string {
	fields := strings.Fields(attr)
	if len(fields) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(fields))
	out := fields[:0]
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}
