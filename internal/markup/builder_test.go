package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const page = `<!DOCTYPE html>
<html>
<head>
  <title>t</title>
  <style>.card { color: red; }</style>
</head>
<body>
  <div class="card wide card" id="main" data-x="1">
    Hello
    <p class="text" style="color: green; margin: 0">First <b>bold</b> tail</p>
    <script>var x = 1;</script>
  </div>
  <style>p { margin: 1px; }</style>
  <span></span>
</body>
</html>`

func TestBuilderParse(t *testing.T) {
	tree, err := NewBuilder(nil).ParseString(page)
	require.NoError(t, err)

	require.Len(t, tree.Roots, 2)
	assert.Equal(t, 4, tree.Len())

	div := tree.Roots[0]
	assert.Equal(t, "el-0", div.ID)
	assert.Equal(t, "div", div.Tag)
	assert.Equal(t, []string{"card", "wide"}, div.Classes)
	assert.Equal(t, map[string]string{"id": "main", "data-x": "1"}, div.Attributes)
	assert.Equal(t, "Hello", div.Text)
	assert.Nil(t, div.InlineStyle)

	require.Len(t, div.Children, 1, "script is skipped")
	p := div.Children[0]
	assert.Equal(t, "el-1", p.ID)
	assert.Equal(t, []string{"text"}, p.Classes)
	assert.Equal(t, "First tail", p.Text)
	require.NotNil(t, p.InlineStyle)
	assert.Equal(t, "color: green; margin: 0", p.InlineStyle.String())
	assert.NotContains(t, p.Attributes, "style")

	require.Len(t, p.Children, 1)
	assert.Equal(t, "el-2", p.Children[0].ID)
	assert.Equal(t, "bold", p.Children[0].Text)

	assert.Equal(t, "el-3", tree.Roots[1].ID)
	assert.Equal(t, "span", tree.Roots[1].Tag)

	assert.Equal(t, []string{".card { color: red; }", "p { margin: 1px; }"}, tree.StyleSheets)
}

func TestBuilderFragment(t *testing.T) {
	tree, err := NewBuilder(nil).ParseString(`<div class="container"><p class="text">Hi</p></div>`)
	require.NoError(t, err)

	require.Len(t, tree.Roots, 1)
	assert.Equal(t, "container", tree.Roots[0].Classes[0])
	assert.Equal(t, "Hi", tree.Roots[0].Children[0].Text)
	assert.Empty(t, tree.StyleSheets)
}

func TestBuilderEmpty(t *testing.T) {
	tree, err := NewBuilder(nil).ParseString("")
	require.NoError(t, err)
	assert.Equal(t, 0, tree.Len())
	assert.Empty(t, tree.Roots)
}

func TestTreeNavigation(t *testing.T) {
	tree, err := NewBuilder(nil).ParseString(`<ul><li>a</li><li><em>b</em></li></ul>`)
	require.NoError(t, err)

	em, ok := tree.ByID("el-3")
	require.True(t, ok)
	assert.Equal(t, "em", em.Tag)

	parent, ok := tree.Parent("el-3")
	require.True(t, ok)
	assert.Equal(t, "el-2", parent.ID)

	_, ok = tree.Parent("el-0")
	assert.False(t, ok, "roots have no parent")

	_, ok = tree.ByID("el-99")
	assert.False(t, ok)

	var visited []string
	tree.Walk(func(e *Element) bool {
		visited = append(visited, e.ID)
		return e.Tag != "li" || e.Text == ""
	})
	assert.Equal(t, []string{"el-0", "el-1", "el-2", "el-3"}, visited)

	var ids []string
	for _, e := range tree.Elements() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"el-0", "el-1", "el-2", "el-3"}, ids)
}

func TestTreeMatch(t *testing.T) {
	tree, err := NewBuilder(nil).ParseString(`<div><p>a</p><span></span><p>b</p></div>`)
	require.NoError(t, err)

	got := tree.Match(func(n *html.Node) bool { return n.Data == "p" })
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Text)
	assert.Equal(t, "b", got[1].Text)
}

func TestTreePrint(t *testing.T) {
	tree, err := NewBuilder(nil).ParseString(`<div class="card"><p>Hello</p></div>`)
	require.NoError(t, err)

	out := tree.Print()
	assert.True(t, strings.HasPrefix(out, "document"))
	assert.Contains(t, out, "el-0 div.card")
	assert.Contains(t, out, `el-1 p "Hello"`)
}

func TestSplitClasses(t *testing.T) {
	assert.Nil(t, splitClasses("   "))
	assert.Equal(t, []string{"a", "b", "c"}, splitClasses(" a  b\ta c b "))
}
