package html2wf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindClassColumn(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		className string
		wantCol   int
	}{
		{
			name:      "single class",
			line:      `<div class="btn">`,
			className: "btn",
			wantCol:   13, // Position of 'b' in "btn"
		},
		{
			name:      "multiple classes - first",
			line:      `<div class="btn btn--primary">`,
			className: "btn",
			wantCol:   13,
		},
		{
			name:      "multiple classes - second",
			line:      `<div class="btn btn--primary">`,
			className: "btn--primary",
			wantCol:   17,
		},
		{
			name:      "with leading spaces",
			line:      `  <div class="btn btn--outline">`,
			className: "btn--outline",
			wantCol:   19,
		},
		{
			name:      "single quotes",
			line:      `<div class='icon nav-item-icon'>`,
			className: "nav-item-icon",
			wantCol:   18,
		},
		{
			name:      "prefix of another token is not a match",
			line:      `<div class="btn-group">`,
			className: "btn",
			wantCol:   0,
		},
		{
			name:      "second element on the line",
			line:      `<p class="a"></p><p class="b">`,
			className: "b",
			wantCol:   28,
		},
		{
			name:      "class not found",
			line:      `<div class="btn">`,
			className: "nonexistent",
			wantCol:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := findClassColumn(tt.line, tt.className)
			require.Equal(t, tt.wantCol, got)
		})
	}
}

func TestIsVendored(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"node_modules/lib/index.html", true},
		{"site/bower_components/x/page.html", true},
		{"site/index.html", false},
		{"site/my_node_modules.html", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			require.Equal(t, tt.expected, isVendored(tt.path), "isVendored(%q)", tt.path)
		})
	}
}

func TestShouldSkipFile(t *testing.T) {
	assert.True(t, shouldSkipFile("web/node_modules/pkg/demo.html"))
	assert.False(t, shouldSkipFile("web/pages/index.html"))
	assert.False(t, shouldSkipFile(filepath.Join(t.TempDir(), "node.html")))
}

func TestExpandGlobPatternsWithStats(t *testing.T) {
	dir := t.TempDir()
	write := func(rel string) {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("<p></p>"), 0o644))
	}
	write("a.html")
	write("pages/b.html")
	write("node_modules/dep/c.html")
	write("style.css")

	files, stats, err := expandGlobPatternsWithStats([]string{
		filepath.Join(dir, "**", "*.html"),
		filepath.Join(dir, "a.html"), // duplicate
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.html"),
		filepath.Join(dir, "pages", "b.html"),
	}, files)
	assert.Equal(t, 3, stats.FilesDiscovered)
	assert.Equal(t, 2, stats.FilesScanned)
	assert.Equal(t, 1, stats.FilesSkipped)
}

func TestLocateClass(t *testing.T) {
	src := "<div>\n  <p class=\"lead text\">x</p>\n</div>"

	loc := locateClass("index.html", src, "text")
	assert.Equal(t, FileLocation{File: "index.html", Line: 2, Column: 18, Text: `  <p class="lead text">x</p>`}, loc)

	missing := locateClass("index.html", src, "nope")
	assert.Equal(t, 0, missing.Line)
	assert.Equal(t, "index.html", missing.File)
}

func TestLocateSelector(t *testing.T) {
	src := ".a { color: red }\nh1,\nh2 { margin: 0 }\n"

	loc := locateSelector("site.css", src, ".a")
	assert.Equal(t, 1, loc.Line)
	assert.Equal(t, 1, loc.Column)

	// "h1, h2" is normalized by the parser and not present verbatim
	loc = locateSelector("site.css", src, "h1, h2")
	assert.Equal(t, 2, loc.Line)
	assert.Equal(t, "h1,", loc.Text)
}
