package html2wf

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		formatFlag string
		quiet      bool
		expected   OutputFormat
	}{
		{name: "explicit quiet flag", quiet: true, expected: OutputText},
		{name: "explicit text format", formatFlag: "text", expected: OutputText},
		{name: "explicit full format", formatFlag: "full", expected: OutputFull},
		{name: "explicit json format", formatFlag: "json", expected: OutputJSON},
		{name: "explicit tree format", formatFlag: "tree", expected: OutputTree},
		{name: "explicit css format", formatFlag: "css", expected: OutputCSS},
		{name: "case insensitive", formatFlag: "JSON", expected: OutputJSON},
		{name: "unknown falls back to default", formatFlag: "markdown", expected: OutputText},
		{name: "default format is text", expected: OutputText},
		{name: "quiet overrides format flag", formatFlag: "full", quiet: true, expected: OutputText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetermineOutputFormat(tt.formatFlag, tt.quiet))
		})
	}
}

func sampleDocument(t *testing.T) *Document {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	doc, err := NewConverter(Config{Prefix: "wf-"}, nil).ConvertString(
		`<div class="container"><p class="text">Hi</p><span></span></div>`,
		`.container{width:100%} p{color:red} .text{color:blue} @media print { .text { color: black } }`,
	)
	require.NoError(t, err)
	return doc
}

func TestWriteOutputText(t *testing.T) {
	var buf bytes.Buffer
	err := WriteOutput(&buf, []*Document{sampleDocument(t)}, nil, OutputText, ReportConfig{})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "container -> wf-container")
	assert.Contains(t, out, "text      -> wf-text")
	assert.Contains(t, out, "el-0 div.wf-container\n    width: 100%\n")
	assert.Contains(t, out, "el-1 p.wf-text\n    color: blue\n    @media print: color: black\n")
	assert.NotContains(t, out, "el-2", "unstyled elements are omitted")
}

func TestWriteOutputFull(t *testing.T) {
	doc := sampleDocument(t)
	audit := Audit([]*Document{doc}, AuditConfig{})

	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, []*Document{doc}, audit, OutputFull, ReportConfig{}))

	out := buf.String()
	assert.Contains(t, out, "Property Categories")
	assert.Contains(t, out, "  Layout:\n    width: 100%\n")
	assert.Contains(t, out, "  Visual:\n    color: blue\n")
	assert.Contains(t, out, "Cascade Statistics")
	assert.Contains(t, out, "Rule Coverage")
	assert.Contains(t, out, "0 issues:")
}

func TestWriteOutputCSS(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, []*Document{sampleDocument(t)}, nil, OutputCSS, ReportConfig{}))

	out := buf.String()
	assert.Contains(t, out, ".wf-container { width: 100%; }\n")
	assert.Contains(t, out, "@media print {\n  .wf-text { color: black; }\n}\n")
	assert.NotContains(t, out, "/*", "single document has no header")
}

func TestWriteOutputTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, []*Document{sampleDocument(t)}, nil, OutputTree, ReportConfig{}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "document"))
	assert.Contains(t, out, "el-0 div.container")
	assert.Contains(t, out, `el-1 p.text "Hi"`)
}

func TestWriteJSON(t *testing.T) {
	doc := sampleDocument(t)
	audit := Audit([]*Document{doc}, AuditConfig{})

	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, []*Document{doc}, audit, OutputJSON, ReportConfig{}))

	var decoded struct {
		Version   string `json:"version"`
		Documents []struct {
			RunID   string    `json:"run_id"`
			Classes []Mapping `json:"classes"`
			Elements []struct {
				ID         string            `json:"id"`
				Classes    []string          `json:"classes"`
				Properties map[string]string `json:"properties"`
			} `json:"elements"`
		} `json:"documents"`
		Audit struct {
			Summary JSONSummary `json:"summary"`
			Stats   JSONStats   `json:"stats"`
		} `json:"audit"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "1.0", decoded.Version)
	require.Len(t, decoded.Documents, 1)
	assert.Equal(t, doc.RunID, decoded.Documents[0].RunID)
	assert.Equal(t, doc.Mappings, decoded.Documents[0].Classes)
	require.Len(t, decoded.Documents[0].Elements, 3)
	assert.Equal(t, map[string]string{"color": "blue"}, decoded.Documents[0].Elements[1].Properties)
	assert.Empty(t, decoded.Documents[0].Elements[2].Properties)

	assert.Equal(t, 1, decoded.Audit.Summary.Documents)
	assert.Equal(t, 3, decoded.Audit.Stats.Elements)
}

func TestWriteJSONKeepsPropertyOrder(t *testing.T) {
	doc, err := NewConverter(Config{}, nil).ConvertString(`<p class="a"></p>`, `.a { z-index: 1; color: red; align-items: center }`)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, []*Document{doc}, nil))
	assert.Contains(t, buf.String(), `"properties": {
            "z-index": "1",
            "color": "red",
            "align-items": "center"
          }`)
}

func TestWriteAuditOutput(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	doc, err := NewConverter(Config{}, nil).ConvertString(`<p class="x"></p>`, `p.x { color: red }`)
	require.NoError(t, err)
	result := Audit([]*Document{doc}, AuditConfig{})

	var buf bytes.Buffer
	require.NoError(t, WriteAuditOutput(&buf, result, OutputText, ReportConfig{PrintLinterName: true}))

	out := buf.String()
	assert.Contains(t, out, `<stylesheet>:1:1: selector "p.x" matches 1 element but is never applied`)
	assert.Contains(t, out, "(ignored-selector)")
	assert.Contains(t, out, "* ignored-selector: 1")
	assert.NotContains(t, out, "Cascade Statistics")

	buf.Reset()
	require.NoError(t, WriteAuditOutput(&buf, result, OutputFull, ReportConfig{}))
	assert.Contains(t, buf.String(), "Cascade Statistics")
}
