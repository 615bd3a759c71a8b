package html2wf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/html2wf/internal/cascade"
	"github.com/yacobolo/html2wf/internal/markup"
	"github.com/yacobolo/html2wf/internal/naming"
	"github.com/yacobolo/html2wf/internal/stylesheet"
)

// ErrNoInput is returned by Convert when the input patterns match no files.
var ErrNoInput = errors.New("no input files matched")

// Converter runs conversions. It holds no per-run state and is safe for
// concurrent use.
type Converter struct {
	cfg      Config
	log      *zap.Logger
	builder  *markup.Builder
	parser   *stylesheet.Parser
	resolver *cascade.Resolver
}

// NewConverter creates a converter. Zero config fields fall back to
// DefaultConfig values, except InlineStyles which is taken as given.
func NewConverter(cfg Config, log *zap.Logger) *Converter {
	if log == nil {
		log = zap.NewNop()
	}
	def := DefaultConfig()
	if cfg.Prefix == "" {
		cfg.Prefix = def.Prefix
	}
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	return &Converter{
		cfg:      cfg,
		log:      log,
		builder:  markup.NewBuilder(log),
		parser:   stylesheet.NewParser(log),
		resolver: cascade.NewResolver(log),
	}
}

// Config returns the effective configuration.
func (c *Converter) Config() Config {
	return c.cfg
}

// ConvertString converts in-memory markup and stylesheet text.
func (c *Converter) ConvertString(markupText, css string) (*Document, error) {
	var sources []sourceText
	if css != "" {
		sources = append(sources, sourceText{name: "<stylesheet>", text: css})
	}
	return c.convert(newRunID(), "", markupText, sources)
}

// ConvertFile converts one markup file against the given stylesheet files.
func (c *Converter) ConvertFile(path string, stylesheets []string) (*Document, error) {
	sources, err := readSources(stylesheets)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return c.convert(newRunID(), path, string(data), sources)
}

// Convert converts every markup file matched by opts.Inputs, running up
// to Config.Workers conversions at once. A failing file does not stop
// the others; all failures are combined into the returned error, which
// is non-nil together with a partial result.
func (c *Converter) Convert(ctx context.Context, opts BatchOptions) (*BatchResult, error) {
	runID := newRunID()
	log := c.log.With(zap.String("run", runID))

	inputs, stats, err := expandGlobPatternsWithStats(opts.Inputs)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	if len(inputs) == 0 {
		return nil, ErrNoInput
	}
	log.Info("Converting files",
		zap.Int("files", stats.FilesScanned),
		zap.Int("skipped", stats.FilesSkipped))

	styleFiles, err := expandGlobPatterns(opts.Stylesheets)
	if err != nil {
		return nil, fmt.Errorf("stylesheet scan failed: %w", err)
	}
	sources, err := readSources(styleFiles)
	if err != nil {
		return nil, err
	}

	docs := make([]*Document, len(inputs))
	var (
		mu   sync.Mutex
		errs error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Workers)
	for i, path := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err == nil {
				docs[i], err = c.convert(runID, path, string(data), sources)
			}
			if err != nil {
				log.Warn("Conversion failed", zap.String("file", path), zap.Error(err))
				mu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", path, err))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &BatchResult{RunID: runID, Stats: stats}
	for _, d := range docs {
		if d != nil {
			res.Documents = append(res.Documents, d)
		}
	}
	res.Failed = len(inputs) - len(res.Documents)

	log.Info("Conversion finished",
		zap.Int("documents", len(res.Documents)),
		zap.Int("failed", res.Failed))
	return res, errs
}

// convert runs one conversion. The registry is created here and never
// outlives the call.
func (c *Converter) convert(runID, name, markupText string, external []sourceText) (*Document, error) {
	log := c.log.With(zap.String("run", runID))
	if name != "" {
		log = log.With(zap.String("file", name))
	}

	// 1. Parse markup
	tree, err := c.builder.ParseString(markupText)
	if err != nil {
		return nil, err
	}

	// 2. Parse stylesheets: external sources, then <style> blocks
	sources := make([]sourceText, 0, len(external)+len(tree.StyleSheets))
	sources = append(sources, external...)
	for i, css := range tree.StyleSheets {
		sources = append(sources, sourceText{name: styleBlockName(name, i), text: css})
	}
	sheet := &Stylesheet{}
	for i := range sources {
		src := &sources[i]
		src.first = sheet.RuleCount()
		parsed, err := c.parser.ParseFrom(src.text, src.first)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.name, err)
		}
		src.count = parsed.RuleCount()
		src.imports = parsed.Imports
		sheet.Append(parsed)
	}

	// 3. Register markup classes in document order
	registry := naming.NewRegistry(c.cfg.Prefix)
	tree.Walk(func(e *markup.Element) bool {
		for _, class := range e.Classes {
			registry.Generate(class)
		}
		return true
	})
	markupClasses := registry.Len()

	// 4. Rewrite selectors
	sheet.EachRule(func(r *Rule) {
		r.SetSelector(registry.RewriteSelector(r.Selector))
	})

	// 5. Resolve every element
	doc := &Document{
		RunID:      runID,
		Source:     name,
		Tree:       tree,
		Stylesheet: sheet,
		byID:       make(map[string]int, tree.Len()),
		markup:     markupText,
		sources:    sources,
	}
	for _, e := range tree.Elements() {
		target := cascade.Target{Tag: e.Tag}
		for _, class := range e.Classes {
			generated, _ := registry.LookupGenerated(class)
			target.Classes = append(target.Classes, generated)
		}
		if c.cfg.InlineStyles {
			target.Inline = e.InlineStyle
		}

		doc.byID[e.ID] = len(doc.Elements)
		doc.Elements = append(doc.Elements, ElementStyle{
			ID:              e.ID,
			Tag:             e.Tag,
			OriginalClasses: e.Classes,
			Classes:         target.Classes,
			Properties:      c.resolver.Resolve(target, sheet.Rules),
			Conditional:     c.resolver.ResolveGroups(target, sheet.Groups),
		})
	}
	doc.Mappings = registry.Mappings()

	log.Debug("Converted document",
		zap.Int("elements", len(doc.Elements)),
		zap.Int("rules", sheet.RuleCount()),
		zap.Int("markupClasses", markupClasses),
		zap.Int("stylesheetOnlyClasses", registry.Len()-markupClasses))
	return doc, nil
}

func readSources(paths []string) ([]sourceText, error) {
	sources := make([]sourceText, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read stylesheet %s: %w", p, err)
		}
		sources = append(sources, sourceText{name: p, text: string(data)})
	}
	return sources, nil
}

func styleBlockName(markupName string, i int) string {
	if markupName == "" {
		return fmt.Sprintf("<style #%d>", i+1)
	}
	return fmt.Sprintf("%s <style #%d>", markupName, i+1)
}

func newRunID() string {
	return uuid.Must(uuid.NewV7()).String()
}
