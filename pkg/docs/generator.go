package docs

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/uidocs/pkg/config"
	"github.com/platinummonkey/uidocs/pkg/example"
	"github.com/platinummonkey/uidocs/pkg/markdown"
	"github.com/platinummonkey/uidocs/pkg/minerr"
	"github.com/platinummonkey/uidocs/pkg/ngdoc"
	"github.com/platinummonkey/uidocs/pkg/observability"
	"github.com/platinummonkey/uidocs/pkg/reader"
	"github.com/platinummonkey/uidocs/pkg/sourcecache"
	"github.com/platinummonkey/uidocs/pkg/storage"
)

// Pipeline stages, as reported in logs and metrics
const (
	StageRead     = "read"
	StageParse    = "parse"
	StageMerge    = "merge"
	StageRender   = "render"
	StageValidate = "validate"
	StageWrite    = "write"
)

// Generator runs the documentation pipeline for one configuration
type Generator struct {
	cfg     *config.Config
	log     logrus.FieldLogger
	metrics *observability.Metrics
	index   *IndexExporter
}

// Result summarizes a generator run
type Result struct {
	RunID    string
	Docs     []*ngdoc.Doc
	Pages    []ngdoc.Page
	Warnings []ngdoc.LinkWarning
	Output   storage.Stats
	Duration time.Duration
}

// NewGenerator creates a generator. metrics may be nil.
func NewGenerator(cfg *config.Config, log logrus.FieldLogger, metrics *observability.Metrics) *Generator {
	if log == nil {
		log = logrus.New()
	}
	return &Generator{
		cfg:     cfg,
		log:     log,
		metrics: metrics,
		index:   NewIndexExporter(),
	}
}

// Run reads every configured section, parses, merges, renders and validates
// the docs, then writes the site to w. The first fatal error aborts the run;
// broken links are only reported.
func (g *Generator) Run(ctx context.Context, w storage.Writer) (*Result, error) {
	start := time.Now()
	res := &Result{RunID: uuid.New().String()}

	ctx = observability.WithLogger(observability.WithRunID(ctx, res.RunID), g.log)
	log := observability.FromContext(ctx)
	log.WithField("sections", len(g.cfg.Sections)).Info("Starting documentation run")

	sources, err := sourcecache.New(g.cfg.SourceCacheSize)
	if err != nil {
		return nil, err
	}
	sources.SetRoot(g.cfg.SourceDir)

	ignore, err := g.ignoreWords()
	if err != nil {
		return nil, err
	}

	blocks, err := g.read(log)
	if err != nil {
		return nil, err
	}

	docs, err := g.parse(log, blocks, g.options(sources))
	if err != nil {
		return nil, err
	}

	stageStart := time.Now()
	docs, err = ngdoc.Merge(docs)
	if err != nil {
		return nil, fmt.Errorf("failed to merge docs: %w", err)
	}
	g.observe(StageMerge, stageStart)
	res.Docs = docs

	rendered, err := g.render(log, docs)
	if err != nil {
		return nil, err
	}

	stageStart = time.Now()
	res.Warnings = ngdoc.CheckBrokenLinks(docs, g.cfg.APISections(), ngdoc.LinkOptions{
		HTML5Mode:  g.cfg.HTML5Mode,
		LinkPrefix: g.cfg.LinkPrefix,
	}, log)
	res.Pages = ngdoc.Metadata(docs, ignore)
	g.observe(StageValidate, stageStart)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stageStart = time.Now()
	if err := g.write(ctx, w, docs, rendered, res.Pages); err != nil {
		return nil, err
	}
	g.observe(StageWrite, stageStart)

	res.Output = w.Stats()
	res.Duration = time.Since(start)
	g.record(res, sources.Stats())

	log.WithFields(logrus.Fields{
		"docs":     len(docs),
		"warnings": len(res.Warnings),
		"files":    res.Output.Files,
		"size":     humanize.Bytes(uint64(res.Output.Bytes)),
		"location": w.Location(),
		"duration": res.Duration.String(),
	}).Info("Documentation run complete")

	return res, nil
}

func (g *Generator) options(sources ngdoc.SourceReader) ngdoc.Options {
	opts := ngdoc.Options{
		HTML5Mode:           g.cfg.HTML5Mode,
		LinkPrefix:          g.cfg.LinkPrefix,
		HighlightCodeFences: g.cfg.HighlightCodeFences,
		NotesPrefix:         g.cfg.NotesPrefix,
		EditLink:            g.cfg.EditLinkFunc(),
		SourceLink:          g.cfg.SourceLinkFunc(),
		Markdown:            markdown.NewEngine(),
		Sources:             sources,
		Examples:            &example.Sequence{},
	}
	if g.cfg.ErrorFile != "" {
		opts.Errors = minerr.NewTable(g.cfg.ErrorFile)
	}
	return opts
}

func (g *Generator) ignoreWords() (ngdoc.IgnoreWords, error) {
	if g.cfg.IgnoreWordsFile == "" {
		return ngdoc.DefaultIgnoreWords(), nil
	}
	return ngdoc.LoadIgnoreWords(g.cfg.IgnoreWordsFile)
}

func (g *Generator) read(log logrus.FieldLogger) ([]reader.Block, error) {
	defer g.observe(StageRead, time.Now())

	r := reader.New(g.cfg.SourceDir, log)
	var blocks []reader.Block
	for _, s := range g.cfg.Sections {
		found, err := r.Section(s.Name, s.Paths)
		if err != nil {
			return nil, fmt.Errorf("failed to read section %s: %w", s.Name, err)
		}
		if len(found) == 0 {
			log.WithField("section", s.Name).Warn("Section has no documentation blocks")
		}
		blocks = append(blocks, found...)
	}
	return blocks, nil
}

func (g *Generator) parse(log logrus.FieldLogger, blocks []reader.Block, shared ngdoc.Options) ([]*ngdoc.Doc, error) {
	defer g.observe(StageParse, time.Now())

	apis := g.cfg.APISections()
	docs := make([]*ngdoc.Doc, 0, len(blocks))
	for _, b := range blocks {
		opts := shared
		opts.IsAPI = apis[b.Section]

		d := ngdoc.New(b.Text, b.File, b.StartLine, b.EndLine, &opts)
		d.Section = b.Section
		if err := d.Parse(); err != nil {
			return nil, err
		}
		for _, name := range d.OrphanParams {
			log.WithFields(logrus.Fields{
				"doc":   d.Name,
				"file":  d.File,
				"param": name,
			}).Debug("Dropped property of an undeclared param")
		}
		if g.metrics != nil {
			g.metrics.DocsParsedTotal.WithLabelValues(d.Section).Inc()
		}
		docs = append(docs, d)
	}
	return docs, nil
}

func (g *Generator) render(log logrus.FieldLogger, docs []*ngdoc.Doc) ([]string, error) {
	defer g.observe(StageRender, time.Now())

	rendered := make([]string, len(docs))
	for i, d := range docs {
		html, err := renderDoc(log, d)
		if err != nil {
			return nil, err
		}
		rendered[i] = html
		if g.metrics != nil {
			g.metrics.PagesRenderedTotal.WithLabelValues(d.Section, d.Kind).Inc()
		}
	}
	return rendered, nil
}

func renderDoc(log logrus.FieldLogger, d *ngdoc.Doc) (html string, err error) {
	defer observability.RecoverError(log, "render "+d.FullID(), &err)
	html, err = d.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to render %s (%s:%d): %w", d.FullID(), d.File, d.Line, err)
	}
	return html, nil
}

func (g *Generator) write(ctx context.Context, w storage.Writer, docs []*ngdoc.Doc, rendered []string, pages []ngdoc.Page) error {
	for i, d := range docs {
		if err := storage.WritePage(ctx, w, d.Section, d.ID, rendered[i]); err != nil {
			return err
		}
	}

	if err := storage.WriteJSON(ctx, w, storage.SetupFile, NewSetup(g.cfg, pages)); err != nil {
		return err
	}

	scenarios := ngdoc.Scenarios(docs, g.cfg.ScenarioURLPrefix)
	if err := w.WriteFile(ctx, storage.ScenarioFile, []byte(scenarios)); err != nil {
		return err
	}

	index, err := g.index.Export(g.cfg.Title, g.cfg.Sections, pages)
	if err != nil {
		return err
	}
	return w.WriteFile(ctx, storage.IndexFile, []byte(index))
}

func (g *Generator) observe(stage string, start time.Time) {
	if g.metrics != nil {
		g.metrics.ObserveStage(stage, start)
	}
}

func (g *Generator) record(res *Result, cache sourcecache.Stats) {
	if g.metrics == nil {
		return
	}
	for _, w := range res.Warnings {
		g.metrics.LinkWarningsTotal.WithLabelValues(w.Reason).Inc()
	}
	g.metrics.SourceCacheHitsTotal.Add(float64(cache.Hits))
	g.metrics.SourceCacheMissesTotal.Add(float64(cache.Misses))
	g.metrics.OutputFiles.Set(float64(res.Output.Files))
	g.metrics.OutputBytes.Set(float64(res.Output.Bytes))
}
