package convert

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"reflow/config"
	"reflow/content/text"
	"reflow/diag"
	"reflow/layout"
	"reflow/model"
	"reflow/notation"
	"reflow/preview"
	"reflow/state"
	"reflow/style"
	"reflow/translate"
)

// Processor runs the whole core over a single page at a time: runs, markers,
// translation, notation repair, reconciliation and layout. Pages share
// nothing but caches of collaborators.
type Processor struct {
	env *state.LocalEnv
	log *zap.Logger

	runs       style.RunBuilder
	repair     *notation.Pipeline
	reconciler *style.Engine
	translator *translate.Translator
	translates bool
	cache      *translate.Cache
	layout     *layout.Engine
	renderer   *preview.Renderer
}

// NewProcessor builds collaborators from configuration.
func NewProcessor(ctx context.Context, env *state.LocalEnv) (_ *Processor, err error) {
	cfg := env.Cfg
	log := env.Log.Named("process")

	lang, err := language.Parse(cfg.Reconcile.Language)
	if err != nil {
		return nil, fmt.Errorf("unknown target language %q: %w", cfg.Reconcile.Language, err)
	}

	p := &Processor{
		env: env,
		log: log,
		runs: style.RunBuilder{
			MinPrefix: cfg.Reconcile.MinPrefix,
			Projector: style.Projector{Window: cfg.Reconcile.SnapWindow},
		},
		repair:     notation.NewPipeline().WithPasses(cfg.Reconcile.RepairPasses),
		reconciler: style.NewEngine(&cfg.Reconcile, text.NewSplitter(lang, env.Log.Named("text"))),
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, p.Close())
		}
	}()

	var metrics layout.Metrics
	fonts, ferr := layout.NewFontMetrics(&cfg.Layout.Fonts, cfg.Layout.FallbackCharWidth)
	if ferr != nil {
		log.Warn("Unable to load fonts, using approximate metrics", zap.Error(ferr))
	} else {
		metrics = fonts
	}
	p.layout = layout.NewEngine(&cfg.Layout, metrics, env.Log.Named("layout"))

	if cfg.Output.Preview == config.PreviewFmtPng && !env.NoPreview {
		if fonts == nil {
			// drawing needs real faces even when measuring does not
			if fonts, ferr = layout.NewFontMetrics(&config.FontsConfig{}, cfg.Layout.FallbackCharWidth); ferr != nil {
				return nil, fmt.Errorf("unable to load built-in fonts: %w", ferr)
			}
		}
		p.renderer = preview.NewRenderer(fonts, cfg.Output.PreviewDPI)
	}

	var engine translate.Engine
	switch cfg.Translator.Engine {
	case config.TranslatorEngineOpenai:
		if engine, err = translate.NewOpenAI(ctx, &cfg.Translator, lang, cfg.Output.Timeout); err != nil {
			return nil, err
		}
		p.translates = true
	default:
		engine = translate.Passthrough{}
	}
	if p.translates && cfg.Translator.Cache.Enable {
		if p.cache, err = translate.OpenCache(cfg.Translator.Cache.Path); err != nil {
			return nil, err
		}
	}
	p.translator = translate.New(engine, p.cache, &cfg.Translator, env.Log.Named("translate"))

	log.Debug("Processor ready",
		zap.String("engine", engine.Name()),
		zap.Stringer("language", lang),
		zap.Bool("cache", p.cache != nil),
		zap.Bool("metrics", fonts != nil))
	return p, nil
}

// Process transforms page in place. Problems are recorded in the run
// diagnostics, page is always left in a usable state.
func (p *Processor) Process(ctx context.Context, page *model.Page) {
	rec := p.env.Diag.At(page.Number, diag.PageLevel)

	runs := make([][]model.Run, len(page.Blocks))
	marked := make([]string, len(page.Blocks))
	for i, b := range page.Blocks {
		runs[i] = p.runs.FromBlock(b, rec.Block(i))
		marked[i] = style.Encode(runs[i])
	}

	translated := p.translator.TranslateChunks(ctx, marked, rec)

	for i, b := range page.Blocks {
		if strings.TrimSpace(marked[i]) == "" {
			continue
		}
		brec := rec.Block(i)
		res := p.reconciler.Reconcile(runs[i], p.repair.Repair(translated[i]), brec)
		b.TranslatedMarked = res.Marked
		b.Strategy = res.Strategy.String()
		b.Segments = style.Decode(res.Marked)
		if p.translates {
			brec.CheckLanguage(style.Strip(res.Marked))
		}
	}

	if p.env.Cfg.Output.Layout {
		p.layout.LayoutPage(page, rec)
	}
	page.RunID = p.env.RunID
}

// Preview renders processed page in configured format, nil when previews
// are off.
func (p *Processor) Preview(page *model.Page) ([]byte, error) {
	if p.env.NoPreview {
		return nil, nil
	}
	switch p.env.Cfg.Output.Preview {
	case config.PreviewFmtSvg:
		return preview.SVG(page)
	case config.PreviewFmtPng:
		return p.renderer.PNG(page)
	}
	return nil, nil
}

func (p *Processor) Close() (err error) {
	if p.renderer != nil {
		err = multierr.Append(err, p.renderer.Close())
	}
	if p.cache != nil {
		err = multierr.Append(err, p.cache.Close())
	}
	return err
}
