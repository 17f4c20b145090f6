package translate

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"

	"reflow/config"
	"reflow/diag"
	"reflow/notation"
)

// Translator is the translation collaborator of the pipeline.
type Translator struct {
	engine Engine
	cache  *Cache
	cfg    config.TranslatorConfig
	log    *zap.Logger

	sleep  func(ctx context.Context, d time.Duration) error
	jitter func() float64
	calls  int
}

// New returns translator using engine. Cache is optional.
func New(engine Engine, cache *Cache, cfg *config.TranslatorConfig, log *zap.Logger) *Translator {
	return &Translator{
		engine: engine,
		cache:  cache,
		cfg:    *cfg,
		log:    log,
		sleep:  sleepContext,
		jitter: rand.Float64,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// TranslateChunks translates texts in order, result has the same length.
// Blank entries are passed through. Chunk which cannot be translated is
// returned as is and recorded for block with the same index.
func (t *Translator) TranslateChunks(ctx context.Context, texts []string, rec diag.Recorder) []string {
	out := make([]string, len(texts))
	for i, text := range texts {
		out[i] = t.Translate(ctx, text, rec.Block(i))
	}
	return out
}

// Translate translates single chunk, never fails.
func (t *Translator) Translate(ctx context.Context, text string, rec diag.Recorder) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	passthrough := t.engine.Name() == config.TranslatorEngineNone.String()

	key := CacheKey(t.engine.Name(), t.cfg.Model, text)
	if t.cache != nil && !passthrough {
		if cached, ok, err := t.cache.Get(key); err != nil {
			t.log.Warn("Translation cache lookup failed", zap.Error(err))
		} else if ok {
			t.log.Debug("Translation served from cache", zap.Int("length", len(text)))
			return cached
		}
	}

	// notation survives translation better behind placeholders, when
	// placeholders are lost full text is sent instead
	var (
		out string
		err error
	)
	protected := notation.Protect(text)
	if len(protected.Fragments) > 0 {
		out, err = t.attempt(ctx, protected.Text)
		if err == nil {
			if missing := protected.Missing(out); missing > 0 {
				t.log.Debug("Translation lost notation placeholders, sending unprotected text", zap.Int("missing", missing))
				out, err = t.attempt(ctx, text)
			} else {
				out = protected.Restore(out)
			}
		}
	} else {
		out, err = t.attempt(ctx, text)
	}

	if err != nil {
		t.log.Warn("Translation unavailable, keeping original text", zap.Error(err))
		rec.Record(diag.KindTranslationUnavailable, "original text used", zap.Error(err))
		return text
	}

	out = postprocess(text, out)
	switch {
	case passthrough:
	case out == text:
		rec.Record(diag.KindUntranslated, "translation is identical to source")
	case looksEnglish(out):
		rec.Record(diag.KindUntranslated, "translation looks like English prose", zap.String("text", out))
	}
	if t.cache != nil && !passthrough {
		if err := t.cache.Put(key, t.engine.Name(), out); err != nil {
			t.log.Warn("Unable to cache translation", zap.Error(err))
		}
	}
	return out
}

// attempt calls engine up to configured number of times. Failed calls and
// invalid responses are retried after delay requested by server or after
// exponential backoff.
func (t *Translator) attempt(ctx context.Context, text string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= t.cfg.MaxRetries; attempt++ {
		if t.calls > 0 && t.cfg.RequestDelay > 0 {
			if err := t.sleep(ctx, t.cfg.RequestDelay); err != nil {
				return "", err
			}
		}
		t.calls++

		out, err := t.engine.Translate(ctx, text)
		if err == nil {
			err = validate(text, out, t.cfg.GrowthCap)
		}
		if err == nil {
			return out, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		lastErr = err
		if attempt == t.cfg.MaxRetries {
			break
		}

		delay, ok := serverDelay(err)
		if !ok {
			delay = backoff(attempt, t.cfg.BackoffBase, t.cfg.MaxBackoff, t.jitter())
		}
		t.log.Debug("Translation attempt failed, retrying",
			zap.Int("attempt", attempt), zap.Duration("delay", delay), zap.Error(err))
		if err := t.sleep(ctx, delay); err != nil {
			return "", err
		}
	}
	return "", lastErr
}
