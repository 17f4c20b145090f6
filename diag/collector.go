// Package diag collects per run diagnostics instead of keeping counters in
// package state. Collector is created by the caller, handed down the call
// chain and flushed by the caller.
package diag

import (
	"fmt"
	"sort"
	"sync"

	"github.com/maruel/natural"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"reflow/utils/debug"
)

// PageLevel is used as block index for events not related to a single block.
const PageLevel = -1

type Event struct {
	Kind    Kind
	Page    int
	Block   int
	Message string
	Fields  []zap.Field
}

// Collector accumulates events. All methods are safe for concurrent use and
// nil collector silently ignores everything.
type Collector struct {
	mu      sync.Mutex
	events  []Event
	flushed int
	counts  map[Kind]int
}

func New() *Collector {
	return &Collector{counts: make(map[Kind]int)}
}

// Record stores event.
func (c *Collector) Record(e Event) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.events = append(c.events, e)
	c.counts[e.Kind]++
}

// At returns recorder bound to page and block.
func (c *Collector) At(page, block int) Recorder {
	return Recorder{c: c, page: page, block: block}
}

// Events returns copy of everything recorded so far.
func (c *Collector) Events() []Event {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// Count returns number of recorded events of a kind.
func (c *Collector) Count(kind Kind) int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[kind]
}

// Flush logs events recorded since previous flush. Degraded output is logged
// as warning, everything else as debug.
func (c *Collector) Flush(log *zap.Logger) {
	if c == nil || log == nil {
		return
	}
	c.mu.Lock()
	pending := c.events[c.flushed:]
	c.flushed = len(c.events)
	c.mu.Unlock()

	for _, e := range pending {
		fields := append([]zap.Field{
			zap.Stringer("kind", e.Kind),
			zap.Int("page", e.Page),
		}, e.Fields...)
		if e.Block != PageLevel {
			fields = append(fields, zap.Int("block", e.Block))
		}
		if e.Kind.Degraded() {
			log.Warn(e.Message, fields...)
		} else {
			log.Debug(e.Message, fields...)
		}
	}
}

type Count struct {
	Kind Kind
	N    int
}

// Summary returns non zero per kind counters in natural order of kind names.
func (c *Collector) Summary() []Count {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.counts))
	for k := range c.counts {
		names = append(names, string(k))
	}
	sort.Sort(natural.StringSlice(names))

	out := make([]Count, 0, len(names))
	for _, name := range names {
		out = append(out, Count{Kind: Kind(name), N: c.counts[Kind(name)]})
	}
	return out
}

// Dump renders outline of all events grouped by page and block.
func (c *Collector) Dump() []byte {
	events := c.Events()
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Page != events[j].Page {
			return events[i].Page < events[j].Page
		}
		return events[i].Block < events[j].Block
	})

	tw := debug.NewTreeWriter()
	for _, cnt := range c.Summary() {
		tw.Line(0, "%s: %d", cnt.Kind, cnt.N)
	}
	var (
		started     bool
		page, block int
	)
	for _, e := range events {
		if !started || e.Page != page {
			started = true
			page, block = e.Page, PageLevel-1
			tw.Line(0, "page %d", page)
		}
		if e.Block != block {
			block = e.Block
			if block == PageLevel {
				tw.Line(1, "page level")
			} else {
				tw.Line(1, "block %d", block)
			}
		}
		tw.Text(2, e.Kind.String(), e.Message)
		for _, f := range e.Fields {
			tw.Text(3, f.Key, fieldValue(f))
		}
	}
	return tw.Bytes()
}

func fieldValue(f zap.Field) string {
	enc := zapcore.NewMapObjectEncoder()
	f.AddTo(enc)
	return fmt.Sprint(enc.Fields[f.Key])
}

// Recorder records events for a fixed page and block. Zero value is usable
// and discards everything.
type Recorder struct {
	c     *Collector
	page  int
	block int
}

func (r Recorder) Record(kind Kind, msg string, fields ...zap.Field) {
	if r.c == nil {
		return
	}
	r.c.Record(Event{Kind: kind, Page: r.page, Block: r.block, Message: msg, Fields: fields})
}

// Block returns recorder for another block of the same page.
func (r Recorder) Block(block int) Recorder {
	r.block = block
	return r
}
