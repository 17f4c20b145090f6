// Package text splits prose into sentences and words.
package text

import (
	"iter"
	"regexp"
	"strings"
	"unicode"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

type Splitter struct {
	*sentences.DefaultSentenceTokenizer
}

// NewSplitter returns sentence splitter for the language. Punkt tokenizer
// with english training handles abbreviations and ordinals of other latin
// script languages well enough for locating the first sentence. Returns nil
// (splitting off) when tokenizer cannot be built, nil Splitter is usable.
func NewSplitter(lang language.Tag, log *zap.Logger) *Splitter {
	if log == nil {
		log = zap.NewNop()
	}
	script, _ := lang.Script()
	if script.String() != "Latn" {
		log.Warn("No sentence tokenizer for script, turning off sentence splitting",
			zap.String("language", display.English.Tags().Name(lang)), zap.Stringer("script", script))
		return nil
	}
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		log.Warn("Unable to load sentences tokenizer data", zap.Stringer("tag", lang), zap.Error(err))
		return nil
	}
	log.Debug("Sentence tokenizer ready", zap.String("language", display.English.Tags().Name(lang)))
	return &Splitter{tok}
}

var moveNumberTailRe = regexp.MustCompile(`(?:^|\s|\()\d{1,3}\.{1,3}\s*$`)

// Split returns slice of sentences. Concatenation of the result is always
// equal to the input: trailing spaces stay with the sentence they follow.
func (s *Splitter) Split(in string) []string {
	var out []string
	for sentence := range s.Sentences(in) {
		out = append(out, sentence)
	}
	return out
}

// Sentences returns an iterator over sentences. Move numbers ("16.") are not
// treated as sentence ends.
func (s *Splitter) Sentences(in string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if s == nil {
			if in != "" {
				yield(in)
			}
			return
		}

		pieces := s.pieces(in)
		var pending strings.Builder
		for i, piece := range pieces {
			pending.WriteString(piece)
			if i < len(pieces)-1 && moveNumberTailRe.MatchString(pending.String()) {
				continue
			}
			if !yield(pending.String()) {
				return
			}
			pending.Reset()
		}
	}
}

// pieces tokenizes and moves leading spaces of each sentence to the previous
// one, tokenizer does it the other way round.
func (s *Splitter) pieces(in string) []string {
	var pieces []string
	for _, sentence := range s.Tokenize(in) {
		pieces = append(pieces, sentence.Text)
	}
	for i := range len(pieces) - 1 {
		next := pieces[i+1]
		idx := strings.IndexFunc(next, func(r rune) bool { return !unicode.IsSpace(r) })
		if idx > 0 {
			pieces[i] += next[:idx]
			pieces[i+1] = next[idx:]
		}
	}
	// tokenizer may drop text it considers blank
	if joined := strings.Join(pieces, ""); joined != in {
		if strings.HasPrefix(in, joined) && len(pieces) > 0 {
			pieces[len(pieces)-1] += in[len(joined):]
		} else {
			return []string{in}
		}
	}
	return pieces
}

// SplitWords returns slice of words.
func SplitWords(in string, ignoreNBSP bool) []string {
	var result []string
	for w := range Words(in, ignoreNBSP) {
		result = append(result, w)
	}
	return result
}

// Words returns an iterator over non empty words. When ignoreNBSP is false
// non-breaking space glues its neighbours into a single word.
func Words(in string, ignoreNBSP bool) iter.Seq[string] {
	return func(yield func(string) bool) {
		var word strings.Builder
		for _, sym := range in {
			if isSeparator(sym, ignoreNBSP) {
				if word.Len() > 0 {
					if !yield(word.String()) {
						return
					}
					word.Reset()
				}
				continue
			}
			word.WriteRune(sym)
		}
		if word.Len() > 0 {
			yield(word.String())
		}
	}
}

func isSeparator(r rune, ignoreNBSP bool) bool {
	if uint32(r) <= unicode.MaxLatin1 {
		switch r {
		// exclude NBSP from the list of white space separators for latin1 symbols
		case '\t', '\n', '\v', '\f', '\r', ' ', 0x85:
			return true
		case 0xA0: // NBSP
			return ignoreNBSP
		}
		return false
	}
	return unicode.IsSpace(r)
}
