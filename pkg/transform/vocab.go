package transform

import (
	"strings"
	"unicode"
)

// Rule maps free text to a canonical value when Match accepts the
// lower-cased, whitespace-collapsed input.
type Rule[T any] struct {
	Match  func(string) bool
	Result T
}

// Vocabulary turns loosely typed spreadsheet text into an enumeration. Exact
// keys are checked first, then rules in order; the first match wins and
// anything else falls back.
type Vocabulary[T any] struct {
	name     string
	exact    map[string]T
	rules    []Rule[T]
	fallback T
}

func NewVocabulary[T any](name string, fallback T, exact map[string]T, rules ...Rule[T]) *Vocabulary[T] {
	v := &Vocabulary[T]{
		name:     name,
		exact:    make(map[string]T, len(exact)),
		rules:    rules,
		fallback: fallback,
	}
	for k, val := range exact {
		v.exact[vocabKey(k)] = val
	}
	return v
}

func (v *Vocabulary[T]) Name() string {
	return v.name
}

// Normalize returns the canonical value for raw, or the fallback.
func (v *Vocabulary[T]) Normalize(raw string) T {
	val, _ := v.Lookup(raw)
	return val
}

// Lookup is Normalize that also reports whether anything matched.
func (v *Vocabulary[T]) Lookup(raw string) (T, bool) {
	key := vocabKey(raw)
	if val, ok := v.exact[key]; ok {
		return val, true
	}
	for _, r := range v.rules {
		if r.Match(key) {
			return r.Result, true
		}
	}
	return v.fallback, false
}

func vocabKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Contains matches when any of subs occurs anywhere in the input.
func Contains(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}
}

// Word matches when any of words occurs as a whole token. Use it for short
// keys like "rv" or "ice" that hide inside longer words.
func Word(words ...string) func(string) bool {
	return func(s string) bool {
		tokens := strings.FieldsFunc(s, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		for _, tok := range tokens {
			for _, w := range words {
				if tok == w {
					return true
				}
			}
		}
		return false
	}
}

func HasPrefix(prefixes ...string) func(string) bool {
	return func(s string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(s, p) {
				return true
			}
		}
		return false
	}
}
