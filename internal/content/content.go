// internal/content/content.go
//
// Provides content management for the game engines.
//
// Responsibilities:
//   - Load the dataset from an environment-provided file or fall back to the embedded default.
//   - Validate struct tags and the cross-field invariants of the dataset.
//   - Expose the loaded set (Current) and counts for diagnostics (Stats).
//
// Initialization behavior (Init):
//   1. If path ends in .json, decode it as a Set document.
//   2. If path ends in .xlsx, import it with ImportWorkbook.
//   3. If path is empty, decode the embedded assets/content.json.
//
// Initialization is run once (sync.Once); later calls return the first result.

package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/robalobadob/wordplay/assets"
)

// ErrInvalid wraps every content validation failure.
var ErrInvalid = errors.New("content: invalid dataset")

var (
	initOnce   sync.Once
	current    Set
	initialErr error

	validate = validator.New()
)

// Init loads the dataset exactly once.
func Init(path string) error {
	initOnce.Do(func() {
		set, err := Load(path)
		if err != nil {
			initialErr = err
			return
		}
		current = set
	})
	return initialErr
}

// Current returns the dataset loaded by Init.
func Current() Set { return current }

// Stats returns counts of loaded content: quiz items, cards, words, categories.
func Stats() map[string]int {
	return map[string]int{
		"quiz":       len(current.Quiz),
		"cards":      len(current.Cards),
		"pairs":      current.PairCount(),
		"words":      len(current.Words),
		"categories": len(current.Categories),
	}
}

// Load reads and validates a dataset without touching the package state.
// An empty path selects the embedded default.
func Load(path string) (Set, error) {
	var (
		set Set
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); {
	case path == "":
		set, err = decodeJSON(bytes.NewReader(assets.DefaultContent))
	case ext == ".json":
		f, openErr := os.Open(path)
		if openErr != nil {
			return Set{}, fmt.Errorf("content: open %s: %w", path, openErr)
		}
		defer f.Close()
		set, err = decodeJSON(f)
	case ext == ".xlsx":
		set, err = ImportWorkbook(path)
	default:
		return Set{}, fmt.Errorf("content: unsupported file type %q", ext)
	}
	if err != nil {
		return Set{}, err
	}
	if err := Validate(set); err != nil {
		return Set{}, err
	}
	return set, nil
}

func decodeJSON(r io.Reader) (Set, error) {
	var set Set
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&set); err != nil {
		return Set{}, fmt.Errorf("content: decode json: %w", err)
	}
	return set, nil
}

// Validate checks struct tags plus the invariants the engines rely on:
//   - every quiz item's correct option is one of its options;
//   - card ids are unique and every pair key has one word and one meaning card;
//   - word ids are unique and every word's category is declared.
func Validate(s Set) error {
	var problems []string
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		for _, fe := range verrs {
			problems = append(problems, fmt.Sprintf("field %s: %s %s", fe.Namespace(), fe.Tag(), fe.Param()))
		}
	}

	for i, q := range s.Quiz {
		if !contains(q.Options, q.Correct) {
			problems = append(problems, fmt.Sprintf("quiz[%d]: correct option %q not among options", i, q.Correct))
		}
	}

	type pair struct{ words, meanings int }
	pairs := make(map[int]*pair)
	seenCards := make(map[int]struct{}, len(s.Cards))
	for _, c := range s.Cards {
		if _, dup := seenCards[c.ID]; dup {
			problems = append(problems, fmt.Sprintf("card %d: duplicate id", c.ID))
		}
		seenCards[c.ID] = struct{}{}
		p := pairs[c.PairKey]
		if p == nil {
			p = &pair{}
			pairs[c.PairKey] = p
		}
		switch c.Kind {
		case KindWord:
			p.words++
		case KindMeaning:
			p.meanings++
		}
	}
	for key, p := range pairs {
		if p.words != 1 || p.meanings != 1 {
			problems = append(problems, fmt.Sprintf("pair %d: want 1 word and 1 meaning card, got %d and %d", key, p.words, p.meanings))
		}
	}

	seenWords := make(map[string]struct{}, len(s.Words))
	for _, w := range s.Words {
		if _, dup := seenWords[w.ID]; dup {
			problems = append(problems, fmt.Sprintf("word %q: duplicate id", w.ID))
		}
		seenWords[w.ID] = struct{}{}
		if !contains(s.Categories, w.Category) {
			problems = append(problems, fmt.Sprintf("word %q: unknown category %q", w.ID, w.Category))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
