package analyzer

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	_ "embed"

	xe "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/errors"
)

//go:embed lexicon.tsv
var builtinLexicon string

// Lexicon maps lowercased words to valence scores in -5..5 .
type Lexicon struct {
	name    string
	valence map[string]int
}

// Name identifies where the lexicon came from ("builtin" or a file basename).
func (l *Lexicon) Name() string {
	return l.name
}

// Valence returns the score of word and whether the word is scored at all.
func (l *Lexicon) Valence(word string) (int, bool) {
	v, ok := l.valence[word]
	return v, ok
}

// Size returns the number of scored words.
func (l *Lexicon) Size() int {
	return len(l.valence)
}

// BuiltinLexicon returns the lexicon embedded in the binary.
func BuiltinLexicon() *Lexicon {
	lex, err := ParseLexicon("builtin", strings.NewReader(builtinLexicon))
	if err != nil {
		// the embedded file is fixed at build time
		panic(err)
	}
	return lex
}

// ParseLexicon reads lexicon entries from r.
//
// Each line is `word<TAB>score`. Blank lines and lines starting with "#" are skipped.
// Scores out of -5..5 or unparsable lines are errors.
func ParseLexicon(name string, r io.Reader) (*Lexicon, error) {
	valence := map[string]int{}

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno += 1
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		word, rawScore, found := strings.Cut(line, "\t")
		if !found {
			return nil, xe.Wrap(fmt.Errorf(
				"%w: line %d is not WORD<TAB>SCORE: %s", ErrBrokenLexicon, lineno, line,
			))
		}
		score, err := strconv.Atoi(strings.TrimSpace(rawScore))
		if err != nil {
			return nil, xe.Wrap(fmt.Errorf(
				"%w: line %d has non-integer score: %s", ErrBrokenLexicon, lineno, line,
			))
		}
		if score < -5 || 5 < score {
			return nil, xe.Wrap(fmt.Errorf(
				"%w: line %d has score out of -5..5: %s", ErrBrokenLexicon, lineno, line,
			))
		}
		valence[strings.ToLower(strings.TrimSpace(word))] = score
	}
	if err := scanner.Err(); err != nil {
		return nil, xe.Wrap(err)
	}

	if len(valence) == 0 {
		return nil, xe.Wrap(fmt.Errorf("%w: no entries", ErrBrokenLexicon))
	}

	return &Lexicon{name: name, valence: valence}, nil
}
