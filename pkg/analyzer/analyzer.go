package analyzer

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	xe "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/errors"
)

// Verdict is the classified sentiment of a text.
type Verdict string

const (
	Positive Verdict = "positive"
	Negative Verdict = "negative"
	Neutral  Verdict = "neutral"
)

// Verdicts enumerates all verdicts, for metrics pre-registration and stats.
func Verdicts() []Verdict {
	return []Verdict{Positive, Negative, Neutral}
}

var (
	ErrEmptyText     = errors.New("text has no analyzable content")
	ErrBrokenLexicon = errors.New("broken lexicon")
)

// Result of a single analysis.
type Result struct {
	Verdict    Verdict
	Confidence float64
	Duration   time.Duration
}

// Analyzer classifies the sentiment of English text.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (Result, error)

	// ModelVersion identifies the scoring model, e.g. "lexicon-en-v1+builtin".
	ModelVersion() string
}

const modelFamily = "lexicon-en-v1"

// scaling constant of the score normalizer. Same role as VADER's alpha.
const normAlpha = 15.0

type Config struct {
	// LexiconPath is a path to an external lexicon file. Empty = embedded default.
	LexiconPath string

	// MaxTokens truncates longer inputs before scoring.
	MaxTokens int

	// NeutralBand: normalized scores within (-NeutralBand, NeutralBand) are neutral.
	NeutralBand float64
}

func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		NeutralBand: 0.1,
	}
}

type Option func(*Config) *Config

func WithLexiconFile(path string) Option {
	return func(c *Config) *Config {
		c.LexiconPath = path
		return c
	}
}

func WithMaxTokens(n int) Option {
	return func(c *Config) *Config {
		if 0 < n {
			c.MaxTokens = n
		}
		return c
	}
}

func WithNeutralBand(band float64) Option {
	return func(c *Config) *Config {
		if 0 <= band && band < 1 {
			c.NeutralBand = band
		}
		return c
	}
}

type lexiconAnalyzer struct {
	lexicon     *Lexicon
	maxTokens   int
	neutralBand float64
}

// New builds an Analyzer.
//
// When an external lexicon file is configured and unreadable or broken,
// it returns error so that callers can fail fast at startup.
func New(options ...Option) (Analyzer, error) {
	c := DefaultConfig()
	for _, option := range options {
		c = *option(&c)
	}

	lexicon := BuiltinLexicon()
	if c.LexiconPath != "" {
		f, err := os.Open(c.LexiconPath)
		if err != nil {
			return nil, xe.WrapWithNote("loading lexicon", err)
		}
		defer f.Close()

		lexicon, err = ParseLexicon(filepath.Base(c.LexiconPath), f)
		if err != nil {
			return nil, err
		}
	}

	return &lexiconAnalyzer{
		lexicon:     lexicon,
		maxTokens:   c.MaxTokens,
		neutralBand: c.NeutralBand,
	}, nil
}

func (a *lexiconAnalyzer) ModelVersion() string {
	return modelFamily + "+" + a.lexicon.Name()
}

// how far back (in tokens) negators and boosters reach.
const modifierWindow = 3

func (a *lexiconAnalyzer) Analyze(ctx context.Context, text string) (Result, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	tokens := tokenize(text)
	if len(tokens) == 0 {
		return Result{}, ErrEmptyText
	}
	if a.maxTokens < len(tokens) {
		tokens = tokens[:a.maxTokens]
	}

	score := 0.0
	for nth, token := range tokens {
		valence, ok := a.lexicon.Valence(token)
		if !ok {
			continue
		}

		weight := float64(valence)
		lookbehind := nth - modifierWindow
		if lookbehind < 0 {
			lookbehind = 0
		}
		for _, modifier := range tokens[lookbehind:nth] {
			switch {
			case isNegator(modifier):
				weight = -weight
			case boosters[modifier]:
				weight *= 1.5
			case dampeners[modifier]:
				weight *= 0.5
			}
		}
		score += weight
	}

	normalized := score / math.Sqrt(score*score+normAlpha)

	verdict := Neutral
	confidence := 1 - math.Abs(normalized)
	if a.neutralBand <= math.Abs(normalized) {
		if normalized < 0 {
			verdict = Negative
		} else {
			verdict = Positive
		}
		confidence = (1 + math.Abs(normalized)) / 2
	}

	return Result{
		Verdict:    verdict,
		Confidence: confidence,
		Duration:   time.Since(start),
	}, nil
}

var negators = map[string]bool{
	"not": true, "no": true, "never": true, "none": true,
	"nobody": true, "nothing": true, "neither": true, "nor": true,
	"cannot": true, "hardly": true, "barely": true, "without": true,
}

func isNegator(token string) bool {
	return negators[token] || strings.HasSuffix(token, "n't")
}

var boosters = map[string]bool{
	"very": true, "really": true, "extremely": true, "absolutely": true,
	"totally": true, "completely": true, "so": true, "incredibly": true,
	"utterly": true, "highly": true,
}

var dampeners = map[string]bool{
	"slightly": true, "somewhat": true, "marginally": true,
	"kinda": true, "sorta": true, "bit": true,
}

// tokenize lowercases text and splits it on anything
// other than letters, digits, apostrophes and hyphens.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '-'
	})
}
