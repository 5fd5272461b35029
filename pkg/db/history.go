package db

import (
	"context"
	"errors"
	"time"

	"github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/analyzer"
)

// Prediction is one recorded analysis outcome.
//
// Analyzed texts are not stored; only their length is, to keep
// user content out of the database.
type Prediction struct {
	TextLength     int
	Verdict        analyzer.Verdict
	Confidence     float64
	ProcessingTime time.Duration
	ModelVersion   string
	Timestamp      time.Time
}

// ErrHistoryDisabled is returned by the null history store.
var ErrHistoryDisabled = errors.New("prediction history is not enabled")

type HistoryInterface interface {
	// Record stores one prediction.
	Record(ctx context.Context, p Prediction) error

	// Recent returns up to limit predictions, newest first.
	Recent(ctx context.Context, limit int) ([]Prediction, error)

	// Stats counts recorded predictions per verdict.
	Stats(ctx context.Context) (map[analyzer.Verdict]int64, error)

	// Purge removes all recorded predictions and reports how many were removed.
	Purge(ctx context.Context) (int64, error)
}

type HistoryDatabase interface {
	History() HistoryInterface
	Close() error
}

// Null returns a HistoryDatabase which stores nothing.
//
// Record is a silent no-op so that analysis keeps working without a database.
// Reading operations return ErrHistoryDisabled.
func Null() HistoryDatabase {
	return nullDatabase{}
}

type nullDatabase struct{}

func (nullDatabase) History() HistoryInterface {
	return nullHistory{}
}

func (nullDatabase) Close() error {
	return nil
}

type nullHistory struct{}

func (nullHistory) Record(context.Context, Prediction) error {
	return nil
}

func (nullHistory) Recent(context.Context, int) ([]Prediction, error) {
	return nil, ErrHistoryDisabled
}

func (nullHistory) Stats(context.Context) (map[analyzer.Verdict]int64, error) {
	return nil, ErrHistoryDisabled
}

func (nullHistory) Purge(context.Context) (int64, error) {
	return 0, ErrHistoryDisabled
}
