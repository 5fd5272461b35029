package mocks

import (
	"context"
	"errors"

	"github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/analyzer"
	kdb "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/db"
)

type CallLog[T any] []T

func (c CallLog[T]) Times() int {
	return len(c)
}

type HistoryInterface struct {
	Impl struct {
		Record func(context.Context, kdb.Prediction) error
		Recent func(context.Context, int) ([]kdb.Prediction, error)
		Stats  func(context.Context) (map[analyzer.Verdict]int64, error)
		Purge  func(context.Context) (int64, error)
	}
	Calls struct {
		Record CallLog[struct{ Prediction kdb.Prediction }]
		Recent CallLog[struct{ Limit int }]
		Stats  CallLog[struct{}]
		Purge  CallLog[struct{}]
	}
}

func NewHistoryInterface() *HistoryInterface {
	return &HistoryInterface{}
}

var _ kdb.HistoryInterface = &HistoryInterface{}

func (hi *HistoryInterface) Record(ctx context.Context, p kdb.Prediction) error {
	hi.Calls.Record = append(hi.Calls.Record, struct{ Prediction kdb.Prediction }{Prediction: p})
	if hi.Impl.Record != nil {
		return hi.Impl.Record(ctx, p)
	}
	panic(errors.New("it should not be called"))
}

func (hi *HistoryInterface) Recent(ctx context.Context, limit int) ([]kdb.Prediction, error) {
	hi.Calls.Recent = append(hi.Calls.Recent, struct{ Limit int }{Limit: limit})
	if hi.Impl.Recent != nil {
		return hi.Impl.Recent(ctx, limit)
	}
	panic(errors.New("it should not be called"))
}

func (hi *HistoryInterface) Stats(ctx context.Context) (map[analyzer.Verdict]int64, error) {
	hi.Calls.Stats = append(hi.Calls.Stats, struct{}{})
	if hi.Impl.Stats != nil {
		return hi.Impl.Stats(ctx)
	}
	panic(errors.New("it should not be called"))
}

func (hi *HistoryInterface) Purge(ctx context.Context) (int64, error) {
	hi.Calls.Purge = append(hi.Calls.Purge, struct{}{})
	if hi.Impl.Purge != nil {
		return hi.Impl.Purge(ctx)
	}
	panic(errors.New("it should not be called"))
}
