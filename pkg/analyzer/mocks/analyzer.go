package mocks

import (
	"context"
	"errors"

	"github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/analyzer"
)

type CallLog[T any] []T

func (c CallLog[T]) Times() int {
	return len(c)
}

type Analyzer struct {
	Impl struct {
		Analyze      func(context.Context, string) (analyzer.Result, error)
		ModelVersion func() string
	}
	Calls struct {
		Analyze      CallLog[struct{ Text string }]
		ModelVersion CallLog[struct{}]
	}
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

var _ analyzer.Analyzer = &Analyzer{}

func (m *Analyzer) Analyze(ctx context.Context, text string) (analyzer.Result, error) {
	m.Calls.Analyze = append(m.Calls.Analyze, struct{ Text string }{Text: text})
	if m.Impl.Analyze != nil {
		return m.Impl.Analyze(ctx, text)
	}
	panic(errors.New("it should not be called"))
}

func (m *Analyzer) ModelVersion() string {
	m.Calls.ModelVersion = append(m.Calls.ModelVersion, struct{}{})
	if m.Impl.ModelVersion != nil {
		return m.Impl.ModelVersion()
	}
	panic(errors.New("it should not be called"))
}
