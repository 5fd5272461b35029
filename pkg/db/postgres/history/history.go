package history

import (
	"context"
	"time"

	"github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/analyzer"
	kdb "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/db"
	kpool "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/db/postgres/pool"
	xe "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/errors"
)

type pgHistory struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdb.HistoryInterface {
	return &pgHistory{pool: pool}
}

func (h *pgHistory) Record(ctx context.Context, p kdb.Prediction) error {
	timestamp := p.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	_, err := h.pool.Exec(
		ctx,
		`
		insert into "prediction" (
			"text_length", "sentiment", "confidence",
			"processing_time_ms", "model_version", "created_at"
		)
		values ($1, $2, $3, $4, $5, $6);
		`,
		p.TextLength,
		string(p.Verdict),
		p.Confidence,
		float64(p.ProcessingTime)/float64(time.Millisecond),
		p.ModelVersion,
		timestamp,
	)
	if err != nil {
		return xe.Wrap(err)
	}
	return nil
}

func (h *pgHistory) Recent(ctx context.Context, limit int) ([]kdb.Prediction, error) {
	rows, err := h.pool.Query(
		ctx,
		`
		select
			"text_length", "sentiment", "confidence",
			"processing_time_ms", "model_version", "created_at"
		from "prediction"
		order by "created_at" desc, "id" desc
		limit $1;
		`,
		limit,
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer rows.Close()

	found := []kdb.Prediction{}
	for rows.Next() {
		var (
			p                sentimentRow
			processingTimeMs float64
		)
		if err := rows.Scan(
			&p.TextLength, &p.Sentiment, &p.Confidence,
			&processingTimeMs, &p.ModelVersion, &p.CreatedAt,
		); err != nil {
			return nil, xe.Wrap(err)
		}
		found = append(found, kdb.Prediction{
			TextLength:     p.TextLength,
			Verdict:        analyzer.Verdict(p.Sentiment),
			Confidence:     p.Confidence,
			ProcessingTime: time.Duration(processingTimeMs * float64(time.Millisecond)),
			ModelVersion:   p.ModelVersion,
			Timestamp:      p.CreatedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, xe.Wrap(err)
	}

	return found, nil
}

type sentimentRow struct {
	TextLength   int
	Sentiment    string
	Confidence   float64
	ModelVersion string
	CreatedAt    time.Time
}

func (h *pgHistory) Stats(ctx context.Context) (map[analyzer.Verdict]int64, error) {
	rows, err := h.pool.Query(
		ctx,
		`select "sentiment", count(*) from "prediction" group by "sentiment";`,
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer rows.Close()

	counts := map[analyzer.Verdict]int64{}
	for _, v := range analyzer.Verdicts() {
		counts[v] = 0
	}
	for rows.Next() {
		var (
			sentiment string
			count     int64
		)
		if err := rows.Scan(&sentiment, &count); err != nil {
			return nil, xe.Wrap(err)
		}
		counts[analyzer.Verdict(sentiment)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, xe.Wrap(err)
	}

	return counts, nil
}

// Purge counts and deletes in one transaction, so that the reported
// count can not drift from what is actually removed.
func (h *pgHistory) Purge(ctx context.Context) (int64, error) {
	tx, err := h.pool.Begin(ctx)
	if err != nil {
		return 0, xe.Wrap(err)
	}
	defer tx.Rollback(ctx)

	var count int64
	if err := tx.QueryRow(ctx, `select count(*) from "prediction";`).Scan(&count); err != nil {
		return 0, xe.Wrap(err)
	}

	if _, err := tx.Exec(ctx, `delete from "prediction";`); err != nil {
		return 0, xe.Wrap(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, xe.Wrap(err)
	}
	return count, nil
}
