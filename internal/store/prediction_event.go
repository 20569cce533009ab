package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// eventRepo implements EventRepo on raw SQL and the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendPrediction(ctx context.Context, data PredictionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO prediction_events
		(sequence, timestamp, request_id, classifier, label, confidence,
		 out_of_range, latency_ms, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum,
		time.Now().UTC().UnixNano(),
		data.RequestID,
		data.Classifier,
		data.Label,
		data.Confidence,
		strings.Join(data.OutOfRange, ","),
		data.LatencyMs,
		data.Success,
		data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("save prediction event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryPredictions(ctx context.Context, opts QueryOpts) ([]PredictionEventRecord, error) {
	where, args := buildWhere(opts)
	query := `SELECT id, sequence, timestamp, request_id, classifier, label, confidence,
		out_of_range, latency_ms, success, error_message
		FROM prediction_events` + where + ` ORDER BY sequence DESC` + limitClause(opts)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query prediction events: %w", err)
	}
	defer rows.Close()

	var out []PredictionEventRecord
	for rows.Next() {
		var (
			rec        PredictionEventRecord
			ts         int64
			outOfRange string
		)
		err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.RequestID, &rec.Classifier,
			&rec.Label, &rec.Confidence, &outOfRange, &rec.LatencyMs, &rec.Success,
			&rec.ErrorMessage)
		if err != nil {
			return nil, fmt.Errorf("scan prediction event: %w", err)
		}
		rec.Timestamp = time.Unix(0, ts).UTC()
		if outOfRange != "" {
			rec.OutOfRange = strings.Split(outOfRange, ",")
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prediction events: %w", err)
	}
	return out, nil
}

// buildWhere translates the sequence and time filters into a WHERE clause.
func buildWhere(opts QueryOpts) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if opts.After > 0 {
		conds = append(conds, "sequence > ?")
		args = append(args, opts.After)
	}
	if opts.Before > 0 {
		conds = append(conds, "sequence < ?")
		args = append(args, opts.Before)
	}
	if !opts.From.IsZero() {
		conds = append(conds, "timestamp >= ?")
		args = append(args, opts.From.UTC().UnixNano())
	}
	if !opts.To.IsZero() {
		conds = append(conds, "timestamp <= ?")
		args = append(args, opts.To.UTC().UnixNano())
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func limitClause(opts QueryOpts) string {
	if opts.Limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d", opts.Limit)
}
