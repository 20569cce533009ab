package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO llm_request_events
		(sequence, timestamp, provider, model, purpose, input_tokens,
		 output_tokens, latency_ms, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum,
		time.Now().UTC().UnixNano(),
		data.Provider,
		data.Model,
		data.Purpose,
		data.InputTokens,
		data.OutputTokens,
		data.LatencyMs,
		data.Success,
		data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}

	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error) {
	where, args := buildWhere(opts)
	query := `SELECT id, sequence, timestamp, provider, model, purpose, input_tokens,
		output_tokens, latency_ms, success, error_message
		FROM llm_request_events` + where + ` ORDER BY sequence DESC` + limitClause(opts)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMEventRecord
	for rows.Next() {
		var (
			rec LLMEventRecord
			ts  int64
		)
		err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.Provider, &rec.Model, &rec.Purpose,
			&rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs, &rec.Success, &rec.ErrorMessage)
		if err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		rec.Timestamp = time.Unix(0, ts).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate LLM events: %w", err)
	}
	return out, nil
}
