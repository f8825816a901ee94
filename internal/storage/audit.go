package storage

import (
	"context"
	"fmt"
	"time"
)

// LogCommand appends a dispatched command to the audit trail.
func (p *PostgresClient) LogCommand(ctx context.Context, seq uint32, kind, result, operator string, payload []byte) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO command_audit (seq, kind, result, operator, payload)
		VALUES ($1, $2, $3, $4, $5)
	`, int64(seq), kind, result, operator, payload)

	if err != nil {
		return fmt.Errorf("failed to insert command audit: %w", err)
	}
	return nil
}

// LogDiagnostic persists a controller diagnostic message.
func (p *PostgresClient) LogDiagnostic(ctx context.Context, message string, occurredAt time.Time) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO diagnostics (message, occurred_at)
		VALUES ($1, $2)
	`, message, occurredAt)

	if err != nil {
		return fmt.Errorf("failed to insert diagnostic: %w", err)
	}
	return nil
}

// RecentCommands returns the newest limit audit entries.
func (p *PostgresClient) RecentCommands(ctx context.Context, limit int) ([]CommandAudit, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, seq, kind, result, operator, payload, created_at
		FROM command_audit
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)

	if err != nil {
		return nil, fmt.Errorf("failed to query command audit: %w", err)
	}
	defer rows.Close()

	audits := make([]CommandAudit, 0)
	for rows.Next() {
		var a CommandAudit
		var seq int64
		if err := rows.Scan(&a.ID, &seq, &a.Kind, &a.Result, &a.Operator, &a.Payload, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan command audit: %w", err)
		}
		a.Seq = uint32(seq)
		audits = append(audits, a)
	}

	return audits, rows.Err()
}

// RecentDiagnostics returns the newest limit diagnostic records.
func (p *PostgresClient) RecentDiagnostics(ctx context.Context, limit int) ([]DiagnosticRecord, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, message, occurred_at, created_at
		FROM diagnostics
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)

	if err != nil {
		return nil, fmt.Errorf("failed to query diagnostics: %w", err)
	}
	defer rows.Close()

	records := make([]DiagnosticRecord, 0)
	for rows.Next() {
		var d DiagnosticRecord
		if err := rows.Scan(&d.ID, &d.Message, &d.OccurredAt, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan diagnostic: %w", err)
		}
		records = append(records, d)
	}

	return records, rows.Err()
}
