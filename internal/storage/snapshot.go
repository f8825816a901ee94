package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// SaveProfileSnapshot stores the active axis configuration. config is
// marshalled to JSON so schema changes stay additive.
func (p *PostgresClient) SaveProfileSnapshot(ctx context.Context, profile string, generation int, config any) error {
	configJSON, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	_, err = p.pool.Exec(ctx, `
		INSERT INTO profile_snapshots (profile, generation, config)
		VALUES ($1, $2, $3)
	`, profile, generation, configJSON)

	if err != nil {
		return fmt.Errorf("failed to save profile snapshot: %w", err)
	}
	return nil
}

// LatestProfileSnapshot returns the most recent stored configuration,
// or nil when none exists yet.
func (p *PostgresClient) LatestProfileSnapshot(ctx context.Context) (*ProfileSnapshot, error) {
	var snap ProfileSnapshot
	err := p.pool.QueryRow(ctx, `
		SELECT id, profile, generation, config, created_at
		FROM profile_snapshots
		ORDER BY created_at DESC
		LIMIT 1
	`).Scan(&snap.ID, &snap.Profile, &snap.Generation, &snap.Config, &snap.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load profile snapshot: %w", err)
	}

	return &snap, nil
}
