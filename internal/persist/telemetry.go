package persist

import (
	"context"
	"fmt"
)

// StatRow is one effect-telemetry sample: cumulative source counters plus
// the live population at the time of the sample.
type StatRow struct {
	SimTimeMs        int64
	SourcesTriggered uint64
	SourcesExpired   uint64
	SourcesInvalid   uint64
	ActiveSources    int
	LiveParticles    int
}

type TelemetryRepo struct {
	db *DB
}

func NewTelemetryRepo(db *DB) *TelemetryRepo {
	return &TelemetryRepo{db: db}
}

// WriteBatch inserts a batch of telemetry samples in a single transaction.
func (r *TelemetryRepo) WriteBatch(ctx context.Context, rows []StatRow) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("telemetry begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, row := range rows {
		if _, err := tx.Exec(ctx,
			`INSERT INTO effect_stats (sim_time_ms, sources_triggered, sources_expired, sources_invalid, active_sources, live_particles)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			row.SimTimeMs, int64(row.SourcesTriggered), int64(row.SourcesExpired),
			int64(row.SourcesInvalid), row.ActiveSources, row.LiveParticles,
		); err != nil {
			return fmt.Errorf("telemetry insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}
