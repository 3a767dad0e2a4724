package sqlc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sqlc-dev/pqtype"
)

// AnalyticsSnapshot holds every counter of one server.
type AnalyticsSnapshot struct {
	BoardsCreated int64 `json:"boards_created"`
	ShotsFired    int64 `json:"shots_fired"`
	ShipsSunk     int64 `json:"ships_sunk"`
}

// AnalyticsManager keeps per-server counters of board activity.
type AnalyticsManager struct {
	queries Querier
}

func NewAnalyticsManager(queries Querier) *AnalyticsManager {
	return &AnalyticsManager{queries: queries}
}

func (a *AnalyticsManager) IncrementBoardsCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	return a.queries.IncrementBoardsCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) IncrementShotsFiredCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	return a.queries.IncrementShotsFiredCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) IncrementShipsSunkCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	return a.queries.IncrementShipsSunkCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetBoardsCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	return a.queries.GetBoardsCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetShotsFiredCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	return a.queries.GetShotsFiredCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetShipsSunkCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	return a.queries.GetShipsSunkCount(ctx, serverIpNet)
}

// Snapshot reads all counters of serverIpNet. A server that has not
// recorded anything yet has no row and reports zeros.
func (a *AnalyticsManager) Snapshot(ctx context.Context, serverIpNet pqtype.Inet) (AnalyticsSnapshot, error) {
	var snapshot AnalyticsSnapshot

	counters := []struct {
		get func(context.Context, pqtype.Inet) (int64, error)
		dst *int64
	}{
		{get: a.GetBoardsCreatedCount, dst: &snapshot.BoardsCreated},
		{get: a.GetShotsFiredCount, dst: &snapshot.ShotsFired},
		{get: a.GetShipsSunkCount, dst: &snapshot.ShipsSunk},
	}

	for _, counter := range counters {
		count, err := counter.get(ctx, serverIpNet)
		if errors.Is(err, sql.ErrNoRows) {
			return AnalyticsSnapshot{}, nil
		}
		if err != nil {
			return AnalyticsSnapshot{}, err
		}
		*counter.dst = count
	}
	return snapshot, nil
}
