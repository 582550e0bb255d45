package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// PoolStats là snapshot của pgxpool.Stat() cho health endpoint
type PoolStats struct {
	TotalConns    int32 `json:"total_conns"`
	IdleConns     int32 `json:"idle_conns"`
	AcquiredConns int32 `json:"acquired_conns"`
	MaxConns      int32 `json:"max_conns"`
	AcquireCount  int64 `json:"acquire_count"`
}

func (db *PostgresDB) Stats() (*PoolStats, error) {
	if db.Pool == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	s := db.Pool.Stat()
	return &PoolStats{
		TotalConns:    s.TotalConns(),
		IdleConns:     s.IdleConns(),
		AcquiredConns: s.AcquiredConns(),
		MaxConns:      s.MaxConns(),
		AcquireCount:  s.AcquireCount(),
	}, nil
}

// Close is safe to call more than once.
func (db *PostgresDB) Close() error {
	if db.Pool == nil {
		return nil
	}

	log.Info().Msg("[DATABASE] Closing database connection pool...")
	db.Pool.Close()
	db.Pool = nil
	return nil
}
