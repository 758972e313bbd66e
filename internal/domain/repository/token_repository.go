package repository

import (
	"context"
	"time"
)

// TokenRevocationStore guarda os jti de tokens encerrados por logout até expirarem.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	// Purge remove entradas vencidas e devolve quantas saíram.
	Purge(ctx context.Context, now time.Time) (int, error)
}
