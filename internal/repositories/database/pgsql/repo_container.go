package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/vidverse/vidverse_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx repositories against one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(dbPool),
		SubscriptionRepo: newPgxSubscriptionRepository(dbPool),
		VideoRepo:        newPgxVideoRepository(dbPool),
	}
}
