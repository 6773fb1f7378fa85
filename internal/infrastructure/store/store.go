// Package store opens the repositories selected by STORE_DRIVER.
package store

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/bookstore/config"
	"github.com/ErlanBelekov/bookstore/internal/health"
	"github.com/ErlanBelekov/bookstore/internal/infrastructure/memory"
	"github.com/ErlanBelekov/bookstore/internal/infrastructure/mongo"
	"github.com/ErlanBelekov/bookstore/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/bookstore/internal/repository"
)

// Stores bundles the repositories of one backing store.
type Stores struct {
	Driver string
	Users  repository.UserRepository
	Books  repository.BookRepository
	// Pinger reports store reachability to the health checker.
	Pinger health.Pinger

	close func(ctx context.Context) error
}

// Close releases the underlying connections.
func (s *Stores) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects to the store named by cfg.StoreDriver. The postgres driver
// applies pending migrations before returning.
func Open(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, err := mongo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		return &Stores{
			Driver: cfg.StoreDriver,
			Users:  client.Users(),
			Books:  client.Books(),
			Pinger: client,
			close:  client.Close,
		}, nil

	case config.StorePostgres:
		pool, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		return &Stores{
			Driver: cfg.StoreDriver,
			Users:  postgres.NewUserRepository(pool),
			Books:  postgres.NewBookRepository(pool),
			Pinger: pool,
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	case config.StoreMemory:
		books := memory.NewBookRepository()
		return &Stores{
			Driver: cfg.StoreDriver,
			Users:  memory.NewUserRepository(),
			Books:  books,
			Pinger: books,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
