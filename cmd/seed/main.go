// seed registers an admin account and a handful of books in the configured
// store. Re-running it is safe: an existing admin is reused and the catalog is
// only filled when empty.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"

	"github.com/ErlanBelekov/bookstore/config"
	"github.com/ErlanBelekov/bookstore/internal/domain"
	"github.com/ErlanBelekov/bookstore/internal/email"
	"github.com/ErlanBelekov/bookstore/internal/infrastructure/store"
	"github.com/ErlanBelekov/bookstore/internal/token"
	"github.com/ErlanBelekov/bookstore/internal/usecase"
)

const (
	seedEmail    = "admin@bookstore.local"
	seedPassword = "admin-password"
)

var books = []domain.BookFields{
	{Title: "The Go Programming Language", Author: "Alan Donovan", Price: 39.99, Description: "Go from the ground up.", Stock: 12},
	{Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", Price: 45.50, Description: "Storage, replication and streams.", Stock: 7},
	{Title: "The Pragmatic Programmer", Author: "Dave Thomas", Price: 32, Description: "", Stock: 20},
	{Title: "Concurrency in Go", Author: "Katherine Cox-Buday", Price: 29.95, Description: "Goroutines, channels and patterns.", Stock: 0},
	{Title: "Site Reliability Engineering", Author: "Betsy Beyer", Price: 41.25, Description: "How Google runs production.", Stock: 3},
}

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("seed: %v", err)
	}
}

func run(ctx context.Context) (err error) {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg.StoreDriver == config.StoreMemory {
		return errors.New("STORE_DRIVER=memory does not persist, seed mongo or postgres instead")
	}

	stores, err := store.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer closeInto(ctx, stores, &err)

	res, err := seed(ctx, stores)
	if err != nil {
		return err
	}

	printInstructions(cfg.Port, stores.Driver, res)
	return nil
}

type closer interface {
	Close(ctx context.Context) error
}

// closeInto closes c and reports its error through err unless err is already set.
func closeInto(ctx context.Context, c closer, err *error) {
	if cerr := c.Close(ctx); cerr != nil && *err == nil {
		*err = fmt.Errorf("store close: %w", cerr)
	}
}

type seedResult struct {
	adminID  string
	inserted int
	existing int
}

// seed registers the admin unless present and fills an empty catalog.
func seed(ctx context.Context, stores *store.Stores) (seedResult, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Register never signs tokens, so any key works. Seeding always creates an
	// admin regardless of REGISTER_AS_ADMIN.
	authUsecase := usecase.NewAuthUsecase(stores.Users, token.NewManager([]byte("unused")), email.NewLogSender(logger), logger, true)
	bookUsecase := usecase.NewBookUsecase(stores.Books)

	res := seedResult{adminID: "(existing)"}
	user, err := authUsecase.Register(ctx, seedEmail, seedPassword)
	authUsecase.Wait()
	switch {
	case err == nil:
		res.adminID = user.ID
	case errors.Is(err, domain.ErrUserExists):
	default:
		return res, fmt.Errorf("register admin: %w", err)
	}

	existing, err := bookUsecase.List(ctx)
	if err != nil {
		return res, fmt.Errorf("list books: %w", err)
	}
	res.existing = len(existing)

	if len(existing) == 0 {
		for _, fields := range books {
			if _, err := bookUsecase.Create(ctx, fields); err != nil {
				return res, fmt.Errorf("create book %q: %w", fields.Title, err)
			}
			res.inserted++
		}
	}
	return res, nil
}

func printInstructions(port, driver string, res seedResult) {
	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Store:         %s\n", driver)
	fmt.Printf("  Admin:         %s / %s\n", seedEmail, seedPassword)
	fmt.Printf("  Admin ID:      %s\n", res.adminID)
	fmt.Printf("  Books created: %d  (catalog already had %d)\n", res.inserted, res.existing)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 - log in as the seed admin:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:%s/api/login \\\n", port)
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
	fmt.Println("    # -> {\"token\":\"eyJ...\"}")
	fmt.Println()
	fmt.Println("  Step 2 - list and add books:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Printf("    curl -s http://localhost:%s/api/books\n", port)
	fmt.Printf("    curl -s -X POST http://localhost:%s/api/books -H \"Authorization: Bearer $JWT\" \\\n", port)
	fmt.Println("      -H 'Content-Type: application/json' \\")
	fmt.Println("      -d '{\"title\":\"T\",\"author\":\"A\",\"price\":1,\"description\":\"\",\"stock\":1}'")
}
