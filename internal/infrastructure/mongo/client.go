// Package mongo stores users and books as documents in MongoDB. It is the
// default backing store.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection = "users"
	booksCollection = "books"

	defaultOpTimeout = 5 * time.Second
)

// Client owns the driver connection and the bookstore database handle.
type Client struct {
	client    *mongo.Client
	db        *mongo.Database
	opTimeout time.Duration
}

// Connect dials uri, pings the primary and ensures the indexes the
// repositories depend on.
func Connect(ctx context.Context, uri, database string) (*Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	mc, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := mc.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = mc.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	c := &Client{
		client:    mc,
		db:        mc.Database(database),
		opTimeout: defaultOpTimeout,
	}
	if err := c.ensureIndexes(connectCtx); err != nil {
		_ = mc.Disconnect(context.Background())
		return nil, err
	}
	return c, nil
}

func (c *Client) ensureIndexes(ctx context.Context) error {
	emailIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	}
	if _, err := c.db.Collection(usersCollection).Indexes().CreateOne(ctx, emailIdx); err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}
	return nil
}

// Ping satisfies health.Pinger.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

func (c *Client) Users() *UserRepository {
	return &UserRepository{coll: c.db.Collection(usersCollection), timeout: c.opTimeout}
}

func (c *Client) Books() *BookRepository {
	return &BookRepository{coll: c.db.Collection(booksCollection), timeout: c.opTimeout}
}
