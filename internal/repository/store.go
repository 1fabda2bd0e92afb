package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Store bundles the contact repository with the lifecycle of its connection.
type Store struct {
	Contacts ContactRepository
	Backend  string

	pg    *pgxpool.Pool
	mongo *mongo.Client
}

const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongodb"
)

// Open connects to the store named by url. mongodb:// and mongodb+srv:// URLs
// select MongoDB (mongoDatabase names the database); anything else is handed to pgx.
func Open(ctx context.Context, url, mongoDatabase string) (*Store, error) {
	if url == "" {
		return nil, ErrEmptyURL
	}

	if strings.HasPrefix(url, "mongodb://") || strings.HasPrefix(url, "mongodb+srv://") {
		client, err := NewMongoClient(ctx, url)
		if err != nil {
			return nil, err
		}
		return &Store{
			Contacts: NewMongoContactRepository(client.Database(mongoDatabase)),
			Backend:  BackendMongo,
			mongo:    client,
		}, nil
	}

	pool, err := NewPool(ctx, url)
	if err != nil {
		return nil, err
	}
	return &Store{
		Contacts: NewPgContactRepository(pool),
		Backend:  BackendPostgres,
		pg:       pool,
	}, nil
}

// Ping checks the underlying connection.
func (s *Store) Ping(ctx context.Context) error {
	if s.mongo != nil {
		return s.mongo.Ping(ctx, readpref.Primary())
	}
	return s.pg.Ping(ctx)
}

// Close releases the connection.
func (s *Store) Close(ctx context.Context) error {
	if s.mongo != nil {
		return s.mongo.Disconnect(ctx)
	}
	s.pg.Close()
	return nil
}
