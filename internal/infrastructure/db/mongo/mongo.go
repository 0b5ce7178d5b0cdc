package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultConnectTimeout = 10 * time.Second
	defaultAppName        = "ecommerce-api"
)

// Config describes where the auth audit trail lives.
type Config struct {
	URI            string
	Database       string
	AppName        string
	ConnectTimeout time.Duration
}

// AuditStore owns the MongoDB connection backing the audit trail.
type AuditStore struct {
	client *mongo.Client
	audit  *AuditRepository
}

// OpenAuditStore connects, checks the primary is reachable and makes sure the
// audit collection is indexed before any event is written.
func OpenAuditStore(ctx context.Context, cfg Config) (*AuditStore, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo: URI is required")
	}
	if cfg.Database == "" {
		return nil, errors.New("mongo: database name is required")
	}
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	appName := cfg.AppName
	if appName == "" {
		appName = defaultAppName
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	store := &AuditStore{
		client: client,
		audit:  NewAuditRepository(client.Database(cfg.Database)),
	}
	if err := store.Ping(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	if err := store.audit.EnsureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return store, nil
}

// Audit returns the repository for auth events.
func (s *AuditStore) Audit() *AuditRepository {
	return s.audit
}

// Ping backs the readiness check.
func (s *AuditStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}
	return nil
}

func (s *AuditStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
