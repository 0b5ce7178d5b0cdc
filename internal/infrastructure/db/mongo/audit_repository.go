package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dawa-marketplace/ecommerce-api/internal/core/domain"
)

const authEventsCollection = "auth_events"

// AuditRepository stores the authentication audit trail.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(authEventsCollection)}
}

type mongoAuthEvent struct {
	EventID  string `bson:"event_id"`
	Type     string `bson:"type"`
	Username string `bson:"username"`
	UserID   uint   `bson:"user_id,omitempty"`
	Outcome  string `bson:"outcome"`
	Reason   string `bson:"reason,omitempty"`
	RemoteIP string `bson:"remote_ip,omitempty"`
	At       int64  `bson:"at"`
}

// EnsureIndexes creates the unique event id index and the per-user lookup index.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "event_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}, {Key: "at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create auth event indexes: %w", err)
	}
	return nil
}

// InsertAuthEvent persists ev. A replayed event id is ignored.
func (r *AuditRepository) InsertAuthEvent(ctx context.Context, ev *domain.AuthEvent) error {
	doc := mongoAuthEvent{
		EventID:  ev.ID,
		Type:     string(ev.Type),
		Username: ev.Username,
		UserID:   ev.UserID,
		Outcome:  string(ev.Outcome),
		Reason:   ev.Reason,
		RemoteIP: ev.RemoteIP,
		At:       ev.At.UnixMilli(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}
