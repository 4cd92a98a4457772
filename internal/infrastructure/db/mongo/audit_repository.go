package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/deadeye/laserworks/internal/core/domain"
)

const auditCollection = "audit_log"

// AuditRepository appends audit entries to the audit_log collection.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(auditCollection)}
}

type auditDocument struct {
	Entity    string    `bson:"entity"`
	Key       string    `bson:"key"`
	Action    string    `bson:"action"`
	Actor     string    `bson:"actor"`
	Timestamp time.Time `bson:"timestamp"`
	Fields    []string  `bson:"fields,omitempty"`
}

func toAuditDocument(e domain.AuditEntry) auditDocument {
	return auditDocument{
		Entity:    e.Entity,
		Key:       e.Key,
		Action:    string(e.Action),
		Actor:     e.Actor,
		Timestamp: e.Timestamp.UTC(),
		Fields:    e.Fields,
	}
}

// Record persists a single entry.
func (r *AuditRepository) Record(ctx context.Context, e domain.AuditEntry) error {
	_, err := r.col.InsertOne(ctx, toAuditDocument(e))
	return err
}

// EnsureIndexes creates the lookup indexes on the audit collection.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "entity", Value: 1}, {Key: "key", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "actor", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
