package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Navya28shree/Smart-Presentation-Speech-Analyzer/internal/model"
)

// HistoryRepo is the injectable history store. Entries are append-only and
// immutable; GetRecent returns them oldest-first.
type HistoryRepo interface {
	AppendEntry(ctx context.Context, userID string, report *model.AnalysisReport) (*model.HistoryEntry, error)
	// GetRecent returns the last n entries in chronological order.
	// n <= 0 returns the full history.
	GetRecent(ctx context.Context, userID string, n int) ([]model.HistoryEntry, error)
	Count(ctx context.Context, userID string) (int, error)
}

// newEntry snapshots a report into an immutable history entry.
func newEntry(userID string, report *model.AnalysisReport) *model.HistoryEntry {
	return &model.HistoryEntry{
		ID:             uuid.NewString(),
		UserID:         userID,
		Timestamp:      time.Now().UTC(),
		Script:         report.OriginalScript,
		Scores:         report.Scores,
		Issues:         append([]string(nil), report.DetectedIssues...),
		ImprovedScript: report.ImprovedScript,
	}
}

type mongoHistoryRepo struct {
	collection *mongo.Collection
}

// NewMongoHistoryRepo stores history in the "history" collection of db.
func NewMongoHistoryRepo(db *mongo.Database) HistoryRepo {
	return &mongoHistoryRepo{
		collection: db.Collection("history"),
	}
}

func (r *mongoHistoryRepo) AppendEntry(ctx context.Context, userID string, report *model.AnalysisReport) (*model.HistoryEntry, error) {
	entry := newEntry(userID, report)
	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *mongoHistoryRepo) GetRecent(ctx context.Context, userID string, n int) ([]model.HistoryEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if n > 0 {
		opts.SetLimit(int64(n))
	}

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []model.HistoryEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	// Newest-first from the sort; flip to chronological order.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

func (r *mongoHistoryRepo) Count(ctx context.Context, userID string) (int, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"userId": userID})
	return int(count), err
}
