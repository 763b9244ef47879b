package repository

import (
	"context"
	"fmt"
	"time"

	"record-service/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const RecordCollection = "records"

type RecordRepository interface {
	Create(ctx context.Context, req *domain.CreateRecordRequest) (*domain.Record, error)
	GetAll(ctx context.Context) ([]*domain.Record, error)
}

type recordRepo struct {
	coll   *mongo.Collection
	logger *zap.Logger
	now    func() time.Time
}

func NewRecordRepo(db *mongo.Database, logger *zap.Logger) RecordRepository {
	return newRecordRepo(db.Collection(RecordCollection), logger)
}

func newRecordRepo(coll *mongo.Collection, logger *zap.Logger) *recordRepo {
	return &recordRepo{
		coll:   coll,
		logger: logger,
		now:    time.Now,
	}
}

// Create assigns the id and both timestamps, then inserts.
func (r *recordRepo) Create(ctx context.Context, req *domain.CreateRecordRequest) (*domain.Record, error) {
	// BSON dates hold milliseconds; truncate so the response matches what is stored.
	now := r.now().UTC().Truncate(time.Millisecond)

	rec := &domain.Record{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Album:     req.Album,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		r.logger.Error("Failed to insert record",
			zap.String("name", req.Name),
			zap.Error(err))
		return nil, fmt.Errorf("insert record: %w", err)
	}

	r.logger.Debug("Record inserted", zap.String("id", rec.ID.Hex()))
	return rec, nil
}

// GetAll returns every record in natural order; never nil.
func (r *recordRepo) GetAll(ctx context.Context) ([]*domain.Record, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find records: %w", err)
	}

	records := []*domain.Record{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}
