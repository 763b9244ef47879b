package usecase

import (
	"context"
	"fmt"

	"record-service/internal/domain"
	"record-service/internal/repository"
	"record-service/shared/utils/errors"

	"go.uber.org/zap"
)

type RecordUsecase struct {
	recordRepo repository.RecordRepository
	logger     *zap.Logger
}

func NewRecordUsecase(recordRepo repository.RecordRepository, logger *zap.Logger) *RecordUsecase {
	return &RecordUsecase{
		recordRepo: recordRepo,
		logger:     logger,
	}
}

// CreateRecord persists a new record. Name and album must both be non-empty.
func (uc *RecordUsecase) CreateRecord(ctx context.Context, req *domain.CreateRecordRequest) (*domain.Record, error) {
	if req == nil || req.Name == "" || req.Album == "" {
		return nil, xerrors.ErrRequiredFields
	}

	rec, err := uc.recordRepo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Record created",
		zap.String("id", rec.ID.Hex()),
		zap.String("name", rec.Name),
		zap.String("album", rec.Album))
	return rec, nil
}

func (uc *RecordUsecase) GetAllRecords(ctx context.Context) ([]*domain.Record, error) {
	records, err := uc.recordRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}
