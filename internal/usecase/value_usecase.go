package usecase

import (
	"context"

	"neighbo/internal/domain/entity"
	"neighbo/internal/domain/repository"
)

type ValueUseCase struct {
	valueRepo repository.ValueRepository
}

func NewValueUseCase(valueRepo repository.ValueRepository) *ValueUseCase {
	return &ValueUseCase{valueRepo: valueRepo}
}

// ListActive returns the value catalog in display order.
func (uc *ValueUseCase) ListActive(ctx context.Context) ([]*entity.Value, error) {
	return uc.valueRepo.ListActive(ctx)
}
