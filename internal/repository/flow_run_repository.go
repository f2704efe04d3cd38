package repository

import (
	"context"

	"github.com/fadilmartias/career-compass/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FlowRunRepository struct {
	db *gorm.DB
}

func NewFlowRunRepository(db *gorm.DB) *FlowRunRepository {
	return &FlowRunRepository{db}
}

func (r *FlowRunRepository) Create(ctx context.Context, run *model.FlowRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(run).Error
}

// List returns one page of runs, newest first, and the total count.
func (r *FlowRunRepository) List(ctx context.Context, page, pageSize int) ([]model.FlowRun, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.FlowRun{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var runs []model.FlowRun
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&runs).Error
	return runs, total, err
}
