package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/scheduling-api/internal/models"
)

type OperatorGormRepository struct {
	db *gorm.DB
}

func NewOperatorRepository(db *gorm.DB) *OperatorGormRepository {
	return &OperatorGormRepository{db: db}
}

// CreateOperator fails with duplicate when the e-mail is taken.
func (r *OperatorGormRepository) CreateOperator(ctx context.Context, op *models.Operator) error {
	return classify(r.db.WithContext(ctx).Create(op).Error, opCreate)
}

func (r *OperatorGormRepository) FindOperatorByEmail(ctx context.Context, email string) (*models.Operator, error) {
	var op models.Operator
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&op).Error; err != nil {
		return nil, classify(err, opRead)
	}
	return &op, nil
}

func (r *OperatorGormRepository) CountOperators(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Operator{}).Count(&n).Error
	return n, classify(err, opRead)
}
