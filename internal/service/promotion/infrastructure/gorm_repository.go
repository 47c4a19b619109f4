package infrastructure

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lodge/internal/service/promotion/domain"
)

// GormPromocodeRepository 是 PromocodeRepository 的 GORM 实现
type GormPromocodeRepository struct {
	db *gorm.DB
}

func NewGormPromocodeRepository(db *gorm.DB) *GormPromocodeRepository {
	return &GormPromocodeRepository{db: db}
}

// FindByCode 按促销码查找，比较前先规整大小写
func (r *GormPromocodeRepository) FindByCode(ctx context.Context, code string) (*domain.Promocode, error) {
	var model PromocodeModel
	err := r.db.WithContext(ctx).
		Where("code = ?", domain.NormalizeCode(code)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPromocodeNotFound
		}
		return nil, err
	}
	return toDomainPromocode(&model)
}

func (r *GormPromocodeRepository) Create(ctx context.Context, promocode *domain.Promocode) error {
	err := r.db.WithContext(ctx).Create(fromDomainPromocode(promocode)).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s", domain.ErrPromocodeExists, promocode.Code)
	}
	return err
}

func (r *GormPromocodeRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&PromocodeModel{}).
		Where("id = ?", id.String()).
		Update("active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrPromocodeNotFound
	}
	return nil
}

func (r *GormPromocodeRepository) ListActive(ctx context.Context) ([]domain.Promocode, error) {
	var models []PromocodeModel
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("code").Find(&models).Error; err != nil {
		return nil, err
	}

	promocodes := make([]domain.Promocode, 0, len(models))
	for i := range models {
		p, err := toDomainPromocode(&models[i])
		if err != nil {
			return nil, err
		}
		promocodes = append(promocodes, *p)
	}
	return promocodes, nil
}
