package domain

import (
	"context"

	"github.com/google/uuid"
)

// PromocodeRepository 是促销码持久化的"插座"，由基础设施层实现
type PromocodeRepository interface {
	// FindByCode 按规整后的促销码查找，大小写不敏感
	FindByCode(ctx context.Context, code string) (*Promocode, error)
	Create(ctx context.Context, promocode *Promocode) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	ListActive(ctx context.Context) ([]Promocode, error)
}
