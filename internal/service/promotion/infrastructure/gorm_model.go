package infrastructure

import "time"

// PromocodeModel 对应数据库中的 promocode 表
type PromocodeModel struct {
	ID              string `gorm:"type:char(36);primaryKey"`
	Code            string `gorm:"type:varchar(64);uniqueIndex"`
	Name            string `gorm:"type:varchar(128)"`
	Type            string `gorm:"type:varchar(32)"`
	DiscountPercent float64
	ValidFrom       time.Time
	ValidTo         time.Time
	TariffScope     string `gorm:"type:text"` // 逗号分隔的资费 ID，空串表示全部
	Active          bool   `gorm:"default:true;index"`
	RuleExpr        string `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName 指定 GORM 应该使用的表名
func (PromocodeModel) TableName() string {
	return "promocode"
}
