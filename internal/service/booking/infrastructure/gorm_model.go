package infrastructure

import "time"

// ReservationModel 对应数据库中的 reservation 表
type ReservationModel struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	ClientID  string    `gorm:"type:varchar(64);index"`
	TariffID  string    `gorm:"type:varchar(64)"`
	StartsAt  time.Time `gorm:"index"`
	EndsAt    time.Time `gorm:"index"`
	Occupants int

	Canceled  bool `gorm:"default:false"`
	Completed bool `gorm:"default:false"`
	Prepaid   bool `gorm:"default:false"`

	PromoCode string `gorm:"type:varchar(64)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定 GORM 应该使用的表名
func (ReservationModel) TableName() string {
	return "reservation"
}
