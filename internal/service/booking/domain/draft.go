package domain

import "time"

// Draft 是一次会话里逐步填写的预订草稿。
// 每个会话一份，按值传递，绝不在用户之间共享——
// 这取代了旧实现里"当前价格/当前资费"之类的全局可变状态。
type Draft struct {
	ChatID    string    `json:"chat_id"`
	TariffID  string    `json:"tariff_id,omitempty"`
	StartsAt  time.Time `json:"starts_at,omitempty"`
	EndsAt    time.Time `json:"ends_at,omitempty"`
	Occupants int       `json:"occupants,omitempty"`

	Sauna         bool `json:"sauna,omitempty"`
	SecretRoom    bool `json:"secret_room,omitempty"`
	SecondBedroom bool `json:"second_bedroom,omitempty"`
	Photoshoot    bool `json:"photoshoot,omitempty"`

	PromoCode string    `json:"promo_code,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
