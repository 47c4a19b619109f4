package application

// CalculatePriceRequest 是计价接口的请求体
type CalculatePriceRequest struct {
	TariffID      string `json:"tariff_id"`
	DurationHours int    `json:"duration_hours"`
	Occupants     int    `json:"occupants"`
	Date          string `json:"date"` // RFC 3339，入住开始时刻
	Sauna         bool   `json:"sauna"`
	SecretRoom    bool   `json:"secret_room"`
	SecondBedroom bool   `json:"second_bedroom"`
	Photoshoot    bool   `json:"photoshoot"`
}

// CalculatePriceResponse 是计价接口的响应体
type CalculatePriceResponse struct {
	TariffID         string             `json:"tariff_id"`
	Base             float64            `json:"base"`
	AddOns           map[string]float64 `json:"add_ons,omitempty"`
	ExtraOccupantFee float64            `json:"extra_occupant_fee,omitempty"`
	ExtraHoursFee    float64            `json:"extra_hours_fee,omitempty"`
	Total            float64            `json:"total"`
	OverrideRule     string             `json:"override_rule,omitempty"`
	Categories       []string           `json:"categories"`
}

// PrepaymentResponse 是预付计算接口的响应体
type PrepaymentResponse struct {
	Amount      float64 `json:"amount"`
	Percent     float64 `json:"percent"`
	IsHoliday   bool    `json:"is_holiday"`
	HolidayName string  `json:"holiday_name,omitempty"`
}

// TariffAvailabilityResponse 描述资费在给定日期/区间是否可用
type TariffAvailabilityResponse struct {
	Available       bool   `json:"available"`
	IntervalAllowed bool   `json:"interval_allowed"`
	Reason          string `json:"reason,omitempty"`
}
