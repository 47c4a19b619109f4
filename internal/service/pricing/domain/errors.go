package domain

import "errors"

// 定价上下文的错误分为两类：
// 配置错误在加载阶段就应中止启动，查询/校验错误返回给调用方渲染提示。
var (
	ErrBadConfig        = errors.New("invalid rate configuration")
	ErrTariffNotFound   = errors.New("tariff not found")
	ErrInvalidDuration  = errors.New("duration must be positive")
	ErrInvalidOccupancy = errors.New("occupancy must be positive")
)
