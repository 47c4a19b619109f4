package adapter

import (
	"context"
	"fmt"

	"lodge/internal/zookeeper"
)

// 所有预订写入共用一个锁资源：冲突检查跨越任意区间，
// 按预订分片加锁挡不住部分重叠的并发写
const reservationLockResource = "reservations"

// ZkLockerAdapter 实现了 domain.ReservationLocker 接口
type ZkLockerAdapter struct {
	conn *zookeeper.Conn
}

func NewZkLockerAdapter(conn *zookeeper.Conn) *ZkLockerAdapter {
	return &ZkLockerAdapter{conn: conn}
}

// WithLock 在分布式锁内执行 fn，锁的获取和释放对调用方透明
func (a *ZkLockerAdapter) WithLock(ctx context.Context, fn func() error) error {
	lock, err := zookeeper.NewDistributedLock(a.conn, reservationLockResource)
	if err != nil {
		return fmt.Errorf("create reservation lock: %w", err)
	}
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("acquire reservation lock: %w", err)
	}
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn()
}
