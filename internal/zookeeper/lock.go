// internal/zookeeper/lock.go
package zookeeper

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-zookeeper/zk"
)

const (
	lockRoot = "/lodge_locks" // 所有分布式锁的根节点

	// 冲突检查和落库之间的临界区很短，等锁超过这个时间说明有实例挂死了
	defaultWaitTimeout = 15 * time.Second
)

// DistributedLock 是基于临时顺序节点的分布式锁。
// 预订服务用它把"查冲突 → 写入预订"串成一个串行化的临界区，
// 否则两个并发请求可能同时看到"无冲突"然后都写入重叠的预订。
type DistributedLock struct {
	conn     *Conn
	path     string // 锁的路径，例如 /lodge_locks/reservations
	lockNode string // 成功获取锁后，自己创建的节点路径
}

// NewDistributedLock 创建一个新的分布式锁实例
func NewDistributedLock(conn *Conn, resourceID string) (*DistributedLock, error) {
	// 确保根节点和资源节点存在；幂等操作，重复创建返回 ErrNodeExists
	for _, p := range []string{lockRoot, lockRoot + "/" + resourceID} {
		if exists, _, err := conn.Exists(p); err == nil && !exists {
			if _, createErr := conn.Create(p, []byte(""), 0, zk.WorldACL(zk.PermAll)); createErr != nil && createErr != zk.ErrNodeExists {
				return nil, fmt.Errorf("failed to create lock node %s: %w", p, createErr)
			}
		}
	}

	return &DistributedLock{
		conn: conn,
		path: lockRoot + "/" + resourceID,
	}, nil
}

// Lock 尝试获取锁，获取不到则阻塞等待直到超时
func (l *DistributedLock) Lock() error {
	// 1. 在锁路径下创建一个临时顺序节点
	nodePath, err := l.conn.CreateProtectedEphemeralSequential(l.path+"/lock-", []byte(""), zk.WorldACL(zk.PermAll))
	if err != nil {
		return fmt.Errorf("failed to create sequential node: %w", err)
	}
	l.lockNode = nodePath

	for {
		// 2. 获取锁路径下的所有子节点并排序
		children, _, err := l.conn.Children(l.path)
		if err != nil {
			return fmt.Errorf("failed to get children nodes: %w", err)
		}
		sort.Strings(children)

		// 3. 自己是最小节点则成功获取锁
		myNodeName := strings.TrimPrefix(l.lockNode, l.path+"/")
		if myNodeName == children[0] {
			return nil
		}

		// 4. 不是最小节点，监听前一个节点，避免惊群
		prevNodeIndex := -1
		for i, child := range children {
			if child == myNodeName {
				prevNodeIndex = i - 1
				break
			}
		}
		if prevNodeIndex < 0 {
			return errors.New("cannot find own node among lock children")
		}
		prevNodePath := l.path + "/" + children[prevNodeIndex]

		_, _, eventChan, err := l.conn.ExistsW(prevNodePath)
		if err != nil {
			// 前一个节点在检查的瞬间刚好被删除，回到循环重新竞争
			if err == zk.ErrNoNode {
				continue
			}
			return fmt.Errorf("failed to watch previous node: %w", err)
		}

		select {
		case event := <-eventChan:
			if event.Type == zk.EventNodeDeleted {
				continue
			}
		case <-time.After(defaultWaitTimeout):
			return errors.New("timeout waiting for reservation lock")
		}
	}
}

// Unlock 释放锁
func (l *DistributedLock) Unlock() error {
	if l.lockNode == "" {
		return errors.New("no lock to unlock")
	}
	err := l.conn.Delete(l.lockNode, -1)
	if err != nil && err != zk.ErrNoNode {
		return fmt.Errorf("failed to delete lock node: %w", err)
	}
	l.lockNode = ""
	return nil
}
