// internal/zookeeper/conn.go
package zookeeper

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-zookeeper/zk"
)

// Conn 封装了底层的 ZooKeeper 会话
type Conn struct {
	*zk.Conn
}

// Connect 建立一个新的 ZooKeeper 会话。
// addrs 格式为 "ip1:port1,ip2:port2"。
func Connect(addrs string, sessionTimeout time.Duration) (*Conn, error) {
	conn, _, err := zk.Connect(strings.Split(addrs, ","), sessionTimeout, zk.WithLogInfo(false))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to zookeeper at %s: %w", addrs, err)
	}
	return &Conn{Conn: conn}, nil
}
