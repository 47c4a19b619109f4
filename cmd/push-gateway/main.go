// cmd/push-gateway/main.go
package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"lodge/internal/pkg/bootstrap"
	"lodge/internal/pkg/logger"
	"lodge/internal/pkg/mq"
)

const (
	serviceName           = "push-gateway"
	reservationEventTopic = "reservation-events"
	consumerGroupID       = "push-gateway-group"

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var (
	nodeID   = "push-gateway-" + uuid.New().String()[:8]
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool { // 管理面板跨域访问，放开来源检查
			return true
		},
	}
)

// Hub 维护所有活跃的连接，并把预订事件广播给每一个管理端
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

func newHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
	}
}

func (h *Hub) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case client := <-h.register:
			h.clients[client] = struct{}{}
			logger.L().Info().Str("client", client.id).Str("node", nodeID).Msg("client registered")
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			logger.L().Info().Str("client", client.id).Msg("client unregistered")
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// 写不进去说明客户端已经跟不上了，放弃这个连接
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// Client 是一个 WebSocket 连接的代表
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	id   string
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		// 只消费心跳，管理端不向网关发业务消息
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func serveWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.L().Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
		id:   uuid.New().String()[:8],
	}
	hub.register <- client

	go client.writePump()
	go client.readPump()
}

// consumeEvents 把 Kafka 上的预订事件原样转发给 Hub
func consumeEvents(ctx context.Context, hub *Hub) error {
	brokers := strings.Split(bootstrap.GetEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	reader := mq.NewKafkaReader(brokers, reservationEventTopic, consumerGroupID)
	defer reader.Close()

	logger.L().Info().Str("topic", reservationEventTopic).Msg("push gateway consuming reservation events")
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.L().Error().Err(err).Msg("could not read message")
			continue
		}
		hub.broadcast <- msg.Value
	}
}

func main() {
	logger.Init(serviceName)

	hub := newHub()
	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error { return hub.run(ctx) })
	g.Go(func() error { return consumeEvents(ctx, hub) })
	g.Go(func() error {
		mux := http.NewServeMux()
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
		mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) { serveWs(hub, w, r) })

		addr := ":" + bootstrap.GetEnv("PORT", "8084")
		logger.L().Info().Str("addr", addr).Str("node", nodeID).Msg("push gateway listening")
		return http.ListenAndServe(addr, mux)
	})

	if err := g.Wait(); err != nil {
		logger.L().Fatal().Err(err).Msg("push gateway terminated")
	}
}
