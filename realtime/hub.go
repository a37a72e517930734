package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Dosada05/match-tagger/services"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 256
)

var (
	errClientClosed = errors.New("client connection is closed")
	errClientBusy   = errors.New("client send buffer is full")
)

type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	IsClosed bool
	Mu       sync.Mutex
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{Hub: hub, Conn: conn, Send: make(chan []byte, sendBuffer)}
}

// Hub раздаёт события сессии всем подключённым экранам (основной экран, статистика, тепловая карта).
type Hub struct {
	clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

var _ services.Notifier = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		done:       make(chan struct{}),
	}
}

// Run обслуживает регистрацию клиентов до отмены ctx.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				client.close()
				delete(h.clients, client)
			}
			h.mu.Unlock()
			close(h.done)
			log.Printf("WebSocket hub stopped")
			return

		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			log.Printf("Client registered. Total clients: %d", len(h.clients))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				client.close()
				delete(h.clients, client)
				log.Printf("Client unregistered. Total clients: %d", len(h.clients))
			}
			h.mu.Unlock()
		}
	}
}

// Publish отправляет событие всем клиентам. Не блокирует: медленный клиент пропускает сообщение.
func (h *Hub) Publish(event services.SessionEvent) {
	messageBytes, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshalling %s event: %v", event.Type, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		client.Mu.Lock()
		if client.IsClosed {
			client.Mu.Unlock()
			continue
		}
		select {
		case client.Send <- messageBytes:
		default:
			log.Printf("Client's send channel full, dropping %s event", event.Type)
		}
		client.Mu.Unlock()
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// SendEvent ставит событие в очередь одного клиента.
func (c *Client) SendEvent(event services.SessionEvent) error {
	messageBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if c.IsClosed {
		return errClientClosed
	}
	select {
	case c.Send <- messageBytes:
		return nil
	default:
		return errClientBusy
	}
}

func (c *Client) close() {
	c.Mu.Lock()
	if !c.IsClosed {
		close(c.Send)
		c.IsClosed = true
	}
	c.Mu.Unlock()
}

// Join регистрирует клиента. Возвращает false, если хаб уже остановлен.
func (h *Hub) Join(c *Client) bool {
	select {
	case h.Register <- c:
		return true
	case <-h.done:
		return false
	}
}

// leave снимает клиента с хаба. Если хаб уже остановлен, клиент просто закрывается.
func (c *Client) leave() {
	select {
	case c.Hub.Unregister <- c:
	case <-c.Hub.done:
		c.close()
	}
}

// ReadPump only keeps the connection alive; clients never send commands over the socket.
func (c *Client) ReadPump() {
	defer func() {
		c.leave()
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error { c.Conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error: %v", err)
			}
			return
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// одно событие на фрейм
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("Error writing to client: %v", err)
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Error sending ping to client: %v", err)
				return
			}
		}
	}
}
