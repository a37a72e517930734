package handlers

import (
	"log"
	"net/http"

	"github.com/Dosada05/match-tagger/realtime"
	"github.com/Dosada05/match-tagger/services"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	hub      *realtime.Hub
	session  *services.Session
	upgrader websocket.Upgrader
}

// NewWebSocketHandler разрешает подключения только с allowedOrigins; пустой список пропускает всех.
func NewWebSocketHandler(hub *realtime.Hub, session *services.Session, allowedOrigins []string) *WebSocketHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &WebSocketHandler{
		hub:     hub,
		session: session,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin] || allowed["*"]
			},
		},
	}
}

// ServeWs подписывает клиента на события сессии. Первым сообщением уходит текущее состояние матча.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := realtime.NewClient(h.hub, conn)
	if !h.hub.Join(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()

	if err := client.SendEvent(services.SessionEvent{Type: services.EventMatchUpdated, Payload: h.session.CurrentMatch()}); err != nil {
		log.Printf("Failed to send initial state: %v", err)
	}
}
