package bridge

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

type Server struct {
	clients   map[*websocket.Conn]bool
	latest    map[string]Message
	order     []string
	broadcast chan Message
	mu        sync.Mutex
	upgrader  websocket.Upgrader
}

func NewServer() *Server {
	return &Server{
		clients:   make(map[*websocket.Conn]bool),
		latest:    make(map[string]Message),
		broadcast: make(chan Message, 256),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) Start() {
	go s.handleBroadcasts()
}

func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	// Replay happens before the client joins the broadcast set, so a new
	// connection never writes concurrently with the pump.
	s.mu.Lock()
	err = conn.WriteJSON(Message{Type: MsgTypeConnect})
	if err == nil {
		for _, key := range s.order {
			msg := s.latest[key]
			msg.Type = MsgTypeSnapshot
			if err = conn.WriteJSON(msg); err != nil {
				break
			}
		}
	}
	if err != nil {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.clients[conn] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (s *Server) BroadcastUpdate(key string, value json.RawMessage, present bool) {
	s.broadcast <- Message{
		Type:    MsgTypeUpdate,
		Key:     key,
		Value:   value,
		Present: present,
	}
}

func (s *Server) handleBroadcasts() {
	for msg := range s.broadcast {
		s.mu.Lock()
		if msg.Type == MsgTypeUpdate {
			if _, seen := s.latest[msg.Key]; !seen {
				s.order = append(s.order, msg.Key)
			}
			s.latest[msg.Key] = msg
		}

		var failed []*websocket.Conn
		for client := range s.clients {
			if err := client.WriteJSON(msg); err != nil {
				failed = append(failed, client)
			}
		}
		for _, client := range failed {
			client.Close()
			delete(s.clients, client)
		}
		s.mu.Unlock()
	}
}
