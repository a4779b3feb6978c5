package services

import (
	"encoding/json"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const clientSendBuffer = 64

// Hub fans scored submissions out to WebSocket subscribers of a topic.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

type Client struct {
	hub    *Hub
	id     string
	socket *websocket.Conn
	send   chan []byte
	topic  string
}

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			log.Printf("Feed client registered: %s for topic %s - Total clients: %d", client.id, client.topic, total)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("Feed client unregistered: %s for topic %s - Total clients: %d", client.id, client.topic, len(h.clients))
			}
			h.mutex.Unlock()
		}
	}
}

// BroadcastToTopic sends a message to every subscriber of topic and returns
// how many subscribers received it. Subscribers with a full buffer are dropped.
func (h *Hub) BroadcastToTopic(topic string, messageType string, payload interface{}) int {
	data, err := json.Marshal(Message{Type: messageType, Payload: payload})
	if err != nil {
		log.Printf("Error marshaling feed message: %v", err)
		return 0
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	sent := 0
	for client := range h.clients {
		if !strings.EqualFold(client.topic, topic) {
			continue
		}
		select {
		case client.send <- data:
			sent++
		default:
			log.Printf("Feed client %s send buffer full, dropping", client.id)
			close(client.send)
			delete(h.clients, client)
		}
	}
	return sent
}

// SubscriberCount reports the number of registered clients for topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	count := 0
	for client := range h.clients {
		if strings.EqualFold(client.topic, topic) {
			count++
		}
	}
	return count
}

func (h *Hub) RegisterClient(conn *websocket.Conn, topic string) *Client {
	client := &Client{
		hub:    h,
		id:     "client_" + uuid.NewString(),
		socket: conn,
		send:   make(chan []byte, clientSendBuffer),
		topic:  strings.ToLower(strings.TrimSpace(topic)),
	}

	h.register <- client

	go client.writePump()
	go client.readPump()

	return client
}

func (h *Hub) UnregisterClient(client *Client) {
	h.unregister <- client
}

func (c *Client) readPump() {
	defer func() {
		c.hub.UnregisterClient(c)
		c.socket.Close()
	}()

	for {
		_, message, err := c.socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Feed read error for %s: %v", c.id, err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	defer c.socket.Close()

	for message := range c.send {
		if err := c.socket.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.socket.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *Client) handleMessage(msg Message) {
	switch msg.Type {
	case "ping":
		data, _ := json.Marshal(Message{Type: "pong", Payload: "pong"})
		c.hub.mutex.RLock()
		if c.hub.clients[c] {
			select {
			case c.send <- data:
			default:
			}
		}
		c.hub.mutex.RUnlock()
	default:
		log.Printf("Unknown feed message type %q from %s", msg.Type, c.id)
	}
}
