package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	EventScheduleSaved   = "schedule_saved"
	EventScheduleDeleted = "schedule_deleted"
)

// Event представляет уведомление операторам, открывшим один профиль
type Event struct {
	EventType  string      `json:"event_type"`
	ProfileID  uint        `json:"profile_id"`
	ScheduleID uint        `json:"schedule_id"`
	Data       interface{} `json:"data,omitempty"`
}

// Hub хранит подключения, сгруппированные по id профиля.
type Hub struct {
	clients    map[uint]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	mu         sync.RWMutex
}

var HubInstance = NewHub()

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 64),
	}
}

// Run запускает цикл обработки каналов хаба.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.ProfileID] == nil {
				h.clients[client.ProfileID] = make(map[*Client]bool)
			}
			h.clients[client.ProfileID][client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()
		case event := <-h.broadcast:
			message, err := json.Marshal(event)
			if err != nil {
				log.Println("Ошибка сериализации события:", err)
				continue
			}
			h.mu.Lock()
			for client := range h.clients[event.ProfileID] {
				select {
				case client.Send <- message:
				default:
					// клиент не успевает читать
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) remove(client *Client) {
	clients, ok := h.clients[client.ProfileID]
	if !ok {
		return
	}
	if _, ok := clients[client]; ok {
		delete(clients, client)
		close(client.Send)
		if len(clients) == 0 {
			delete(h.clients, client.ProfileID)
		}
	}
}

// Broadcast ставит событие в очередь рассылки. Если очередь переполнена
// (или хаб не запущен), событие отбрасывается: сохранение не ждет рассылки.
func (h *Hub) Broadcast(event Event) {
	select {
	case h.broadcast <- event:
	default:
		log.Printf("Очередь уведомлений переполнена, событие %s профиля %d пропущено", event.EventType, event.ProfileID)
	}
}

// Count возвращает число подключений к профилю
func (h *Hub) Count(profileID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[profileID])
}

// Client представляет одно подключение через WebSocket.
type Client struct {
	Hub       *Hub
	Conn      *websocket.Conn
	Send      chan []byte
	ProfileID uint
}

// readPump только отслеживает разрыв соединения, входящие сообщения не используются.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

// writePump отправляет сообщения клиенту из канала Send.
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ProfileWebSocketHandler обновляет соединение до WebSocket и подписывает клиента
// на события профиля.
// @Summary		Уведомления профиля
// @Description	WebSocket: события schedule_saved и schedule_deleted по расписаниям профиля
// @Tags			profiles
// @Param			id	path	int	true	"ID профиля"
// @Router			/api/profiles/{id}/ws [get]
func ProfileWebSocketHandler(c *gin.Context) {
	profileID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || profileID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_PROFILE_ID", "message": "Неверный идентификатор профиля"})
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("Ошибка обновления до WebSocket:", err)
		return
	}
	client := &Client{
		Hub:       HubInstance,
		Conn:      conn,
		Send:      make(chan []byte, 256),
		ProfileID: uint(profileID),
	}
	HubInstance.register <- client

	go client.writePump()
	client.readPump()
}
