package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Событие-подсказка клиентам: инвалидация кэша, не данные. Клиенты
// перечитывают состояние через REST.
type Event struct {
	Type      string        `json:"type"`
	ProjectID uint          `json:"projectId,omitempty"`
	TaskID    uint          `json:"taskId,omitempty"`
	Message   *TimerMessage `json:"message,omitempty"`
}

type TimerMessage struct {
	Type              string `json:"type"` // TIMER_STARTED / TIMER_STOPPED
	UserID            uint   `json:"userId"`
	LogID             uint   `json:"logId"`
	TaskID            uint   `json:"taskId,omitempty"`
	MaintenanceTaskID uint   `json:"maintenanceTaskId,omitempty"`
}

const (
	EventUpdate        = "UPDATE"
	EventProjectUpdate = "PROJECT_UPDATE"
	EventTimeLogUpdate = "TIMELOG_UPDATE"

	TimerStarted = "TIMER_STARTED"
	TimerStopped = "TIMER_STOPPED"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// дашборд ходит с другого origin
	CheckOrigin: func(r *http.Request) bool { return true },
}

var (
	mu      sync.Mutex
	clients = map[string]*websocket.Conn{}
)

// Handle апгрейдит соединение и держит его до закрытия клиентом.
func Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}

	id := uuid.NewString()
	mu.Lock()
	clients[id] = conn
	mu.Unlock()

	// входящие сообщения не используются, читаем только ради close
	go func() {
		defer func() {
			mu.Lock()
			delete(clients, id)
			mu.Unlock()
			_ = conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast рассылает событие всем подключённым клиентам best-effort:
// вызывается строго после коммита, ошибка отправки ничего не откатывает.
func Broadcast(event Event) {
	mu.Lock()
	defer mu.Unlock()
	for id, conn := range clients {
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("ws write to %s failed, dropping client: %v", id, err)
			delete(clients, id)
			_ = conn.Close()
		}
	}
}
