package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

// ClassAnnouncement is pushed to every enrolled, connected student when the
// owning teacher marks a class live.
type ClassAnnouncement struct {
	CourseID    uuid.UUID `json:"course_id"`
	CourseName  string    `json:"course_name"`
	ClassID     uuid.UUID `json:"class_id"`
	Title       string    `json:"title"`
	MeetingLink *string   `json:"meeting_link"`
	StartsAt    time.Time `json:"starts_at"`
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan *ClassAnnouncement)

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case announcement := <-Broadcast:
			var studentIDs []uuid.UUID
			err := database.DB.
				Model(&models.Enrollment{}).
				Where("course_id = ?", announcement.CourseID).
				Pluck("student_id", &studentIDs).Error
			if err != nil {
				log.Printf("Error fetching roster for course %s: %v", announcement.CourseID, err)
				continue
			}

			clientsMu.RLock()
			var stale []uuid.UUID
			for _, studentID := range studentIDs {
				if conn, ok := clients[studentID]; ok {
					if err := conn.WriteJSON(announcement); err != nil {
						log.Printf("Error sending announcement to client %s: %v", studentID, err)
						conn.Close()
						stale = append(stale, studentID)
					}
				}
			}
			clientsMu.RUnlock()

			if len(stale) > 0 {
				clientsMu.Lock()
				for _, studentID := range stale {
					delete(clients, studentID)
				}
				clientsMu.Unlock()
			}
		}
	}
}
