package connect

import (
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const writeTimeout = 10 * time.Second

// Conn is a wrapper around a client WebSocket connection that provides a mutex for thread safety.
type Conn struct {
	Id    string
	Conn  *websocket.Conn // Note: this is not thread safe except for Close() and WriteControl()
	mutex sync.Mutex
}

// NewConn wraps conn and gives it a random identifier.
func NewConn(conn *websocket.Conn) *Conn {
	return &Conn{
		Id:   uuid.NewString(),
		Conn: conn,
	}
}

// WriteMessage encodes msg as JSON and writes it to the WebSocket connection.
func (c *Conn) WriteMessage(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if err := c.Conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.Conn.WriteMessage(websocket.TextMessage, data)
}

// Close sends a close frame, then closes the underlying connection.
func (c *Conn) Close() error {
	_ = c.Conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	return c.Conn.Close()
}

// ReadMessageRaw reads a raw message from the WebSocket connection.
func ReadMessageRaw(conn *websocket.Conn) ([]byte, error) {
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// Decode unmarshals a raw message into the given type.
func Decode[T any](raw []byte) (T, error) {
	var result T
	err := json.Unmarshal(raw, &result)
	if err != nil {
		return result, err
	}

	return result, nil
}
