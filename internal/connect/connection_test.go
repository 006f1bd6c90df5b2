package connect

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{}

// serve upgrades every request and hands the connection to handle.
func serve(t *testing.T, handle func(*websocket.Conn)) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		handle(conn)
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestConn_WriteMessage(t *testing.T) {
	client := serve(t, func(ws *websocket.Conn) {
		conn := NewConn(ws)
		_ = conn.WriteMessage(BaseMessage{Type: "hello", Id: 7, Success: true})
		_ = conn.Close()
	})

	raw, err := ReadMessageRaw(client)
	require.NoError(t, err)
	msg, err := Decode[BaseMessage](raw)
	require.NoError(t, err)
	assert.Equal(t, BaseMessage{Type: "hello", Id: 7, Success: true}, msg)

	_, err = ReadMessageRaw(client)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure))
}

func TestDecode(t *testing.T) {
	msg, err := Decode[BaseMessage]([]byte(`{"type":"ping","id":3}`))
	require.NoError(t, err)
	assert.Equal(t, BaseMessage{Type: "ping", Id: 3}, msg)

	_, err = Decode[BaseMessage]([]byte(`{"type":`))
	assert.Error(t, err)
}

func TestNewConn_UniqueIds(t *testing.T) {
	a, b := NewConn(nil), NewConn(nil)
	assert.NotEmpty(t, a.Id)
	assert.NotEqual(t, a.Id, b.Id)
}

func TestListenWebsocket(t *testing.T) {
	received := make(chan ChannelMessage, 10)
	client := serve(t, func(ws *websocket.Conn) {
		ListenWebsocket(ws, received)
	})

	require.NoError(t, client.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping","id":1}`)))
	require.NoError(t, client.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	require.NoError(t, client.WriteMessage(websocket.TextMessage, []byte(`{"type":"subscribe","id":2}`)))

	for _, expected := range []string{"ping", "subscribe"} {
		select {
		case msg := <-received:
			assert.Equal(t, expected, msg.Type)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for message")
		}
	}

	require.NoError(t, client.Close())
	select {
	case _, ok := <-received:
		assert.False(t, ok, "channel is closed once the connection drops")
	case <-time.After(5 * time.Second):
		t.Fatal("channel was not closed")
	}
}
