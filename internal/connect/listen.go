package connect

import (
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// BaseMessage is the base message type for all messages exchanged over the websocket.
type BaseMessage struct {
	Type    string `json:"type"`
	Id      int64  `json:"id"`
	Success bool   `json:"success"` // not present in all messages
}

type ChannelMessage struct {
	Id   int64
	Type string
	Raw  []byte
}

// ListenWebsocket reads messages from the websocket connection and sends them to the channel.
// It will close the channel if it encounters an error, or if the channel is full, and return.
// It ignores errors in deserialization.
func ListenWebsocket(conn *websocket.Conn, c chan ChannelMessage) {
	for {
		raw, err := ReadMessageRaw(conn)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Error("Error reading from websocket", "err", err)
			} else {
				slog.Debug("Websocket closed", "err", err)
			}
			close(c)
			return
		}

		var base BaseMessage
		err = json.Unmarshal(raw, &base)
		if err != nil {
			slog.Warn("Error unmarshalling message", "err", err, "message", string(raw))
			continue
		}

		channelMessage := ChannelMessage{
			Type: base.Type,
			Id:   base.Id,
			Raw:  raw,
		}

		// Use non-blocking send to avoid hanging on a slow consumer
		select {
		case c <- channelMessage:
			// Message sent successfully
		default:
			// Channel is full, break out of loop
			slog.Warn("Websocket message channel is full, stopping listener",
				"channel_capacity", cap(c),
				"channel_length", len(c))
			close(c)
			return
		}
	}
}
