package realtime

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"pigeon_chat_server/pkg/constants"
	"pigeon_chat_server/pkg/enum/message/message_status_enum"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// MessageBack is an outbound frame plus the message id whose status
// should advance once the frame is written. Uuid is zero for frames
// that are not persisted messages.
type MessageBack struct {
	Message []byte
	Uuid    int64
}

// UserConn is one WebSocket client connection.
type UserConn struct {
	Conn     *websocket.Conn
	Uuid     string
	SendBack chan *MessageBack
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	// The browser front-end runs on a different origin during
	// development; origin checks are handled by the CORS layer.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var ctx = context.Background()

// Read pumps inbound frames into the broker until the socket errors.
func (c *UserConn) Read() {
	zap.L().Info("ws read goroutine start", zap.String("uuid", c.Uuid))
	for {
		_, jsonMessage, err := c.Conn.ReadMessage()
		if err != nil {
			zap.L().Error("ws read failed", zap.String("uuid", c.Uuid), zap.Error(err))
			return
		}
		if err := GlobalBroker.Publish(ctx, jsonMessage); err != nil {
			zap.L().Error("publish frame failed", zap.Error(err))
		}
	}
}

// Write drains SendBack onto the socket. A successful write of a
// persisted message advances its status to sent.
func (c *UserConn) Write() {
	zap.L().Info("ws write goroutine start", zap.String("uuid", c.Uuid))
	for messageBack := range c.SendBack {
		if err := c.Conn.WriteMessage(websocket.TextMessage, messageBack.Message); err != nil {
			zap.L().Error("ws write failed", zap.String("uuid", c.Uuid), zap.Error(err))
			return
		}
		if messageBack.Uuid != 0 {
			if repo := GlobalBroker.GetMessageRepo(); repo != nil {
				if err := repo.UpdateStatus(messageBack.Uuid, message_status_enum.Sent); err != nil {
					zap.L().Error("mark message sent failed", zap.Error(err))
				}
			}
		}
	}
}

// NewClientInit upgrades the request and registers the connection.
// Authentication happened in the JWT middleware before reaching here.
func NewClientInit(c *gin.Context, clientId string) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error("ws upgrade failed", zap.Error(err))
		return
	}
	client := &UserConn{
		Conn:     conn,
		Uuid:     clientId,
		SendBack: make(chan *MessageBack, constants.CHANNEL_SIZE),
	}
	GlobalBroker.RegisterClient(client)
	go client.Read()
	go client.Write()
	zap.L().Info("ws connected", zap.String("uuid", clientId))
}

// ClientLogout tears down a connection and its roster entry.
func ClientLogout(clientId string) error {
	client := GlobalBroker.GetClient(clientId)
	if client != nil {
		GlobalBroker.UnregisterClient(client)
		if err := client.Conn.Close(); err != nil {
			zap.L().Error("ws close failed", zap.Error(err))
			return err
		}
		close(client.SendBack)
	}
	return nil
}

// normalizePath strips the host prefix from locally served static
// URLs, e.g. https://host:port/static/x -> /static/x.
func normalizePath(path string) string {
	idx := strings.Index(path, "/static/")
	if idx == -1 {
		return path
	}
	return path[idx:]
}

func snowflakeString(id int64) string {
	return strconv.FormatInt(id, 10)
}
