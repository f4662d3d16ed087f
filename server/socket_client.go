// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/SoftbearStudios/fracplanet/world"
	"github.com/chewxy/math32"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 5 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 8) / 10

	// Replies queued beyond this mean the client is not reading.
	socketBufferSize = 16

	// Upper bound on the encoded size of one point, used to derive the read limit.
	maxPointSize = 128
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	HandshakeTimeout: time.Second,
	ReadBufferSize:   2048,
	WriteBufferSize:  2048,
}

// Request asks for the field value at each point.
type Request struct {
	Points []world.Vec3f `json:"points"`
}

// Reply holds one value per requested point, or an error.
type Reply struct {
	Values []Value `json:"values"`
	Error  string  `json:"error,omitempty"`
}

// SocketClient evaluates requests from one websocket connection.
type SocketClient struct {
	server *Server
	conn   *websocket.Conn
	send   chan Reply
	once   sync.Once
}

// Create a SocketClient from a connection
func NewSocketClient(server *Server, conn *websocket.Conn) *SocketClient {
	return &SocketClient{
		server: server,
		conn:   conn,
		send:   make(chan Reply, socketBufferSize),
	}
}

func (client *SocketClient) Init() {
	client.server.sockets.Add(1)
	go client.writePump()
	go client.readPump()
}

// Destroy closes the connection. It may be called any number of times.
func (client *SocketClient) Destroy() {
	client.once.Do(func() {
		client.server.sockets.Add(-1)
		_ = client.conn.Close()
	})
}

func (client *SocketClient) Send(reply Reply) {
	select {
	case client.send <- reply:
	default:
		// Not responsive
		client.server.logger.Debug("socket client is not responsive")
		client.Destroy()
	}
}

// evaluate answers one request. Only finite points are in the domain of the field.
func (client *SocketClient) evaluate(request *Request) Reply {
	if n := len(request.Points); n > client.server.maxSocketPoints {
		return Reply{Error: fmt.Sprintf("too many points: %d > %d", n, client.server.maxSocketPoints)}
	}

	values := make([]Value, len(request.Points))
	for i, p := range request.Points {
		if !p.IsFinite() {
			return Reply{Error: fmt.Sprintf("point %d is not finite", i)}
		}
		v := client.server.field.Eval(p)
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return Reply{Error: fmt.Sprintf("no finite value at point %d", i)}
		}
		values[i] = Value(v)
	}
	return Reply{Values: values}
}

func (client *SocketClient) readPump() {
	defer func() {
		close(client.send)
		client.Destroy()
	}()

	client.conn.SetReadLimit(int64(client.server.maxSocketPoints)*maxPointSize + 64)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, r, err := client.conn.NextReader()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				client.server.logger.Warn("close error", "err", err)
			}
			break
		}

		var request Request
		if err = json.NewDecoder(r).Decode(&request); err != nil {
			client.server.logger.Debug("unmarshal error", "err", err)
			client.Send(Reply{Error: "invalid request"})
			continue
		}

		client.Send(client.evaluate(&request))
	}
}

func (client *SocketClient) writePump() {
	pingTicker := time.NewTicker(pingPeriod)

	defer func() {
		pingTicker.Stop()
		client.Destroy()
	}()

	for {
		select {
		case reply, ok := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = client.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			w, err := client.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			if err = json.NewEncoder(w).Encode(reply); err != nil {
				client.server.logger.Warn("send error", "err", err)
				return
			}
			if err = w.Close(); err != nil {
				return
			}
		case <-pingTicker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
