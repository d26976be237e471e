package ws

import (
	"context"
	"errors"

	"github.com/gorilla/websocket"
)

const (
	TextMessage   = websocket.TextMessage
	BinaryMessage = websocket.BinaryMessage
)

// ErrNoConnection은 WebSocket 메시지 처리 밖에서 Send를 호출했을 때 돌려줍니다.
var ErrNoConnection = errors.New("ws: 현재 context에 WebSocket 연결이 없습니다")

// ConnectionID는 WebSocket 연결 하나를 식별합니다. 같은 연결의 메시지는 같은 값을 받습니다.
type ConnectionID struct {
	Value string
}

func (id ConnectionID) String() string {
	return id.Value
}

type Sender interface {
	Send(messageType int, data []byte) error
}

type connectionKey struct{}

type connection struct {
	id     ConnectionID
	sender Sender
}

// NewContext는 연결 정보를 담은 context를 만듭니다.
func NewContext(ctx context.Context, id ConnectionID, sender Sender) context.Context {
	return context.WithValue(ctx, connectionKey{}, connection{id: id, sender: sender})
}

func ConnectionIDFrom(ctx context.Context) (ConnectionID, bool) {
	conn, ok := ctx.Value(connectionKey{}).(connection)
	if !ok {
		return ConnectionID{}, false
	}
	return conn.id, true
}

// Send는 현재 메시지를 보낸 연결로 메시지를 하나 더 보냅니다.
func Send(ctx context.Context, messageType int, data []byte) error {
	conn, ok := ctx.Value(connectionKey{}).(connection)
	if !ok || conn.sender == nil {
		return ErrNoConnection
	}
	return conn.sender.Send(messageType, data)
}
