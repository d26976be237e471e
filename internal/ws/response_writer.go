package ws

import (
	"encoding/json"
	"sync"

	"github.com/NARUBROWN/spindle/core"
	"github.com/gorilla/websocket"
)

// connSender는 하나의 연결에 대한 쓰기를 직렬화합니다.
type connSender struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *connSender) Send(messageType int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(messageType, data)
}

// messageWriter는 핸들러 반환값을 같은 연결로 돌려보냅니다.
// 상태 코드와 헤더는 WebSocket 메시지에 실리지 않습니다.
type messageWriter struct {
	sender    *connSender
	committed bool
}

func newMessageWriter(sender *connSender) core.ResponseWriter {
	return &messageWriter{sender: sender}
}

func (w *messageWriter) SetHeader(key, value string) {}
func (w *messageWriter) AddHeader(key, value string) {}
func (w *messageWriter) IsCommitted() bool           { return w.committed }

func (w *messageWriter) WriteStatus(status int) error {
	w.committed = true
	return nil
}

func (w *messageWriter) WriteJSON(status int, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return w.write(websocket.TextMessage, data)
}

func (w *messageWriter) WriteString(status int, value string) error {
	return w.write(websocket.TextMessage, []byte(value))
}

func (w *messageWriter) WriteBytes(status int, value []byte) error {
	return w.write(websocket.BinaryMessage, value)
}

func (w *messageWriter) write(messageType int, data []byte) error {
	w.committed = true
	return w.sender.Send(messageType, data)
}
