package consumer

import "context"

// Message는 브로커에서 읽은 이벤트 한 건입니다.
// Ack/Nack 동작은 브로커 Reader가 채워 넣습니다.
type Message struct {
	EventName string
	Payload   []byte
	Headers   map[string]string

	ack  func() error
	nack func() error
}

func NewMessage(eventName string, payload []byte, headers map[string]string, ack, nack func() error) Message {
	return Message{
		EventName: eventName,
		Payload:   payload,
		Headers:   headers,
		ack:       ack,
		nack:      nack,
	}
}

func (m Message) Ack() error {
	if m.ack == nil {
		return nil
	}
	return m.ack()
}

func (m Message) Nack() error {
	if m.nack == nil {
		return nil
	}
	return m.nack()
}

// Reader는 하나의 토픽(또는 큐)에서 메시지를 순서대로 읽습니다.
type Reader interface {
	Read(ctx context.Context) (Message, error)
	Close() error
}
