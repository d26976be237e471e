package rabbitmq

import (
	"context"
	"errors"
	"fmt"

	"github.com/NARUBROWN/spindle/internal/event/consumer"
	"github.com/NARUBROWN/spindle/pkg/boot"
	"github.com/rabbitmq/amqp091-go"
)

type Reader struct {
	conn       *amqp091.Connection
	channel    *amqp091.Channel
	queue      string
	deliveries <-chan amqp091.Delivery
}

// NewRabbitMqReader는 큐를 선언하고 수동 ACK 모드로 구독합니다.
// 큐 이름이 설정되어 있지 않으면 토픽 이름을 큐 이름으로 사용합니다.
func NewRabbitMqReader(topic string, opts boot.RabbitMqOptions) (*Reader, error) {
	if err := validate(topic, opts); err != nil {
		return nil, err
	}

	queue := opts.Read.Queue
	if queue == "" {
		queue = topic
	}

	conn, err := amqp091.Dial(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("RabbitMQ 연결 실패: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("RabbitMQ 채널 생성 실패: %w", err)
	}

	if opts.Read.Prefetch > 0 {
		if err := ch.Qos(opts.Read.Prefetch, 0, false); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("RabbitMQ Qos 설정 실패: %w", err)
		}
	}

	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("RabbitMQ 큐 선언 실패 (%s): %w", queue, err)
	}

	deliveries, err := ch.Consume(
		queue,
		opts.Read.Consumer,
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("RabbitMQ 구독 실패 (%s): %w", queue, err)
	}

	return &Reader{
		conn:       conn,
		channel:    ch,
		queue:      queue,
		deliveries: deliveries,
	}, nil
}

func validate(topic string, opts boot.RabbitMqOptions) error {
	if opts.URL == "" {
		return errors.New("RabbitMQ URL이 설정되지 않았습니다")
	}
	if opts.Read == nil {
		return errors.New("RabbitMQ Read 옵션이 설정되지 않았습니다")
	}
	if topic == "" && opts.Read.Queue == "" {
		return errors.New("RabbitMQ 큐 이름이 비어 있습니다")
	}
	return nil
}

func (r *Reader) Read(ctx context.Context) (consumer.Message, error) {
	select {
	case <-ctx.Done():
		return consumer.Message{}, ctx.Err()
	case d, ok := <-r.deliveries:
		if !ok {
			return consumer.Message{}, fmt.Errorf("RabbitMQ delivery 채널이 닫혔습니다 (%s)", r.queue)
		}
		return messageOf(r.queue, d), nil
	}
}

// messageOf는 delivery를 Message로 옮깁니다. NACK은 재전달(requeue)합니다.
func messageOf(queue string, d amqp091.Delivery) consumer.Message {
	eventName := d.Type
	if eventName == "" {
		eventName = queue
	}

	headers := make(map[string]string, len(d.Headers)+1)
	for k, v := range d.Headers {
		headers[k] = fmt.Sprint(v)
	}
	if d.ContentType != "" {
		headers["Content-Type"] = d.ContentType
	}

	return consumer.NewMessage(
		eventName,
		d.Body,
		headers,
		func() error { return d.Ack(false) },
		func() error { return d.Nack(false, true) },
	)
}

func (r *Reader) Close() error {
	if r.channel != nil {
		_ = r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
