package kafka

import (
	"context"
	"errors"

	"github.com/NARUBROWN/spindle/internal/event/consumer"
	"github.com/NARUBROWN/spindle/pkg/boot"
	"github.com/segmentio/kafka-go"
)

type Reader struct {
	reader *kafka.Reader
	opts   boot.KafkaOptions
}

func NewKafkaReader(topic string, opts boot.KafkaOptions) (*Reader, error) {
	if err := validate(topic, opts); err != nil {
		return nil, err
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: opts.Brokers,
		Topic:   topic,
		GroupID: opts.Read.GroupID,
	})

	return &Reader{
		reader: reader,
		opts:   opts,
	}, nil
}

// Read는 메시지를 가져오기만 하고, offset commit은 Ack에서 합니다.
// Kafka에는 개별 NACK이 없으므로 Nack은 commit하지 않는 것으로 대신합니다.
func (r *Reader) Read(ctx context.Context) (consumer.Message, error) {
	m, err := r.reader.FetchMessage(ctx)
	if err != nil {
		return consumer.Message{}, err
	}

	return consumer.NewMessage(
		m.Topic,
		m.Value,
		headersOf(m.Headers),
		func() error { return r.reader.CommitMessages(ctx, m) },
		nil,
	), nil
}

func validate(topic string, opts boot.KafkaOptions) error {
	if len(opts.Brokers) == 0 {
		return errors.New("Kafka Brokers가 설정되지 않았습니다")
	}
	if opts.Read == nil {
		return errors.New("Kafka Read 옵션이 설정되지 않았습니다")
	}
	if opts.Read.GroupID == "" {
		return errors.New("Kafka Read GroupID가 비어 있습니다")
	}
	if topic == "" {
		return errors.New("Kafka topic이 비어 있습니다")
	}
	return nil
}

func (r *Reader) Close() error {
	return r.reader.Close()
}

func headersOf(headers []kafka.Header) map[string]string {
	out := make(map[string]string, len(headers))
	for _, h := range headers {
		out[h.Key] = string(h.Value)
	}
	return out
}

type RunnerFactory struct {
	opts boot.KafkaOptions
}

func NewRunnerFactory(opts boot.KafkaOptions) *RunnerFactory {
	return &RunnerFactory{opts: opts}
}

func (f *RunnerFactory) Build(registration consumer.Registration) (consumer.Reader, error) {
	return NewKafkaReader(registration.Topic, f.opts)
}

// Validate는 브로커에 연결하지 않고 설정만 검사합니다.
func (f *RunnerFactory) Validate(registration consumer.Registration) error {
	return validate(registration.Topic, f.opts)
}
