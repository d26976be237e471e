package rabbitmq

import (
	"github.com/NARUBROWN/spindle/internal/event/consumer"
	"github.com/NARUBROWN/spindle/pkg/boot"
)

type RunnerFactory struct {
	opts boot.RabbitMqOptions
}

func NewRunnerFactory(opts boot.RabbitMqOptions) *RunnerFactory {
	return &RunnerFactory{opts: opts}
}

func (f *RunnerFactory) Build(registration consumer.Registration) (consumer.Reader, error) {
	return NewRabbitMqReader(registration.Topic, f.opts)
}

// Validate는 브로커에 연결하지 않고 설정만 검사합니다.
func (f *RunnerFactory) Validate(registration consumer.Registration) error {
	return validate(registration.Topic, f.opts)
}
