package consumer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/NARUBROWN/spindle/core"
	"github.com/NARUBROWN/spindle/internal/invoker"
	"github.com/NARUBROWN/spindle/internal/resolver"
)

type RunnerFactory interface {
	Build(reg Registration) (Reader, error)
	// Validate는 연결 없이 설정만 검사합니다.
	Validate(reg Registration) error
}

// Runtime은 등록된 토픽마다 Reader를 하나씩 띄우고,
// 메시지마다 HTTP 요청과 같은 ArgumentResolver 체인으로 핸들러 인자를 만듭니다.
type Runtime struct {
	name     string
	registry *Registry
	factory  RunnerFactory
	mapping  *resolver.Mapping
	invoker  *invoker.Invoker
	logger   *slog.Logger

	stopOnce sync.Once
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	errChan  chan error
}

func NewRuntime(
	name string,
	registry *Registry,
	factory RunnerFactory,
	mapping *resolver.Mapping,
	invoker *invoker.Invoker,
	logger *slog.Logger,
) *Runtime {
	if registry == nil {
		panic("consumer: 레지스트리는 nil일 수 없습니다")
	}
	if factory == nil {
		panic("consumer: factory는 nil일 수 없습니다")
	}
	if mapping == nil || invoker == nil {
		panic("consumer: mapping과 invoker는 nil일 수 없습니다")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Runtime{
		name:     name,
		registry: registry,
		factory:  factory,
		mapping:  mapping,
		invoker:  invoker,
		logger:   logger.With("component", "event-consumer", "broker", name),
		errChan:  make(chan error, max(1, len(registry.Registrations()))),
	}
}

// Errors는 런타임 내부에서 발생한 치명적 에러를 전달받기 위한 채널입니다.
// 채널은 close되지 않습니다.
func (r *Runtime) Errors() <-chan error {
	return r.errChan
}

func (r *Runtime) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	for _, registration := range r.registry.Registrations() {
		r.logger.Info("컨슈머 시작", "topic", registration.Topic, "handler", registration.Meta.String())
		r.wg.Add(1)
		go func(reg Registration) {
			defer r.wg.Done()
			r.consume(ctx, reg)
		}(registration)
	}
}

func (r *Runtime) consume(ctx context.Context, reg Registration) {
	reader, err := r.factory.Build(reg)
	if err != nil {
		startErr := fmt.Errorf("컨슈머 초기화 실패 (topic=%s): %w", reg.Topic, err)
		select {
		case r.errChan <- startErr:
		default:
			r.logger.Error("에러 채널이 가득 차 전파하지 못했습니다", "error", startErr)
		}
		// 초기화 실패는 치명적이므로 전체 런타임을 중단한다.
		r.Stop()
		return
	}
	defer reader.Close()

	for {
		msg, err := reader.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			r.logger.Warn("메시지 읽기 실패", "topic", reg.Topic, "error", err)
			continue
		}

		if err := r.Handle(ctx, reg.Meta, msg); err != nil {
			r.logger.Warn("핸들러 실행 실패", "topic", reg.Topic, "error", err)
			// 핸들러 실패 시 NACK
			if nackErr := msg.Nack(); nackErr != nil {
				r.logger.Error("NACK 실패", "topic", reg.Topic, "error", nackErr)
			}
			continue
		}

		// 핸들러 성공 시 ACK
		if ackErr := msg.Ack(); ackErr != nil {
			r.logger.Error("ACK 실패", "topic", reg.Topic, "error", ackErr)
		}
	}
}

// Handle은 메시지 한 건으로 핸들러를 실행합니다.
// 인자 해석 실패, 호출 실패, 핸들러가 돌려준 error는 모두 에러로 돌려줍니다.
func (r *Runtime) Handle(ctx context.Context, meta core.HandlerMeta, msg Message) error {
	args, err := r.mapping.Resolve(meta, NewRequest(ctx, msg), &discardWriter{})
	if err != nil {
		return err
	}

	results, err := r.invoker.Invoke(meta, args)
	if err != nil {
		return err
	}

	var errs []error
	for _, result := range results {
		if err, ok := result.(error); ok && err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Validate는 모든 등록의 브로커 설정을 연결 없이 검사합니다.
func (r *Runtime) Validate() error {
	for _, reg := range r.registry.Registrations() {
		if err := r.factory.Validate(reg); err != nil {
			return fmt.Errorf("%s Consumer 설정 오류 (%s): %w", r.name, reg.Topic, err)
		}
	}
	return nil
}

func (r *Runtime) Stop() {
	r.stopOnce.Do(func() {
		if r.cancel != nil {
			r.cancel() // 모든 goroutine 중지
		}
		r.logger.Info("모든 컨슈머를 중지했습니다")
	})
}

// Wait는 Stop 이후 모든 컨슈머 goroutine이 끝날 때까지 기다립니다.
func (r *Runtime) Wait() {
	r.wg.Wait()
}
