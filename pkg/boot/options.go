package boot

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAddress         = ":8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultResolverSpace   = "spindle.resolver"
	DefaultRequestIDHeader = "X-Request-ID"
)

type Options struct {
	Address                string        `yaml:"address"`
	EnableGracefulShutdown bool          `yaml:"enableGracefulShutdown"`
	ShutdownTimeout        time.Duration `yaml:"shutdownTimeout"`

	Resolver  ResolverOptions  `yaml:"resolver"`
	RequestID RequestIDOptions `yaml:"requestId"`
	WebSocket WebSocketOptions `yaml:"websocket"`

	// nil이면 해당 이벤트 런타임은 활성화되지 않습니다.
	Kafka    *KafkaOptions    `yaml:"kafka"`
	RabbitMQ *RabbitMqOptions `yaml:"rabbitmq"`

	Logger *slog.Logger `yaml:"-"`
}

// ResolverOptions는 ArgumentResolver 탐색 범위를 지정합니다.
type ResolverOptions struct {
	Namespace string `yaml:"namespace"`
}

type RequestIDOptions struct {
	Header string `yaml:"header"`
}

type WebSocketOptions struct {
	ReadBufferSize  int      `yaml:"readBufferSize"`
	WriteBufferSize int      `yaml:"writeBufferSize"`
	AllowedOrigins  []string `yaml:"allowedOrigins"`
}

// Load는 YAML 설정 파일을 읽어 기본값을 채운 Options를 돌려줍니다.
func Load(path string) (Options, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("설정 파일을 읽을 수 없습니다 (%s): %w", path, err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (Options, error) {
	var opts Options
	if err := yaml.Unmarshal(raw, &opts); err != nil {
		return Options{}, fmt.Errorf("설정 파싱 실패: %w", err)
	}
	return opts.WithDefaults(), nil
}

// WithDefaults는 비어 있는 값에 기본값을 채운 복사본을 돌려줍니다.
func (o Options) WithDefaults() Options {
	if o.Address == "" {
		o.Address = DefaultAddress
	}
	if o.ShutdownTimeout <= 0 {
		o.ShutdownTimeout = DefaultShutdownTimeout
	}
	if o.Resolver.Namespace == "" {
		o.Resolver.Namespace = DefaultResolverSpace
	}
	if o.RequestID.Header == "" {
		o.RequestID.Header = DefaultRequestIDHeader
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
