package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/NARUBROWN/spindle"
	"github.com/NARUBROWN/spindle/core"
	"github.com/NARUBROWN/spindle/pkg/boot"
)

func main() {
	configPath := flag.String("config", "", "YAML 설정 파일 경로")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	opts := boot.Options{EnableGracefulShutdown: true}
	if *configPath != "" {
		loaded, err := boot.Load(*configPath)
		if err != nil {
			logger.Error("설정을 불러오지 못했습니다", "error", err)
			os.Exit(1)
		}
		opts = loaded
	}
	opts.Logger = logger

	app := spindle.New()

	// 생성자 등록
	app.Constructor(
		NewUserController,
		NewOrderConsumer,
	)

	// 애플리케이션 Resolver
	app.Resolver("client-ip", NewClientIPResolver)

	// 라우트 등록
	app.Route("GET", "/greet", (*UserController).Greet)
	app.Route("GET", "/users/:id", (*UserController).GetUser)
	app.Route("GET", "/users", (*UserController).GetUserQuery)
	app.Route("POST", "/users", (*UserController).CreateUser)
	app.Route(
		"GET",
		"/search",
		(*UserController).Search,
		core.Param{Name: "keyword", Tag: `query:"q"`},
		core.Param{Name: "limit", Tag: `default:"10"`},
	)
	app.Route("GET", "/ws/chat", (*UserController).Chat)

	// WebSocket 메시지 핸들러
	app.WebSocket("/ws/say", (*UserController).Say)

	// 이벤트 핸들러 등록 (kafka/rabbitmq 설정이 있을 때만 동작)
	app.Consumer("order.created", (*OrderConsumer).OnCreated)

	if err := app.Run(opts); err != nil {
		logger.Error("서버 실행 실패", "error", err)
		os.Exit(1)
	}
}
