package main

import (
	"context"
	"net"
	"net/http"
	"reflect"

	"github.com/NARUBROWN/spindle"
	"github.com/NARUBROWN/spindle/core"
	"github.com/NARUBROWN/spindle/pkg/header"
	"github.com/NARUBROWN/spindle/pkg/httperr"
	"github.com/NARUBROWN/spindle/pkg/path"
	"github.com/NARUBROWN/spindle/pkg/query"
	"github.com/NARUBROWN/spindle/pkg/ws"
	"github.com/gorilla/websocket"
)

type UserController struct{}

func NewUserController() *UserController {
	return &UserController{}
}

type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Greet은 ?name= 값을 그대로 인사말로 씁니다.
func (c *UserController) Greet(name string, w core.ResponseWriter) {
	_ = w.WriteString(http.StatusOK, "hello "+name)
}

func (c *UserController) GetUser(id path.Int, requestID header.RequestID) (User, error) {
	if id.Value <= 0 {
		return User{}, httperr.NotFound("사용자를 찾을 수 없습니다")
	}
	return User{
		ID:   id.Value,
		Name: "spindle-user-" + requestID.String(),
	}, nil
}

type CreateUserRequest struct {
	Name string `json:"name"`
}

func (c *UserController) CreateUser(req CreateUserRequest, ip ClientIP) map[string]any {
	return map[string]any{
		"name": req.Name,
		"from": string(ip),
	}
}

type UserQuery struct {
	ID   int64  `query:"id"`
	Name string `query:"name"`
}

func (c *UserController) GetUserQuery(q UserQuery, page query.Pagination) map[string]any {
	return map[string]any{
		"user":   User{ID: q.ID, Name: q.Name},
		"offset": page.Offset(),
	}
}

func (c *UserController) Search(keyword string, limit int) map[string]any {
	return map[string]any{
		"keyword": keyword,
		"limit":   limit,
	}
}

func (c *UserController) Chat(conn *websocket.Conn) {
	defer conn.Close()
	for {
		kind, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if err := conn.WriteMessage(kind, payload); err != nil {
			return
		}
	}
}

type ChatMessage struct {
	Room string `json:"room"`
	Text string `json:"text"`
}

// Say는 WebSocket 메시지마다 호출됩니다. 반환값이 같은 연결로 돌아갑니다.
func (c *UserController) Say(ctx context.Context, id ws.ConnectionID, msg ChatMessage) (map[string]string, error) {
	if msg.Text == "" {
		return nil, httperr.BadRequest("text가 비어 있습니다")
	}
	if err := ws.Send(ctx, ws.TextMessage, []byte("ack")); err != nil {
		return nil, err
	}
	return map[string]string{"from": id.Value, "room": msg.Room, "text": msg.Text}, nil
}

type ClientIP string

// ClientIPResolver는 원격 주소에서 호스트 부분만 꺼냅니다.
type ClientIPResolver struct{}

func NewClientIPResolver() *ClientIPResolver {
	return &ClientIPResolver{}
}

func (r *ClientIPResolver) Supports(p spindle.MethodParameter) bool {
	return p.Type() == reflect.TypeOf((*ClientIP)(nil)).Elem()
}

func (r *ClientIPResolver) Resolve(req core.Request, res core.ResponseWriter, name string, p spindle.MethodParameter) (any, error) {
	if forwarded := req.Header("X-Forwarded-For"); forwarded != "" {
		return ClientIP(forwarded), nil
	}
	raw, ok := req.(core.RawRequest)
	if !ok {
		return ClientIP(""), nil
	}
	host, _, err := net.SplitHostPort(raw.Raw().RemoteAddr)
	if err != nil {
		return ClientIP(raw.Raw().RemoteAddr), nil
	}
	return ClientIP(host), nil
}
