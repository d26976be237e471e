package resolver

import (
	"github.com/NARUBROWN/spindle/internal/container"
	"github.com/NARUBROWN/spindle/pkg/boot"
)

// Namespace는 내장 Resolver가 등록되는 기본 네임스페이스입니다.
const Namespace = boot.DefaultResolverSpace

// Components는 내장 Resolver를 우선순위 순서대로 돌려줍니다.
//
// 순서가 곧 우선순위입니다. 구체적인 타입을 처리하는 Resolver가 앞에,
// struct 전반을 받는 DTOResolver와 스칼라 전반을 받는 NamedValueResolver가 뒤에 옵니다.
func Components() []container.Component {
	return []container.Component{
		{Name: "request", Constructor: func() *RequestResolver { return &RequestResolver{} }},
		{Name: "response-writer", Constructor: func() *ResponseWriterResolver { return &ResponseWriterResolver{} }},
		{Name: "std-context", Constructor: func() *StdContextResolver { return &StdContextResolver{} }},
		{Name: "header", Constructor: func() *HeaderResolver { return &HeaderResolver{} }},
		{Name: "request-id", Constructor: NewRequestIDResolver},
		{Name: "query-values", Constructor: func() *QueryValuesResolver { return &QueryValuesResolver{} }},
		{Name: "pagination", Constructor: func() *PaginationResolver { return &PaginationResolver{} }},
		{Name: "path-int", Constructor: func() *PathIntResolver { return &PathIntResolver{} }},
		{Name: "path-string", Constructor: func() *PathStringResolver { return &PathStringResolver{} }},
		{Name: "path-boolean", Constructor: func() *PathBooleanResolver { return &PathBooleanResolver{} }},
		{Name: "uploaded-files", Constructor: func() *UploadedFilesResolver { return &UploadedFilesResolver{} }},
		{Name: "websocket", Constructor: NewWebSocketResolver},
		{Name: "connection-id", Constructor: func() *ConnectionIDResolver { return &ConnectionIDResolver{} }},
		{Name: "payload", Constructor: func() *PayloadResolver { return &PayloadResolver{} }},
		{Name: "form-dto", Constructor: func() *FormDTOResolver { return &FormDTOResolver{} }},
		{Name: "query-dto", Constructor: func() *QueryDTOResolver { return &QueryDTOResolver{} }},
		{Name: "dto", Constructor: func() *DTOResolver { return &DTOResolver{} }},
		{Name: "named-value", Constructor: func() *NamedValueResolver { return &NamedValueResolver{} }},
	}
}

// DBSessionComponent는 *gorm.DB 생성자가 있을 때만 추가하는 Resolver입니다.
// DTOResolver보다 앞에 와야 하므로 Components 앞에 둡니다.
func DBSessionComponent() container.Component {
	return container.Component{Name: "db-session", Constructor: NewDBSessionResolver}
}

// Register는 네임스페이스에 내장 Resolver를 등록합니다.
// withDB가 true이면 DBSessionResolver를 맨 앞에 추가합니다.
func Register(catalog *container.Catalog, namespace string, withDB bool) error {
	catalog.Declare(namespace)

	components := Components()
	if withDB {
		components = append([]container.Component{DBSessionComponent()}, components...)
	}
	return catalog.Register(namespace, components...)
}
