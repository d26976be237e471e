package resolver

import (
	"reflect"

	"github.com/NARUBROWN/spindle/core"
	"gorm.io/gorm"
)

// DBSessionResolver는 요청 context에 묶인 *gorm.DB 세션을 넘겨줍니다.
// 애플리케이션이 *gorm.DB 생성자를 등록했을 때만 카탈로그에 추가됩니다.
type DBSessionResolver struct {
	db *gorm.DB
}

func NewDBSessionResolver(db *gorm.DB) *DBSessionResolver {
	return &DBSessionResolver{db: db}
}

func (r *DBSessionResolver) Supports(parameter MethodParameter) bool {
	return parameter.Type() == reflect.TypeOf((**gorm.DB)(nil)).Elem()
}

func (r *DBSessionResolver) Resolve(req core.Request, res core.ResponseWriter, name string, parameter MethodParameter) (any, error) {
	return r.db.WithContext(req.Context()), nil
}
