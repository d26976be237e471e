package resolver

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/NARUBROWN/spindle/core"
	"github.com/NARUBROWN/spindle/pkg/httperr"
)

// NamedValueResolver는 문자열, 숫자, 불리언 파라미터를 path 또는 query 값에서 찾습니다.
//
// 키는 `path` 태그, `query` 태그, 파라미터 이름 순서로 정해집니다.
// 태그가 없으면 파라미터 이름이 반드시 필요합니다.
// 값이 없으면 `default` 태그 값을 쓰고, 그것도 없으면 400 에러입니다.
type NamedValueResolver struct{}

func (r *NamedValueResolver) Supports(parameter MethodParameter) bool {
	return isScalar(parameter.Type())
}

func (r *NamedValueResolver) RequiresName(parameter MethodParameter) bool {
	_, hasPath := parameter.Lookup("path")
	_, hasQuery := parameter.Lookup("query")
	return !hasPath && !hasQuery
}

func (r *NamedValueResolver) Resolve(req core.Request, res core.ResponseWriter, name string, parameter MethodParameter) (any, error) {
	raw, key, found := r.lookup(req, name, parameter)
	if !found {
		if def, ok := parameter.Lookup("default"); ok {
			raw = def
		} else if key == "" {
			return nil, core.ErrParameterNameUnavailable
		} else {
			return nil, httperr.BadRequest(fmt.Sprintf("필수 파라미터가 없습니다: %s", key))
		}
	}

	value, err := convertScalar(raw, parameter.Type())
	if err != nil {
		return nil, httperr.New(
			400,
			fmt.Sprintf("파라미터 %s 변환 실패: %s", key, raw),
			err,
		)
	}
	return value, nil
}

func (r *NamedValueResolver) lookup(req core.Request, name string, parameter MethodParameter) (string, string, bool) {
	if key, ok := parameter.Lookup("path"); ok && key != "" {
		raw, found := req.Params()[key]
		return raw, key, found
	}
	if key, ok := parameter.Lookup("query"); ok && key != "" {
		values, found := req.Queries()[key]
		if !found || len(values) == 0 {
			return "", key, false
		}
		return values[0], key, true
	}
	if name == "" {
		return "", "", false
	}

	// PathParam 우선
	if raw, ok := req.Params()[name]; ok {
		return raw, name, true
	}
	if values, ok := req.Queries()[name]; ok && len(values) > 0 {
		return values[0], name, true
	}
	return "", name, false
}

func isScalar(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// convertScalar는 문자열을 대상 타입(이름 붙은 타입 포함) 값으로 바꿉니다.
func convertScalar(raw string, target reflect.Type) (any, error) {
	value := reflect.New(target).Elem()

	switch target.Kind() {
	case reflect.String:
		value.SetString(raw)
	case reflect.Bool:
		b, err := parseBool(raw)
		if err != nil {
			return nil, err
		}
		value.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(raw, 10, target.Bits())
		if err != nil {
			return nil, err
		}
		value.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(raw, 10, target.Bits())
		if err != nil {
			return nil, err
		}
		value.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, target.Bits())
		if err != nil {
			return nil, err
		}
		value.SetFloat(f)
	default:
		return nil, fmt.Errorf("지원하지 않는 타입: %v", target)
	}

	return value.Interface(), nil
}
