package resolver

import (
	"reflect"

	"github.com/NARUBROWN/spindle/core"
)

// MethodParameter는 핸들러 메서드의 파라미터 하나를 설명하는 불변 값입니다.
// 해석 호출마다 새로 만들어지며 캐시되지 않습니다.
type MethodParameter struct {
	handler core.HandlerMeta
	index   int
	typ     reflect.Type
	name    string
	tag     reflect.StructTag
}

// ParameterOf는 index 번째 파라미터의 디스크립터를 만듭니다. (receiver 제외, 0부터)
// 이름은 DefaultNameDiscoverer로 최대한 찾아보고, 찾지 못하면 비워 둡니다.
func ParameterOf(meta core.HandlerMeta, index int) (MethodParameter, error) {
	return parameterOf(meta, index, DefaultNameDiscoverer.ParameterNames(meta))
}

func parameterOf(meta core.HandlerMeta, index int, names []string) (MethodParameter, error) {
	count := meta.NumParams()
	if index < 0 || index >= count {
		return MethodParameter{}, &core.IndexOutOfRangeError{
			Handler: meta.String(),
			Index:   index,
			Count:   count,
		}
	}

	parameter := MethodParameter{
		handler: meta,
		index:   index,
		typ:     meta.ParamType(index),
	}

	if declared, ok := meta.DeclaredParam(index); ok {
		parameter.tag = declared.Tag
	}
	if index < len(names) {
		parameter.name = names[index]
	}

	return parameter, nil
}

// ParameterFor는 핸들러 없이 타입만으로 디스크립터를 만듭니다.
// 개별 Resolver를 단독으로 사용할 때 씁니다.
func ParameterFor(typ reflect.Type, name string, tag reflect.StructTag) MethodParameter {
	return MethodParameter{
		index: 0,
		typ:   typ,
		name:  name,
		tag:   tag,
	}
}

func (p MethodParameter) Handler() core.HandlerMeta { return p.handler }
func (p MethodParameter) Index() int                { return p.index }
func (p MethodParameter) Type() reflect.Type        { return p.typ }
func (p MethodParameter) Name() string              { return p.name }
func (p MethodParameter) HasName() bool             { return p.name != "" }
func (p MethodParameter) Tag() reflect.StructTag    { return p.tag }

// Lookup은 선언된 태그 값을 찾습니다.
func (p MethodParameter) Lookup(key string) (string, bool) {
	return p.tag.Lookup(key)
}

// Key는 tag 키 값이 있으면 그 값을, 없으면 파라미터 이름을 돌려줍니다.
func (p MethodParameter) Key(tagKey string) string {
	if v, ok := p.tag.Lookup(tagKey); ok && v != "" {
		return v
	}
	return p.name
}
