package query

import (
	"strconv"
	"strings"
)

// Pagination은 page/size 쿼리를 묶은 값입니다. 기본값은 page=1, size=20 입니다.
type Pagination struct {
	Page int
	Size int
}

// Offset은 0부터 시작하는 시작 위치입니다.
func (p Pagination) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Size
}

// Values는 쿼리 전체를 읽기 전용으로 노출합니다.
type Values struct {
	values map[string][]string
}

func NewValues(values map[string][]string) Values {
	return Values{values: values}
}

func (q Values) Get(key string) string {
	if v := q.values[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// All은 같은 키로 들어온 값을 모두 돌려줍니다 (?tag=a&tag=b).
func (q Values) All(key string) []string {
	v := q.values[key]
	out := make([]string, len(v))
	copy(out, v)
	return out
}

func (q Values) Int(key string, def int64) int64 {
	v, err := strconv.ParseInt(q.Get(key), 10, 64)
	if err != nil {
		return def
	}
	return v
}

func (q Values) Bool(key string, def bool) bool {
	switch strings.ToLower(q.Get(key)) {
	case "true", "1", "yes", "y", "on":
		return true
	case "false", "0", "no", "n", "off":
		return false
	default:
		return def
	}
}

func (q Values) Has(key string) bool {
	_, ok := q.values[key]
	return ok
}

func (q Values) Keys() []string {
	keys := make([]string, 0, len(q.values))
	for k := range q.values {
		keys = append(keys, k)
	}
	return keys
}
