package resolver

import (
	"reflect"
	"strconv"

	"github.com/NARUBROWN/spindle/core"
	"github.com/NARUBROWN/spindle/pkg/query"
)

type PaginationResolver struct{}

func (r *PaginationResolver) Supports(parameter MethodParameter) bool {
	return parameter.Type() == reflect.TypeOf((*query.Pagination)(nil)).Elem()
}

func (r *PaginationResolver) Resolve(req core.Request, res core.ResponseWriter, name string, parameter MethodParameter) (any, error) {
	page := parseInt(req.Query("page"), 1)
	size := parseInt(req.Query("size"), 20)

	return query.Pagination{
		Page: page,
		Size: size,
	}, nil
}

func parseInt(value string, defaultValue int) int {
	result, err := strconv.Atoi(value)
	if err != nil || value == "" {
		return defaultValue
	}
	return result
}
