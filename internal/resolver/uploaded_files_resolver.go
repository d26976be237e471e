package resolver

import (
	"io"
	"reflect"

	"github.com/NARUBROWN/spindle/core"
	"github.com/NARUBROWN/spindle/pkg/httperr"
	"github.com/NARUBROWN/spindle/pkg/multipart"
)

type UploadedFilesResolver struct{}

func (r *UploadedFilesResolver) Supports(parameter MethodParameter) bool {
	return parameter.Type() == reflect.TypeOf((*multipart.UploadedFiles)(nil)).Elem()
}

func (r *UploadedFilesResolver) Resolve(req core.Request, res core.ResponseWriter, name string, parameter MethodParameter) (any, error) {
	form, err := req.MultipartForm()
	if err != nil {
		return nil, httperr.New(400, "multipart 요청을 읽을 수 없습니다", err)
	}

	var files []multipart.UploadedFile
	if form == nil {
		return multipart.UploadedFiles{Files: files}, nil
	}

	for fieldName, headers := range form.File {
		for _, h := range headers {
			header := h

			files = append(files, multipart.UploadedFile{
				FieldName:   fieldName,
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Size:        header.Size,
				Open: func() (io.ReadCloser, error) {
					return header.Open()
				},
			})
		}
	}

	return multipart.UploadedFiles{Files: files}, nil
}
