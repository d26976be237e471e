package multipart

import "io"

// UploadedFile은 multipart 요청의 파일 하나입니다. 내용은 Open으로 필요할 때 읽습니다.
type UploadedFile struct {
	FieldName   string
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// UploadedFiles는 요청에 포함된 모든 파일입니다. multipart 요청이 아니면 비어 있습니다.
type UploadedFiles struct {
	Files []UploadedFile
}

// Field는 지정한 폼 필드로 올라온 파일만 돌려줍니다.
func (u UploadedFiles) Field(name string) []UploadedFile {
	var out []UploadedFile
	for _, f := range u.Files {
		if f.FieldName == name {
			out = append(out, f)
		}
	}
	return out
}

func (u UploadedFiles) First(name string) (UploadedFile, bool) {
	for _, f := range u.Files {
		if f.FieldName == name {
			return f, true
		}
	}
	return UploadedFile{}, false
}

func (u UploadedFiles) Len() int {
	return len(u.Files)
}

func (u UploadedFiles) TotalSize() int64 {
	var total int64
	for _, f := range u.Files {
		total += f.Size
	}
	return total
}
