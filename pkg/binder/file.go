package binder

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"reflect"
	"strings"
)

// DefaultMaxFileSize bounds a single uploaded file when File is given 0.
const DefaultMaxFileSize = 10 << 20

// FileUpload is one uploaded multipart file held in memory.
type FileUpload struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Size returns the file length in bytes.
func (f FileUpload) Size() int64 { return int64(len(f.Content)) }

var fileUploadType = reflect.TypeFor[FileUpload]()

// File binds multipart files into fields tagged `file:"name"` of type
// FileUpload (required) or *FileUpload (optional). Requests that are not
// multipart/form-data are not applicable.
func File(maxSize int64) func(r *http.Request, v any) error {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	return func(r *http.Request, v any) error {
		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if mediaType != "multipart/form-data" {
			return ErrBinderNotApplicable
		}

		// 1 MiB of headroom for multipart framing and text fields.
		r.Body = http.MaxBytesReader(nil, r.Body, maxSize+1<<20)
		if err := r.ParseMultipartForm(maxSize); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return ErrFileTooLarge
			}
			return fmt.Errorf("%w: %v", ErrInvalidFile, err)
		}

		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
			return fmt.Errorf("%w: target must be a pointer to struct", ErrInvalidFile)
		}
		rv = rv.Elem()
		rt := rv.Type()
		for i := range rv.NumField() {
			sf := rt.Field(i)
			field := rv.Field(i)
			name, ok := sf.Tag.Lookup("file")
			if !ok || name == "-" || !field.CanSet() {
				continue
			}
			optional := sf.Type.Kind() == reflect.Pointer
			if (optional && sf.Type.Elem() != fileUploadType) || (!optional && sf.Type != fileUploadType) {
				return fmt.Errorf("%w: field %s has unsupported type %s", ErrInvalidFile, sf.Name, sf.Type)
			}

			headers := r.MultipartForm.File[name]
			if len(headers) == 0 {
				if optional {
					continue
				}
				return fmt.Errorf("%w: %s", ErrMissingFile, name)
			}
			fu, err := readPart(headers[0], maxSize)
			if err != nil {
				return err
			}
			if optional {
				field.Set(reflect.ValueOf(&fu))
			} else {
				field.Set(reflect.ValueOf(fu))
			}
		}
		return nil
	}
}

func readPart(h *multipart.FileHeader, maxSize int64) (FileUpload, error) {
	if h.Size > maxSize {
		return FileUpload{}, fmt.Errorf("%w: %s is %d bytes", ErrFileTooLarge, h.Filename, h.Size)
	}
	f, err := h.Open()
	if err != nil {
		return FileUpload{}, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return FileUpload{}, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	if int64(len(data)) > maxSize {
		return FileUpload{}, fmt.Errorf("%w: %s", ErrFileTooLarge, h.Filename)
	}

	ct := h.Header.Get("Content-Type")
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		ct = mt
	}
	if ct == "" || ct == "application/octet-stream" {
		if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(h.Filename))); byExt != "" {
			ct, _, _ = mime.ParseMediaType(byExt)
		}
	}
	return FileUpload{Filename: filepath.Base(h.Filename), ContentType: ct, Content: data}, nil
}
