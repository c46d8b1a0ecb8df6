package handler

import (
	"io"
	"net/http"
)

type textResponse struct {
	status      int
	contentType string
	body        string
}

func (t textResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", t.contentType)
	w.WriteHeader(t.status)
	_, err := io.WriteString(w, t.body)
	return err
}

// Text answers 200 with body as text/plain.
func Text(body string) Response {
	return textResponse{status: http.StatusOK, contentType: "text/plain; charset=utf-8", body: body}
}

// Raw answers 200 with body under the given content type.
func Raw(contentType, body string) Response {
	return textResponse{status: http.StatusOK, contentType: contentType, body: body}
}

type emptyResponse struct{ status int }

func (e emptyResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(e.status)
	return nil
}

// Empty answers 204 No Content.
func Empty() Response { return emptyResponse{status: http.StatusNoContent} }

func EmptyWithStatus(status int) Response { return emptyResponse{status: status} }
