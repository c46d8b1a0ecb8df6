package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailforge/pkg/binder"
)

type dropBody struct {
	ActiveID string `json:"active_id"`
	OverID   string `json:"over_id"`
	IsNew    bool   `json:"is_new"`
}

func TestJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ct      string
		body    string
		want    dropBody
		wantErr error
	}{
		{"valid", "application/json", `{"active_id":"a","over_id":"b","is_new":true}`, dropBody{"a", "b", true}, nil},
		{"charset param", "application/json; charset=utf-8", `{"active_id":"a"}`, dropBody{ActiveID: "a"}, nil},
		{"no body no type", "", "", dropBody{}, binder.ErrBinderNotApplicable},
		{"body without type", "", `{"a":1}`, dropBody{}, binder.ErrUnsupportedMediaType},
		{"wrong type", "text/plain", `{}`, dropBody{}, binder.ErrUnsupportedMediaType},
		{"unknown field", "application/json", `{"nope":1}`, dropBody{}, binder.ErrInvalidJSON},
		{"empty body", "application/json", ``, dropBody{}, binder.ErrInvalidJSON},
		{"trailing data", "application/json", `{} {}`, dropBody{}, binder.ErrInvalidJSON},
		{"malformed", "application/json", `{"active_id":`, dropBody{}, binder.ErrInvalidJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.ct != "" {
				r.Header.Set("Content-Type", tt.ct)
			}
			var got dropBody
			err := binder.JSON()(r, &got)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPathAndQuery(t *testing.T) {
	t.Parallel()

	type req struct {
		SessionID string   `path:"id"`
		Component string   `path:"cid"`
		Count     int      `query:"count"`
		Limit     *uint    `query:"limit"`
		Formats   []string `query:"format"`
		Ratio     float64  `query:"ratio"`
		Debug     bool     `query:""`
		Ignored   string   `query:"-"`
		hidden    string   `path:"hidden"`
	}

	params := map[string]string{"id": "s1", "cid": "c2", "hidden": "x"}
	extract := func(_ *http.Request, name string) string { return params[name] }

	r := httptest.NewRequest(http.MethodGet, "/?count=3&limit=7&format=html,text&format=source&ratio=0.5&debug=true&Ignored=y", nil)
	var got req
	require.NoError(t, binder.Path(extract)(r, &got))
	require.NoError(t, binder.Query()(r, &got))

	assert.Equal(t, "s1", got.SessionID)
	assert.Equal(t, "c2", got.Component)
	assert.Empty(t, got.hidden)
	assert.Equal(t, 3, got.Count)
	require.NotNil(t, got.Limit)
	assert.Equal(t, uint(7), *got.Limit)
	assert.Equal(t, []string{"html", "text", "source"}, got.Formats)
	assert.InDelta(t, 0.5, got.Ratio, 1e-9)
	assert.True(t, got.Debug)
	assert.Empty(t, got.Ignored)
}

func TestQuery_Errors(t *testing.T) {
	t.Parallel()

	type req struct {
		Count int `query:"count"`
	}
	r := httptest.NewRequest(http.MethodGet, "/?count=many", nil)
	var got req
	require.ErrorIs(t, binder.Query()(r, &got), binder.ErrInvalidQuery)
	require.ErrorIs(t, binder.Query()(r, got), binder.ErrInvalidQuery)
	require.ErrorIs(t, binder.Path(nil)(r, &got), binder.ErrInvalidPath)
}

func multipartRequest(t *testing.T, field, filename, contentType string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
		if contentType != "" {
			h.Set("Content-Type", contentType)
		}
		w, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	r := httptest.NewRequest(http.MethodPost, "/", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestFile(t *testing.T) {
	t.Parallel()

	png := []byte("\x89PNG\r\n\x1a\n")

	type required struct {
		Image binder.FileUpload `file:"image"`
	}
	type optional struct {
		Image *binder.FileUpload `file:"image"`
	}

	t.Run("binds file", func(t *testing.T) {
		t.Parallel()
		var got required
		require.NoError(t, binder.File(0)(multipartRequest(t, "image", "../logo.png", "image/png", png), &got))
		assert.Equal(t, "logo.png", got.Image.Filename)
		assert.Equal(t, "image/png", got.Image.ContentType)
		assert.Equal(t, png, got.Image.Content)
		assert.Equal(t, int64(len(png)), got.Image.Size())
	})

	t.Run("content type from extension", func(t *testing.T) {
		t.Parallel()
		var got required
		require.NoError(t, binder.File(0)(multipartRequest(t, "image", "logo.png", "application/octet-stream", png), &got))
		assert.Equal(t, "image/png", got.Image.ContentType)
	})

	t.Run("missing required", func(t *testing.T) {
		t.Parallel()
		var got required
		require.ErrorIs(t, binder.File(0)(multipartRequest(t, "", "", "", nil), &got), binder.ErrMissingFile)
	})

	t.Run("missing optional", func(t *testing.T) {
		t.Parallel()
		var got optional
		require.NoError(t, binder.File(0)(multipartRequest(t, "", "", "", nil), &got))
		assert.Nil(t, got.Image)
	})

	t.Run("too large", func(t *testing.T) {
		t.Parallel()
		var got optional
		err := binder.File(4)(multipartRequest(t, "image", "logo.png", "image/png", png), &got)
		require.ErrorIs(t, err, binder.ErrFileTooLarge)
	})

	t.Run("not multipart", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
		r.Header.Set("Content-Type", "application/json")
		var got required
		require.ErrorIs(t, binder.File(0)(r, &got), binder.ErrBinderNotApplicable)
	})

	t.Run("wrong field type", func(t *testing.T) {
		t.Parallel()
		var got struct {
			Image []byte `file:"image"`
		}
		err := binder.File(0)(multipartRequest(t, "image", "logo.png", "image/png", png), &got)
		require.ErrorIs(t, err, binder.ErrInvalidFile)
	})
}
