package handler

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

const (
	// DataStarAcceptHeader marks a Datastar fetch.
	DataStarAcceptHeader = "text/event-stream"
	DataStarQueryParam   = "datastar"
)

const (
	PatchOuter   = datastar.ElementPatchModeOuter
	PatchInner   = datastar.ElementPatchModeInner
	PatchReplace = datastar.ElementPatchModeReplace
	PatchAppend  = datastar.ElementPatchModeAppend
	PatchPrepend = datastar.ElementPatchModePrepend
)

// IsDataStar reports whether r was issued by a Datastar client.
func IsDataStar(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), DataStarAcceptHeader) {
		return true
	}
	if r.URL.Query().Has(DataStarQueryParam) {
		return true
	}
	return r.Header.Get("Datastar-Request") == "true"
}

type TemplOption = datastar.PatchElementOption

func WithTarget(selector string) TemplOption { return datastar.WithSelector(selector) }

func WithPatchMode(mode datastar.ElementPatchMode) TemplOption { return datastar.WithMode(mode) }

type templResponse struct {
	component templ.Component
	options   []TemplOption
}

// Render streams an element patch to Datastar clients and plain HTML to
// everyone else.
func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return datastar.NewSSE(w, r).PatchElementTempl(t.component, t.options...)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.component.Render(r.Context(), w)
}

// Templ renders component. Options only affect Datastar requests.
func Templ(component templ.Component, opts ...TemplOption) Response {
	return templResponse{component: component, options: opts}
}
