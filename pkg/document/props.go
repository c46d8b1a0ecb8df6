package document

import (
	"encoding/json"
	"maps"
	"math"
	"sort"
	"strconv"
)

// Well-known prop keys shared by the factory, the editor and the generators.
const (
	PropContent         = "content"
	PropStyle           = "style"
	PropContainerStyle  = "containerStyle"
	PropHref            = "href"
	PropSrc             = "src"
	PropAlt             = "alt"
	PropLevel           = "level"
	PropColor           = "color"
	PropBackgroundColor = "backgroundColor"
	PropPadding         = "padding"
	PropHeight          = "height"
	PropColumns         = "columns"
	PropItems           = "items"
	PropOrdered         = "ordered"
	PropLanguage        = "language"
	PropNetworks        = "networks"
)

// Props is the open property bag of a node. Values are JSON-compatible:
// strings, numbers, booleans, nested maps and slices.
type Props map[string]any

// Network is one entry of a social block.
type Network struct {
	Name string `json:"name" yaml:"name"`
	Href string `json:"href" yaml:"href"`
}

// Clone deep-copies the bag, including nested maps and slices.
func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

// Merge returns a new bag with update applied over p. Keys mapped to nil in
// update are removed; keys absent from update survive unchanged.
func (p Props) Merge(update Props) Props {
	out := make(Props, len(p)+len(update))
	maps.Copy(out, p)
	for k, v := range update {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

// Has reports whether key is set to a non-nil value.
func (p Props) Has(key string) bool {
	v, ok := p[key]
	return ok && v != nil
}

// String returns the value under key as text. Empty strings, missing keys and
// non-scalar values fall back to def.
func (p Props) String(key, def string) string {
	if s, ok := scalarString(p[key]); ok && s != "" {
		return s
	}
	return def
}

// HeadingLevel returns the level prop when it is within 1..6 and 2
// otherwise. Both generators render headings through it.
func (p Props) HeadingLevel() int {
	if l := p.Int(PropLevel, 2); l >= 1 && l <= 6 {
		return l
	}
	return 2
}

// Int returns the value under key as an integer, or def when the value is
// missing, zero or not numeric.
func (p Props) Int(key string, def int) int {
	switch v := p[key].(type) {
	case int:
		if v != 0 {
			return v
		}
	case int64:
		if v != 0 {
			return int(v)
		}
	case float64:
		if v != 0 && v == math.Trunc(v) {
			return int(v)
		}
	case json.Number:
		if n, err := v.Int64(); err == nil && n != 0 {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(v); err == nil && n != 0 {
			return n
		}
	}
	return def
}

// Bool returns the value under key as a boolean; anything but true is false.
func (p Props) Bool(key string) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

// Style returns the style map stored under key, or an empty map.
func (p Props) Style(key string) Style {
	return toStyle(p[key])
}

// Strings returns the list stored under key with non-string entries formatted.
func (p Props) Strings(key string) []string {
	switch v := p[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := scalarString(item); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Networks decodes the social network list of a social block.
func (p Props) Networks() []Network {
	switch v := p[PropNetworks].(type) {
	case []Network:
		return v
	case []any:
		out := make([]Network, 0, len(v))
		for _, item := range v {
			m, ok := toMap(item)
			if !ok {
				continue
			}
			name, _ := scalarString(m["name"])
			href, _ := scalarString(m["href"])
			out = append(out, Network{Name: name, Href: href})
		}
		return out
	case []map[string]any:
		out := make([]Network, 0, len(v))
		for _, m := range v {
			name, _ := scalarString(m["name"])
			href, _ := scalarString(m["href"])
			out = append(out, Network{Name: name, Href: href})
		}
		return out
	}
	return nil
}

// Style is a CSS declaration map keyed by camelCase property names.
type Style map[string]any

// Keys returns the property names in sorted order.
func (s Style) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value formats the declaration value for key.
func (s Style) Value(key string) string {
	v, _ := scalarString(s[key])
	return v
}

// Get returns the value under key or def when missing or empty.
func (s Style) Get(key, def string) string {
	if v := s.Value(key); v != "" {
		return v
	}
	return def
}

func toStyle(v any) Style {
	m, ok := toMap(v)
	if !ok {
		return Style{}
	}
	return Style(m)
}

func toMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Props:
		return m, true
	case Style:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	}
	return nil, false
}

func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case json.Number:
		return s.String(), true
	case bool:
		return strconv.FormatBool(s), true
	}
	return "", false
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = cloneValue(x)
		}
		return out
	case Props:
		return t.Clone()
	case Style:
		out := make(Style, len(t))
		for k, x := range t {
			out[k] = cloneValue(x)
		}
		return out
	case map[string]string:
		return maps.Clone(t)
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = cloneValue(x)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	case []Network:
		return append([]Network(nil), t...)
	default:
		return v
	}
}
