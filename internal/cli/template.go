package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/mailforge/pkg/document"
)

// readTemplate loads a template from path, or from stdin when path is "-".
// YAML files are converted to JSON first so both encodings share the
// document decoder.
func readTemplate(path string, stdin io.Reader) (document.Template, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return document.Template{}, errors.Join(ErrReadTemplate, err)
	}

	if isYAML(path, data) {
		if data, err = yamlToJSON(data); err != nil {
			return document.Template{}, errors.Join(ErrReadTemplate, err)
		}
	}

	t, err := document.Decode(data)
	if err != nil {
		return document.Template{}, errors.Join(ErrReadTemplate, err)
	}
	return t, nil
}

func isYAML(path string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	case ".json":
		return false
	}
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] != '{' && trimmed[0] != '['
}

func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// writeTemplate encodes t as indented JSON or as YAML.
func writeTemplate(w io.Writer, t document.Template, asYAML bool) error {
	if t.Components == nil {
		t.Components = []document.Component{}
	}
	if asYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(t); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}
