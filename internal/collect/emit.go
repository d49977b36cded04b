// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/getids/pkg/types"
)

// Emit writes ids to w in the given format. An empty format means text.
func Emit(w io.Writer, ids []string, format types.OutputFormat) error {
	if ids == nil {
		ids = []string{}
	}

	switch format {
	case "", types.OutputText:
		return jsonEncoder(w, "").Encode(ids)

	case types.OutputJSON:
		return jsonEncoder(w, "  ").Encode(ids)

	case types.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ids); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()

	case types.OutputLines:
		for _, id := range ids {
			if _, err := fmt.Fprintln(w, id); err != nil {
				return err
			}
		}
		return nil
	}

	return fmt.Errorf("unknown output format %q", format)
}

// jsonEncoder writes ids verbatim: '&', '<' and '>' are not escaped.
func jsonEncoder(w io.Writer, indent string) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc
}

// Run collects the ids of elements and emits them to w, returning the
// collected list.
func Run(elements []types.Element, w io.Writer, format types.OutputFormat) ([]string, error) {
	ids := IDs(elements)
	if err := Emit(w, ids, format); err != nil {
		return ids, err
	}
	return ids, nil
}
