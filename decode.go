package idlmodel

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// DecodeJSON decodes a JSON schema document into the untyped document form:
// *Object for objects (insertion-ordered), []any for arrays, and
// string/bool/json.Number/nil for scalars. Duplicate object keys are reported
// as Issues (last value wins); the error is non-nil only for malformed JSON.
func DecodeJSON(data []byte) (any, Issues, error) {
	return DecodeJSONReader(bytes.NewReader(data))
}

// DecodeJSONReader is DecodeJSON over an io.Reader.
func DecodeJSONReader(r io.Reader) (any, Issues, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	w := &jsonWalker{dec: dec}
	v, err := w.value(nil)
	if err != nil {
		return nil, w.issues, err
	}
	// trailing content after the document is malformed input
	if _, err := dec.Token(); err != io.EOF {
		return nil, w.issues, fmt.Errorf("idlmodel: trailing data after document")
	}
	return v, w.issues, nil
}

type jsonWalker struct {
	dec    *json.Decoder
	issues Issues
}

// value consumes one JSON value. path holds the pointer segments leading to it.
func (w *jsonWalker) value(path []string) (any, error) {
	tok, err := w.dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("idlmodel: unexpected end of document")
		}
		return nil, err
	}
	return w.valueFrom(tok, path)
}

func (w *jsonWalker) valueFrom(tok any, path []string) (any, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return w.object(path)
		case '[':
			return w.array(path)
		}
		return nil, fmt.Errorf("idlmodel: unexpected delimiter %q", v)
	case string:
		return v, nil
	case bool:
		return v, nil
	case json.Number:
		return v, nil
	case float64:
		// UseNumber keeps numbers textual; some decoder paths still hand back float64.
		return json.Number(strconv.FormatFloat(v, 'g', -1, 64)), nil
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("idlmodel: unexpected token %v", tok)
}

func (w *jsonWalker) object(path []string) (*Object, error) {
	obj := NewObject()
	for {
		tok, err := w.dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("idlmodel: unexpected end of object")
			}
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return obj, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("idlmodel: object key is not a string: %v", tok)
		}
		if _, dup := obj.Get(key); dup {
			w.issues = AppendIssues(w.issues, Issue{
				Path:    pointer(path),
				Code:    CodeDuplicateKey,
				Message: "duplicate object key",
				Hint:    key,
			})
		}
		v, err := w.value(append(path, key))
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
}

func (w *jsonWalker) array(path []string) ([]any, error) {
	out := []any{}
	for i := 0; ; i++ {
		tok, err := w.dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("idlmodel: unexpected end of array")
			}
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return out, nil
		}
		v, err := w.valueFrom(tok, append(path, strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

// DecodeYAML decodes a YAML schema document into the same untyped document
// form as DecodeJSON. YAML mappings preserve document order natively, so the
// walk is over yaml.Node content pairs.
func DecodeYAML(data []byte) (any, Issues, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, nil, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, nil, nil
	}
	w := &yamlWalker{}
	v, err := w.node(root.Content[0], nil)
	if err != nil {
		return nil, w.issues, err
	}
	return v, w.issues, nil
}

type yamlWalker struct {
	issues Issues
}

func (w *yamlWalker) node(n *yaml.Node, path []string) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return w.node(n.Alias, path)
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			if _, dup := obj.Get(key); dup {
				w.issues = AppendIssues(w.issues, Issue{
					Path:    pointer(path),
					Code:    CodeDuplicateKey,
					Message: "duplicate mapping key",
					Hint:    key,
				})
			}
			v, err := w.node(n.Content[i+1], append(path, key))
			if err != nil {
				return nil, err
			}
			obj.Set(key, v)
		}
		return obj, nil
	case yaml.SequenceNode:
		out := []any{}
		for i, c := range n.Content {
			v, err := w.node(c, append(path, strconv.Itoa(i)))
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			return nil, nil
		case "!!bool":
			return strings.EqualFold(n.Value, "true"), nil
		case "!!int", "!!float":
			return json.Number(n.Value), nil
		default:
			return n.Value, nil
		}
	}
	return nil, fmt.Errorf("idlmodel: unsupported yaml node kind %d at %s", n.Kind, pointer(path))
}

// pointer renders path segments as a JSON Pointer, escaping per RFC 6901.
func pointer(parts []string) string {
	if len(parts) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, p := range parts {
		b.WriteByte('/')
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(p, "~", "~0"), "/", "~1"))
	}
	return b.String()
}
