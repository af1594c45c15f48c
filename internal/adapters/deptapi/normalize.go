package deptapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/jmespath-community/go-jmespath"
	"github.com/microcosm-cc/bluemonday"

	"github.com/target/deptdash/internal/domain/model"
)

// Response shapes vary between deployments: payloads may be wrapped in "data",
// ids may arrive as "_id", names as "dept_name".
const (
	tokenExpr   = "token || data.token"
	messageExpr = "Error || message"
	listExpr    = "(data || @)[].{id: id || _id, name: name || dept_name, description: description}"
	singleExpr  = "(data || @).{id: id || _id, name: name || dept_name, description: description}"
)

const maxMessageLen = 300

var (
	errUnexpectedShape = errors.New("unexpected response shape")
	messagePolicy      = bluemonday.StrictPolicy()
)

// decodeJSON decodes a response body. An empty body decodes to nil without error.
func decodeJSON(raw []byte) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode response body: %w", err)
	}
	if dec.More() {
		return nil, errors.New("decode response body: trailing data after JSON value")
	}
	return v, nil
}

func search(expr string, body any) any {
	if body == nil {
		return nil
	}
	out, err := jmespath.Search(expr, body)
	if err != nil {
		return nil
	}
	return out
}

func extractToken(body any) string {
	return scalarString(search(tokenExpr, body))
}

// extractMessage returns the server-supplied message with markup stripped, or "".
func extractMessage(body any) string {
	msg, ok := search(messageExpr, body).(string)
	if !ok {
		return ""
	}
	return sanitizeMessage(msg)
}

func sanitizeMessage(msg string) string {
	clean := strings.TrimSpace(html.UnescapeString(messagePolicy.Sanitize(msg)))
	clean = strings.Join(strings.Fields(clean), " ")
	if len(clean) > maxMessageLen {
		clean = strings.TrimSpace(clean[:maxMessageLen]) + "…"
	}
	return clean
}

func normalizeList(body any) ([]model.Department, error) {
	switch b := body.(type) {
	case []any:
	case map[string]any:
		data, ok := b["data"]
		if !ok && len(b) > 0 {
			return nil, fmt.Errorf("%w: object without data", errUnexpectedShape)
		}
		if _, isList := data.([]any); data != nil && !isList {
			return nil, fmt.Errorf("%w: data is %T", errUnexpectedShape, data)
		}
	case nil:
		return []model.Department{}, nil
	default:
		return nil, fmt.Errorf("%w: %T", errUnexpectedShape, body)
	}

	items, _ := search(listExpr, body).([]any)
	out := make([]model.Department, 0, len(items))
	for _, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if dept := departmentFrom(fields); !dept.IsZero() {
			out = append(out, dept)
		}
	}
	return out, nil
}

func normalizeOne(body any) (model.Department, error) {
	if _, ok := body.(map[string]any); !ok {
		return model.Department{}, fmt.Errorf("%w: %T", errUnexpectedShape, body)
	}
	fields, ok := search(singleExpr, body).(map[string]any)
	if !ok {
		return model.Department{}, errUnexpectedShape
	}
	dept := departmentFrom(fields)
	if dept.IsZero() {
		return model.Department{}, errUnexpectedShape
	}
	return dept, nil
}

func departmentFrom(fields map[string]any) model.Department {
	return model.Department{
		ID:          scalarString(fields["id"]),
		Name:        scalarString(fields["name"]),
		Description: scalarString(fields["description"]),
	}
}

func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}
