package schema

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// Kind is the JSON type a field must decode to.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindNumber
	KindObject
	KindArray
)

// Field describes one contract node. String bounds count runes; array bounds
// count elements. A zero MaxLen means unbounded.
type Field struct {
	Name     string
	Kind     Kind
	Optional bool
	Enum     []string
	MinLen   int
	MaxLen   int
	Elem     *Field  // array element contract
	Fields   []Field // object members
}

// Contract is the full output contract for one role.
type Contract struct {
	Role   Role
	Fields []Field
}

// Issue is a single contract violation at a JSON path.
type Issue struct {
	Path    string
	Message string
}

func (i Issue) String() string {
	return i.Path + ": " + i.Message
}

// ValidationError reports every contract violation found in one output.
type ValidationError struct {
	Role   Role
	Issues []Issue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	return fmt.Sprintf("%s output invalid: %s", e.Role, strings.Join(msgs, "; "))
}

// Validate checks a decoded JSON object against the contract. It walks the
// whole value and reports every violation rather than stopping at the first.
func (c *Contract) Validate(value map[string]any) error {
	var issues []Issue
	validateObject("", c.Fields, value, &issues)
	if len(issues) > 0 {
		return &ValidationError{Role: c.Role, Issues: issues}
	}
	return nil
}

func validateObject(path string, fields []Field, value map[string]any, issues *[]Issue) {
	for _, f := range fields {
		child, ok := value[f.Name]
		fpath := joinPath(path, f.Name)
		if !ok || child == nil {
			if !f.Optional {
				*issues = append(*issues, Issue{Path: fpath, Message: "required"})
			}
			continue
		}
		validateField(fpath, f, child, issues)
	}
}

func validateField(path string, f Field, value any, issues *[]Issue) {
	switch f.Kind {
	case KindString:
		s, ok := value.(string)
		if !ok {
			*issues = append(*issues, Issue{Path: path, Message: "expected string"})
			return
		}
		n := utf8.RuneCountInString(s)
		if n < f.MinLen {
			*issues = append(*issues, Issue{Path: path, Message: fmt.Sprintf("shorter than %d characters", f.MinLen)})
		}
		if f.MaxLen > 0 && n > f.MaxLen {
			*issues = append(*issues, Issue{Path: path, Message: fmt.Sprintf("longer than %d characters", f.MaxLen)})
		}
		if len(f.Enum) > 0 && !contains(f.Enum, s) {
			*issues = append(*issues, Issue{Path: path, Message: fmt.Sprintf("%q not in %v", s, f.Enum)})
		}
	case KindInt:
		n, ok := value.(float64)
		if !ok || n != math.Trunc(n) {
			*issues = append(*issues, Issue{Path: path, Message: "expected integer"})
		}
	case KindNumber:
		if _, ok := value.(float64); !ok {
			*issues = append(*issues, Issue{Path: path, Message: "expected number"})
		}
	case KindObject:
		m, ok := value.(map[string]any)
		if !ok {
			*issues = append(*issues, Issue{Path: path, Message: "expected object"})
			return
		}
		validateObject(path, f.Fields, m, issues)
	case KindArray:
		arr, ok := value.([]any)
		if !ok {
			*issues = append(*issues, Issue{Path: path, Message: "expected array"})
			return
		}
		if len(arr) < f.MinLen {
			*issues = append(*issues, Issue{Path: path, Message: fmt.Sprintf("fewer than %d elements", f.MinLen)})
		}
		if f.MaxLen > 0 && len(arr) > f.MaxLen {
			*issues = append(*issues, Issue{Path: path, Message: fmt.Sprintf("more than %d elements", f.MaxLen)})
		}
		if f.Elem != nil {
			for i, elem := range arr {
				validateField(fmt.Sprintf("%s[%d]", path, i), *f.Elem, elem, issues)
			}
		}
	}
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
