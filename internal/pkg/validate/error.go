package validate

import (
	"sort"
	"strings"
)

type FieldsError struct {
	Fields map[string]string
}

func NewFieldsError(fields map[string]string) *FieldsError {
	return &FieldsError{
		Fields: fields,
	}
}

// Error lists the failing messages in field order, e.g. for the approval
// endpoint which reports a single error string.
func (f *FieldsError) Error() string {
	if len(f.Fields) == 0 {
		return "Fields error"
	}
	keys := make([]string, 0, len(f.Fields))
	for k := range f.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, len(keys))
	for i, k := range keys {
		msgs[i] = f.Fields[k]
	}
	return strings.Join(msgs, "; ")
}
