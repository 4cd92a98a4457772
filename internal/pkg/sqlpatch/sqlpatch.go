// Package sqlpatch turns a sparse set of logical field changes into a
// parameterized SET clause.
//
// Placeholders are numbered $1..$n in the order fields were added, and
// Update.Values holds the bound values in that same order, so callers can
// append their own parameters (typically the row key) starting at $n+1.
package sqlpatch

import (
	"fmt"
	"strings"

	"github.com/deadeye/laserworks/internal/core/domain"
)

// Field is a single logical field name and its new value.
type Field struct {
	Name  string
	Value any
}

// Fields is an insertion-ordered set of field changes.
type Fields []Field

// Set appends name=value, or replaces the value in place when name was
// already set so the original position is kept.
func (f *Fields) Set(name string, value any) {
	for i := range *f {
		if (*f)[i].Name == name {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field{Name: name, Value: value})
}

// Names returns the logical field names in order.
func (f Fields) Names() []string {
	names := make([]string, len(f))
	for i, fld := range f {
		names[i] = fld.Name
	}
	return names
}

// SetIf adds name only when v is non-nil.
func SetIf[T any](f *Fields, name string, v *T) {
	if v != nil {
		f.Set(name, *v)
	}
}

// Update is the translated SET clause and its ordered bind values.
type Update struct {
	SetClause string
	Values    []any
}

// Next returns the placeholder for the first parameter after Values.
func (u Update) Next() string {
	return fmt.Sprintf("$%d", len(u.Values)+1)
}

// Args returns Values followed by extra, ready to pass to a query.
func (u Update) Args(extra ...any) []any {
	args := make([]any, 0, len(u.Values)+len(extra))
	args = append(args, u.Values...)
	return append(args, extra...)
}

// Build translates data into an Update. Each name is looked up in fieldMap;
// a name without a mapping is used verbatim as the column name, which lets
// callers pass fields that are already storage-named.
//
// Empty data fails with a BadRequest error.
func Build(data Fields, fieldMap map[string]string) (Update, error) {
	if len(data) == 0 {
		return Update{}, domain.BadRequest("no data")
	}

	cols := make([]string, len(data))
	values := make([]any, len(data))
	for i, f := range data {
		col, ok := fieldMap[f.Name]
		if !ok {
			col = f.Name
		}
		cols[i] = fmt.Sprintf("%s = $%d", col, i+1)
		values[i] = f.Value
	}

	return Update{SetClause: strings.Join(cols, ", "), Values: values}, nil
}
