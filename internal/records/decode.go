package records

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/vvka-141/pgstar/pkg/pgstar"
)

// MaxLineSize bounds a single JSON line.
const MaxLineSize = 4 * 1024 * 1024

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseError reports a malformed or incomplete record. It matches
// pgstar.ErrParseFailed with errors.Is.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{pgstar.ErrParseFailed, e.Err}
}

// Lines lazily decodes one record of type T per non-blank line of r and
// validates it. The sequence stops after the first error, which is always
// a *ParseError. Nothing beyond the current line is held in memory.
func Lines[T any](r io.Reader) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

		line := 0
		for sc.Scan() {
			line++
			raw := bytes.TrimSpace(sc.Bytes())
			if len(raw) == 0 {
				continue
			}

			var rec T
			if err := json.Unmarshal(raw, &rec); err != nil {
				yield(zero, &ParseError{Line: line, Err: err})
				return
			}
			if err := validate.Struct(&rec); err != nil {
				yield(zero, &ParseError{Line: line, Err: describe(err)})
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(zero, &ParseError{Line: line + 1, Err: err})
		}
	}
}

// describe flattens validator output into "missing field a, b".
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fmt.Errorf("missing field %s", strings.Join(fields, ", "))
}
