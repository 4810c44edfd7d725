package pb

import (
	"fmt"
	"strings"
)

type Kind string

const (
	KindSchema       Kind = "schema"
	KindBounds       Kind = "buffer_bounds"
	KindUnregistered Kind = "unregistered_identifier"
	KindEncoding     Kind = "encoding"
)

// Error is returned by every operation of this package. Match a category
// with errors.Is(err, ErrSchema) and friends; the Field and Detail of the
// target are ignored.
type Error struct {
	Kind   Kind
	Field  string
	Detail string
	Cause  error
}

var (
	ErrSchema       = &Error{Kind: KindSchema}
	ErrBufferBounds = &Error{Kind: KindBounds}
	ErrUnregistered = &Error{Kind: KindUnregistered}
	ErrEncoding     = &Error{Kind: KindEncoding}
)

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("pb: ")
	b.WriteString(string(e.Kind))
	if e.Field != "" {
		b.WriteString(" at ")
		b.WriteString(e.Field)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

func schemaErr(field string, format string, args ...interface{}) *Error {
	return &Error{Kind: KindSchema, Field: field, Detail: fmt.Sprintf(format, args...)}
}

func boundsErr(field string, need, have int) *Error {
	return &Error{Kind: KindBounds, Field: field, Detail: fmt.Sprintf("need %d bytes, have %d", need, have)}
}

func encodingErr(field string, format string, args ...interface{}) *Error {
	return &Error{Kind: KindEncoding, Field: field, Detail: fmt.Sprintf(format, args...)}
}

func unregisteredErr(id uint8) *Error {
	return &Error{Kind: KindUnregistered, Detail: fmt.Sprintf("no codec for id %d", id)}
}
