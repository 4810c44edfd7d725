package pb

import (
	"encoding/binary"
	"math"
	"reflect"
	"unicode/utf8"

	"github.com/liangmanlin/gostruct/bpool"
	"go.uber.org/multierr"
)

// Serialize writes obj into a newly allocated buffer of exactly
// TotalLength bytes. Every offending field is reported in the returned
// error, see multierr.Errors.
func (c *Codec) Serialize(obj Object) ([]byte, error) {
	buf := make([]byte, c.total)
	if err := c.encode(buf, obj); err != nil {
		return nil, err
	}
	return buf, nil
}

// SerializeTo writes into a buffer owned by the caller. dst must hold at
// least TotalLength bytes; its content is undefined when an error is
// returned.
func (c *Codec) SerializeTo(dst []byte, obj Object) (int, error) {
	if len(dst) < c.total {
		return 0, boundsErr("", c.total, len(dst))
	}
	if err := c.encode(dst[:c.total], obj); err != nil {
		return 0, err
	}
	return c.total, nil
}

// SerializeBuff 使用缓冲池，调用者负责Free
func (c *Codec) SerializeBuff(obj Object) (*bpool.Buff, error) {
	b := bpool.New(c.total)
	b.SetSize(c.total)
	if err := c.encode(b.ToBytes(), obj); err != nil {
		b.Free()
		return nil, err
	}
	return b, nil
}

// buf的长度已经确认等于total，每个字节都会被覆盖
func (c *Codec) encode(buf []byte, obj Object) error {
	binary.LittleEndian.PutUint16(buf[lengthOffset:], uint16(c.total))
	buf[idOffset] = c.id
	var errs error
	for i := range c.fields {
		f := &c.fields[i]
		v, ok := obj[f.Name]
		if !ok {
			errs = multierr.Append(errs, encodingErr(f.Name, "missing value"))
			continue
		}
		if err := writeField(buf[f.Offset:f.Offset+f.Width], f, v); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func writeField(span []byte, f *FieldSpec, v interface{}) error {
	switch f.Type {
	case String:
		s, ok := stringValue(v)
		if !ok {
			return encodingErr(f.Name, "expected string, got %T", v)
		}
		n := copy(span, truncate(s, len(span)))
		clear(span[n:])
	case Float32:
		x, ok := floatValue(v)
		if !ok {
			return encodingErr(f.Name, "expected number, got %T", v)
		}
		if !math.IsInf(x, 0) && math.IsInf(float64(float32(x)), 0) {
			return encodingErr(f.Name, "%g out of %s range", x, f.Type)
		}
		binary.LittleEndian.PutUint32(span, math.Float32bits(float32(x)))
	case Float64:
		x, ok := floatValue(v)
		if !ok {
			return encodingErr(f.Name, "expected number, got %T", v)
		}
		binary.LittleEndian.PutUint64(span, math.Float64bits(x))
	case Int8, Int16, Int32:
		x, err := signedValue(f, v)
		if err != nil {
			return err
		}
		putUint(span, uint64(x))
	case UInt8, UInt16, UInt32:
		x, err := unsignedValue(f, v)
		if err != nil {
			return err
		}
		putUint(span, x)
	case Boolean:
		b, ok := v.(bool)
		if !ok {
			return encodingErr(f.Name, "expected bool, got %T", v)
		}
		span[0] = 0
		if b {
			span[0] = 1
		}
	default:
		return schemaErr(f.Name, "unsupported field type %s", f.Type)
	}
	return nil
}

func putUint(span []byte, x uint64) {
	switch len(span) {
	case 1:
		span[0] = uint8(x)
	case 2:
		binary.LittleEndian.PutUint16(span, uint16(x))
	case 4:
		binary.LittleEndian.PutUint32(span, uint32(x))
	case 8:
		binary.LittleEndian.PutUint64(span, x)
	}
}

// truncate 截断到n字节以内，不拆开多字节字符
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func stringValue(v interface{}) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

func floatValue(v interface{}) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	}
	return 0, false
}

func signedValue(f *FieldSpec, v interface{}) (int64, error) {
	rv := reflect.ValueOf(v)
	var x int64
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		x = rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, encodingErr(f.Name, "%d out of %s range", u, f.Type)
		}
		x = int64(u)
	default:
		return 0, encodingErr(f.Name, "expected integer, got %T", v)
	}
	bits := uint(f.Width * 8)
	if x < -1<<(bits-1) || x > 1<<(bits-1)-1 {
		return 0, encodingErr(f.Name, "%d out of %s range", x, f.Type)
	}
	return x, nil
}

func unsignedValue(f *FieldSpec, v interface{}) (uint64, error) {
	rv := reflect.ValueOf(v)
	var x uint64
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		x = rv.Uint()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		if i < 0 {
			return 0, encodingErr(f.Name, "%d out of %s range", i, f.Type)
		}
		x = uint64(i)
	default:
		return 0, encodingErr(f.Name, "expected integer, got %T", v)
	}
	if x > 1<<uint(f.Width*8)-1 {
		return 0, encodingErr(f.Name, "%d out of %s range", x, f.Type)
	}
	return x, nil
}
