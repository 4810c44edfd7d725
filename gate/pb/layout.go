package pb

import (
	"fmt"
	"strconv"
	"strings"
)

// Layout renders the byte layout of c, one line per slot:
//
//	offset width type name
func (c *Codec) Layout() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d bytes\n", c, c.total)
	fmt.Fprintf(&b, "%6d %5d %-10s %s\n", lengthOffset, 2, "uint16", "<length>")
	fmt.Fprintf(&b, "%6d %5d %-10s %s\n", idOffset, 1, "uint8", "<id>")
	for _, f := range c.fields {
		t := f.Type.String()
		if f.Type == String {
			t += "[" + strconv.Itoa(f.Width) + "]"
		}
		fmt.Fprintf(&b, "%6d %5d %-10s %s\n", f.Offset, f.Width, t, f.Name)
	}
	return b.String()
}

// ParseValue converts text into the Go value expected by a field of type t.
func ParseValue(t FieldType, s string) (interface{}, error) {
	var (
		v   interface{}
		err error
	)
	switch t {
	case String:
		return s, nil
	case Float32:
		var x float64
		x, err = strconv.ParseFloat(s, 32)
		v = float32(x)
	case Float64:
		v, err = strconv.ParseFloat(s, 64)
	case Int8, Int16, Int32:
		w, _ := t.Width()
		var x int64
		x, err = strconv.ParseInt(s, 0, w*8)
		v = x
	case UInt8, UInt16, UInt32:
		w, _ := t.Width()
		var x uint64
		x, err = strconv.ParseUint(s, 0, w*8)
		v = x
	case Boolean:
		v, err = strconv.ParseBool(s)
	default:
		return nil, schemaErr("", "unknown field type %d", uint8(t))
	}
	if err != nil {
		return nil, &Error{Kind: KindEncoding, Detail: fmt.Sprintf("parse %q as %s", s, t), Cause: err}
	}
	return v, nil
}
