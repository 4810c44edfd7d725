package pb

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"
)

// Deserialize reads every field of c out of buf. buf shorter than
// TotalLength is rejected before any field is read. Extra trailing bytes are
// ignored.
func (c *Codec) Deserialize(buf []byte) (Object, error) {
	if len(buf) < c.total {
		return nil, boundsErr(c.name, c.total, len(buf))
	}
	obj := make(Object, len(c.fields))
	for i := range c.fields {
		f := &c.fields[i]
		obj[f.Name] = readField(buf[f.Offset:f.Offset+f.Width], f.Type)
	}
	return obj, nil
}

func readField(span []byte, t FieldType) interface{} {
	switch t {
	case String:
		// 0结尾，没有0则整个区间都是字符串
		if i := bytes.IndexByte(span, 0); i >= 0 {
			span = span[:i]
		}
		// 非法的utf8替换成U+FFFD
		return strings.ToValidUTF8(string(span), "\uFFFD")
	case Float32:
		return math.Float32frombits(binary.LittleEndian.Uint32(span))
	case Float64:
		return math.Float64frombits(binary.LittleEndian.Uint64(span))
	case Int8:
		return int8(span[0])
	case Int16:
		return int16(binary.LittleEndian.Uint16(span))
	case Int32:
		return int32(binary.LittleEndian.Uint32(span))
	case UInt8:
		return span[0]
	case UInt16:
		return binary.LittleEndian.Uint16(span)
	case UInt32:
		return binary.LittleEndian.Uint32(span)
	case Boolean:
		return span[0] != 0
	}
	// Build只接受已知类型
	panic("pb: unknown field type " + t.String())
}

// PeekLength 读取协议头里的总长度，不需要知道协议定义
func PeekLength(buf []byte) (int, error) {
	if len(buf) < lengthOffset+2 {
		return 0, boundsErr("length", lengthOffset+2, len(buf))
	}
	return int(binary.LittleEndian.Uint16(buf[lengthOffset:])), nil
}

func PeekIdentifier(buf []byte) (uint8, error) {
	if len(buf) < idOffset+1 {
		return 0, boundsErr("id", idOffset+1, len(buf))
	}
	return buf[idOffset], nil
}
