package pb

import (
	"fmt"
	"log"
	"math"
)

/*
	定长协议的字段类型表
	除了String以外，每种类型都有固定的字节宽度
	String的宽度由声明时指定，不足补0，超出截断
*/

type FieldType uint8

const (
	String FieldType = iota
	Float32
	Float64
	Int8
	Int16
	Int32
	UInt8
	UInt16
	UInt32
	Boolean

	fieldTypeNum
)

const (
	// PreambleSize 2字节总长度 + 1字节协议号
	PreambleSize = 3
	// MaxLength 总长度需要写入uint16
	MaxLength = math.MaxUint16

	lengthOffset = 0
	idOffset     = 2
)

var typeWidth = [fieldTypeNum]int{
	String:  -1,
	Float32: 4,
	Float64: 8,
	Int8:    1,
	Int16:   2,
	Int32:   4,
	UInt8:   1,
	UInt16:  2,
	UInt32:  4,
	Boolean: 1,
}

var typeName = [fieldTypeNum]string{
	String:  "string",
	Float32: "float32",
	Float64: "float64",
	Int8:    "int8",
	Int16:   "int16",
	Int32:   "int32",
	UInt8:   "uint8",
	UInt16:  "uint16",
	UInt32:  "uint32",
	Boolean: "bool",
}

func (t FieldType) Valid() bool {
	return t < fieldTypeNum
}

// Width returns the fixed byte width of t. The second result is false for
// String, whose width is chosen per field. An unknown type is a schema bug
// and panics.
func (t FieldType) Width() (int, bool) {
	if !t.Valid() {
		log.Panicf("pb: unknown field type %d", uint8(t))
	}
	w := typeWidth[t]
	if w < 0 {
		return 0, false
	}
	return w, true
}

func (t FieldType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("FieldType(%d)", uint8(t))
	}
	return typeName[t]
}

func (t FieldType) signed() bool {
	return t == Int8 || t == Int16 || t == Int32
}

func (t FieldType) unsigned() bool {
	return t == UInt8 || t == UInt16 || t == UInt32
}

// FieldSpec 一个字段的声明，Offset在编译时计算
type FieldSpec struct {
	Name   string
	Type   FieldType
	Width  int
	Offset int
}

// Object 序列化的输入和反序列化的输出
type Object map[string]interface{}

// Codec 由Struct编译得到，编译后不可修改，可以并发使用
type Codec struct {
	id     uint8
	name   string
	total  int
	fields []FieldSpec
	index  map[string]int
}

func (c *Codec) ID() uint8 {
	return c.id
}

func (c *Codec) Name() string {
	return c.name
}

// TotalLength is the size of every message produced by c, preamble included.
func (c *Codec) TotalLength() int {
	return c.total
}

func (c *Codec) Fields() []FieldSpec {
	fields := make([]FieldSpec, len(c.fields))
	copy(fields, c.fields)
	return fields
}

func (c *Codec) Field(name string) (FieldSpec, bool) {
	if i, ok := c.index[name]; ok {
		return c.fields[i], true
	}
	return FieldSpec{}, false
}

func (c *Codec) String() string {
	if c.name == "" {
		return fmt.Sprintf("codec(%d)", c.id)
	}
	return fmt.Sprintf("%s(%d)", c.name, c.id)
}
