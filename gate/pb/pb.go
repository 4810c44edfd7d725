package pb

import (
	"log"

	"go.uber.org/multierr"
)

/*
	声明一个定长协议：

	codec := pb.NewStruct(1).
		String("name", 16).
		UInt32("level").
		MustBuild()

	字段的顺序决定了读写的偏移，编译后不能修改
	小端字节，协议头为 [2字节总长度][1字节协议号]
*/

// Struct is the schema builder. Every declaration method returns the same
// builder so calls can be chained; problems are collected and reported by
// Build.
type Struct struct {
	id     uint8
	name   string
	fields []FieldSpec
	names  map[string]struct{}
	err    error
	built  bool
}

func NewStruct(id uint8) *Struct {
	return &Struct{id: id, names: make(map[string]struct{})}
}

// Name sets a label used in logs, table names and the shell.
func (s *Struct) Name(name string) *Struct {
	s.name = name
	return s
}

func (s *Struct) String(name string, capacity int) *Struct {
	return s.Field(name, String, capacity)
}

func (s *Struct) Float32(name string) *Struct {
	return s.add(name, Float32)
}

func (s *Struct) Float64(name string) *Struct {
	return s.add(name, Float64)
}

func (s *Struct) Int8(name string) *Struct {
	return s.add(name, Int8)
}

func (s *Struct) Int16(name string) *Struct {
	return s.add(name, Int16)
}

func (s *Struct) Int32(name string) *Struct {
	return s.add(name, Int32)
}

func (s *Struct) UInt8(name string) *Struct {
	return s.add(name, UInt8)
}

func (s *Struct) UInt16(name string) *Struct {
	return s.add(name, UInt16)
}

func (s *Struct) UInt32(name string) *Struct {
	return s.add(name, UInt32)
}

func (s *Struct) Boolean(name string) *Struct {
	return s.add(name, Boolean)
}

func (s *Struct) add(name string, t FieldType) *Struct {
	w, _ := t.Width()
	return s.Field(name, t, w)
}

// Field declares a field of any type. width must equal the type's own width,
// or be the reserved capacity for String.
func (s *Struct) Field(name string, t FieldType, width int) *Struct {
	if s.built {
		s.fail(schemaErr(name, "struct %d already built", s.id))
		return s
	}
	if name == "" {
		s.fail(schemaErr("", "field %d has an empty name", len(s.fields)))
		return s
	}
	if _, ok := s.names[name]; ok {
		s.fail(schemaErr(name, "duplicate field name"))
		return s
	}
	if !t.Valid() {
		s.fail(schemaErr(name, "unknown field type %d", uint8(t)))
		return s
	}
	if t == String {
		if width <= 0 {
			s.fail(schemaErr(name, "string capacity must be positive, got %d", width))
			return s
		}
	} else if w, _ := t.Width(); w != width {
		s.fail(schemaErr(name, "%s has width %d, got %d", t, w, width))
		return s
	}
	s.names[name] = struct{}{}
	s.fields = append(s.fields, FieldSpec{Name: name, Type: t, Width: width})
	return s
}

func (s *Struct) fail(err error) {
	s.err = multierr.Append(s.err, err)
}

// Build freezes the field list into a Codec. A builder can be built once.
func (s *Struct) Build() (*Codec, error) {
	if s.built {
		return nil, schemaErr("", "struct %d already built", s.id)
	}
	s.built = true
	if s.err != nil {
		return nil, s.err
	}
	total := PreambleSize
	fields := make([]FieldSpec, len(s.fields))
	index := make(map[string]int, len(s.fields))
	for i, f := range s.fields {
		f.Offset = total
		fields[i] = f
		index[f.Name] = i
		total += f.Width
		if total > MaxLength {
			return nil, schemaErr(f.Name, "message length exceeds %d bytes", MaxLength)
		}
	}
	s.fields = nil
	s.names = nil
	return &Codec{id: s.id, name: s.name, total: total, fields: fields, index: index}, nil
}

// MustBuild is Build for schemas declared at init time, where an error is a
// programming bug.
func (s *Struct) MustBuild() *Codec {
	c, err := s.Build()
	if err != nil {
		log.Panic(err)
	}
	return c
}

var defaultRegistry = NewRegistry()

// Register 注册到默认的分发表
func Register(id uint8, c *Codec) error {
	return defaultRegistry.Register(id, c)
}

// 可以通过该函数并发获取codec
func GetCodec(id uint8) *Codec {
	return defaultRegistry.Lookup(id)
}

func Dispatch(buf []byte) (uint8, Object, error) {
	return defaultRegistry.Dispatch(buf)
}

func Default() *Registry {
	return defaultRegistry
}
