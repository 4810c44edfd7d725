package pb

import (
	"reflect"
	"sync"
	"unicode"
	"unicode/utf8"
)

/*
	结构体绑定，字段通过tag关联：

	type Character struct {
		Name  string `pb:"name"`
		Level uint32 `pb:"level"`
	}

	没有tag的导出字段使用首字母小写的字段名，tag为"-"的字段忽略
*/

type bindKey struct {
	codec *Codec
	rt    reflect.Type
}

// 每个codec字段对应的结构体字段下标，-1表示结构体里没有
var bindCache sync.Map

func (c *Codec) bindIndex(rt reflect.Type) []int {
	key := bindKey{codec: c, rt: rt}
	if v, ok := bindCache.Load(key); ok {
		return v.([]int)
	}
	byName := make(map[string]int, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name, ok := f.Tag.Lookup("pb")
		if name == "-" {
			continue
		}
		if !ok || name == "" {
			name = lowerFirst(f.Name)
		}
		byName[name] = i
	}
	idx := make([]int, len(c.fields))
	for i, f := range c.fields {
		if j, ok := byName[f.Name]; ok {
			idx[i] = j
		} else {
			idx[i] = -1
		}
	}
	bindCache.Store(key, idx)
	return idx
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[n:]
}

// ToObject copies the bound fields of struct v (or *struct) into an Object.
func (c *Codec) ToObject(v interface{}) (Object, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, encodingErr(c.name, "nil %T", v)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, encodingErr(c.name, "expected struct, got %T", v)
	}
	idx := c.bindIndex(rv.Type())
	obj := make(Object, len(c.fields))
	for i, f := range c.fields {
		if idx[i] >= 0 {
			obj[f.Name] = rv.Field(idx[i]).Interface()
		}
	}
	return obj, nil
}

// FromObject fills the bound fields of the struct pointed to by v.
func (c *Codec) FromObject(obj Object, v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return encodingErr(c.name, "expected non-nil struct pointer, got %T", v)
	}
	rv = rv.Elem()
	idx := c.bindIndex(rv.Type())
	for i, f := range c.fields {
		if idx[i] < 0 {
			continue
		}
		val, ok := obj[f.Name]
		if !ok {
			continue
		}
		fv := rv.Field(idx[i])
		if !setValue(fv, reflect.ValueOf(val)) {
			return encodingErr(f.Name, "cannot assign %T to %s", val, fv.Type())
		}
	}
	return nil
}

func setValue(fv, val reflect.Value) bool {
	if !val.IsValid() {
		return false
	}
	switch fv.Kind() {
	case reflect.String:
		if val.Kind() == reflect.String {
			fv.SetString(val.String())
			return true
		}
	case reflect.Slice:
		if fv.Type().Elem().Kind() == reflect.Uint8 && val.Kind() == reflect.String {
			fv.SetBytes([]byte(val.String()))
			return true
		}
	case reflect.Bool:
		if val.Kind() == reflect.Bool {
			fv.SetBool(val.Bool())
			return true
		}
	case reflect.Float32, reflect.Float64:
		if val.Kind() == reflect.Float32 || val.Kind() == reflect.Float64 {
			fv.SetFloat(val.Float())
			return true
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var x int64
		switch val.Kind() {
		case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
			x = val.Int()
		case reflect.Uint8, reflect.Uint16, reflect.Uint32:
			x = int64(val.Uint())
		default:
			return false
		}
		if fv.OverflowInt(x) {
			return false
		}
		fv.SetInt(x)
		return true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var x uint64
		switch val.Kind() {
		case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
			x = val.Uint()
		case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
			if val.Int() < 0 {
				return false
			}
			x = uint64(val.Int())
		default:
			return false
		}
		if fv.OverflowUint(x) {
			return false
		}
		fv.SetUint(x)
		return true
	}
	return false
}

// Pack serializes a bound struct.
func (c *Codec) Pack(v interface{}) ([]byte, error) {
	obj, err := c.ToObject(v)
	if err != nil {
		return nil, err
	}
	return c.Serialize(obj)
}

// Unpack deserializes buf into the struct pointed to by v.
func (c *Codec) Unpack(buf []byte, v interface{}) error {
	obj, err := c.Deserialize(buf)
	if err != nil {
		return err
	}
	return c.FromObject(obj, v)
}
