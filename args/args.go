package args

import (
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unsafe"
)

/*
	提供一个比较方便获取命令行参数的方法，支持等号赋值和shell模式赋值

	-key=value or -key value

	支持多次赋值，取最后一个

	-key value1 -key value2

	func FillEvn(env interface{})

	支持自动填入命令行参数到对象如
	type Env struct{
		k        int
		v        int `command:"v"`
	}
	var env = &Env{}
	FillEvn(env)

	./main -k 2 -v 1

	系统只会填入tag:command的字段
*/

var (
	mux    sync.RWMutex
	_args  = make(map[string][]string)
	_other []string
)

func init() {
	Parse(os.Args[1:])
}

// Parse replaces the parsed arguments with l, mainly for tests and embedding.
func Parse(l []string) {
	m := make(map[string][]string)
	var other []string
	for i := 0; i < len(l); {
		v := l[i]
		if len(v) > 1 && v[0] == '-' {
			i = readValue(m, strings.TrimLeft(v, "-"), l, i)
		} else {
			// 把余下的放到一个大列表中
			other = append(other, v)
			i++
		}
	}
	mux.Lock()
	_args = m
	_other = other
	mux.Unlock()
}

func readValue(m map[string][]string, key string, l []string, i int) int {
	if len(key) == 0 {
		return i + 1
	}
	// 支持golang 等号（=）赋值
	if idx := strings.IndexByte(key, '='); idx >= 0 {
		m[key[:idx]] = append(m[key[:idx]], key[idx+1:])
		return i + 1
	}
	// 最后一个，或者后面紧跟另一个参数
	if len(l) == i+1 || isKey(l[i+1]) {
		m[key] = append(m[key], "")
		return i + 1
	}
	m[key] = append(m[key], l[i+1])
	return i + 2
}

// 负数不当作参数名
func isKey(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err != nil
}

func last(key string) (string, bool) {
	mux.RLock()
	defer mux.RUnlock()
	if vl, ok := _args[key]; ok && len(vl) > 0 {
		return vl[len(vl)-1], true
	}
	return "", false
}

func GetInt(key string) (int, bool) {
	if s, ok := last(key); ok {
		if i, err := strconv.Atoi(s); err == nil {
			return i, true
		}
	}
	return 0, false
}

func GetString(key string) (string, bool) {
	return last(key)
}

// GetBool 只写了参数名也算true
func GetBool(key string) (bool, bool) {
	s, ok := last(key)
	if !ok {
		return false, false
	}
	if s == "" {
		return true, true
	}
	b, err := strconv.ParseBool(s)
	return b, err == nil
}

func GetIntDefault(key string, df int) int {
	if i, ok := GetInt(key); ok {
		return i
	}
	return df
}

func GetStringDefault(key string, df string) string {
	if s, ok := last(key); ok {
		return s
	}
	return df
}

func GetValues(key string) []string {
	mux.RLock()
	defer mux.RUnlock()
	if v, ok := _args[key]; ok {
		return append([]string(nil), v...)
	}
	return nil
}

func GetOther() []string {
	mux.RLock()
	defer mux.RUnlock()
	return append([]string(nil), _other...)
}

// 根据命令行参数，自动填充，支持 整数，浮点，bool，字符串，[]string
// env 需要是结构体指针，不导出的字段也可以填充
func FillEvn(env interface{}) {
	vt := reflect.ValueOf(env)
	if vt.Kind() != reflect.Ptr || vt.IsNil() || vt.Elem().Kind() != reflect.Struct {
		return
	}
	vt = vt.Elem()
	ft := vt.Type()
	for i := 0; i < ft.NumField(); i++ {
		fieldType := ft.Field(i)
		name, ok := fieldType.Tag.Lookup("command")
		if !ok {
			continue
		}
		fv := vt.Field(i)
		if !fv.CanSet() {
			fv = reflect.NewAt(fieldType.Type, unsafe.Pointer(fv.UnsafeAddr())).Elem()
		}
		setValue(fv, name)
	}
}

func setValue(fv reflect.Value, name string) {
	s, ok := last(name)
	if !ok {
		return
	}
	switch fv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v, err := strconv.ParseInt(s, 0, 64); err == nil && !fv.OverflowInt(v) {
			fv.SetInt(v)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v, err := strconv.ParseUint(s, 0, 64); err == nil && !fv.OverflowUint(v) {
			fv.SetUint(v)
		}
	case reflect.Float32, reflect.Float64:
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			fv.SetFloat(v)
		}
	case reflect.String:
		fv.SetString(s)
	case reflect.Bool:
		if v, ok := GetBool(name); ok {
			fv.SetBool(v)
		}
	case reflect.Slice:
		if fv.Type().Elem().Kind() == reflect.String {
			fv.Set(reflect.ValueOf(GetValues(name)).Convert(fv.Type()))
		}
	}
}
