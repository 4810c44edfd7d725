package db

import (
	"strconv"
	"time"

	"github.com/liangmanlin/gostruct/kernel"
)

const timeLayout = "2006-01-02 15:04:05"

// Encode renders v as a MySQL literal.
func Encode(v interface{}) string {
	switch v2 := v.(type) {
	case int:
		return strconv.Itoa(v2)
	case int8:
		return strconv.FormatInt(int64(v2), 10)
	case int16:
		return strconv.FormatInt(int64(v2), 10)
	case int32:
		return strconv.FormatInt(int64(v2), 10)
	case int64:
		return strconv.FormatInt(v2, 10)
	case uint8:
		return strconv.FormatUint(uint64(v2), 10)
	case uint16:
		return strconv.FormatUint(uint64(v2), 10)
	case uint32:
		return strconv.FormatUint(uint64(v2), 10)
	case uint64:
		return strconv.FormatUint(v2, 10)
	case float32:
		return strconv.FormatFloat(float64(v2), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v2, 'g', -1, 64)
	case bool:
		if v2 {
			return "1"
		}
		return "0"
	case string:
		return quote([]byte(v2))
	case []byte:
		return quote(v2)
	case time.Time:
		return quote([]byte(v2.Format(timeLayout)))
	default:
		kernel.ErrorLog("db encode error:%#v", v2)
		return "NULL"
	}
}

func quote(bin []byte) string {
	sl := make([]byte, 1, len(bin)+2)
	sl[0] = '\''
	for _, b := range bin {
		switch b {
		case 0:
			sl = append(sl, 92, 48) // \0
		case 10:
			sl = append(sl, 92, 110) // \n
		case 13:
			sl = append(sl, 92, 114) // \r
		case 26:
			sl = append(sl, 92, 90) // \Z
		case 34:
			sl = append(sl, 92, 34) // \"
		case 39:
			sl = append(sl, 92, 39) // \'
		case 92:
			sl = append(sl, 92, 92) // \\
		default:
			sl = append(sl, b)
		}
	}
	sl = append(sl, '\'')
	return string(sl)
}
