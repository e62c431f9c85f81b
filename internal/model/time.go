package model

import (
	"fmt"
	"strings"
	"time"
)

// LocalTime 以 "YYYY-MM-DD HH:MM:SS" 格式序列化时间。
type LocalTime time.Time

const timeFormat = "2006-01-02 15:04:05"

// 后端文档列表中出现过的时间格式
var acceptedTimeLayouts = []string{
	timeFormat,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// MarshalJSON implements the json.Marshaler interface.
func (t LocalTime) MarshalJSON() ([]byte, error) {
	formatted := fmt.Sprintf("\"%s\"", time.Time(t).Format(timeFormat))
	return []byte(formatted), nil
}

// UnmarshalJSON 依次尝试已知格式；null 或空字符串得到零值。
func (t *LocalTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), "\"")
	if s == "" || s == "null" {
		*t = LocalTime{}
		return nil
	}
	for _, layout := range acceptedTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			*t = LocalTime(parsed)
			return nil
		}
	}
	return fmt.Errorf("unrecognized time value %q", s)
}

// String 返回格式化后的时间。
func (t LocalTime) String() string {
	return time.Time(t).Format(timeFormat)
}
