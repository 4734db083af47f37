package utils

import (
	"strconv"
)

// ParseID 解析路径里的正整数 ID，非法时 ok 为 false
func ParseID(s string) (id uint, ok bool) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
