package util

import (
	"strconv"
	"strings"
)

// ParseID 将字符串标识转换为存储层的自增主键，0 与非数字均视为非法
func ParseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func FormatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
