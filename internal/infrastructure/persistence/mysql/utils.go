package mysql

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateError 判断是否为唯一索引冲突错误
// MySQL错误码1062: Duplicate entry 'xxx' for key 'yyy'
// SQLite(测试环境): UNIQUE constraint failed
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// isDuplicateOn 唯一冲突是否落在指定列上
// 错误信息里带索引/列名，测试环境与MySQL的格式不同，统一做包含匹配
func isDuplicateOn(err error, column string) bool {
	return isDuplicateError(err) && strings.Contains(err.Error(), column)
}
