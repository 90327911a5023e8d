// Package repository 定义数据访问层接口
package repository

import "errors"

// ErrNotFound 记录或对象不存在
var ErrNotFound = errors.New("repository: not found")

// IsNotFound 判断是否为不存在错误
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
