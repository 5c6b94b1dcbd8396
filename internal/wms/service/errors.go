package service

import (
	"errors"

	"gorm.io/gorm"
)

// 错误分类哨兵，handler 层用 errors.Is 映射到 HTTP 状态码
var (
	ErrValidation = errors.New("参数校验失败")
	ErrNotFound   = errors.New("记录不存在")
	ErrConflict   = errors.New("编号已存在")
)

// translateNotFound 把 gorm 的未命中翻译为服务层的 404 哨兵
func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
