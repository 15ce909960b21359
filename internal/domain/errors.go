package domain

import "fmt"

// 错误分类：repo 负责把底层存储错误翻译成这三类，
// handler 只认这三类做状态码映射，原始 gorm 错误不上穿。

type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("用户 #%s 不存在", e.ID) }

type ConflictError struct {
	Email string
}

func (e *ConflictError) Error() string { return fmt.Sprintf("邮箱 %s 已被占用", e.Email) }

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }
