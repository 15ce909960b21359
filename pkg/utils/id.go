package utils

import "github.com/google/uuid"

// NewID 生成不透明主键（创建后不可变）
func NewID() string { return uuid.NewString() }
