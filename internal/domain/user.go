package domain

import "time"

// 角色枚举（与数据库存储值一致）
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User 用户表完整记录。PasswordHash 只允许在 repo/service 边界内流转，
// 任何对外出口都必须先转成 PublicUser。
type User struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Email        string    `gorm:"uniqueIndex;size:191;not null"`
	Name         *string   `gorm:"size:64"`
	PasswordHash string    `gorm:"size:100;not null"`
	Role         string    `gorm:"size:16;not null;default:USER"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string { return "users" }

// PublicUser 对外投影：结构上就不存在密码字段
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public 投影转换
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserPatch 部分更新：nil 表示不动该字段（空串不等于缺省）
type UserPatch struct {
	Email        *string
	Name         *string
	PasswordHash *string
}

// UserRepository 持久化网关契约。读路径一律返回投影所需字段；
// 密码哈希只在写路径与认证路径内部取用。
type UserRepository interface {
	Create(u *User) error
	FindAll() ([]User, error)
	FindByID(id string) (*User, error)
	FindByEmail(email string) (*User, error)
	Update(id string, patch UserPatch) (*User, error)
	Delete(id string) error
}
