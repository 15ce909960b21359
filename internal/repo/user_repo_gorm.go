package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"go-mpa-usercenter/internal/domain"
)

// UserRepoGorm 基于 GORM 的持久化网关实现。
// 存储层错误在这里翻译成 domain 错误，不向上泄露 gorm 细节。
type UserRepoGorm struct{ db *gorm.DB }

func NewUserRepoGorm(db *gorm.DB) *UserRepoGorm { return &UserRepoGorm{db: db} }

func (r *UserRepoGorm) Create(u *domain.User) error {
	if err := r.db.Create(u).Error; err != nil {
		if isDupKey(err) {
			return &domain.ConflictError{Email: u.Email}
		}
		return err
	}
	return nil
}

func (r *UserRepoGorm) FindAll() ([]domain.User, error) {
	var users []domain.User
	err := r.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *UserRepoGorm) FindByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &domain.NotFoundError{ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepoGorm) FindByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Update 只更新 patch 里非 nil 的列，单行事务
func (r *UserRepoGorm) Update(id string, patch domain.UserPatch) (*domain.User, error) {
	cols := map[string]any{}
	if patch.Email != nil {
		cols["email"] = *patch.Email
	}
	if patch.Name != nil {
		cols["name"] = *patch.Name
	}
	if patch.PasswordHash != nil {
		cols["password_hash"] = *patch.PasswordHash
	}

	if len(cols) > 0 {
		res := r.db.Model(&domain.User{}).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			if isDupKey(res.Error) {
				email := ""
				if patch.Email != nil {
					email = *patch.Email
				}
				return nil, &domain.ConflictError{Email: email}
			}
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, &domain.NotFoundError{ID: id}
		}
	}
	return r.FindByID(id)
}

func (r *UserRepoGorm) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&domain.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &domain.NotFoundError{ID: id}
	}
	return nil
}

func isDupKey(err error) bool {
	// 不依赖 gorm.ErrDuplicatedKey，避免驱动/版本差异
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
