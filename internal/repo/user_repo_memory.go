package repo

import (
	"sort"
	"sync"
	"time"

	"go-mpa-usercenter/internal/domain"
)

// UserRepoMemory 内存实现，测试用，语义与 GORM 实现对齐
type UserRepoMemory struct {
	mu    sync.RWMutex
	items map[string]domain.User
}

func NewUserRepoMemory() *UserRepoMemory {
	return &UserRepoMemory{items: make(map[string]domain.User)}
}

func (r *UserRepoMemory) Create(u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.items {
		if v.Email == u.Email {
			return &domain.ConflictError{Email: u.Email}
		}
	}
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}
	r.items[u.ID] = *u
	return nil
}

func (r *UserRepoMemory) FindAll() ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.User, 0, len(r.items))
	for _, v := range r.items {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepoMemory) FindByID(id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.items[id]
	if !ok {
		return nil, &domain.NotFoundError{ID: id}
	}
	return &u, nil
}

func (r *UserRepoMemory) FindByEmail(email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, v := range r.items {
		if v.Email == email {
			u := v
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepoMemory) Update(id string, patch domain.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.items[id]
	if !ok {
		return nil, &domain.NotFoundError{ID: id}
	}
	changed := false
	if patch.Email != nil {
		for _, v := range r.items {
			if v.ID != id && v.Email == *patch.Email {
				return nil, &domain.ConflictError{Email: *patch.Email}
			}
		}
		u.Email = *patch.Email
		changed = true
	}
	if patch.Name != nil {
		name := *patch.Name
		u.Name = &name
		changed = true
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
		changed = true
	}
	// 空 patch 不写行，updatedAt 保持原值（与 GORM 实现一致）
	if changed {
		u.UpdatedAt = time.Now()
	}
	r.items[id] = u
	return &u, nil
}

func (r *UserRepoMemory) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return &domain.NotFoundError{ID: id}
	}
	delete(r.items, id)
	return nil
}
