package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"go-mpa-usercenter/internal/core/cache"
	"go-mpa-usercenter/internal/domain"
	"go-mpa-usercenter/pkg/utils"
)

const userCacheTTL = 30 * time.Second

// UserService 用户目录服务：校验之外的业务规则都在这一层。
// cache 可为 nil（测试、未配置 Redis 时走纯 DB 路径）。
type UserService struct {
	repo  domain.UserRepository
	cache *cache.Cache
	log   *zap.Logger
}

func NewUserService(repo domain.UserRepository, c *cache.Cache, log *zap.Logger) *UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserService{repo: repo, cache: c, log: log}
}

type CreateUserInput struct {
	Email    string
	Name     *string
	Password string
}

type UpdateUserInput struct {
	Email    *string
	Name     *string
	Password *string
}

// Create 哈希入库后返回投影；明文密码不落库也不打日志
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (domain.PublicUser, error) {
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		// bcrypt 超长（>72 字节）等哈希失败不允许落成空哈希
		return domain.PublicUser{}, &domain.ValidationError{Msg: "密码长度超出限制"}
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.repo.Create(u); err != nil {
		return domain.PublicUser{}, err
	}
	s.log.Info("user created", zap.String("id", u.ID), zap.String("email", u.Email))
	return u.Public(), nil
}

// FindAll 按创建时间倒序，当前不分页
func (s *UserService) FindAll(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	out := make([]domain.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out, nil
}

// FindOne 单用户读路径，配置了 Redis 时走 cache-aside
func (s *UserService) FindOne(ctx context.Context, id string) (domain.PublicUser, error) {
	if s.cache == nil {
		return s.findOneDB(id)
	}
	p, err := cache.GetOrLoadJSON[domain.PublicUser](s.cache, ctx, userCacheKey(id), userCacheTTL,
		func(ctx context.Context) (*domain.PublicUser, error) {
			pu, e := s.findOneDB(id)
			if e != nil {
				return nil, e
			}
			return &pu, nil
		})
	if err != nil {
		return domain.PublicUser{}, err
	}
	if p == nil {
		// 负缓存命中按不存在处理
		return domain.PublicUser{}, &domain.NotFoundError{ID: id}
	}
	return *p, nil
}

func (s *UserService) findOneDB(id string) (domain.PublicUser, error) {
	u, err := s.repo.FindByID(id)
	if err != nil {
		return domain.PublicUser{}, err
	}
	return u.Public(), nil
}

// Update 先做存在性前置检查（把"零行受影响"转成明确的 NotFoundError），
// 再只更新 patch 中出现的字段；password 出现则重新哈希
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (domain.PublicUser, error) {
	if _, err := s.repo.FindByID(id); err != nil {
		return domain.PublicUser{}, err
	}

	patch := domain.UserPatch{Email: in.Email, Name: in.Name}
	if in.Password != nil {
		h, err := utils.HashPassword(*in.Password)
		if err != nil {
			return domain.PublicUser{}, &domain.ValidationError{Msg: "密码长度超出限制"}
		}
		patch.PasswordHash = &h
	}

	u, err := s.repo.Update(id, patch)
	if err != nil {
		return domain.PublicUser{}, err
	}
	s.invalidate(ctx, id)
	return u.Public(), nil
}

// Remove 存在性前置检查后硬删除，返回被删记录的投影
func (s *UserService) Remove(ctx context.Context, id string) (domain.PublicUser, error) {
	u, err := s.repo.FindByID(id)
	if err != nil {
		return domain.PublicUser{}, err
	}
	if err := s.repo.Delete(id); err != nil {
		return domain.PublicUser{}, err
	}
	s.invalidate(ctx, id)
	s.log.Info("user removed", zap.String("id", id))
	return u.Public(), nil
}

// Authenticate 登录校验：查不到或密码不符都返回 nil（调用方统一给 401）
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.PublicUser, error) {
	u, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, nil
	}
	p := u.Public()
	return &p, nil
}

func (s *UserService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, userCacheKey(id)); err != nil {
		s.log.Warn("cache invalidate failed", zap.String("id", id), zap.Error(err))
	}
}

func userCacheKey(id string) string { return "user:" + id }
