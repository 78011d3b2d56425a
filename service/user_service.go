package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gongcheng0311-dotcom/daily-music/cons"
	"github.com/gongcheng0311-dotcom/daily-music/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	*Service
	userDao       *models.UserDAO
	tokenService  *TokenService
	loginTokenTTL time.Duration
}

func NewUserService(s *Service) *UserService {
	return &UserService{
		Service:       s,
		userDao:       models.NewUserDAO(s.DB),
		tokenService:  NewTokenService(s.RDB),
		loginTokenTTL: 7 * 24 * time.Hour,
	}
}

// --- types ---

type UserDTO struct {
	ID          uint64    `json:"id"`
	UID         string    `json:"uid"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	IsAdmin     bool      `json:"is_admin"`
	CreatedAt   time.Time `json:"created_at"`
}

type RegisterReq struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"` // 可选，空则注册为匿名展示
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResp struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

func toUserDTO(u *models.User, p *models.Profile) UserDTO {
	dto := UserDTO{
		ID:        u.ID,
		UID:       u.UID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
	dto.DisplayName = DisplayNameOrAnon(p)
	if p != nil {
		dto.IsAdmin = p.IsAdmin
	}
	return dto
}

func validateEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return "", validationError("请输入有效邮箱")
	}
	return email, nil
}

// Register 注册：邮箱 + 密码（至少 6 位）。User 和 Profile 同事务落库，
// Profile.ID 复用 User.ID。
func (s *UserService) Register(ctx context.Context, req RegisterReq) (*UserDTO, error) {
	email, err := validateEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if len(req.Password) < 6 {
		return nil, validationError("密码至少需要 6 位")
	}

	exists, err := s.userDao.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, validationError("该邮箱已注册")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{Email: email, Password: string(hashed)}
	var p *models.Profile
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		p = &models.Profile{ID: u.ID}
		if name := strings.TrimSpace(req.DisplayName); name != "" {
			p.DisplayName = &name
		}
		return tx.Create(p).Error
	})
	if err != nil {
		return nil, err
	}

	dto := toUserDTO(u, p)
	return &dto, nil
}

// Login 登录：校验密码，生成 token 存入 Redis，发出 signed_in 会话事件。
func (s *UserService) Login(ctx context.Context, req LoginReq) (*LoginResp, error) {
	email, err := validateEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, fmt.Errorf("请输入密码")
	}

	u, err := s.userDao.FindByEmail(email)
	if err != nil {
		if s.userDao.IsNotFound(err) {
			return nil, fmt.Errorf("邮箱或密码错误")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) != nil {
		return nil, fmt.Errorf("邮箱或密码错误")
	}

	token, err := s.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}
	if err := s.tokenService.StoreToken(ctx, token, u.ID, s.loginTokenTTL); err != nil {
		return nil, err
	}
	_ = s.userDao.UpdateLastLogin(u.ID)

	var p *models.Profile
	var pp models.Profile
	if err := s.DB.Where("id = ?", u.ID).First(&pp).Error; err == nil {
		p = &pp
	}

	if s.SessionEvents != nil {
		s.SessionEvents.Publish(SessionEvent{Type: cons.EventSessionSignedIn, UserID: u.ID})
	}
	return &LoginResp{Token: token, User: toUserDTO(u, p)}, nil
}

// Logout 注销当前 token，发出 signed_out 会话事件。
func (s *UserService) Logout(ctx context.Context, token string, userID uint64) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("missing token")
	}
	if err := s.tokenService.RevokeToken(ctx, token); err != nil {
		return err
	}
	_ = s.tokenService.RemoveUserToken(ctx, userID, token)
	if s.SessionEvents != nil {
		s.SessionEvents.Publish(SessionEvent{Type: cons.EventSessionSignedOut, UserID: userID})
	}
	return nil
}

// GetUser 当前用户信息（带资料）。
func (s *UserService) GetUser(userID uint64) (*UserDTO, error) {
	u, err := s.userDao.FindByID(userID)
	if err != nil {
		return nil, err
	}
	var p models.Profile
	var pref *models.Profile
	if err := s.DB.Where("id = ?", userID).First(&p).Error; err == nil {
		pref = &p
	}
	dto := toUserDTO(u, pref)
	return &dto, nil
}
