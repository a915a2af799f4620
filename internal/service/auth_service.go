package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/maekabu-office/internal/cache"
	"github.com/maekabu-office/internal/config"
	"github.com/maekabu-office/internal/logger"
	"github.com/maekabu-office/internal/models"
	"github.com/maekabu-office/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
)

// fixturePassword テストフィクスチャ用の固定パスワード
const fixturePassword = "password"

// AuthService 社員認証とセッショントークン
type AuthService struct {
	cfg          *config.Config
	employeeRepo repository.EmployeeRepository
	cache        *cache.Store
	stateGroup   singleflight.Group
}

// NewAuthService 認証サービスを生成する
func NewAuthService(cfg *config.Config, employeeRepo repository.EmployeeRepository, store *cache.Store) *AuthService {
	return &AuthService{
		cfg:          cfg,
		employeeRepo: employeeRepo,
		cache:        store,
	}
}

// SessionUser 画面に返すログイン中の社員
type SessionUser struct {
	EmployeeID     string `json:"-"`
	EmployeeNumber string `json:"employee_number"`
	Name           string `json:"name"`
	Department     string `json:"department"`
	Role           string `json:"role"`
}

// SessionClaims セッショントークンのクレーム
type SessionClaims struct {
	EmployeeID     string `json:"employee_id"`
	EmployeeNumber string `json:"employee_number"`
	Name           string `json:"name"`
	Department     string `json:"department"`
	Role           string `json:"role"`
	TokenVersion   uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// User クレームから画面用の社員情報を作る
func (c *SessionClaims) User() SessionUser {
	return SessionUser{
		EmployeeID:     c.EmployeeID,
		EmployeeNumber: c.EmployeeNumber,
		Name:           c.Name,
		Department:     c.Department,
		Role:           c.Role,
	}
}

// HashPassword bcrypt でハッシュ化する
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword パスワードを照合する
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword パスワードポリシーを検査する
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

func (s *AuthService) fixturePasswordAllowed(password string) bool {
	if s.cfg == nil || !s.cfg.Auth.FixturePasswordEnabled || s.cfg.Server.IsRelease() {
		return false
	}
	return password == fixturePassword
}

func (s *AuthService) sessionSecret() ([]byte, error) {
	if s.cfg == nil || strings.TrimSpace(s.cfg.Session.Secret) == "" {
		return nil, ErrSessionSecretMissing
	}
	return []byte(s.cfg.Session.Secret), nil
}

func (s *AuthService) sessionTTL() time.Duration {
	hours := 24
	if s.cfg != nil && s.cfg.Session.ExpireHours > 0 {
		hours = s.cfg.Session.ExpireHours
	}
	return time.Duration(hours) * time.Hour
}

func (s *AuthService) defaultDepartment() string {
	if s.cfg == nil {
		return ""
	}
	return s.cfg.Company.DefaultDepartment
}

// GenerateToken セッショントークンを発行する
func (s *AuthService) GenerateToken(employee *models.Employee) (string, time.Time, error) {
	secret, err := s.sessionSecret()
	if err != nil {
		return "", time.Time{}, err
	}
	now := time.Now()
	expiresAt := now.Add(s.sessionTTL())
	claims := SessionClaims{
		EmployeeID:     employee.ID,
		EmployeeNumber: employee.EmployeeNumber,
		Name:           employee.Name(),
		Department:     employee.DepartmentOr(s.defaultDepartment()),
		Role:           employee.Role,
		TokenVersion:   employee.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   employee.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken 署名と有効期限を検証する
func (s *AuthService) ParseToken(tokenString string) (*SessionClaims, error) {
	secret, err := s.sessionSecret()
	if err != nil {
		return nil, err
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.EmployeeID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Authenticate トークンを検証し、版数が最新かを確認する
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*SessionClaims, error) {
	claims, err := s.ParseToken(strings.TrimSpace(tokenString))
	if err != nil {
		return nil, err
	}

	state, hit, err := s.cache.GetEmployeeAuthState(ctx, claims.EmployeeID)
	if err != nil {
		logger.Warnw("auth_state_cache_read_failed", "employee_id", claims.EmployeeID, "error", err)
	}
	if !hit || state == nil {
		state, err = s.loadAuthState(ctx, claims.EmployeeID)
		if err != nil {
			return nil, err
		}
	}
	if state.TokenVersion != claims.TokenVersion {
		return nil, ErrTokenRevoked
	}
	claims.Role = state.Role
	return claims, nil
}

// loadAuthState キャッシュミス時に DB から読む。同じ社員の同時読込は 1 回にまとめる
func (s *AuthService) loadAuthState(ctx context.Context, employeeID string) (*cache.EmployeeAuthState, error) {
	result, err, _ := s.stateGroup.Do(employeeID, func() (interface{}, error) {
		employee, err := s.employeeRepo.GetByID(employeeID)
		if err != nil {
			return nil, err
		}
		if employee == nil {
			return nil, ErrTokenRevoked
		}
		state := cache.BuildEmployeeAuthState(employee)
		if err := s.cache.SetEmployeeAuthState(ctx, state); err != nil {
			logger.Warnw("auth_state_cache_write_failed", "employee_id", employeeID, "error", err)
		}
		return state, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*cache.EmployeeAuthState), nil
}

// Login 社員コードとパスワードでログインする
func (s *AuthService) Login(ctx context.Context, employeeNumber, password string) (*models.Employee, string, time.Time, error) {
	employeeNumber = strings.TrimSpace(employeeNumber)
	if employeeNumber == "" || password == "" {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	employee, err := s.employeeRepo.GetByNumber(employeeNumber)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if employee == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	if !s.fixturePasswordAllowed(password) {
		if err := s.VerifyPassword(employee.PasswordHash, password); err != nil {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
	} else {
		logger.Warnw("auth_fixture_password_used", "employee_number", employeeNumber)
	}

	token, expiresAt, err := s.GenerateToken(employee)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	if err := s.employeeRepo.TouchLogin(employee.ID, now); err != nil {
		return nil, "", time.Time{}, err
	}
	employee.LastLoginAt = &now
	if err := s.cache.SetEmployeeAuthState(ctx, cache.BuildEmployeeAuthState(employee)); err != nil {
		logger.Warnw("auth_state_cache_write_failed", "employee_id", employee.ID, "error", err)
	}
	return employee, token, expiresAt, nil
}

// SessionUserOf 社員から画面用の情報を作る
func (s *AuthService) SessionUserOf(employee *models.Employee) SessionUser {
	return SessionUser{
		EmployeeID:     employee.ID,
		EmployeeNumber: employee.EmployeeNumber,
		Name:           employee.Name(),
		Department:     employee.DepartmentOr(s.defaultDepartment()),
		Role:           employee.Role,
	}
}

// ChangePassword パスワードを変更し、発行済みトークンを無効にする
func (s *AuthService) ChangePassword(ctx context.Context, employeeID, oldPassword, newPassword string) error {
	employee, err := s.employeeRepo.GetByID(employeeID)
	if err != nil {
		return err
	}
	if employee == nil {
		return ErrNotFound
	}
	if err := s.VerifyPassword(employee.PasswordHash, oldPassword); err != nil {
		return ErrInvalidPassword
	}
	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}
	hashed, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.employeeRepo.UpdatePassword(employee.ID, hashed); err != nil {
		return err
	}
	if err := s.cache.DelEmployeeAuthState(ctx, employee.ID); err != nil {
		logger.Warnw("auth_state_cache_delete_failed", "employee_id", employee.ID, "error", err)
	}
	return nil
}

// IsAuthError 401 として扱う認証エラーか
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrTokenRevoked) || errors.Is(err, ErrInvalidCredentials)
}
