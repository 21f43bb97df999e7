package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/granitoskate/backoffice/internal/audit"
	"github.com/granitoskate/backoffice/internal/config"
	"github.com/granitoskate/backoffice/internal/dto"
	"github.com/granitoskate/backoffice/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("current password does not match")
	ErrAdminNotFound      = errors.New("admin not found")
)

type AdminStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	FindByID(ctx context.Context, id uint) (*models.Admin, error)
	Create(ctx context.Context, a *models.Admin) error
	TouchLastLogin(ctx context.Context, id uint, at time.Time) error
	UpdatePassword(ctx context.Context, id uint, hash string) error
}

type AuthService struct {
	store  AdminStore
	audit  audit.Recorder
	secret []byte
	expiry time.Duration
	cost   int
	now    func() time.Time
}

func NewAuthService(store AdminStore, recorder audit.Recorder, cfg *config.Config) *AuthService {
	return &AuthService{
		store:  store,
		audit:  recorder,
		secret: []byte(cfg.JWTSecret),
		expiry: cfg.JWTExpiry,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
	}
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	admin, err := s.store.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.issue(admin.ID, admin.Email, admin.Nombre, admin.Role)
	if err != nil {
		return nil, err
	}

	if err := s.store.TouchLastLogin(ctx, admin.ID, s.now()); err != nil {
		slog.Warn("failed to update ultimo_login", "admin_id", admin.ID, "error", err)
	}
	s.audit.Record(admin.Nombre, "login", map[string]interface{}{"email": admin.Email})

	return &dto.LoginResponse{Token: token, ExpiresAt: exp.Unix(), User: toAdminResponse(admin)}, nil
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest, actor string) (*dto.AdminResponse, error) {
	email := normalizeEmail(req.Email)
	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrAdminNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = "admin"
	}
	admin := &models.Admin{
		Email:    email,
		Password: string(hash),
		Nombre:   strings.TrimSpace(req.Nombre),
		Role:     role,
	}
	if err := s.store.Create(ctx, admin); err != nil {
		return nil, err
	}

	s.audit.Record(actor, "registro_admin", map[string]interface{}{"email": admin.Email, "role": admin.Role})
	resp := toAdminResponse(admin)
	return &resp, nil
}

func (s *AuthService) Profile(ctx context.Context, id uint) (*dto.AdminResponse, error) {
	admin, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toAdminResponse(admin)
	return &resp, nil
}

// Refresh reissues a token for an admin that still exists.
func (s *AuthService) Refresh(ctx context.Context, id uint) (*dto.TokenResponse, error) {
	admin, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	token, exp, err := s.issue(admin.ID, admin.Email, admin.Nombre, admin.Role)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Token: token, ExpiresAt: exp.Unix()}, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, id uint, req *dto.ChangePasswordRequest) error {
	admin, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.store.UpdatePassword(ctx, admin.ID, string(hash)); err != nil {
		return err
	}

	s.audit.Record(admin.Nombre, "cambio_password", map[string]interface{}{"admin_id": admin.ID})
	return nil
}

func (s *AuthService) issue(id uint, email, name, role string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.expiry)
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(id), 10),
		"email": email,
		"name":  name,
		"role":  role,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, exp, nil
}

func toAdminResponse(a *models.Admin) dto.AdminResponse {
	return dto.AdminResponse{ID: a.ID, Email: a.Email, Name: a.Nombre, Role: a.Role}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
