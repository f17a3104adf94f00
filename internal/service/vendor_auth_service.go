package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vendor-payments/internal/cache"
	"github.com/vendor-payments/internal/config"
	"github.com/vendor-payments/internal/models"
	"github.com/vendor-payments/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// VendorAuthService 供应商认证服务
type VendorAuthService struct {
	cfg        *config.Config
	vendorRepo repository.VendorRepository
}

// NewVendorAuthService 创建供应商认证服务实例
func NewVendorAuthService(cfg *config.Config, vendorRepo repository.VendorRepository) *VendorAuthService {
	return &VendorAuthService{
		cfg:        cfg,
		vendorRepo: vendorRepo,
	}
}

// VendorJWTClaims 供应商 JWT 声明
type VendorJWTClaims struct {
	VendorID     uint   `json:"vendor_id"`
	Name         string `json:"name"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// GenerateJWT 生成供应商 JWT Token
func (s *VendorAuthService) GenerateJWT(vendor *models.Vendor) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.VendorJWT.ExpireHours) * time.Hour)

	claims := VendorJWTClaims{
		VendorID:     vendor.ID,
		Name:         vendor.Name,
		TokenVersion: vendor.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.VendorJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseJWT 解析供应商 JWT Token
func (s *VendorAuthService) ParseJWT(tokenString string) (*VendorJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &VendorJWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.VendorJWT.SecretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*VendorJWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("无效的 token")
}

// Login 供应商登录
func (s *VendorAuthService) Login(email, password string) (*models.Vendor, string, time.Time, error) {
	vendor, err := s.vendorRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if vendor == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !vendor.IsActive {
		return nil, "", time.Time{}, ErrVendorDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(vendor.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(vendor)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	vendor.LastLoginAt = &now
	if err := s.vendorRepo.Update(vendor); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetVendorAuthState(context.Background(), cache.BuildVendorAuthState(vendor))

	return vendor, token, expiresAt, nil
}
