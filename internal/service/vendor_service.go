package service

import (
	"strings"

	"github.com/vendor-payments/internal/config"
	"github.com/vendor-payments/internal/models"
	"github.com/vendor-payments/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// VendorService 供应商管理服务
type VendorService struct {
	cfg        *config.Config
	vendorRepo repository.VendorRepository
}

// NewVendorService 创建供应商管理服务
func NewVendorService(cfg *config.Config, vendorRepo repository.VendorRepository) *VendorService {
	return &VendorService{cfg: cfg, vendorRepo: vendorRepo}
}

// CreateVendorInput 创建供应商输入
type CreateVendorInput struct {
	Name     string
	Email    string
	Password string
	IsActive *bool
}

// UpdateVendorInput 更新供应商输入
type UpdateVendorInput struct {
	Name     *string
	Email    *string
	Password *string
	IsActive *bool
}

// ListAdmin 获取后台供应商列表
func (s *VendorService) ListAdmin(search string, onlyActive bool, page, pageSize int) ([]models.Vendor, int64, error) {
	filter := repository.VendorListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     strings.TrimSpace(search),
		OnlyActive: onlyActive,
	}
	return s.vendorRepo.ListAdmin(filter)
}

// GetByID 获取供应商详情
func (s *VendorService) GetByID(id uint) (*models.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, ErrVendorNotFound
	}
	return vendor, nil
}

// Create 创建供应商
func (s *VendorService) Create(input CreateVendorInput) (*models.Vendor, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" {
		return nil, ErrVendorExists
	}

	existing, err := s.vendorRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrVendorExists
	}
	existing, err = s.vendorRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrVendorExists
	}

	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	vendor := &models.Vendor{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     isActive,
	}
	if err := s.vendorRepo.Create(vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

// Update 更新供应商
func (s *VendorService) Update(id uint, input UpdateVendorInput) (*models.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, ErrVendorNotFound
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name != "" && name != vendor.Name {
			existing, err := s.vendorRepo.GetByName(name)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != vendor.ID {
				return nil, ErrVendorExists
			}
			vendor.Name = name
		}
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != "" && email != vendor.Email {
			existing, err := s.vendorRepo.GetByEmail(email)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != vendor.ID {
				return nil, ErrVendorExists
			}
			vendor.Email = email
		}
	}
	if input.Password != nil && *input.Password != "" {
		if err := validatePassword(s.cfg.Security.PasswordPolicy, *input.Password); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		vendor.PasswordHash = string(hash)
		vendor.TokenVersion++
	}
	if input.IsActive != nil {
		vendor.IsActive = *input.IsActive
	}

	if err := s.vendorRepo.Update(vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}
