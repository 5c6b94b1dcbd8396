package repository

import (
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/entity"
	"gorm.io/gorm"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(account *entity.Account) error {
	return r.db.Create(account).Error
}

func (r *AccountRepository) GetByID(id string) (*entity.Account, error) {
	var account entity.Account
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) GetByUsername(username string) (*entity.Account, error) {
	var account entity.Account
	err := r.db.Where("username = ? AND deleted_at IS NULL", username).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) Update(account *entity.Account) error {
	return r.db.Save(account).Error
}

func (r *AccountRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&entity.Account{}).Error
}

type AccountListParams struct {
	Role    string
	Status  string
	Keyword string
	Page    int
	Size    int
}

func (r *AccountRepository) List(params AccountListParams) ([]entity.Account, int64, error) {
	query := r.db.Model(&entity.Account{}).Where("deleted_at IS NULL")

	if params.Role != "" {
		query = query.Where("role = ?", params.Role)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("username ILIKE ? OR name ILIKE ?", kw, kw)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}

	var accounts []entity.Account
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).
		Limit(params.Size).
		Find(&accounts).Error

	return accounts, total, err
}
