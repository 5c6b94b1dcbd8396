package repository

import (
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/entity"
	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(customer *entity.Customer) error {
	return r.db.Create(customer).Error
}

func (r *CustomerRepository) GetByID(id string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) GetByCode(code string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.Where("customer_code = ? AND deleted_at IS NULL", code).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Exists 校验客户引用是否可解析
func (r *CustomerRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Customer{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Count(&count).Error
	return count > 0, err
}

func (r *CustomerRepository) Update(customer *entity.Customer) error {
	return r.db.Save(customer).Error
}

func (r *CustomerRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&entity.Customer{}).Error
}

type CustomerListParams struct {
	Status  string
	Keyword string
	Page    int
	Size    int
}

func (r *CustomerRepository) List(params CustomerListParams) ([]entity.Customer, int64, error) {
	query := r.db.Model(&entity.Customer{}).Where("deleted_at IS NULL")

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("name ILIKE ? OR customer_code ILIKE ? OR contact_name ILIKE ?", kw, kw, kw)
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

	var customers []entity.Customer
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).
		Limit(params.Size).
		Find(&customers).Error

	return customers, total, err
}
