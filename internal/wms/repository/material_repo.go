package repository

import (
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/entity"
	"gorm.io/gorm"
)

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) Create(material *entity.Material) error {
	return r.db.Create(material).Error
}

func (r *MaterialRepository) GetByID(id string) (*entity.Material, error) {
	var material entity.Material
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&material).Error
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *MaterialRepository) GetByCode(code string) (*entity.Material, error) {
	var material entity.Material
	err := r.db.Where("material_code = ? AND deleted_at IS NULL", code).First(&material).Error
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *MaterialRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Material{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Count(&count).Error
	return count > 0, err
}

func (r *MaterialRepository) Update(material *entity.Material) error {
	return r.db.Save(material).Error
}

func (r *MaterialRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&entity.Material{}).Error
}

type MaterialListParams struct {
	Category string
	Status   string
	Keyword  string
	Page     int
	Size     int
}

func (r *MaterialRepository) List(params MaterialListParams) ([]entity.Material, int64, error) {
	query := r.db.Model(&entity.Material{}).Where("deleted_at IS NULL")

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("name ILIKE ? OR material_code ILIKE ?", kw, kw)
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

	var materials []entity.Material
	err := query.Preload("DefaultUnit").
		Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).
		Limit(params.Size).
		Find(&materials).Error

	return materials, total, err
}

type UnitRepository struct {
	db *gorm.DB
}

func NewUnitRepository(db *gorm.DB) *UnitRepository {
	return &UnitRepository{db: db}
}

func (r *UnitRepository) Create(unit *entity.Unit) error {
	return r.db.Create(unit).Error
}

func (r *UnitRepository) GetByID(id string) (*entity.Unit, error) {
	var unit entity.Unit
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *UnitRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Unit{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Count(&count).Error
	return count > 0, err
}

func (r *UnitRepository) Update(unit *entity.Unit) error {
	return r.db.Save(unit).Error
}

func (r *UnitRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&entity.Unit{}).Error
}

func (r *UnitRepository) List() ([]entity.Unit, error) {
	var units []entity.Unit
	err := r.db.Where("deleted_at IS NULL").
		Order("unit_code ASC").
		Find(&units).Error
	return units, err
}
