package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ewceniza9009/wmsc-sub000/internal/wms/entity"
)

type PalletRepository struct {
	db *gorm.DB
}

func NewPalletRepository(db *gorm.DB) *PalletRepository {
	return &PalletRepository{db: db}
}

func (r *PalletRepository) Create(ctx context.Context, pallet *entity.Pallet) error {
	return r.db.WithContext(ctx).Create(pallet).Error
}

func (r *PalletRepository) GetByID(ctx context.Context, id string) (*entity.Pallet, error) {
	var pallet entity.Pallet
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&pallet).Error
	if err != nil {
		return nil, err
	}
	return &pallet, nil
}

func (r *PalletRepository) Update(ctx context.Context, pallet *entity.Pallet) error {
	return r.db.WithContext(ctx).Save(pallet).Error
}

// Cancel 作废托盘（逻辑下线，不物理删除）
func (r *PalletRepository) Cancel(ctx context.Context, id, userID string) error {
	return r.db.WithContext(ctx).Model(&entity.Pallet{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_cancelled": true,
			"updated_by":   userID,
			"updated_at":   time.Now(),
		}).Error
}

// Delete 物理删除，管理员兜底操作
func (r *PalletRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Pallet{}).Error
}

func (r *PalletRepository) ListByReceiving(ctx context.Context, receivingID string) ([]entity.Pallet, error) {
	var pallets []entity.Pallet
	err := r.db.WithContext(ctx).
		Where("receiving_id = ? AND deleted_at IS NULL", receivingID).
		Order("pallet_no ASC").
		Find(&pallets).Error
	return pallets, err
}

// CountByNo 托盘号唯一性检查
func (r *PalletRepository) CountByNo(ctx context.Context, palletNo, excludeID string) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entity.Pallet{}).
		Where("pallet_no = ? AND deleted_at IS NULL", palletNo)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count, err
}

// MaxPalletNo 取该前缀下字典序最大的托盘号，读取不在后续插入的事务内
func (r *PalletRepository) MaxPalletNo(ctx context.Context, prefix string) (string, error) {
	var max string
	err := r.db.WithContext(ctx).Model(&entity.Pallet{}).
		Where("pallet_no LIKE ? AND deleted_at IS NULL", prefix+"%").
		Select("COALESCE(MAX(pallet_no), '')").
		Scan(&max).Error
	return max, err
}

type PalletListParams struct {
	ReceivingID string
	MaterialID  string
	LocationID  string
	Cancelled   *bool
	Keyword     string
	Page        int
	Size        int
}

func (r *PalletRepository) List(ctx context.Context, params PalletListParams) ([]entity.Pallet, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Pallet{}).Where("deleted_at IS NULL")

	if params.ReceivingID != "" {
		query = query.Where("receiving_id = ?", params.ReceivingID)
	}
	if params.MaterialID != "" {
		query = query.Where("material_id = ?", params.MaterialID)
	}
	if params.LocationID != "" {
		query = query.Where("location_id = ?", params.LocationID)
	}
	if params.Cancelled != nil {
		query = query.Where("is_cancelled = ?", *params.Cancelled)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("pallet_no ILIKE ? OR manual_pallet_no ILIKE ? OR batch_no ILIKE ? OR barcode ILIKE ?", kw, kw, kw, kw)
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

	var pallets []entity.Pallet
	err := query.Preload("Material").
		Preload("Unit").
		Preload("Location").
		Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).
		Limit(params.Size).
		Find(&pallets).Error

	return pallets, total, err
}
