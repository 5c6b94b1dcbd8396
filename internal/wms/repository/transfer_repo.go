package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ewceniza9009/wmsc-sub000/internal/wms/entity"
)

type TransferRepository struct {
	db *gorm.DB
}

func NewTransferRepository(db *gorm.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) Create(ctx context.Context, transfer *entity.Transfer) error {
	return r.db.WithContext(ctx).Create(transfer).Error
}

func (r *TransferRepository) GetByID(ctx context.Context, id string) (*entity.Transfer, error) {
	var transfer entity.Transfer
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&transfer).Error
	if err != nil {
		return nil, err
	}
	return &transfer, nil
}

// GetWithLines 移库单详情，读取时联出全部明细
func (r *TransferRepository) GetWithLines(ctx context.Context, id string) (*entity.Transfer, error) {
	var transfer entity.Transfer
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		Preload("Lines").
		Preload("Lines.Pallet").
		Preload("Warehouse").
		Preload("ToWarehouse").
		First(&transfer).Error
	if err != nil {
		return nil, err
	}
	return &transfer, nil
}

// UpdateWithLines 保存单头并整单重建明细：删光旧行，重插本次提交的全部行。
// 行ID每个保存周期都是新的。与入库单的按ID对账策略刻意不同，不要合并。
// 全部写入在一个事务内，任一失败整体回滚。
func (r *TransferRepository) UpdateWithLines(ctx context.Context, transfer *entity.Transfer, lines []entity.TransferLine) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		transfer.UpdatedAt = now
		if err := tx.Save(transfer).Error; err != nil {
			return err
		}

		if err := tx.Where("transfer_id = ?", transfer.ID).
			Delete(&entity.TransferLine{}).Error; err != nil {
			return err
		}

		for i := range lines {
			line := &lines[i]
			line.ID = uuid.New().String()
			line.TransferID = transfer.ID
			line.CreatedAt = now
			line.UpdatedAt = now
			if err := tx.Create(line).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteWithLines 删除移库单及其全部明细，一个事务
func (r *TransferRepository) DeleteWithLines(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transfer_id = ?", id).Delete(&entity.TransferLine{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.Transfer{}).Error
	})
}

type TransferListParams struct {
	WarehouseID   string
	ToWarehouseID string
	DateFrom      *time.Time
	DateTo        *time.Time
	Keyword       string
	Page          int
	Size          int
}

func (r *TransferRepository) List(ctx context.Context, params TransferListParams) ([]entity.Transfer, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Transfer{}).Where("deleted_at IS NULL")

	if params.WarehouseID != "" {
		query = query.Where("warehouse_id = ?", params.WarehouseID)
	}
	if params.ToWarehouseID != "" {
		query = query.Where("to_warehouse_id = ?", params.ToWarehouseID)
	}
	if params.DateFrom != nil {
		query = query.Where("transfer_date >= ?", params.DateFrom)
	}
	if params.DateTo != nil {
		query = query.Where("transfer_date <= ?", params.DateTo)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("transfer_no ILIKE ? OR manual_transfer_no ILIKE ? OR particulars ILIKE ?", kw, kw, kw)
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

	var transfers []entity.Transfer
	err := query.Preload("Warehouse").
		Preload("ToWarehouse").
		Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).
		Limit(params.Size).
		Find(&transfers).Error

	return transfers, total, err
}
