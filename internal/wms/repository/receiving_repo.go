package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ewceniza9009/wmsc-sub000/internal/wms/entity"
)

type ReceivingRepository struct {
	db *gorm.DB
}

func NewReceivingRepository(db *gorm.DB) *ReceivingRepository {
	return &ReceivingRepository{db: db}
}

func (r *ReceivingRepository) Create(ctx context.Context, receiving *entity.Receiving) error {
	return r.db.WithContext(ctx).Create(receiving).Error
}

func (r *ReceivingRepository) GetByID(ctx context.Context, id string) (*entity.Receiving, error) {
	var receiving entity.Receiving
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&receiving).Error
	if err != nil {
		return nil, err
	}
	return &receiving, nil
}

// GetWithPallets 入库单详情，读取时联出全部托盘
func (r *ReceivingRepository) GetWithPallets(ctx context.Context, id string) (*entity.Receiving, error) {
	var receiving entity.Receiving
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		Preload("Pallets", "deleted_at IS NULL", func(db *gorm.DB) *gorm.DB {
			return db.Order("pallet_no ASC")
		}).
		Preload("Warehouse").
		Preload("Customer").
		First(&receiving).Error
	if err != nil {
		return nil, err
	}
	return &receiving, nil
}

// CountByNo 单号唯一性检查，excludeID 用于改号时排除自身
func (r *ReceivingRepository) CountByNo(ctx context.Context, receivingNo, excludeID string) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entity.Receiving{}).
		Where("receiving_no = ? AND deleted_at IS NULL", receivingNo)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count, err
}

// MaxReceivingNo 取该前缀下字典序最大的单号。
// 定宽零填充使字典序等于数值序。该读取不在后续插入的事务内。
func (r *ReceivingRepository) MaxReceivingNo(ctx context.Context, prefix string) (string, error) {
	var max string
	err := r.db.WithContext(ctx).Model(&entity.Receiving{}).
		Where("receiving_no LIKE ? AND deleted_at IS NULL", prefix+"%").
		Select("COALESCE(MAX(receiving_no), '')").
		Scan(&max).Error
	return max, err
}

// UpdateWithPallets 保存单头并按ID集合对账子托盘：
// 库中有而本次未提交的删除，带ID的原地更新，不带ID的作为新托盘插入并挂到本单。
// 全部写入在一个事务内，任一失败整体回滚。
// 托盘的 receiving_id 只在这里落值，其他组件不得改挂托盘。
func (r *ReceivingRepository) UpdateWithPallets(ctx context.Context, receiving *entity.Receiving, pallets []entity.Pallet) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		receiving.UpdatedAt = now
		if err := tx.Save(receiving).Error; err != nil {
			return err
		}

		// 当前库中的托盘ID集合
		var existingIDs []string
		if err := tx.Model(&entity.Pallet{}).
			Where("receiving_id = ? AND deleted_at IS NULL", receiving.ID).
			Pluck("id", &existingIDs).Error; err != nil {
			return err
		}

		incoming := make(map[string]bool, len(pallets))
		for i := range pallets {
			if pallets[i].ID != "" {
				incoming[pallets[i].ID] = true
			}
		}

		// 删除本次未提交的托盘
		var toDelete []string
		for _, id := range existingIDs {
			if !incoming[id] {
				toDelete = append(toDelete, id)
			}
		}
		if len(toDelete) > 0 {
			if err := tx.Where("receiving_id = ? AND id IN ?", receiving.ID, toDelete).
				Delete(&entity.Pallet{}).Error; err != nil {
				return err
			}
		}

		// 带ID更新，不带ID新增。
		// 更新只写可变列，载荷实体不携带 created_at/created_by，整行 Save 会把它们清零。
		for i := range pallets {
			p := &pallets[i]
			p.ReceivingID = receiving.ID
			p.UpdatedAt = now
			if p.ID == "" {
				p.ID = uuid.New().String()
				p.CreatedAt = now
				if err := tx.Create(p).Error; err != nil {
					return err
				}
			} else {
				updates := map[string]interface{}{
					"pallet_no":           p.PalletNo,
					"manual_pallet_no":    p.ManualPalletNo,
					"material_id":         p.MaterialID,
					"unit_id":             p.UnitID,
					"quantity":            p.Quantity,
					"location_id":         p.LocationID,
					"batch_no":            p.BatchNo,
					"box_no":              p.BoxNo,
					"vendor_batch_no":     p.VendorBatchNo,
					"manufacture_date":    p.ManufactureDate,
					"expiry_date":         p.ExpiryDate,
					"alert_lead_days":     p.AlertLeadDays,
					"gross_weight":        p.GrossWeight,
					"package_tare_weight": p.PackageTareWeight,
					"pallet_tare_weight":  p.PalletTareWeight,
					"net_weight":          p.NetWeight,
					"barcode":             p.Barcode,
					"is_locked":           p.IsLocked,
					"is_cancelled":        p.IsCancelled,
					"updated_by":          p.UpdatedBy,
					"updated_at":          now,
				}
				if err := tx.Model(&entity.Pallet{}).
					Where("id = ? AND receiving_id = ?", p.ID, receiving.ID).
					Updates(updates).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// DeleteWithPallets 删除入库单及其全部托盘（管理员操作），一个事务
func (r *ReceivingRepository) DeleteWithPallets(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("receiving_id = ?", id).Delete(&entity.Pallet{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.Receiving{}).Error
	})
}

type ReceivingListParams struct {
	WarehouseID string
	CustomerID  string
	DateFrom    *time.Time
	DateTo      *time.Time
	Keyword     string
	Page        int
	Size        int
}

func (r *ReceivingRepository) List(ctx context.Context, params ReceivingListParams) ([]entity.Receiving, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Receiving{}).Where("deleted_at IS NULL")

	if params.WarehouseID != "" {
		query = query.Where("warehouse_id = ?", params.WarehouseID)
	}
	if params.CustomerID != "" {
		query = query.Where("customer_id = ?", params.CustomerID)
	}
	if params.DateFrom != nil {
		query = query.Where("receiving_date >= ?", params.DateFrom)
	}
	if params.DateTo != nil {
		query = query.Where("receiving_date <= ?", params.DateTo)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("receiving_no ILIKE ? OR truck_no ILIKE ? OR container_no ILIKE ?", kw, kw, kw)
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

	var receivings []entity.Receiving
	err := query.Preload("Warehouse").
		Preload("Customer").
		Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).
		Limit(params.Size).
		Find(&receivings).Error

	return receivings, total, err
}

// CreateAttachment 入库单附件记录
func (r *ReceivingRepository) CreateAttachment(ctx context.Context, att *entity.ReceivingAttachment) error {
	return r.db.WithContext(ctx).Create(att).Error
}

func (r *ReceivingRepository) GetAttachment(ctx context.Context, id string) (*entity.ReceivingAttachment, error) {
	var att entity.ReceivingAttachment
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&att).Error
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *ReceivingRepository) ListAttachments(ctx context.Context, receivingID string) ([]entity.ReceivingAttachment, error) {
	var atts []entity.ReceivingAttachment
	err := r.db.WithContext(ctx).
		Where("receiving_id = ? AND deleted_at IS NULL", receivingID).
		Order("created_at DESC").
		Find(&atts).Error
	return atts, err
}

func (r *ReceivingRepository) DeleteAttachment(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.ReceivingAttachment{}).Error
}
