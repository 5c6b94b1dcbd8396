package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ewceniza9009/wmsc-sub000/internal/wms/entity"
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/repository"
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/sequence"
)

type ReceivingService struct {
	repo         *repository.ReceivingRepository
	palletRepo   *repository.PalletRepository
	customerRepo *repository.CustomerRepository
	allocator    *CodeAllocator
}

func NewReceivingService(repo *repository.ReceivingRepository, palletRepo *repository.PalletRepository, customerRepo *repository.CustomerRepository, allocator *CodeAllocator) *ReceivingService {
	return &ReceivingService{
		repo:         repo,
		palletRepo:   palletRepo,
		customerRepo: customerRepo,
		allocator:    allocator,
	}
}

type CreateReceivingRequest struct {
	ReceivingNo   string     `json:"receiving_no" binding:"required"` // "NA" 表示自动生成
	WarehouseID   string     `json:"warehouse_id" binding:"required"`
	CustomerID    string     `json:"customer_id" binding:"required"`
	ReceivingDate *time.Time `json:"receiving_date" binding:"required"`
	ReceivingTime string     `json:"receiving_time" binding:"required"`
	TruckNo       string     `json:"truck_no"`
	ContainerNo   string     `json:"container_no"`
	TotalQuantity float64    `json:"total_quantity"`
	TotalWeight   float64    `json:"total_weight"`
	Notes         string     `json:"notes"`
}

// Create 新建入库单，只落单头，托盘走批量保存或收货工作流
func (s *ReceivingService) Create(ctx context.Context, req CreateReceivingRequest, userID string) (*entity.Receiving, error) {
	receivingNo := req.ReceivingNo
	if sequence.IsAuto(receivingNo) {
		var err error
		receivingNo, err = s.allocator.NextReceivingNo(ctx)
		if err != nil {
			return nil, err
		}
	}

	count, err := s.repo.CountByNo(ctx, receivingNo, "")
	if err != nil {
		return nil, fmt.Errorf("入库单号查重失败: %w", err)
	}
	if count > 0 {
		codeConflictsTotal.Inc()
		return nil, fmt.Errorf("入库单号 %s: %w", receivingNo, ErrConflict)
	}

	exists, err := s.customerRepo.Exists(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("客户校验失败: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("客户 %s: %w", req.CustomerID, ErrNotFound)
	}

	receiving := &entity.Receiving{
		ID:            uuid.New().String(),
		ReceivingNo:   receivingNo,
		WarehouseID:   req.WarehouseID,
		CustomerID:    req.CustomerID,
		ReceivingDate: req.ReceivingDate,
		ReceivingTime: req.ReceivingTime,
		TruckNo:       req.TruckNo,
		ContainerNo:   req.ContainerNo,
		TotalQuantity: req.TotalQuantity,
		TotalWeight:   req.TotalWeight,
		Notes:         req.Notes,
		CreatedBy:     userID,
		UpdatedBy:     userID,
	}

	if err := s.repo.Create(ctx, receiving); err != nil {
		return nil, fmt.Errorf("创建入库单失败: %w", err)
	}
	return receiving, nil
}

// UpdateReceivingRequest 入库单可变字段的显式清单，未列出的字段不接受
type UpdateReceivingRequest struct {
	ReceivingNo   string          `json:"receiving_no" binding:"required"`
	WarehouseID   string          `json:"warehouse_id" binding:"required"`
	CustomerID    string          `json:"customer_id" binding:"required"`
	ReceivingDate *time.Time      `json:"receiving_date" binding:"required"`
	ReceivingTime string          `json:"receiving_time" binding:"required"`
	TruckNo       string          `json:"truck_no"`
	ContainerNo   string          `json:"container_no"`
	TotalQuantity float64         `json:"total_quantity"`
	TotalWeight   float64         `json:"total_weight"`
	IsLocked      bool            `json:"is_locked"`
	Notes         string          `json:"notes"`
	Pallets       []PalletPayload `json:"pallets" binding:"dive"`
}

// PalletPayload 批量保存时的托盘载荷。带ID原地更新，不带ID新增。
// NetWeight 不可直接提交，始终由毛重与皮重派生。
type PalletPayload struct {
	ID                string     `json:"id"`
	PalletNo          string     `json:"pallet_no"` // 空或 "NA" 表示自动生成
	ManualPalletNo    string     `json:"manual_pallet_no"`
	MaterialID        string     `json:"material_id" binding:"required"`
	UnitID            string     `json:"unit_id" binding:"required"`
	Quantity          float64    `json:"quantity" binding:"required,gt=0"`
	LocationID        string     `json:"location_id"`
	BatchNo           string     `json:"batch_no"`
	BoxNo             string     `json:"box_no"`
	VendorBatchNo     string     `json:"vendor_batch_no"`
	ManufactureDate   *time.Time `json:"manufacture_date"`
	ExpiryDate        *time.Time `json:"expiry_date"`
	AlertLeadDays     int        `json:"alert_lead_days"`
	GrossWeight       float64    `json:"gross_weight" binding:"gte=0"`
	PackageTareWeight float64    `json:"package_tare_weight" binding:"gte=0"`
	PalletTareWeight  float64    `json:"pallet_tare_weight" binding:"gte=0"`
	Barcode           string     `json:"barcode"`
	IsLocked          bool       `json:"is_locked"`
	IsCancelled       bool       `json:"is_cancelled"`
}

// toEntity 载荷归一化：可选引用字段空串收敛为未设置，净重按公式派生
func (p *PalletPayload) toEntity(userID string) entity.Pallet {
	var locationID *string
	if p.LocationID != "" {
		loc := p.LocationID
		locationID = &loc
	}
	return entity.Pallet{
		ID:                p.ID,
		PalletNo:          p.PalletNo,
		ManualPalletNo:    p.ManualPalletNo,
		MaterialID:        p.MaterialID,
		UnitID:            p.UnitID,
		Quantity:          p.Quantity,
		LocationID:        locationID,
		BatchNo:           p.BatchNo,
		BoxNo:             p.BoxNo,
		VendorBatchNo:     p.VendorBatchNo,
		ManufactureDate:   p.ManufactureDate,
		ExpiryDate:        p.ExpiryDate,
		AlertLeadDays:     p.AlertLeadDays,
		GrossWeight:       p.GrossWeight,
		PackageTareWeight: p.PackageTareWeight,
		PalletTareWeight:  p.PalletTareWeight,
		NetWeight:         entity.NetWeightOf(p.GrossWeight, p.PackageTareWeight, p.PalletTareWeight),
		Barcode:           p.Barcode,
		IsLocked:          p.IsLocked,
		IsCancelled:       p.IsCancelled,
		UpdatedBy:         userID,
	}
}

// Update 保存单头并按ID集合对账托盘，整批一个事务。
// 注意 TotalQuantity/TotalWeight 照提交值落库，不按托盘重算（沿袭原始口径）。
func (s *ReceivingService) Update(ctx context.Context, id string, req UpdateReceivingRequest, userID string) (*entity.Receiving, error) {
	receiving, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("入库单 %s: %w", id, translateNotFound(err))
	}

	// 改号需对其余单据查重
	if req.ReceivingNo != receiving.ReceivingNo {
		count, err := s.repo.CountByNo(ctx, req.ReceivingNo, id)
		if err != nil {
			return nil, fmt.Errorf("入库单号查重失败: %w", err)
		}
		if count > 0 {
			codeConflictsTotal.Inc()
			return nil, fmt.Errorf("入库单号 %s: %w", req.ReceivingNo, ErrConflict)
		}
	}

	receiving.ReceivingNo = req.ReceivingNo
	receiving.WarehouseID = req.WarehouseID
	receiving.CustomerID = req.CustomerID
	receiving.ReceivingDate = req.ReceivingDate
	receiving.ReceivingTime = req.ReceivingTime
	receiving.TruckNo = req.TruckNo
	receiving.ContainerNo = req.ContainerNo
	receiving.TotalQuantity = req.TotalQuantity
	receiving.TotalWeight = req.TotalWeight
	receiving.IsLocked = req.IsLocked
	receiving.Notes = req.Notes
	receiving.UpdatedBy = userID

	pallets := make([]entity.Pallet, 0, len(req.Pallets))
	// 批内已发出的最后一个自动托盘号。插入前库内最大号不变，
	// 不回传该号的话同一批多个自动托盘会拿到相同的下一号。
	lastAllocated := ""
	for i := range req.Pallets {
		p := req.Pallets[i].toEntity(userID)
		if p.ID == "" {
			// 新增托盘：补号并查重
			if p.PalletNo == "" || sequence.IsAuto(p.PalletNo) {
				palletNo, err := s.allocator.NextPalletNoAfter(ctx, lastAllocated)
				if err != nil {
					return nil, err
				}
				lastAllocated = palletNo
				p.PalletNo = palletNo
				if p.ManualPalletNo == "" {
					p.ManualPalletNo = palletNo
				}
			} else {
				count, err := s.palletRepo.CountByNo(ctx, p.PalletNo, "")
				if err != nil {
					return nil, fmt.Errorf("托盘号查重失败: %w", err)
				}
				if count > 0 {
					codeConflictsTotal.Inc()
					return nil, fmt.Errorf("托盘号 %s: %w", p.PalletNo, ErrConflict)
				}
			}
			p.CreatedBy = userID
		}
		pallets = append(pallets, p)
	}

	if err := s.repo.UpdateWithPallets(ctx, receiving, pallets); err != nil {
		return nil, fmt.Errorf("保存入库单失败: %w", err)
	}
	palletsSavedTotal.Add(float64(len(pallets)))

	return s.repo.GetWithPallets(ctx, id)
}

// Get 单头加全部托盘
func (s *ReceivingService) Get(ctx context.Context, id string) (*entity.Receiving, error) {
	receiving, err := s.repo.GetWithPallets(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("入库单 %s: %w", id, translateNotFound(err))
	}
	return receiving, nil
}

func (s *ReceivingService) List(ctx context.Context, params repository.ReceivingListParams) ([]entity.Receiving, int64, error) {
	return s.repo.List(ctx, params)
}

// Delete 删除入库单及全部托盘（管理员操作）
func (s *ReceivingService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("入库单 %s: %w", id, translateNotFound(err))
	}
	if err := s.repo.DeleteWithPallets(ctx, id); err != nil {
		return fmt.Errorf("删除入库单失败: %w", err)
	}
	return nil
}
