package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ewceniza9009/wmsc-sub000/internal/wms/entity"
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/repository"
)

type TransferService struct {
	repo          *repository.TransferRepository
	warehouseRepo *repository.WarehouseRepository
}

func NewTransferService(repo *repository.TransferRepository, warehouseRepo *repository.WarehouseRepository) *TransferService {
	return &TransferService{repo: repo, warehouseRepo: warehouseRepo}
}

type CreateTransferRequest struct {
	TransferNo       string     `json:"transfer_no" binding:"required"`
	WarehouseID      string     `json:"warehouse_id" binding:"required"`
	ToWarehouseID    string     `json:"to_warehouse_id" binding:"required"`
	TransferDate     *time.Time `json:"transfer_date" binding:"required"`
	Particulars      string     `json:"particulars" binding:"required"`
	ManualTransferNo string     `json:"manual_transfer_no" binding:"required"`
}

// Create 新建移库单，只落单头。
// 移库单号无查重（沿袭原始口径，与入库单不对称）。
func (s *TransferService) Create(ctx context.Context, req CreateTransferRequest, userID string) (*entity.Transfer, error) {
	exists, err := s.warehouseRepo.Exists(req.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("仓库校验失败: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("仓库 %s: %w", req.WarehouseID, ErrNotFound)
	}
	exists, err = s.warehouseRepo.Exists(req.ToWarehouseID)
	if err != nil {
		return nil, fmt.Errorf("目标仓库校验失败: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("目标仓库 %s: %w", req.ToWarehouseID, ErrNotFound)
	}

	transfer := &entity.Transfer{
		ID:               uuid.New().String(),
		TransferNo:       req.TransferNo,
		WarehouseID:      req.WarehouseID,
		ToWarehouseID:    req.ToWarehouseID,
		TransferDate:     req.TransferDate,
		Particulars:      req.Particulars,
		ManualTransferNo: req.ManualTransferNo,
		CreatedBy:        userID,
		UpdatedBy:        userID,
	}

	if err := s.repo.Create(ctx, transfer); err != nil {
		return nil, fmt.Errorf("创建移库单失败: %w", err)
	}
	return transfer, nil
}

// UpdateTransferRequest 移库单可变字段的显式清单
type UpdateTransferRequest struct {
	TransferNo       string                `json:"transfer_no" binding:"required"`
	WarehouseID      string                `json:"warehouse_id" binding:"required"`
	ToWarehouseID    string                `json:"to_warehouse_id" binding:"required"`
	TransferDate     *time.Time            `json:"transfer_date" binding:"required"`
	Particulars      string                `json:"particulars" binding:"required"`
	ManualTransferNo string                `json:"manual_transfer_no" binding:"required"`
	IsLocked         bool                  `json:"is_locked"`
	Lines            []TransferLinePayload `json:"lines" binding:"dive"`
}

// TransferLinePayload 移库明细载荷。每次保存整单重建，载荷不携带行ID。
type TransferLinePayload struct {
	PalletID     string  `json:"pallet_id" binding:"required"`
	ToLocationID string  `json:"to_location_id" binding:"required"`
	MaterialID   string  `json:"material_id" binding:"required"`
	UnitID       string  `json:"unit_id" binding:"required"`
	Quantity     float64 `json:"quantity" binding:"required,gt=0"`
	Weight       float64 `json:"weight" binding:"gte=0"`
}

// Update 保存单头并整单重建明细（删光重插），整批一个事务
func (s *TransferService) Update(ctx context.Context, id string, req UpdateTransferRequest, userID string) (*entity.Transfer, error) {
	transfer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("移库单 %s: %w", id, translateNotFound(err))
	}

	transfer.TransferNo = req.TransferNo
	transfer.WarehouseID = req.WarehouseID
	transfer.ToWarehouseID = req.ToWarehouseID
	transfer.TransferDate = req.TransferDate
	transfer.Particulars = req.Particulars
	transfer.ManualTransferNo = req.ManualTransferNo
	transfer.IsLocked = req.IsLocked
	transfer.UpdatedBy = userID

	lines := make([]entity.TransferLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, entity.TransferLine{
			PalletID:     l.PalletID,
			ToLocationID: l.ToLocationID,
			MaterialID:   l.MaterialID,
			UnitID:       l.UnitID,
			Quantity:     l.Quantity,
			Weight:       l.Weight,
		})
	}

	if err := s.repo.UpdateWithLines(ctx, transfer, lines); err != nil {
		return nil, fmt.Errorf("保存移库单失败: %w", err)
	}

	return s.repo.GetWithLines(ctx, id)
}

// Get 单头加全部明细
func (s *TransferService) Get(ctx context.Context, id string) (*entity.Transfer, error) {
	transfer, err := s.repo.GetWithLines(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("移库单 %s: %w", id, translateNotFound(err))
	}
	return transfer, nil
}

func (s *TransferService) List(ctx context.Context, params repository.TransferListParams) ([]entity.Transfer, int64, error) {
	return s.repo.List(ctx, params)
}

// Delete 删除移库单及全部明细，一个事务
func (s *TransferService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("移库单 %s: %w", id, translateNotFound(err))
	}
	if err := s.repo.DeleteWithLines(ctx, id); err != nil {
		return fmt.Errorf("删除移库单失败: %w", err)
	}
	return nil
}
