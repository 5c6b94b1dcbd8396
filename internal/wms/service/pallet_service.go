package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ewceniza9009/wmsc-sub000/internal/wms/entity"
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/repository"
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/sequence"
)

type PalletService struct {
	repo          *repository.PalletRepository
	receivingRepo *repository.ReceivingRepository
	materialRepo  *repository.MaterialRepository
	unitRepo      *repository.UnitRepository
	allocator     *CodeAllocator
}

func NewPalletService(repo *repository.PalletRepository, receivingRepo *repository.ReceivingRepository, materialRepo *repository.MaterialRepository, unitRepo *repository.UnitRepository, allocator *CodeAllocator) *PalletService {
	return &PalletService{
		repo:          repo,
		receivingRepo: receivingRepo,
		materialRepo:  materialRepo,
		unitRepo:      unitRepo,
		allocator:     allocator,
	}
}

type CreatePalletRequest struct {
	ReceivingID string        `json:"receiving_id" binding:"required"`
	Pallet      PalletPayload `json:"pallet" binding:"required"`
}

// Create 独立托盘建档（收货工作流确认后的落库入口）
func (s *PalletService) Create(ctx context.Context, req CreatePalletRequest, userID string) (*entity.Pallet, error) {
	if _, err := s.receivingRepo.GetByID(ctx, req.ReceivingID); err != nil {
		return nil, fmt.Errorf("入库单 %s: %w", req.ReceivingID, translateNotFound(err))
	}

	exists, err := s.materialRepo.Exists(req.Pallet.MaterialID)
	if err != nil {
		return nil, fmt.Errorf("物料校验失败: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("物料 %s: %w", req.Pallet.MaterialID, ErrNotFound)
	}
	exists, err = s.unitRepo.Exists(req.Pallet.UnitID)
	if err != nil {
		return nil, fmt.Errorf("单位校验失败: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("单位 %s: %w", req.Pallet.UnitID, ErrNotFound)
	}

	pallet := req.Pallet.toEntity(userID)
	pallet.ID = uuid.New().String()
	pallet.ReceivingID = req.ReceivingID
	pallet.CreatedBy = userID

	if pallet.PalletNo == "" || sequence.IsAuto(pallet.PalletNo) {
		palletNo, err := s.allocator.NextPalletNo(ctx)
		if err != nil {
			return nil, err
		}
		pallet.PalletNo = palletNo
		if pallet.ManualPalletNo == "" {
			pallet.ManualPalletNo = palletNo
		}
	} else {
		count, err := s.repo.CountByNo(ctx, pallet.PalletNo, "")
		if err != nil {
			return nil, fmt.Errorf("托盘号查重失败: %w", err)
		}
		if count > 0 {
			codeConflictsTotal.Inc()
			return nil, fmt.Errorf("托盘号 %s: %w", pallet.PalletNo, ErrConflict)
		}
	}

	if err := s.repo.Create(ctx, &pallet); err != nil {
		return nil, fmt.Errorf("创建托盘失败: %w", err)
	}
	palletsSavedTotal.Inc()
	return &pallet, nil
}

// Update 更新托盘字段，净重重新派生，不改挂所属入库单
func (s *PalletService) Update(ctx context.Context, id string, req PalletPayload, userID string) (*entity.Pallet, error) {
	pallet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("托盘 %s: %w", id, translateNotFound(err))
	}

	if req.PalletNo != "" && req.PalletNo != pallet.PalletNo && !sequence.IsAuto(req.PalletNo) {
		count, err := s.repo.CountByNo(ctx, req.PalletNo, id)
		if err != nil {
			return nil, fmt.Errorf("托盘号查重失败: %w", err)
		}
		if count > 0 {
			codeConflictsTotal.Inc()
			return nil, fmt.Errorf("托盘号 %s: %w", req.PalletNo, ErrConflict)
		}
		pallet.PalletNo = req.PalletNo
	}

	pallet.ManualPalletNo = req.ManualPalletNo
	pallet.MaterialID = req.MaterialID
	pallet.UnitID = req.UnitID
	pallet.Quantity = req.Quantity
	if req.LocationID != "" {
		loc := req.LocationID
		pallet.LocationID = &loc
	} else {
		pallet.LocationID = nil
	}
	pallet.BatchNo = req.BatchNo
	pallet.BoxNo = req.BoxNo
	pallet.VendorBatchNo = req.VendorBatchNo
	pallet.ManufactureDate = req.ManufactureDate
	pallet.ExpiryDate = req.ExpiryDate
	pallet.AlertLeadDays = req.AlertLeadDays
	pallet.GrossWeight = req.GrossWeight
	pallet.PackageTareWeight = req.PackageTareWeight
	pallet.PalletTareWeight = req.PalletTareWeight
	pallet.NetWeight = entity.NetWeightOf(req.GrossWeight, req.PackageTareWeight, req.PalletTareWeight)
	pallet.IsLocked = req.IsLocked
	pallet.IsCancelled = req.IsCancelled
	pallet.UpdatedBy = userID

	if err := s.repo.Update(ctx, pallet); err != nil {
		return nil, fmt.Errorf("更新托盘失败: %w", err)
	}
	return pallet, nil
}

func (s *PalletService) Get(ctx context.Context, id string) (*entity.Pallet, error) {
	pallet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("托盘 %s: %w", id, translateNotFound(err))
	}
	return pallet, nil
}

func (s *PalletService) List(ctx context.Context, params repository.PalletListParams) ([]entity.Pallet, int64, error) {
	return s.repo.List(ctx, params)
}

// Cancel 作废托盘，正常业务下线方式
func (s *PalletService) Cancel(ctx context.Context, id, userID string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("托盘 %s: %w", id, translateNotFound(err))
	}
	if err := s.repo.Cancel(ctx, id, userID); err != nil {
		return fmt.Errorf("作废托盘失败: %w", err)
	}
	return nil
}

// Delete 物理删除，管理员兜底操作
func (s *PalletService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("托盘 %s: %w", id, translateNotFound(err))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除托盘失败: %w", err)
	}
	return nil
}
