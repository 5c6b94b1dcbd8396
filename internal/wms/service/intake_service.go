package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ewceniza9009/wmsc-sub000/internal/wms/entity"
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/repository"
)

// 收货工作流状态。一个会话对应一个在收托盘，顺序推进，保存后回到起点
// 继续收下一托，任何非终态都可以整单放弃。
const (
	IntakeStateCollectInfo = "COLLECT_INFO"
	IntakeStateWeighing    = "WEIGHING"
	IntakeStateBarcode     = "BARCODE_GENERATION"
	IntakeStateConfirm     = "CONFIRMATION"
	IntakeStateCancelled   = "CANCELLED"
)

// 条码分段连接符
const barcodeSeparator = "-"

// IntakeSession 收货会话。保存之前所有状态都只在内存里，取消无任何落库痕迹。
type IntakeSession struct {
	ID          string        `json:"id"`
	ReceivingID string        `json:"receiving_id"`
	State       string        `json:"state"`
	Pallet      PalletPayload `json:"pallet"`
	SavedCount  int           `json:"saved_count"` // 本会话累计落库托盘数
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type IntakeService struct {
	receivingRepo *repository.ReceivingRepository
	materialRepo  *repository.MaterialRepository
	palletSvc     *PalletService

	mu       sync.Mutex
	sessions map[string]*IntakeSession
}

func NewIntakeService(receivingRepo *repository.ReceivingRepository, materialRepo *repository.MaterialRepository, palletSvc *PalletService) *IntakeService {
	return &IntakeService{
		receivingRepo: receivingRepo,
		materialRepo:  materialRepo,
		palletSvc:     palletSvc,
		sessions:      make(map[string]*IntakeSession),
	}
}

// Start 针对一张入库单开启收货会话
func (s *IntakeService) Start(ctx context.Context, receivingID string) (*IntakeSession, error) {
	if _, err := s.receivingRepo.GetByID(ctx, receivingID); err != nil {
		return nil, fmt.Errorf("入库单 %s: %w", receivingID, translateNotFound(err))
	}

	now := time.Now()
	session := &IntakeSession{
		ID:          uuid.New().String(),
		ReceivingID: receivingID,
		State:       IntakeStateCollectInfo,
		Pallet:      PalletPayload{PalletNo: entity.CodeAuto},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session, nil
}

func (s *IntakeService) Get(sessionID string) (*IntakeSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("收货会话 %s: %w", sessionID, ErrNotFound)
	}
	return session, nil
}

// IntakeInfoRequest 托盘基础信息，推进到称重前必须补齐物料/数量/单位
type IntakeInfoRequest struct {
	PalletNo        string     `json:"pallet_no"`
	ManualPalletNo  string     `json:"manual_pallet_no"`
	MaterialID      string     `json:"material_id"`
	UnitID          string     `json:"unit_id"`
	Quantity        float64    `json:"quantity"`
	LocationID      string     `json:"location_id"`
	BatchNo         string     `json:"batch_no"`
	BoxNo           string     `json:"box_no"`
	VendorBatchNo   string     `json:"vendor_batch_no"`
	ManufactureDate *time.Time `json:"manufacture_date"`
	ExpiryDate      *time.Time `json:"expiry_date"`
	AlertLeadDays   int        `json:"alert_lead_days"`
}

// SetInfo 更新基础信息。纯内存修改，不触库。
func (s *IntakeService) SetInfo(sessionID string, req IntakeInfoRequest) (*IntakeSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("收货会话 %s: %w", sessionID, ErrNotFound)
	}
	if session.State == IntakeStateCancelled {
		return nil, fmt.Errorf("收货会话已取消: %w", ErrValidation)
	}

	if req.PalletNo != "" {
		session.Pallet.PalletNo = req.PalletNo
	}
	session.Pallet.ManualPalletNo = req.ManualPalletNo
	session.Pallet.MaterialID = req.MaterialID
	session.Pallet.UnitID = req.UnitID
	session.Pallet.Quantity = req.Quantity
	session.Pallet.LocationID = req.LocationID
	session.Pallet.BatchNo = req.BatchNo
	session.Pallet.BoxNo = req.BoxNo
	session.Pallet.VendorBatchNo = req.VendorBatchNo
	session.Pallet.ManufactureDate = req.ManufactureDate
	session.Pallet.ExpiryDate = req.ExpiryDate
	session.Pallet.AlertLeadDays = req.AlertLeadDays
	session.UpdatedAt = time.Now()

	return session, nil
}

// IntakeWeighRequest 称重数据
type IntakeWeighRequest struct {
	GrossWeight       float64 `json:"gross_weight"`
	PackageTareWeight float64 `json:"package_tare_weight"`
	PalletTareWeight  float64 `json:"pallet_tare_weight"`
}

// SetWeights 更新称重数据，每次都立即重算净重。纯内存修改。
func (s *IntakeService) SetWeights(sessionID string, req IntakeWeighRequest) (*IntakeSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("收货会话 %s: %w", sessionID, ErrNotFound)
	}
	if session.State == IntakeStateCancelled {
		return nil, fmt.Errorf("收货会话已取消: %w", ErrValidation)
	}

	session.Pallet.GrossWeight = req.GrossWeight
	session.Pallet.PackageTareWeight = req.PackageTareWeight
	session.Pallet.PalletTareWeight = req.PalletTareWeight
	session.UpdatedAt = time.Now()

	return session, nil
}

// NetWeight 当前会话净重
func (s *IntakeSession) NetWeight() float64 {
	return entity.NetWeightOf(s.Pallet.GrossWeight, s.Pallet.PackageTareWeight, s.Pallet.PalletTareWeight)
}

// Advance 顺序推进一步。每步的准入校验不满足时原地不动并报出缺失的字段。
// 进入确认态时生成一次条码，之后的修改不再重算。
func (s *IntakeService) Advance(ctx context.Context, sessionID string) (*IntakeSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("收货会话 %s: %w", sessionID, ErrNotFound)
	}

	switch session.State {
	case IntakeStateCollectInfo:
		var missing []string
		if session.Pallet.MaterialID == "" {
			missing = append(missing, "material_id")
		}
		if session.Pallet.Quantity <= 0 {
			missing = append(missing, "quantity")
		}
		if session.Pallet.UnitID == "" {
			missing = append(missing, "unit_id")
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("字段缺失或无效 [%s]: %w", strings.Join(missing, ", "), ErrValidation)
		}
		session.State = IntakeStateWeighing

	case IntakeStateWeighing:
		if session.Pallet.GrossWeight <= 0 {
			return nil, fmt.Errorf("字段缺失或无效 [gross_weight]: %w", ErrValidation)
		}
		session.State = IntakeStateBarcode

	case IntakeStateBarcode:
		if session.Pallet.Barcode == "" {
			barcode, err := s.buildBarcode(ctx, session)
			if err != nil {
				return nil, err
			}
			session.Pallet.Barcode = barcode
		}
		session.State = IntakeStateConfirm

	case IntakeStateConfirm:
		return nil, fmt.Errorf("确认态只能保存或取消: %w", ErrValidation)

	default:
		return nil, fmt.Errorf("收货会话已取消: %w", ErrValidation)
	}

	session.UpdatedAt = time.Now()
	return session, nil
}

// buildBarcode 条码 = 入库单号、紧凑日期、时间戳短后缀、物料编号、净重，按序连接
func (s *IntakeService) buildBarcode(ctx context.Context, session *IntakeSession) (string, error) {
	receiving, err := s.receivingRepo.GetByID(ctx, session.ReceivingID)
	if err != nil {
		return "", fmt.Errorf("入库单 %s: %w", session.ReceivingID, translateNotFound(err))
	}
	material, err := s.materialRepo.GetByID(session.Pallet.MaterialID)
	if err != nil {
		return "", fmt.Errorf("物料 %s: %w", session.Pallet.MaterialID, translateNotFound(err))
	}

	now := time.Now()
	parts := []string{
		receiving.ReceivingNo,
		now.Format("20060102"),
		fmt.Sprintf("%06d", now.UnixNano()%1000000),
		material.MaterialCode,
		strconv.FormatFloat(session.NetWeight(), 'f', -1, 64),
	}
	return strings.Join(parts, barcodeSeparator), nil
}

// Save 确认落库。成功后恢复到信息采集态继续收同一单的下一托；
// 失败不转移状态，错误原样上抛。这是整个工作流唯一有副作用的一步。
func (s *IntakeService) Save(ctx context.Context, sessionID, userID string) (*entity.Pallet, *IntakeSession, error) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, nil, fmt.Errorf("收货会话 %s: %w", sessionID, ErrNotFound)
	}
	if session.State != IntakeStateConfirm {
		s.mu.Unlock()
		return nil, nil, fmt.Errorf("当前状态 %s 不能保存: %w", session.State, ErrValidation)
	}
	payload := session.Pallet
	receivingID := session.ReceivingID
	s.mu.Unlock()

	pallet, err := s.palletSvc.Create(ctx, CreatePalletRequest{
		ReceivingID: receivingID,
		Pallet:      payload,
	}, userID)
	if err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session.Pallet = PalletPayload{PalletNo: entity.CodeAuto}
	session.State = IntakeStateCollectInfo
	session.SavedCount++
	session.UpdatedAt = time.Now()

	return pallet, session, nil
}

// Cancel 放弃当前在收托盘，无任何落库副作用
func (s *IntakeService) Cancel(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return fmt.Errorf("收货会话 %s: %w", sessionID, ErrNotFound)
	}
	session.State = IntakeStateCancelled
	session.UpdatedAt = time.Now()
	delete(s.sessions, sessionID)
	return nil
}
