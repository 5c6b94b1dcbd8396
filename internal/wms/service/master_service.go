package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ewceniza9009/wmsc-sub000/internal/wms/entity"
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/repository"
)

// 基础数据（账号/客户/物料/单位/仓库/冷藏间/库位）的薄CRUD服务。
// 列表缓存只做失效不做回源，键与 handler 层查询参数无关。

// AccountService 账号服务
type AccountService struct {
	repo *repository.AccountRepository
	rdb  *redis.Client
}

func NewAccountService(repo *repository.AccountRepository, rdb *redis.Client) *AccountService {
	return &AccountService{repo: repo, rdb: rdb}
}

type AccountRequest struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email"`
	Role     string `json:"role" binding:"required,oneof=admin manager user"`
	Status   string `json:"status"`
	Notes    string `json:"notes"`
}

func (s *AccountService) Create(ctx context.Context, req AccountRequest, userID string) (*entity.Account, error) {
	if _, err := s.repo.GetByUsername(req.Username); err == nil {
		return nil, fmt.Errorf("账号 %s: %w", req.Username, ErrConflict)
	}

	status := req.Status
	if status == "" {
		status = entity.AccountStatusActive
	}
	account := &entity.Account{
		ID:        uuid.New().String(),
		Username:  req.Username,
		Name:      req.Name,
		Email:     req.Email,
		Role:      req.Role,
		Status:    status,
		Notes:     req.Notes,
		CreatedBy: userID,
	}
	if err := s.repo.Create(account); err != nil {
		return nil, fmt.Errorf("创建账号失败: %w", err)
	}
	s.clearCache(ctx)
	return account, nil
}

func (s *AccountService) Get(id string) (*entity.Account, error) {
	account, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("账号 %s: %w", id, translateNotFound(err))
	}
	return account, nil
}

func (s *AccountService) List(params repository.AccountListParams) ([]entity.Account, int64, error) {
	return s.repo.List(params)
}

func (s *AccountService) Update(ctx context.Context, id string, req AccountRequest) (*entity.Account, error) {
	account, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("账号 %s: %w", id, translateNotFound(err))
	}
	account.Username = req.Username
	account.Name = req.Name
	account.Email = req.Email
	account.Role = req.Role
	if req.Status != "" {
		account.Status = req.Status
	}
	account.Notes = req.Notes
	if err := s.repo.Update(account); err != nil {
		return nil, fmt.Errorf("更新账号失败: %w", err)
	}
	s.clearCache(ctx)
	return account, nil
}

func (s *AccountService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return fmt.Errorf("账号 %s: %w", id, translateNotFound(err))
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("删除账号失败: %w", err)
	}
	s.clearCache(ctx)
	return nil
}

// clearCache 失效式缓存：变更只删键，列表读取不走 Redis，没有对应的 Set（各主数据服务同此口径）
func (s *AccountService) clearCache(ctx context.Context) {
	if s.rdb != nil {
		s.rdb.Del(ctx, "wmsc:accounts:list")
	}
}

// CustomerService 客户服务
type CustomerService struct {
	repo *repository.CustomerRepository
	rdb  *redis.Client
}

func NewCustomerService(repo *repository.CustomerRepository, rdb *redis.Client) *CustomerService {
	return &CustomerService{repo: repo, rdb: rdb}
}

type CustomerRequest struct {
	CustomerCode string `json:"customer_code" binding:"required"`
	Name         string `json:"name" binding:"required"`
	ContactName  string `json:"contact_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	Status       string `json:"status"`
	Notes        string `json:"notes"`
}

func (s *CustomerService) Create(ctx context.Context, req CustomerRequest, userID string) (*entity.Customer, error) {
	if _, err := s.repo.GetByCode(req.CustomerCode); err == nil {
		return nil, fmt.Errorf("客户编号 %s: %w", req.CustomerCode, ErrConflict)
	}

	status := req.Status
	if status == "" {
		status = entity.CustomerStatusActive
	}
	customer := &entity.Customer{
		ID:           uuid.New().String(),
		CustomerCode: req.CustomerCode,
		Name:         req.Name,
		ContactName:  req.ContactName,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		Status:       status,
		Notes:        req.Notes,
		CreatedBy:    userID,
		UpdatedBy:    userID,
	}
	if err := s.repo.Create(customer); err != nil {
		return nil, fmt.Errorf("创建客户失败: %w", err)
	}
	s.clearCache(ctx)
	return customer, nil
}

func (s *CustomerService) Get(id string) (*entity.Customer, error) {
	customer, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("客户 %s: %w", id, translateNotFound(err))
	}
	return customer, nil
}

func (s *CustomerService) List(params repository.CustomerListParams) ([]entity.Customer, int64, error) {
	return s.repo.List(params)
}

func (s *CustomerService) Update(ctx context.Context, id string, req CustomerRequest, userID string) (*entity.Customer, error) {
	customer, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("客户 %s: %w", id, translateNotFound(err))
	}
	customer.CustomerCode = req.CustomerCode
	customer.Name = req.Name
	customer.ContactName = req.ContactName
	customer.Phone = req.Phone
	customer.Email = req.Email
	customer.Address = req.Address
	if req.Status != "" {
		customer.Status = req.Status
	}
	customer.Notes = req.Notes
	customer.UpdatedBy = userID
	if err := s.repo.Update(customer); err != nil {
		return nil, fmt.Errorf("更新客户失败: %w", err)
	}
	s.clearCache(ctx)
	return customer, nil
}

func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return fmt.Errorf("客户 %s: %w", id, translateNotFound(err))
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("删除客户失败: %w", err)
	}
	s.clearCache(ctx)
	return nil
}

func (s *CustomerService) clearCache(ctx context.Context) {
	if s.rdb != nil {
		s.rdb.Del(ctx, "wmsc:customers:list")
	}
}

// MaterialService 物料服务
type MaterialService struct {
	repo *repository.MaterialRepository
	rdb  *redis.Client
}

func NewMaterialService(repo *repository.MaterialRepository, rdb *redis.Client) *MaterialService {
	return &MaterialService{repo: repo, rdb: rdb}
}

type MaterialRequest struct {
	MaterialCode  string  `json:"material_code" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	Category      string  `json:"category"`
	DefaultUnitID string  `json:"default_unit_id"`
	StorageTempC  float64 `json:"storage_temp_c"`
	Status        string  `json:"status"`
	Notes         string  `json:"notes"`
}

func (s *MaterialService) Create(ctx context.Context, req MaterialRequest, userID string) (*entity.Material, error) {
	if _, err := s.repo.GetByCode(req.MaterialCode); err == nil {
		return nil, fmt.Errorf("物料编号 %s: %w", req.MaterialCode, ErrConflict)
	}

	status := req.Status
	if status == "" {
		status = entity.MaterialStatusActive
	}
	material := &entity.Material{
		ID:            uuid.New().String(),
		MaterialCode:  req.MaterialCode,
		Name:          req.Name,
		Category:      req.Category,
		DefaultUnitID: req.DefaultUnitID,
		StorageTempC:  req.StorageTempC,
		Status:        status,
		Notes:         req.Notes,
		CreatedBy:     userID,
		UpdatedBy:     userID,
	}
	if err := s.repo.Create(material); err != nil {
		return nil, fmt.Errorf("创建物料失败: %w", err)
	}
	s.clearCache(ctx)
	return material, nil
}

func (s *MaterialService) Get(id string) (*entity.Material, error) {
	material, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("物料 %s: %w", id, translateNotFound(err))
	}
	return material, nil
}

func (s *MaterialService) List(params repository.MaterialListParams) ([]entity.Material, int64, error) {
	return s.repo.List(params)
}

func (s *MaterialService) Update(ctx context.Context, id string, req MaterialRequest, userID string) (*entity.Material, error) {
	material, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("物料 %s: %w", id, translateNotFound(err))
	}
	material.MaterialCode = req.MaterialCode
	material.Name = req.Name
	material.Category = req.Category
	material.DefaultUnitID = req.DefaultUnitID
	material.StorageTempC = req.StorageTempC
	if req.Status != "" {
		material.Status = req.Status
	}
	material.Notes = req.Notes
	material.UpdatedBy = userID
	if err := s.repo.Update(material); err != nil {
		return nil, fmt.Errorf("更新物料失败: %w", err)
	}
	s.clearCache(ctx)
	return material, nil
}

func (s *MaterialService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return fmt.Errorf("物料 %s: %w", id, translateNotFound(err))
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("删除物料失败: %w", err)
	}
	s.clearCache(ctx)
	return nil
}

func (s *MaterialService) clearCache(ctx context.Context) {
	if s.rdb != nil {
		s.rdb.Del(ctx, "wmsc:materials:list")
	}
}

// UnitService 计量单位服务
type UnitService struct {
	repo *repository.UnitRepository
}

func NewUnitService(repo *repository.UnitRepository) *UnitService {
	return &UnitService{repo: repo}
}

type UnitRequest struct {
	UnitCode string `json:"unit_code" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

func (s *UnitService) Create(req UnitRequest, userID string) (*entity.Unit, error) {
	unit := &entity.Unit{
		ID:        uuid.New().String(),
		UnitCode:  req.UnitCode,
		Name:      req.Name,
		CreatedBy: userID,
	}
	if err := s.repo.Create(unit); err != nil {
		return nil, fmt.Errorf("创建单位失败: %w", err)
	}
	return unit, nil
}

func (s *UnitService) List() ([]entity.Unit, error) {
	return s.repo.List()
}

func (s *UnitService) Update(id string, req UnitRequest) (*entity.Unit, error) {
	unit, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("单位 %s: %w", id, translateNotFound(err))
	}
	unit.UnitCode = req.UnitCode
	unit.Name = req.Name
	if err := s.repo.Update(unit); err != nil {
		return nil, fmt.Errorf("更新单位失败: %w", err)
	}
	return unit, nil
}

func (s *UnitService) Delete(id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return fmt.Errorf("单位 %s: %w", id, translateNotFound(err))
	}
	return s.repo.Delete(id)
}

// WarehouseService 仓库/冷藏间/库位服务
type WarehouseService struct {
	repo         *repository.WarehouseRepository
	roomRepo     *repository.RoomRepository
	locationRepo *repository.LocationRepository
	rdb          *redis.Client
}

func NewWarehouseService(repo *repository.WarehouseRepository, roomRepo *repository.RoomRepository, locationRepo *repository.LocationRepository, rdb *redis.Client) *WarehouseService {
	return &WarehouseService{repo: repo, roomRepo: roomRepo, locationRepo: locationRepo, rdb: rdb}
}

type WarehouseRequest struct {
	WarehouseCode string `json:"warehouse_code" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Address       string `json:"address"`
	Status        string `json:"status"`
	Notes         string `json:"notes"`
}

func (s *WarehouseService) Create(ctx context.Context, req WarehouseRequest, userID string) (*entity.Warehouse, error) {
	status := req.Status
	if status == "" {
		status = entity.WarehouseStatusActive
	}
	warehouse := &entity.Warehouse{
		ID:            uuid.New().String(),
		WarehouseCode: req.WarehouseCode,
		Name:          req.Name,
		Address:       req.Address,
		Status:        status,
		Notes:         req.Notes,
		CreatedBy:     userID,
		UpdatedBy:     userID,
	}
	if err := s.repo.Create(warehouse); err != nil {
		return nil, fmt.Errorf("创建仓库失败: %w", err)
	}
	s.clearCache(ctx)
	return warehouse, nil
}

func (s *WarehouseService) Get(id string) (*entity.Warehouse, error) {
	warehouse, err := s.repo.GetWithRooms(id)
	if err != nil {
		return nil, fmt.Errorf("仓库 %s: %w", id, translateNotFound(err))
	}
	return warehouse, nil
}

func (s *WarehouseService) List(params repository.WarehouseListParams) ([]entity.Warehouse, int64, error) {
	return s.repo.List(params)
}

func (s *WarehouseService) Update(ctx context.Context, id string, req WarehouseRequest, userID string) (*entity.Warehouse, error) {
	warehouse, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("仓库 %s: %w", id, translateNotFound(err))
	}
	warehouse.WarehouseCode = req.WarehouseCode
	warehouse.Name = req.Name
	warehouse.Address = req.Address
	if req.Status != "" {
		warehouse.Status = req.Status
	}
	warehouse.Notes = req.Notes
	warehouse.UpdatedBy = userID
	if err := s.repo.Update(warehouse); err != nil {
		return nil, fmt.Errorf("更新仓库失败: %w", err)
	}
	s.clearCache(ctx)
	return warehouse, nil
}

func (s *WarehouseService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return fmt.Errorf("仓库 %s: %w", id, translateNotFound(err))
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("删除仓库失败: %w", err)
	}
	s.clearCache(ctx)
	return nil
}

type RoomRequest struct {
	WarehouseID string  `json:"warehouse_id" binding:"required"`
	RoomCode    string  `json:"room_code" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	TempMinC    float64 `json:"temp_min_c"`
	TempMaxC    float64 `json:"temp_max_c"`
	Status      string  `json:"status"`
}

func (s *WarehouseService) CreateRoom(ctx context.Context, req RoomRequest, userID string) (*entity.Room, error) {
	exists, err := s.repo.Exists(req.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("仓库校验失败: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("仓库 %s: %w", req.WarehouseID, ErrNotFound)
	}

	status := req.Status
	if status == "" {
		status = entity.WarehouseStatusActive
	}
	room := &entity.Room{
		ID:          uuid.New().String(),
		WarehouseID: req.WarehouseID,
		RoomCode:    req.RoomCode,
		Name:        req.Name,
		TempMinC:    req.TempMinC,
		TempMaxC:    req.TempMaxC,
		Status:      status,
		CreatedBy:   userID,
		UpdatedBy:   userID,
	}
	if err := s.roomRepo.Create(room); err != nil {
		return nil, fmt.Errorf("创建冷藏间失败: %w", err)
	}
	s.clearCache(ctx)
	return room, nil
}

func (s *WarehouseService) UpdateRoom(ctx context.Context, id string, req RoomRequest, userID string) (*entity.Room, error) {
	room, err := s.roomRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("冷藏间 %s: %w", id, translateNotFound(err))
	}
	room.RoomCode = req.RoomCode
	room.Name = req.Name
	room.TempMinC = req.TempMinC
	room.TempMaxC = req.TempMaxC
	if req.Status != "" {
		room.Status = req.Status
	}
	room.UpdatedBy = userID
	if err := s.roomRepo.Update(room); err != nil {
		return nil, fmt.Errorf("更新冷藏间失败: %w", err)
	}
	s.clearCache(ctx)
	return room, nil
}

func (s *WarehouseService) DeleteRoom(ctx context.Context, id string) error {
	if _, err := s.roomRepo.GetByID(id); err != nil {
		return fmt.Errorf("冷藏间 %s: %w", id, translateNotFound(err))
	}
	if err := s.roomRepo.Delete(id); err != nil {
		return fmt.Errorf("删除冷藏间失败: %w", err)
	}
	s.clearCache(ctx)
	return nil
}

func (s *WarehouseService) ListRooms(warehouseID string) ([]entity.Room, error) {
	return s.roomRepo.ListByWarehouse(warehouseID)
}

type LocationRequest struct {
	RoomID       string  `json:"room_id" binding:"required"`
	LocationCode string  `json:"location_code" binding:"required"`
	Name         string  `json:"name"`
	Capacity     float64 `json:"capacity"`
	Status       string  `json:"status"`
}

func (s *WarehouseService) CreateLocation(ctx context.Context, req LocationRequest, userID string) (*entity.Location, error) {
	if _, err := s.roomRepo.GetByID(req.RoomID); err != nil {
		return nil, fmt.Errorf("冷藏间 %s: %w", req.RoomID, translateNotFound(err))
	}

	status := req.Status
	if status == "" {
		status = entity.WarehouseStatusActive
	}
	location := &entity.Location{
		ID:           uuid.New().String(),
		RoomID:       req.RoomID,
		LocationCode: req.LocationCode,
		Name:         req.Name,
		Capacity:     req.Capacity,
		Status:       status,
		CreatedBy:    userID,
		UpdatedBy:    userID,
	}
	if err := s.locationRepo.Create(location); err != nil {
		return nil, fmt.Errorf("创建库位失败: %w", err)
	}
	s.clearCache(ctx)
	return location, nil
}

func (s *WarehouseService) UpdateLocation(ctx context.Context, id string, req LocationRequest, userID string) (*entity.Location, error) {
	location, err := s.locationRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("库位 %s: %w", id, translateNotFound(err))
	}
	location.LocationCode = req.LocationCode
	location.Name = req.Name
	location.Capacity = req.Capacity
	if req.Status != "" {
		location.Status = req.Status
	}
	location.UpdatedBy = userID
	if err := s.locationRepo.Update(location); err != nil {
		return nil, fmt.Errorf("更新库位失败: %w", err)
	}
	s.clearCache(ctx)
	return location, nil
}

func (s *WarehouseService) DeleteLocation(ctx context.Context, id string) error {
	if _, err := s.locationRepo.GetByID(id); err != nil {
		return fmt.Errorf("库位 %s: %w", id, translateNotFound(err))
	}
	if err := s.locationRepo.Delete(id); err != nil {
		return fmt.Errorf("删除库位失败: %w", err)
	}
	s.clearCache(ctx)
	return nil
}

func (s *WarehouseService) ListLocations(roomID string) ([]entity.Location, error) {
	return s.locationRepo.ListByRoom(roomID)
}

func (s *WarehouseService) clearCache(ctx context.Context) {
	if s.rdb != nil {
		s.rdb.Del(ctx, "wmsc:warehouses:list")
	}
}
