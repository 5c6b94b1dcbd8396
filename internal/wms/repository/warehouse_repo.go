package repository

import (
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/entity"
	"gorm.io/gorm"
)

type WarehouseRepository struct {
	db *gorm.DB
}

func NewWarehouseRepository(db *gorm.DB) *WarehouseRepository {
	return &WarehouseRepository{db: db}
}

func (r *WarehouseRepository) Create(warehouse *entity.Warehouse) error {
	return r.db.Create(warehouse).Error
}

func (r *WarehouseRepository) GetByID(id string) (*entity.Warehouse, error) {
	var warehouse entity.Warehouse
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&warehouse).Error
	if err != nil {
		return nil, err
	}
	return &warehouse, nil
}

// GetWithRooms 带冷藏间的仓库详情
func (r *WarehouseRepository) GetWithRooms(id string) (*entity.Warehouse, error) {
	var warehouse entity.Warehouse
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).
		Preload("Rooms", "deleted_at IS NULL").
		Preload("Rooms.Locations", "deleted_at IS NULL").
		First(&warehouse).Error
	if err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (r *WarehouseRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Warehouse{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Count(&count).Error
	return count > 0, err
}

func (r *WarehouseRepository) Update(warehouse *entity.Warehouse) error {
	return r.db.Save(warehouse).Error
}

func (r *WarehouseRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&entity.Warehouse{}).Error
}

type WarehouseListParams struct {
	Status  string
	Keyword string
	Page    int
	Size    int
}

func (r *WarehouseRepository) List(params WarehouseListParams) ([]entity.Warehouse, int64, error) {
	query := r.db.Model(&entity.Warehouse{}).Where("deleted_at IS NULL")

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("name ILIKE ? OR warehouse_code ILIKE ?", kw, kw)
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

	var warehouses []entity.Warehouse
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).
		Limit(params.Size).
		Find(&warehouses).Error

	return warehouses, total, err
}

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(room *entity.Room) error {
	return r.db.Create(room).Error
}

func (r *RoomRepository) GetByID(id string) (*entity.Room, error) {
	var room entity.Room
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepository) Update(room *entity.Room) error {
	return r.db.Save(room).Error
}

func (r *RoomRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&entity.Room{}).Error
}

func (r *RoomRepository) ListByWarehouse(warehouseID string) ([]entity.Room, error) {
	var rooms []entity.Room
	err := r.db.Where("warehouse_id = ? AND deleted_at IS NULL", warehouseID).
		Order("room_code ASC").
		Find(&rooms).Error
	return rooms, err
}

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Create(location *entity.Location) error {
	return r.db.Create(location).Error
}

func (r *LocationRepository) GetByID(id string) (*entity.Location, error) {
	var location entity.Location
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&location).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *LocationRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Location{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Count(&count).Error
	return count > 0, err
}

func (r *LocationRepository) Update(location *entity.Location) error {
	return r.db.Save(location).Error
}

func (r *LocationRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&entity.Location{}).Error
}

func (r *LocationRepository) ListByRoom(roomID string) ([]entity.Location, error) {
	var locations []entity.Location
	err := r.db.Where("room_id = ? AND deleted_at IS NULL", roomID).
		Order("location_code ASC").
		Find(&locations).Error
	return locations, err
}
