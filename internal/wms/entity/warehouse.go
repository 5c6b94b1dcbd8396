package entity

import (
	"time"
)

// WarehouseStatus 仓库状态
const (
	WarehouseStatusActive   = "ACTIVE"
	WarehouseStatusInactive = "INACTIVE"
)

// Warehouse 冷库仓库
type Warehouse struct {
	ID            string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	WarehouseCode string     `json:"warehouse_code" gorm:"size:50;not null;uniqueIndex"`
	Name          string     `json:"name" gorm:"size:100;not null"`
	Address       string     `json:"address" gorm:"size:500"`
	Status        string     `json:"status" gorm:"size:20;not null;default:ACTIVE"`
	Notes         string     `json:"notes" gorm:"type:text"`
	CreatedBy     string     `json:"created_by" gorm:"size:64"`
	UpdatedBy     string     `json:"updated_by" gorm:"size:64"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at" gorm:"index"`

	Rooms []Room `json:"rooms,omitempty" gorm:"foreignKey:WarehouseID"`
}

func (Warehouse) TableName() string {
	return "wms_warehouses"
}

// Room 冷藏间（温区）
type Room struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	WarehouseID string     `json:"warehouse_id" gorm:"type:uuid;not null;index"`
	RoomCode    string     `json:"room_code" gorm:"size:50;not null"`
	Name        string     `json:"name" gorm:"size:100;not null"`
	TempMinC    float64    `json:"temp_min_c" gorm:"type:decimal(6,2);default:0"` // 温区下限
	TempMaxC    float64    `json:"temp_max_c" gorm:"type:decimal(6,2);default:0"` // 温区上限
	Status      string     `json:"status" gorm:"size:20;not null;default:ACTIVE"`
	CreatedBy   string     `json:"created_by" gorm:"size:64"`
	UpdatedBy   string     `json:"updated_by" gorm:"size:64"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at" gorm:"index"`

	Warehouse *Warehouse `json:"warehouse,omitempty" gorm:"foreignKey:WarehouseID"`
	Locations []Location `json:"locations,omitempty" gorm:"foreignKey:RoomID"`
}

func (Room) TableName() string {
	return "wms_rooms"
}

// Location 库位
type Location struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	RoomID       string     `json:"room_id" gorm:"type:uuid;not null;index"`
	LocationCode string     `json:"location_code" gorm:"size:50;not null"`
	Name         string     `json:"name" gorm:"size:100"`
	Capacity     float64    `json:"capacity" gorm:"type:decimal(12,4);default:0"` // 托盘容量
	Status       string     `json:"status" gorm:"size:20;not null;default:ACTIVE"`
	CreatedBy    string     `json:"created_by" gorm:"size:64"`
	UpdatedBy    string     `json:"updated_by" gorm:"size:64"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at" gorm:"index"`

	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

func (Location) TableName() string {
	return "wms_locations"
}
