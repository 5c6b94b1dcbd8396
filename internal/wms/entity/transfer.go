package entity

import (
	"time"
)

// Transfer 移库单（仓库间调拨单头）
type Transfer struct {
	ID               string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TransferNo       string     `json:"transfer_no" gorm:"size:50;not null;index"`
	WarehouseID      string     `json:"warehouse_id" gorm:"type:uuid;not null;index"`
	ToWarehouseID    string     `json:"to_warehouse_id" gorm:"type:uuid;not null;index"`
	TransferDate     *time.Time `json:"transfer_date" gorm:"not null"`
	Particulars      string     `json:"particulars" gorm:"size:500;not null"`
	ManualTransferNo string     `json:"manual_transfer_no" gorm:"size:50;not null"`
	IsLocked         bool       `json:"is_locked" gorm:"default:false"`
	CreatedBy        string     `json:"created_by" gorm:"size:64"`
	UpdatedBy        string     `json:"updated_by" gorm:"size:64"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	DeletedAt        *time.Time `json:"deleted_at" gorm:"index"`

	Warehouse   *Warehouse     `json:"warehouse,omitempty" gorm:"foreignKey:WarehouseID"`
	ToWarehouse *Warehouse     `json:"to_warehouse,omitempty" gorm:"foreignKey:ToWarehouseID"`
	Lines       []TransferLine `json:"lines,omitempty" gorm:"foreignKey:TransferID"`
}

func (Transfer) TableName() string {
	return "wms_transfers"
}

// TransferLine 移库单明细
// 每次保存整单重建，行ID不跨保存周期存续
type TransferLine struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TransferID   string    `json:"transfer_id" gorm:"type:uuid;not null;index"`
	PalletID     string    `json:"pallet_id" gorm:"type:uuid;not null;index"`
	ToLocationID string    `json:"to_location_id" gorm:"type:uuid;not null"`
	MaterialID   string    `json:"material_id" gorm:"type:uuid;not null"`
	UnitID       string    `json:"unit_id" gorm:"type:uuid;not null"`
	Quantity     float64   `json:"quantity" gorm:"type:decimal(12,4);not null"`
	Weight       float64   `json:"weight" gorm:"type:decimal(12,4);default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Transfer *Transfer `json:"transfer,omitempty" gorm:"foreignKey:TransferID"`
	Pallet   *Pallet   `json:"pallet,omitempty" gorm:"foreignKey:PalletID"`
}

func (TransferLine) TableName() string {
	return "wms_transfer_lines"
}
