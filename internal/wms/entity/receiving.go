package entity

import (
	"time"
)

// 单号前缀与位宽
const (
	ReceivingCodePrefix = "SRNU"
	PalletCodePrefix    = "PALT"
	CodeDigitWidth      = 9
)

// CodeAuto 单号字段的自动生成哨兵值
const CodeAuto = "NA"

// Receiving 入库单（收货单头）
// TotalQuantity/TotalWeight 为录入汇总口径，写路径不会按托盘重算
type Receiving struct {
	ID            string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ReceivingNo   string     `json:"receiving_no" gorm:"size:50;not null;uniqueIndex"`
	WarehouseID   string     `json:"warehouse_id" gorm:"type:uuid;not null;index"`
	CustomerID    string     `json:"customer_id" gorm:"type:uuid;not null;index"`
	ReceivingDate *time.Time `json:"receiving_date" gorm:"not null"`
	ReceivingTime string     `json:"receiving_time" gorm:"size:10;not null"`
	TruckNo       string     `json:"truck_no" gorm:"size:50"`
	ContainerNo   string     `json:"container_no" gorm:"size:50"`
	TotalQuantity float64    `json:"total_quantity" gorm:"type:decimal(12,4);default:0"`
	TotalWeight   float64    `json:"total_weight" gorm:"type:decimal(12,4);default:0"`
	IsLocked      bool       `json:"is_locked" gorm:"default:false"` // 仅存储，写路径未做锁校验
	Notes         string     `json:"notes" gorm:"type:text"`
	CreatedBy     string     `json:"created_by" gorm:"size:64"`
	UpdatedBy     string     `json:"updated_by" gorm:"size:64"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at" gorm:"index"`

	Warehouse *Warehouse `json:"warehouse,omitempty" gorm:"foreignKey:WarehouseID"`
	Customer  *Customer  `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Pallets   []Pallet   `json:"pallets,omitempty" gorm:"foreignKey:ReceivingID"`
}

func (Receiving) TableName() string {
	return "wms_receivings"
}

// Pallet 托盘
// NetWeight = max(0, GrossWeight - PackageTareWeight - PalletTareWeight)，由服务层派生
type Pallet struct {
	ID                string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ReceivingID       string     `json:"receiving_id" gorm:"type:uuid;not null;index"`
	PalletNo          string     `json:"pallet_no" gorm:"size:50;not null;uniqueIndex"`
	ManualPalletNo    string     `json:"manual_pallet_no" gorm:"size:50"`
	MaterialID        string     `json:"material_id" gorm:"type:uuid;not null;index"`
	UnitID            string     `json:"unit_id" gorm:"type:uuid;not null"`
	Quantity          float64    `json:"quantity" gorm:"type:decimal(12,4);not null"`
	LocationID        *string    `json:"location_id" gorm:"type:uuid;index"` // 上架前为空
	BatchNo           string     `json:"batch_no" gorm:"size:50"`
	BoxNo             string     `json:"box_no" gorm:"size:50"`
	VendorBatchNo     string     `json:"vendor_batch_no" gorm:"size:50"`
	ManufactureDate   *time.Time `json:"manufacture_date"`
	ExpiryDate        *time.Time `json:"expiry_date"`
	AlertLeadDays     int        `json:"alert_lead_days" gorm:"default:0"` // 到期预警提前天数
	GrossWeight       float64    `json:"gross_weight" gorm:"type:decimal(12,4);default:0"`
	PackageTareWeight float64    `json:"package_tare_weight" gorm:"type:decimal(12,4);default:0"`
	PalletTareWeight  float64    `json:"pallet_tare_weight" gorm:"type:decimal(12,4);default:0"`
	NetWeight         float64    `json:"net_weight" gorm:"type:decimal(12,4);default:0"`
	Barcode           string     `json:"barcode" gorm:"size:200"`
	IsLocked          bool       `json:"is_locked" gorm:"default:false"`
	IsCancelled       bool       `json:"is_cancelled" gorm:"default:false"`
	CreatedBy         string     `json:"created_by" gorm:"size:64"`
	UpdatedBy         string     `json:"updated_by" gorm:"size:64"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	DeletedAt         *time.Time `json:"deleted_at" gorm:"index"`

	Receiving *Receiving `json:"receiving,omitempty" gorm:"foreignKey:ReceivingID"`
	Material  *Material  `json:"material,omitempty" gorm:"foreignKey:MaterialID"`
	Unit      *Unit      `json:"unit,omitempty" gorm:"foreignKey:UnitID"`
	Location  *Location  `json:"location,omitempty" gorm:"foreignKey:LocationID"`
}

func (Pallet) TableName() string {
	return "wms_pallets"
}

// NetWeightOf 计算净重，任意符号组合下不为负
func NetWeightOf(gross, packageTare, palletTare float64) float64 {
	net := gross - packageTare - palletTare
	if net < 0 {
		return 0
	}
	return net
}

// ReceivingAttachment 入库单附件（送货单、照片等，对象存储落 MinIO）
type ReceivingAttachment struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ReceivingID string     `json:"receiving_id" gorm:"type:uuid;not null;index"`
	ObjectKey   string     `json:"object_key" gorm:"size:500;not null"`
	FileName    string     `json:"file_name" gorm:"size:200;not null"`
	Size        int64      `json:"size" gorm:"default:0"`
	ContentType string     `json:"content_type" gorm:"size:100"`
	CreatedBy   string     `json:"created_by" gorm:"size:64"`
	CreatedAt   time.Time  `json:"created_at"`
	DeletedAt   *time.Time `json:"deleted_at" gorm:"index"`
}

func (ReceivingAttachment) TableName() string {
	return "wms_receiving_attachments"
}
