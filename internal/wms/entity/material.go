package entity

import (
	"time"
)

// MaterialStatus 物料状态
const (
	MaterialStatusActive   = "ACTIVE"
	MaterialStatusInactive = "INACTIVE"
)

// Material 物料（存货品类）
// MaterialCode 为外部编号，托盘条码会拼入该编号
type Material struct {
	ID            string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	MaterialCode  string     `json:"material_code" gorm:"size:50;not null;uniqueIndex"`
	Name          string     `json:"name" gorm:"size:200;not null"`
	Category      string     `json:"category" gorm:"size:50"`
	DefaultUnitID string     `json:"default_unit_id" gorm:"type:uuid"`
	StorageTempC  float64    `json:"storage_temp_c" gorm:"type:decimal(6,2);default:0"` // 建议存储温度
	Status        string     `json:"status" gorm:"size:20;not null;default:ACTIVE"`
	Notes         string     `json:"notes" gorm:"type:text"`
	CreatedBy     string     `json:"created_by" gorm:"size:64"`
	UpdatedBy     string     `json:"updated_by" gorm:"size:64"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at" gorm:"index"`

	DefaultUnit *Unit `json:"default_unit,omitempty" gorm:"foreignKey:DefaultUnitID"`
}

func (Material) TableName() string {
	return "wms_materials"
}

// Unit 计量单位
type Unit struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UnitCode  string     `json:"unit_code" gorm:"size:20;not null;uniqueIndex"`
	Name      string     `json:"name" gorm:"size:50;not null"`
	CreatedBy string     `json:"created_by" gorm:"size:64"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at" gorm:"index"`
}

func (Unit) TableName() string {
	return "wms_units"
}
