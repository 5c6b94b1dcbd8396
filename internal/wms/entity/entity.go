package entity

import "gorm.io/gorm"

// AutoMigrate 自动迁移所有WMS表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// 基础数据
		&Account{},
		&Customer{},
		&Material{},
		&Unit{},
		&Warehouse{},
		&Room{},
		&Location{},

		// 入库
		&Receiving{},
		&Pallet{},
		&ReceivingAttachment{},

		// 移库
		&Transfer{},
		&TransferLine{},
	)
}
