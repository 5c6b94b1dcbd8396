package repository

import "gorm.io/gorm"

// Repositories WMS 仓库集合
type Repositories struct {
	Account   *AccountRepository
	Customer  *CustomerRepository
	Material  *MaterialRepository
	Unit      *UnitRepository
	Warehouse *WarehouseRepository
	Room      *RoomRepository
	Location  *LocationRepository
	Receiving *ReceivingRepository
	Pallet    *PalletRepository
	Transfer  *TransferRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Account:   NewAccountRepository(db),
		Customer:  NewCustomerRepository(db),
		Material:  NewMaterialRepository(db),
		Unit:      NewUnitRepository(db),
		Warehouse: NewWarehouseRepository(db),
		Room:      NewRoomRepository(db),
		Location:  NewLocationRepository(db),
		Receiving: NewReceivingRepository(db),
		Pallet:    NewPalletRepository(db),
		Transfer:  NewTransferRepository(db),
	}
}
