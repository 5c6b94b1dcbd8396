package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"

	"github.com/ewceniza9009/wmsc-sub000/internal/config"
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/repository"
)

// Services 服务集合
type Services struct {
	Account    *AccountService
	Customer   *CustomerService
	Material   *MaterialService
	Unit       *UnitService
	Warehouse  *WarehouseService
	Receiving  *ReceivingService
	Pallet     *PalletService
	Intake     *IntakeService
	Transfer   *TransferService
	Report     *ReportService
	Attachment *AttachmentService
}

// NewServices 创建服务集合
func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config) *Services {
	// 初始化MinIO客户端
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			// MinIO 不可用时附件功能降级，其余服务照常
			minioClient = nil
		}
	}

	allocator := NewCodeAllocator(repos.Receiving, repos.Pallet, rdb, cfg.Sequence.Hardened)

	palletSvc := NewPalletService(repos.Pallet, repos.Receiving, repos.Material, repos.Unit, allocator)

	return &Services{
		Account:    NewAccountService(repos.Account, rdb),
		Customer:   NewCustomerService(repos.Customer, rdb),
		Material:   NewMaterialService(repos.Material, rdb),
		Unit:       NewUnitService(repos.Unit),
		Warehouse:  NewWarehouseService(repos.Warehouse, repos.Room, repos.Location, rdb),
		Receiving:  NewReceivingService(repos.Receiving, repos.Pallet, repos.Customer, allocator),
		Pallet:     palletSvc,
		Intake:     NewIntakeService(repos.Receiving, repos.Material, palletSvc),
		Transfer:   NewTransferService(repos.Transfer, repos.Warehouse),
		Report:     NewReportService(repos.Receiving, repos.Pallet),
		Attachment: NewAttachmentService(repos.Receiving, minioClient, cfg.MinIO.Bucket),
	}
}
