package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/ewceniza9009/wmsc-sub000/internal/wms/entity"
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/repository"
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/testutil"
)

func setupTransferTest(t *testing.T) (*gorm.DB, *TransferService) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svc := NewTransferService(repos.Transfer, repos.Warehouse)

	testutil.SeedWarehouse(t, db, testWarehouseID, "WH001", "一号冷库")
	testutil.SeedWarehouse(t, db, testWarehouse2ID, "WH002", "二号冷库")

	return db, svc
}

func newTransferRequest(no string) CreateTransferRequest {
	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	return CreateTransferRequest{
		TransferNo:       no,
		WarehouseID:      testWarehouseID,
		ToWarehouseID:    testWarehouse2ID,
		TransferDate:     &date,
		Particulars:      "月度移库",
		ManualTransferNo: no,
	}
}

func newTransferLine(palletID string, quantity float64) TransferLinePayload {
	return TransferLinePayload{
		PalletID:     palletID,
		ToLocationID: testLocationID,
		MaterialID:   testMaterialID,
		UnitID:       testUnitID,
		Quantity:     quantity,
		Weight:       quantity * 10,
	}
}

func TestCreateTransfer(t *testing.T) {
	_, svc := setupTransferTest(t)

	transfer, err := svc.Create(context.Background(), newTransferRequest("TRF-001"), "tester")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if transfer.TransferNo != "TRF-001" {
		t.Errorf("TransferNo = %s, want TRF-001", transfer.TransferNo)
	}
}

// 移库单号不查重，同号单据可以并存（与入库单口径不同）
func TestCreateTransferAllowsDuplicateNo(t *testing.T) {
	_, svc := setupTransferTest(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, newTransferRequest("TRF-DUP"), "tester"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(ctx, newTransferRequest("TRF-DUP"), "tester"); err != nil {
		t.Fatalf("Create with duplicate no failed: %v", err)
	}
}

func TestCreateTransferUnknownWarehouse(t *testing.T) {
	_, svc := setupTransferTest(t)

	req := newTransferRequest("TRF-002")
	req.ToWarehouseID = missingID
	_, err := svc.Create(context.Background(), req, "tester")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// 每次保存整单重建明细：行ID全部换新，未提交的行消失
func TestUpdateTransferReplacesLines(t *testing.T) {
	db, svc := setupTransferTest(t)
	ctx := context.Background()

	transfer, err := svc.Create(ctx, newTransferRequest("TRF-003"), "tester")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	update := UpdateTransferRequest{
		TransferNo:       transfer.TransferNo,
		WarehouseID:      transfer.WarehouseID,
		ToWarehouseID:    transfer.ToWarehouseID,
		TransferDate:     transfer.TransferDate,
		Particulars:      transfer.Particulars,
		ManualTransferNo: transfer.ManualTransferNo,
		Lines: []TransferLinePayload{
			newTransferLine(testPallet1ID, 10),
			newTransferLine(testPallet2ID, 20),
		},
	}
	saved, err := svc.Update(ctx, transfer.ID, update, "tester")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(saved.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(saved.Lines))
	}

	firstIDs := make(map[string]bool)
	for _, l := range saved.Lines {
		firstIDs[l.ID] = true
	}

	// 第二次保存：一行原值重提，一行换托盘
	update.Lines = []TransferLinePayload{
		newTransferLine(testPallet1ID, 10),
		newTransferLine(testPallet3ID, 30),
	}
	saved, err = svc.Update(ctx, transfer.ID, update, "tester")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(saved.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(saved.Lines))
	}
	pallets := make(map[string]bool)
	for _, l := range saved.Lines {
		if firstIDs[l.ID] {
			t.Errorf("line id %s survived rebuild", l.ID)
		}
		pallets[l.PalletID] = true
	}
	if !pallets[testPallet1ID] || !pallets[testPallet3ID] || pallets[testPallet2ID] {
		t.Errorf("line pallets = %v, want first and third pallets only", pallets)
	}

	var count int64
	db.Model(&entity.TransferLine{}).Where("transfer_id = ?", transfer.ID).Count(&count)
	if count != 2 {
		t.Errorf("line rows = %d, want 2", count)
	}
}

// 空明细保存清空整单
func TestUpdateTransferWithEmptyLines(t *testing.T) {
	db, svc := setupTransferTest(t)
	ctx := context.Background()

	transfer, err := svc.Create(ctx, newTransferRequest("TRF-004"), "tester")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	update := UpdateTransferRequest{
		TransferNo:       transfer.TransferNo,
		WarehouseID:      transfer.WarehouseID,
		ToWarehouseID:    transfer.ToWarehouseID,
		TransferDate:     transfer.TransferDate,
		Particulars:      transfer.Particulars,
		ManualTransferNo: transfer.ManualTransferNo,
		Lines:            []TransferLinePayload{newTransferLine(testPallet1ID, 10)},
	}
	if _, err := svc.Update(ctx, transfer.ID, update, "tester"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	update.Lines = nil
	saved, err := svc.Update(ctx, transfer.ID, update, "tester")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(saved.Lines) != 0 {
		t.Errorf("lines = %d, want 0", len(saved.Lines))
	}
	var count int64
	db.Model(&entity.TransferLine{}).Where("transfer_id = ?", transfer.ID).Count(&count)
	if count != 0 {
		t.Errorf("line rows = %d, want 0", count)
	}
}

func TestDeleteTransferRemovesLines(t *testing.T) {
	db, svc := setupTransferTest(t)
	ctx := context.Background()

	transfer, err := svc.Create(ctx, newTransferRequest("TRF-005"), "tester")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	update := UpdateTransferRequest{
		TransferNo:       transfer.TransferNo,
		WarehouseID:      transfer.WarehouseID,
		ToWarehouseID:    transfer.ToWarehouseID,
		TransferDate:     transfer.TransferDate,
		Particulars:      transfer.Particulars,
		ManualTransferNo: transfer.ManualTransferNo,
		Lines:            []TransferLinePayload{newTransferLine(testPallet1ID, 10)},
	}
	if _, err := svc.Update(ctx, transfer.ID, update, "tester"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if err := svc.Delete(ctx, transfer.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := svc.Get(ctx, transfer.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete err = %v, want ErrNotFound", err)
	}
	var count int64
	db.Model(&entity.TransferLine{}).Where("transfer_id = ?", transfer.ID).Count(&count)
	if count != 0 {
		t.Errorf("orphan lines = %d, want 0", count)
	}
}
