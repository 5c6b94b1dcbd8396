package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/ewceniza9009/wmsc-sub000/internal/wms/entity"
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/repository"
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/testutil"
)

func setupIntakeTest(t *testing.T) (*gorm.DB, *IntakeService, *PalletService, string) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	allocator := NewCodeAllocator(repos.Receiving, repos.Pallet, nil, false)
	palletSvc := NewPalletService(repos.Pallet, repos.Receiving, repos.Material, repos.Unit, allocator)
	intakeSvc := NewIntakeService(repos.Receiving, repos.Material, palletSvc)

	testutil.SeedCustomer(t, db, testCustomerID, "CUST001", "测试客户")
	testutil.SeedWarehouse(t, db, testWarehouseID, "WH001", "一号冷库")
	testutil.SeedMaterial(t, db, testMaterialID, "MAT001", "冻鸡腿")
	testutil.SeedUnit(t, db, testUnitID, "KG", "千克")

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	receiving := &entity.Receiving{
		ID:            testReceivingID,
		ReceivingNo:   "SRNU000000001",
		WarehouseID:   testWarehouseID,
		CustomerID:    testCustomerID,
		ReceivingDate: &date,
		ReceivingTime: "08:30",
	}
	if err := db.Create(receiving).Error; err != nil {
		t.Fatalf("Failed to seed receiving: %v", err)
	}

	return db, intakeSvc, palletSvc, receiving.ID
}

func fillIntakeInfo(t *testing.T, svc *IntakeService, sessionID string) {
	t.Helper()
	if _, err := svc.SetInfo(sessionID, IntakeInfoRequest{
		MaterialID: testMaterialID,
		UnitID:     testUnitID,
		Quantity:   10,
	}); err != nil {
		t.Fatalf("SetInfo failed: %v", err)
	}
}

func TestIntakeHappyPath(t *testing.T) {
	db, svc, _, receivingID := setupIntakeTest(t)
	ctx := context.Background()

	session, err := svc.Start(ctx, receivingID)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if session.State != IntakeStateCollectInfo {
		t.Fatalf("State = %s, want %s", session.State, IntakeStateCollectInfo)
	}
	if session.Pallet.PalletNo != entity.CodeAuto {
		t.Errorf("initial PalletNo = %s, want %s", session.Pallet.PalletNo, entity.CodeAuto)
	}

	// 信息不全时不得推进，错误里点名缺失字段
	_, err = svc.Advance(ctx, session.ID)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Advance with empty info err = %v, want ErrValidation", err)
	}
	for _, field := range []string{"material_id", "quantity", "unit_id"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q missing field name %s", err.Error(), field)
		}
	}

	fillIntakeInfo(t, svc, session.ID)
	session, err = svc.Advance(ctx, session.ID)
	if err != nil {
		t.Fatalf("Advance to weighing failed: %v", err)
	}
	if session.State != IntakeStateWeighing {
		t.Fatalf("State = %s, want %s", session.State, IntakeStateWeighing)
	}

	// 毛重为零不得推进
	if _, err := svc.Advance(ctx, session.ID); !errors.Is(err, ErrValidation) {
		t.Fatalf("Advance without weights err = %v, want ErrValidation", err)
	}

	if _, err := svc.SetWeights(session.ID, IntakeWeighRequest{
		GrossWeight:       100,
		PackageTareWeight: 2,
		PalletTareWeight:  20,
	}); err != nil {
		t.Fatalf("SetWeights failed: %v", err)
	}
	session, err = svc.Advance(ctx, session.ID)
	if err != nil {
		t.Fatalf("Advance to barcode failed: %v", err)
	}
	if session.State != IntakeStateBarcode {
		t.Fatalf("State = %s, want %s", session.State, IntakeStateBarcode)
	}

	session, err = svc.Advance(ctx, session.ID)
	if err != nil {
		t.Fatalf("Advance to confirm failed: %v", err)
	}
	if session.State != IntakeStateConfirm {
		t.Fatalf("State = %s, want %s", session.State, IntakeStateConfirm)
	}

	parts := strings.Split(session.Pallet.Barcode, "-")
	if len(parts) != 5 {
		t.Fatalf("barcode %q has %d parts, want 5", session.Pallet.Barcode, len(parts))
	}
	if parts[0] != "SRNU000000001" {
		t.Errorf("barcode receiving no = %s, want SRNU000000001", parts[0])
	}
	if parts[1] != time.Now().Format("20060102") {
		t.Errorf("barcode date = %s, want %s", parts[1], time.Now().Format("20060102"))
	}
	if parts[3] != "MAT001" {
		t.Errorf("barcode material code = %s, want MAT001", parts[3])
	}
	if parts[4] != "78" {
		t.Errorf("barcode net weight = %s, want 78", parts[4])
	}

	// 确认态不能再推进
	if _, err := svc.Advance(ctx, session.ID); !errors.Is(err, ErrValidation) {
		t.Fatalf("Advance at confirm err = %v, want ErrValidation", err)
	}

	pallet, session, err := svc.Save(ctx, session.ID, "tester")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if pallet.PalletNo != "PALT000000001" {
		t.Errorf("PalletNo = %s, want PALT000000001", pallet.PalletNo)
	}
	if pallet.NetWeight != 78 {
		t.Errorf("NetWeight = %v, want 78", pallet.NetWeight)
	}
	if len(parts) == 5 && pallet.Barcode != strings.Join(parts, "-") {
		t.Errorf("saved barcode = %s, want %s", pallet.Barcode, strings.Join(parts, "-"))
	}

	// 保存后回到起点继续收下一托
	if session.State != IntakeStateCollectInfo {
		t.Errorf("State after save = %s, want %s", session.State, IntakeStateCollectInfo)
	}
	if session.SavedCount != 1 {
		t.Errorf("SavedCount = %d, want 1", session.SavedCount)
	}
	if session.Pallet.PalletNo != entity.CodeAuto {
		t.Errorf("PalletNo after save = %s, want %s", session.Pallet.PalletNo, entity.CodeAuto)
	}

	var count int64
	db.Model(&entity.Pallet{}).Where("receiving_id = ?", receivingID).Count(&count)
	if count != 1 {
		t.Errorf("pallet count = %d, want 1", count)
	}
}

// 条码进入确认态时生成一次，之后改称重不重算
func TestIntakeBarcodeComputedOnce(t *testing.T) {
	_, svc, _, receivingID := setupIntakeTest(t)
	ctx := context.Background()

	session, err := svc.Start(ctx, receivingID)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	fillIntakeInfo(t, svc, session.ID)
	if _, err := svc.Advance(ctx, session.ID); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if _, err := svc.SetWeights(session.ID, IntakeWeighRequest{GrossWeight: 100, PackageTareWeight: 2, PalletTareWeight: 20}); err != nil {
		t.Fatalf("SetWeights failed: %v", err)
	}
	if _, err := svc.Advance(ctx, session.ID); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	session, err = svc.Advance(ctx, session.ID)
	if err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	barcode := session.Pallet.Barcode
	if barcode == "" {
		t.Fatal("barcode not generated at confirm")
	}

	if _, err := svc.SetWeights(session.ID, IntakeWeighRequest{GrossWeight: 500, PackageTareWeight: 1, PalletTareWeight: 1}); err != nil {
		t.Fatalf("SetWeights failed: %v", err)
	}
	session, err = svc.Get(session.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if session.Pallet.Barcode != barcode {
		t.Errorf("barcode changed after reweigh: %s -> %s", barcode, session.Pallet.Barcode)
	}
}

// 保存失败时状态原地不动，可修正后重试
func TestIntakeSaveFailureKeepsState(t *testing.T) {
	_, svc, palletSvc, receivingID := setupIntakeTest(t)
	ctx := context.Background()

	// 先占用一个托盘号
	taken, err := palletSvc.Create(ctx, CreatePalletRequest{
		ReceivingID: receivingID,
		Pallet: PalletPayload{
			PalletNo:    "PALT000000700",
			MaterialID:  testMaterialID,
			UnitID:      testUnitID,
			Quantity:    5,
			GrossWeight: 50,
		},
	}, "tester")
	if err != nil {
		t.Fatalf("Create pallet failed: %v", err)
	}

	session, err := svc.Start(ctx, receivingID)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := svc.SetInfo(session.ID, IntakeInfoRequest{
		PalletNo:   taken.PalletNo,
		MaterialID: testMaterialID,
		UnitID:     testUnitID,
		Quantity:   10,
	}); err != nil {
		t.Fatalf("SetInfo failed: %v", err)
	}
	if _, err := svc.Advance(ctx, session.ID); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if _, err := svc.SetWeights(session.ID, IntakeWeighRequest{GrossWeight: 100}); err != nil {
		t.Fatalf("SetWeights failed: %v", err)
	}
	if _, err := svc.Advance(ctx, session.ID); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if _, err := svc.Advance(ctx, session.ID); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}

	_, _, err = svc.Save(ctx, session.ID, "tester")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("Save with taken pallet no err = %v, want ErrConflict", err)
	}

	session, err = svc.Get(session.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if session.State != IntakeStateConfirm {
		t.Errorf("State after failed save = %s, want %s", session.State, IntakeStateConfirm)
	}
	if session.SavedCount != 0 {
		t.Errorf("SavedCount = %d, want 0", session.SavedCount)
	}
}

// 非确认态不允许保存
func TestIntakeSaveBeforeConfirmRejected(t *testing.T) {
	_, svc, _, receivingID := setupIntakeTest(t)
	ctx := context.Background()

	session, err := svc.Start(ctx, receivingID)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, _, err := svc.Save(ctx, session.ID, "tester"); !errors.Is(err, ErrValidation) {
		t.Errorf("Save at collect info err = %v, want ErrValidation", err)
	}
}

// 取消没有任何落库副作用，会话随即不可见
func TestIntakeCancelNoSideEffects(t *testing.T) {
	db, svc, _, receivingID := setupIntakeTest(t)
	ctx := context.Background()

	session, err := svc.Start(ctx, receivingID)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	fillIntakeInfo(t, svc, session.ID)
	if _, err := svc.Advance(ctx, session.ID); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if _, err := svc.SetWeights(session.ID, IntakeWeighRequest{GrossWeight: 100}); err != nil {
		t.Fatalf("SetWeights failed: %v", err)
	}

	if err := svc.Cancel(session.ID); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	if _, err := svc.Get(session.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after cancel err = %v, want ErrNotFound", err)
	}
	var count int64
	db.Model(&entity.Pallet{}).Where("receiving_id = ?", receivingID).Count(&count)
	if count != 0 {
		t.Errorf("pallet count after cancel = %d, want 0", count)
	}
}

func TestIntakeStartUnknownReceiving(t *testing.T) {
	_, svc, _, _ := setupIntakeTest(t)

	_, err := svc.Start(context.Background(), missingID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
