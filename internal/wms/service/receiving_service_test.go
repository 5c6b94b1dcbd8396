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

func setupReceivingTest(t *testing.T) (*gorm.DB, *ReceivingService) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	allocator := NewCodeAllocator(repos.Receiving, repos.Pallet, nil, false)
	svc := NewReceivingService(repos.Receiving, repos.Pallet, repos.Customer, allocator)

	testutil.SeedCustomer(t, db, testCustomerID, "CUST001", "测试客户")
	testutil.SeedWarehouse(t, db, testWarehouseID, "WH001", "一号冷库")
	testutil.SeedMaterial(t, db, testMaterialID, "MAT001", "冻鸡腿")
	testutil.SeedUnit(t, db, testUnitID, "KG", "千克")

	return db, svc
}

func newReceivingRequest(no string) CreateReceivingRequest {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	return CreateReceivingRequest{
		ReceivingNo:   no,
		WarehouseID:   testWarehouseID,
		CustomerID:    testCustomerID,
		ReceivingDate: &date,
		ReceivingTime: "08:30",
		TruckNo:       "沪A12345",
	}
}

func TestCreateReceivingAutoNumber(t *testing.T) {
	_, svc := setupReceivingTest(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, newReceivingRequest(entity.CodeAuto), "tester")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if first.ReceivingNo != "SRNU000000001" {
		t.Errorf("ReceivingNo = %s, want SRNU000000001", first.ReceivingNo)
	}

	second, err := svc.Create(ctx, newReceivingRequest(entity.CodeAuto), "tester")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if second.ReceivingNo != "SRNU000000002" {
		t.Errorf("ReceivingNo = %s, want SRNU000000002", second.ReceivingNo)
	}
}

func TestCreateReceivingDuplicateNo(t *testing.T) {
	_, svc := setupReceivingTest(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, newReceivingRequest("SRNU000000100"), "tester"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err := svc.Create(ctx, newReceivingRequest("SRNU000000100"), "tester")
	if !errors.Is(err, ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestCreateReceivingUnknownCustomer(t *testing.T) {
	_, svc := setupReceivingTest(t)

	req := newReceivingRequest(entity.CodeAuto)
	req.CustomerID = missingID
	_, err := svc.Create(context.Background(), req, "tester")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func newUpdateRequest(receiving *entity.Receiving, pallets []PalletPayload) UpdateReceivingRequest {
	return UpdateReceivingRequest{
		ReceivingNo:   receiving.ReceivingNo,
		WarehouseID:   receiving.WarehouseID,
		CustomerID:    receiving.CustomerID,
		ReceivingDate: receiving.ReceivingDate,
		ReceivingTime: receiving.ReceivingTime,
		TruckNo:       receiving.TruckNo,
		TotalQuantity: receiving.TotalQuantity,
		TotalWeight:   receiving.TotalWeight,
		Pallets:       pallets,
	}
}

func newPalletPayload(quantity, gross float64) PalletPayload {
	return PalletPayload{
		PalletNo:          entity.CodeAuto,
		MaterialID:        testMaterialID,
		UnitID:            testUnitID,
		Quantity:          quantity,
		GrossWeight:       gross,
		PackageTareWeight: 2,
		PalletTareWeight:  20,
	}
}

// 批量保存按托盘ID集合对账：带ID更新，不带ID新增，缺席删除
func TestUpdateReceivingReconcilesPallets(t *testing.T) {
	_, svc := setupReceivingTest(t)
	ctx := context.Background()

	receiving, err := svc.Create(ctx, newReceivingRequest(entity.CodeAuto), "tester")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// 首次保存三托
	saved, err := svc.Update(ctx, receiving.ID, newUpdateRequest(receiving, []PalletPayload{
		newPalletPayload(10, 100),
		newPalletPayload(20, 200),
		newPalletPayload(30, 300),
	}), "tester")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(saved.Pallets) != 3 {
		t.Fatalf("pallets = %d, want 3", len(saved.Pallets))
	}

	// 第二次：留第一托改数量，丢弃第二第三托，再加一托新的
	kept := saved.Pallets[0]
	keptPayload := newPalletPayload(99, kept.GrossWeight)
	keptPayload.ID = kept.ID
	keptPayload.PalletNo = kept.PalletNo

	saved, err = svc.Update(ctx, receiving.ID, newUpdateRequest(receiving, []PalletPayload{
		keptPayload,
		newPalletPayload(40, 400),
	}), "tester")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(saved.Pallets) != 2 {
		t.Fatalf("pallets = %d, want 2", len(saved.Pallets))
	}

	byID := make(map[string]entity.Pallet)
	for _, p := range saved.Pallets {
		byID[p.ID] = p
	}
	updated, ok := byID[kept.ID]
	if !ok {
		t.Fatalf("kept pallet %s missing after reconcile", kept.ID)
	}
	if updated.Quantity != 99 {
		t.Errorf("kept pallet quantity = %v, want 99", updated.Quantity)
	}
	for _, p := range saved.Pallets {
		if p.ID == kept.ID {
			continue
		}
		if p.Quantity != 40 {
			t.Errorf("new pallet quantity = %v, want 40", p.Quantity)
		}
		if p.PalletNo == kept.PalletNo {
			t.Errorf("new pallet reused pallet no %s", p.PalletNo)
		}
	}
}

// 同一批多个自动托盘：插入前库内最大号不变，号必须在批内递推，不能重号
func TestUpdateReceivingAllocatesDistinctAutoNumbers(t *testing.T) {
	_, svc := setupReceivingTest(t)
	ctx := context.Background()

	receiving, err := svc.Create(ctx, newReceivingRequest(entity.CodeAuto), "tester")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	saved, err := svc.Update(ctx, receiving.ID, newUpdateRequest(receiving, []PalletPayload{
		newPalletPayload(10, 100),
		newPalletPayload(20, 200),
		newPalletPayload(30, 300),
	}), "tester")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(saved.Pallets) != 3 {
		t.Fatalf("pallets = %d, want 3", len(saved.Pallets))
	}

	// 读取按托盘号升序
	want := []string{"PALT000000001", "PALT000000002", "PALT000000003"}
	for i, p := range saved.Pallets {
		if p.PalletNo != want[i] {
			t.Errorf("pallet %d no = %s, want %s", i, p.PalletNo, want[i])
		}
	}
}

// 对账更新保留托盘时不得抹掉创建审计字段
func TestUpdateReceivingPreservesPalletAudit(t *testing.T) {
	db, svc := setupReceivingTest(t)
	ctx := context.Background()

	receiving, err := svc.Create(ctx, newReceivingRequest(entity.CodeAuto), "alice")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	saved, err := svc.Update(ctx, receiving.ID, newUpdateRequest(receiving, []PalletPayload{
		newPalletPayload(10, 100),
	}), "alice")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	var before entity.Pallet
	if err := db.Where("id = ?", saved.Pallets[0].ID).First(&before).Error; err != nil {
		t.Fatalf("load pallet failed: %v", err)
	}
	if before.CreatedBy != "alice" || before.CreatedAt.IsZero() {
		t.Fatalf("seed audit = (%s, %v), want alice and non-zero time", before.CreatedBy, before.CreatedAt)
	}

	keptPayload := newPalletPayload(55, before.GrossWeight)
	keptPayload.ID = before.ID
	keptPayload.PalletNo = before.PalletNo
	if _, err := svc.Update(ctx, receiving.ID, newUpdateRequest(receiving, []PalletPayload{
		keptPayload,
	}), "bob"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	var after entity.Pallet
	if err := db.Where("id = ?", before.ID).First(&after).Error; err != nil {
		t.Fatalf("load pallet failed: %v", err)
	}
	if after.CreatedBy != "alice" {
		t.Errorf("CreatedBy = %s, want alice", after.CreatedBy)
	}
	if !after.CreatedAt.Equal(before.CreatedAt) {
		t.Errorf("CreatedAt changed: %v -> %v", before.CreatedAt, after.CreatedAt)
	}
	if after.UpdatedBy != "bob" {
		t.Errorf("UpdatedBy = %s, want bob", after.UpdatedBy)
	}
	if after.Quantity != 55 {
		t.Errorf("Quantity = %v, want 55", after.Quantity)
	}
}

// 单头汇总照提交值落库，不按托盘明细重算
func TestUpdateReceivingKeepsSubmittedTotals(t *testing.T) {
	_, svc := setupReceivingTest(t)
	ctx := context.Background()

	receiving, err := svc.Create(ctx, newReceivingRequest(entity.CodeAuto), "tester")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	req := newUpdateRequest(receiving, []PalletPayload{newPalletPayload(10, 100)})
	req.TotalQuantity = 777
	req.TotalWeight = 888

	saved, err := svc.Update(ctx, receiving.ID, req, "tester")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if saved.TotalQuantity != 777 || saved.TotalWeight != 888 {
		t.Errorf("totals = (%v, %v), want (777, 888)", saved.TotalQuantity, saved.TotalWeight)
	}
}

// 批量保存整批一个事务：批内两托撞号触发唯一索引，整批回滚
func TestUpdateReceivingRollsBackOnDuplicatePalletNo(t *testing.T) {
	db, svc := setupReceivingTest(t)
	ctx := context.Background()

	receiving, err := svc.Create(ctx, newReceivingRequest(entity.CodeAuto), "tester")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	saved, err := svc.Update(ctx, receiving.ID, newUpdateRequest(receiving, []PalletPayload{
		newPalletPayload(10, 100),
	}), "tester")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(saved.Pallets) != 1 {
		t.Fatalf("pallets = %d, want 1", len(saved.Pallets))
	}

	// 批内两条新托盘用同一个显式号。逐条查重都通过（号在库里不存在），
	// 事务内第二条插入命中唯一索引，整批必须回滚。
	dup1 := newPalletPayload(50, 500)
	dup1.PalletNo = "PALT000000999"
	dup2 := newPalletPayload(60, 600)
	dup2.PalletNo = "PALT000000999"

	_, err = svc.Update(ctx, receiving.ID, newUpdateRequest(receiving, []PalletPayload{
		dup1,
		dup2,
	}), "tester")
	if err == nil {
		t.Fatal("Update should fail on duplicate pallet no in batch")
	}

	var count int64
	db.Model(&entity.Pallet{}).Where("receiving_id = ?", receiving.ID).Count(&count)
	if count != 1 {
		t.Errorf("pallet count after rollback = %d, want 1", count)
	}
	var leaked int64
	db.Model(&entity.Pallet{}).Where("pallet_no = ?", "PALT000000999").Count(&leaked)
	if leaked != 0 {
		t.Errorf("leaked pallets = %d, want 0", leaked)
	}
}

func TestDeleteReceivingRemovesPallets(t *testing.T) {
	db, svc := setupReceivingTest(t)
	ctx := context.Background()

	receiving, err := svc.Create(ctx, newReceivingRequest(entity.CodeAuto), "tester")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Update(ctx, receiving.ID, newUpdateRequest(receiving, []PalletPayload{
		newPalletPayload(10, 100),
		newPalletPayload(20, 200),
	}), "tester"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if err := svc.Delete(ctx, receiving.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := svc.Get(ctx, receiving.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete err = %v, want ErrNotFound", err)
	}
	var count int64
	db.Model(&entity.Pallet{}).Where("receiving_id = ?", receiving.ID).Count(&count)
	if count != 0 {
		t.Errorf("orphan pallets = %d, want 0", count)
	}
}
