package handler

import (
	"net/http"
	"testing"

	"github.com/ewceniza9009/wmsc-sub000/internal/wms/repository"
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/service"
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/testutil"
)

const (
	testCustomerID  = "00000000-0000-4000-8000-000000000001"
	testWarehouseID = "00000000-0000-4000-8000-000000000002"
	missingID       = "ffffffff-ffff-4fff-8fff-ffffffffffff"
)

func setupReceivingHandlerTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	allocator := service.NewCodeAllocator(repos.Receiving, repos.Pallet, nil, false)
	svc := service.NewReceivingService(repos.Receiving, repos.Pallet, repos.Customer, allocator)
	reportSvc := service.NewReportService(repos.Receiving, repos.Pallet)
	attachSvc := service.NewAttachmentService(repos.Receiving, nil, "")
	h := NewReceivingHandler(svc, reportSvc, attachSvc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.POST("/receivings", h.Create)
	api.GET("/receivings", h.List)
	api.GET("/receivings/:id", h.Get)
	api.PUT("/receivings/:id", h.Update)
	api.DELETE("/receivings/:id", h.Delete)

	testutil.SeedCustomer(t, db, testCustomerID, "CUST001", "测试客户")
	testutil.SeedWarehouse(t, db, testWarehouseID, "WH001", "一号冷库")

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func receivingBody(no string) map[string]interface{} {
	return map[string]interface{}{
		"receiving_no":   no,
		"warehouse_id":   testWarehouseID,
		"customer_id":    testCustomerID,
		"receiving_date": "2026-03-10T00:00:00Z",
		"receiving_time": "08:30",
		"truck_no":       "沪A12345",
	}
}

func TestReceivingCreateAndGet(t *testing.T) {
	env := setupReceivingHandlerTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/receivings", receivingBody("NA"), token)
	if w.Code != http.StatusOK {
		t.Fatalf("Create status = %d, body = %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data, ok := resp["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("no data in response: %v", resp)
	}
	if data["receiving_no"] != "SRNU000000001" {
		t.Errorf("receiving_no = %v, want SRNU000000001", data["receiving_no"])
	}

	id, _ := data["id"].(string)
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/receivings/"+id, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Get status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestReceivingCreateRequiresAuth(t *testing.T) {
	env := setupReceivingHandlerTest(t)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/receivings", receivingBody("NA"), "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestReceivingCreateValidation(t *testing.T) {
	env := setupReceivingHandlerTest(t)
	token := testutil.DefaultTestToken()

	body := receivingBody("NA")
	delete(body, "customer_id")
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/receivings", body, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

// 批量保存载荷逐托校验：数量为零的托盘整单拒收
func TestReceivingUpdateRejectsZeroQuantityPallet(t *testing.T) {
	env := setupReceivingHandlerTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/receivings", receivingBody("NA"), token)
	if w.Code != http.StatusOK {
		t.Fatalf("Create status = %d, body = %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	id, _ := data["id"].(string)

	body := receivingBody("SRNU000000001")
	body["pallets"] = []map[string]interface{}{
		{
			"pallet_no":   "NA",
			"material_id": "00000000-0000-4000-8000-000000000004",
			"unit_id":     "00000000-0000-4000-8000-000000000005",
			"quantity":    0,
		},
	}
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/receivings/"+id, body, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400, body = %s", w.Code, w.Body.String())
	}

	// 同一单据合法托盘照常通过
	body["pallets"] = []map[string]interface{}{
		{
			"pallet_no":   "NA",
			"material_id": "00000000-0000-4000-8000-000000000004",
			"unit_id":     "00000000-0000-4000-8000-000000000005",
			"quantity":    5,
		},
	}
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/receivings/"+id, body, token)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}
}

func TestReceivingDuplicateNoConflict(t *testing.T) {
	env := setupReceivingHandlerTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/receivings", receivingBody("SRNU000000200"), token)
	if w.Code != http.StatusOK {
		t.Fatalf("Create status = %d, body = %s", w.Code, w.Body.String())
	}
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/receivings", receivingBody("SRNU000000200"), token)
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestReceivingGetNotFound(t *testing.T) {
	env := setupReceivingHandlerTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/receivings/"+missingID, nil, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
