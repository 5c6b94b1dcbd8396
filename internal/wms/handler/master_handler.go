package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ewceniza9009/wmsc-sub000/internal/wms/repository"
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/service"
)

// MasterHandler 基础资料处理器
type MasterHandler struct {
	account   *service.AccountService
	customer  *service.CustomerService
	material  *service.MaterialService
	unit      *service.UnitService
	warehouse *service.WarehouseService
}

func NewMasterHandler(services *service.Services) *MasterHandler {
	return &MasterHandler{
		account:   services.Account,
		customer:  services.Customer,
		material:  services.Material,
		unit:      services.Unit,
		warehouse: services.Warehouse,
	}
}

func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	return page, size
}

// ---------- 账号 ----------

func (h *MasterHandler) CreateAccount(c *gin.Context) {
	var req service.AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	account, err := h.account.Create(c.Request.Context(), req, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, account)
}

func (h *MasterHandler) GetAccount(c *gin.Context) {
	account, err := h.account.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, account)
}

func (h *MasterHandler) ListAccounts(c *gin.Context) {
	page, size := pagination(c)
	accounts, total, err := h.account.List(repository.AccountListParams{
		Role:    c.Query("role"),
		Status:  c.Query("status"),
		Keyword: c.Query("keyword"),
		Page:    page,
		Size:    size,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"items": accounts, "total": total, "page": page, "size": size})
}

func (h *MasterHandler) UpdateAccount(c *gin.Context) {
	var req service.AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	account, err := h.account.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, account)
}

func (h *MasterHandler) DeleteAccount(c *gin.Context) {
	if err := h.account.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

// ---------- 客户 ----------

func (h *MasterHandler) CreateCustomer(c *gin.Context) {
	var req service.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	customer, err := h.customer.Create(c.Request.Context(), req, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, customer)
}

func (h *MasterHandler) GetCustomer(c *gin.Context) {
	customer, err := h.customer.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, customer)
}

func (h *MasterHandler) ListCustomers(c *gin.Context) {
	page, size := pagination(c)
	customers, total, err := h.customer.List(repository.CustomerListParams{
		Status:  c.Query("status"),
		Keyword: c.Query("keyword"),
		Page:    page,
		Size:    size,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"items": customers, "total": total, "page": page, "size": size})
}

func (h *MasterHandler) UpdateCustomer(c *gin.Context) {
	var req service.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	customer, err := h.customer.Update(c.Request.Context(), c.Param("id"), req, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, customer)
}

func (h *MasterHandler) DeleteCustomer(c *gin.Context) {
	if err := h.customer.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

// ---------- 物料 ----------

func (h *MasterHandler) CreateMaterial(c *gin.Context) {
	var req service.MaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	material, err := h.material.Create(c.Request.Context(), req, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, material)
}

func (h *MasterHandler) GetMaterial(c *gin.Context) {
	material, err := h.material.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, material)
}

func (h *MasterHandler) ListMaterials(c *gin.Context) {
	page, size := pagination(c)
	materials, total, err := h.material.List(repository.MaterialListParams{
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Keyword:  c.Query("keyword"),
		Page:     page,
		Size:     size,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"items": materials, "total": total, "page": page, "size": size})
}

func (h *MasterHandler) UpdateMaterial(c *gin.Context) {
	var req service.MaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	material, err := h.material.Update(c.Request.Context(), c.Param("id"), req, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, material)
}

func (h *MasterHandler) DeleteMaterial(c *gin.Context) {
	if err := h.material.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

// ---------- 计量单位 ----------

func (h *MasterHandler) CreateUnit(c *gin.Context) {
	var req service.UnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	unit, err := h.unit.Create(req, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, unit)
}

func (h *MasterHandler) ListUnits(c *gin.Context) {
	units, err := h.unit.List()
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, units)
}

func (h *MasterHandler) UpdateUnit(c *gin.Context) {
	var req service.UnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	unit, err := h.unit.Update(c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, unit)
}

func (h *MasterHandler) DeleteUnit(c *gin.Context) {
	if err := h.unit.Delete(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

// ---------- 仓库 ----------

func (h *MasterHandler) CreateWarehouse(c *gin.Context) {
	var req service.WarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	warehouse, err := h.warehouse.Create(c.Request.Context(), req, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, warehouse)
}

// GetWarehouse 返回仓库及其库房和库位
func (h *MasterHandler) GetWarehouse(c *gin.Context) {
	warehouse, err := h.warehouse.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, warehouse)
}

func (h *MasterHandler) ListWarehouses(c *gin.Context) {
	page, size := pagination(c)
	warehouses, total, err := h.warehouse.List(repository.WarehouseListParams{
		Status:  c.Query("status"),
		Keyword: c.Query("keyword"),
		Page:    page,
		Size:    size,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"items": warehouses, "total": total, "page": page, "size": size})
}

func (h *MasterHandler) UpdateWarehouse(c *gin.Context) {
	var req service.WarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	warehouse, err := h.warehouse.Update(c.Request.Context(), c.Param("id"), req, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, warehouse)
}

func (h *MasterHandler) DeleteWarehouse(c *gin.Context) {
	if err := h.warehouse.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

// ---------- 库房 ----------

func (h *MasterHandler) CreateRoom(c *gin.Context) {
	var req service.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	room, err := h.warehouse.CreateRoom(c.Request.Context(), req, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, room)
}

func (h *MasterHandler) ListRooms(c *gin.Context) {
	rooms, err := h.warehouse.ListRooms(c.Query("warehouse_id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, rooms)
}

func (h *MasterHandler) UpdateRoom(c *gin.Context) {
	var req service.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	room, err := h.warehouse.UpdateRoom(c.Request.Context(), c.Param("id"), req, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, room)
}

func (h *MasterHandler) DeleteRoom(c *gin.Context) {
	if err := h.warehouse.DeleteRoom(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

// ---------- 库位 ----------

func (h *MasterHandler) CreateLocation(c *gin.Context) {
	var req service.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	location, err := h.warehouse.CreateLocation(c.Request.Context(), req, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, location)
}

func (h *MasterHandler) ListLocations(c *gin.Context) {
	locations, err := h.warehouse.ListLocations(c.Query("room_id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, locations)
}

func (h *MasterHandler) UpdateLocation(c *gin.Context) {
	var req service.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	location, err := h.warehouse.UpdateLocation(c.Request.Context(), c.Param("id"), req, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, location)
}

func (h *MasterHandler) DeleteLocation(c *gin.Context) {
	if err := h.warehouse.DeleteLocation(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}
