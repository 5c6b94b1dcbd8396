package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ewceniza9009/wmsc-sub000/internal/wms/repository"
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/service"
)

type TransferHandler struct {
	svc *service.TransferService
}

func NewTransferHandler(svc *service.TransferService) *TransferHandler {
	return &TransferHandler{svc: svc}
}

func (h *TransferHandler) Create(c *gin.Context) {
	var req service.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	transfer, err := h.svc.Create(c.Request.Context(), req, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, transfer)
}

func (h *TransferHandler) Update(c *gin.Context) {
	var req service.UpdateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	transfer, err := h.svc.Update(c.Request.Context(), c.Param("id"), req, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, transfer)
}

func (h *TransferHandler) Get(c *gin.Context) {
	transfer, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, transfer)
}

func (h *TransferHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	params := repository.TransferListParams{
		WarehouseID:   c.Query("warehouse_id"),
		ToWarehouseID: c.Query("to_warehouse_id"),
		Keyword:       c.Query("keyword"),
		Page:          page,
		Size:          size,
	}
	if v := c.Query("date_from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			params.DateFrom = &t
		}
	}
	if v := c.Query("date_to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			params.DateTo = &t
		}
	}
	transfers, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"items": transfers, "total": total, "page": page, "size": size})
}

func (h *TransferHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}
