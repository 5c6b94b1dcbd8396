package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ewceniza9009/wmsc-sub000/internal/wms/repository"
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/service"
)

type PalletHandler struct {
	svc *service.PalletService
}

func NewPalletHandler(svc *service.PalletService) *PalletHandler {
	return &PalletHandler{svc: svc}
}

func (h *PalletHandler) Create(c *gin.Context) {
	var req service.CreatePalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	pallet, err := h.svc.Create(c.Request.Context(), req, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, pallet)
}

func (h *PalletHandler) Update(c *gin.Context) {
	var req service.PalletPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	pallet, err := h.svc.Update(c.Request.Context(), c.Param("id"), req, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, pallet)
}

func (h *PalletHandler) Get(c *gin.Context) {
	pallet, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, pallet)
}

func (h *PalletHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	params := repository.PalletListParams{
		ReceivingID: c.Query("receiving_id"),
		MaterialID:  c.Query("material_id"),
		LocationID:  c.Query("location_id"),
		Keyword:     c.Query("keyword"),
		Page:        page,
		Size:        size,
	}
	if v := c.Query("cancelled"); v != "" {
		cancelled := v == "true"
		params.Cancelled = &cancelled
	}
	pallets, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"items": pallets, "total": total, "page": page, "size": size})
}

// Cancel 作废托盘，保留记录仅打标记
func (h *PalletHandler) Cancel(c *gin.Context) {
	if err := h.svc.Cancel(c.Request.Context(), c.Param("id"), currentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

func (h *PalletHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}
