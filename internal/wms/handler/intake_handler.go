package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ewceniza9009/wmsc-sub000/internal/wms/service"
)

type IntakeHandler struct {
	svc *service.IntakeService
}

func NewIntakeHandler(svc *service.IntakeService) *IntakeHandler {
	return &IntakeHandler{svc: svc}
}

type startIntakeRequest struct {
	ReceivingID string `json:"receiving_id" binding:"required"`
}

// Start 开启一个收货录入会话
func (h *IntakeHandler) Start(c *gin.Context) {
	var req startIntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	session, err := h.svc.Start(c.Request.Context(), req.ReceivingID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, session)
}

func (h *IntakeHandler) Get(c *gin.Context) {
	session, err := h.svc.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, session)
}

func (h *IntakeHandler) SetInfo(c *gin.Context) {
	var req service.IntakeInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	session, err := h.svc.SetInfo(c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, session)
}

func (h *IntakeHandler) SetWeights(c *gin.Context) {
	var req service.IntakeWeighRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	session, err := h.svc.SetWeights(c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, session)
}

// Advance 推进到下一个步骤，不满足条件时报告缺失项
func (h *IntakeHandler) Advance(c *gin.Context) {
	session, err := h.svc.Advance(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, session)
}

// Save 确认保存，落库后会话回到录入状态继续下一托
func (h *IntakeHandler) Save(c *gin.Context) {
	pallet, session, err := h.svc.Save(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"pallet": pallet, "session": session})
}

func (h *IntakeHandler) Cancel(c *gin.Context) {
	if err := h.svc.Cancel(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}
