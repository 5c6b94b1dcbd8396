package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ewceniza9009/wmsc-sub000/internal/wms/service"
)

// Handlers WMS HTTP处理器集合
type Handlers struct {
	Master    *MasterHandler
	Receiving *ReceivingHandler
	Pallet    *PalletHandler
	Intake    *IntakeHandler
	Transfer  *TransferHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Master:    NewMasterHandler(services),
		Receiving: NewReceivingHandler(services.Receiving, services.Report, services.Attachment),
		Pallet:    NewPalletHandler(services.Pallet),
		Intake:    NewIntakeHandler(services.Intake),
		Transfer:  NewTransferHandler(services.Transfer),
	}
}

func ok(c *gin.Context, data interface{}) {
	if data == nil {
		c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": data})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
}

// fail 按服务层错误分类映射 HTTP 状态码
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"code": 10003, "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": err.Error()})
	}
}

func currentUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if s, ok := userID.(string); ok {
		return s
	}
	return ""
}
