package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ewceniza9009/wmsc-sub000/internal/wms/repository"
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/service"
)

type ReceivingHandler struct {
	svc       *service.ReceivingService
	reportSvc *service.ReportService
	attachSvc *service.AttachmentService
}

func NewReceivingHandler(svc *service.ReceivingService, reportSvc *service.ReportService, attachSvc *service.AttachmentService) *ReceivingHandler {
	return &ReceivingHandler{svc: svc, reportSvc: reportSvc, attachSvc: attachSvc}
}

func (h *ReceivingHandler) Create(c *gin.Context) {
	var req service.CreateReceivingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	receiving, err := h.svc.Create(c.Request.Context(), req, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, receiving)
}

func (h *ReceivingHandler) Update(c *gin.Context) {
	var req service.UpdateReceivingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	receiving, err := h.svc.Update(c.Request.Context(), c.Param("id"), req, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, receiving)
}

func (h *ReceivingHandler) Get(c *gin.Context) {
	receiving, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, receiving)
}

func (h *ReceivingHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	params := repository.ReceivingListParams{
		WarehouseID: c.Query("warehouse_id"),
		CustomerID:  c.Query("customer_id"),
		Keyword:     c.Query("keyword"),
		Page:        page,
		Size:        size,
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
	receivings, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"items": receivings, "total": total, "page": page, "size": size})
}

func (h *ReceivingHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

// Export 入库台账导出
func (h *ReceivingHandler) Export(c *gin.Context) {
	params := repository.ReceivingListParams{
		WarehouseID: c.Query("warehouse_id"),
		CustomerID:  c.Query("customer_id"),
		Keyword:     c.Query("keyword"),
	}
	f, fileName, err := h.reportSvc.ExportReceivings(c.Request.Context(), params)
	if err != nil {
		fail(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

// UploadAttachment 上传入库单附件
func (h *ReceivingHandler) UploadAttachment(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		badRequest(c, err)
		return
	}
	defer file.Close()

	att, err := h.attachSvc.Upload(
		c.Request.Context(),
		c.Param("id"),
		currentUserID(c),
		file,
		fileHeader.Filename,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, att)
}

func (h *ReceivingHandler) ListAttachments(c *gin.Context) {
	atts, err := h.attachSvc.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, atts)
}

func (h *ReceivingHandler) DownloadAttachment(c *gin.Context) {
	object, att, err := h.attachSvc.Download(c.Request.Context(), c.Param("attachmentId"))
	if err != nil {
		fail(c, err)
		return
	}
	defer object.Close()

	c.Header("Content-Disposition", "attachment; filename="+att.FileName)
	c.DataFromReader(http.StatusOK, att.Size, att.ContentType, object, nil)
}

func (h *ReceivingHandler) DeleteAttachment(c *gin.Context) {
	if err := h.attachSvc.Delete(c.Request.Context(), c.Param("attachmentId")); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}
