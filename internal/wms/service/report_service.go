package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ewceniza9009/wmsc-sub000/internal/wms/repository"
)

// ReportService 导出报表
type ReportService struct {
	receivingRepo *repository.ReceivingRepository
	palletRepo    *repository.PalletRepository
}

func NewReportService(receivingRepo *repository.ReceivingRepository, palletRepo *repository.PalletRepository) *ReportService {
	return &ReportService{receivingRepo: receivingRepo, palletRepo: palletRepo}
}

var receivingExportHeaders = []string{
	"入库单号", "仓库", "客户", "收货日期", "收货时间", "车牌号", "柜号", "托盘数", "总数量", "总重量", "制单人",
}

// ExportReceivings 入库台账导出为 xlsx
func (s *ReportService) ExportReceivings(ctx context.Context, params repository.ReceivingListParams) (*excelize.File, string, error) {
	// 导出不分页
	params.Page = 1
	params.Size = 10000

	receivings, _, err := s.receivingRepo.List(ctx, params)
	if err != nil {
		return nil, "", fmt.Errorf("查询入库单失败: %w", err)
	}

	f := excelize.NewFile()
	sheet := "入库台账"
	f.SetSheetName("Sheet1", sheet)

	// 表头样式: 加粗
	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range receivingExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for i, r := range receivings {
		row := i + 2

		pallets, err := s.palletRepo.ListByReceiving(ctx, r.ID)
		if err != nil {
			return nil, "", fmt.Errorf("查询托盘失败: %w", err)
		}

		warehouseName := ""
		if r.Warehouse != nil {
			warehouseName = r.Warehouse.Name
		}
		customerName := ""
		if r.Customer != nil {
			customerName = r.Customer.Name
		}
		receivingDate := ""
		if r.ReceivingDate != nil {
			receivingDate = r.ReceivingDate.Format("2006-01-02")
		}

		values := []interface{}{
			r.ReceivingNo,
			warehouseName,
			customerName,
			receivingDate,
			r.ReceivingTime,
			r.TruckNo,
			r.ContainerNo,
			len(pallets),
			r.TotalQuantity,
			r.TotalWeight,
			r.CreatedBy,
		}
		for j, v := range values {
			col, _ := excelize.ColumnNumberToName(j + 1)
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), v)
		}
	}

	fileName := fmt.Sprintf("receivings_%s.xlsx", time.Now().Format("20060102_150405"))
	return f, fileName, nil
}
