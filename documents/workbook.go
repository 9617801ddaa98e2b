package documents

import (
	"fmt"

	"github.com/smk-kristen-pedan/order-tracker/models"
	"github.com/xuri/excelize/v2"
)

// HistorySheet is the sheet name of the history workbook
const HistorySheet = "Riwayat Pesanan"

var historyHeaders = []interface{}{
	"No", "ID Pesanan", "Nama Pelanggan", "Nomor Telepon", "Detail Pesanan",
	"Jumlah", "Harga per Unit", "Total", "Tanggal Pesan", "Tanggal Selesai", "Bahan-bahan",
}

func historyRow(n int, o models.Order) []interface{} {
	total := o.Amount()
	if o.TotalAmount != nil {
		total = *o.TotalAmount
	}
	var completed string
	if o.CompletedAt != nil {
		completed = FormatDate(*o.CompletedAt, false)
	}

	materials := ""
	for i, m := range o.Materials {
		if i > 0 {
			materials += ", "
		}
		materials += fmt.Sprintf("%s %s %s", m.Name, formatQuantity(m.Quantity), m.Unit)
	}

	return []interface{}{
		n, o.ID, o.CustomerName, o.PhoneNumber, o.OrderDetails,
		o.Quantity, o.PricePerItem, total, FormatDate(o.OrderDate, false), completed, materials,
	}
}

// RenderHistoryWorkbook writes one row per order into an XLSX workbook
func RenderHistoryWorkbook(orders []models.Order) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", HistorySheet); err != nil {
		return nil, fmt.Errorf("history workbook: %w", err)
	}
	if err := f.SetSheetRow(HistorySheet, "A1", &historyHeaders); err != nil {
		return nil, fmt.Errorf("history workbook: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("history workbook: %w", err)
	}
	if err := f.SetCellStyle(HistorySheet, "A1", "K1", bold); err != nil {
		return nil, fmt.Errorf("history workbook: %w", err)
	}

	for i, o := range orders {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("history workbook: %w", err)
		}
		row := historyRow(i+1, o)
		if err := f.SetSheetRow(HistorySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("history workbook row %d: %w", i+1, err)
		}
	}

	f.SetColWidth(HistorySheet, "C", "C", 25)
	f.SetColWidth(HistorySheet, "E", "E", 35)
	f.SetColWidth(HistorySheet, "G", "J", 18)
	f.SetColWidth(HistorySheet, "K", "K", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("history workbook: %w", err)
	}
	return buf.Bytes(), nil
}
