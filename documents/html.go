package documents

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/smk-kristen-pedan/order-tracker/models"
)

var detailTemplate = template.Must(template.New("order").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>Detail Pesanan {{.CustomerName}}</title>
    <style>
      body { font-family: 'Helvetica'; padding: 20px; }
      .header { text-align: center; margin-bottom: 30px; border-bottom: 2px solid #2196F3; padding-bottom: 10px; }
      .header h1 { color: #2196F3; margin: 0; font-size: 24px; }
      .section { margin-bottom: 20px; padding: 15px; background: #f8f8f8; border-radius: 8px; }
      .section-title { color: #2196F3; font-size: 18px; margin-bottom: 10px; border-bottom: 1px solid #ddd; padding-bottom: 5px; }
      .info-row { display: flex; margin-bottom: 8px; }
      .label { font-weight: bold; color: #666; width: 150px; }
      .value { color: #333; flex: 1; }
      table { width: 100%; border-collapse: collapse; margin-top: 10px; }
      th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
      th { background-color: #f5f5f5; }
      .total { text-align: right; font-size: 18px; color: #2196F3; font-weight: bold; margin-top: 20px; padding-top: 10px; border-top: 2px solid #ddd; }
      .footer { margin-top: 30px; text-align: center; font-size: 12px; color: #666; }
    </style>
  </head>
  <body>
    <div class="header"><h1>DETAIL PESANAN</h1></div>

    <div class="section">
      <div class="section-title">Informasi Pelanggan</div>
      <div class="info-row"><div class="label">Nama Pelanggan:</div><div class="value">{{.CustomerName}}</div></div>
      {{- if .PhoneNumber}}
      <div class="info-row"><div class="label">Nomor Telepon:</div><div class="value">{{.PhoneNumber}}</div></div>
      {{- end}}
      <div class="info-row"><div class="label">Detail Pesanan:</div><div class="value">{{.OrderDetails}}</div></div>
    </div>

    <div class="section">
      <div class="section-title">Detail Produksi</div>
      <div class="info-row"><div class="label">Jumlah:</div><div class="value">{{.Quantity}} unit</div></div>
      <div class="info-row"><div class="label">Harga per Unit:</div><div class="value">{{.UnitPrice}}</div></div>
      <div class="info-row"><div class="label">Tanggal Pesan:</div><div class="value">{{.OrderDate}}</div></div>
      <div class="info-row"><div class="label">Tanggal Selesai:</div><div class="value">{{.CompletedDate}}</div></div>
    </div>

    <div class="section">
      <div class="section-title">Bahan-bahan</div>
      <table>
        <thead>
          <tr><th>Nama Bahan</th><th style="text-align: right">Jumlah</th><th style="text-align: center">Satuan</th></tr>
        </thead>
        <tbody>
          {{- range .Materials}}
          <tr><td>{{.Name}}</td><td style="text-align: right">{{.Quantity}}</td><td style="text-align: center">{{.Unit}}</td></tr>
          {{- end}}
        </tbody>
      </table>
      <div class="total">Total: {{.Total}}</div>
    </div>

    <div class="footer">Dokumen ini digenerate pada {{.GeneratedAt}}</div>
  </body>
</html>
`))

// RenderHTML renders the order detail document as a standalone HTML page
func RenderHTML(order models.Order, generatedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := detailTemplate.Execute(&buf, newDetail(order, generatedAt)); err != nil {
		return nil, fmt.Errorf("render order %s: %w", order.ID, err)
	}
	return buf.Bytes(), nil
}
