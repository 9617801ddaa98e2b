package documents

import (
	"time"

	"github.com/smk-kristen-pedan/order-tracker/models"
)

// detail is the display form of one order, shared by the HTML and PDF renderers
type detail struct {
	CustomerName  string
	PhoneNumber   string
	OrderDetails  string
	Quantity      int
	UnitPrice     string
	OrderDate     string
	CompletedDate string
	Total         string
	GeneratedAt   string
	Materials     []materialRow
}

type materialRow struct {
	Name     string
	Quantity string
	Unit     string
}

func newDetail(order models.Order, generatedAt time.Time) detail {
	completed := generatedAt
	if order.CompletedAt != nil {
		completed = *order.CompletedAt
	}

	d := detail{
		CustomerName:  order.CustomerName,
		PhoneNumber:   order.PhoneNumber,
		OrderDetails:  order.OrderDetails,
		Quantity:      order.Quantity,
		UnitPrice:     FormatCurrency(order.PricePerItem),
		OrderDate:     FormatDate(order.OrderDate, false),
		CompletedDate: FormatDate(completed, false),
		Total:         FormatCurrency(order.Amount()),
		GeneratedAt:   FormatDate(generatedAt, true),
		Materials:     make([]materialRow, 0, len(order.Materials)),
	}
	for _, m := range order.Materials {
		d.Materials = append(d.Materials, materialRow{
			Name:     m.Name,
			Quantity: formatQuantity(m.Quantity),
			Unit:     m.Unit,
		})
	}
	return d
}
