package forms

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/smk-kristen-pedan/order-tracker/models"
)

// OrderForm is the new-order form as submitted by the client
type OrderForm struct {
	CustomerName string         `json:"customerName" validate:"required"`
	PhoneNumber  string         `json:"phoneNumber"`
	OrderDetails string         `json:"orderDetails" validate:"required"`
	Quantity     Text           `json:"quantity" validate:"required"`
	PricePerItem Text           `json:"pricePerItem" validate:"required"`
	Notes        string         `json:"notes"`
	OrderDate    time.Time      `json:"orderDate"`
	Deadline     time.Time      `json:"deadline"`
	Materials    []MaterialForm `json:"materials"`
}

// MaterialForm is one row of the materials list
type MaterialForm struct {
	Name     string `json:"name"`
	Quantity Text   `json:"quantity"`
	Unit     string `json:"unit"`
}

// Validate checks the form and returns a *ValidationError when it is rejected
func (f OrderForm) Validate() error {
	_, err := f.parse()
	return err
}

// Draft validates the form and converts it into a draft for store.Add.
// Missing order and deadline dates default to now.
func (f OrderForm) Draft(now time.Time) (models.OrderDraft, error) {
	draft, err := f.parse()
	if err != nil {
		return models.OrderDraft{}, err
	}
	if draft.OrderDate.IsZero() {
		draft.OrderDate = now
	}
	if draft.Deadline.IsZero() {
		draft.Deadline = now
	}
	return draft, nil
}

func (f OrderForm) parse() (models.OrderDraft, error) {
	trimmed := f
	trimmed.CustomerName = strings.TrimSpace(f.CustomerName)
	trimmed.OrderDetails = strings.TrimSpace(f.OrderDetails)
	trimmed.Quantity = Text(f.Quantity.trimmed())
	trimmed.PricePerItem = Text(f.PricePerItem.trimmed())

	fields, err := missingFields(trimmed)
	if err != nil {
		return models.OrderDraft{}, err
	}
	if len(fields) > 0 {
		return models.OrderDraft{}, &ValidationError{
			Code:    CodeMissingFields,
			Message: "Mohon lengkapi data pesanan",
			Fields:  fields,
		}
	}

	quantity, err := strconv.Atoi(string(trimmed.Quantity))
	if err != nil || quantity < 0 {
		return models.OrderDraft{}, invalidNumber("quantity")
	}
	price, ok := parseAmount(string(trimmed.PricePerItem))
	if !ok || price < 0 {
		return models.OrderDraft{}, invalidNumber("pricePerItem")
	}

	materials := validMaterials(f.Materials)
	if len(materials) == 0 {
		return models.OrderDraft{}, &ValidationError{
			Code:    CodeNoValidMaterial,
			Message: "Mohon tambahkan minimal satu material dengan nama, jumlah, dan satuan yang lengkap",
			Fields:  []string{"materials"},
		}
	}

	return models.OrderDraft{
		CustomerName: trimmed.CustomerName,
		PhoneNumber:  strings.TrimSpace(f.PhoneNumber),
		OrderDetails: trimmed.OrderDetails,
		Quantity:     quantity,
		PricePerItem: price,
		Notes:        strings.TrimSpace(f.Notes),
		OrderDate:    f.OrderDate,
		Deadline:     f.Deadline,
		Materials:    materials,
	}, nil
}

// validMaterials keeps the rows with a name, a unit and a positive quantity.
// Incomplete rows are dropped rather than rejected.
func validMaterials(rows []MaterialForm) []models.Material {
	var out []models.Material
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		unit := strings.TrimSpace(row.Unit)
		if name == "" || unit == "" {
			continue
		}
		quantity, ok := parseAmount(row.Quantity.trimmed())
		if !ok || quantity <= 0 {
			continue
		}
		out = append(out, models.Material{Name: name, Quantity: quantity, Unit: unit})
	}
	return out
}

// parseAmount accepts a decimal comma as typed on Indonesian keyboards
func parseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func invalidNumber(field string) *ValidationError {
	return &ValidationError{
		Code:    CodeInvalidNumber,
		Message: "Jumlah dan harga harus berupa angka yang valid",
		Fields:  []string{field},
	}
}
