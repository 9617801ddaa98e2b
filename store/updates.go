package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smk-kristen-pedan/order-tracker/models"
)

var (
	// ErrStatusRegression is returned when an update would move an order backward
	ErrStatusRegression = errors.New("status cannot move backward")
	// ErrInvalidUpdate is returned for out-of-range or malformed update values
	ErrInvalidUpdate = errors.New("invalid order update")
)

// Intent is one known kind of change applied by Store.Update
type Intent interface {
	apply(o *models.Order, now time.Time) error
}

// ProgressEdit overwrites both counters from the edit-progress form.
// When both reach the quantity the order becomes ready to complete; it is
// never completed here, because completion also fixes the total and date.
type ProgressEdit struct {
	Progress         int
	AssemblyProgress int
}

func (e ProgressEdit) apply(o *models.Order, now time.Time) error {
	if e.Progress < 0 || e.AssemblyProgress < 0 {
		return fmt.Errorf("%w: progress must not be negative", ErrInvalidUpdate)
	}
	if o.Status == models.StatusCompleted && (e.Progress < o.Quantity || e.AssemblyProgress < o.Quantity) {
		return fmt.Errorf("%w: order %s is already completed", ErrStatusRegression, o.ID)
	}
	applyProgress(o, e.Progress, e.AssemblyProgress)
	return nil
}

// StatusOverride moves an order forward to Status.
// Overriding to completed runs the regular completion.
type StatusOverride struct {
	Status models.OrderStatus
}

func (s StatusOverride) apply(o *models.Order, now time.Time) error {
	if !s.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidUpdate, s.Status)
	}
	switch {
	case s.Status.Rank() < o.Status.Rank():
		return fmt.Errorf("%w: %s to %s", ErrStatusRegression, o.Status, s.Status)
	case s.Status == o.Status:
		return nil
	case s.Status == models.StatusCompleted:
		completeOrder(o, now)
	default:
		o.Status = s.Status
	}
	return nil
}

// FieldCorrection fixes data entered on the new-order form. Nil fields are left alone.
type FieldCorrection struct {
	CustomerName *string
	PhoneNumber  *string
	OrderDetails *string
	Notes        *string
	Quantity     *int
	PricePerItem *float64
	OrderDate    *time.Time
	Deadline     *time.Time
	Materials    []models.Material
}

func (f FieldCorrection) apply(o *models.Order, now time.Time) error {
	if f.CustomerName != nil && strings.TrimSpace(*f.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidUpdate)
	}
	if f.OrderDetails != nil && strings.TrimSpace(*f.OrderDetails) == "" {
		return fmt.Errorf("%w: order details are required", ErrInvalidUpdate)
	}
	if f.Quantity != nil && *f.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidUpdate)
	}
	if f.PricePerItem != nil && *f.PricePerItem < 0 {
		return fmt.Errorf("%w: price per item must not be negative", ErrInvalidUpdate)
	}
	if o.Status == models.StatusCompleted && (f.Quantity != nil || f.PricePerItem != nil) {
		return fmt.Errorf("%w: quantity and price are fixed once an order is completed", ErrInvalidUpdate)
	}
	if f.Materials != nil {
		if len(f.Materials) == 0 {
			return fmt.Errorf("%w: at least one material is required", ErrInvalidUpdate)
		}
		for _, m := range f.Materials {
			if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Unit) == "" || m.Quantity <= 0 {
				return fmt.Errorf("%w: material needs a name, unit and positive quantity", ErrInvalidUpdate)
			}
		}
	}

	if f.CustomerName != nil {
		o.CustomerName = *f.CustomerName
	}
	if f.PhoneNumber != nil {
		o.PhoneNumber = *f.PhoneNumber
	}
	if f.OrderDetails != nil {
		o.OrderDetails = *f.OrderDetails
	}
	if f.Notes != nil {
		o.Notes = *f.Notes
	}
	if f.Quantity != nil {
		o.Quantity = *f.Quantity
	}
	if f.PricePerItem != nil {
		o.PricePerItem = *f.PricePerItem
	}
	if f.OrderDate != nil {
		o.OrderDate = *f.OrderDate
	}
	if f.Deadline != nil {
		o.Deadline = *f.Deadline
	}
	if f.Materials != nil {
		o.Materials = append([]models.Material(nil), f.Materials...)
	}
	return nil
}

// applyProgress overwrites both counters. Status drops to in_progress while
// either counter is short of the quantity and is otherwise left untouched.
func applyProgress(o *models.Order, progress, assemblyProgress int) {
	o.Progress = progress
	o.AssemblyProgress = assemblyProgress
	if progress < o.Quantity || assemblyProgress < o.Quantity {
		o.Status = models.StatusInProgress
	}
}

// completeOrder is the only place TotalAmount and CompletedAt are set
func completeOrder(o *models.Order, now time.Time) {
	total := float64(o.Quantity) * o.PricePerItem
	completedAt := now
	o.Status = models.StatusCompleted
	o.Progress = o.Quantity
	o.CompletedAt = &completedAt
	o.TotalAmount = &total
}
