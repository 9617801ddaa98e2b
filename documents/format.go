// Package documents renders completed orders for customers: the order detail
// document (HTML or PDF) and the history workbook.
package documents

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// DefaultLocation is Western Indonesia Time. Documents show dates on the
// workshop's wall clock, whatever zone the stored time carries.
var DefaultLocation = time.FixedZone("WIB", 7*60*60)

var location = DefaultLocation

// SetLocation changes the zone dates are displayed in. Call it once at startup.
func SetLocation(loc *time.Location) {
	if loc != nil {
		location = loc
	}
}

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatCurrency formats amount as Indonesian rupiah without fraction digits, e.g. "Rp 500.000"
func FormatCurrency(amount float64) string {
	grouped := humanize.Comma(int64(math.Round(amount)))
	return "Rp " + strings.ReplaceAll(grouped, ",", ".")
}

// FormatDate formats t in the display location as "02 Januari 2006",
// optionally followed by the time of day
func FormatDate(t time.Time, withTime bool) string {
	t = t.In(location)
	s := fmt.Sprintf("%02d %s %d", t.Day(), monthNames[t.Month()-1], t.Year())
	if withTime {
		s += t.Format(" 15:04")
	}
	return s
}

// formatQuantity drops trailing zeros: 5 -> "5", 2.5 -> "2.5"
func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
