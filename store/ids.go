package store

import (
	"strconv"
	"time"

	"github.com/smk-kristen-pedan/order-tracker/models"
)

// idGenerator issues decimal Unix-millisecond ids. Two orders created in the
// same millisecond get consecutive values, so ids stay unique and increasing.
type idGenerator struct {
	last int64
}

func (g *idGenerator) next(now time.Time) string {
	ms := now.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}

// seed moves the generator past every numeric id already in use
func (g *idGenerator) seed(orders []models.Order) {
	for _, o := range orders {
		if n, err := strconv.ParseInt(o.ID, 10, 64); err == nil && n > g.last {
			g.last = n
		}
	}
}
