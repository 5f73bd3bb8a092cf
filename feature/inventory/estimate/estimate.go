package estimate

import (
	"strings"

	"go.uber.org/zap"
)

// DefaultDays is the shelf life assumed for products matching no keyword.
const DefaultDays = 14

// Entry maps a lowercase keyword to a shelf life in days.
type Entry struct {
	Keyword string
	Days    int
}

// Table is the default shelf-life table. It is evaluated top to bottom and
// the first keyword contained in the product name wins, so precedence is
// part of the table definition: multi-word keywords are listed before any
// overlapping single word ("peanut butter" must resolve before "butter").
var Table = []Entry{
	{"canned soup", 365}, {"canned beans", 365}, {"canned vegetables", 365},
	{"peanut butter", 180}, {"olive oil", 365},

	{"milk", 7}, {"yogurt", 14}, {"cheese", 30}, {"butter", 30}, {"cream", 10},
	{"eggs", 28}, {"bread", 7}, {"muffin", 7}, {"cake", 7}, {"pasta", 365},
	{"rice", 365}, {"cereal", 180}, {"oats", 365}, {"flour", 180}, {"sugar", 90},
	{"apple", 30}, {"banana", 7}, {"orange", 21}, {"grapes", 14}, {"strawberry", 5},
	{"carrot", 30}, {"lettuce", 7}, {"tomato", 14}, {"potato", 30}, {"onion", 60},
	{"chicken", 2}, {"beef", 3}, {"pork", 3}, {"fish", 2}, {"shrimp", 2},
	{"water", 365}, {"juice", 90}, {"soda", 180}, {"beer", 180}, {"wine", 365},
	{"jam", 365}, {"honey", 730},
	{"ketchup", 365}, {"mustard", 365}, {"mayonnaise", 90},
}

// Estimator resolves product names to estimated shelf lives.
type Estimator struct {
	table  []Entry
	logger *zap.Logger
}

// New creates an estimator over the default table.
func New(logger *zap.Logger) *Estimator {
	return NewWithTable(Table, logger)
}

// NewWithTable creates an estimator over a custom ordered table.
func NewWithTable(table []Entry, logger *zap.Logger) *Estimator {
	return &Estimator{table: table, logger: logger}
}

// Days returns the estimated shelf life in days for a product name.
// Matching is case-insensitive substring search in table order. Unmatched
// names fall back to DefaultDays with a logged diagnostic; Days never fails.
func (e *Estimator) Days(productName string) int {
	name := strings.ToLower(strings.TrimSpace(productName))
	for _, entry := range e.table {
		if strings.Contains(name, entry.Keyword) {
			return entry.Days
		}
	}
	e.logger.Warn("No expiration estimate for product, using default",
		zap.String("product", name),
		zap.Int("days", DefaultDays),
	)
	return DefaultDays
}
