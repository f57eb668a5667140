package dataset

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Normalization is deliberately lenient: the CSVs come from human-edited
// spreadsheets and the dashboard prefers a zero over a failed batch.
// Anomalies surface as warnings, never as errors.

// Business-line categories a product is classified into.
const (
	CategoryInstituto = "instituto"
	CategoryEcommerce = "ecommerce"
)

// ParseCurrency converts a Brazilian-formatted currency string into a
// decimal: thousands separators (".") are stripped and "," is the decimal
// point, so "1.234,56" becomes 1234.56. Empty, "-" or unparsable input
// yields zero.
func ParseCurrency(s string) decimal.Decimal {
	raw := strings.TrimSpace(s)
	if raw == "" || raw == "-" {
		return decimal.Zero
	}
	normalized := strings.ReplaceAll(raw, ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		logrus.WithField("value", s).Warn("unparsable currency value, using 0")
		return decimal.Zero
	}
	return d
}

// ParseCount converts an integer field such as a quantity or an
// impression count. Thousands separators are tolerated; empty, negative
// or unparsable input yields zero.
func ParseCount(s string) int {
	raw := strings.TrimSpace(s)
	if raw == "" || raw == "-" {
		return 0
	}
	n, err := strconv.Atoi(strings.ReplaceAll(raw, ".", ""))
	if err != nil || n < 0 {
		logrus.WithField("value", s).Warn("unparsable count value, using 0")
		return 0
	}
	return n
}

var dateLayouts = []string{"02/01/2006", "2006-01-02", "2006-01-02T15:04:05", time.RFC3339}

// ParseDate tries DD/MM/YYYY, ISO date, ISO datetime and RFC3339, in that
// order. time.Parse rejects impossible calendar dates such as 31/02, so
// those fall through too. When every layout fails the current time is
// returned: ingestion never stops on a bad date.
func ParseDate(s string) time.Time {
	raw := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	logrus.WithField("value", s).Warn("unparsable date, falling back to current time")
	return time.Now()
}

// Category classifies a product by name: course ("curso") and workshop
// ("oficina") products belong to the Instituto line, everything else is
// e-commerce. Matching is case-insensitive.
func Category(productName string) string {
	name := strings.ToLower(productName)
	if strings.Contains(name, "curso") || strings.Contains(name, "oficina") {
		return CategoryInstituto
	}
	return CategoryEcommerce
}
