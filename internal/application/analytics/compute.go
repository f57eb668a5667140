package analytics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"terradash/internal/domain/dataset"
	"terradash/internal/domain/report"
)

// Pure KPI computations. Nothing here performs I/O or mutates its inputs,
// and every divide-by-zero path returns 0: empty collections produce an
// all-zero snapshot instead of an error.

// weekdayNames are the pt-BR labels for time.Weekday, Sunday first.
var weekdayNames = [7]string{
	"Domingo", "Segunda-feira", "Terça-feira", "Quarta-feira",
	"Quinta-feira", "Sexta-feira", "Sábado",
}

// Compute folds the two collections into the KPI snapshot.
//
// totalSales sums every line item while totalOrders counts distinct
// pedido_id values, so a multi-line order contributes all of its lines to
// revenue but counts once. ROI is a multiplier (conversion value over ad
// spend); CAC is ad spend over distinct orders.
func Compute(orders []dataset.OrderRecord, campaigns []dataset.CampaignRecord) report.KPISnapshot {
	totalSales := decimal.Zero
	instituteSales := decimal.Zero
	ecommerceSales := decimal.Zero
	orderIDs := make(map[string]struct{}, len(orders))

	for _, o := range orders {
		line := dataset.ParseCurrency(o.LineTotal)
		totalSales = totalSales.Add(line)
		if dataset.Category(o.Product) == dataset.CategoryInstituto {
			instituteSales = instituteSales.Add(line)
		} else {
			ecommerceSales = ecommerceSales.Add(line)
		}
		orderIDs[o.OrderID] = struct{}{}
	}

	investment := decimal.Zero
	conversionValue := decimal.Zero
	cartAdds := 0
	pageViews := 0
	for _, c := range campaigns {
		investment = investment.Add(dataset.ParseCurrency(c.AmountSpent))
		conversionValue = conversionValue.Add(dataset.ParseCurrency(c.CartConversionValue))
		cartAdds += dataset.ParseCount(c.CartAdds)
		pageViews += dataset.ParseCount(c.PageViews)
	}

	snap := report.KPISnapshot{
		TotalSales:     totalSales.InexactFloat64(),
		TotalOrders:    len(orderIDs),
		InstituteSales: instituteSales.InexactFloat64(),
		EcommerceSales: ecommerceSales.InexactFloat64(),
	}
	snap.ROI = ratio(conversionValue, investment)
	if snap.TotalOrders > 0 {
		snap.CAC = investment.Div(decimal.NewFromInt(int64(snap.TotalOrders))).InexactFloat64()
	}
	if pageViews > 0 {
		snap.ConversionRate = float64(cartAdds) / float64(pageViews) * 100
	}
	snap.InstitutePercentage = percentage(instituteSales, totalSales)
	snap.EcommercePercentage = percentage(ecommerceSales, totalSales)
	return snap
}

// RankCampaigns orders campaigns by their own multiplicative ROI, best
// first. The sort is stable: campaigns with equal ROI keep their input
// order, which keeps "best campaign" displays deterministic.
func RankCampaigns(campaigns []dataset.CampaignRecord) []report.CampaignPerformance {
	ranked := make([]report.CampaignPerformance, 0, len(campaigns))
	for _, c := range campaigns {
		investment := dataset.ParseCurrency(c.AmountSpent)
		revenue := dataset.ParseCurrency(c.CartConversionValue)
		ranked = append(ranked, report.CampaignPerformance{
			Name:       c.Name,
			Investment: investment.InexactFloat64(),
			Revenue:    revenue.InexactFloat64(),
			ROI:        ratio(revenue, investment),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].ROI > ranked[j].ROI })
	return ranked
}

// BestDay finds the weekday with the most orders. Popularity is measured
// by row count, not revenue; ties resolve to the earlier weekday.
func BestDay(orders []dataset.OrderRecord) report.TimeBucket {
	var counts [7]int
	var revenue [7]decimal.Decimal
	for _, o := range orders {
		wd := dataset.ParseDate(o.Date).Weekday()
		counts[wd]++
		revenue[wd] = revenue[wd].Add(dataset.ParseCurrency(o.LineTotal))
	}

	var best report.TimeBucket
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if counts[wd] > best.Count {
			best = report.TimeBucket{
				Label:   weekdayNames[wd],
				Count:   counts[wd],
				Revenue: revenue[wd].InexactFloat64(),
			}
		}
	}
	return best
}

// BestHour finds the hour of day with the most orders, using the hour
// part of pedido_hora. Ties resolve to the earlier hour.
func BestHour(orders []dataset.OrderRecord) report.TimeBucket {
	var counts [24]int
	var revenue [24]decimal.Decimal
	for _, o := range orders {
		h, ok := hourOf(o.Time)
		if !ok {
			continue
		}
		counts[h]++
		revenue[h] = revenue[h].Add(dataset.ParseCurrency(o.LineTotal))
	}

	var best report.TimeBucket
	for h := 0; h < 24; h++ {
		if counts[h] > best.Count {
			best = report.TimeBucket{
				Label:   hourLabel(h),
				Count:   counts[h],
				Revenue: revenue[h].InexactFloat64(),
			}
		}
	}
	return best
}

// HourlyDistribution returns order count and revenue per hour of day,
// ascending, skipping hours with no orders.
func HourlyDistribution(orders []dataset.OrderRecord) []report.TimeBucket {
	var counts [24]int
	var revenue [24]decimal.Decimal
	for _, o := range orders {
		h, ok := hourOf(o.Time)
		if !ok {
			continue
		}
		counts[h]++
		revenue[h] = revenue[h].Add(dataset.ParseCurrency(o.LineTotal))
	}

	var buckets []report.TimeBucket
	for h := 0; h < 24; h++ {
		if counts[h] == 0 {
			continue
		}
		buckets = append(buckets, report.TimeBucket{
			Label:   hourLabel(h),
			Count:   counts[h],
			Revenue: revenue[h].InexactFloat64(),
		})
	}
	return buckets
}

// SalesTrend sums revenue per calendar day, oldest first. Labels keep the
// uploaded date form.
func SalesTrend(orders []dataset.OrderRecord) []report.TrendPoint {
	type day struct {
		label string
		at    time.Time
		total decimal.Decimal
	}

	days := make(map[string]*day)
	for _, o := range orders {
		d, ok := days[o.Date]
		if !ok {
			d = &day{label: o.Date, at: dataset.ParseDate(o.Date)}
			days[o.Date] = d
		}
		d.total = d.total.Add(dataset.ParseCurrency(o.LineTotal))
	}

	ordered := make([]*day, 0, len(days))
	for _, d := range days {
		ordered = append(ordered, d)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].at.Before(ordered[j].at) })

	points := make([]report.TrendPoint, 0, len(ordered))
	for _, d := range ordered {
		points = append(points, report.TrendPoint{Date: d.label, Sales: d.total.InexactFloat64()})
	}
	return points
}

// hourOf extracts the hour from a HH:mm[:ss] time-of-day string.
func hourOf(s string) (int, bool) {
	part, _, _ := strings.Cut(strings.TrimSpace(s), ":")
	h, err := strconv.Atoi(part)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}

func hourLabel(h int) string {
	return fmt.Sprintf("%02d:00", h)
}

func ratio(revenue, investment decimal.Decimal) float64 {
	if investment.IsZero() {
		return 0
	}
	return revenue.Div(investment).InexactFloat64()
}

func percentage(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return part.Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64()
}
