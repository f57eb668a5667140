package report

// KPISnapshot is the fixed set of headline metrics. It is recomputed on
// every read from the stored collections and never persisted.
type KPISnapshot struct {
	TotalSales          float64 `json:"totalSales"`
	TotalOrders         int     `json:"totalOrders"`
	ROI                 float64 `json:"roi"`
	CAC                 float64 `json:"cac"`
	ConversionRate      float64 `json:"conversionRate"`
	InstitutePercentage float64 `json:"institutePercentage"`
	EcommercePercentage float64 `json:"ecommercePercentage"`
	InstituteSales      float64 `json:"instituteSales"`
	EcommerceSales      float64 `json:"ecommerceSales"`
}

// CampaignPerformance is one row of the campaign ROI ranking.
type CampaignPerformance struct {
	Name       string  `json:"name"`
	Investment float64 `json:"investment"`
	Revenue    float64 `json:"revenue"`
	ROI        float64 `json:"roi"`
}

// TimeBucket aggregates the orders that share a weekday or an hour slot.
type TimeBucket struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// TrendPoint is one day of the sales trend.
type TrendPoint struct {
	Date  string  `json:"date"`
	Sales float64 `json:"sales"`
}

// Dashboard is the full payload served to the visualization layer.
type Dashboard struct {
	KPIs               KPISnapshot           `json:"kpis"`
	Campaigns          []CampaignPerformance `json:"campaigns"`
	BestDay            TimeBucket            `json:"bestDay"`
	BestHour           TimeBucket            `json:"bestHour"`
	SalesTrend         []TrendPoint          `json:"salesTrend"`
	HourlyDistribution []TimeBucket          `json:"hourlyDistribution"`
}
