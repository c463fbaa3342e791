package dto

import "github.com/shopspring/decimal"

// ProfitabilityRequest query de GET /api/analytics/profitability.
// Fechas en formato YYYY-MM-DD; por defecto desde el primer día del mes hasta hoy.
type ProfitabilityRequest struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
	TopN      int    `query:"top_n"`
}

// PeriodDTO rango consultado.
type PeriodDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// MethodProfitDTO rentabilidad por método de pago.
type MethodProfitDTO struct {
	Method      string          `json:"method"`
	Orders      int64           `json:"orders"`
	Revenue     decimal.Decimal `json:"revenue"`
	COGS        decimal.Decimal `json:"cogs"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	MarginPct   decimal.Decimal `json:"margin_pct"`
	RevenuePct  decimal.Decimal `json:"revenue_pct"`
}

// ProductProfitDTO posición de un producto en el ranking por utilidad bruta.
type ProductProfitDTO struct {
	Rank                int             `json:"rank"`
	ProductID           int64           `json:"product_id"`
	ProductName         string          `json:"product_name"`
	UnitsSold           int64           `json:"units_sold"`
	Revenue             decimal.Decimal `json:"revenue"`
	COGS                decimal.Decimal `json:"cogs"`
	GrossProfit         decimal.Decimal `json:"gross_profit"`
	MarginPct           decimal.Decimal `json:"margin_pct"`
	RevenuePct          decimal.Decimal `json:"revenue_pct"`
	CumulativeProfitPct decimal.Decimal `json:"cumulative_profit_pct"`
	IsTopPareto         bool            `json:"is_top_pareto"`
}

// ProfitabilityReportDTO respuesta del reporte de rentabilidad.
type ProfitabilityReportDTO struct {
	Period         PeriodDTO          `json:"period"`
	TotalRevenue   decimal.Decimal    `json:"total_revenue"`
	TotalCOGS      decimal.Decimal    `json:"total_cogs"`
	GrossProfit    decimal.Decimal    `json:"gross_profit"`
	MarginPct      decimal.Decimal    `json:"margin_pct"`
	ByMethod       []MethodProfitDTO  `json:"by_method"`
	Products       []ProductProfitDTO `json:"products"`
	ParetoProducts []ProductProfitDTO `json:"pareto_products"`
}
