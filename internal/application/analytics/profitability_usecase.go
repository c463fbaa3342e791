package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

const (
	defaultTopN     = 20
	maxTopN         = 200
	paretoThreshold = 80
	dateLayout      = "2006-01-02"
)

var (
	hundred  = decimal.NewFromInt(100)
	pareto80 = decimal.NewFromInt(paretoThreshold)
)

// ProfitabilityUseCase reporte de rentabilidad del restaurante sobre órdenes pagadas:
// márgenes por método de pago y ranking de productos por utilidad bruta con corte Pareto.
type ProfitabilityUseCase struct {
	repo repository.AnalyticsRepository
}

// NewProfitabilityUseCase construye el caso de uso.
func NewProfitabilityUseCase(repo repository.AnalyticsRepository) *ProfitabilityUseCase {
	return &ProfitabilityUseCase{repo: repo}
}

// GetReport genera el reporte del período. Los totales cubren todos los productos aunque el ranking se corte en TopN.
func (uc *ProfitabilityUseCase) GetReport(ctx context.Context, companyID int64, req dto.ProfitabilityRequest) (*dto.ProfitabilityReportDTO, error) {
	from, to, err := parsePeriod(req.StartDate, req.EndDate, time.Now())
	if err != nil {
		return nil, err
	}
	topN := req.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	if topN > maxTopN {
		topN = maxTopN
	}

	type methodsResult struct {
		rows []entity.MethodSales
		err  error
	}
	type productsResult struct {
		rows []entity.ProductMargin
		err  error
	}
	methodsCh := make(chan methodsResult, 1)
	productsCh := make(chan productsResult, 1)
	go func() {
		rows, err := uc.repo.SalesByPaymentMethod(ctx, companyID, from, to)
		methodsCh <- methodsResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.ProductMargins(ctx, companyID, from, to, topN)
		productsCh <- productsResult{rows, err}
	}()
	methods, products := <-methodsCh, <-productsCh
	if methods.err != nil {
		return nil, fmt.Errorf("rentabilidad: métodos de pago: %w", methods.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("rentabilidad: productos: %w", products.err)
	}

	out := buildMethods(methods.rows)
	out.Period = dto.PeriodDTO{StartDate: from.Format(dateLayout), EndDate: to.Format(dateLayout)}
	out.Products = buildProductRanking(products.rows, out.TotalRevenue, out.GrossProfit)
	out.ParetoProducts = []dto.ProductProfitDTO{}
	for _, p := range out.Products {
		if p.IsTopPareto {
			out.ParetoProducts = append(out.ParetoProducts, p)
		}
	}
	return out, nil
}

func buildMethods(rows []entity.MethodSales) *dto.ProfitabilityReportDTO {
	revenue, cogs := decimal.Zero, decimal.Zero
	for _, r := range rows {
		revenue = revenue.Add(r.Revenue)
		cogs = cogs.Add(r.COGS)
	}
	byMethod := make([]dto.MethodProfitDTO, 0, len(rows))
	for _, r := range rows {
		profit := r.Revenue.Sub(r.COGS)
		byMethod = append(byMethod, dto.MethodProfitDTO{
			Method:      r.Method,
			Orders:      r.Orders,
			Revenue:     r.Revenue.Round(2),
			COGS:        r.COGS.Round(2),
			GrossProfit: profit.Round(2),
			MarginPct:   pct(profit, r.Revenue),
			RevenuePct:  pct(r.Revenue, revenue),
		})
	}
	profit := revenue.Sub(cogs)
	return &dto.ProfitabilityReportDTO{
		TotalRevenue: revenue.Round(2),
		TotalCOGS:    cogs.Round(2),
		GrossProfit:  profit.Round(2),
		MarginPct:    pct(profit, revenue),
		ByMethod:     byMethod,
	}
}

// buildProductRanking numera los productos y marca como Pareto los que acumulan hasta el 80%
// de la utilidad total; el primero siempre entra.
func buildProductRanking(rows []entity.ProductMargin, totalRevenue, totalProfit decimal.Decimal) []dto.ProductProfitDTO {
	ranking := make([]dto.ProductProfitDTO, 0, len(rows))
	cumulative := decimal.Zero
	for i, r := range rows {
		profit := r.GrossProfit()
		cumulative = cumulative.Add(pct(profit, totalProfit))
		ranking = append(ranking, dto.ProductProfitDTO{
			Rank:                i + 1,
			ProductID:           r.ProductID,
			ProductName:         r.ProductName,
			UnitsSold:           r.UnitsSold,
			Revenue:             r.Revenue.Round(2),
			COGS:                r.COGS.Round(2),
			GrossProfit:         profit.Round(2),
			MarginPct:           pct(profit, r.Revenue),
			RevenuePct:          pct(r.Revenue, totalRevenue),
			CumulativeProfitPct: cumulative.Round(2),
			IsTopPareto:         i == 0 || (profit.IsPositive() && cumulative.LessThanOrEqual(pareto80)),
		})
	}
	return ranking
}

// pct part/total*100 con dos decimales; 0 si total no es positivo.
func pct(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred).Round(2)
}

// parsePeriod interpreta las fechas en la zona de now. end es inclusivo hasta el final del día.
func parsePeriod(startStr, endStr string, now time.Time) (start, end time.Time, err error) {
	if endStr == "" {
		end = now
	} else {
		end, err = time.ParseInLocation(dateLayout, endStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, domain.Invalid("end_date debe tener formato YYYY-MM-DD")
		}
		end = end.Add(24*time.Hour - time.Nanosecond)
	}
	if startStr == "" {
		start = time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, now.Location())
	} else {
		start, err = time.ParseInLocation(dateLayout, startStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, domain.Invalid("start_date debe tener formato YYYY-MM-DD")
		}
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, domain.Invalid("start_date no puede ser posterior a end_date")
	}
	return start, end, nil
}
