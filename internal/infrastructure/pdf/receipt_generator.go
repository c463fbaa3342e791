// Package pdf genera el comprobante imprimible de una orden del restaurante.
//
// Layout de la página A5:
//
//	┌──────────────────────────────────────────────┐
//	│  Empresa + NIT/Tax ID  │  Orden N° + Fecha    │
//	│  Mesa / Cliente / Atendido por               │
//	│  Cant | Producto | P.Unit | Subtotal          │
//	│  TOTAL / Pagos                                │
//	│  QR de referencia + leyenda                   │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Hoteleria-api/internal/application/ports"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ ports.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa ports.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceipt genera el PDF de la orden y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceipt(_ context.Context, data ports.ReceiptData) ([]byte, error) {
	if data.Company == nil || data.Order == nil {
		return nil, fmt.Errorf("pdf: empresa y orden son obligatorias")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(fmt.Sprintf("Comprobante orden %d", data.Order.ID), true).
		WithAuthor(data.Company.Name, true).
		Build()

	m := maroto.New(cfg)
	currency := data.Company.Currency

	m.AddRows(headerRow(data.Company, data.Order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(orderInfoRow(data.Order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(itemsHeaderRow())
	m.AddRows(itemRows(data.Order.Items, currency)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(data.Order, currency))
	m.AddRows(paymentRows(data.Payments, currency)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(data.Company, data.Order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(company *entity.Company, order *entity.RestaurantOrder) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 1}),
			text.New("Tax ID: "+nonEmpty(company.TaxID, "-"), props.Text{Size: 7, Top: 8, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE CONSUMO", props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("Orden N° %d", order.ID), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6}),
			text.New(order.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 7, Align: align.Right, Top: 12, Color: colorGray}),
		),
	)
}

func orderInfoRow(order *entity.RestaurantOrder) core.Row {
	info := fmt.Sprintf("Mesa: %s   |   Cliente: %s   |   Atendido por: %s   |   Estado: %s",
		nonEmpty(order.TableNumber, "-"),
		nonEmpty(order.ClientName, "-"),
		nonEmpty(order.CreatedByName, "-"),
		order.Status,
	)
	return row.New(8).Add(col.New(12).Add(text.New(info, props.Text{Size: 7, Top: 2, Color: colorGray})))
}

func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func itemRows(items []entity.OrderItem, currency string) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprint(it.Quantity), props.Text{Size: 7, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(it.ProductName, props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(2).Add(text.New(FormatMoney(it.UnitPrice, currency), props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(FormatMoney(it.Subtotal, currency), props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalRow(order *entity.RestaurantOrder, currency string) core.Row {
	return row.New(9).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2})),
		col.New(3).Add(text.New(FormatMoney(order.Total, currency), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1})),
	)
}

func paymentRows(payments []*entity.Payment, currency string) []core.Row {
	if len(payments) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("Pendiente de pago", props.Text{Size: 7, Align: align.Right, Color: colorGray, Top: 1, Right: 1}),
		))}
	}
	rows := make([]core.Row, 0, len(payments))
	for _, p := range payments {
		label := "Pago " + p.Method
		if p.Reference != "" {
			label += " (" + p.Reference + ")"
		}
		rows = append(rows, row.New(5).Add(
			col.New(9).Add(text.New(label+":", props.Text{Size: 7, Align: align.Right, Right: 2})),
			col.New(3).Add(text.New(FormatMoney(p.Amount, currency), props.Text{Size: 7, Align: align.Right, Right: 1})),
		))
	}
	return rows
}

func footerRow(company *entity.Company, order *entity.RestaurantOrder) core.Row {
	ref := fmt.Sprintf("%s|ORD-%d|%s|%s", company.TaxID, order.ID, order.Total.StringFixed(2), company.Currency)
	return row.New(30).Add(
		col.New(4).Add(code.NewQr(ref, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("Gracias por su visita.", props.Text{Style: fontstyle.Bold, Size: 9, Top: 4, Left: 3, Color: colorPrimary}),
			text.New("Este comprobante no es una factura fiscal.", props.Text{Size: 7, Top: 12, Left: 3, Color: colorGray}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// FormatMoney formatea con dos decimales y separador de miles. Ej: 1234567.5 USD → "USD 1,234,567.50".
func FormatMoney(v decimal.Decimal, currency string) string {
	s := v.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	sign := ""
	if v.IsNegative() {
		sign = "-"
	}
	out := sign + string(buf) + "." + frac
	if currency != "" {
		out = currency + " " + out
	}
	return out
}
