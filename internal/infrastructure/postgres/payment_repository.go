package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación del puerto PaymentRepository sobre PostgreSQL. Los pagos no se eliminan.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (company_id, order_id, amount, method, reference, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.CompanyID, p.OrderID, p.Amount, p.Method, p.Reference, p.CreatedBy, p.UpdatedBy, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListByOrder pagos de la orden en orden de registro.
func (r *PaymentRepo) ListByOrder(ctx context.Context, companyID, orderID int64) ([]*entity.Payment, error) {
	query := `
		SELECT pm.id, pm.order_id, pm.amount, pm.method, pm.reference, ` + auditColumns("pm") + `
		FROM payments pm ` + creatorJoin("pm") + `
		WHERE pm.company_id = $1 AND pm.order_id = $2
		ORDER BY pm.created_at, pm.id`
	rows, err := r.q.Query(ctx, query, companyID, orderID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	list := []*entity.Payment{}
	for rows.Next() {
		var p entity.Payment
		dest := append([]any{&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.Reference}, auditDest(&p.Audit)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
