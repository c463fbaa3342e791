package ports

import (
	"context"

	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Companies   repository.CompanyRepository
	Users       repository.UserRepository
	Invitations repository.InvitationRepository
	Products    repository.ProductRepository
	Tables      repository.RestaurantTableRepository
	Orders      repository.RestaurantOrderRepository
	Payments    repository.PaymentRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace rollback y ninguna escritura queda persistida.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
