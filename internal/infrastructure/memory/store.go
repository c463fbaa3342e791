// Package memory implementa los puertos de persistencia en proceso.
// Se usa con STORAGE_DRIVER=memory y en los tests de casos de uso y HTTP.
package memory

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Hoteleria-api/internal/application/ports"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

// table filas de una entidad indexadas por ID, con su secuencia.
type table[T any] struct {
	rows map[int64]T
	seq  int64
}

func (t *table[T]) next() int64 {
	t.seq++
	return t.seq
}

func (t table[T]) clone() table[T] {
	return table[T]{rows: maps.Clone(t.rows), seq: t.seq}
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[int64]T)}
}

// data estado completo del store. Las filas se guardan por valor y se reemplazan enteras al escribir,
// así una copia superficial de los mapas alcanza como snapshot.
type data struct {
	companies   table[entity.Company]
	users       table[entity.User]
	invitations table[entity.Invitation]
	roomTypes   table[entity.RoomType]
	rooms       table[entity.Room]
	categories  table[entity.Category]
	products    table[entity.Product]
	clients     table[entity.Client]
	tables      table[entity.RestaurantTable]
	orders      table[entity.RestaurantOrder]
	payments    table[entity.Payment]
	itemSeq     int64
}

func (d *data) clone() data {
	return data{
		companies:   d.companies.clone(),
		users:       d.users.clone(),
		invitations: d.invitations.clone(),
		roomTypes:   d.roomTypes.clone(),
		rooms:       d.rooms.clone(),
		categories:  d.categories.clone(),
		products:    d.products.clone(),
		clients:     d.clients.clone(),
		tables:      d.tables.clone(),
		orders:      d.orders.clone(),
		payments:    d.payments.clone(),
		itemSeq:     d.itemSeq,
	}
}

// Store base de datos en memoria. Las transacciones son exclusivas: mientras una corre,
// las operaciones fuera de ella esperan.
type Store struct {
	txMu sync.RWMutex
	mu   sync.Mutex
	d    data
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{d: data{
		companies:   newTable[entity.Company](),
		users:       newTable[entity.User](),
		invitations: newTable[entity.Invitation](),
		roomTypes:   newTable[entity.RoomType](),
		rooms:       newTable[entity.Room](),
		categories:  newTable[entity.Category](),
		products:    newTable[entity.Product](),
		clients:     newTable[entity.Client](),
		tables:      newTable[entity.RestaurantTable](),
		orders:      newTable[entity.RestaurantOrder](),
		payments:    newTable[entity.Payment](),
	}}
}

// Counts cantidad de filas por tabla, incluidas las eliminadas lógicamente.
func (s *Store) Counts() map[string]int {
	s.txMu.RLock()
	defer s.txMu.RUnlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]int{
		"companies":         len(s.d.companies.rows),
		"users":             len(s.d.users.rows),
		"invitations":       len(s.d.invitations.rows),
		"room_types":        len(s.d.roomTypes.rows),
		"rooms":             len(s.d.rooms.rows),
		"categories":        len(s.d.categories.rows),
		"products":          len(s.d.products.rows),
		"clients":           len(s.d.clients.rows),
		"restaurant_tables": len(s.d.tables.rows),
		"restaurant_orders": len(s.d.orders.rows),
		"payments":          len(s.d.payments.rows),
	}
}

// conn acceso al store desde un repositorio; tx indica que ya corre dentro de Run.
type conn struct {
	s  *Store
	tx bool
}

func (c conn) lock() (*data, func()) {
	if !c.tx {
		c.s.txMu.RLock()
	}
	c.s.mu.Lock()
	return &c.s.d, func() {
		c.s.mu.Unlock()
		if !c.tx {
			c.s.txMu.RUnlock()
		}
	}
}

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta fn de forma exclusiva y restaura el snapshot si devuelve error.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run implementa ports.TxRunner.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	r.s.mu.Lock()
	snapshot := r.s.d.clone()
	r.s.mu.Unlock()

	c := conn{s: r.s, tx: true}
	err := fn(ports.TxRepos{
		Companies:   &CompanyRepo{c},
		Users:       &UserRepo{c},
		Invitations: &InvitationRepo{c},
		Products:    &ProductRepo{c},
		Tables:      &RestaurantTableRepo{c},
		Orders:      &RestaurantOrderRepo{c},
		Payments:    &PaymentRepo{c},
	})
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		r.s.mu.Lock()
		r.s.d = snapshot
		r.s.mu.Unlock()
		return err
	}
	return nil
}

// creatorName nombre del usuario que creó la fila (vacío para el sistema).
func (d *data) creatorName(a *entity.Audit) {
	if u, ok := d.users.rows[a.CreatedBy]; ok {
		a.CreatedByName = u.FullName()
	} else {
		a.CreatedByName = ""
	}
}

// visible informa si la fila está activa y pertenece al tenant.
func visible(a *entity.Audit, companyID int64) bool {
	return a.IsActive() && a.CompanyID == companyID
}

func now() time.Time { return time.Now().UTC() }

func markDeleted(a *entity.Audit, actorID int64) {
	a.MarkDeleted(actorID, now())
}

// matches búsqueda por subcadena sin distinguir mayúsculas.
func matches(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// page ordena por la columna pedida (desempate por id) y aplica LIMIT/OFFSET.
func page[T any](rows []T, q repository.ListQuery, allowed repository.SortFields, key func(T, string) any, id func(T) int64) []T {
	col := q.SortBy
	if !allowed.Allows(col) {
		col = repository.DefaultSort
	}
	slices.SortStableFunc(rows, func(a, b T) int {
		c := compare(key(a, col), key(b, col))
		if c == 0 {
			c = cmp.Compare(id(a), id(b))
		}
		if q.SortDesc {
			return -c
		}
		return c
	})
	if q.Offset >= len(rows) {
		return []T{}
	}
	end := len(rows)
	if q.Limit > 0 && q.Offset+q.Limit < end {
		end = q.Offset + q.Limit
	}
	return rows[q.Offset:end]
}

func compare(a, b any) int {
	switch x := a.(type) {
	case string:
		return cmp.Compare(x, b.(string))
	case int:
		return cmp.Compare(x, b.(int))
	case int64:
		return cmp.Compare(x, b.(int64))
	case decimal.Decimal:
		return x.Cmp(b.(decimal.Decimal))
	case time.Time:
		return x.Compare(b.(time.Time))
	}
	return 0
}

// auditKey valores de las columnas de auditoría ordenables.
func auditKey(a *entity.Audit, col string) (any, bool) {
	switch col {
	case "created_at":
		return a.CreatedAt, true
	case "updated_at":
		return a.UpdatedAt, true
	}
	return nil, false
}

func notFoundIfMissing(ok bool) error {
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// softDelete marca la fila id como eliminada si está activa en el tenant.
func softDelete[T any](t *table[T], companyID, id, actorID int64, audit func(*T) *entity.Audit) error {
	row, ok := t.rows[id]
	if !ok || !visible(audit(&row), companyID) {
		return domain.ErrNotFound
	}
	markDeleted(audit(&row), actorID)
	t.rows[id] = row
	return nil
}
