// Package lookup centraliza los valores permitidos de cada campo enumerado
// (roles, estados, métodos de pago, unidades). Reemplaza tablas de catálogo.
package lookup

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
)

// Nombres de campo del registro.
const (
	FieldRole             = "role"
	FieldUserStatus       = "user_status"
	FieldRoomStatus       = "room_status"
	FieldTableStatus      = "table_status"
	FieldOrderStatus      = "order_status"
	FieldPaymentMethod    = "payment_method"
	FieldClientType       = "client_type"
	FieldInvitationStatus = "invitation_status"
	FieldProductUnit      = "product_unit"
)

type fold int

const (
	upper fold = iota
	lower
)

type field struct {
	values []string
	fold   fold
}

var registry = map[string]field{
	FieldRole: {values: []string{
		entity.RoleAdmin, entity.RoleManager, entity.RoleReceptionist, entity.RoleWaiter, entity.RoleStaff,
	}},
	FieldUserStatus: {values: []string{entity.UserActive, entity.UserInactive}},
	FieldRoomStatus: {values: []string{
		entity.RoomAvailable, entity.RoomOccupied, entity.RoomReserved, entity.RoomCleaning, entity.RoomMaintenance,
	}},
	FieldTableStatus: {values: []string{
		entity.TableAvailable, entity.TableOccupied, entity.TableReserved, entity.TableOutOfService,
	}},
	FieldOrderStatus: {values: []string{
		entity.OrderPending, entity.OrderPreparing, entity.OrderServed, entity.OrderPaid, entity.OrderCancelled,
	}},
	FieldPaymentMethod: {values: []string{
		entity.PaymentCash, entity.PaymentCard, entity.PaymentTransfer, entity.PaymentRoomCharge,
	}},
	FieldClientType: {values: []string{entity.ClientIndividual, entity.ClientCorporate, entity.ClientWalkIn}},
	FieldInvitationStatus: {values: []string{
		entity.InvitationPending, entity.InvitationAccepted, entity.InvitationCancelled, entity.InvitationExpired,
	}},
	FieldProductUnit: {values: []string{"unit", "kg", "g", "l", "ml", "portion", "bottle"}, fold: lower},
}

func (f field) normalize(v string) string {
	v = strings.TrimSpace(v)
	if f.fold == lower {
		return cases.Lower(language.Und).String(v)
	}
	return cases.Upper(language.Und).String(v)
}

// IsValid informa si v (ya normalizado o no) pertenece al campo.
func IsValid(name, v string) bool {
	f, ok := registry[name]
	if !ok {
		return false
	}
	return slices.Contains(f.values, f.normalize(v))
}

// Validate normaliza v según la convención del campo y lo rechaza si no está permitido.
// El error lista los valores válidos.
func Validate(name, v string) (string, error) {
	f, ok := registry[name]
	if !ok {
		return "", fmt.Errorf("lookup: campo desconocido %q", name)
	}
	n := f.normalize(v)
	if !slices.Contains(f.values, n) {
		return "", domain.Invalid("%s inválido %q, valores permitidos: %s", name, v, strings.Join(f.values, ", "))
	}
	return n, nil
}

// Values devuelve una copia de los valores permitidos del campo (nil si no existe).
func Values(name string) []string {
	f, ok := registry[name]
	if !ok {
		return nil
	}
	return slices.Clone(f.values)
}

// Fields devuelve los nombres de campo ordenados.
func Fields() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// All devuelve el registro completo para poblar selectores.
func All() map[string][]string {
	out := make(map[string][]string, len(registry))
	for k, f := range registry {
		out[k] = slices.Clone(f.values)
	}
	return out
}

// ValidateRole normaliza un rol a mayúsculas (admin -> ADMIN).
func ValidateRole(v string) (string, error) { return Validate(FieldRole, v) }

// ValidateUserStatus normaliza el estado de un usuario.
func ValidateUserStatus(v string) (string, error) { return Validate(FieldUserStatus, v) }

// ValidateRoomStatus normaliza el estado de una habitación.
func ValidateRoomStatus(v string) (string, error) { return Validate(FieldRoomStatus, v) }

// ValidateTableStatus normaliza el estado de una mesa.
func ValidateTableStatus(v string) (string, error) { return Validate(FieldTableStatus, v) }

// ValidateOrderStatus normaliza el estado de una orden. No valida la transición.
func ValidateOrderStatus(v string) (string, error) { return Validate(FieldOrderStatus, v) }

// ValidatePaymentMethod normaliza el método de pago (cash -> CASH).
func ValidatePaymentMethod(v string) (string, error) { return Validate(FieldPaymentMethod, v) }

// ValidateClientType normaliza el tipo de cliente.
func ValidateClientType(v string) (string, error) { return Validate(FieldClientType, v) }

// ValidateProductUnit normaliza la unidad de medida a minúsculas (BOTTLE -> bottle).
func ValidateProductUnit(v string) (string, error) { return Validate(FieldProductUnit, v) }
