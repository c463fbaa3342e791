package lookup

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hoteleria-api/internal/domain"
)

func TestValidate_NormalizaMayusculas(t *testing.T) {
	got, err := ValidateRole("  manager ")
	require.NoError(t, err)
	assert.Equal(t, "MANAGER", got)

	got, err = ValidateClientType("walk_in")
	require.NoError(t, err)
	assert.Equal(t, "WALK_IN", got)
}

func TestValidate_NormalizaMinusculas(t *testing.T) {
	got, err := ValidateProductUnit("KG")
	require.NoError(t, err)
	assert.Equal(t, "kg", got)
}

func TestValidate_RechazaYListaValores(t *testing.T) {
	_, err := ValidatePaymentMethod("bitcoin")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "CASH, CARD, TRANSFER, ROOM_CHARGE")
}

func TestValidate_ClientTypeRegularNoExiste(t *testing.T) {
	assert.False(t, IsValid(FieldClientType, "REGULAR"))
}

func TestValidate_CampoDesconocido(t *testing.T) {
	_, err := Validate("color", "red")
	assert.Error(t, err)
	assert.False(t, IsValid("color", "red"))
	assert.Nil(t, Values("color"))
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(FieldRoomStatus, "cleaning"))
	assert.True(t, IsValid(FieldOrderStatus, "PAID"))
	assert.False(t, IsValid(FieldTableStatus, "CLEANING"))
	assert.False(t, IsValid(FieldRole, ""))
}

func TestValuesDevuelveCopia(t *testing.T) {
	v := Values(FieldUserStatus)
	v[0] = "HACKED"
	assert.Equal(t, []string{"ACTIVE", "INACTIVE"}, Values(FieldUserStatus))
}

func TestAllYFields(t *testing.T) {
	all := All()
	assert.Len(t, all, len(Fields()))
	assert.Contains(t, all, FieldInvitationStatus)
	assert.Equal(t, "client_type", Fields()[0])
}

func TestValidateHelpers_CadaCampo(t *testing.T) {
	cases := []struct {
		name string
		fn   func(string) (string, error)
		in   string
		want string
	}{
		{"role", ValidateRole, "admin", "ADMIN"},
		{"user_status", ValidateUserStatus, "inactive", "INACTIVE"},
		{"room_status", ValidateRoomStatus, "cleaning", "CLEANING"},
		{"table_status", ValidateTableStatus, "out_of_service", "OUT_OF_SERVICE"},
		{"order_status", ValidateOrderStatus, "paid", "PAID"},
		{"payment_method", ValidatePaymentMethod, "room_charge", "ROOM_CHARGE"},
		{"client_type", ValidateClientType, "corporate", "CORPORATE"},
		{"product_unit", ValidateProductUnit, "Bottle", "bottle"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.fn(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			_, err = tc.fn("no-existe")
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
