package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFinePolicy_Calculate проверяет все стоковые политики
func TestFinePolicy_Calculate(t *testing.T) {
	tests := []struct {
		name   string
		policy FinePolicy
		hours  int
		want   float64
	}{
		{"fixed не зависит от часов", PolicyFixed, 0, 50.0},
		{"fixed при 100 часах", PolicyFixed, 100, 50.0},
		{"hourly линейная", PolicyHourly, 3, 60.0},
		{"hourly при нуле часов", PolicyHourly, 0, 0.0},
		{"progressive база плюс надбавка", PolicyProgressive, 5, 100.0},
		{"progressive при нуле часов", PolicyProgressive, 0, 50.0},
		{"отрицательные часы прижимаются к нулю", PolicyHourly, -4, 0.0},
		{"неизвестная политика дает ноль", FinePolicy("weekly"), 5, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.Calculate(tt.hours))
		})
	}
}

// TestPolicyContext_Switch проверяет переключение политики и фиксацию
// момента переключения
func TestPolicyContext_Switch(t *testing.T) {
	ctx := NewPolicyContext(PolicyFixed)
	require.Equal(t, PolicyFixed, ctx.Active)
	require.False(t, ctx.EffectiveFrom.IsZero())

	at := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	err := ctx.Switch(PolicyProgressive, at)
	require.NoError(t, err)
	assert.Equal(t, PolicyProgressive, ctx.Active)
	// effectiveFrom фиксирует момент переключения
	assert.Equal(t, at, ctx.EffectiveFrom)
}

func TestPolicyContext_SwitchUnknown(t *testing.T) {
	ctx := NewPolicyContext(PolicyHourly)

	err := ctx.Switch(FinePolicy("weekly"), time.Now())
	assert.ErrorIs(t, err, ErrUnknownPolicy)
	// активная политика не изменилась
	assert.Equal(t, PolicyHourly, ctx.Active)
}

func TestNewFine(t *testing.T) {
	fine := NewFine("  abc123 ", FineTypeOverstay, 50.0)

	assert.Equal(t, "ABC123", fine.LicensePlate)
	assert.Equal(t, FineTypeOverstay, fine.Type)
	assert.Equal(t, 50.0, fine.Amount)
	assert.False(t, fine.Paid)
	assert.False(t, fine.IssuedAt.IsZero())
	assert.NoError(t, fine.Validate())
}

func TestFine_Validate(t *testing.T) {
	tests := []struct {
		name string
		fine *Fine
		ok   bool
	}{
		{"корректный штраф", NewFine("ABC123", FineTypeUnpaidBalance, 6.0), true},
		{"пустой номер", &Fine{Type: FineTypeOverstay, Amount: 10}, false},
		{"отрицательная сумма", &Fine{LicensePlate: "A1", Type: FineTypeOverstay, Amount: -1}, false},
		{"неизвестный тип", &Fine{LicensePlate: "A1", Type: FineType("speeding"), Amount: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fine.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidFineData)
			}
		})
	}
}

func TestTotalFineAmount(t *testing.T) {
	fines := []*Fine{
		NewFine("A1", FineTypeOverstay, 50.0),
		NewFine("A1", FineTypeUnpaidBalance, 6.0),
	}
	assert.Equal(t, 56.0, TotalFineAmount(fines))

	// nil-список - пустой, а не паника
	assert.Equal(t, 0.0, TotalFineAmount(nil))
}
