package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

func TestFormatSequentialID(t *testing.T) {
	assert.Equal(t, "P001", entity.FormatSequentialID(entity.ProductIDPrefix, 1))
	assert.Equal(t, "M042", entity.FormatSequentialID(entity.MovementIDPrefix, 42))
	assert.Equal(t, "M999", entity.FormatSequentialID(entity.MovementIDPrefix, 999))
	assert.Equal(t, "M1000", entity.FormatSequentialID(entity.MovementIDPrefix, 1000))
}

func TestMovement_QuantityOrZero(t *testing.T) {
	var m *entity.Movement
	assert.Equal(t, 0, m.QuantityOrZero())
	assert.Equal(t, 0, (&entity.Movement{}).QuantityOrZero())
	q := -3
	assert.Equal(t, -3, (&entity.Movement{Quantity: &q}).QuantityOrZero())
}

func TestValidRole(t *testing.T) {
	assert.True(t, entity.ValidRole("administrador"))
	assert.True(t, entity.ValidRole("operador"))
	assert.True(t, entity.ValidRole("analista"))
	assert.False(t, entity.ValidRole("admin"))
	assert.False(t, entity.ValidRole(""))
}
