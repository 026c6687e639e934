package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRejectsBadItems(t *testing.T) {
	good := FoodItem{Name: "rice", Quantity: 1, Unit: UnitCup}
	assert.NoError(t, good.Validate())

	cases := map[string]FoodItem{
		"empty name":        {Quantity: 1, Unit: UnitCup},
		"zero quantity":     {Name: "rice", Quantity: 0, Unit: UnitCup},
		"negative quantity": {Name: "rice", Quantity: -1, Unit: UnitCup},
		"unknown unit":      {Name: "rice", Quantity: 1, Unit: "bowl"},
		"negative protein":  {Name: "rice", Quantity: 1, Unit: UnitCup, Protein: -2},
	}
	for name, item := range cases {
		assert.Error(t, item.Validate(), name)
	}
}

func TestUnitSet(t *testing.T) {
	for _, u := range Units {
		assert.True(t, ValidUnit(u), u)
	}
	assert.False(t, ValidUnit("bowl"))
	assert.False(t, ValidUnit(""))
	assert.False(t, ValidUnit("Gram"), "units are case sensitive")
}

func TestResetNutrientsKeepsNameAndQuantity(t *testing.T) {
	p := PendingEntry{
		Name: "apple", Quantity: "2", Unit: UnitItem,
		Calories: "95", Protein: "0.5", IsZeroPoint: true, LookupSucceeded: true,
	}
	p.ResetNutrients()
	assert.Equal(t, "apple", p.Name)
	assert.Equal(t, "2", p.Quantity)
	assert.Equal(t, UnitItem, p.Unit)
	assert.Empty(t, p.Calories)
	assert.False(t, p.IsZeroPoint)
	assert.False(t, p.LookupSucceeded)
}
