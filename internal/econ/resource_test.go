package econ_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/steamraiders/internal/econ"
)

func TestAmountsClampTo(t *testing.T) {
	stock := econ.Amounts{12000, -5, 4000}
	clamped := stock.ClampTo(econ.InitialStorage)

	assert.Equal(t, econ.Amounts{10000, 0, 4000}, clamped)
}

func TestAmountsArithmetic(t *testing.T) {
	a := econ.Amounts{10, 20, 30}

	assert.Equal(t, econ.Amounts{11, 22, 33}, a.Add(econ.Amounts{1, 2, 3}))
	assert.Equal(t, econ.Amounts{9, 18, 27}, a.Sub(econ.Amounts{1, 2, 3}))
	assert.Equal(t, econ.Amounts{20, 40, 60}, a.Scale(2))
}

func TestResourceNames(t *testing.T) {
	assert.Equal(t, "Orichalcum", econ.Orichalcum.String())
	assert.Equal(t, "Focus Crystal", econ.FocusCrystal.String())
	assert.Equal(t, "Vitriol", econ.Vitriol.String())
}
