package model_test

import (
	"math"
	"testing"

	"github.com/Lutefd/crypto-api/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		expected      model.Sort
		expectedOrder string
		expectedError bool
	}{
		{"Empty uses default", "", model.DefaultSort, "ticker ASC", false},
		{"Property only", "name", model.Sort{Property: "name", Direction: model.SortAsc}, "name ASC", false},
		{"Descending", "marketCap,desc", model.Sort{Property: "marketCap", Direction: model.SortDesc}, "market_cap DESC", false},
		{"Ascending upper case", "numberOfCoins,ASC", model.Sort{Property: "numberOfCoins", Direction: model.SortAsc}, "number_of_coins ASC", false},
		{"Unknown property", "price", model.Sort{}, "", true},
		{"Column name is not a property", "market_cap", model.Sort{}, "", true},
		{"Unknown direction", "name,sideways", model.Sort{}, "", true},
		{"Too many parts", "name,asc,extra", model.Sort{}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sort, err := model.ParseSort(tt.raw)

			if tt.expectedError {
				assert.ErrorIs(t, err, model.ErrInvalidSort)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, sort)
			assert.Equal(t, tt.expectedOrder, sort.OrderBy())
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, model.PageRequest{Page: 0, Size: 10}.Offset())
	assert.Equal(t, 30, model.PageRequest{Page: 3, Size: 10}.Offset())
	assert.Equal(t, math.MaxInt, model.PageRequest{Page: 922337203685477581, Size: 10}.Offset())
	assert.Equal(t, math.MaxInt, model.PageRequest{Page: math.MaxInt, Size: 2}.Offset())
}
