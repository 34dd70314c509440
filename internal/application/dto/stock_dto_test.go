package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/logistic-api/internal/application/dto"
)

func TestParseProductRef(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"numero", "7", "7"},
		{"texto", `"7"`, "7"},
		{"texto libre", `"abc"`, "abc"},
		{"objeto", `{"id": 3, "title": "x"}`, "3"},
		{"objeto con id texto", `{"id": "3"}`, "3"},
		{"objeto sin id", `{"title": "x"}`, `{"title": "x"}`},
		{"nulo", "null", "null"},
		{"ausente", "", "null"},
		{"decimal", "1.5", "1.5"},
		{"booleano", "true", "true"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ref := dto.ParseProductRef(json.RawMessage(tc.raw))
			_, resolved := ref.Resolved()
			assert.False(t, resolved)
			assert.Equal(t, tc.want, ref.Raw())
		})
	}
}

func TestParseProductRef_Numerico(t *testing.T) {
	assert.True(t, dto.ParseProductRef(json.RawMessage(`1.0`)).Numeric())
	assert.True(t, dto.ParseProductRef(json.RawMessage(`-2`)).Numeric())
	assert.True(t, dto.ParseProductRef(json.RawMessage(`{"id": 3e0}`)).Numeric())
	assert.False(t, dto.ParseProductRef(json.RawMessage(`"1.0"`)).Numeric())
	assert.False(t, dto.ParseProductRef(json.RawMessage(`null`)).Numeric())
}

func TestToPositionInputs_Defaults(t *testing.T) {
	var req dto.UpdateStockRequest
	require.NoError(t, json.Unmarshal([]byte(`{"positions":[{"product":1},{"product":2,"quantity":4,"price":"9.999"}]}`), &req))
	require.NotNil(t, req.Positions)

	in := dto.ToPositionInputs(*req.Positions)
	require.Len(t, in, 2)
	assert.Equal(t, 0, in[0].Quantity)
	assert.True(t, in[0].Price.Equal(decimal.Zero))
	assert.Equal(t, 4, in[1].Quantity)
	assert.True(t, in[1].Price.Equal(decimal.RequireFromString("9.999")))
}

func TestUpdateStockRequest_PositionsAusentes(t *testing.T) {
	var absent, empty dto.UpdateStockRequest
	require.NoError(t, json.Unmarshal([]byte(`{"address":"x"}`), &absent))
	require.NoError(t, json.Unmarshal([]byte(`{"positions":[]}`), &empty))
	assert.Nil(t, absent.Positions)
	require.NotNil(t, empty.Positions)
	assert.Empty(t, *empty.Positions)
}

func TestPageRequest_DefaultPage(t *testing.T) {
	p := dto.PageRequest{Limit: 500, Offset: -2}
	p.DefaultPage()
	assert.Equal(t, dto.PageRequest{Limit: 100, Offset: 0}, p)

	p = dto.PageRequest{}
	p.DefaultPage()
	assert.Equal(t, 20, p.Limit)
}
