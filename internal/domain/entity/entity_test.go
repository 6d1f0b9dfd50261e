package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "user", want: RoleUser},
		{in: "admin", want: RoleAdmin},
		{in: "ROLE_admin", want: RoleAdmin},
		{in: "ROLE_usuari", want: RoleUser},
		{in: " Admin ", want: RoleAdmin},
		{in: "root", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoleJSON(t *testing.T) {
	b, err := json.Marshal(PublicUser{Username: "eric", Email: "eric@example.com", Role: RoleAdmin})
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"eric","email":"eric@example.com","role":"admin"}`, string(b))

	var pu PublicUser
	require.NoError(t, json.Unmarshal([]byte(`{"role":"user"}`), &pu))
	assert.Equal(t, RoleUser, pu.Role)

	assert.Error(t, json.Unmarshal([]byte(`{"role":"owner"}`), &pu))
}

func TestParseMealCategory(t *testing.T) {
	c, ok := ParseMealCategory("merienda")
	assert.True(t, ok)
	assert.Equal(t, CategorySnack, c)

	_, ok = ParseMealCategory("Brunch")
	assert.False(t, ok)
}

func TestRecipeSumCalories(t *testing.T) {
	r := Recipe{Ingredients: []Ingredient{{Calories: 50}, {Calories: 120.5}, {}}}
	assert.InDelta(t, 170.5, r.SumCalories(), 1e-9)
}
