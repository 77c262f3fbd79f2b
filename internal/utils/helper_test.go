package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Padaria Central", "padaria-central"},
		{"  Loja  da  Esquina ", "loja-da-esquina"},
		{"Cafe & Cia!", "cafe-cia"},
		{"---", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "input %q", tt.in)
	}
}

func TestNormalizePhoneBR(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"(11) 99999-0000", "5511999990000"},
		{"5511999990000", "5511999990000"},
		{"11 98888 7777", "5511988887777"},
		{"", ""},
		{"abc", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePhoneBR(tt.in), "input %q", tt.in)
	}
}

func TestToUint(t *testing.T) {
	n, err := ToUint("42")
	assert.NoError(t, err)
	assert.Equal(t, uint(42), n)

	_, err = ToUint("abc")
	assert.Error(t, err)

	_, err = ToUint("-1")
	assert.Error(t, err)
}

func TestUserContext(t *testing.T) {
	ctx := SetUserContext(context.Background(), 7, "joao@example.com", RoleAdmin)

	id, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, uint(7), id)

	assert.Equal(t, "joao@example.com", GetUserEmailFromContext(ctx))
	assert.Equal(t, RoleAdmin, GetUserRoleFromContext(ctx))

	assert.True(t, IsAdmin(ctx))

	_, ok = GetUserIDFromContext(context.Background())
	assert.False(t, ok)
}
