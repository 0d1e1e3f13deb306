package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRole_ParseAndString(t *testing.T) {
	for _, r := range Roles() {
		parsed, err := ParseRole(r.String())
		require.NoError(t, err)
		require.Equal(t, r, parsed)
	}

	_, err := ParseRole("client")
	require.Error(t, err)
	_, err = ParseRole("")
	require.Error(t, err)

	require.False(t, Role(0).Valid())
	require.Equal(t, "Role(9)", Role(9).String())
}

func TestRole_Order(t *testing.T) {
	require.Less(t, RoleClient, RoleEmployee)
	require.Less(t, RoleEmployee, RoleAdmin)

	require.Equal(t, []Role{RoleEmployee, RoleAdmin}, AtLeast(RoleEmployee))
	require.Equal(t, Roles(), AtLeast(RoleClient))
	require.Equal(t, []Role{RoleAdmin}, AtLeast(RoleAdmin))
}

func TestClaims_JSONUsesRoleNames(t *testing.T) {
	c := ClaimsFor(&Account{ID: 7, FirstName: "Ada", LastName: "Lovelace", Email: "a@b.com", PasswordHash: "secret-hash", Role: RoleEmployee})

	b, err := json.Marshal(c)
	require.NoError(t, err)
	require.Contains(t, string(b), `"account_type":"Employee"`)
	require.NotContains(t, string(b), "secret-hash")

	var back Claims
	require.NoError(t, json.Unmarshal(b, &back))
	require.Equal(t, RoleEmployee, back.Role)
	require.Equal(t, int64(7), back.AccountID)

	require.Error(t, json.Unmarshal([]byte(`{"account_type":"Root"}`), &back))
}

func TestClaims_HasRoleAndCanManage(t *testing.T) {
	client := &Claims{AccountID: 1, Role: RoleClient}
	admin := &Claims{AccountID: 2, Role: RoleAdmin}

	require.True(t, client.HasRole(RoleClient))
	require.False(t, client.HasRole(RoleEmployee, RoleAdmin))
	require.False(t, client.HasRole())

	require.True(t, client.CanManage(1))
	require.False(t, client.CanManage(2))
	require.True(t, admin.CanManage(1))
}
