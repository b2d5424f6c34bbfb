package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_Satisfies(t *testing.T) {
	tests := []struct {
		name     string
		role     domain.Role
		required domain.Role
		want     bool
	}{
		{name: "viewer meets viewer", role: domain.RoleViewer, required: domain.RoleViewer, want: true},
		{name: "viewer below user", role: domain.RoleViewer, required: domain.RoleUser, want: false},
		{name: "user meets user", role: domain.RoleUser, required: domain.RoleUser, want: true},
		{name: "user below manager", role: domain.RoleUser, required: domain.RoleManager, want: false},
		{name: "manager above user", role: domain.RoleManager, required: domain.RoleUser, want: true},
		{name: "admin meets manager", role: domain.RoleAdmin, required: domain.RoleManager, want: true},
		{name: "admin meets admin", role: domain.RoleAdmin, required: domain.RoleAdmin, want: true},
		{name: "unknown meets nothing", role: domain.RoleUnknown, required: domain.RoleUnknown, want: false},
		{name: "out of range meets nothing", role: domain.Role(42), required: domain.RoleViewer, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.Satisfies(tt.required))
		})
	}
}

func TestParseRole(t *testing.T) {
	r, err := domain.ParseRole(" manager ")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, r)

	_, err = domain.ParseRole("OWNER")
	assert.Error(t, err)
}

func TestRole_JSON(t *testing.T) {
	payload := struct {
		Role domain.Role `json:"role"`
	}{Role: domain.RoleAdmin}

	b, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"ADMIN"}`, string(b))

	payload.Role = domain.RoleUnknown
	require.NoError(t, json.Unmarshal([]byte(`{"role":"viewer"}`), &payload))
	assert.Equal(t, domain.RoleViewer, payload.Role)
}

func TestUser_EffectiveRole(t *testing.T) {
	u := domain.User{Role: domain.RoleManager, IsActive: true}
	assert.Equal(t, domain.RoleManager, u.EffectiveRole())

	u.IsActive = false
	assert.Equal(t, domain.RoleViewer, u.EffectiveRole())
}

func TestEntryStatus_IsValid(t *testing.T) {
	for _, s := range domain.EntryStatuses {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, domain.EntryStatus("REJECTED").IsValid())
	assert.False(t, domain.EntryStatus("").IsValid())
	assert.True(t, domain.StatusConfirmed.IsTerminal())
	assert.False(t, domain.StatusApproved.IsTerminal())
}
