package model_test

import (
	"testing"

	"taskhub/internal/model"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestSanitized_StripsPasswordAndDerivesCompanyIDs(t *testing.T) {
	user := &model.User{
		ID:       "user-1",
		Name:     "Test User",
		Email:    "test@example.com",
		Role:     model.RoleAdmin,
		Password: "secret",
		CompanyIDs: pq.StringArray{"stale-company"},
		CompanyRoles: model.CompanyRoleList{
			{CompanyID: "company-1", Role: model.RoleAdmin},
			{CompanyID: "company-2", Role: model.RoleManager},
			{CompanyID: "company-1", Role: model.RoleAdmin},
		},
	}

	clean := user.Sanitized()

	assert.Empty(t, clean.Password)
	// De-duplicated, derived from the role assignments, not the stored list.
	assert.Equal(t, pq.StringArray{"company-1", "company-2"}, clean.CompanyIDs)
	// The original record keeps its password for the login path.
	assert.Equal(t, "secret", user.Password)
}

func TestSanitized_LegacyCompanyIDsFallback(t *testing.T) {
	user := &model.User{
		ID:         "user-1",
		Email:      "legacy@example.com",
		Role:       model.RoleEmployee,
		Password:   "secret",
		CompanyIDs: pq.StringArray{"company-1", "company-2"},
	}

	clean := user.Sanitized()

	assert.Equal(t, pq.StringArray{"company-1", "company-2"}, clean.CompanyIDs)
	assert.NotNil(t, clean.CompanyRoles)
}

func TestMemberOf_DualPath(t *testing.T) {
	withRoles := &model.User{
		Role:       model.RoleEmployee,
		CompanyIDs: pq.StringArray{"company-legacy"},
		CompanyRoles: model.CompanyRoleList{
			{CompanyID: "company-1", Role: model.RoleManager},
		},
	}
	// The explicit assignment list wins over the legacy list.
	assert.True(t, withRoles.MemberOf("company-1"))
	assert.False(t, withRoles.MemberOf("company-legacy"))

	legacy := &model.User{
		Role:       model.RoleEmployee,
		CompanyIDs: pq.StringArray{"company-legacy"},
	}
	assert.True(t, legacy.MemberOf("company-legacy"))
	assert.False(t, legacy.MemberOf("company-1"))
}

func TestRoleIn_FallsBackToTopLevelRole(t *testing.T) {
	user := &model.User{
		Role: model.RoleEmployee,
		CompanyRoles: model.CompanyRoleList{
			{CompanyID: "company-1", Role: model.RoleAdmin},
		},
	}

	assert.Equal(t, model.RoleAdmin, user.RoleIn("company-1"))
	assert.Equal(t, model.RoleEmployee, user.RoleIn("company-unknown"))
}

func TestNormalizeRoles_SynthesizesFromLegacyFields(t *testing.T) {
	positionID := "pos-1"
	user := &model.User{
		Role:       model.RoleManager,
		PositionID: &positionID,
		CompanyIDs: pq.StringArray{"company-1", "company-2"},
	}

	user.NormalizeRoles()

	assert.Len(t, user.CompanyRoles, 2)
	assert.Equal(t, model.CompanyRoleAssignment{CompanyID: "company-1", Role: model.RoleManager, PositionID: &positionID}, user.CompanyRoles[0])
	assert.Equal(t, model.RoleManager, user.Role)
	assert.Equal(t, pq.StringArray{"company-1", "company-2"}, user.CompanyIDs)
}

func TestNormalizeRoles_DefaultsToEmployee(t *testing.T) {
	user := &model.User{
		CompanyIDs: pq.StringArray{"company-1"},
	}

	user.NormalizeRoles()

	assert.Equal(t, model.RoleEmployee, user.Role)
	assert.Equal(t, model.RoleEmployee, user.CompanyRoles[0].Role)
}

func TestNormalizeRoles_TopLevelRoleFromFirstAssignment(t *testing.T) {
	user := &model.User{
		Role: model.RoleEmployee,
		CompanyRoles: model.CompanyRoleList{
			{CompanyID: "company-2", Role: model.RoleManager},
			{CompanyID: "company-1", Role: model.RoleEmployee},
		},
	}

	user.NormalizeRoles()

	assert.Equal(t, model.RoleManager, user.Role)
	assert.Equal(t, pq.StringArray{"company-2", "company-1"}, user.CompanyIDs)
}
