package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Roles a user can hold, either globally or per company.
const (
	RoleAdmin    = "Admin"
	RoleManager  = "Manager"
	RoleEmployee = "Employee"
)

// CompanyRoleAssignment ties a user to one company with a role and an
// optional position. The assignment list is the source of truth for
// multi-company membership; the top-level fields on User are derived.
type CompanyRoleAssignment struct {
	CompanyID  string  `json:"companyId"`
	Role       string  `json:"role"`
	PositionID *string `json:"positionId,omitempty"`
}

// CompanyRoleList is stored as a jsonb column.
type CompanyRoleList []CompanyRoleAssignment

func (l CompanyRoleList) Value() (driver.Value, error) {
	if l == nil {
		l = CompanyRoleList{}
	}
	return json.Marshal(l)
}

func (l *CompanyRoleList) Scan(value interface{}) error {
	if value == nil {
		*l = CompanyRoleList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("company roles: unsupported column type")
	}
	if len(data) == 0 {
		*l = CompanyRoleList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

type User struct {
	ID           string          `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"not null" json:"name"`
	Email        string          `gorm:"uniqueIndex;not null" json:"email"`
	Role         string          `json:"role"`
	CompanyIDs   pq.StringArray  `gorm:"type:text[]" json:"companyIds"`
	PositionID   *string         `json:"positionId,omitempty"`
	CompanyRoles CompanyRoleList `gorm:"type:jsonb" json:"companyRoles"`
	Avatar       string          `json:"avatar"`
	Password     string          `json:"-"`
}

// roleAssignments is the single membership resolver. It prefers the
// explicit CompanyRoles list and falls back to legacy CompanyIDs entries,
// each treated as an implicit assignment carrying the user's top-level
// role and position.
func (u *User) roleAssignments() CompanyRoleList {
	if len(u.CompanyRoles) > 0 {
		return u.CompanyRoles
	}
	role := u.Role
	if role == "" {
		role = RoleEmployee
	}
	assignments := make(CompanyRoleList, 0, len(u.CompanyIDs))
	for _, companyID := range u.CompanyIDs {
		assignments = append(assignments, CompanyRoleAssignment{
			CompanyID:  companyID,
			Role:       role,
			PositionID: u.PositionID,
		})
	}
	return assignments
}

// MemberOf reports whether the user belongs to the given company.
func (u *User) MemberOf(companyID string) bool {
	for _, a := range u.roleAssignments() {
		if a.CompanyID == companyID {
			return true
		}
	}
	return false
}

// RoleIn returns the user's effective role in the given company, falling
// back to the top-level role when no assignment matches.
func (u *User) RoleIn(companyID string) string {
	for _, a := range u.roleAssignments() {
		if a.CompanyID == companyID {
			return a.Role
		}
	}
	return u.Role
}

// PublicCompanyIDs is the de-duplicated set of company ids derived from the
// role assignments, or the stored CompanyIDs when no assignments exist.
func (u *User) PublicCompanyIDs() pq.StringArray {
	if len(u.CompanyRoles) == 0 {
		if u.CompanyIDs == nil {
			return pq.StringArray{}
		}
		return u.CompanyIDs
	}
	seen := make(map[string]bool, len(u.CompanyRoles))
	ids := make(pq.StringArray, 0, len(u.CompanyRoles))
	for _, a := range u.CompanyRoles {
		if !seen[a.CompanyID] {
			seen[a.CompanyID] = true
			ids = append(ids, a.CompanyID)
		}
	}
	return ids
}

// NormalizeRoles fills in CompanyRoles from legacy fields when the caller
// supplied none, and re-derives the top-level role and company id list.
func (u *User) NormalizeRoles() {
	if len(u.CompanyRoles) == 0 {
		u.CompanyRoles = u.roleAssignments()
	}
	if len(u.CompanyRoles) > 0 {
		u.Role = u.CompanyRoles[0].Role
	} else if u.Role == "" {
		u.Role = RoleEmployee
	}
	u.CompanyIDs = u.PublicCompanyIDs()
}

// Sanitized returns a copy safe to serialize: the password is stripped and
// the public company id list is recomputed from the role assignments.
func (u *User) Sanitized() *User {
	clean := *u
	clean.Password = ""
	clean.CompanyIDs = u.PublicCompanyIDs()
	if clean.CompanyRoles == nil {
		clean.CompanyRoles = CompanyRoleList{}
	}
	return &clean
}

func (u *User) AfterFind(_ *gorm.DB) error {
	if u.CompanyIDs == nil {
		u.CompanyIDs = pq.StringArray{}
	}
	if u.CompanyRoles == nil {
		u.CompanyRoles = CompanyRoleList{}
	}
	return nil
}
