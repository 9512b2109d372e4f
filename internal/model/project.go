package model

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Project visibility. Read-access gating is a caller concern; the store
// only records the value.
const (
	VisibilityPublic  = "Public"
	VisibilityPrivate = "Private"
)

type Project struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description *string        `json:"description"`
	Color       *string        `json:"color"`
	CompanyID   string         `gorm:"index" json:"companyId"`
	Visibility  string         `json:"visibility"`
	MemberIDs   pq.StringArray `gorm:"type:text[]" json:"memberIds"`
	ClientID    *string        `json:"clientId"`
}

func (p *Project) AfterFind(_ *gorm.DB) error {
	if p.MemberIDs == nil {
		p.MemberIDs = pq.StringArray{}
	}
	return nil
}
