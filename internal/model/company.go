package model

// Company is the root tenant unit. Everything below it is scoped by
// companyId, directly or through a parent entity.
type Company struct {
	ID      string  `gorm:"primaryKey" json:"id"`
	Name    string  `gorm:"not null" json:"name"`
	Website *string `json:"website,omitempty"`
	Address *string `json:"address,omitempty"`
}

// Position is a global catalog entry, loosely associated with a company
// for display. The association is not enforced.
type Position struct {
	ID        string  `gorm:"primaryKey" json:"id"`
	Title     string  `gorm:"not null" json:"title"`
	CompanyID *string `json:"companyId,omitempty"`
}
