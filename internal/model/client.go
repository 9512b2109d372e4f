package model

// Client is a billing counterparty scoped to one company.
type Client struct {
	ID        string `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	CompanyID string `gorm:"index" json:"companyId"`
}
