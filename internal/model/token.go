package model

// Token is an opaque bearer credential, one row per login session. There
// is no expiry; rows are removed only by explicit logout.
type Token struct {
	Token  string `gorm:"primaryKey" json:"token"`
	UserID string `gorm:"index" json:"userId"`
}
