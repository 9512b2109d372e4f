package model

import "time"

// Comment is append-only; there are no edit or delete operations.
type Comment struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	TaskID    string    `gorm:"index" json:"taskId"`
	UserID    string    `json:"userId"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
