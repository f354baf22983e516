package domain

type Users struct {
	Model
	ID           uint   `gorm:"primaryKey"`
	UserID       string `gorm:"unique;size:36;not null"`
	Name         string `gorm:"size:128;not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
}
