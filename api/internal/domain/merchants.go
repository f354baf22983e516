package domain

type Merchants struct {
	Model
	ID           uint   `gorm:"primaryKey"`
	MerchantName string `gorm:"unique;size:64;not null"`
	MerchantID   string `gorm:"unique;size:36;not null"`
	ApiKey       string `gorm:"unique;size:64;not null"`
	WebhookUrl   string `gorm:"type:text"` // delivery target, one per merchant
	UserID       string `gorm:"size:36;not null"`
}
