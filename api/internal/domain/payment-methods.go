package domain

type PaymentMethods struct {
	Model
	ID          uint   `gorm:"primaryKey"`
	MethodID    string `gorm:"unique;size:36;not null"`
	MerchantID  string `gorm:"size:36;not null"`
	Type        string `gorm:"size:32;not null"` // credit_card / pix / boleto ...
	Description string `gorm:"type:text"`
}
