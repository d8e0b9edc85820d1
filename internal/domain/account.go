package domain

import "time"

// Account is a caller identity. SecretHash is a bcrypt hash.
type Account struct {
	Address    string    `gorm:"column:address;type:varchar(128);primaryKey" json:"address"`
	Role       string    `gorm:"column:role;type:varchar(20);not null" json:"role"`
	SecretHash string    `gorm:"column:secret_hash;not null" json:"-"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}
