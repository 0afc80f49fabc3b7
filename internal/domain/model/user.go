package model

import "time"

type User struct {
	ID    string `gorm:"type:uuid;primaryKey" json:"id"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`

	//bcryptハッシュを保存（平文は保存しない）
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`

	Firstname string `gorm:"type:varchar(255);not null" json:"firstname"`
	Lastname  string `gorm:"type:varchar(255);not null" json:"lastname"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
