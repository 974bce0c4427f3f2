package model

import (
	"time"
)

// UserModel mirrors the 'users' table. Name is the primary key and role references roles.name.
type UserModel struct {
	Name         string    `gorm:"type:varchar(32);primaryKey"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(128);not null"`
	Salt         string    `gorm:"type:varchar(128);not null"`
	Iterations   int       `gorm:"not null"`
	Role         string    `gorm:"type:varchar(32);not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// RoleModel mirrors the 'roles' lookup table.
type RoleModel struct {
	Name string `gorm:"type:varchar(32);primaryKey"`
}

// TableName explicitly sets the table name for GORM.
func (RoleModel) TableName() string {
	return "roles"
}
