package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username   string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Password   string    `gorm:"type:varchar(255);not null"`
	Role       string    `gorm:"type:varchar(20);not null;default:'employee'"`
	Department string    `gorm:"type:varchar(100);not null;default:''"`
	// StaffHouse marks employees living in staff housing; payroll applies a
	// flat weekly deduction for them.
	StaffHouse bool `gorm:"not null;default:false"`
	Active     bool `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (User) TableName() string {
	return "users"
}
