package ds

import (
	"time"

	"contentgenius/internal/app/role"

	"golang.org/x/crypto/bcrypt"
)

const passwordHashCost = 10

// Users table
type User struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"type:varchar(80);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(120);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	FirstName    string    `gorm:"type:varchar(50)"`
	LastName     string    `gorm:"type:varchar(50)"`
	IsAdmin      bool      `gorm:"default:false;not null"`
	IsActive     bool      `gorm:"default:true;not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`

	Orders []Order `gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func (u *User) Role() role.Role {
	if u.IsAdmin {
		return role.Admin
	}
	return role.User
}
