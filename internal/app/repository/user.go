package repository

import (
	"errors"

	"contentgenius/internal/app/ds"

	"gorm.io/gorm"
)

func (r *Repository) GetUserByID(id uint) (*ds.User, error) {
	var user ds.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByUsername(username string) (*ds.User, error) {
	var user ds.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser rejects duplicate usernames and emails before inserting.
func (r *Repository) CreateUser(user *ds.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		taken, err := exists(tx.Model(&ds.User{}).Where("username = ?", user.Username))
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}

		taken, err = exists(tx.Model(&ds.User{}).Where("email = ?", user.Email))
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}

		return tx.Create(user).Error
	})
}

func (r *Repository) SetUserActive(id uint, active bool) error {
	result := r.db.Model(&ds.User{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func exists(query *gorm.DB) (bool, error) {
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
