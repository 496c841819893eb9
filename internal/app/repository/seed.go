package repository

import (
	"contentgenius/internal/app/ds"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Seed inserts catalog templates and the bootstrap admin, skipping rows that
// already exist by content type or username.
func (r *Repository) Seed(templates []ds.ContentTemplate, admin *ds.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range templates {
			tpl := templates[i]
			found, err := exists(tx.Model(&ds.ContentTemplate{}).Where("content_type = ?", tpl.ContentType))
			if err != nil {
				return err
			}
			if found {
				continue
			}
			if err := tx.Create(&tpl).Error; err != nil {
				return err
			}
			logrus.WithField("content_type", tpl.ContentType).Info("content template seeded")
		}

		if admin == nil {
			return nil
		}
		found, err := exists(tx.Model(&ds.User{}).Where("username = ?", admin.Username))
		if err != nil {
			return err
		}
		if found {
			return nil
		}
		if err := tx.Create(admin).Error; err != nil {
			return err
		}
		logrus.WithField("username", admin.Username).Info("admin user created")
		return nil
	})
}
