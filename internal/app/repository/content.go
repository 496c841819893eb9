package repository

import (
	"errors"
	"time"

	"contentgenius/internal/app/ds"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrOrderNotInProgress = errors.New("order is not in progress")

// GeneratedContent is the outcome of one generation run.
type GeneratedContent struct {
	Text         string
	Format       ds.ContentFormat
	QualityScore float64
	Approved     bool
}

func (r *Repository) GetContentByOrderID(orderID uint) (*ds.Content, error) {
	var content ds.Content
	err := r.db.Where("order_id = ?", orderID).First(&content).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// GetContentByID loads the content together with its order.
func (r *Repository) GetContentByID(id uint) (*ds.Content, error) {
	var content ds.Content
	err := r.db.Preload("Order").First(&content, id).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *Repository) ApproveContent(id uint) (*ds.Content, error) {
	result := r.db.Model(&ds.Content{}).Where("id = ?", id).Update("is_approved", true)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetContentByID(id)
}

// RequestRevision bumps the revision counter, clears approval and reopens the order.
func (r *Repository) RequestRevision(id uint, notes string) (*ds.Content, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var content ds.Content
		err := lockForUpdate(tx).First(&content, id).Error
		if err != nil {
			return err
		}

		err = tx.Model(&content).Updates(map[string]interface{}{
			"revision_count": gorm.Expr("revision_count + ?", 1),
			"is_approved":    false,
		}).Error
		if err != nil {
			return err
		}

		var order ds.Order
		err = lockForUpdate(tx).First(&order, content.OrderID).Error
		if err != nil {
			return err
		}
		requirements := order.GetRequirements()
		requirements.RevisionNotes = notes

		return tx.Model(&order).Updates(map[string]interface{}{
			"status":       ds.OrderStatusInProgress,
			"requirements": datatypes.NewJSONType(requirements),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetContentByID(id)
}

// SaveGeneratedContent stores the generation result and completes the order.
// An existing content row for the order is overwritten, keeping its revision count.
func (r *Repository) SaveGeneratedContent(orderID uint, generated GeneratedContent) (*ds.Content, *ds.Order, error) {
	var (
		content ds.Content
		order   ds.Order
	)
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := lockForUpdate(tx).First(&order, orderID).Error
		if err != nil {
			return err
		}
		if order.Status != ds.OrderStatusInProgress {
			return ErrOrderNotInProgress
		}

		score := generated.QualityScore
		var existing []ds.Content
		err = tx.Where("order_id = ?", orderID).Limit(1).Find(&existing).Error
		if err != nil {
			return err
		}

		if len(existing) > 0 {
			content = existing[0]
			err = tx.Model(&content).Updates(map[string]interface{}{
				"generated_content": generated.Text,
				"content_format":    generated.Format,
				"quality_score":     score,
				"is_approved":       generated.Approved,
			}).Error
			content.GeneratedContent = generated.Text
			content.ContentFormat = generated.Format
			content.QualityScore = &score
			content.IsApproved = generated.Approved
		} else {
			content = ds.Content{
				OrderID:          orderID,
				GeneratedContent: generated.Text,
				ContentFormat:    generated.Format,
				QualityScore:     &score,
				IsApproved:       generated.Approved,
			}
			err = tx.Omit(clause.Associations).Create(&content).Error
		}
		if err != nil {
			return err
		}

		now := time.Now()
		err = tx.Model(&order).Updates(map[string]interface{}{
			"status":       ds.OrderStatusCompleted,
			"completed_at": now,
		}).Error
		if err != nil {
			return err
		}
		order.Status = ds.OrderStatusCompleted
		order.CompletedAt = &now
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &content, &order, nil
}
