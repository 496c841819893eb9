package repository

import (
	"time"

	"contentgenius/internal/app/ds"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderChanges lists the fields an update touches; nil fields are left alone.
type OrderChanges struct {
	Title        *string
	Description  *string
	Requirements *ds.Requirements
	Priority     *ds.Priority
	Status       *ds.OrderStatus
}

func (c OrderChanges) columns(now time.Time) map[string]interface{} {
	updates := map[string]interface{}{}
	if c.Title != nil {
		updates["title"] = *c.Title
	}
	if c.Description != nil {
		updates["description"] = *c.Description
	}
	if c.Requirements != nil {
		updates["requirements"] = datatypes.NewJSONType(*c.Requirements)
	}
	if c.Priority != nil {
		updates["priority"] = *c.Priority
	}
	if c.Status != nil {
		updates["status"] = *c.Status
		if *c.Status == ds.OrderStatusCompleted {
			updates["completed_at"] = now
		}
	}
	return updates
}

// ListOrders returns the user's orders, or every order when all is set, newest first.
func (r *Repository) ListOrders(userID uint, all bool) ([]ds.Order, error) {
	var orders []ds.Order
	query := r.db.Order("created_at DESC, id DESC")
	if !all {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *Repository) CreateOrder(order *ds.Order) error {
	return r.db.Omit(clause.Associations).Create(order).Error
}

// GetOrderByID loads the order together with its content, if any.
func (r *Repository) GetOrderByID(id uint) (*ds.Order, error) {
	var order ds.Order
	err := r.db.Preload("Content").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *Repository) UpdateOrder(id uint, changes OrderChanges) (*ds.Order, error) {
	updates := changes.columns(time.Now())
	if len(updates) > 0 {
		result := r.db.Model(&ds.Order{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetOrderByID(id)
}

func (r *Repository) UpdateOrderStatus(id uint, status ds.OrderStatus) error {
	_, err := r.UpdateOrder(id, OrderChanges{Status: &status})
	return err
}

// DeleteOrder removes a pending order with its content and pending payments.
// Orders holding completed or refunded payments are kept.
func (r *Repository) DeleteOrder(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var order ds.Order
		err := lockForUpdate(tx).First(&order, id).Error
		if err != nil {
			return err
		}
		if order.Status != ds.OrderStatusPending {
			return ErrOrderNotPending
		}

		var settled int64
		err = tx.Model(&ds.Payment{}).
			Where("order_id = ? AND status <> ?", id, ds.PaymentStatusPending).
			Count(&settled).Error
		if err != nil {
			return err
		}
		if settled > 0 {
			return ErrOrderHasPayments
		}

		if err := tx.Where("order_id = ?", id).Delete(&ds.Content{}).Error; err != nil {
			return err
		}
		err = tx.Where("order_id = ? AND status = ?", id, ds.PaymentStatusPending).Delete(&ds.Payment{}).Error
		if err != nil {
			return err
		}
		return tx.Delete(&ds.Order{}, id).Error
	})
}
