package repository

import (
	"contentgenius/internal/app/ds"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *Repository) GetPaymentByID(id uint) (*ds.Payment, error) {
	var payment ds.Payment
	err := r.db.First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *Repository) GetPaymentByIntentID(intentID string) (*ds.Payment, error) {
	var payment ds.Payment
	err := r.db.Where("payment_intent_id = ?", intentID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *Repository) ListPaymentsByUser(userID uint) ([]ds.Payment, error) {
	var payments []ds.Payment
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *Repository) ListPayments() ([]ds.Payment, error) {
	var payments []ds.Payment
	err := r.db.Order("created_at DESC, id DESC").Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// CreatePaymentIntent records a pending payment for the full order price.
func (r *Repository) CreatePaymentIntent(orderID, userID uint, intentID, method string) (*ds.Payment, error) {
	var payment ds.Payment
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var order ds.Order
		err := lockForUpdate(tx).First(&order, orderID).Error
		if err != nil {
			return err
		}
		if order.Status == ds.OrderStatusCancelled {
			return ErrOrderNotPayable
		}

		paid, err := hasCompletedPayment(tx, orderID, 0)
		if err != nil {
			return err
		}
		if paid {
			return ErrOrderAlreadyPaid
		}

		payment = ds.Payment{
			UserID:          userID,
			OrderID:         orderID,
			Amount:          order.Price,
			Currency:        ds.DefaultCurrency,
			PaymentMethod:   method,
			PaymentIntentID: intentID,
			Status:          ds.PaymentStatusPending,
		}
		return tx.Omit(clause.Associations).Create(&payment).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// ConfirmPayment completes a pending payment and moves a pending order into progress.
func (r *Repository) ConfirmPayment(paymentID uint) (*ds.Payment, *ds.Order, error) {
	var (
		payment ds.Payment
		order   ds.Order
	)
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := lockForUpdate(tx).First(&payment, paymentID).Error
		if err != nil {
			return err
		}
		if payment.Status != ds.PaymentStatusPending {
			return ErrPaymentNotPending
		}

		paid, err := hasCompletedPayment(tx, payment.OrderID, payment.ID)
		if err != nil {
			return err
		}
		if paid {
			return ErrOrderAlreadyPaid
		}

		err = tx.Model(&payment).Update("status", ds.PaymentStatusCompleted).Error
		if err != nil {
			return err
		}
		payment.Status = ds.PaymentStatusCompleted

		err = lockForUpdate(tx).First(&order, payment.OrderID).Error
		if err != nil {
			return err
		}
		if order.Status != ds.OrderStatusPending {
			return nil
		}
		if err := tx.Model(&order).Update("status", ds.OrderStatusInProgress).Error; err != nil {
			return err
		}
		order.Status = ds.OrderStatusInProgress
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &payment, &order, nil
}

// RefundPayment refunds a completed payment and cancels its order.
func (r *Repository) RefundPayment(paymentID uint) (*ds.Payment, *ds.Order, error) {
	var (
		payment ds.Payment
		order   ds.Order
	)
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := lockForUpdate(tx).First(&payment, paymentID).Error
		if err != nil {
			return err
		}
		if payment.Status != ds.PaymentStatusCompleted {
			return ErrPaymentNotCompleted
		}

		err = tx.Model(&payment).Update("status", ds.PaymentStatusRefunded).Error
		if err != nil {
			return err
		}
		payment.Status = ds.PaymentStatusRefunded

		err = lockForUpdate(tx).First(&order, payment.OrderID).Error
		if err != nil {
			return err
		}
		if err := tx.Model(&order).Update("status", ds.OrderStatusCancelled).Error; err != nil {
			return err
		}
		order.Status = ds.OrderStatusCancelled
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &payment, &order, nil
}

// HasCompletedPayment reports whether the order has been paid for.
func (r *Repository) HasCompletedPayment(orderID uint) (bool, error) {
	return hasCompletedPayment(r.db, orderID, 0)
}

func hasCompletedPayment(db *gorm.DB, orderID, exceptID uint) (bool, error) {
	query := db.Model(&ds.Payment{}).Where("order_id = ? AND status = ?", orderID, ds.PaymentStatusCompleted)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	return exists(query)
}
