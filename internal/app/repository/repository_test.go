package repository_test

import (
	"fmt"
	"testing"

	"contentgenius/internal/app/catalog"
	"contentgenius/internal/app/ds"
	"contentgenius/internal/app/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *repository.Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	repo, err := repository.New(repository.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	require.NoError(t, repo.Seed(catalog.DefaultTemplates(), nil))
	return repo
}

func createUser(t *testing.T, repo *repository.Repository, username string) *ds.User {
	t.Helper()
	user := &ds.User{Username: username, Email: username + "@example.com", IsActive: true}
	require.NoError(t, user.SetPassword("password"))
	require.NoError(t, repo.CreateUser(user))
	return user
}

func createOrder(t *testing.T, repo *repository.Repository, userID uint) *ds.Order {
	t.Helper()
	order := &ds.Order{
		UserID:      userID,
		ContentType: catalog.BlogPost,
		Title:       "Go in production",
		Status:      ds.OrderStatusPending,
		Priority:    ds.PriorityMedium,
		WordCount:   800,
		Price:       25.0,
	}
	order.SetRequirements(ds.Requirements{Tone: "friendly"})
	require.NoError(t, repo.CreateOrder(order))
	return order
}

func TestNewUnsupportedDriver(t *testing.T) {
	_, err := repository.New("oracle", "")
	assert.Error(t, err)
}

func TestSeedIsIdempotent(t *testing.T) {
	repo := newTestRepository(t)
	admin := &ds.User{Username: "admin", Email: "admin@example.com", IsAdmin: true, IsActive: true}
	require.NoError(t, admin.SetPassword("admin123"))

	require.NoError(t, repo.Seed(catalog.DefaultTemplates(), admin))
	again := &ds.User{Username: "admin", Email: "other@example.com", IsAdmin: true, IsActive: true}
	require.NoError(t, repo.Seed(catalog.DefaultTemplates(), again))

	templates, err := repo.GetActiveTemplates()
	require.NoError(t, err)
	assert.Len(t, templates, 5)

	stored, err := repo.GetUserByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", stored.Email)
	assert.True(t, stored.IsAdmin)
}

func TestGetActiveTemplate(t *testing.T) {
	repo := newTestRepository(t)

	tpl, err := repo.GetActiveTemplate(catalog.Article)
	require.NoError(t, err)
	assert.Equal(t, 1000, tpl.DefaultWordCount)

	_, err = repo.GetActiveTemplate("podcast")
	assert.ErrorIs(t, err, repository.ErrTemplateNotFound)
}

func TestCreateUserDuplicates(t *testing.T) {
	repo := newTestRepository(t)
	createUser(t, repo, "alice")

	dup := &ds.User{Username: "alice", Email: "new@example.com", IsActive: true}
	assert.ErrorIs(t, repo.CreateUser(dup), repository.ErrUsernameTaken)

	dup = &ds.User{Username: "bob", Email: "alice@example.com", IsActive: true}
	assert.ErrorIs(t, repo.CreateUser(dup), repository.ErrEmailTaken)
}

func TestSetUserActive(t *testing.T) {
	repo := newTestRepository(t)
	user := createUser(t, repo, "alice")

	require.NoError(t, repo.SetUserActive(user.ID, false))
	stored, err := repo.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	assert.True(t, repository.IsNotFound(repo.SetUserActive(9999, false)))
}

func TestListOrders(t *testing.T) {
	repo := newTestRepository(t)
	alice := createUser(t, repo, "alice")
	bob := createUser(t, repo, "bob")
	createOrder(t, repo, alice.ID)
	createOrder(t, repo, alice.ID)
	createOrder(t, repo, bob.ID)

	own, err := repo.ListOrders(alice.ID, false)
	require.NoError(t, err)
	assert.Len(t, own, 2)

	all, err := repo.ListOrders(alice.ID, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdateOrderStampsCompletedAt(t *testing.T) {
	repo := newTestRepository(t)
	user := createUser(t, repo, "alice")
	order := createOrder(t, repo, user.ID)

	title := "Renamed"
	updated, err := repo.UpdateOrder(order.ID, repository.OrderChanges{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Nil(t, updated.CompletedAt)
	assert.Equal(t, "friendly", updated.GetRequirements().Tone)

	status := ds.OrderStatusCompleted
	updated, err = repo.UpdateOrder(order.ID, repository.OrderChanges{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, ds.OrderStatusCompleted, updated.Status)
	assert.NotNil(t, updated.CompletedAt)

	_, err = repo.UpdateOrder(9999, repository.OrderChanges{Title: &title})
	assert.True(t, repository.IsNotFound(err))
}

func TestDeleteOrder(t *testing.T) {
	repo := newTestRepository(t)
	user := createUser(t, repo, "alice")
	order := createOrder(t, repo, user.ID)
	_, err := repo.CreatePaymentIntent(order.ID, user.ID, "pi_demo_delete", ds.DefaultPaymentMethod)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteOrder(order.ID))
	_, err = repo.GetOrderByID(order.ID)
	assert.True(t, repository.IsNotFound(err))
	_, err = repo.GetPaymentByIntentID("pi_demo_delete")
	assert.True(t, repository.IsNotFound(err))
}

func TestDeleteOrderKeepsSettledPayments(t *testing.T) {
	repo := newTestRepository(t)
	user := createUser(t, repo, "alice")
	order := createOrder(t, repo, user.ID)
	payment, err := repo.CreatePaymentIntent(order.ID, user.ID, "pi_demo_settled", ds.DefaultPaymentMethod)
	require.NoError(t, err)
	_, _, err = repo.ConfirmPayment(payment.ID)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateOrderStatus(order.ID, ds.OrderStatusPending))

	assert.ErrorIs(t, repo.DeleteOrder(order.ID), repository.ErrOrderHasPayments)

	_, err = repo.GetOrderByID(order.ID)
	assert.NoError(t, err)
	kept, err := repo.GetPaymentByIntentID("pi_demo_settled")
	require.NoError(t, err)
	assert.Equal(t, ds.PaymentStatusCompleted, kept.Status)
}

func TestDeleteOrderNotPending(t *testing.T) {
	repo := newTestRepository(t)
	user := createUser(t, repo, "alice")
	order := createOrder(t, repo, user.ID)
	require.NoError(t, repo.UpdateOrderStatus(order.ID, ds.OrderStatusInProgress))

	assert.ErrorIs(t, repo.DeleteOrder(order.ID), repository.ErrOrderNotPending)
}

func TestPaymentLifecycle(t *testing.T) {
	repo := newTestRepository(t)
	user := createUser(t, repo, "alice")
	order := createOrder(t, repo, user.ID)

	payment, err := repo.CreatePaymentIntent(order.ID, user.ID, "pi_demo_1", ds.DefaultPaymentMethod)
	require.NoError(t, err)
	assert.Equal(t, ds.PaymentStatusPending, payment.Status)
	assert.Equal(t, 25.0, payment.Amount)
	assert.Equal(t, "USD", payment.Currency)

	_, _, err = repo.RefundPayment(payment.ID)
	assert.ErrorIs(t, err, repository.ErrPaymentNotCompleted)

	confirmed, updatedOrder, err := repo.ConfirmPayment(payment.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.PaymentStatusCompleted, confirmed.Status)
	assert.Equal(t, ds.OrderStatusInProgress, updatedOrder.Status)

	_, _, err = repo.ConfirmPayment(payment.ID)
	assert.ErrorIs(t, err, repository.ErrPaymentNotPending)

	_, err = repo.CreatePaymentIntent(order.ID, user.ID, "pi_demo_2", ds.DefaultPaymentMethod)
	assert.ErrorIs(t, err, repository.ErrOrderAlreadyPaid)

	refunded, cancelled, err := repo.RefundPayment(payment.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.PaymentStatusRefunded, refunded.Status)
	assert.Equal(t, ds.OrderStatusCancelled, cancelled.Status)

	_, _, err = repo.RefundPayment(payment.ID)
	assert.ErrorIs(t, err, repository.ErrPaymentNotCompleted)

	_, err = repo.CreatePaymentIntent(order.ID, user.ID, "pi_demo_3", ds.DefaultPaymentMethod)
	assert.ErrorIs(t, err, repository.ErrOrderNotPayable)
}

func TestConfirmSecondIntentRejected(t *testing.T) {
	repo := newTestRepository(t)
	user := createUser(t, repo, "alice")
	order := createOrder(t, repo, user.ID)

	first, err := repo.CreatePaymentIntent(order.ID, user.ID, "pi_demo_a", ds.DefaultPaymentMethod)
	require.NoError(t, err)
	second, err := repo.CreatePaymentIntent(order.ID, user.ID, "pi_demo_b", ds.DefaultPaymentMethod)
	require.NoError(t, err)

	_, _, err = repo.ConfirmPayment(first.ID)
	require.NoError(t, err)
	_, _, err = repo.ConfirmPayment(second.ID)
	assert.ErrorIs(t, err, repository.ErrOrderAlreadyPaid)

	paid, err := repo.HasCompletedPayment(order.ID)
	require.NoError(t, err)
	assert.True(t, paid)
}

func TestListPayments(t *testing.T) {
	repo := newTestRepository(t)
	alice := createUser(t, repo, "alice")
	bob := createUser(t, repo, "bob")
	_, err := repo.CreatePaymentIntent(createOrder(t, repo, alice.ID).ID, alice.ID, "pi_demo_a", ds.DefaultPaymentMethod)
	require.NoError(t, err)
	_, err = repo.CreatePaymentIntent(createOrder(t, repo, bob.ID).ID, bob.ID, "pi_demo_b", ds.DefaultPaymentMethod)
	require.NoError(t, err)

	own, err := repo.ListPaymentsByUser(alice.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "pi_demo_a", own[0].PaymentIntentID)

	all, err := repo.ListPayments()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSaveGeneratedContentKeepsSingleRow(t *testing.T) {
	repo := newTestRepository(t)
	user := createUser(t, repo, "alice")
	order := createOrder(t, repo, user.ID)

	_, _, err := repo.SaveGeneratedContent(order.ID, repository.GeneratedContent{Text: "draft", Format: ds.FormatMarkdown})
	assert.ErrorIs(t, err, repository.ErrOrderNotInProgress)

	require.NoError(t, repo.UpdateOrderStatus(order.ID, ds.OrderStatusInProgress))
	content, completed, err := repo.SaveGeneratedContent(order.ID, repository.GeneratedContent{
		Text: "first", Format: ds.FormatMarkdown, QualityScore: 0.9, Approved: true,
	})
	require.NoError(t, err)
	assert.True(t, content.IsApproved)
	assert.Equal(t, ds.OrderStatusCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)

	revised, err := repo.RequestRevision(content.ID, "more detail")
	require.NoError(t, err)
	assert.Equal(t, 1, revised.RevisionCount)
	assert.False(t, revised.IsApproved)
	assert.Equal(t, ds.OrderStatusInProgress, revised.Order.Status)
	assert.Equal(t, "more detail", revised.Order.GetRequirements().RevisionNotes)
	assert.Equal(t, "friendly", revised.Order.GetRequirements().Tone)

	second, _, err := repo.SaveGeneratedContent(order.ID, repository.GeneratedContent{
		Text: "second", Format: ds.FormatMarkdown, QualityScore: 0.5, Approved: false,
	})
	require.NoError(t, err)
	assert.Equal(t, content.ID, second.ID)

	stored, err := repo.GetContentByOrderID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", stored.GeneratedContent)
	assert.Equal(t, 1, stored.RevisionCount)
	require.NotNil(t, stored.QualityScore)
	assert.InDelta(t, 0.5, *stored.QualityScore, 1e-9)
}

func TestApproveContent(t *testing.T) {
	repo := newTestRepository(t)
	user := createUser(t, repo, "alice")
	order := createOrder(t, repo, user.ID)
	require.NoError(t, repo.UpdateOrderStatus(order.ID, ds.OrderStatusInProgress))
	content, _, err := repo.SaveGeneratedContent(order.ID, repository.GeneratedContent{Text: "x", Format: ds.FormatMarkdown})
	require.NoError(t, err)
	assert.False(t, content.IsApproved)

	approved, err := repo.ApproveContent(content.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	_, err = repo.ApproveContent(9999)
	assert.True(t, repository.IsNotFound(err))
}
