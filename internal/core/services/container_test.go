package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tableside/backoffice/internal/adapters/storage/memory"
	"github.com/tableside/backoffice/internal/core/domain"
	portssvc "github.com/tableside/backoffice/internal/core/ports/services"
	"github.com/tableside/backoffice/internal/core/services"
	"github.com/tableside/backoffice/internal/dto"
	"github.com/tableside/backoffice/internal/platform/config"
	"github.com/tableside/backoffice/internal/utils"
)

// newTestContainer wires the full service container over a fresh memory store
// with one branch and one assigned manager.
func newTestContainer(t *testing.T) (*portssvc.ServiceContainer, *memory.Store, *memory.SessionStore) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	durable := memory.NewSessionStore()

	require.NoError(t, store.SaveBranch(ctx, domain.Branch{BranchID: "b1", Name: "Downtown", Location: "here", IsMain: true}))

	hash, err := utils.HashPassword("manager-pw-1")
	require.NoError(t, err)
	b1 := "b1"
	require.NoError(t, store.SaveSubject(ctx, domain.Subject{
		SubjectID: "manager-1", Name: "Morgan", Email: "manager@x.com",
		PasswordHash: hash, Role: domain.RoleManager, AssignedBranchID: &b1,
	}))

	cfg := &config.Config{
		SessionSecret:           "test-secret",
		SessionIssuer:           "test",
		SessionExpiry:           time.Hour,
		ResetTokenTTL:           time.Hour,
		SecondFactorTTL:         5 * time.Minute,
		SecondFactorMaxAttempts: 3,
		LoginAttemptRate:        "100-M",
	}
	container := services.NewServiceContainer(cfg, store.Repositories(), durable, memory.NewSessionStore(), memory.NewBranchPreferenceStore())
	return container, store, durable
}

func TestEndToEnd_LoginWithoutRememberMe(t *testing.T) {
	container, _, durable := newTestContainer(t)
	ctx := context.Background()

	result, err := container.Session.Login(ctx, dto.LoginRequest{Email: "manager@x.com", Password: "manager-pw-1"})
	require.NoError(t, err)
	require.NotNil(t, result.Session)
	require.Equal(t, domain.StageAuthenticated, result.Session.Stage)

	// Without rememberMe nothing reaches the durable store.
	stored, err := durable.LoadSession(ctx)
	require.NoError(t, err)
	require.Nil(t, stored)
}

func TestEndToEnd_TransactionReversalRestoresBalance(t *testing.T) {
	container, store, _ := newTestContainer(t)
	ctx := context.Background()

	result, err := container.Session.Login(ctx, dto.LoginRequest{Email: "manager@x.com", Password: "manager-pw-1"})
	require.NoError(t, err)
	session := result.Session

	account, err := container.Gateway.AddAccount(ctx, session, dto.CreateAccountRequest{
		BranchID: "b1", Name: "Cash", AccountType: domain.AccountCash, CurrencyCode: "USD",
	})
	require.NoError(t, err)

	_, err = container.Ledger.PostFinanceTransaction(ctx, session, dto.PostTransactionRequest{
		TxnType: domain.TxnIncome, Category: "opening", Amount: decimal.NewFromInt(1000), AccountID: account.AccountID,
	})
	require.NoError(t, err)

	big, err := container.Ledger.PostFinanceTransaction(ctx, session, dto.PostTransactionRequest{
		TxnType: domain.TxnIncome, Category: "sales", Amount: decimal.NewFromInt(5000), AccountID: account.AccountID,
	})
	require.NoError(t, err)

	stored, err := store.FindAccountByID(ctx, account.AccountID)
	require.NoError(t, err)
	require.True(t, stored.Balance.Equal(decimal.NewFromInt(6000)))

	require.NoError(t, container.Ledger.DeleteFinanceTransaction(ctx, session, big.TransactionID))
	stored, err = store.FindAccountByID(ctx, account.AccountID)
	require.NoError(t, err)
	require.True(t, stored.Balance.Equal(decimal.NewFromInt(1000)))
}

func TestEndToEnd_OverWithdrawalClamps(t *testing.T) {
	container, store, _ := newTestContainer(t)
	ctx := context.Background()

	result, err := container.Session.Login(ctx, dto.LoginRequest{Email: "manager@x.com", Password: "manager-pw-1"})
	require.NoError(t, err)
	session := result.Session

	item, err := container.Gateway.AddItem(ctx, session, dto.CreateItemRequest{
		BranchID: "b1", Name: "Flour", Quantity: decimal.NewFromInt(3), Unit: "kg",
	})
	require.NoError(t, err)

	_, err = container.Ledger.PostStockMovement(ctx, session, dto.PostMovementRequest{
		ItemID: item.ItemID, MovementType: domain.MovementOut, Quantity: decimal.NewFromInt(10), Reason: "waste",
	})
	require.NoError(t, err)

	stored, err := store.FindItemByID(ctx, item.ItemID)
	require.NoError(t, err)
	require.True(t, stored.Quantity.IsZero())
}

func TestEndToEnd_OverdueDebtPaidInFull(t *testing.T) {
	container, _, _ := newTestContainer(t)
	ctx := context.Background()

	result, err := container.Session.Login(ctx, dto.LoginRequest{Email: "manager@x.com", Password: "manager-pw-1"})
	require.NoError(t, err)
	session := result.Session

	debt, err := container.Gateway.AddDebt(ctx, session, dto.CreateDebtRequest{
		BranchID: "b1", DebtType: domain.DebtReceivable, Party: "Slowpay",
		Amount: decimal.NewFromInt(1000), DueDate: time.Now().Add(-24 * time.Hour),
	})
	require.NoError(t, err)
	require.Equal(t, domain.DebtOverdue, debt.Status)

	paid, err := container.Ledger.RecordDebtPayment(ctx, session, debt.DebtID, decimal.NewFromInt(1000))
	require.NoError(t, err)
	require.Equal(t, domain.DebtPaid, paid.Status)
	require.True(t, paid.RemainingAmount.IsZero())
}
