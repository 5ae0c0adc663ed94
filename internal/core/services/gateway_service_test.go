package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/tableside/backoffice/internal/adapters/storage/memory"
	"github.com/tableside/backoffice/internal/apperrors"
	"github.com/tableside/backoffice/internal/core/domain"
	portssvc "github.com/tableside/backoffice/internal/core/ports/services"
	"github.com/tableside/backoffice/internal/core/services"
	"github.com/tableside/backoffice/internal/dto"
)

type GatewayServiceTestSuite struct {
	suite.Suite

	ctx     context.Context
	store   *memory.Store
	bus     portssvc.EventBusSvc
	service portssvc.GatewaySvcFacade

	admin   *domain.Session
	manager *domain.Session
	staff   *domain.Session
}

func (s *GatewayServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.bus = services.NewEventBus()
	s.service = services.NewGatewayService(s.store.Repositories(), s.bus)

	s.Require().NoError(s.store.SaveBranch(s.ctx, domain.Branch{BranchID: "b1", Name: "Downtown", Location: "here", IsMain: true}))
	s.Require().NoError(s.store.SaveBranch(s.ctx, domain.Branch{BranchID: "b2", Name: "Riverside", Location: "there"}))

	b1 := "b1"
	s.admin = &domain.Session{SubjectID: "admin-1", Role: domain.RoleAdmin, EffectiveBranchID: domain.ScopeAll, Stage: domain.StageAuthenticated}
	s.manager = &domain.Session{SubjectID: "manager-1", Role: domain.RoleManager, EffectiveBranchID: "b2", Stage: domain.StageAuthenticated}
	s.staff = &domain.Session{SubjectID: "staff-1", Role: domain.RoleStaff, AssignedBranchID: &b1, EffectiveBranchID: "b1", Stage: domain.StageAuthenticated}
}

// --- Branch management ---

func (s *GatewayServiceTestSuite) TestAddBranch_AdminOnly() {
	_, err := s.service.AddBranch(s.ctx, s.manager, dto.CreateBranchRequest{Name: "Uptown", Location: "up"})
	s.Require().ErrorIs(err, apperrors.ErrForbiddenScope)

	branch, err := s.service.AddBranch(s.ctx, s.admin, dto.CreateBranchRequest{Name: "Uptown", Location: "up"})
	s.Require().NoError(err)
	s.NotEmpty(branch.BranchID)
	s.False(branch.IsMain)
}

func (s *GatewayServiceTestSuite) TestAddBranch_RejectsSecondMain() {
	_, err := s.service.AddBranch(s.ctx, s.admin, dto.CreateBranchRequest{Name: "Uptown", Location: "up", IsMain: true})
	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *GatewayServiceTestSuite) TestDeleteBranch_RefusesMain() {
	err := s.service.DeleteBranch(s.ctx, s.admin, "b1")
	s.Require().ErrorIs(err, apperrors.ErrValidation)

	s.Require().NoError(s.service.DeleteBranch(s.ctx, s.admin, "b2"))
	_, err = s.store.FindBranchByID(s.ctx, "b2")
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *GatewayServiceTestSuite) TestUpdateBranch_PartialUpdate() {
	newName := "Downtown East"
	branch, err := s.service.UpdateBranch(s.ctx, s.admin, "b1", dto.UpdateBranchRequest{Name: &newName})
	s.Require().NoError(err)
	s.Equal("Downtown East", branch.Name)
	s.Equal("here", branch.Location)
	s.True(branch.IsMain)
}

// --- Scope filtering on reads ---

func (s *GatewayServiceTestSuite) TestListItems_FilteredByScope() {
	s.Require().NoError(s.store.SaveItem(s.ctx, domain.InventoryItem{ItemID: "i1", BranchID: "b1", Name: "Flour", Unit: "kg"}))
	s.Require().NoError(s.store.SaveItem(s.ctx, domain.InventoryItem{ItemID: "i2", BranchID: "b2", Name: "Coffee", Unit: "kg"}))

	all, err := s.service.ListItems(s.ctx, s.admin)
	s.Require().NoError(err)
	s.Len(all, 2)

	mine, err := s.service.ListItems(s.ctx, s.staff)
	s.Require().NoError(err)
	s.Require().Len(mine, 1)
	s.Equal("i1", mine[0].ItemID)

	gated := &domain.Session{Role: domain.RoleManager, Stage: domain.StagePendingBranchSelection}
	_, err = s.service.ListItems(s.ctx, gated)
	s.Require().ErrorIs(err, apperrors.ErrForbiddenScope)
}

func (s *GatewayServiceTestSuite) TestListEntities_GenericForm() {
	s.Require().NoError(s.store.SaveItem(s.ctx, domain.InventoryItem{ItemID: "i1", BranchID: "b1", Name: "Flour", Unit: "kg"}))

	items, err := s.service.ListEntities(s.ctx, s.admin, domain.EntityItem)
	s.Require().NoError(err)
	s.Len(items, 1)

	branches, err := s.service.ListEntities(s.ctx, s.admin, domain.EntityBranch)
	s.Require().NoError(err)
	s.Len(branches, 2)

	_, err = s.service.ListEntities(s.ctx, s.admin, domain.EntityMovement)
	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

// --- Inventory metadata ---

func (s *GatewayServiceTestSuite) TestUpdateItem_CannotTouchQuantity() {
	item, err := s.service.AddItem(s.ctx, s.admin, dto.CreateItemRequest{
		BranchID: "b1", Name: "Flour", Quantity: decimal.NewFromInt(40), MinStock: decimal.NewFromInt(10), Unit: "kg",
	})
	s.Require().NoError(err)

	newName := "Bread Flour"
	newMin := decimal.NewFromInt(12)
	updated, err := s.service.UpdateItem(s.ctx, s.admin, item.ItemID, dto.UpdateItemRequest{Name: &newName, MinStock: &newMin})
	s.Require().NoError(err)
	s.Equal("Bread Flour", updated.Name)
	s.True(updated.MinStock.Equal(decimal.NewFromInt(12)))
	// The derived quantity is untouched by metadata updates.
	s.True(updated.Quantity.Equal(decimal.NewFromInt(40)))
}

func (s *GatewayServiceTestSuite) TestAddItem_OutOfScopeBranch() {
	_, err := s.service.AddItem(s.ctx, s.staff, dto.CreateItemRequest{
		BranchID: "b2", Name: "Coffee", Unit: "kg",
	})
	s.Require().ErrorIs(err, apperrors.ErrForbiddenScope)
}

// --- Tables and reservations ---

func (s *GatewayServiceTestSuite) TestSetTableStatus_AnyTransitionAllowed() {
	table, err := s.service.AddTable(s.ctx, s.admin, dto.CreateTableRequest{BranchID: "b1", Number: 1, Capacity: 4})
	s.Require().NoError(err)
	s.Equal(domain.TableAvailable, table.Status)

	for _, status := range []domain.TableStatus{
		domain.TableOccupied, domain.TableCleaning, domain.TableReserved, domain.TableAvailable, domain.TableOccupied,
	} {
		table, err = s.service.SetTableStatus(s.ctx, s.admin, table.TableID, status)
		s.Require().NoError(err)
		s.Equal(status, table.Status)
	}
}

func (s *GatewayServiceTestSuite) TestReservationLifecycle() {
	table, err := s.service.AddTable(s.ctx, s.admin, dto.CreateTableRequest{BranchID: "b1", Number: 1, Capacity: 4})
	s.Require().NoError(err)

	reservation, err := s.service.AddReservation(s.ctx, s.admin, dto.CreateReservationRequest{
		BranchID: "b1", TableID: table.TableID, CustomerName: "Blake", PartySize: 2, Time: time.Now().Add(time.Hour),
	})
	s.Require().NoError(err)
	s.Equal(domain.ReservationPending, reservation.Status)

	reservation, err = s.service.SetReservationStatus(s.ctx, s.admin, reservation.ReservationID, domain.ReservationConfirmed)
	s.Require().NoError(err)
	reservation, err = s.service.SetReservationStatus(s.ctx, s.admin, reservation.ReservationID, domain.ReservationCompleted)
	s.Require().NoError(err)

	// Completed is terminal.
	_, err = s.service.SetReservationStatus(s.ctx, s.admin, reservation.ReservationID, domain.ReservationCancelled)
	s.Require().ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (s *GatewayServiceTestSuite) TestAddReservation_TableMustBelongToBranch() {
	table, err := s.service.AddTable(s.ctx, s.admin, dto.CreateTableRequest{BranchID: "b2", Number: 1, Capacity: 2})
	s.Require().NoError(err)

	_, err = s.service.AddReservation(s.ctx, s.admin, dto.CreateReservationRequest{
		BranchID: "b1", TableID: table.TableID, CustomerName: "Blake", PartySize: 2,
	})
	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

// --- Orders ---

func (s *GatewayServiceTestSuite) TestAddOrder_CapturesPricesAndDerivesTotal() {
	table, err := s.service.AddTable(s.ctx, s.admin, dto.CreateTableRequest{BranchID: "b1", Number: 1, Capacity: 4})
	s.Require().NoError(err)
	pizza, err := s.service.AddMenuItem(s.ctx, s.admin, dto.CreateMenuItemRequest{
		BranchID: "b1", Name: "Margherita", Category: "Pizza", Price: decimal.RequireFromString("12.50"),
	})
	s.Require().NoError(err)
	drink, err := s.service.AddMenuItem(s.ctx, s.admin, dto.CreateMenuItemRequest{
		BranchID: "b1", Name: "Lemonade", Category: "Drinks", Price: decimal.RequireFromString("2.75"),
	})
	s.Require().NoError(err)

	order, err := s.service.AddOrder(s.ctx, s.admin, dto.CreateOrderRequest{
		BranchID: "b1", TableID: table.TableID,
		Lines: []dto.OrderLineRequest{
			{MenuItemID: pizza.MenuItemID, Quantity: 2},
			{MenuItemID: drink.MenuItemID, Quantity: 3},
		},
	})
	s.Require().NoError(err)
	s.Equal(domain.OrderOpen, order.Status)
	s.True(order.Total.Equal(decimal.RequireFromString("33.25")))

	// Menu price changes never rewrite order history.
	s.Require().NoError(s.service.DeleteMenuItem(s.ctx, s.admin, drink.MenuItemID))
	stored, err := s.store.FindOrderByID(s.ctx, order.OrderID)
	s.Require().NoError(err)
	s.True(stored.Total.Equal(decimal.RequireFromString("33.25")))
	s.True(stored.Lines[1].UnitPrice.Equal(decimal.RequireFromString("2.75")))
}

func (s *GatewayServiceTestSuite) TestSetOrderStatus_TerminalStatesRejectTransitions() {
	table, err := s.service.AddTable(s.ctx, s.admin, dto.CreateTableRequest{BranchID: "b1", Number: 1, Capacity: 4})
	s.Require().NoError(err)
	menuItem, err := s.service.AddMenuItem(s.ctx, s.admin, dto.CreateMenuItemRequest{
		BranchID: "b1", Name: "Espresso", Category: "Drinks", Price: decimal.NewFromInt(3),
	})
	s.Require().NoError(err)
	order, err := s.service.AddOrder(s.ctx, s.admin, dto.CreateOrderRequest{
		BranchID: "b1", TableID: table.TableID,
		Lines: []dto.OrderLineRequest{{MenuItemID: menuItem.MenuItemID, Quantity: 1}},
	})
	s.Require().NoError(err)

	// Open cannot jump straight to paid.
	_, err = s.service.SetOrderStatus(s.ctx, s.admin, order.OrderID, domain.OrderPaid)
	s.Require().ErrorIs(err, apperrors.ErrInvalidTransition)

	_, err = s.service.SetOrderStatus(s.ctx, s.admin, order.OrderID, domain.OrderServed)
	s.Require().NoError(err)
	_, err = s.service.SetOrderStatus(s.ctx, s.admin, order.OrderID, domain.OrderPaid)
	s.Require().NoError(err)

	_, err = s.service.SetOrderStatus(s.ctx, s.admin, order.OrderID, domain.OrderCancelled)
	s.Require().ErrorIs(err, apperrors.ErrInvalidTransition)
}

// --- Debts and accounts via the gateway ---

func (s *GatewayServiceTestSuite) TestAddDebt_StatusDerivedAtCreation() {
	debt, err := s.service.AddDebt(s.ctx, s.admin, dto.CreateDebtRequest{
		BranchID: "b1", DebtType: domain.DebtPayable, Party: "Greenfield",
		Amount: decimal.NewFromInt(500), PaidAmount: decimal.NewFromInt(100),
		DueDate: time.Now().Add(240 * time.Hour),
	})
	s.Require().NoError(err)
	s.Equal(domain.DebtPartial, debt.Status)
	s.True(debt.RemainingAmount.Equal(decimal.NewFromInt(400)))
}

func (s *GatewayServiceTestSuite) TestAddAccount_StartsAtZeroBalance() {
	account, err := s.service.AddAccount(s.ctx, s.admin, dto.CreateAccountRequest{
		BranchID: "b1", Name: "Safe", AccountType: domain.AccountCash, CurrencyCode: "USD",
	})
	s.Require().NoError(err)
	s.True(account.Balance.IsZero())
	s.True(account.IsActive)

	s.Require().NoError(s.service.DeactivateAccount(s.ctx, s.admin, account.AccountID))
	stored, err := s.store.FindAccountByID(s.ctx, account.AccountID)
	s.Require().NoError(err)
	s.False(stored.IsActive)
}

func TestGatewayServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GatewayServiceTestSuite))
}
