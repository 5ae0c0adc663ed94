package domain

import "time"

// EntityType identifies the collection a change event refers to.
type EntityType string

const (
	EntityBranch      EntityType = "branch"
	EntityAccount     EntityType = "finance_account"
	EntityTransaction EntityType = "finance_transaction"
	EntityDebt        EntityType = "debt"
	EntityPayroll     EntityType = "payroll_record"
	EntityItem        EntityType = "inventory_item"
	EntityMovement    EntityType = "stock_movement"
	EntityTable       EntityType = "table"
	EntityReservation EntityType = "reservation"
	EntityStaff       EntityType = "staff"
	EntityCustomer    EntityType = "customer"
	EntityMenuItem    EntityType = "menu_item"
	EntityOrder       EntityType = "order"
)

// ChangeOp is the kind of mutation a change event reports.
type ChangeOp string

const (
	ChangeCreated ChangeOp = "created"
	ChangeUpdated ChangeOp = "updated"
	ChangeDeleted ChangeOp = "deleted"
)

// ChangeEvent is emitted after each successful mutation so collaborators can
// re-read the affected collection instead of relying on implicit reactivity.
type ChangeEvent struct {
	EntityType EntityType `json:"entityType"`
	EntityID   string     `json:"entityID"`
	Op         ChangeOp   `json:"op"`
	At         time.Time  `json:"at"`
}
