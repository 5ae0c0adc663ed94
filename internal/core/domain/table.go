package domain

import "time"

// TableStatus is staff-observed occupancy of a physical table. Any status may
// transition to any other on explicit staff action; occupancy in a physical
// room is observed, not system-derived, so there are no illegal transitions.
type TableStatus string

const (
	TableAvailable TableStatus = "AVAILABLE"
	TableOccupied  TableStatus = "OCCUPIED"
	TableReserved  TableStatus = "RESERVED"
	TableCleaning  TableStatus = "CLEANING"
)

// Table represents a physical table on the floor plan.
type Table struct {
	TableID  string      `json:"tableID"`
	BranchID string      `json:"branchID"`
	Number   int         `json:"number"`
	Capacity int         `json:"capacity"`
	Status   TableStatus `json:"status"`
	AuditFields
}

// ReservationStatus is the lifecycle state of a reservation. Completed and
// cancelled are terminal.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCompleted ReservationStatus = "COMPLETED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// CanTransitionTo reports whether the reservation state machine permits moving
// from the current status to next.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	switch s {
	case ReservationPending:
		return next == ReservationConfirmed || next == ReservationCancelled
	case ReservationConfirmed:
		return next == ReservationCompleted || next == ReservationCancelled
	default:
		// Completed and cancelled are terminal.
		return false
	}
}

// Reservation is a booking for a table at a branch.
type Reservation struct {
	ReservationID string            `json:"reservationID"`
	BranchID      string            `json:"branchID"`
	TableID       string            `json:"tableID"`
	CustomerName  string            `json:"customerName"`
	PartySize     int               `json:"partySize"`
	Time          time.Time         `json:"time"`
	Status        ReservationStatus `json:"status"`
	AuditFields
}
