package ticket

import (
	"errors"

	"github.com/google/uuid"
)

var ErrAlreadyCompleted = errors.New("ticket already completed")

// Kind distinguishes maintenance work orders from safety drills.
type Kind string

const (
	KindMaintenance Kind = "maintenance"
	KindSafety      Kind = "safety"
)

// RequiredItem is one line of a maintenance ticket's bill of materials.
// Lines are kept as an ordered slice so fulfillment deducts them in the
// order they were added.
type RequiredItem struct {
	ItemNumber string `json:"item_number"`
	Quantity   int    `json:"quantity"`
}

// Ticket is a unit of maintenance or safety work. Completion is monotonic:
// once completed a ticket never returns to pending, and its required items
// are never deducted a second time.
type Ticket struct {
	ID            string         `json:"id"`
	Kind          Kind           `json:"kind"`
	Vessel        string         `json:"vessel"`
	Description   string         `json:"description"`
	RequiredItems []RequiredItem `json:"required_items"`
	Comments      []string       `json:"comments"`
	Documentation []string       `json:"documentation"`
	Completed     bool           `json:"completed"`
}

// NewMaintenance creates a pending maintenance ticket with its bill of
// required items.
func NewMaintenance(vessel, description string, required []RequiredItem) *Ticket {
	if required == nil {
		required = []RequiredItem{}
	}
	return &Ticket{
		ID:            uuid.New().String(),
		Kind:          KindMaintenance,
		Vessel:        vessel,
		Description:   description,
		RequiredItems: required,
		Comments:      []string{},
		Documentation: []string{},
	}
}

// NewSafety creates a pending safety ticket. Safety tickets carry no
// required items.
func NewSafety(vessel, description string) *Ticket {
	return &Ticket{
		ID:            uuid.New().String(),
		Kind:          KindSafety,
		Vessel:        vessel,
		Description:   description,
		RequiredItems: []RequiredItem{},
		Comments:      []string{},
		Documentation: []string{},
	}
}

// AddComment appends a note to the ticket. Comments are allowed at any
// state, including after completion.
func (t *Ticket) AddComment(text string) {
	t.Comments = append(t.Comments, text)
}

// AddDocumentation appends a checklist, report or similar reference.
// Permitted at any state, including after completion.
func (t *Ticket) AddDocumentation(doc string) {
	t.Documentation = append(t.Documentation, doc)
}
