package report

import (
	"github.com/crp/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NodeKind distinguishes group nodes from account leaf nodes
type NodeKind string

const (
	KindGroup   NodeKind = "group"
	KindAccount NodeKind = "account"
)

// String returns the string representation
func (k NodeKind) String() string {
	return string(k)
}

// Group is the slice of an account group the report builders need
type Group struct {
	ID       uuid.UUID
	Name     string
	ParentID *uuid.UUID
}

// AccountBalance is one account's settled trial-balance row. Debit and
// Credit are already clamped by nature, at most one of them is nonzero.
type AccountBalance struct {
	AccountID uuid.UUID
	Number    string
	Name      string
	GroupID   *uuid.UUID
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// DisplayName returns the conventional "number - name" label
func (b AccountBalance) DisplayName() string {
	return b.Number + " - " + b.Name
}

// AccountMovement is one account's signed net movement over a P&L
// reporting window. Zero movements are filtered out before tree
// construction.
type AccountMovement struct {
	AccountID uuid.UUID
	Number    string
	Name      string
	GroupID   *uuid.UUID
	Section   ledger.PLSection
	Amount    decimal.Decimal
}

// DisplayName returns the conventional "number - name" label
func (m AccountMovement) DisplayName() string {
	return m.Number + " - " + m.Name
}

// BalanceNode is a node in the trial-balance hierarchy. Group nodes
// carry subtotals over their subtree; account nodes carry their own
// settled columns.
type BalanceNode struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Kind     NodeKind        `json:"kind"`
	Level    int             `json:"level"`
	Debit    decimal.Decimal `json:"debit"`
	Credit   decimal.Decimal `json:"credit"`
	Children []BalanceNode   `json:"children"`
}

// MovementNode is a node in a P&L section hierarchy, with a single
// signed amount instead of debit/credit columns.
type MovementNode struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Kind     NodeKind        `json:"kind"`
	Level    int             `json:"level"`
	Amount   decimal.Decimal `json:"amount"`
	Children []MovementNode  `json:"children"`
}
