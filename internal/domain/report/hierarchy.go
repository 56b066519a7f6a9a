package report

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HierarchyBuilder turns a flat list of account groups into report
// trees. It indexes children by parent once so each recursion level is
// a map lookup rather than a scan over every group.
type HierarchyBuilder struct {
	byID       map[uuid.UUID]Group
	childIndex map[uuid.UUID][]Group // Keyed by parent ID; uuid.Nil holds the roots
}

// NewHierarchyBuilder indexes the groups. Child groups are kept sorted
// by name, which fixes their order in every generated tree.
func NewHierarchyBuilder(groups []Group) *HierarchyBuilder {
	b := &HierarchyBuilder{
		byID:       make(map[uuid.UUID]Group, len(groups)),
		childIndex: make(map[uuid.UUID][]Group),
	}
	for _, g := range groups {
		b.byID[g.ID] = g
	}
	for _, g := range groups {
		parent := uuid.Nil
		// Groups pointing at an unknown parent surface as roots so
		// their accounts are not silently dropped from reports.
		if g.ParentID != nil {
			if _, ok := b.byID[*g.ParentID]; ok {
				parent = *g.ParentID
			}
		}
		b.childIndex[parent] = append(b.childIndex[parent], g)
	}
	for parent := range b.childIndex {
		children := b.childIndex[parent]
		sort.Slice(children, func(i, j int) bool { return children[i].Name < children[j].Name })
	}
	return b
}

// groupKey resolves which child-index bucket an account belongs to.
// Accounts without a group, or with a dangling group reference, are
// bucketed at the root.
func (b *HierarchyBuilder) groupKey(groupID *uuid.UUID) uuid.UUID {
	if groupID == nil {
		return uuid.Nil
	}
	if _, ok := b.byID[*groupID]; !ok {
		return uuid.Nil
	}
	return *groupID
}

// BuildBalanceTree builds the trial-balance hierarchy. Group nodes
// subtotal their subtree; groups with no accounts anywhere below them
// and a zero subtotal are pruned. The returned totals are the sums
// over the emitted roots.
func (b *HierarchyBuilder) BuildBalanceTree(balances []AccountBalance) ([]BalanceNode, decimal.Decimal, decimal.Decimal) {
	accountsByGroup := make(map[uuid.UUID][]AccountBalance)
	for _, bal := range balances {
		key := b.groupKey(bal.GroupID)
		accountsByGroup[key] = append(accountsByGroup[key], bal)
	}
	for key := range accountsByGroup {
		accounts := accountsByGroup[key]
		sort.Slice(accounts, func(i, j int) bool { return accounts[i].Number < accounts[j].Number })
	}

	nodes, debit, credit := b.buildBalanceLevel(uuid.Nil, 1, accountsByGroup)

	// Ungrouped accounts are listed after the root groups
	for _, bal := range accountsByGroup[uuid.Nil] {
		nodes = append(nodes, balanceLeaf(bal, 1))
		debit = debit.Add(bal.Debit)
		credit = credit.Add(bal.Credit)
	}
	return nodes, debit, credit
}

func (b *HierarchyBuilder) buildBalanceLevel(parentID uuid.UUID, level int, accountsByGroup map[uuid.UUID][]AccountBalance) ([]BalanceNode, decimal.Decimal, decimal.Decimal) {
	nodes := make([]BalanceNode, 0)
	levelDebit, levelCredit := decimal.Zero, decimal.Zero

	for _, group := range b.childIndex[parentID] {
		children, debit, credit := b.buildBalanceLevel(group.ID, level+1, accountsByGroup)
		for _, bal := range accountsByGroup[group.ID] {
			children = append(children, balanceLeaf(bal, level+1))
			debit = debit.Add(bal.Debit)
			credit = credit.Add(bal.Credit)
		}
		if len(children) == 0 && debit.IsZero() && credit.IsZero() {
			continue
		}
		nodes = append(nodes, BalanceNode{
			ID:       group.ID,
			Name:     group.Name,
			Kind:     KindGroup,
			Level:    level,
			Debit:    debit,
			Credit:   credit,
			Children: children,
		})
		levelDebit = levelDebit.Add(debit)
		levelCredit = levelCredit.Add(credit)
	}
	return nodes, levelDebit, levelCredit
}

func balanceLeaf(bal AccountBalance, level int) BalanceNode {
	return BalanceNode{
		ID:       bal.AccountID,
		Name:     bal.DisplayName(),
		Kind:     KindAccount,
		Level:    level,
		Debit:    bal.Debit,
		Credit:   bal.Credit,
		Children: make([]BalanceNode, 0),
	}
}

// BuildMovementTree builds one P&L section's hierarchy from the
// section's nonzero account movements. A group node survives when its
// subtotal is nonzero or it still has child nodes after pruning.
func (b *HierarchyBuilder) BuildMovementTree(movements []AccountMovement) ([]MovementNode, decimal.Decimal) {
	accountsByGroup := make(map[uuid.UUID][]AccountMovement)
	for _, mv := range movements {
		key := b.groupKey(mv.GroupID)
		accountsByGroup[key] = append(accountsByGroup[key], mv)
	}
	for key := range accountsByGroup {
		accounts := accountsByGroup[key]
		sort.Slice(accounts, func(i, j int) bool { return accounts[i].Number < accounts[j].Number })
	}

	nodes, total := b.buildMovementLevel(uuid.Nil, 1, accountsByGroup)
	for _, mv := range accountsByGroup[uuid.Nil] {
		nodes = append(nodes, movementLeaf(mv, 1))
		total = total.Add(mv.Amount)
	}
	return nodes, total
}

func (b *HierarchyBuilder) buildMovementLevel(parentID uuid.UUID, level int, accountsByGroup map[uuid.UUID][]AccountMovement) ([]MovementNode, decimal.Decimal) {
	nodes := make([]MovementNode, 0)
	levelTotal := decimal.Zero

	for _, group := range b.childIndex[parentID] {
		children, total := b.buildMovementLevel(group.ID, level+1, accountsByGroup)
		for _, mv := range accountsByGroup[group.ID] {
			children = append(children, movementLeaf(mv, level+1))
			total = total.Add(mv.Amount)
		}
		if len(children) == 0 && total.IsZero() {
			continue
		}
		nodes = append(nodes, MovementNode{
			ID:       group.ID,
			Name:     group.Name,
			Kind:     KindGroup,
			Level:    level,
			Amount:   total,
			Children: children,
		})
		levelTotal = levelTotal.Add(total)
	}
	return nodes, levelTotal
}

func movementLeaf(mv AccountMovement, level int) MovementNode {
	return MovementNode{
		ID:       mv.AccountID,
		Name:     mv.DisplayName(),
		Kind:     KindAccount,
		Level:    level,
		Amount:   mv.Amount,
		Children: make([]MovementNode, 0),
	}
}
