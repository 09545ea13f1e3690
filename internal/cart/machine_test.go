package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eggypro-store/internal/domain"
)

func lineFor(id, productID string, price any, qty int) domain.CartItem {
	return domain.CartItem{
		ID:        id,
		ProductID: productID,
		Name:      "Whey Isolate",
		Price:     price,
		Quantity:  qty,
	}
}

func TestReduceAddNewLine(t *testing.T) {
	s := Reduce(domain.CartState{}, Action{Type: ActionAddItem, Item: lineFor("l1", "p1", "29.99", 2)})

	require.Len(t, s.Items, 1)
	assert.Equal(t, 2, s.TotalItems)
	assert.Equal(t, 59.98, s.TotalPrice)
}

func TestReduceAddMergesSameProduct(t *testing.T) {
	s := Reduce(domain.CartState{}, Action{Type: ActionAddItem, Item: lineFor("l1", "p1", "29.99", 2)})
	s = Reduce(s, Action{Type: ActionAddItem, Item: lineFor("l2", "p1", "29.99", 1)})

	require.Len(t, s.Items, 1)
	assert.Equal(t, "l1", s.Items[0].ID)
	assert.Equal(t, 3, s.Items[0].Quantity)
	assert.Equal(t, 89.97, s.TotalPrice)
}

func TestReduceAddRejectsOutOfRangeQuantity(t *testing.T) {
	base := Reduce(domain.CartState{}, Action{Type: ActionAddItem, Item: lineFor("l1", "p1", 10.0, 1)})

	for _, qty := range []int{0, -1, 100} {
		s := Reduce(base, Action{Type: ActionAddItem, Item: lineFor("l2", "p2", 5.0, qty)})
		assert.Equal(t, base, s, "quantity %d must be rejected", qty)
	}
}

func TestReduceAddMergeOverflowRejectedInFull(t *testing.T) {
	s := Reduce(domain.CartState{}, Action{Type: ActionAddItem, Item: lineFor("l1", "p1", 10.0, 98)})
	after := Reduce(s, Action{Type: ActionAddItem, Item: lineFor("l2", "p1", 10.0, 5)})

	// No partial application: quantity stays at 98, not clamped to 99.
	assert.Equal(t, s, after)
	assert.Equal(t, 98, after.Items[0].Quantity)
}

func TestReduceUpdateQuantity(t *testing.T) {
	s := Reduce(domain.CartState{}, Action{Type: ActionAddItem, Item: lineFor("l1", "p1", "19.99", 1)})
	s = Reduce(s, Action{Type: ActionUpdateQuantity, ItemID: "l1", Quantity: 4})

	assert.Equal(t, 4, s.Items[0].Quantity)
	assert.Equal(t, 79.96, s.TotalPrice)
}

func TestReduceUpdateQuantityRejections(t *testing.T) {
	s := Reduce(domain.CartState{}, Action{Type: ActionAddItem, Item: lineFor("l1", "p1", "19.99", 3)})

	// Out-of-range quantity leaves the prior value.
	after := Reduce(s, Action{Type: ActionUpdateQuantity, ItemID: "l1", Quantity: 0})
	assert.Equal(t, 3, after.Items[0].Quantity)

	// Unknown line is a no-op.
	after = Reduce(s, Action{Type: ActionUpdateQuantity, ItemID: "ghost", Quantity: 2})
	assert.Equal(t, s, after)
}

func TestReduceMarkDeletingKeepsTotals(t *testing.T) {
	s := Reduce(domain.CartState{}, Action{Type: ActionAddItem, Item: lineFor("l1", "p1", "29.99", 2)})
	s = Reduce(s, Action{Type: ActionMarkDeleting, ItemID: "l1"})

	require.Len(t, s.Items, 1)
	assert.True(t, s.Items[0].IsDeleting)
	assert.Equal(t, 2, s.TotalItems)
	assert.Equal(t, 59.98, s.TotalPrice)
}

func TestReduceTwoPhaseDeletion(t *testing.T) {
	s := Reduce(domain.CartState{}, Action{Type: ActionAddItem, Item: lineFor("l1", "p1", "29.99", 2)})
	s = Reduce(s, Action{Type: ActionMarkDeleting, ItemID: "l1"})
	s = Reduce(s, Action{Type: ActionCompleteDeletion, ItemID: "l1"})

	assert.Empty(t, s.Items)
	assert.Zero(t, s.TotalItems)
	assert.Zero(t, s.TotalPrice)
	require.NotNil(t, s.LastDeletedItem)
	assert.True(t, s.CanUndo)
	assert.Equal(t, "l1", s.LastDeletedItem.ID)
	assert.Equal(t, 2, s.LastDeletedItem.Quantity)
	assert.False(t, s.LastDeletedItem.IsDeleting)
}

func TestReduceDirectRemove(t *testing.T) {
	s := Reduce(domain.CartState{}, Action{Type: ActionAddItem, Item: lineFor("l1", "pB", 15.5, 1)})
	s = Reduce(s, Action{Type: ActionRemoveItem, ItemID: "l1"})

	assert.Empty(t, s.Items)
	assert.True(t, s.CanUndo)
	require.NotNil(t, s.LastDeletedItem)
	assert.Equal(t, "pB", s.LastDeletedItem.ProductID)
}

func TestReduceUndoRestoresAtEnd(t *testing.T) {
	s := domain.CartState{}
	s = Reduce(s, Action{Type: ActionAddItem, Item: lineFor("l1", "p1", "10.00", 1)})
	s = Reduce(s, Action{Type: ActionAddItem, Item: lineFor("l2", "p2", "20.00", 2)})
	s = Reduce(s, Action{Type: ActionRemoveItem, ItemID: "l1"})
	s = Reduce(s, Action{Type: ActionUndoDelete})

	require.Len(t, s.Items, 2)
	// Back at the end of the list, not its original slot.
	assert.Equal(t, "l2", s.Items[0].ID)
	assert.Equal(t, "l1", s.Items[1].ID)
	assert.Equal(t, "10.00", s.Items[1].Price)
	assert.Equal(t, 1, s.Items[1].Quantity)
	assert.False(t, s.CanUndo)
	assert.Nil(t, s.LastDeletedItem)
	assert.Equal(t, 50.0, s.TotalPrice)
}

func TestReduceUndoEmptyBufferIsNoop(t *testing.T) {
	s := Reduce(domain.CartState{}, Action{Type: ActionAddItem, Item: lineFor("l1", "p1", 10.0, 1)})
	after := Reduce(s, Action{Type: ActionUndoDelete})
	assert.Equal(t, s, after)
}

func TestReduceSecondDeletionOverwritesBuffer(t *testing.T) {
	s := domain.CartState{}
	s = Reduce(s, Action{Type: ActionAddItem, Item: lineFor("l1", "p1", 10.0, 1)})
	s = Reduce(s, Action{Type: ActionAddItem, Item: lineFor("l2", "p2", 20.0, 1)})
	s = Reduce(s, Action{Type: ActionRemoveItem, ItemID: "l1"})
	s = Reduce(s, Action{Type: ActionRemoveItem, ItemID: "l2"})

	require.NotNil(t, s.LastDeletedItem)
	assert.Equal(t, "l2", s.LastDeletedItem.ID)

	// Only the second deletion is recoverable.
	s = Reduce(s, Action{Type: ActionUndoDelete})
	require.Len(t, s.Items, 1)
	assert.Equal(t, "l2", s.Items[0].ID)
}

func TestReduceClearUndoIdempotent(t *testing.T) {
	s := Reduce(domain.CartState{}, Action{Type: ActionClearUndo})
	assert.False(t, s.CanUndo)
	s = Reduce(s, Action{Type: ActionClearUndo})
	assert.False(t, s.CanUndo)
	assert.Nil(t, s.LastDeletedItem)
}

func TestReduceClearCartKeepsUndoBuffer(t *testing.T) {
	s := domain.CartState{}
	s = Reduce(s, Action{Type: ActionAddItem, Item: lineFor("l1", "p1", 10.0, 2)})
	s = Reduce(s, Action{Type: ActionAddItem, Item: lineFor("l2", "p2", 5.0, 1)})
	s = Reduce(s, Action{Type: ActionRemoveItem, ItemID: "l1"})
	s = Reduce(s, Action{Type: ActionClearCart})

	assert.Empty(t, s.Items)
	assert.Zero(t, s.TotalItems)
	assert.Zero(t, s.TotalPrice)
	assert.True(t, s.CanUndo)
	require.NotNil(t, s.LastDeletedItem)
	assert.Equal(t, "l1", s.LastDeletedItem.ID)
}

func TestReduceVisibility(t *testing.T) {
	s := Reduce(domain.CartState{}, Action{Type: ActionToggleOpen})
	assert.True(t, s.IsOpen)
	s = Reduce(s, Action{Type: ActionToggleOpen})
	assert.False(t, s.IsOpen)
	s = Reduce(s, Action{Type: ActionSetOpen, Open: true})
	assert.True(t, s.IsOpen)
}

func TestReduceLoadPreservesUndoBuffer(t *testing.T) {
	s := domain.CartState{}
	s = Reduce(s, Action{Type: ActionAddItem, Item: lineFor("l1", "p1", 10.0, 1)})
	s = Reduce(s, Action{Type: ActionRemoveItem, ItemID: "l1"})

	loaded := []domain.CartItem{lineFor("l9", "p9", "49.99", 2)}
	s = Reduce(s, Action{Type: ActionLoadItems, Items: loaded})

	require.Len(t, s.Items, 1)
	assert.Equal(t, "l9", s.Items[0].ID)
	assert.Equal(t, 2, s.TotalItems)
	assert.Equal(t, 99.98, s.TotalPrice)
	assert.True(t, s.CanUndo)
	require.NotNil(t, s.LastDeletedItem)
}

func TestReduceInvalidPricesContributeZero(t *testing.T) {
	s := domain.CartState{}
	s = Reduce(s, Action{Type: ActionAddItem, Item: lineFor("l1", "p1", "oops", 3)})
	s = Reduce(s, Action{Type: ActionAddItem, Item: lineFor("l2", "p2", "10.00", 1)})

	assert.Equal(t, 4, s.TotalItems)
	assert.Equal(t, 10.0, s.TotalPrice)
}

func TestReduceUnknownActionIsNoop(t *testing.T) {
	s := Reduce(domain.CartState{}, Action{Type: ActionAddItem, Item: lineFor("l1", "p1", 10.0, 1)})
	after := Reduce(s, Action{Type: ActionType("definitely-not-an-action")})
	assert.Equal(t, s, after)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	s := Reduce(domain.CartState{}, Action{Type: ActionAddItem, Item: lineFor("l1", "p1", 10.0, 1)})
	before := s.Items[0].Quantity

	_ = Reduce(s, Action{Type: ActionUpdateQuantity, ItemID: "l1", Quantity: 9})
	_ = Reduce(s, Action{Type: ActionMarkDeleting, ItemID: "l1"})

	assert.Equal(t, before, s.Items[0].Quantity)
	assert.False(t, s.Items[0].IsDeleting)
}
