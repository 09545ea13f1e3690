// Package cart implements the shopping cart: a pure state machine over
// domain.CartState, the calculation helpers it derives totals with, and the
// Controller that wires the machine to durable storage and owns the timers
// for deferred deletion and undo expiry.
package cart

import "eggypro-store/internal/domain"

// ActionType names a state machine transition.
type ActionType string

const (
	ActionAddItem          ActionType = "addItem"
	ActionUpdateQuantity   ActionType = "updateQuantity"
	ActionMarkDeleting     ActionType = "markDeleting"
	ActionCompleteDeletion ActionType = "completeDeletion"
	ActionRemoveItem       ActionType = "removeItem"
	ActionUndoDelete       ActionType = "undoDelete"
	ActionClearUndo        ActionType = "clearUndo"
	ActionClearCart        ActionType = "clearCart"
	ActionToggleOpen       ActionType = "toggleOpen"
	ActionSetOpen          ActionType = "setOpen"
	ActionLoadItems        ActionType = "loadItems"
)

// Action is one transition request. Only the fields relevant to Type are
// read; the rest are ignored.
type Action struct {
	Type     ActionType
	Item     domain.CartItem   // addItem: the line to merge or append
	ItemID   string            // updateQuantity, markDeleting, completeDeletion, removeItem
	Quantity int               // addItem (via Item.Quantity), updateQuantity
	Open     bool              // setOpen
	Items    []domain.CartItem // loadItems
}

// Reduce applies one action to a cart state and returns the successor. It is
// total: unknown actions and unsatisfied preconditions return the state
// unchanged, and the result is always structurally valid. Reduce never
// mutates its input.
func Reduce(state domain.CartState, action Action) domain.CartState {
	switch action.Type {
	case ActionAddItem:
		return reduceAdd(state, action.Item)
	case ActionUpdateQuantity:
		return reduceUpdateQuantity(state, action.ItemID, action.Quantity)
	case ActionMarkDeleting:
		return reduceMarkDeleting(state, action.ItemID)
	case ActionCompleteDeletion, ActionRemoveItem:
		// The direct path and the completion half of the two-phase path end
		// in the same state; only the controller-side scheduling differs.
		return reduceRemove(state, action.ItemID)
	case ActionUndoDelete:
		return reduceUndo(state)
	case ActionClearUndo:
		state.LastDeletedItem = nil
		state.CanUndo = false
		return state
	case ActionClearCart:
		// The undo buffer survives a clear; only the lines go.
		state.Items = nil
		return withTotals(state)
	case ActionToggleOpen:
		state.IsOpen = !state.IsOpen
		return state
	case ActionSetOpen:
		state.IsOpen = action.Open
		return state
	case ActionLoadItems:
		state.Items = cloneItems(action.Items)
		return withTotals(state)
	default:
		return state
	}
}

func reduceAdd(state domain.CartState, item domain.CartItem) domain.CartState {
	if !validQuantity(item.Quantity) {
		return state
	}
	items := cloneItems(state.Items)
	if i := findByProduct(items, item.ProductID); i >= 0 {
		combined := items[i].Quantity + item.Quantity
		if combined > MaxQuantity {
			// Rejected in full: a merge never partially applies.
			return state
		}
		items[i].Quantity = combined
	} else {
		items = append(items, item)
	}
	state.Items = items
	return withTotals(state)
}

func reduceUpdateQuantity(state domain.CartState, id string, quantity int) domain.CartState {
	if !validQuantity(quantity) {
		return state
	}
	i := findItem(state.Items, id)
	if i < 0 {
		return state
	}
	items := cloneItems(state.Items)
	items[i].Quantity = quantity
	state.Items = items
	return withTotals(state)
}

func reduceMarkDeleting(state domain.CartState, id string) domain.CartState {
	i := findItem(state.Items, id)
	if i < 0 {
		return state
	}
	items := cloneItems(state.Items)
	items[i].IsDeleting = true
	state.Items = items
	// Totals unchanged: a line pending removal still counts.
	return state
}

func reduceRemove(state domain.CartState, id string) domain.CartState {
	i := findItem(state.Items, id)
	if i < 0 {
		return state
	}
	removed := state.Items[i]
	removed.IsDeleting = false
	items := cloneItems(state.Items)
	items = append(items[:i], items[i+1:]...)
	state.Items = items
	// A new deletion overwrites the buffer unconditionally; the previous
	// occupant becomes unrecoverable.
	state.LastDeletedItem = &removed
	state.CanUndo = true
	return withTotals(state)
}

func reduceUndo(state domain.CartState) domain.CartState {
	if state.LastDeletedItem == nil {
		return state
	}
	restored := *state.LastDeletedItem
	restored.IsDeleting = false
	items := cloneItems(state.Items)
	// Restored lines go to the end, not their original position.
	items = append(items, restored)
	state.Items = items
	state.LastDeletedItem = nil
	state.CanUndo = false
	return withTotals(state)
}
