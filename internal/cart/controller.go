package cart

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"eggypro-store/internal/domain"
	"eggypro-store/internal/storage"
)

// Timing defaults, overridable via Config.
const (
	DefaultDeleteCompletionDelay = 300 * time.Millisecond
	DefaultUndoWindow            = 5 * time.Second

	persistTimeout = time.Second
)

// snapshotVersion tags persisted snapshots so a future CartItem change can
// migrate old carts instead of silently misreading them. Version 0 is the
// legacy format: a bare JSON array of items with no envelope.
const snapshotVersion = 1

type snapshot struct {
	Version int               `json:"version"`
	Items   []domain.CartItem `json:"items"`
}

// Config wires a Controller to its collaborators.
type Config struct {
	Store      storage.Store
	Key        string        // storage key, e.g. "cart:<session>"
	Logger     *zap.Logger   // optional
	Navigate   func(string)  // optional navigation hook for BuyNow
	DeleteWait time.Duration // deferred deletion completion delay
	UndoWindow time.Duration // undo availability window
}

// Controller is the public cart façade. It serializes all access to the
// state machine, persists the line items after every change, and owns the
// deferred-deletion and undo-expiry timers so a torn-down view layer cannot
// orphan a pending transition. All operations are synchronous except the
// two timer-driven completions.
type Controller struct {
	mu     sync.Mutex
	state  domain.CartState
	store  storage.Store
	key    string
	logger *zap.Logger
	sched  *scheduler

	navigate   func(string)
	deleteWait time.Duration
	undoWindow time.Duration
}

// NewController builds a controller and hydrates its state from storage.
// A missing, unreadable, or unparsable snapshot is logged and treated as an
// empty cart; hydration never fails the session.
func NewController(ctx context.Context, cfg Config) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		store:      cfg.Store,
		key:        cfg.Key,
		logger:     logger,
		sched:      newScheduler(),
		navigate:   cfg.Navigate,
		deleteWait: cfg.DeleteWait,
		undoWindow: cfg.UndoWindow,
	}
	if c.key == "" {
		c.key = "cart"
	}
	if c.deleteWait <= 0 {
		c.deleteWait = DefaultDeleteCompletionDelay
	}
	if c.undoWindow <= 0 {
		c.undoWindow = DefaultUndoWindow
	}
	c.hydrate(ctx)
	return c
}

// Close cancels all pending timers. Pending deferred deletions are dropped,
// leaving their lines in the cart; the persisted snapshot still contains
// them, so nothing is lost.
func (c *Controller) Close() {
	c.sched.close()
}

// State returns a copy of the current cart state.
func (c *Controller) State() domain.CartState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotState()
}

func (c *Controller) snapshotState() domain.CartState {
	s := c.state
	s.Items = cloneItems(c.state.Items)
	if c.state.LastDeletedItem != nil {
		buffered := *c.state.LastDeletedItem
		s.LastDeletedItem = &buffered
	}
	return s
}

// AddItem merges a product into the cart, appending a new line when no line
// for the product exists. Quantity must land the line inside [1, 99] or the
// whole operation is rejected.
func (c *Controller) AddItem(ctx context.Context, p domain.Product, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !validQuantity(quantity) {
		return domain.ErrQuantityOutOfRange
	}
	if i := findByProduct(c.state.Items, p.ID); i >= 0 {
		if c.state.Items[i].Quantity+quantity > MaxQuantity {
			return domain.ErrQuantityOutOfRange
		}
	}

	item := domain.CartItem{
		ID:        uuid.NewString(),
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  quantity,
		ImageURL:  p.ImageURL,
		Slug:      p.Slug,
	}
	c.state = Reduce(c.state, Action{Type: ActionAddItem, Item: item})
	c.persist(ctx)
	return nil
}

// UpdateQuantity sets a line's quantity. The line must exist and the new
// quantity must be in [1, 99].
func (c *Controller) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !validQuantity(quantity) {
		return domain.ErrQuantityOutOfRange
	}
	if findItem(c.state.Items, itemID) < 0 {
		return domain.ErrNotFound
	}
	c.state = Reduce(c.state, Action{Type: ActionUpdateQuantity, ItemID: itemID, Quantity: quantity})
	c.persist(ctx)
	return nil
}

// Remove deletes a line. With deferred set, the line is first marked
// deleting so the view can play its exit animation, and the controller
// schedules the completion itself after the configured delay. Either path
// ends with the removed line in the undo buffer.
func (c *Controller) Remove(ctx context.Context, itemID string, deferred bool) error {
	if !deferred {
		return c.finishRemoval(ctx, itemID)
	}

	c.mu.Lock()
	if findItem(c.state.Items, itemID) < 0 {
		c.mu.Unlock()
		return domain.ErrNotFound
	}
	c.state = Reduce(c.state, Action{Type: ActionMarkDeleting, ItemID: itemID})
	c.persist(ctx)
	c.mu.Unlock()

	c.sched.schedule("delete:"+itemID, c.deleteWait, func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := c.finishRemoval(ctx, itemID); err != nil {
			c.logger.Warn("deferred removal skipped", zap.String("item_id", itemID), zap.Error(err))
		}
	})
	return nil
}

// MarkItemDeleting begins the two-phase delete for callers that drive the
// animation themselves. It delegates to the same controller-owned completion
// schedule as Remove(id, deferred=true).
func (c *Controller) MarkItemDeleting(ctx context.Context, itemID string) error {
	return c.Remove(ctx, itemID, true)
}

// CompleteItemDeletion finalizes a removal immediately, whether or not a
// deferred completion is still pending. Completing an already-removed line
// is a no-op reported as ErrNotFound.
func (c *Controller) CompleteItemDeletion(ctx context.Context, itemID string) error {
	return c.finishRemoval(ctx, itemID)
}

func (c *Controller) finishRemoval(ctx context.Context, itemID string) error {
	c.sched.cancel("delete:" + itemID)

	c.mu.Lock()
	if findItem(c.state.Items, itemID) < 0 {
		c.mu.Unlock()
		return domain.ErrNotFound
	}
	c.state = Reduce(c.state, Action{Type: ActionRemoveItem, ItemID: itemID})
	c.persist(ctx)
	c.mu.Unlock()

	// Each deletion restarts the undo window, replacing any stale timer.
	c.sched.schedule("undo", c.undoWindow, func() {
		c.ClearUndo()
	})
	return nil
}

// UndoDelete restores the buffered deletion to the end of the cart. Returns
// ErrNothingToUndo when the buffer is empty or already expired.
func (c *Controller) UndoDelete(ctx context.Context) error {
	c.sched.cancel("undo")

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.LastDeletedItem == nil {
		return domain.ErrNothingToUndo
	}
	c.state = Reduce(c.state, Action{Type: ActionUndoDelete})
	c.persist(ctx)
	return nil
}

// ClearUndo drops the undo buffer. Clearing an empty buffer is a no-op.
func (c *Controller) ClearUndo() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Reduce(c.state, Action{Type: ActionClearUndo})
}

// ClearCart empties the cart. The undo buffer is left alone.
func (c *Controller) ClearCart(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Reduce(c.state, Action{Type: ActionClearCart})
	c.persist(ctx)
}

// ToggleCart flips cart visibility.
func (c *Controller) ToggleCart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Reduce(c.state, Action{Type: ActionToggleOpen})
}

// SetOpen sets cart visibility.
func (c *Controller) SetOpen(open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Reduce(c.state, Action{Type: ActionSetOpen, Open: open})
}

// BuyNow adds the product, forces the cart closed, and fires the navigation
// hook toward checkout. The hook is fire-and-forget; the cart never observes
// its outcome.
func (c *Controller) BuyNow(ctx context.Context, p domain.Product, quantity int) error {
	if err := c.AddItem(ctx, p, quantity); err != nil {
		return err
	}
	c.SetOpen(false)
	if c.navigate != nil {
		c.navigate("/checkout")
	}
	return nil
}

// hydrate loads the persisted snapshot, if any. Callers hold no lock yet;
// hydrate runs before the controller is shared.
func (c *Controller) hydrate(ctx context.Context) {
	if c.store == nil {
		return
	}
	data, err := c.store.Get(ctx, c.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNoSnapshot) {
			c.logger.Warn("cart snapshot read failed, starting empty", zap.String("key", c.key), zap.Error(err))
		}
		return
	}
	items, err := decodeSnapshot(data)
	if err != nil {
		c.logger.Warn("cart snapshot unreadable, starting empty", zap.String("key", c.key), zap.Error(err))
		return
	}
	c.state = Reduce(c.state, Action{Type: ActionLoadItems, Items: items})
}

// decodeSnapshot accepts the current enveloped format and migrates the
// legacy bare-array format (version 0) on the fly.
func decodeSnapshot(data []byte) ([]domain.CartItem, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var items []domain.CartItem
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
		return items, nil
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return snap.Items, nil
}

// persist writes the full item list. Failures are logged and swallowed:
// persistence is fire-and-forget, last-write-wins. Callers hold c.mu.
func (c *Controller) persist(ctx context.Context) {
	if c.store == nil {
		return
	}
	data, err := json.Marshal(snapshot{Version: snapshotVersion, Items: c.state.Items})
	if err != nil {
		c.logger.Warn("cart snapshot encode failed", zap.String("key", c.key), zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, c.key, data); err != nil {
		c.logger.Warn("cart snapshot write failed", zap.String("key", c.key), zap.Error(err))
	}
}
