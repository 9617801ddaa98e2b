// Package store holds the canonical collection of workshop orders.
//
// A Store is opened once at startup, injected into whatever needs it, and
// closed on shutdown. Every mutation is serialized by the store, persisted in
// the background, and announced to subscribed listeners. Operations on an
// unknown id are silent no-ops.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/smk-kristen-pedan/order-tracker/models"
	"github.com/smk-kristen-pedan/order-tracker/storage"
	"go.uber.org/zap"
)

// DefaultKey is the storage key the collection is persisted under
const DefaultKey = "order-storage"

// writeTimeout bounds a single background persistence write
const writeTimeout = 10 * time.Second

// Option configures a Store
type Option func(*Store)

// WithKey persists the collection under key instead of DefaultKey
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithLogger sets the logger used for load and persistence messages
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store is the observable, persisted order collection
type Store struct {
	mu        sync.RWMutex
	orders    []models.Order
	ids       idGenerator
	listeners map[int]Listener
	nextID    int
	closed    bool

	// Changes take a ticket under mu and are delivered in ticket order.
	notifyMu   sync.Mutex
	notifyTurn *sync.Cond
	nextTicket uint64
	delivered  uint64

	storage storage.Storage
	key     string
	logger  *zap.Logger
	now     func() time.Time

	writes chan []byte
	done   chan struct{}
}

// Open loads the persisted collection from kv and starts the background writer
func Open(ctx context.Context, kv storage.Storage, opts ...Option) (*Store, error) {
	if kv == nil {
		return nil, errors.New("store: storage is required")
	}

	s := &Store{
		listeners: make(map[int]Listener),
		storage:   kv,
		key:       DefaultKey,
		logger:    zap.NewNop(),
		now:       time.Now,
		writes:    make(chan []byte, 1),
		done:      make(chan struct{}),
	}
	s.notifyTurn = sync.NewCond(&s.notifyMu)
	for _, opt := range opts {
		opt(s)
	}

	orders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.orders = orders
	s.ids.seed(orders)

	go s.writeLoop()

	s.logger.Info("Order store opened", zap.String("key", s.key), zap.Int("orders", len(orders)))
	return s, nil
}

func (s *Store) load(ctx context.Context) ([]models.Order, error) {
	data, err := s.storage.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.key, err)
	}

	orders, version, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.key, err)
	}
	if version != SchemaVersion {
		s.logger.Warn("Persisted orders use a different schema version",
			zap.Int("found", version), zap.Int("expected", SchemaVersion))
	}
	return orders, nil
}

// Close flushes the pending write and stops the background writer.
// Mutations after Close still change memory but are no longer persisted.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.writes)
	s.mu.Unlock()

	<-s.done
	return nil
}

// Add appends a new pending order built from draft and returns it.
// The draft is trusted: validation belongs to the caller.
func (s *Store) Add(draft models.OrderDraft) models.Order {
	var created models.Order
	s.mutate(EventAdded, func() (string, bool) {
		now := s.now()
		created = models.Order{
			ID:               s.ids.next(now),
			CustomerName:     draft.CustomerName,
			PhoneNumber:      draft.PhoneNumber,
			OrderDetails:     draft.OrderDetails,
			Quantity:         draft.Quantity,
			PricePerItem:     draft.PricePerItem,
			Notes:            draft.Notes,
			Status:           models.StatusPending,
			Progress:         0,
			AssemblyProgress: 0,
			CreatedAt:        now,
			OrderDate:        draft.OrderDate,
			Deadline:         draft.Deadline,
			Materials:        append([]models.Material(nil), draft.Materials...),
		}
		s.orders = append(s.orders, created)
		return created.ID, true
	})
	return created.Clone()
}

// UpdateProgress overwrites both progress counters of order id.
// It never completes an order; see models.Order.ReadyToComplete.
func (s *Store) UpdateProgress(id string, progress, assemblyProgress int) {
	s.mutate(EventProgress, func() (string, bool) {
		i := s.indexLocked(id)
		if i < 0 {
			return id, false
		}
		applyProgress(&s.orders[i], progress, assemblyProgress)
		return id, true
	})
}

// Complete finalizes order id: status completed, production counter forced to
// the quantity, completion time now and total = quantity × price per item.
// Calling it again repeats the same overwrite.
func (s *Store) Complete(id string) {
	s.mutate(EventCompleted, func() (string, bool) {
		i := s.indexLocked(id)
		if i < 0 {
			return id, false
		}
		completeOrder(&s.orders[i], s.now())
		return id, true
	})
}

// Update applies intents in order to order id. Either all intents apply or,
// on the first error, none do.
func (s *Store) Update(id string, intents ...Intent) error {
	var err error
	s.mutate(EventUpdated, func() (string, bool) {
		i := s.indexLocked(id)
		if i < 0 || len(intents) == 0 {
			return id, false
		}
		next := s.orders[i].Clone()
		now := s.now()
		for _, intent := range intents {
			if err = intent.apply(&next, now); err != nil {
				return id, false
			}
		}
		s.orders[i] = next
		return id, true
	})
	return err
}

// Delete removes order id
func (s *Store) Delete(id string) {
	s.mutate(EventDeleted, func() (string, bool) {
		i := s.indexLocked(id)
		if i < 0 {
			return id, false
		}
		s.orders = append(s.orders[:i], s.orders[i+1:]...)
		return id, true
	})
}

// Get returns a copy of order id
func (s *Store) Get(id string) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(id)
	if i < 0 {
		return models.Order{}, false
	}
	return s.orders[i].Clone(), true
}

// All returns every order in insertion order
func (s *Store) All() []models.Order {
	return s.filter(func(models.Order) bool { return true })
}

// ByStatus returns the orders with status, in insertion order
func (s *Store) ByStatus(status models.OrderStatus) []models.Order {
	return s.filter(func(o models.Order) bool { return o.Status == status })
}

// Active returns the orders still on the workshop floor (pending or in progress)
func (s *Store) Active() []models.Order {
	return s.filter(func(o models.Order) bool { return o.Status != models.StatusCompleted })
}

// History returns the completed orders
func (s *Store) History() []models.Order {
	return s.ByStatus(models.StatusCompleted)
}

// Len returns the number of orders
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

// Subscribe registers l for change events and returns a function removing it
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) filter(keep func(models.Order) bool) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if keep(o) {
			out = append(out, o.Clone())
		}
	}
	return out
}

func (s *Store) indexLocked(id string) int {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return i
		}
	}
	return -1
}

// mutate runs fn under the write lock. When fn reports a change the new
// collection is queued for persistence and listeners are notified in
// mutation order.
func (s *Store) mutate(kind EventKind, fn func() (id string, changed bool)) {
	s.mu.Lock()
	id, changed := fn()
	if !changed {
		s.mu.Unlock()
		return
	}

	s.persistLocked()

	var listeners []Listener
	var snapshot []models.Order
	if len(s.listeners) > 0 {
		listeners = make([]Listener, 0, len(s.listeners))
		for _, l := range s.listeners {
			listeners = append(listeners, l)
		}
		snapshot = make([]models.Order, len(s.orders))
		for i, o := range s.orders {
			snapshot[i] = o.Clone()
		}
	}
	ticket := s.nextTicket
	s.nextTicket++
	s.mu.Unlock()

	s.notifyMu.Lock()
	for s.delivered != ticket {
		s.notifyTurn.Wait()
	}
	defer func() {
		s.delivered++
		s.notifyTurn.Broadcast()
		s.notifyMu.Unlock()
	}()

	event := ChangeEvent{Kind: kind, OrderID: id, Orders: snapshot}
	for _, l := range listeners {
		l(event)
	}
}

// persistLocked encodes the collection and hands it to the writer. Only the
// newest pending snapshot is kept, so writes never land out of order.
func (s *Store) persistLocked() {
	if s.closed {
		s.logger.Warn("Order store is closed, change not persisted")
		return
	}

	data, err := Encode(s.orders)
	if err != nil {
		s.logger.Error("Failed to encode orders", zap.Error(err))
		return
	}

	select {
	case s.writes <- data:
		return
	default:
	}
	select {
	case <-s.writes:
	default:
	}
	s.writes <- data
}

func (s *Store) writeLoop() {
	defer close(s.done)

	for data := range s.writes {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := s.storage.Set(ctx, s.key, data); err != nil {
			s.logger.Error("Failed to persist orders", zap.String("key", s.key), zap.Error(err))
		}
		cancel()
	}
}
