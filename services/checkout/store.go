package checkout

import (
	"sync"

	"bookify/models"
)

type sessionEntry struct {
	mu      sync.Mutex
	session *models.CheckoutSession
}

// SessionStore owns every live checkout session and every completed order for
// the process lifetime. The top-level maps are guarded by a narrow RWMutex
// covering only insert/delete/lookup of whole entries; each session carries
// its own mutex so mutations of one session are serialized without blocking
// unrelated sessions.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	orders   map[string]*models.Order
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*sessionEntry),
		orders:   make(map[string]*models.Order),
	}
}

// Create registers a new session.
func (st *SessionStore) Create(session *models.CheckoutSession) {
	st.mu.Lock()
	st.sessions[session.ID] = &sessionEntry{session: session}
	st.mu.Unlock()
}

func (st *SessionStore) entry(id string) (*sessionEntry, bool) {
	st.mu.RLock()
	e, ok := st.sessions[id]
	st.mu.RUnlock()
	return e, ok
}

// Update runs fn with the session lock held and returns a deep copy of the
// resulting session. Callers must not make provider calls inside fn.
func (st *SessionStore) Update(id string, fn func(*models.CheckoutSession) error) (*models.CheckoutSession, error) {
	e, ok := st.entry(id)
	if !ok {
		return nil, &NotFoundError{Resource: "checkout session", ID: id}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := fn(e.session); err != nil {
		return nil, err
	}
	return e.session.Clone(), nil
}

// View runs fn with the session lock held, for read-only access and
// pre-mutation snapshots.
func (st *SessionStore) View(id string, fn func(*models.CheckoutSession) error) error {
	e, ok := st.entry(id)
	if !ok {
		return &NotFoundError{Resource: "checkout session", ID: id}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

// Complete runs build with the session lock held, then atomically moves the
// session out of the active map and files the produced order under its own
// id. After Complete the session id resolves to NotFound; the order id space
// is disjoint from the session id space.
func (st *SessionStore) Complete(sessionID string, build func(*models.CheckoutSession) (*models.Order, error)) (*models.Order, error) {
	e, ok := st.entry(sessionID)
	if !ok {
		return nil, &NotFoundError{Resource: "checkout session", ID: sessionID}
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	order, err := build(e.session)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	delete(st.sessions, sessionID)
	st.orders[order.ID] = order
	st.mu.Unlock()
	return order, nil
}

// Order returns a completed order by id.
func (st *SessionStore) Order(orderID string) (*models.Order, error) {
	st.mu.RLock()
	order, ok := st.orders[orderID]
	st.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{Resource: "order", ID: orderID}
	}
	return order, nil
}
