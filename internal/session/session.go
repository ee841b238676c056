package session

import (
	"context"
	"log"
	"sync"

	"pos-terminal/internal/domain"
)

// Session is the explicit per-login context handed to the payment and
// closing services: who is selling, at which branch, under which pricing
// policy. The policy is fetched once at login and never re-fetched
// mid-transaction.
type Session struct {
	Seller   domain.Seller
	BranchID string
	Policy   domain.PricingPolicy
}

type policyFetcher interface {
	FetchPolicy(ctx context.Context, businessID string) (domain.PricingPolicy, error)
}

// Manager owns the terminal's single active session.
type Manager struct {
	mu         sync.RWMutex
	current    *Session
	backend    policyFetcher
	businessID string
	branchID   string
	logger     *log.Logger
}

func NewManager(backend policyFetcher, businessID, branchID string, logger *log.Logger) *Manager {
	return &Manager{
		backend:    backend,
		businessID: businessID,
		branchID:   branchID,
		logger:     logger,
	}
}

// Login starts a session for the seller, fetching the business pricing
// policy. A fetch failure does not block checkout: the fail-safe policy
// (rounding, no discount) is used and the problem is logged.
func (m *Manager) Login(ctx context.Context, seller domain.Seller) (*Session, error) {
	policy, err := m.backend.FetchPolicy(ctx, m.businessID)
	if err != nil {
		m.logger.Printf("fetch pricing policy: %v, using fail-safe defaults", err)
		policy = domain.PricingPolicy{}
	}

	s := &Session{
		Seller:   seller,
		BranchID: m.branchID,
		Policy:   policy.Normalized(),
	}

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
	return s, nil
}

// Current returns the active session, or ErrNoSession when nobody is
// logged in.
func (m *Manager) Current() (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil, domain.ErrNoSession
	}
	return m.current, nil
}

func (m *Manager) Logout() {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
}
