package directory

import (
	"sync"

	"github.com/userdeck/userdeck/internal/account"
	"github.com/userdeck/userdeck/internal/apierr"
)

// collectionState is the mutex-guarded account slice. Mutations preserve
// the relative order of untouched rows; the only orderings the directory
// ever exposes are "server response order" and that order minus removals.
type collectionState struct {
	mu       sync.RWMutex
	accounts []account.Account
}

func (s *collectionState) replace(accounts []account.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = accounts
}

func (s *collectionState) snapshot() []account.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]account.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

func (s *collectionState) find(id int) (account.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return account.Account{}, false
}

func (s *collectionState) remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.accounts[:0]
	for _, a := range s.accounts {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	s.accounts = kept
}

// guard enforces the single-in-flight-mutation-per-id rule. A second
// mutation on an id while one is outstanding is rejected locally, not
// queued, to avoid interleaved server states.
type guard struct {
	mu       sync.Mutex
	inflight map[int]struct{}
}

func newGuard() guard {
	return guard{inflight: make(map[int]struct{})}
}

func (g *guard) acquire(id int) (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inflight[id]; busy {
		return nil, apierr.Client("Another change to this account is still in progress")
	}
	g.inflight[id] = struct{}{}

	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.inflight, id)
	}, nil
}
