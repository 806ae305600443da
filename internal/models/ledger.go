package models

import "sync"

// Ledger is the local list of unpaid transactions, unique by transaction id.
// Writes happen on the main loop; reads may come from any goroutine.
type Ledger struct {
	mu      sync.RWMutex
	items   []Transaction
	version uint64
}

func NewLedger() *Ledger {
	return &Ledger{items: make([]Transaction, 0)}
}

// Replace swaps in the server's list. Later duplicates of an id are dropped.
func (l *Ledger) Replace(txs []Transaction) {
	seen := make(map[string]struct{}, len(txs))
	items := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if _, ok := seen[tx.ID()]; ok {
			continue
		}
		seen[tx.ID()] = struct{}{}
		items = append(items, tx)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = items
	l.version++
}

// Remove drops the transaction with the given id. Removing an absent id is a no-op.
func (l *Ledger) Remove(transID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, tx := range l.items {
		if tx.ID() == transID {
			items := make([]Transaction, 0, len(l.items)-1)
			items = append(items, l.items[:i]...)
			items = append(items, l.items[i+1:]...)
			l.items = items
			l.version++
			return true
		}
	}
	return false
}

func (l *Ledger) Contains(transID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, tx := range l.items {
		if tx.ID() == transID {
			return true
		}
	}
	return false
}

func (l *Ledger) Items() []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Transaction, len(l.items))
	copy(out, l.items)
	return out
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Version changes on every mutation.
func (l *Ledger) Version() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.version
}
