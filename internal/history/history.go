// Package history archives completed analysis runs in a SQL database.
package history

import (
	"fmt"
	"sync"

	"github.com/huangsam/outlier/internal/contract"
	"github.com/huangsam/outlier/schema"
)

// StoreManager hands out the configured RunStore.
type StoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	runs         contract.RunStore
}

var _ contract.HistoryManager = &StoreManager{} // Compile-time check

// Global Manager instance for main logic.
var (
	Manager   = &StoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// NewStoreManager opens the store for backend. The none backend yields a manager
// whose GetRunStore returns nil.
func NewStoreManager(backend schema.DatabaseBackend, connStr string) (*StoreManager, error) {
	mgr := &StoreManager{}
	if backend == "" || backend == schema.NoneBackend {
		return mgr, nil
	}
	store, err := NewRunStore(backend, connStr)
	if err != nil {
		return nil, err
	}
	mgr.runs = store
	return mgr, nil
}

// GetRunStore returns the RunStore, or nil when archiving is disabled.
func (mgr *StoreManager) GetRunStore() contract.RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runs
}

// Close closes the underlying store, if any.
func (mgr *StoreManager) Close() error {
	mgr.Lock()
	defer mgr.Unlock()
	if mgr.runs == nil {
		return nil
	}
	err := mgr.runs.Close()
	mgr.runs = nil
	return err
}

// InitStores initializes the global manager. Only the first call has any effect.
func InitStores(backend schema.DatabaseBackend, connStr string) error {
	var initErr error
	initOnce.Do(func() {
		mgr, err := NewStoreManager(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize run history: %w", err)
			return
		}
		Manager.Lock()
		Manager.runs = mgr.runs
		Manager.Unlock()
	})
	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		_ = Manager.Close()
	})
}
