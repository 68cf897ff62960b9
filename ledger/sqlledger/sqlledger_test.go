package sqlledger

import (
	"path/filepath"
	"testing"

	"xdao.co/mintverify/ledger"
	"xdao.co/mintverify/ledger/testkit"
)

func TestSQLLedgerConformance(t *testing.T) {
	testkit.RunStoreConformance(t, func(t *testing.T) ledger.Store {
		store, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		t.Cleanup(func() { _ = store.Close() })
		return store
	})
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
