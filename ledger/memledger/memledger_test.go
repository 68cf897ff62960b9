package memledger

import (
	"testing"

	"xdao.co/mintverify/ledger"
	"xdao.co/mintverify/ledger/testkit"
)

func TestMemLedgerConformance(t *testing.T) {
	testkit.RunStoreConformance(t, func(t *testing.T) ledger.Store {
		return New()
	})
}
