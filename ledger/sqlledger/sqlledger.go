// Package sqlledger is a SQLite-backed ledger.Store.
//
// Each Update maps to one SQLite transaction, so the all-or-nothing commit
// contract is provided by the database itself. The schema is a single
// accounts table keyed by the base58 address.
package sqlledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"xdao.co/mintverify/addr"
	"xdao.co/mintverify/ledger"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    address TEXT PRIMARY KEY,
    owner   TEXT NOT NULL,
    balance INTEGER NOT NULL,
    data    BLOB
)`

// Store is a SQLite-backed account store.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the ledger database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlledger: database path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlledger: open: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlledger: apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlledger: apply schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Update(ctx context.Context, fn func(ledger.Tx) error) error {
	return s.run(ctx, fn, false)
}

func (s *Store) View(ctx context.Context, fn func(ledger.Tx) error) error {
	return s.run(ctx, fn, true)
}

func (s *Store) run(ctx context.Context, fn func(ledger.Tx) error, readOnly bool) error {
	dbtx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlledger: begin: %w", err)
	}
	tx := &sqlTx{ctx: ctx, tx: dbtx, readOnly: readOnly}
	if err := fn(tx); err != nil {
		_ = dbtx.Rollback()
		return err
	}
	if readOnly {
		return dbtx.Rollback()
	}
	if err := dbtx.Commit(); err != nil {
		return fmt.Errorf("sqlledger: commit: %w", err)
	}
	return nil
}

type sqlTx struct {
	ctx      context.Context
	tx       *sql.Tx
	readOnly bool
}

func (t *sqlTx) Create(acct ledger.Account) error {
	if t.readOnly {
		return ledger.ErrReadOnly
	}
	if acct.Address.IsZero() {
		return ledger.ErrZeroAddress
	}
	_, err := t.tx.ExecContext(
		t.ctx,
		`INSERT INTO accounts (address, owner, balance, data) VALUES (?, ?, ?, ?)`,
		acct.Address.String(), acct.Owner, int64(acct.Balance), acct.Data,
	)
	if err != nil {
		// modernc/sqlite surfaces constraint violations as plain errors;
		// the message is the only stable discriminator.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ledger.ErrAddressInUse
		}
		return fmt.Errorf("sqlledger: create: %w", err)
	}
	return nil
}

func (t *sqlTx) Get(a addr.Address) (ledger.Account, error) {
	row := t.tx.QueryRowContext(
		t.ctx,
		`SELECT owner, balance, data FROM accounts WHERE address = ?`,
		a.String(),
	)
	var (
		owner   string
		balance int64
		data    []byte
	)
	if err := row.Scan(&owner, &balance, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ledger.Account{}, ledger.ErrNotFound
		}
		return ledger.Account{}, fmt.Errorf("sqlledger: get: %w", err)
	}
	return ledger.Account{Address: a, Owner: owner, Balance: uint64(balance), Data: data}, nil
}

func (t *sqlTx) Put(acct ledger.Account) error {
	if t.readOnly {
		return ledger.ErrReadOnly
	}
	res, err := t.tx.ExecContext(
		t.ctx,
		`UPDATE accounts SET owner = ?, balance = ?, data = ? WHERE address = ?`,
		acct.Owner, int64(acct.Balance), acct.Data, acct.Address.String(),
	)
	if err != nil {
		return fmt.Errorf("sqlledger: put: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlledger: put: %w", err)
	}
	if n == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

func (t *sqlTx) Debit(a addr.Address, amount uint64) error {
	if t.readOnly {
		return ledger.ErrReadOnly
	}
	acct, err := t.Get(a)
	if err != nil {
		return err
	}
	if acct.Balance < amount {
		return ledger.ErrInsufficientFunds
	}
	acct.Balance -= amount
	return t.Put(acct)
}

func (t *sqlTx) Credit(a addr.Address, amount uint64) error {
	if t.readOnly {
		return ledger.ErrReadOnly
	}
	if a.IsZero() {
		return ledger.ErrZeroAddress
	}
	acct, err := t.Get(a)
	if ledger.IsNotFound(err) {
		return t.Create(ledger.Account{Address: a, Owner: ledger.OwnerSystem, Balance: amount})
	}
	if err != nil {
		return err
	}
	acct.Balance += amount
	return t.Put(acct)
}
