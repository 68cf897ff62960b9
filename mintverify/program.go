package mintverify

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"xdao.co/mintverify/addr"
	"xdao.co/mintverify/authority"
	"xdao.co/mintverify/ledger"
	"xdao.co/mintverify/metadata"
	"xdao.co/mintverify/token"
	"xdao.co/mintverify/wallet"
)

// Program executes the collection bootstrap and item issuance pipelines
// against a ledger store.
type Program struct {
	store ledger.Store
	log   *zap.Logger
}

// Option configures a Program.
type Option func(*Program)

// WithLogger attaches a logger. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(p *Program) {
		if log != nil {
			p.log = log
		}
	}
}

// New returns a Program bound to store.
func New(store ledger.Store, opts ...Option) *Program {
	p := &Program{store: store, log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// InitializeCollectionResult reports the accounts a bootstrap created.
type InitializeCollectionResult struct {
	CollectionMint addr.Address `json:"collectionMint"`
	AdminHolding   addr.Address `json:"adminHolding"`
	Record         addr.Address `json:"record"`
	Edition        addr.Address `json:"edition"`
	Authority      addr.Address `json:"authority"`
	Bump           uint8        `json:"bump"`
}

// MintAndVerifyResult reports the accounts an issuance created.
type MintAndVerifyResult struct {
	ItemMint    addr.Address `json:"itemMint"`
	UserHolding addr.Address `json:"userHolding"`
	Record      addr.Address `json:"record"`
	Edition     addr.Address `json:"edition"`
	Verified    bool         `json:"verified"`
}

// UpdateCollectionAuthorityResult reports the authority currently derived for
// the seed. No state changes; see UpdateCollectionAuthority.
type UpdateCollectionAuthorityResult struct {
	CurrentAuthority addr.Address `json:"currentAuthority"`
	Bump             uint8        `json:"bump"`
}

// InitializeCollection bootstraps a collection in one atomic unit: it creates
// the collection mint (quantity exactly 1, minted to the admin's holding),
// registers the descriptive record with the derived authority as update
// authority, and seals the record with max supply 0.
//
// The admin signs the request; the derived authority never does — the
// registry accepts the admin's signature during creation only.
//
// Re-running with the same collection mint fails with the ledger's
// already-in-use error, surfaced verbatim.
func (p *Program) InitializeCollection(ctx context.Context, params InitializeCollectionParams) (*InitializeCollectionResult, error) {
	auth, bump, err := p.deriveAuthority(params.Seed)
	if err != nil {
		return nil, err
	}
	if err := p.verifySigner(params.Signature, params.SigningMessage(), params.Admin); err != nil {
		return nil, err
	}

	res := &InitializeCollectionResult{
		CollectionMint: params.CollectionMint,
		Authority:      auth,
		Bump:           bump,
	}
	err = p.store.Update(ctx, func(tx ledger.Tx) error {
		admin := params.Admin
		mint := params.CollectionMint

		if err := token.CreateMint(tx, admin, mint, 0, admin, admin); err != nil {
			return err
		}
		holding, err := token.CreateHolding(tx, admin, mint, admin)
		if err != nil {
			return err
		}
		if err := token.MintTo(tx, mint, holding, admin, 1); err != nil {
			return err
		}
		res.AdminHolding = holding

		record, err := metadata.Register(tx, metadata.RegisterParams{
			Mint:            mint,
			MintAuthority:   admin,
			Payer:           admin,
			UpdateAuthority: auth,
			Data: metadata.Data{
				Name:                 params.Metadata.Name,
				Symbol:               params.Metadata.Symbol,
				URI:                  params.Metadata.URI,
				SellerFeeBasisPoints: params.Metadata.SellerFeeBasisPoints,
				Creators:             []metadata.Creator{{Address: admin, Verified: false, Share: 100}},
			},
			IsMutable:               true,
			UpdateAuthorityIsSigner: true,
		})
		if err != nil {
			return mapRegistryErr(err)
		}
		res.Record = record

		edition, err := metadata.Seal(tx, metadata.SealParams{
			Mint:            mint,
			UpdateAuthority: auth,
			MintAuthority:   admin,
			Payer:           admin,
			MaxSupply:       0,
		})
		if err != nil {
			return mapRegistryErr(err)
		}
		res.Edition = edition
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.log.Info("collection initialized",
		zap.String("mint", res.CollectionMint.String()),
		zap.String("authority", res.Authority.String()),
		zap.Uint8("bump", res.Bump),
	)
	return res, nil
}

// MintAndVerify issues one item in one atomic unit: it creates the item mint
// (quantity exactly 1, minted to the user's holding), registers the item's
// record with an unverified reference to the collection, seals it, then
// re-derives the collection authority and attests membership.
//
// A seed that does not match the referenced collection fails the verification
// step with VerificationFailed and aborts the whole unit: no item mint, no
// record, no holding survives.
func (p *Program) MintAndVerify(ctx context.Context, params MintAndVerifyParams) (*MintAndVerifyResult, error) {
	auth, _, err := p.deriveAuthority(params.Seed)
	if err != nil {
		return nil, err
	}
	if err := p.verifySigner(params.Signature, params.SigningMessage(), params.User); err != nil {
		return nil, err
	}

	res := &MintAndVerifyResult{ItemMint: params.ItemMint}
	err = p.store.Update(ctx, func(tx ledger.Tx) error {
		user := params.User
		mint := params.ItemMint

		if err := token.CreateMint(tx, user, mint, 0, user, user); err != nil {
			return err
		}
		holding, err := token.CreateHolding(tx, user, mint, user)
		if err != nil {
			return err
		}
		if err := token.MintTo(tx, mint, holding, user, 1); err != nil {
			return err
		}
		res.UserHolding = holding

		record, err := metadata.Register(tx, metadata.RegisterParams{
			Mint:            mint,
			MintAuthority:   user,
			Payer:           user,
			UpdateAuthority: user,
			Data: metadata.Data{
				Name:                 params.Metadata.Name,
				Symbol:               params.Metadata.Symbol,
				URI:                  params.Metadata.URI,
				SellerFeeBasisPoints: params.Metadata.SellerFeeBasisPoints,
				Creators:             []metadata.Creator{{Address: user, Verified: true, Share: 100}},
				Collection:           &metadata.CollectionRef{Key: params.CollectionMint},
			},
			IsMutable:               true,
			UpdateAuthorityIsSigner: true,
		})
		if err != nil {
			return mapRegistryErr(err)
		}
		res.Record = record

		edition, err := metadata.Seal(tx, metadata.SealParams{
			Mint:            mint,
			UpdateAuthority: user,
			MintAuthority:   user,
			Payer:           user,
			MaxSupply:       0,
		})
		if err != nil {
			return mapRegistryErr(err)
		}
		res.Edition = edition

		collectionRecord, err := metadata.RecordAddress(params.CollectionMint)
		if err != nil {
			return wrapError(KindInvalidCollectionAuthority, "MV-AUTH-002", "collection record derivation failed", err)
		}
		collectionEdition, err := metadata.EditionAddress(params.CollectionMint)
		if err != nil {
			return wrapError(KindInvalidCollectionAuthority, "MV-AUTH-003", "collection edition derivation failed", err)
		}
		err = metadata.VerifyMembership(tx, metadata.VerifyParams{
			Record:            record,
			Authority:         auth,
			CollectionMint:    params.CollectionMint,
			CollectionRecord:  collectionRecord,
			CollectionEdition: collectionEdition,
		})
		if err != nil {
			return wrapError(KindVerificationFailed, "MV-VERIFY-001", "collection membership verification rejected", err)
		}
		res.Verified = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.log.Info("item minted and verified",
		zap.String("mint", res.ItemMint.String()),
		zap.String("collection", params.CollectionMint.String()),
	)
	return res, nil
}

// UpdateCollectionAuthority is a recognized but unimplemented operation: it
// checks the admin's signature and the seed bounds, emits a diagnostic, and
// performs no state change.
//
// Whether rotating a derived authority is meaningful at all is an open
// requirements question — the authority is re-derivable from the seed, not a
// transferable credential — so no rotation semantics are invented here.
func (p *Program) UpdateCollectionAuthority(ctx context.Context, params UpdateCollectionAuthorityParams) (*UpdateCollectionAuthorityResult, error) {
	_ = ctx
	auth, bump, err := p.deriveAuthority(params.Seed)
	if err != nil {
		return nil, err
	}
	if err := p.verifySigner(params.Signature, params.SigningMessage(), params.Admin); err != nil {
		return nil, err
	}

	p.log.Warn("collection authority update requested; operation is a no-op",
		zap.String("currentAuthority", auth.String()),
		zap.String("proposedAuthority", params.NewAuthority.String()),
	)
	return &UpdateCollectionAuthorityResult{CurrentAuthority: auth, Bump: bump}, nil
}

func (p *Program) deriveAuthority(seed string) (addr.Address, uint8, error) {
	auth, bump, err := authority.DeriveCollectionAuthority(seed)
	if errors.Is(err, authority.ErrSeedTooLong) {
		return addr.Zero, 0, wrapError(KindInvalidCollectionSeed, "MV-SEED-001", "collection seed exceeds 32 bytes", err)
	}
	if err != nil {
		return addr.Zero, 0, wrapError(KindInvalidCollectionAuthority, "MV-AUTH-001", "collection authority derivation failed", err)
	}
	return auth, bump, nil
}

func (p *Program) verifySigner(env wallet.Envelope, message []byte, signer addr.Address) error {
	if signer.IsZero() {
		return newError(KindUnauthorized, "MV-SIGN-001", "missing signer address")
	}
	if err := wallet.Verify(env, message, signer); err != nil {
		return wrapError(KindUnauthorized, "MV-SIGN-002", "request signature rejected", err)
	}
	return nil
}

// mapRegistryErr folds registry field-constraint violations into the
// MetadataCreationFailed kind; everything else is surfaced verbatim.
func mapRegistryErr(err error) error {
	if errors.Is(err, metadata.ErrInvalidData) {
		return wrapError(KindMetadataCreationFailed, "MV-META-001", "descriptive record rejected", err)
	}
	return err
}
