package mintverify

import (
	"encoding/binary"

	"xdao.co/mintverify/addr"
	"xdao.co/mintverify/wallet"
)

// CollectionMetadata is the caller-supplied descriptive data for a collection.
type CollectionMetadata struct {
	Name                 string `json:"name"`
	Symbol               string `json:"symbol"`
	URI                  string `json:"uri"`
	SellerFeeBasisPoints uint16 `json:"sellerFeeBasisPoints"`
}

// ItemMetadata is the caller-supplied descriptive data for one item.
type ItemMetadata struct {
	Name                 string `json:"name"`
	Symbol               string `json:"symbol"`
	URI                  string `json:"uri"`
	SellerFeeBasisPoints uint16 `json:"sellerFeeBasisPoints"`
}

// InitializeCollectionParams is a signed collection bootstrap request.
type InitializeCollectionParams struct {
	Admin          addr.Address       `json:"admin"`
	CollectionMint addr.Address       `json:"collectionMint"`
	Seed           string             `json:"seed"`
	Metadata       CollectionMetadata `json:"metadata"`
	Signature      wallet.Envelope    `json:"signature"`
}

// MintAndVerifyParams is a signed item issuance request.
type MintAndVerifyParams struct {
	User           addr.Address    `json:"user"`
	ItemMint       addr.Address    `json:"itemMint"`
	CollectionMint addr.Address    `json:"collectionMint"`
	Seed           string          `json:"seed"`
	Metadata       ItemMetadata    `json:"metadata"`
	Signature      wallet.Envelope `json:"signature"`
}

// UpdateCollectionAuthorityParams is a signed authority rotation request.
type UpdateCollectionAuthorityParams struct {
	Admin        addr.Address    `json:"admin"`
	Seed         string          `json:"seed"`
	NewAuthority addr.Address    `json:"newAuthority"`
	Signature    wallet.Envelope `json:"signature"`
}

// Signing messages are built from length-prefixed fields under a fixed domain
// prefix, so no two request shapes or field orderings can collide.

func appendField(b, field []byte) []byte {
	b = binary.BigEndian.AppendUint32(b, uint32(len(field)))
	return append(b, field...)
}

// SigningMessage returns the canonical bytes the admin signs.
func (p *InitializeCollectionParams) SigningMessage() []byte {
	b := []byte("mintverify/v1/initialize-collection")
	b = appendField(b, p.Admin[:])
	b = appendField(b, p.CollectionMint[:])
	b = appendField(b, []byte(p.Seed))
	b = appendField(b, []byte(p.Metadata.Name))
	b = appendField(b, []byte(p.Metadata.Symbol))
	b = appendField(b, []byte(p.Metadata.URI))
	b = binary.BigEndian.AppendUint16(b, p.Metadata.SellerFeeBasisPoints)
	return b
}

// Sign fills in Admin and Signature from signer.
func (p *InitializeCollectionParams) Sign(signer wallet.Signer, hashAlg string) error {
	p.Admin = signer.Address()
	env, err := signer.Sign(p.SigningMessage(), hashAlg)
	if err != nil {
		return err
	}
	p.Signature = env
	return nil
}

// SigningMessage returns the canonical bytes the user signs.
func (p *MintAndVerifyParams) SigningMessage() []byte {
	b := []byte("mintverify/v1/mint-and-verify")
	b = appendField(b, p.User[:])
	b = appendField(b, p.ItemMint[:])
	b = appendField(b, p.CollectionMint[:])
	b = appendField(b, []byte(p.Seed))
	b = appendField(b, []byte(p.Metadata.Name))
	b = appendField(b, []byte(p.Metadata.Symbol))
	b = appendField(b, []byte(p.Metadata.URI))
	b = binary.BigEndian.AppendUint16(b, p.Metadata.SellerFeeBasisPoints)
	return b
}

// Sign fills in User and Signature from signer.
func (p *MintAndVerifyParams) Sign(signer wallet.Signer, hashAlg string) error {
	p.User = signer.Address()
	env, err := signer.Sign(p.SigningMessage(), hashAlg)
	if err != nil {
		return err
	}
	p.Signature = env
	return nil
}

// SigningMessage returns the canonical bytes the admin signs.
func (p *UpdateCollectionAuthorityParams) SigningMessage() []byte {
	b := []byte("mintverify/v1/update-collection-authority")
	b = appendField(b, p.Admin[:])
	b = appendField(b, []byte(p.Seed))
	b = appendField(b, p.NewAuthority[:])
	return b
}

// Sign fills in Admin and Signature from signer.
func (p *UpdateCollectionAuthorityParams) Sign(signer wallet.Signer, hashAlg string) error {
	p.Admin = signer.Address()
	env, err := signer.Sign(p.SigningMessage(), hashAlg)
	if err != nil {
		return err
	}
	p.Signature = env
	return nil
}
