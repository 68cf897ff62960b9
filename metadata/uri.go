package metadata

import (
	"fmt"
	"strings"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// ipfsScheme prefixes content-addressed URIs.
const ipfsScheme = "ipfs://"

// ValidateURI enforces the registry's URI constraints.
//
// Any scheme is accepted up to the length limit, but ipfs:// URIs must carry
// a decodable CID so a record can never point at unreachable content by
// construction.
func ValidateURI(uri string) error {
	if uri == "" {
		return fmt.Errorf("%w: uri is required", ErrInvalidData)
	}
	if len(uri) > MaxURILength {
		return fmt.Errorf("%w: uri exceeds %d bytes", ErrInvalidData, MaxURILength)
	}
	if rest, ok := strings.CutPrefix(uri, ipfsScheme); ok {
		id, err := cid.Decode(rest)
		if err != nil || !id.Defined() {
			return fmt.Errorf("%w: invalid ipfs uri cid", ErrInvalidData)
		}
	}
	return nil
}

// ContentURI returns the ipfs:// URI for a descriptive document, using a
// CIDv1 with the raw multicodec and a sha2-256 multihash.
func ContentURI(doc []byte) (string, error) {
	sum, err := multihash.Sum(doc, multihash.SHA2_256, -1)
	if err != nil {
		return "", err
	}
	return ipfsScheme + cid.NewCidV1(cid.Raw, sum).String(), nil
}
