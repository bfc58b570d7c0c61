package zblob

import (
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
)

// Oid is the content address of a blob: a CIDv1 over the raw codec
// with a sha2-256 multihash, rendered in base58btc ("zb2rh…"), the
// same addressing pflow.dev uses for shared models.
type Oid struct {
	cid cid.Cid
}

// NewOid computes the Oid of the given bytes.
func NewOid(data []byte) (Oid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return Oid{}, fmt.Errorf("hash: %w", err)
	}
	return Oid{cid: cid.NewCidV1(cid.Raw, sum)}, nil
}

// String renders the Oid in base58btc.
func (o Oid) String() string {
	s, err := o.cid.StringOfBase(multibase.Base58BTC)
	if err != nil {
		return ""
	}
	return s
}

// Bytes returns the binary CID.
func (o Oid) Bytes() []byte {
	return o.cid.Bytes()
}
