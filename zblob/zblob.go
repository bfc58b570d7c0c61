// Package zblob packs and unpacks nets as sharable blobs: canonical
// model JSON, brotli-compressed, base64-encoded, and content-addressed
// with an IPFS CID.
package zblob

import (
	"fmt"

	"github.com/pflow-xyz/go-vasm/parser"
	"github.com/pflow-xyz/go-vasm/petrinet"
)

// Zblob is a sharable model blob plus its descriptive metadata.
type Zblob struct {
	ID           int64  `json:"id"`
	IpfsCid      string `json:"ipfsCid"`
	Base64Zipped string `json:"base64Zipped"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Keywords     string `json:"keywords"`
	Referrer     string `json:"referrer"`
	CreatedAt    string `json:"createdAt"`
}

// FromString wraps an already-encoded blob, computing its CID.
func FromString(encoded string) (*Zblob, error) {
	oid, err := NewOid([]byte(encoded))
	if err != nil {
		return nil, err
	}
	return &Zblob{
		IpfsCid:      oid.String(),
		Base64Zipped: encoded,
		Title:        "default",
	}, nil
}

// FromNet encodes a net as a sharable blob.
func FromNet(net *petrinet.PetriNet) (*Zblob, error) {
	data, err := parser.ToJSON(net)
	if err != nil {
		return nil, fmt.Errorf("encode model: %w", err)
	}
	encoded, err := CompressBrotliEncode(string(data))
	if err != nil {
		return nil, err
	}
	return FromString(encoded)
}

// Net decodes the blob back into a net.
func (z *Zblob) Net() (*petrinet.PetriNet, error) {
	decoded, err := DecompressBrotliDecode(z.Base64Zipped)
	if err != nil {
		return nil, err
	}
	return parser.FromJSON([]byte(decoded))
}

// ShareURL returns a pflow.dev link for the blob.
func (z *Zblob) ShareURL() string {
	return "https://pflow.dev/?z=" + z.Base64Zipped
}
