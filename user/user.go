/*
Package user defines the persisted wallet account schema. The record shapes
are the contract of the migration steps: the JSON field names here must stay
stable, data written by an old build is read back through them.
*/
package user

import (
	"errors"

	"github.com/mr-tron/base58"
)

// ListKey is the storage key holding the full account list.
const ListKey = "userList"

// Settings is the per-account settings sub-document.
type Settings struct {
	EncryptionRounds int      `json:"encryptionRounds"`
	PinnedAssetIDs   []string `json:"pinnedAssetIdList"`
	LastOpenVersion  string   `json:"lastOpenVersion,omitempty"`
}

// Record is one wallet account. EncryptedSeed is opaque here, key material
// handling belongs to the signing SDK.
type Record struct {
	Address       string   `json:"address"`
	EncryptedSeed string   `json:"encryptedSeed"`
	Settings      Settings `json:"settings"`
}

const (
	addrMinLen = 30
	addrMaxLen = 40
)

var (
	ErrBadAddress = errors.New("malformed account address")
	ErrDuplicate  = errors.New("address already in user list")
)

// ValidAddress reports whether a is a plausible base58 account address.
func ValidAddress(a string) bool {
	d, err := base58.Decode(a)
	if err != nil {
		return false
	}
	return len(a) >= addrMinLen && len(a) <= addrMaxLen && len(d) > 0
}

// Append adds r to list rejecting duplicate addresses. The input slice is not
// mutated.
func Append(list []Record, r Record) ([]Record, error) {
	if !ValidAddress(r.Address) {
		return nil, ErrBadAddress
	}
	for i := range list {
		if list[i].Address == r.Address {
			return nil, ErrDuplicate
		}
	}
	out := make([]Record, len(list), len(list)+1)
	copy(out, list)
	return append(out, r), nil
}
