package domain

import (
	"strings"
)

type SortDir int8

const (
	SortDirAsc  = 1
	SortDirDesc = -1
)

// Address identifies an authenticated caller. It is opaque to the core;
// the account-authentication collaborator guarantees it.
type Address string

const EmptyAddress = Address("")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

// AuctionId is allocated by the auction counter; ids start at 1 and only increase.
type AuctionId int64
