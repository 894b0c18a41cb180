// Package types holds the wire-level primitives shared by every other
// package in this module: addresses, 256-bit integers, account ids, the
// KV key namespace and the borsh codec used to (de)serialize them.
package types

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// Address is a 20-byte EVM account identifier.
type Address = common.Address

// H256 is a 256-bit opaque hash.
type H256 = common.Hash

// U256 is a 256-bit unsigned integer.
type U256 = uint256.Int

// Wei is a balance amount. Arithmetic on it is always explicit about
// overflow/underflow behavior, unlike raw U256 math.
type Wei struct {
	inner uint256.Int
}

// ErrBalanceOverflow is returned by Wei.Add on checked-add overflow.
var ErrBalanceOverflow = fmt.Errorf("balance overflow")

// ErrInsufficientBalance is returned by Wei.Sub when the subtrahend exceeds the balance.
var ErrInsufficientBalance = fmt.Errorf("insufficient balance")

// NewWei constructs a Wei value from a U256.
func NewWei(v *U256) Wei {
	var w Wei
	w.inner.Set(v)
	return w
}

// ZeroWei returns the zero balance.
func ZeroWei() Wei { return Wei{} }

// Raw returns the underlying U256.
func (w Wei) Raw() *U256 {
	v := w.inner
	return &v
}

// IsZero reports whether the balance is zero.
func (w Wei) IsZero() bool { return w.inner.IsZero() }

// Add returns w+other, failing on overflow (checked-add, per spec I2/4.1 add_balance).
func (w Wei) Add(other Wei) (Wei, error) {
	var sum Wei
	overflow := sum.inner.AddOverflow(&w.inner, &other.inner)
	if overflow {
		return Wei{}, ErrBalanceOverflow
	}
	return sum, nil
}

// Sub returns w-other, failing when other > w (checked-sub, per spec §4.5 step 7).
func (w Wei) Sub(other Wei) (Wei, error) {
	if w.inner.Lt(&other.inner) {
		return Wei{}, ErrInsufficientBalance
	}
	var diff Wei
	diff.inner.Sub(&w.inner, &other.inner)
	return diff, nil
}

// SaturatingSub returns w-other, clamped to zero on underflow (used nowhere in
// balance accounting per I2/I3, but kept for symmetry with the nonce's
// saturating semantics when a future caller needs it).
func (w Wei) SaturatingSub(other Wei) Wei {
	if w.inner.Lt(&other.inner) {
		return Wei{}
	}
	var diff Wei
	diff.inner.Sub(&w.inner, &other.inner)
	return diff
}

// Cmp compares two Wei values.
func (w Wei) Cmp(other Wei) int { return w.inner.Cmp(&other.inner) }

// AccountId is an opaque host-chain account identifier. Syntax validation
// follows the NEAR account id grammar directly, since it gates the token
// bijection: an id that the host would reject must never get bound to an
// ERC-20 address.
type AccountId string

// ErrInvalidAccountId is returned when an account id fails the host's
// syntax rules.
var ErrInvalidAccountId = fmt.Errorf("invalid account id")

// ParseAccountId validates and returns an AccountId, or ErrInvalidAccountId.
//
// Rules (NEAR account id grammar): 2-64 characters, lowercase ASCII
// letters/digits, and the separators '-', '_', '.'; no leading, trailing,
// or consecutive separators.
func ParseAccountId(raw []byte) (AccountId, error) {
	s := string(raw)
	if len(s) < 2 || len(s) > 64 {
		return "", ErrInvalidAccountId
	}
	parts := strings.Split(s, ".")
	for _, part := range parts {
		if !isValidAccountIdPart(part) {
			return "", ErrInvalidAccountId
		}
	}
	return AccountId(s), nil
}

func isValidAccountIdPart(part string) bool {
	if len(part) == 0 {
		return false
	}
	prevSeparator := true // leading separator is invalid
	for i := 0; i < len(part); i++ {
		c := part[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			prevSeparator = false
		case c == '-' || c == '_':
			if prevSeparator {
				return false
			}
			prevSeparator = true
		default:
			return false
		}
	}
	return !prevSeparator // trailing separator is invalid
}

// String returns the raw account id string.
func (a AccountId) String() string { return string(a) }

// Bytes returns the UTF-8 bytes of the account id.
func (a AccountId) Bytes() []byte { return []byte(a) }

// EVMAddress derives the synthetic EVM address standing in for this account
// id, used both to authenticate host-initiated calls from a NEAR account
// (the predecessor becomes the EVM "from") and to compute the ERC-20
// contract's admin address on deployment.
func (a AccountId) EVMAddress() Address {
	h := crypto.Keccak256(a.Bytes())
	return common.BytesToAddress(h[12:])
}
