package types

import "encoding/binary"

// KeyPrefix tags every key written into the host's flat KV namespace.
type KeyPrefix byte

const (
	KeyPrefixConfig KeyPrefix = iota
	KeyPrefixNonce
	KeyPrefixBalance
	KeyPrefixCode
	KeyPrefixStorage
	KeyPrefixGeneration
	KeyPrefixNep141Erc20Map
	KeyPrefixErc20Nep141Map
	KeyPrefixRelayerEvmAddressMap
)

// configStateKey is the fixed suffix under KeyPrefixConfig that stores the
// singleton EngineState.
const configStateKey = "STATE"

// addressKey builds `prefix || address`.
func addressKey(prefix KeyPrefix, addr Address) []byte {
	key := make([]byte, 0, 1+len(addr))
	key = append(key, byte(prefix))
	key = append(key, addr.Bytes()...)
	return key
}

// NonceKey returns the storage key for an address's nonce.
func NonceKey(addr Address) []byte { return addressKey(KeyPrefixNonce, addr) }

// BalanceKey returns the storage key for an address's balance.
func BalanceKey(addr Address) []byte { return addressKey(KeyPrefixBalance, addr) }

// CodeKey returns the storage key for an address's code.
func CodeKey(addr Address) []byte { return addressKey(KeyPrefixCode, addr) }

// GenerationKey returns the storage key for an address's storage generation.
func GenerationKey(addr Address) []byte { return addressKey(KeyPrefixGeneration, addr) }

// StorageKey returns the storage key for one storage slot, embedding the
// generation so that bumping the generation makes every old slot key
// unreachable without enumerating and deleting them individually.
func StorageKey(addr Address, generation uint32, slot H256) []byte {
	key := make([]byte, 0, 1+len(addr)+4+len(slot))
	key = append(key, byte(KeyPrefixStorage))
	key = append(key, addr.Bytes()...)
	var genBytes [4]byte
	binary.BigEndian.PutUint32(genBytes[:], generation)
	key = append(key, genBytes[:]...)
	key = append(key, slot.Bytes()...)
	return key
}

// Nep141Erc20MapKey returns the storage key for the account-id -> erc20
// direction of the token bijection.
func Nep141Erc20MapKey(accountID AccountId) []byte {
	key := make([]byte, 0, 1+len(accountID))
	key = append(key, byte(KeyPrefixNep141Erc20Map))
	key = append(key, accountID.Bytes()...)
	return key
}

// Erc20Nep141MapKey returns the storage key for the erc20 -> account-id
// direction of the token bijection.
func Erc20Nep141MapKey(addr Address) []byte { return addressKey(KeyPrefixErc20Nep141Map, addr) }

// RelayerKey returns the storage key for an account id's relayer address.
func RelayerKey(accountID AccountId) []byte {
	key := make([]byte, 0, 1+len(accountID))
	key = append(key, byte(KeyPrefixRelayerEvmAddressMap))
	key = append(key, accountID.Bytes()...)
	return key
}

// ConfigStateKey returns the storage key for the singleton EngineState.
func ConfigStateKey() []byte {
	key := make([]byte, 0, 1+len(configStateKey))
	key = append(key, byte(KeyPrefixConfig))
	key = append(key, configStateKey...)
	return key
}
