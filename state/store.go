// Package state implements the account, storage, token-bijection and
// engine-configuration model described in spec.md §3 and §4.1-§4.2, built
// directly on the host.IO key-value surface.
package state

import "github.com/olonho/aurora-engine/host"

// Store wraps host.IO with the typed accessors the rest of this package
// exposes. It holds no state of its own beyond the host handle.
type Store struct {
	io host.IO
}

// New wraps a host.IO implementation.
func New(io host.IO) *Store { return &Store{io: io} }

func (s *Store) get(key []byte) ([]byte, bool) { return s.io.Read(key) }

func (s *Store) set(key, value []byte) { s.io.Write(key, value) }

func (s *Store) remove(key []byte) { s.io.Remove(key) }
