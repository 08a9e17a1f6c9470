/*
Package vault is the persistence core of the wallet application: a JSON-aware
key/value adapter over a storage backend, and a migration runner that brings
persisted wallet data up to the current build's schema before the vault
signals readiness.
*/
package vault

import (
	"encoding/json"
	"fmt"

	"github.com/golang/glog"

	"github.com/walletkeep/walletkeep/storage"
)

// Value is the result of a Load. The raw stored string is kept as is;
// decoding is best effort and decided by the caller.
type Value struct {
	raw    string
	exists bool
}

// Exists reports whether the key was present in the backend at all. The
// zero Value means an absent key.
func (v Value) Exists() bool {
	return v.exists
}

// Raw returns the stored string unchanged.
func (v Value) Raw() string {
	return v.raw
}

// Decode unmarshals the stored JSON into out.
func (v Value) Decode(out any) error {
	return json.Unmarshal([]byte(v.raw), out)
}

// Any returns the stored value as loosely typed data: valid JSON decodes to
// maps, slices and primitives, anything else comes back as the raw string.
// Decode failure is absorbed here, never surfaced.
func (v Value) Any() any {
	if !v.exists {
		return nil
	}
	var out any
	if err := json.Unmarshal([]byte(v.raw), &out); err != nil {
		return v.raw
	}
	return out
}

// Adapter normalizes reads and writes over a backend store. Strings are
// stored as they are, everything else is JSON-encoded on Save.
type Adapter struct {
	backend storage.Backend
}

func NewAdapter(backend storage.Backend) *Adapter {
	return &Adapter{backend: backend}
}

// Save writes value under key. A value that cannot be JSON-encoded is stored
// as its fmt representation, the error is absorbed. Backend write failures
// propagate.
func (a *Adapter) Save(key string, value any) error {
	glog.V(3).Infoln("vault::Save", key)

	return a.backend.SetItem(key, encode(key, value))
}

// Load reads the value under key. An absent key is a zero Value, not an
// error.
func (a *Adapter) Load(key string) (Value, error) {
	glog.V(3).Infoln("vault::Load", key)

	raw, found, err := a.backend.GetItem(key)
	if err != nil {
		return Value{}, err
	}
	return Value{raw: raw, exists: found}, nil
}

// Remove deletes one key. Removing an absent key is not an error.
func (a *Adapter) Remove(key string) error {
	glog.V(3).Infoln("vault::Remove", key)

	return a.backend.RemoveItem(key)
}

// Clear erases every persisted key.
func (a *Adapter) Clear() error {
	glog.V(1).Infoln("vault::Clear")

	return a.backend.Clear()
}

// Keys enumerates the persisted keys.
func (a *Adapter) Keys() ([]string, error) {
	return a.backend.Keys()
}

// Close releases the backend store.
func (a *Adapter) Close() error {
	return a.backend.Close()
}

func encode(key string, value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	d, err := json.Marshal(value)
	if err != nil {
		glog.Warningln("vault: value not JSON-encodable, storing as string:", key)
		return fmt.Sprint(value)
	}
	return string(d)
}
