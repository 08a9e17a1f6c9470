/*
Package storage selects and implements the backend key/value stores of the
wallet vault. Three backends share the same surface: a bolt file store, an
in-memory store and an adapter for a host-shell bridge. Selection happens
exactly once, in Open, and is never reevaluated per call.
*/
package storage

import (
	"github.com/golang/glog"
	"github.com/walletkeep/walletkeep/seal"
)

// Backend is the store contract the vault runs on. Values are plain strings,
// serialization belongs to the caller. GetItem reports a missing key with
// found == false, not with an error.
type Backend interface {
	GetItem(key string) (value string, found bool, err error)
	SetItem(key, value string) error
	RemoveItem(key string) error
	Clear() error
	Keys() ([]string, error)
	Len() (int, error)
	Close() error
}

// FileBacked is the extra surface of backends persisted in a local file.
// Callers that need the file itself, like the backup command, type-assert
// the Backend they got from Open.
type FileBacked interface {
	Filename() string
}

// Config carries the backend selection inputs. When Bridge is set the host
// bridge wins; otherwise a bolt file store is opened at FilePath/FileName.bolt
// and Seal, when non-nil, encrypts its values at rest.
type Config struct {
	FilePath string
	FileName string
	Seal     *seal.Cipher
	Bridge   HostBridge
}

// Open picks the backend store for this process. It never fails: when the
// bolt file cannot be opened for writing the in-memory store substitutes with
// an identical surface and only a warning tells the difference.
func Open(cfg Config) Backend {
	if cfg.Bridge != nil {
		glog.V(1).Infoln("storage: using host bridge backend")
		return newBridgeStore(cfg.Bridge)
	}

	b, err := openBolt(cfg)
	if err != nil {
		glog.Warningln("storage: bolt unavailable, falling back to memory:", err)
		return NewMemStore()
	}
	glog.V(1).Infoln("storage: using bolt backend", b.filename)
	return b
}
