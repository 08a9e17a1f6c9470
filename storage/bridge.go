package storage

import (
	"context"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// HostBridge is the storage surface a non-browser host shell provides. Calls
// are asynchronous on the host side, hence the contexts. ReadStorage reports
// an absent key with found == false.
type HostBridge interface {
	ReadStorage(ctx context.Context, key string) (value string, found bool, err error)
	WriteStorage(ctx context.Context, key, value string) error
	RemoveStorage(ctx context.Context, key string) error
	ClearStorage(ctx context.Context) error
	StorageKeys(ctx context.Context) ([]string, error)
}

// bridgeStore adapts a HostBridge to the Backend surface. Every host call is
// tagged with a request id so host-side logs can be correlated with ours.
type bridgeStore struct {
	bridge HostBridge
}

func newBridgeStore(bridge HostBridge) Backend {
	return &bridgeStore{bridge: bridge}
}

func (s *bridgeStore) GetItem(key string) (value string, found bool, err error) {
	glog.V(7).Infoln("bridge::GetItem", key, "req", uuid.New().String())

	return s.bridge.ReadStorage(context.Background(), key)
}

func (s *bridgeStore) SetItem(key, value string) error {
	glog.V(7).Infoln("bridge::SetItem", key, "req", uuid.New().String())

	return s.bridge.WriteStorage(context.Background(), key, value)
}

func (s *bridgeStore) RemoveItem(key string) error {
	glog.V(7).Infoln("bridge::RemoveItem", key, "req", uuid.New().String())

	return s.bridge.RemoveStorage(context.Background(), key)
}

func (s *bridgeStore) Clear() error {
	glog.V(3).Infoln("bridge::Clear", "req", uuid.New().String())

	return s.bridge.ClearStorage(context.Background())
}

func (s *bridgeStore) Keys() ([]string, error) {
	glog.V(7).Infoln("bridge::Keys")

	return s.bridge.StorageKeys(context.Background())
}

func (s *bridgeStore) Len() (n int, err error) {
	defer err2.Handle(&err, "bridge len")

	keys := try.To1(s.bridge.StorageKeys(context.Background()))
	return len(keys), nil
}

func (s *bridgeStore) Close() error {
	return nil
}
