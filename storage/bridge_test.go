package storage

import (
	"context"
	"sync"
	"testing"

	"github.com/lainio/err2/assert"
	"github.com/lainio/err2/try"
)

// fakeBridge stands in for a host shell in tests.
type fakeBridge struct {
	l      sync.Mutex
	values map[string]string
	calls  int
}

func newFakeBridge() *fakeBridge {
	return &fakeBridge{values: make(map[string]string)}
}

func (f *fakeBridge) ReadStorage(_ context.Context, key string) (string, bool, error) {
	f.l.Lock()
	defer f.l.Unlock()
	f.calls++
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeBridge) WriteStorage(_ context.Context, key, value string) error {
	f.l.Lock()
	defer f.l.Unlock()
	f.calls++
	f.values[key] = value
	return nil
}

func (f *fakeBridge) RemoveStorage(_ context.Context, key string) error {
	f.l.Lock()
	defer f.l.Unlock()
	f.calls++
	delete(f.values, key)
	return nil
}

func (f *fakeBridge) ClearStorage(_ context.Context) error {
	f.l.Lock()
	defer f.l.Unlock()
	f.calls++
	f.values = make(map[string]string)
	return nil
}

func (f *fakeBridge) StorageKeys(_ context.Context) ([]string, error) {
	f.l.Lock()
	defer f.l.Unlock()
	f.calls++
	keys := make([]string, 0, len(f.values))
	for k := range f.values {
		keys = append(keys, k)
	}
	return keys, nil
}

func TestBridgeDelegation(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	fake := newFakeBridge()
	b := newBridgeStore(fake)

	assert.NoError(b.SetItem("k", "v"))

	v, found, err := b.GetItem("k")
	assert.NoError(err)
	assert.That(found)
	assert.Equal(v, "v")

	n := try.To1(b.Len())
	assert.Equal(n, 1)

	assert.NoError(b.RemoveItem("k"))
	_, found, err = b.GetItem("k")
	assert.NoError(err)
	assert.ThatNot(found)

	assert.NoError(b.SetItem("a", "1"))
	assert.NoError(b.Clear())
	n = try.To1(b.Len())
	assert.Equal(n, 0)

	assert.That(fake.calls > 0, "every call must reach the host bridge")
}
