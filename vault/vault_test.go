package vault

import (
	"flag"
	"math"
	"os"
	"testing"

	"github.com/lainio/err2/assert"
	"github.com/lainio/err2/try"
	"github.com/stretchr/testify/require"

	"github.com/walletkeep/walletkeep/storage"
)

func TestMain(m *testing.M) {
	setUp()
	os.Exit(m.Run())
}

func setUp() {
	try.To(flag.Set("logtostderr", "true"))
	try.To(flag.Set("stderrthreshold", "WARNING"))
	flag.Parse()
}

func newTestAdapter() *Adapter {
	return NewAdapter(storage.NewMemStore())
}

func TestAdapterJSONRoundTrip(t *testing.T) {
	a := newTestAdapter()

	tests := []struct {
		name  string
		value any
	}{
		{"object", map[string]any{"address": "3P...", "nonce": 42.0}},
		{"array", []any{"a", "b", 1.5}},
		{"number", 3.5},
		{"bool", true},
		{"nested", map[string]any{
			"settings": map[string]any{"pinnedAssetIdList": []any{"x"}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, a.Save("k", tt.value))

			v, err := a.Load("k")
			require.NoError(t, err)
			require.True(t, v.Exists())
			require.Equal(t, tt.value, v.Any())
		})
	}
}

func TestAdapterStringPassthrough(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	a := newTestAdapter()

	// not valid JSON: comes back raw and untouched
	s := "hello, not json"
	assert.NoError(a.Save("k", s))

	v := try.To1(a.Load("k"))
	assert.That(v.Exists())
	assert.Equal(v.Raw(), s)

	got, ok := v.Any().(string)
	assert.That(ok)
	assert.Equal(got, s)
}

func TestAdapterUnencodableFallsBackToString(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	a := newTestAdapter()

	// NaN is not JSON-encodable, the fmt representation is stored instead
	assert.NoError(a.Save("k", math.NaN()))

	v := try.To1(a.Load("k"))
	assert.That(v.Exists())
	assert.Equal(v.Raw(), "NaN")
}

func TestAdapterLoadAbsent(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	a := newTestAdapter()

	v := try.To1(a.Load("never-written"))
	assert.ThatNot(v.Exists())
	assert.That(v.Any() == nil)
}

func TestAdapterClear(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	a := newTestAdapter()

	assert.NoError(a.Save("k1", "v1"))
	assert.NoError(a.Save("k2", map[string]any{"x": 1}))
	assert.NoError(a.Clear())

	for _, k := range []string{"k1", "k2"} {
		v := try.To1(a.Load(k))
		assert.ThatNot(v.Exists())
	}
}

func TestValueDecode(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	a := newTestAdapter()

	type record struct {
		Address string `json:"address"`
		Rounds  int    `json:"rounds"`
	}
	in := record{Address: "3P...", Rounds: 5000}
	assert.NoError(a.Save("k", in))

	v := try.To1(a.Load("k"))
	var out record
	assert.NoError(v.Decode(&out))
	assert.Equal(out, in)
}
