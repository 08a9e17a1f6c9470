package vault

import (
	"testing"

	"github.com/lainio/err2/assert"
	"github.com/lainio/err2/try"
	"github.com/stretchr/testify/require"

	"github.com/walletkeep/walletkeep/storage"
	"github.com/walletkeep/walletkeep/user"
)

func seedUsers(t *testing.T, a *Adapter, users []map[string]any) {
	t.Helper()
	require.NoError(t, a.Save(user.ListKey, users))
}

func loadUserMaps(t *testing.T, a *Adapter) []map[string]any {
	t.Helper()
	val, err := a.Load(user.ListKey)
	require.NoError(t, err)
	require.True(t, val.Exists())
	var users []map[string]any
	require.NoError(t, val.Decode(&users))
	return users
}

func TestRestructureUserList(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	a := NewAdapter(storage.NewMemStore())
	assert.NoError(a.Save(VersionKey, "1.0.0-beta.23"))
	assert.NoError(a.Save("accounts", []map[string]any{
		{"address": "3PAddrOne", "encryptedSeed": "sealed-1"},
		{"address": "3PAddrTwo", "encryptedSeed": "sealed-2"},
	}))
	assert.NoError(a.Save("someLegacyJunk", "value"))

	assert.NoError(restructureUserList(a))

	// the wipe leaves only the new list and the version tag
	junk := try.To1(a.Load("someLegacyJunk"))
	assert.ThatNot(junk.Exists())
	legacy := try.To1(a.Load("accounts"))
	assert.ThatNot(legacy.Exists())
	version := try.To1(a.Load(VersionKey))
	assert.Equal(version.Raw(), "1.0.0-beta.23")

	users := loadUserMaps(t, a)
	require.Len(t, users, 2)
	require.Equal(t, "3PAddrOne", users[0]["address"])
	require.Equal(t, "sealed-1", users[0]["encryptedSeed"])

	settings, ok := users[0]["settings"].(map[string]any)
	require.True(t, ok)
	require.EqualValues(t, defaultEncryptionRounds, settings["encryptionRounds"])
}

func TestRestructureWithoutLegacyKey(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	a := NewAdapter(storage.NewMemStore())
	assert.NoError(restructureUserList(a))

	users := loadUserMaps(t, a)
	assert.SLen(users, 0, "an empty list must still be written")
}

func TestBackfillLastOpenVersion(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	a := NewAdapter(storage.NewMemStore())
	seedUsers(t, a, []map[string]any{
		{"address": "3PAddrOne", "settings": map[string]any{}},
		{"address": "3PAddrTwo", "settings": map[string]any{
			"lastOpenVersion": "1.0.0-beta.30",
		}},
	})

	assert.NoError(backfillLastOpenVersion(a))

	users := loadUserMaps(t, a)
	s0 := users[0]["settings"].(map[string]any)
	s1 := users[1]["settings"].(map[string]any)
	require.Equal(t, "1.0.0-beta.35", s0["lastOpenVersion"])
	require.Equal(t, "1.0.0-beta.30", s1["lastOpenVersion"],
		"an existing stamp must not be overwritten")
}

func TestPinGatewayAssetIdempotent(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	a := NewAdapter(storage.NewMemStore())
	seedUsers(t, a, []map[string]any{
		{"address": "3PAddrOne", "settings": map[string]any{
			"pinnedAssetIdList": []any{"WAVES", "BTC"},
		}},
		{"address": "3PAddrTwo", "settings": map[string]any{}},
	})

	step := pinGatewayAsset(gatewayEthereumID)
	assert.NoError(step(a))
	assert.NoError(step(a)) // second run must be a no-op

	users := loadUserMaps(t, a)
	s0 := users[0]["settings"].(map[string]any)
	require.Equal(t,
		[]any{"WAVES", "BTC", gatewayEthereumID},
		s0["pinnedAssetIdList"],
		"exactly one insertion, order preserved")

	s1 := users[1]["settings"].(map[string]any)
	_, hasList := s1["pinnedAssetIdList"]
	require.False(t, hasList, "users without a pinned list stay untouched")
}

func TestDropMatcherFeePreservesOtherFields(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	a := NewAdapter(storage.NewMemStore())
	seedUsers(t, a, []map[string]any{
		{"address": "3PAddrOne", "customField": "survives", "settings": map[string]any{
			"matcherFee": 300000.0,
			"theme":      "dark",
		}},
	})

	assert.NoError(dropMatcherFeeSetting(a))

	users := loadUserMaps(t, a)
	require.Equal(t, "survives", users[0]["customField"])
	s := users[0]["settings"].(map[string]any)
	_, hasFee := s["matcherFee"]
	require.False(t, hasFee)
	require.Equal(t, "dark", s["theme"])
}

func TestStepsOnEmptyStore(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	// every step must be runnable before any user list exists
	for _, s := range Steps() {
		a := NewAdapter(storage.NewMemStore())
		assert.NoError(s.Apply(a), s.Name)
	}
}

func TestFullUpgradeChain(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	backend := storage.NewMemStore()
	seed := NewAdapter(backend)
	assert.NoError(seed.Save(VersionKey, "1.0.0-beta.20"))
	assert.NoError(seed.Save("accounts", []map[string]any{
		{"address": "3PAddrOne", "encryptedSeed": "sealed-1"},
	}))

	v, prior := openReady(t, backend, "1.1.2", Steps())
	assert.Equal(prior, "1.0.0-beta.20")

	val := try.To1(v.Load(user.ListKey))
	assert.That(val.Exists())

	var users []user.Record
	assert.NoError(val.Decode(&users))
	assert.SLen(users, 1)
	assert.Equal(users[0].Address, "3PAddrOne")
	assert.Equal(users[0].EncryptedSeed, "sealed-1")
	assert.Equal(users[0].Settings.EncryptionRounds, defaultEncryptionRounds)
	assert.Equal(users[0].Settings.LastOpenVersion, "1.0.0-beta.35")

	// restructure wrote no pinned list, so the gateway steps skipped it
	assert.SLen(users[0].Settings.PinnedAssetIDs, 0)
}
