package vault

import (
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"

	"github.com/walletkeep/walletkeep/user"
)

// legacyAccountsKey held the single-network account list before the user-list
// schema. Only the restructure step reads it.
const legacyAccountsKey = "accounts"

const defaultEncryptionRounds = 5000

// Gateway asset ids backfilled into existing pinned-asset lists.
const (
	gatewayEthereumID = "474jTeYx2r2Va35794tCScAXWJG9hU2HcgxzMowaZUnu"
	gatewayLitecoinID = "HZk1mbfuJpmxU1Fs4AX5MWLVYtctsNcg6e2C6VKqK8zk"
)

// Steps returns the registered wallet-data migrations. The steps work on
// loosely typed records so fields a step does not touch survive the rewrite
// untouched.
func Steps() []Step {
	return []Step{
		{Version: "1.0.0-beta.23", Name: "restructure user list",
			Apply: restructureUserList},
		{Version: "1.0.0-beta.35", Name: "backfill last open version",
			Apply: backfillLastOpenVersion},
		{Version: "1.0.0", Name: "pin ethereum gateway",
			Apply: pinGatewayAsset(gatewayEthereumID)},
		{Version: "1.0.4", Name: "pin litecoin gateway",
			Apply: pinGatewayAsset(gatewayLitecoinID)},
		{Version: "1.1.2", Name: "drop matcher fee setting",
			Apply: dropMatcherFeeSetting},
	}
}

// restructureUserList converts the legacy single-network account list into
// the generic user list and drops every pre-migration key. The new list is
// written before the old keys go, so a crash mid-step never leaves the store
// without either shape; only the list and the version tag survive.
func restructureUserList(a *Adapter) (err error) {
	defer err2.Handle(&err, "restructure user list")

	val := try.To1(a.Load(legacyAccountsKey))

	users := make([]map[string]any, 0)
	if val.Exists() {
		var legacy []map[string]any
		try.To(val.Decode(&legacy))

		for _, acc := range legacy {
			users = append(users, map[string]any{
				"address":       acc["address"],
				"encryptedSeed": acc["encryptedSeed"],
				"settings": map[string]any{
					"encryptionRounds": defaultEncryptionRounds,
				},
			})
		}
	}

	try.To(a.Save(user.ListKey, users))
	for _, k := range try.To1(a.Keys()) {
		if k == user.ListKey || k == VersionKey {
			continue
		}
		try.To(a.Remove(k))
	}
	return nil
}

// backfillLastOpenVersion stamps every user that has no lastOpenVersion yet.
// The stamp is this step's own tag, the newest build known to have opened
// the record.
func backfillLastOpenVersion(a *Adapter) (err error) {
	defer err2.Handle(&err, "backfill last open version")

	users := try.To1(loadUsers(a))
	if users == nil {
		return nil
	}
	for _, u := range users {
		s := settingsOf(u)
		if v, ok := s["lastOpenVersion"].(string); !ok || v == "" {
			s["lastOpenVersion"] = "1.0.0-beta.35"
		}
	}
	return a.Save(user.ListKey, users)
}

// pinGatewayAsset appends the gateway asset id to each user's pinned-asset
// list when the list exists and does not already hold it. Users without a
// pinned list are left alone. Running the step twice is a no-op.
func pinGatewayAsset(assetID string) func(a *Adapter) error {
	return func(a *Adapter) (err error) {
		defer err2.Handle(&err, "pin gateway asset")

		users := try.To1(loadUsers(a))
		if users == nil {
			return nil
		}
		for _, u := range users {
			s := settingsOf(u)
			pinned, ok := s["pinnedAssetIdList"].([]any)
			if !ok {
				continue
			}
			if containsString(pinned, assetID) {
				continue
			}
			s["pinnedAssetIdList"] = append(pinned, assetID)
		}
		return a.Save(user.ListKey, users)
	}
}

// dropMatcherFeeSetting removes the obsolete matcherFee field from every
// user's settings.
func dropMatcherFeeSetting(a *Adapter) (err error) {
	defer err2.Handle(&err, "drop matcher fee setting")

	users := try.To1(loadUsers(a))
	if users == nil {
		return nil
	}
	for _, u := range users {
		delete(settingsOf(u), "matcherFee")
	}
	return a.Save(user.ListKey, users)
}

// loadUsers returns nil without an error when no user list is stored yet.
func loadUsers(a *Adapter) (users []map[string]any, err error) {
	defer err2.Handle(&err, "load user list")

	val := try.To1(a.Load(user.ListKey))
	if !val.Exists() {
		return nil, nil
	}
	try.To(val.Decode(&users))
	return users, nil
}

func settingsOf(u map[string]any) map[string]any {
	s, ok := u["settings"].(map[string]any)
	if !ok {
		s = make(map[string]any)
		u["settings"] = s
	}
	return s
}

func containsString(list []any, s string) bool {
	for _, v := range list {
		if str, ok := v.(string); ok && str == s {
			return true
		}
	}
	return false
}
