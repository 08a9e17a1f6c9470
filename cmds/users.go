package cmds

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"

	"github.com/walletkeep/walletkeep/user"
)

// UsersCmd dumps the stored user list. Seed material is redacted, the
// command is for inspecting account metadata, not for exporting wallets.
type UsersCmd struct {
	Cmd
}

type usersResult struct {
	Users []user.Record `json:"users"`
}

func (r *usersResult) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func (c UsersCmd) Exec(w io.Writer) (r Result, err error) {
	defer err2.Handle(&err, "users")

	v := try.To1(c.openVault())
	defer v.Close()

	val := try.To1(v.Load(user.ListKey))

	users := make([]user.Record, 0)
	if val.Exists() {
		try.To(val.Decode(&users))
	}
	for i := range users {
		users[i].EncryptedSeed = "<redacted>"
		try.To1(fmt.Fprintln(w, users[i].Address))
	}
	return &usersResult{Users: users}, nil
}
