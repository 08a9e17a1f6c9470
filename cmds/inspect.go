package cmds

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// InspectCmd lists the persisted keys of the vault.
type InspectCmd struct {
	Cmd
}

type inspectResult struct {
	Keys []string `json:"keys"`
}

func (r *inspectResult) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func (c InspectCmd) Exec(w io.Writer) (r Result, err error) {
	defer err2.Handle(&err, "inspect")

	v := try.To1(c.openVault())
	defer v.Close()

	keys := try.To1(v.Keys())

	for _, k := range keys {
		try.To1(fmt.Fprintln(w, k))
	}
	return &inspectResult{Keys: keys}, nil
}
