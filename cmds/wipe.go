package cmds

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// WipeCmd erases every persisted key. Sure must be set explicitly, there is
// no undo.
type WipeCmd struct {
	Cmd
	Sure bool
}

type wipeResult struct {
	Wiped bool `json:"wiped"`
}

func (r *wipeResult) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func (c WipeCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if !c.Sure {
		return errors.New("wipe needs explicit confirmation, set the sure flag")
	}
	return nil
}

func (c WipeCmd) Exec(w io.Writer) (r Result, err error) {
	defer err2.Handle(&err, "wipe")

	v := try.To1(c.openVault())
	defer v.Close()

	try.To(v.Clear())

	try.To1(fmt.Fprintln(w, "storage wiped"))
	return &wipeResult{Wiped: true}, nil
}
