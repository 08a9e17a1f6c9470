package cmds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"

	"github.com/walletkeep/walletkeep/storage"
	"github.com/walletkeep/walletkeep/utils"
	"github.com/walletkeep/walletkeep/vault"
)

// MigrateCmd opens the vault, runs the startup migrations and reports the
// version the data was upgraded from. Version defaults to the build version
// and exists as a knob for rehearsing upgrades against copied data.
type MigrateCmd struct {
	Cmd
	Version string
}

type migrateResult struct {
	Prior   string `json:"prior,omitempty"`
	Current string `json:"current"`
}

func (r *migrateResult) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func (c MigrateCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.Version == "" {
		return fmt.Errorf("version cannot be empty")
	}
	return nil
}

func (c MigrateCmd) Exec(w io.Writer) (r Result, err error) {
	// closing the backend directly cannot hang on an unsettled migration
	// the way Vault.Close waiting for readiness would
	var backend storage.Backend
	defer func() {
		if backend != nil {
			_ = backend.Close()
		}
	}()
	defer err2.Handle(&err, "migrate")

	backend = try.To1(c.openBackend())
	v := try.To1(vault.Open(backend, c.Version, vault.Steps()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	prior := try.To1(v.Ready(ctx))

	if prior == "" {
		try.To1(fmt.Fprintln(w, "fresh install, nothing to migrate"))
	} else {
		try.To1(fmt.Fprintln(w, "migrated from", prior))
	}
	return &migrateResult{Prior: prior, Current: c.Version}, nil
}

// DefaultVersion is the version tag MigrateCmd uses unless overridden.
func DefaultVersion() string {
	return utils.Version
}
