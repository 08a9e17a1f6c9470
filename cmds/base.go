/*
Package cmds holds the command logic of the walletkeep CLI. The cobra layer
in cmd/ only parses flags and environment; every command here is a plain
struct with Validate and Exec so the logic stays callable from tests and from
other frontends.
*/
package cmds

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"

	"github.com/walletkeep/walletkeep/seal"
	"github.com/walletkeep/walletkeep/storage"
	"github.com/walletkeep/walletkeep/utils"
	"github.com/walletkeep/walletkeep/vault"
)

// Result is what a command execution returns for printing.
type Result interface {
	JSON() ([]byte, error)
}

// Command is the common surface of all CLI commands.
type Command interface {
	Validate() error
	Exec(w io.Writer) (Result, error)
}

// Cmd carries the storage location every command needs.
type Cmd struct {
	StoragePath string
	StorageName string
	SealKeyFile string
}

func (c Cmd) Validate() error {
	if c.StorageName == "" {
		return errors.New("storage name cannot be empty")
	}
	return nil
}

// openBackend performs the one-time backend selection for this command run.
func (c Cmd) openBackend() (b storage.Backend, err error) {
	defer err2.Handle(&err, "open backend")

	cfg := storage.Config{
		FilePath: c.StoragePath,
		FileName: c.StorageName,
	}
	if c.SealKeyFile != "" {
		keysetJSON := try.To1(os.ReadFile(c.SealKeyFile))
		cfg.Seal = try.To1(seal.NewCipher(keysetJSON))
	}
	return storage.Open(cfg), nil
}

// openVault opens the backend and waits until the startup migrations have
// settled, exactly as the wallet application does. On failure the backend is
// closed here so a bolt file handle never outlives the error.
func (c Cmd) openVault() (v *vault.Vault, err error) {
	var backend storage.Backend
	defer err2.Handle(&err, func(err error) error {
		if backend != nil {
			_ = backend.Close()
		}
		return fmt.Errorf("open vault: %w", err)
	})

	backend = try.To1(c.openBackend())
	v = try.To1(vault.Open(backend, utils.Version, vault.Steps()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	try.To1(v.Ready(ctx))
	return v, nil
}

// ValidateTime checks a wall-clock "HH:MM" scheduler time.
func ValidateTime(s string) error {
	if _, err := time.Parse("15:04", s); err != nil {
		return errors.New("time must be given as HH:MM")
	}
	return nil
}

// ParseLoggingArgs feeds glog startup arguments like
// "-logtostderr=true -v=2" to the flag machinery.
func ParseLoggingArgs(s string) (err error) {
	defer err2.Handle(&err, "logging args")

	// glog refuses to log before the flag machinery has run
	if !flag.Parsed() {
		try.To(flag.CommandLine.Parse(nil))
	}
	for _, arg := range strings.Fields(s) {
		name, value, _ := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if value == "" {
			value = "true"
		}
		try.To(flag.Set(name, value))
	}
	return nil
}
