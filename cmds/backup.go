package cmds

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"

	"github.com/walletkeep/walletkeep/backup"
	"github.com/walletkeep/walletkeep/storage"
)

// BackupCmd snapshots the vault file into BackupDir. With BackupTime set it
// also schedules a daily snapshot at that wall-clock time and keeps running
// until interrupted; without it the command takes one snapshot and exits.
type BackupCmd struct {
	Cmd
	BackupDir  string
	BackupTime string
}

type backupResult struct {
	Dir       string `json:"dir"`
	Scheduled string `json:"scheduled,omitempty"`
}

func (r *backupResult) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func (c BackupCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.BackupDir == "" {
		return errors.New("backup directory cannot be empty")
	}
	if c.BackupTime != "" {
		if err := ValidateTime(c.BackupTime); err != nil {
			return err
		}
	}
	return nil
}

func (c BackupCmd) Exec(w io.Writer) (r Result, err error) {
	var backend storage.Backend
	defer err2.Handle(&err, func(err error) error {
		if backend != nil {
			_ = backend.Close()
		}
		return fmt.Errorf("backup: %w", err)
	})

	// the backend is opened only to locate the vault file; it is closed
	// before the copy so a snapshot never races a bolt transaction
	backend = try.To1(c.openBackend())
	fb, ok := backend.(storage.FileBacked)
	if !ok {
		return nil, errors.New("storage is not file backed, nothing to snapshot")
	}
	source := fb.Filename()
	try.To(backend.Close())
	backend = nil

	m := backup.New(backup.Config{
		SourceFile: source,
		BackupDir:  c.BackupDir,
		BackupTime: c.BackupTime,
	})
	try.To(m.Snapshot())
	try.To1(fmt.Fprintln(w, "snapshot written to", c.BackupDir))

	if c.BackupTime != "" {
		try.To(m.Start())
		defer m.Stop()
		try.To1(fmt.Fprintln(w, "daily snapshot scheduled at", c.BackupTime))
		waitForInterrupt()
	}
	return &backupResult{Dir: c.BackupDir, Scheduled: c.BackupTime}, nil
}

func waitForInterrupt() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	<-ch
}
