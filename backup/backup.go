/*
Package backup snapshots the vault's bolt file on a daily schedule. A snapshot
is a plain file copy; bolt keeps the file consistent between write
transactions, and the vault serializes its writes, so copying outside a
migration window is safe.
*/
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Config tells what to snapshot and when. BackupTime is a wall-clock "HH:MM"
// accepted by the scheduler.
type Config struct {
	SourceFile string
	BackupDir  string
	BackupTime string
}

type Manager struct {
	conf Config
	cron *gocron.Scheduler
}

func New(conf Config) *Manager {
	return &Manager{
		conf: conf,
		cron: gocron.NewScheduler(time.Now().Location()),
	}
}

// Start schedules the daily snapshot and returns immediately. The scheduler
// runs until Stop.
func (m *Manager) Start() (err error) {
	defer err2.Handle(&err, "start backup")

	glog.V(1).Infoln("vault backup time:", m.conf.BackupTime)
	try.To1(m.cron.Every(1).Day().At(m.conf.BackupTime).Do(m.Backup))
	m.cron.StartAsync()
	return nil
}

func (m *Manager) Stop() {
	m.cron.Stop()
}

// Backup is the scheduler target. Errors are logged, not returned: a missed
// snapshot must not take the scheduler down with it.
func (m *Manager) Backup() {
	if err := m.Snapshot(); err != nil {
		glog.Errorln("vault backup:", err)
	}
}

// Snapshot takes one snapshot now.
func (m *Manager) Snapshot() (err error) {
	defer err2.Handle(&err, "vault snapshot")

	name := snapshotName(m.conf.SourceFile, time.Now())
	target := filepath.Join(m.conf.BackupDir, name)

	try.To(os.MkdirAll(m.conf.BackupDir, 0700))
	try.To(copyFile(m.conf.SourceFile, target))

	glog.V(1).Infoln("vault backup written:", target)
	return nil
}

func snapshotName(source string, at time.Time) string {
	base := filepath.Base(source)
	ext := filepath.Ext(base)
	stem := base[:len(base)-len(ext)]
	return fmt.Sprintf("%s-%s-%s%s",
		stem, at.Format("2006-01-02"), uuid.New().String()[:8], ext)
}

func copyFile(source, target string) (err error) {
	defer err2.Handle(&err)

	in := try.To1(os.Open(source))
	defer in.Close()

	out := try.To1(os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600))
	defer out.Close()

	try.To1(io.Copy(out, in))
	return nil
}
