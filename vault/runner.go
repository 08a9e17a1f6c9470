package vault

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"

	"github.com/walletkeep/walletkeep/storage"
)

// VersionKey is the storage key holding the version tag of the build that
// last wrote the vault.
const VersionKey = "lastVersion"

// Step is one registered data migration. Apply receives the ungated adapter
// and rewrites whatever entries the target version's schema requires.
// Registration order carries no meaning, the runner sorts by Version.
type Step struct {
	Version string
	Name    string
	Apply   func(a *Adapter) error
}

// Vault gates the storage adapter behind the startup migrations. External
// Save/Load/Clear calls wait until every applicable migration step has
// settled; migration steps themselves write through the inner adapter.
type Vault struct {
	inner *Adapter

	ready chan struct{}
	prior string
	err   error
}

type sortedStep struct {
	tag  *semver.Version
	step Step
}

// Open starts the vault over the given backend. The stored version tag is
// read, the current tag is persisted in its place before any step runs, and
// the steps strictly newer than the stored tag (and not newer than current)
// run sequentially in ascending version order. Open itself only fails on
// malformed version tags; migration outcome is delivered through Ready.
//
// Persisting the new tag before migrating is a deliberate trade-off: a crash
// mid-migration does not repeat the whole range on next start, because the
// individual steps are not idempotent.
func Open(backend storage.Backend, current string, steps []Step) (v *Vault, err error) {
	defer err2.Handle(&err, "open vault")

	cur := try.To1(semver.NewVersion(current))

	sorted := make([]sortedStep, len(steps))
	for i, s := range steps {
		tag := try.To1(semver.NewVersion(s.Version))
		sorted[i] = sortedStep{tag: tag, step: s}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].tag.LessThan(sorted[j].tag)
	})

	v = &Vault{
		inner: NewAdapter(backend),
		ready: make(chan struct{}),
	}
	go v.migrate(cur, sorted)

	return v, nil
}

// Ready blocks until the startup migrations have settled and returns the
// version tag the vault was upgraded from, empty on a fresh install. A failed
// migration step surfaces here as the step's error; the vault stays gated in
// that case and every Save/Load/Clear keeps returning the same error.
func (v *Vault) Ready(ctx context.Context) (prior string, err error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-v.ready:
		return v.prior, v.err
	}
}

// Save waits for readiness, then writes through the adapter.
func (v *Vault) Save(key string, value any) error {
	if err := v.wait(); err != nil {
		return err
	}
	return v.inner.Save(key, value)
}

// Load waits for readiness, then reads through the adapter.
func (v *Vault) Load(key string) (Value, error) {
	if err := v.wait(); err != nil {
		return Value{}, err
	}
	return v.inner.Load(key)
}

// Clear waits for readiness, then erases all persisted keys.
func (v *Vault) Clear() error {
	if err := v.wait(); err != nil {
		return err
	}
	return v.inner.Clear()
}

// Keys waits for readiness, then enumerates the persisted keys.
func (v *Vault) Keys() ([]string, error) {
	if err := v.wait(); err != nil {
		return nil, err
	}
	return v.inner.Keys()
}

// Close waits for the migrations to settle, then releases the backend store.
// It closes even after a failed migration, the error gate stays in place.
func (v *Vault) Close() error {
	<-v.ready
	return v.inner.Close()
}

func (v *Vault) wait() error {
	<-v.ready
	return v.err
}

func (v *Vault) migrate(cur *semver.Version, steps []sortedStep) {
	defer close(v.ready)

	glog.V(1).Infoln("vault: checking stored version, current", cur)

	val, err := v.inner.Load(VersionKey)
	if err != nil {
		v.err = fmt.Errorf("read %s: %w", VersionKey, err)
		return
	}
	if err := v.inner.Save(VersionKey, cur.Original()); err != nil {
		v.err = fmt.Errorf("write %s: %w", VersionKey, err)
		return
	}

	if !val.Exists() {
		glog.V(1).Infoln("vault: fresh install, no migration needed")
		return
	}
	v.prior = val.Raw()

	prior, err := semver.NewVersion(v.prior)
	if err != nil {
		v.err = fmt.Errorf("stored version %q: %w", v.prior, err)
		return
	}

	for _, s := range steps {
		// strict lower bound: the stored version's own step never re-runs
		if !s.tag.GreaterThan(prior) || s.tag.GreaterThan(cur) {
			continue
		}
		glog.V(1).Infoln("vault: migrating", s.step.Version, s.step.Name)
		if err := s.step.Apply(v.inner); err != nil {
			v.err = fmt.Errorf("migration %s (%s): %w",
				s.step.Version, s.step.Name, err)
			glog.Errorln("vault:", v.err)
			return
		}
	}
	glog.V(1).Infoln("vault: ready, upgraded from", v.prior)
}
