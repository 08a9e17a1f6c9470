package storage

import (
	"path/filepath"

	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	bolt "go.etcd.io/bbolt"

	"github.com/walletkeep/walletkeep/seal"
)

var vaultBucket = []byte("vault")

// boltStore is the persistent backend. All values live in a single bucket.
// When a seal cipher is configured the values are stored encrypted with the
// item key as associated data; keys stay in cleartext so enumeration works.
type boltStore struct {
	db       *bolt.DB
	filename string
	cipher   *seal.Cipher
}

func openBolt(cfg Config) (s *boltStore, err error) {
	defer err2.Handle(&err, "open bolt")

	path := cfg.FilePath
	if path == "" {
		path = "."
	}
	filename := filepath.Join(path, cfg.FileName+".bolt")

	db := try.To1(bolt.Open(filename, 0600, nil))
	try.To(db.Update(func(tx *bolt.Tx) (err error) {
		defer err2.Handle(&err, "create bucket")

		try.To1(tx.CreateBucketIfNotExists(vaultBucket))
		return nil
	}))

	return &boltStore{db: db, filename: filename, cipher: cfg.Seal}, nil
}

// Filename returns the location of the bolt file. It satisfies FileBacked
// for the backup command.
func (s *boltStore) Filename() string {
	return s.filename
}

func (s *boltStore) GetItem(key string) (value string, found bool, err error) {
	defer err2.Handle(&err)

	glog.V(7).Infoln("bolt::GetItem", key)

	try.To(s.db.View(func(tx *bolt.Tx) (err error) {
		defer err2.Handle(&err)

		d := tx.Bucket(vaultBucket).Get([]byte(key))
		if d == nil {
			return nil
		}
		found = true
		if s.cipher != nil {
			d = try.To1(s.cipher.Decrypt(d, []byte(key)))
		}
		value = string(d)
		return nil
	}))
	return value, found, nil
}

func (s *boltStore) SetItem(key, value string) (err error) {
	defer err2.Handle(&err, "bolt set")

	glog.V(7).Infoln("bolt::SetItem", key)

	d := []byte(value)
	if s.cipher != nil {
		d = try.To1(s.cipher.Encrypt(d, []byte(key)))
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(vaultBucket).Put([]byte(key), d)
	})
}

func (s *boltStore) RemoveItem(key string) error {
	glog.V(7).Infoln("bolt::RemoveItem", key)

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(vaultBucket).Delete([]byte(key))
	})
}

func (s *boltStore) Clear() error {
	glog.V(3).Infoln("bolt::Clear")

	return s.db.Update(func(tx *bolt.Tx) (err error) {
		defer err2.Handle(&err, "bolt clear")

		try.To(tx.DeleteBucket(vaultBucket))
		try.To1(tx.CreateBucket(vaultBucket))
		return nil
	})
}

func (s *boltStore) Keys() (keys []string, err error) {
	defer err2.Handle(&err, "bolt keys")

	keys = make([]string, 0)
	try.To(s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(vaultBucket).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	}))
	return keys, nil
}

func (s *boltStore) Len() (n int, err error) {
	defer err2.Handle(&err, "bolt len")

	try.To(s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(vaultBucket).Stats().KeyN
		return nil
	}))
	return n, nil
}

func (s *boltStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
