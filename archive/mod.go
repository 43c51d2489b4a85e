// Package archive stores values in their bencode representation inside a
// key/value database.
//
// Generated keys are xid identifiers, which sort by creation time.
package archive

import (
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"go.dedis.ch/benc"
	"go.dedis.ch/benc/encoding"
	"go.dedis.ch/benc/serde/bencode"
	"go.dedis.ch/benc/store/kv"
	"golang.org/x/xerrors"
)

// ErrNotFound is returned when a key does not exist in the archive.
var ErrNotFound = xerrors.New("document not found")

var bucketName = []byte("documents")

// Entry is a key of the archive and its encoded value.
type Entry struct {
	Key   string
	Value []byte
}

// Archive is a store of bencode documents.
type Archive struct {
	db     kv.DB
	opts   []encoding.Option
	logger zerolog.Logger
}

// NewArchive returns an archive using the database. The options are given to
// the encoder of each value.
func NewArchive(db kv.DB, opts ...encoding.Option) *Archive {
	return &Archive{
		db:     db,
		opts:   opts,
		logger: benc.Logger.With().Str("role", "archive").Logger(),
	}
}

// Put encodes the value and stores it under the key, replacing any previous
// value. A key is generated when it is empty. It returns the key.
func (a *Archive) Put(key string, value interface{}) (string, error) {
	data, err := bencode.ToBytes(value, a.opts...)
	if err != nil {
		return "", xerrors.Errorf("couldn't encode value: %v", err)
	}

	return a.PutRaw(key, data)
}

// PutRaw stores data that is already encoded. A key is generated when it is
// empty. It returns the key.
func (a *Archive) PutRaw(key string, data []byte) (string, error) {
	if key == "" {
		key = xid.New().String()
	}

	err := a.db.Update(bucketName, func(b kv.Bucket) error {
		return b.Set([]byte(key), data)
	})
	if err != nil {
		return "", xerrors.Errorf("couldn't store document: %v", err)
	}

	a.logger.Debug().Str("key", key).Int("size", len(data)).Msg("document stored")

	return key, nil
}

// Get returns the encoded value of the key.
func (a *Archive) Get(key string) ([]byte, error) {
	var data []byte

	err := a.db.View(bucketName, func(b kv.Bucket) error {
		value := b.Get([]byte(key))
		if value == nil {
			return ErrNotFound
		}

		// The value is only valid during the transaction.
		data = append([]byte{}, value...)

		return nil
	})

	if xerrors.Is(err, kv.ErrBucketNotFound) || xerrors.Is(err, ErrNotFound) {
		return nil, xerrors.Errorf("key '%s': %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, xerrors.Errorf("couldn't read document: %v", err)
	}

	return data, nil
}

// List returns the entries whose key starts with the prefix, in key order.
func (a *Archive) List(prefix string) ([]Entry, error) {
	entries := []Entry{}

	err := a.db.View(bucketName, func(b kv.Bucket) error {
		return b.Scan([]byte(prefix), func(k, v []byte) error {
			entries = append(entries, Entry{
				Key:   string(k),
				Value: append([]byte{}, v...),
			})

			return nil
		})
	})

	if xerrors.Is(err, kv.ErrBucketNotFound) {
		return entries, nil
	}
	if err != nil {
		return nil, xerrors.Errorf("couldn't list documents: %v", err)
	}

	return entries, nil
}

// Delete removes the key from the archive. It returns ErrNotFound if the key
// does not exist.
func (a *Archive) Delete(key string) error {
	err := a.db.Update(bucketName, func(b kv.Bucket) error {
		if b.Get([]byte(key)) == nil {
			return ErrNotFound
		}

		return b.Delete([]byte(key))
	})

	if xerrors.Is(err, ErrNotFound) {
		return xerrors.Errorf("key '%s': %w", key, ErrNotFound)
	}
	if err != nil {
		return xerrors.Errorf("couldn't delete document: %v", err)
	}

	a.logger.Debug().Str("key", key).Msg("document deleted")

	return nil
}
