package kvdb

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lintang-b-s/places-heatmap/pkg/geo"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"
)

var (
	ErrorsKeyNotExists = errors.New("key not exists")
)

const (
	BBOLTDB_OVERLAY_BUCKET = "overlays"
)

// OverlayRecord is a rendered heatmap overlay as stored in bbolt.
type OverlayRecord struct {
	ID          string           `msgpack:"id"`
	SessionID   string           `msgpack:"session_id"`
	Keyword     string           `msgpack:"keyword"`
	Colors      []uint32         `msgpack:"colors"` // argb
	StartPoints []float32        `msgpack:"start_points"`
	Points      []geo.Coordinate `msgpack:"points"`
	Visible     bool             `msgpack:"visible"`
	CreatedAt   time.Time        `msgpack:"created_at"`
}

type KVDB struct {
	db      *bbolt.DB
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	sync.Mutex
}

func NewKVDB(db *bbolt.DB) (*KVDB, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(BBOLTDB_OVERLAY_BUCKET))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create bucket %s: %w", BBOLTDB_OVERLAY_BUCKET, err)
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &KVDB{db: db, encoder: encoder, decoder: decoder}, nil
}

func (db *KVDB) PutOverlay(rec OverlayRecord) error {
	db.Lock()
	defer db.Unlock()
	return db.db.Update(func(tx *bbolt.Tx) error {
		return db.put(tx, rec)
	})
}

func (db *KVDB) put(tx *bbolt.Tx, rec OverlayRecord) error {
	recBytes, err := db.serializeOverlay(rec)
	if err != nil {
		return err
	}
	b := tx.Bucket([]byte(BBOLTDB_OVERLAY_BUCKET))
	return b.Put([]byte(rec.ID), recBytes)
}

func (db *KVDB) GetOverlay(id string) (rec OverlayRecord, err error) {
	err = db.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BBOLTDB_OVERLAY_BUCKET))
		recBytes := b.Get([]byte(id))
		if recBytes == nil {
			return ErrorsKeyNotExists
		}
		rec, err = db.deserializeOverlay(recBytes)
		return err
	})
	return
}

// SetOverlayVisible flips the visibility flag of a stored overlay.
func (db *KVDB) SetOverlayVisible(id string, visible bool) error {
	db.Lock()
	defer db.Unlock()
	return db.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BBOLTDB_OVERLAY_BUCKET))
		recBytes := b.Get([]byte(id))
		if recBytes == nil {
			return ErrorsKeyNotExists
		}
		rec, err := db.deserializeOverlay(recBytes)
		if err != nil {
			return err
		}
		rec.Visible = visible
		return db.put(tx, rec)
	})
}

func (db *KVDB) DeleteOverlay(id string) error {
	db.Lock()
	defer db.Unlock()
	return db.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(BBOLTDB_OVERLAY_BUCKET)).Delete([]byte(id))
	})
}

// ListOverlays returns every overlay of a session.
func (db *KVDB) ListOverlays(sessionID string) ([]OverlayRecord, error) {
	recs := []OverlayRecord{}
	err := db.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(BBOLTDB_OVERLAY_BUCKET)).ForEach(func(k, v []byte) error {
			rec, err := db.deserializeOverlay(v)
			if err != nil {
				return err
			}
			if rec.SessionID == sessionID {
				recs = append(recs, rec)
			}
			return nil
		})
	})
	return recs, err
}

// DeleteSession removes every overlay of a session and returns how many were removed.
func (db *KVDB) DeleteSession(sessionID string) (int, error) {
	db.Lock()
	defer db.Unlock()
	deleted := 0
	err := db.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BBOLTDB_OVERLAY_BUCKET))
		ids := [][]byte{}
		err := b.ForEach(func(k, v []byte) error {
			rec, err := db.deserializeOverlay(v)
			if err != nil {
				return err
			}
			if rec.SessionID == sessionID {
				ids = append(ids, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, id := range ids {
			if err := b.Delete(id); err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	return deleted, err
}

func (db *KVDB) Close() error {
	_ = db.encoder.Close()
	db.decoder.Close()
	return db.db.Close()
}

// msgpack, then zstd. point lists of a few hundred places compress well.
func (db *KVDB) serializeOverlay(rec OverlayRecord) ([]byte, error) {
	buf, err := msgpack.Marshal(&rec)
	if err != nil {
		return nil, err
	}
	return db.encoder.EncodeAll(buf, make([]byte, 0, len(buf)/2)), nil
}

func (db *KVDB) deserializeOverlay(buf []byte) (OverlayRecord, error) {
	raw, err := db.decoder.DecodeAll(buf, nil)
	if err != nil {
		return OverlayRecord{}, err
	}
	var rec OverlayRecord
	err = msgpack.Unmarshal(raw, &rec)
	return rec, err
}
