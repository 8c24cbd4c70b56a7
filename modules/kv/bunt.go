package kv

import (
	"context"
	"time"

	"github.com/tidwall/buntdb"
)

type Bunt struct {
	DB *buntdb.DB
}

// OpenBunt opens a buntdb file, ":memory:" keeps everything in memory.
func OpenBunt(path string) (*Bunt, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, err
	}
	return &Bunt{DB: db}, nil
}

func (b *Bunt) Get(ctx context.Context, key string) (value string, found bool, err error) {
	if err = ctx.Err(); err != nil {
		return
	}
	err = b.DB.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(key)
		if err == buntdb.ErrNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		value, found = v, true
		return nil
	})
	return
}

func (b *Bunt) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var opts *buntdb.SetOptions
	if ttl > 0 {
		opts = &buntdb.SetOptions{Expires: true, TTL: ttl}
	}
	return b.DB.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(key, value, opts)
		return err
	})
}

func (b *Bunt) Del(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.DB.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(key)
		if err == buntdb.ErrNotFound {
			return nil
		}
		return err
	})
}

func (b *Bunt) Close() error {
	if err := b.DB.Close(); err != nil && err != buntdb.ErrDatabaseClosed {
		return err
	}
	return nil
}
