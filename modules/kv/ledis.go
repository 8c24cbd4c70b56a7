package kv

import (
	"context"
	"time"

	lediscfg "github.com/siddontang/ledisdb/config"
	"github.com/siddontang/ledisdb/ledis"
)

type Ledis struct {
	conn *ledis.Ledis
	DB   *ledis.DB
}

// OpenLedis opens an embedded ledisdb under dataDir and selects db 0.
func OpenLedis(dataDir string) (*Ledis, error) {
	conf := lediscfg.NewConfigDefault()
	if dataDir != "" {
		conf.DataDir = dataDir
	}
	conn, err := ledis.Open(conf)
	if err != nil {
		return nil, err
	}

	db, err := conn.Select(0)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Ledis{conn: conn, DB: db}, nil
}

func (l *Ledis) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	v, err := l.DB.Get([]byte(key))
	if err != nil || v == nil {
		return "", false, err
	}
	return string(v), true, nil
}

// Set writes then expires; ledis ttls have second granularity.
func (l *Ledis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	k := []byte(key)
	if err := l.DB.Set(k, []byte(value)); err != nil {
		return err
	}
	if ttl <= 0 {
		return nil
	}
	seconds := int64(ttl / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	_, err := l.DB.Expire(k, seconds)
	return err
}

func (l *Ledis) Del(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := l.DB.Del([]byte(key))
	return err
}

func (l *Ledis) Close() error {
	l.conn.Close()
	return nil
}
