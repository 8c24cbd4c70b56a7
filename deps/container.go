package deps

import (
	slog "log"
)

// Contains bootstraped dependencies.
var Container Deps

// An ignitor takes a Container and injects bootstraped dependencies.
type Ignitor func(Deps) (Deps, error)

// Ignitors in boot order. Later ones read what earlier ones provided.
var Ignitors = []Ignitor{
	IgniteConfig,
	IgniteLogger,
	IgniteSentry,
	IgniteSQL,
	IgniteMongoDB,
	IgniteRecords,
	IgniteKV,
}

// Runs ignitors to fulfill deps container.
func Bootstrap() {
	var err error
	Container, err = Ignite(Deps{}, Ignitors...)
	if err != nil {
		slog.Panic(err)
	}
}

// Ignite runs fns in order over d, stopping at the first failure.
func Ignite(d Deps, fns ...Ignitor) (Deps, error) {
	var err error
	for _, fn := range fns {
		d, err = fn(d)
		if err != nil {
			return d, err
		}
	}
	return d, nil
}
