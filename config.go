package main

import (
	"github.com/tryanzu/cart/core/config"
	"github.com/tryanzu/cart/deps"
)

// boot runs the config and dependencies bootstraping sequences.
func boot() {
	config.Bootstrap()
	deps.Bootstrap()
}
