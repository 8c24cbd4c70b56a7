package config

import (
	"bytes"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/hjson/hjson-go"
	"github.com/imdario/mergo"
	"github.com/op/go-logging"
)

var (
	// C stands for config
	C *Config

	log = logging.MustGetLogger("config")
)

// RuntimeFile holds the settings that can change while the process runs.
var RuntimeFile = "./config.hjson"

func Bootstrap() {
	C = New()
	if err := C.Merge(RuntimeFile); err != nil && !os.IsNotExist(err) {
		log.Error(err)
	}

	// Watch config file
	go C.WatchFile(RuntimeFile)
}

// Config is the runtime config map. Every change is announced on Reload.
type Config struct {
	Reload chan bool

	mu      sync.RWMutex
	current map[string]interface{}
}

func New() *Config {
	return &Config{
		Reload:  make(chan bool, 1),
		current: map[string]interface{}{},
	}
}

// Copy returns a deep copy of the current runtime config. Callers may
// keep or change it freely.
func (c *Config) Copy() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return deepCopy(c.current)
}

func deepCopy(m map[string]interface{}) map[string]interface{} {
	copied := make(map[string]interface{}, len(m))
	for k, v := range m {
		copied[k] = copyValue(v)
	}
	return copied
}

func copyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return deepCopy(t)
	case []interface{}:
		list := make([]interface{}, len(t))
		for i := range t {
			list[i] = copyValue(t[i])
		}
		return list
	default:
		return v
	}
}

// Merge reads an hjson file and lays it over the current config.
func (c *Config) Merge(file string) error {
	dat, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	// editors truncate before writing
	if len(bytes.TrimSpace(dat)) == 0 {
		return nil
	}

	var fresh map[string]interface{}
	if err := hjson.Unmarshal(dat, &fresh); err != nil {
		return err
	}

	return c.Update(fresh)
}

// Update lays patch over the current config, patch values win.
// The merge runs on a private copy which then replaces the current map, so
// readers never see a map that is being written.
func (c *Config) Update(patch map[string]interface{}) error {
	c.mu.Lock()
	merged := deepCopy(c.current)
	if err := mergo.Merge(&merged, deepCopy(patch), mergo.WithOverride); err != nil {
		c.mu.Unlock()
		return err
	}
	c.current = merged
	c.mu.Unlock()

	// Reload signal if anyone is listening...
	select {
	case c.Reload <- true:
	default:
	}

	log.Debugf("runtime config updated: %v", merged)
	return nil
}

// WatchFile merges file again every time it is written.
func (c *Config) WatchFile(file string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Error(err)
		return
	}

	go func() {
		defer watcher.Close()

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Write == fsnotify.Write {
					log.Infof("modified file: %s", event.Name)
					if err := c.Merge(event.Name); err != nil {
						log.Error(err)
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error(err)
			}
		}
	}()

	if err := watcher.Add(file); err != nil {
		log.Warningf("not watching %s: %v", file, err)
	}
}
