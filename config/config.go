// SPDX-License-Identifier: ISC

// Package config loads the handful of knobs a host process hands this
// core — default hash/signature algorithms and the on-disk path of an
// armored signing key — using github.com/spf13/viper, and watches that
// key file for changes with github.com/fsnotify/fsnotify. The teacher
// loads its own daemon configuration from HCL/Lua files elsewhere
// (out of scope here, per spec.md §1's "configuration loading" named
// external collaborator); viper itself is only an indirect dependency
// of the teacher's go.mod (pulled in transitively), so this package's
// use of viper's own API follows the library's own documented idiom
// rather than a teacher file, while the file-watching loop below is
// grounded directly on
// _examples/bitmark-inc-bitmarkd/command/recorderd/file_watcher.go's
// fsnotify.Watcher setup and event-filtering.
package config

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/hychain/core/fault"
)

var log = logger.New("config")

// Defaults is the set of knobs a host process can hand this core.
type Defaults struct {
	HashAlgorithm      string
	SignatureAlgorithm string
	ArmoredKeyPath     string
}

const (
	keyHashAlgorithm      = "hashAlgorithm"
	keySignatureAlgorithm = "signatureAlgorithm"
	keyArmoredKeyPath     = "armoredKeyPath"
)

// Load reads defaults from configPath (any format viper supports —
// YAML, JSON, TOML) merged over built-in defaults (SHA384 / ECDSA-SHA512).
func Load(configPath string) (Defaults, error) {
	v := viper.New()
	v.SetDefault(keyHashAlgorithm, "SHA384")
	v.SetDefault(keySignatureAlgorithm, "ECDSA-SHA512")
	v.SetDefault(keyArmoredKeyPath, "")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Defaults{}, fault.ErrInvalidArgument.WithContext("reason", "cannot read config file", "path", configPath, "error", err.Error())
		}
	}

	return Defaults{
		HashAlgorithm:      v.GetString(keyHashAlgorithm),
		SignatureAlgorithm: v.GetString(keySignatureAlgorithm),
		ArmoredKeyPath:     v.GetString(keyArmoredKeyPath),
	}, nil
}

// Watcher watches an armored key file on disk and invokes onChange
// with its new contents whenever the file is written or its
// permissions change. Grounded on the teacher's own file-watcher
// loop: a single fsnotify.Watcher, event filtering by base name, and
// best-effort delivery to the caller.
type Watcher struct {
	watcher  *fsnotify.Watcher
	filePath string
	onChange func([]byte)
	onRemove func()
	done     chan struct{}
}

// Watch begins watching path; onChange is invoked (on a background
// goroutine) with the file's new contents after a write/chmod event,
// onRemove when the file is deleted.
func Watch(path string, onChange func([]byte), onRemove func()) (*Watcher, error) {
	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		log.Errorf("new watcher failed: %v", err)
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		log.Errorf("watcher add %s failed: %v", absPath, err)
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		filePath: absPath,
		onChange: onChange,
		onRemove: onRemove,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			log.Infof("file event: %v", event)
			if filepath.Base(event.Name) != filepath.Base(w.filePath) {
				continue
			}
			if isRemove(event) {
				log.Errorf("watched file %s removed", w.filePath)
				if w.onRemove != nil {
					w.onRemove()
				}
				continue
			}
			if isWriteOrChmod(event) {
				contents, err := readFile(w.filePath)
				if err != nil {
					log.Errorf("reload %s failed: %v", w.filePath, err)
					continue
				}
				if w.onChange != nil {
					w.onChange(contents)
				}
			}
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher, per this module's scoped-resource
// discipline (spec.md §5) — idempotent.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
		close(w.done)
	}
	return w.watcher.Close()
}

func isRemove(event fsnotify.Event) bool {
	return event.Op&fsnotify.Remove == fsnotify.Remove
}

func isWriteOrChmod(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Chmod == fsnotify.Chmod
}

func readFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
