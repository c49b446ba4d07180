package agency

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"
)

// load reads the whole ledger from kv. Any missing or unreadable key falls
// back to its default value.
//
// Unreadable values are never lost on the next Save: a list record that
// cannot be decoded is kept aside and written back after the readable ones,
// and a document that cannot be decoded at all stays in storage until the
// ledger actually changes that key.
func (l *Ledger) load() {
	l.stale = map[string][]byte{}
	l.unreadable = map[string][]json.RawMessage{}
	l.profile = loadKey(l, KeyAgentProfile, DefaultProfile(l.Today()))
	l.settings = loadKey(l, KeyAppSettings, DefaultSettings())
	l.customers = loadList[Customer](l, KeyCustomers)
	l.collections = loadList[Collection](l, KeyCollections)
	l.deposits = loadList[Deposit](l, KeyDeposits)
}

// read returns the stored value of key, false when it is absent or cannot
// be read.
func (l *Ledger) read(key string) ([]byte, bool) {
	data, err := l.kv.Get(key)
	if errors.Is(err, fs.ErrNotExist) {
		l.log.Debug("key absent, using default", zap.String("key", key))
		return nil, false
	}
	if err != nil {
		l.log.Warn("cannot read key, using default", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return data, true
}

// keep marks key as holding an unreadable value: Save leaves it in place as
// long as the in memory value still encodes as def.
func (l *Ledger) keep(key string, def any) {
	data, err := json.Marshal(def)
	if err != nil {
		return
	}
	l.stale[key] = data
}

func loadKey[T any](l *Ledger, key string, def T) T {
	data, ok := l.read(key)
	if !ok {
		return def
	}
	// fields absent from the stored document keep their default.
	v := def
	if err := json.Unmarshal(data, &v); err != nil {
		l.log.Warn("cannot decode key, using default", zap.String("key", key), zap.Error(err))
		l.keep(key, def)
		return def
	}
	return v
}

// loadList decodes a list record by record. It never returns nil, so that a
// stored null encodes back as an empty array.
func loadList[T any](l *Ledger, key string) []T {
	list := []T{}
	data, ok := l.read(key)
	if !ok {
		return list
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		l.log.Warn("cannot decode key, using default", zap.String("key", key), zap.Error(err))
		l.keep(key, list)
		return list
	}
	for i, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			l.log.Warn("cannot decode record, keeping it aside", zap.String("key", key), zap.Int("index", i), zap.Error(err))
			l.unreadable[key] = append(l.unreadable[key], raw)
			continue
		}
		list = append(list, v)
	}
	return list
}

// encodeList encodes items followed by the records that could not be read.
func encodeList[T any](items []T, unreadable []json.RawMessage) ([]byte, error) {
	if len(unreadable) == 0 {
		return json.Marshal(items)
	}
	raws := make([]json.RawMessage, 0, len(items)+len(unreadable))
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		raws = append(raws, data)
	}
	return json.Marshal(append(raws, unreadable...))
}

// Unreadable returns the number of stored records of key that could not be
// decoded and are carried over unchanged.
func (l *Ledger) Unreadable(key string) int { return len(l.unreadable[key]) }

// Save writes the whole ledger to its KV.
//
// All values are encoded before anything is written, so an encoding failure
// leaves the storage untouched.
func (l *Ledger) Save() error {
	encoders := map[string]func() ([]byte, error){
		KeyAgentProfile: func() ([]byte, error) { return json.Marshal(l.profile) },
		KeyCustomers:    func() ([]byte, error) { return encodeList(l.customers, l.unreadable[KeyCustomers]) },
		KeyCollections:  func() ([]byte, error) { return encodeList(l.collections, l.unreadable[KeyCollections]) },
		KeyDeposits:     func() ([]byte, error) { return encodeList(l.deposits, l.unreadable[KeyDeposits]) },
		KeyAppSettings:  func() ([]byte, error) { return json.Marshal(l.settings) },
	}
	encoded := make(map[string][]byte, len(encoders))
	for _, key := range Keys {
		data, err := encoders[key]()
		if err != nil {
			l.log.Error("cannot encode ledger", zap.String("key", key), zap.Error(err))
			return fmt.Errorf("%w: encode %q: %w", ErrPersist, key, err)
		}
		encoded[key] = data
	}

	var errs error
	for _, key := range Keys {
		data := encoded[key]
		if def, ok := l.stale[key]; ok {
			if bytes.Equal(data, def) {
				continue
			}
			l.log.Warn("replacing unreadable key", zap.String("key", key))
		}
		if err := l.kv.Set(key, data); err != nil {
			l.log.Error("cannot write ledger", zap.String("key", key), zap.Error(err))
			errs = errors.Join(errs, fmt.Errorf("write %q: %w", key, err))
			continue
		}
		delete(l.stale, key)
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", ErrPersist, errs)
	}
	return nil
}
