package store

import (
	"context"
	"errors"

	"github.com/AmaliaEG/ActNext-sub000/internal/storage"
)

var errKVDown = errors.New("backing store unavailable")

// fakeKV is an in-memory backing store with switchable failure modes.
type fakeKV struct {
	data       map[string]string
	failGet    bool
	failSet    bool
	failRemove bool
	setCalls   int
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	if f.failGet {
		return "", errKVDown
	}
	v, ok := f.data[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string) error {
	f.setCalls++
	if f.failSet {
		return errKVDown
	}
	f.data[key] = value
	return nil
}

func (f *fakeKV) Remove(_ context.Context, key string) error {
	if f.failRemove {
		return errKVDown
	}
	delete(f.data, key)
	return nil
}
