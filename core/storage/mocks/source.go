package mocks

import (
	"context"
	"io"

	"catalog-recovery/core/storage"

	"github.com/stretchr/testify/mock"
)

// Source is a mock implementation of storage.Source
type Source struct {
	mock.Mock
}

func (m *Source) Root() string {
	args := m.Called()
	return args.String(0)
}

func (m *Source) Preflight(ctx context.Context, opts storage.WalkOptions) error {
	args := m.Called(ctx, opts)
	return args.Error(0)
}

func (m *Source) Walk(ctx context.Context, opts storage.WalkOptions, fn storage.WalkFunc) error {
	args := m.Called(ctx, opts, fn)
	return args.Error(0)
}

func (m *Source) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if rc, ok := args.Get(0).(io.ReadCloser); ok {
		return rc, args.Error(1)
	}
	return nil, args.Error(1)
}
