// Package resourcetest provides a testify mock of resource.API.
package resourcetest

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/stretchr/testify/mock"
)

// MockAPI is a mock implementation of resource.API.
// The first return argument of a call, when set, is a JSON string decoded into out.
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Get(ctx context.Context, path string, query url.Values, out any) error {
	args := m.Called(ctx, path, query)
	return fill(args, out)
}

func (m *MockAPI) Post(ctx context.Context, path string, body, out any) error {
	args := m.Called(ctx, path, body)
	return fill(args, out)
}

func (m *MockAPI) Patch(ctx context.Context, path string, body, out any) error {
	args := m.Called(ctx, path, body)
	return fill(args, out)
}

func (m *MockAPI) Put(ctx context.Context, path string, body, out any) error {
	args := m.Called(ctx, path, body)
	return fill(args, out)
}

func (m *MockAPI) Delete(ctx context.Context, path string, out any) error {
	args := m.Called(ctx, path)
	return fill(args, out)
}

// Document returns the first argument, a string, as the document bytes
func (m *MockAPI) Document(ctx context.Context, path string) ([]byte, error) {
	args := m.Called(ctx, path)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	return []byte(args.String(0)), nil
}

func fill(args mock.Arguments, out any) error {
	if err := args.Error(1); err != nil {
		return err
	}
	if body, ok := args.Get(0).(string); ok && body != "" && out != nil {
		return json.Unmarshal([]byte(body), out)
	}
	return nil
}
