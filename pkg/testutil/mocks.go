package testutil

import (
	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of cache.Store
type MockStore struct {
	mock.Mock
}

// Load returns the values configured with On("Load")
func (m *MockStore) Load() (map[string]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// Save records the snapshot it was called with
func (m *MockStore) Save(values map[string]string) error {
	args := m.Called(values)
	return args.Error(0)
}

// MockPrompter is a mock implementation of prompt.Prompter
type MockPrompter struct {
	mock.Mock
}

// Ask returns the answer configured for question
func (m *MockPrompter) Ask(question string) (string, error) {
	args := m.Called(question)
	return args.String(0), args.Error(1)
}
