package contract

import (
	"context"
	"time"

	"github.com/huangsam/outlier/schema"
	"github.com/stretchr/testify/mock"
)

// MockGitClient is a mock implementation of GitClient for testing.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	callArgs := []any{ctx, repoPath}
	for _, a := range args {
		callArgs = append(callArgs, a)
	}
	ret := m.Called(callArgs...)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}

// GetRepoRoot implements the GitClient interface.
func (m *MockGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	ret := m.Called(ctx, contextPath)
	return ret.String(0), ret.Error(1)
}

// GetChangeLog implements the GitClient interface.
func (m *MockGitClient) GetChangeLog(ctx context.Context, repoPath string, since, until time.Time) ([]byte, error) {
	ret := m.Called(ctx, repoPath, since, until)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}

// MockComplexityProvider is a mock implementation of ComplexityProvider for testing.
type MockComplexityProvider struct {
	mock.Mock
}

var _ ComplexityProvider = &MockComplexityProvider{} // Compile-time check

// Analyze implements the ComplexityProvider interface.
func (m *MockComplexityProvider) Analyze(ctx context.Context, absPath string) (schema.FileComplexity, error) {
	ret := m.Called(ctx, absPath)
	fc, _ := ret.Get(0).(schema.FileComplexity)
	return fc, ret.Error(1)
}

// MockRunStore is a mock implementation of RunStore for testing.
type MockRunStore struct {
	mock.Mock
}

var _ RunStore = &MockRunStore{} // Compile-time check

// BeginRun implements the RunStore interface.
func (m *MockRunStore) BeginRun(meta schema.RunMeta) (int64, error) {
	ret := m.Called(meta)
	id, _ := ret.Get(0).(int64)
	return id, ret.Error(1)
}

// RecordFiles implements the RunStore interface.
func (m *MockRunStore) RecordFiles(runID int64, files []schema.PlottedFile) error {
	return m.Called(runID, files).Error(0)
}

// EndRun implements the RunStore interface.
func (m *MockRunStore) EndRun(runID int64, endTime time.Time, totalFiles, totalOutliers int) error {
	return m.Called(runID, endTime, totalFiles, totalOutliers).Error(0)
}

// GetStatus implements the RunStore interface.
func (m *MockRunStore) GetStatus() (schema.HistoryStatus, error) {
	ret := m.Called()
	status, _ := ret.Get(0).(schema.HistoryStatus)
	return status, ret.Error(1)
}

// ListRuns implements the RunStore interface.
func (m *MockRunStore) ListRuns() ([]schema.RunRecord, error) {
	ret := m.Called()
	runs, _ := ret.Get(0).([]schema.RunRecord)
	return runs, ret.Error(1)
}

// ListFiles implements the RunStore interface.
func (m *MockRunStore) ListFiles() ([]schema.FileRecord, error) {
	ret := m.Called()
	files, _ := ret.Get(0).([]schema.FileRecord)
	return files, ret.Error(1)
}

// Clear implements the RunStore interface.
func (m *MockRunStore) Clear() error {
	return m.Called().Error(0)
}

// Close implements the RunStore interface.
func (m *MockRunStore) Close() error {
	return m.Called().Error(0)
}

// MockHistoryManager is a mock implementation of HistoryManager for testing.
type MockHistoryManager struct {
	mock.Mock
}

var _ HistoryManager = &MockHistoryManager{} // Compile-time check

// GetRunStore implements the HistoryManager interface.
func (m *MockHistoryManager) GetRunStore() RunStore {
	ret := m.Called()
	store, _ := ret.Get(0).(RunStore)
	return store
}
