// Package mocks provides mock implementations for testing the quantatel client.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the ports in internal/core. The mocks are generated using go:generate
// directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockAPI := mocks.NewMockJobAPI(ctrl)
//	mockAPI.EXPECT().GetJob(gomock.Any(), "job-1").Return(job, nil)
package mocks

// Generate mock for JobAPI interface from internal/core package.
// This creates MockJobAPI with methods for all JobAPI interface methods:
// GetJob, SubmitJob
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=job_api_mock.go github.com/quantatel/quantatel-go/internal/core JobAPI

// Generate mock for ThreatAPI interface from internal/core package.
// This creates MockThreatAPI with methods for all ThreatAPI interface methods:
// ListThreats, ThreatStats
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=threat_api_mock.go github.com/quantatel/quantatel-go/internal/core ThreatAPI

// Generate mock for CacheRepository interface from internal/core package.
// This creates MockCacheRepository with methods for all CacheRepository interface methods:
// Set, Get, Delete, Health
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cache_repository_mock.go github.com/quantatel/quantatel-go/internal/core CacheRepository
