// Package mocks provides mock implementations for testing the record
// browsing services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks
// for the gateway interface. The mocks are generated using go:generate
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
//	gateway := mocks.NewMockRecordGateway(ctrl)
//	gateway.EXPECT().List(gomock.Any(), gomock.Any()).Return(result, nil)
package mocks

// Generate mock for RecordGateway interface from internal/ports package.
// This creates MockRecordGateway with methods for all RecordGateway
// interface methods:
// List, Add, Update, SoftDelete, Restore, BulkSetDeleted, UploadCSV, DownloadCSV
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=record_gateway_mock.go github.com/ledgerview/txn-ui-api/internal/ports RecordGateway
