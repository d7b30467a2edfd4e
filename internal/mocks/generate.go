// Package mocks provides generated mock implementations for testing.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks
// for the port interfaces. The mocks are generated using go:generate
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
//	store := mocks.NewMockSessionStore(ctrl)
//	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
package mocks

// Generate mocks for the auth ports: AuthProvider (Begin, Exchange),
// SessionStore (Save, Get, Delete) and RoleDirectory (RoleFor).
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_mocks.go github.com/academica/progress-ui-api/internal/ports AuthProvider,SessionStore,RoleDirectory
