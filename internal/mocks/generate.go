// Package mocks provides gomock mocks for the dashboard's ports.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockDepartmentAPI(ctrl)
//	api.EXPECT().ListDepartments(gomock.Any()).Return(depts, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=department_api_mock.go github.com/target/deptdash/internal/ports DepartmentAPI
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=token_backend_mock.go github.com/target/deptdash/internal/ports TokenBackend
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=token_store_mock.go github.com/target/deptdash/internal/ports TokenStore
