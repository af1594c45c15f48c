//go:build tools

// Package tools documents development tool dependencies.
// mockgen is pinned through go.mod (go.uber.org/mock) and run with `go run`;
// the rest are installed globally and are not tracked in go.mod.
package tools

// Development tools:
//
// mockgen - regenerates internal/mocks from internal/ports
//   Run: go generate ./internal/mocks
//   Version: follows go.uber.org/mock in go.mod
//
// Air - live reload for cmd/deptdash; pair with DEV=true so templates are read from disk
//   Install: go install github.com/air-verse/air@v1.63.0
//   Run: air --build.cmd "go build -o ./tmp/deptdash ./cmd/deptdash" --build.bin ./tmp/deptdash
//   Docs: https://github.com/air-verse/air
