// Package testsupport holds fixtures shared by package tests: temp configs,
// manifest layouts, and an in-memory engine.
package testsupport
