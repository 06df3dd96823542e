// Package mocks provides hand-written test doubles for the provider and
// service interfaces. Each mock records its calls under a mutex and lets a
// test override behavior through an Fn field or canned return values.
package mocks
