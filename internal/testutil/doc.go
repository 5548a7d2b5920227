// Package testutil provides shared test helpers: spy connectors with canned
// or scripted replies, a mock Telegram HTTP server with request capture, and
// schema fixtures.
package testutil
