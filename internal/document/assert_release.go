//go:build !resuexpress_debug

package document

const debugAssertions = false
