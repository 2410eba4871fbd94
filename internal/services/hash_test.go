package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintDeterministic(t *testing.T) {
	a := Fingerprint([]byte("some content"))
	b := Fingerprint([]byte("some content"))
	assert.Equal(t, a, b)
	assert.Len(t, a, 32) // 128-bit hex
}

func TestFingerprintDistinguishesContent(t *testing.T) {
	a := Fingerprint([]byte("content one"))
	b := Fingerprint([]byte("content two"))
	assert.NotEqual(t, a, b)
}

func TestFingerprintEmpty(t *testing.T) {
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", Fingerprint(nil))
}
