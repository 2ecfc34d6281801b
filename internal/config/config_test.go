package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrigins(t *testing.T) {
	assert.Nil(t, parseOrigins(""))
	assert.Equal(t, []string{"https://portal.example.edu"}, parseOrigins("https://portal.example.edu"))
	assert.Equal(t,
		[]string{"https://a.example.edu", "https://b.example.edu"},
		parseOrigins(" https://a.example.edu , https://b.example.edu ,"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("REGISTRAR_TEST_INT", "42")
	assert.Equal(t, 42, getEnvInt("REGISTRAR_TEST_INT", 7))

	t.Setenv("REGISTRAR_TEST_INT", "not-a-number")
	assert.Equal(t, 7, getEnvInt("REGISTRAR_TEST_INT", 7))

	assert.Equal(t, 7, getEnvInt("REGISTRAR_TEST_INT_MISSING", 7))
}

func TestGetEnvConnsRejectsUnusableValues(t *testing.T) {
	t.Setenv("REGISTRAR_TEST_CONNS", "32")
	assert.Equal(t, int32(32), getEnvConns("REGISTRAR_TEST_CONNS", 16))

	t.Setenv("REGISTRAR_TEST_CONNS", "0")
	assert.Equal(t, int32(16), getEnvConns("REGISTRAR_TEST_CONNS", 16))

	t.Setenv("REGISTRAR_TEST_CONNS", "-3")
	assert.Equal(t, int32(16), getEnvConns("REGISTRAR_TEST_CONNS", 16))

	// A value past int32 would silently truncate without the guard.
	t.Setenv("REGISTRAR_TEST_CONNS", "4294967298")
	assert.Equal(t, int32(16), getEnvConns("REGISTRAR_TEST_CONNS", 16))

	assert.Equal(t, int32(16), getEnvConns("REGISTRAR_TEST_CONNS_MISSING", 16))
}
