package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":           "9090",
		"BAD_INT":        "nine",
		"SECURE":         "true",
		"TTL":            "90s",
		"TTL_SECONDS":    "30",
		"ORIGINS":        "http://a.test, ,http://b.test",
		"EMPTY_STRING":   "",
		"BROKEN_BOOLEAN": "maybe",
	}

	assert.Equal(t, 9090, GetInt(c, "PORT", 8080))
	assert.Equal(t, 8080, GetInt(c, "BAD_INT", 8080))
	assert.Equal(t, 8080, GetInt(nil, "PORT", 8080))

	assert.True(t, GetBool(c, "SECURE", false))
	assert.False(t, GetBool(c, "BROKEN_BOOLEAN", false))

	assert.Equal(t, 90*time.Second, GetDuration(c, "TTL", time.Minute))
	assert.Equal(t, 30*time.Second, GetDuration(c, "TTL_SECONDS", time.Minute))
	assert.Equal(t, time.Minute, GetDuration(c, "MISSING", time.Minute))

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, GetList(c, "ORIGINS"))
	assert.Nil(t, GetList(c, "MISSING"))

	assert.Equal(t, "fallback", GetString(c, "EMPTY_STRING", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "PORT", "fallback"))
}
