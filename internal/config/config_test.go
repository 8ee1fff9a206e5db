package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPollIntervalClamped(t *testing.T) {
	cases := []struct {
		name    string
		seconds int
		want    time.Duration
	}{
		{"below_band", 3, 10 * time.Second},
		{"lower_edge", 10, 10 * time.Second},
		{"in_band", 15, 15 * time.Second},
		{"upper_edge", 30, 30 * time.Second},
		{"above_band", 120, 30 * time.Second},
		{"unset", 0, 10 * time.Second},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := UpdatesConfig{PollIntervalSeconds: tc.seconds}
			assert.Equal(t, tc.want, u.PollInterval())
		})
	}
}

func TestRequestTimeoutDisabledWhenNonPositive(t *testing.T) {
	assert.Zero(t, AppConfig{RequestTimeoutSeconds: 0}.RequestTimeout())
	assert.Equal(t, 30*time.Second, AppConfig{RequestTimeoutSeconds: 30}.RequestTimeout())
}
