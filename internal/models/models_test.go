package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalLayouts(t *testing.T) {
	want := time.Date(2024, 3, 5, 14, 30, 15, 123456000, time.UTC)

	inputs := []string{
		`"2024-03-05T14:30:15.123456+00:00"`,
		`"2024-03-05T14:30:15.123456Z"`,
		`"2024-03-05T14:30:15.123456"`,
		`"2024-03-05 14:30:15.123456"`,
		`"2024-03-05 16:30:15.123456+02:00"`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(in), &ts))
			assert.True(t, want.Equal(ts.Time), "got %s", ts.Time)
		})
	}
}

func TestTimestamp_Invalid(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`12`), &ts))

	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())
}

func TestTimestamp_MarshalUTC(t *testing.T) {
	loc := time.FixedZone("X", 3*3600)
	ts := NewTimestamp(time.Date(2024, 1, 2, 6, 0, 0, 0, loc))

	out, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-02T03:00:00Z"`, string(out))
}

func TestUser_PublicDropsPassword(t *testing.T) {
	u := &User{ID: "u-1", UserName: "alice", Password: "secret"}

	out, err := json.Marshal(u.Public())
	require.NoError(t, err)
	assert.NotContains(t, string(out), "secret")
	assert.NotContains(t, string(out), "password")
	assert.Equal(t, "secret", u.Password, "original must not be modified")
}

func TestLeadFilter(t *testing.T) {
	query := map[string]string{"status": "Closed", "source": "", "unknown": "x"}
	filter := NewLeadFilter(func(f string) string { return query[f] })

	assert.Equal(t, LeadFilter{"status": "Closed"}, filter)
}
