package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureUser_Idempotent(t *testing.T) {
	log := NewProjectLog("Apollo")

	u := log.EnsureUser("ada")
	require.NotNil(t, u)
	assert.Equal(t, []Session{}, u.Sessions)
	assert.Nil(t, u.ActiveSession)

	_, err := u.ClockIn(testNow)
	require.NoError(t, err)

	again := log.EnsureUser("ada")
	assert.Same(t, u, again)
	assert.NotNil(t, again.ActiveSession, "existing record must not be reset")
	assert.Len(t, log.Users, 1)
}

func TestEnsureUser_NilUsersMap(t *testing.T) {
	log := &ProjectLog{Project: "Apollo"}
	log.EnsureUser("ada")
	assert.Contains(t, log.Users, "ada")
}

func TestUser_DoesNotCreate(t *testing.T) {
	log := NewProjectLog("Apollo")
	_, ok := log.User("ghost")
	assert.False(t, ok)
	assert.Empty(t, log.Users)
}

func TestTotals_SortedByUsername(t *testing.T) {
	log := NewProjectLog("Apollo")
	log.EnsureUser("zoe").Sessions = []Session{{DurationMinutes: 30}, {DurationMinutes: 45}}
	bob := log.EnsureUser("bob")
	_, err := bob.ClockIn(testNow)
	require.NoError(t, err)

	totals := log.Totals()
	require.Len(t, totals, 2)
	assert.Equal(t, UserTotal{Username: "bob", ClockedIn: true}, totals[0])
	assert.Equal(t, UserTotal{Username: "zoe", Sessions: 2, TotalMinutes: 75, TotalHours: 1.25}, totals[1])
}

func TestUserRecordJSON_NilSessionsAsArray(t *testing.T) {
	data, err := json.Marshal(UserRecord{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"sessions": [], "active_session": null}`, string(data))
}

func TestParseTimestamp(t *testing.T) {
	cases := []string{
		"2025-06-15T10:00:00",
		"2025-06-15T10:00:00.123456",
		"2025-06-15 10:00:00",
	}
	for _, in := range cases {
		got, err := ParseTimestamp(in)
		require.NoError(t, err, in)
		assert.True(t, testNow.Equal(got.Truncate(time.Second)), in)
	}

	withOffset, err := ParseTimestamp("2025-06-15T10:00:00+02:00")
	require.NoError(t, err)
	_, offset := withOffset.Zone()
	assert.Equal(t, 2*3600, offset)

	_, err = ParseTimestamp("15/06/2025")
	assert.ErrorIs(t, err, ErrInvalidTimestamp)
}

func TestFormatTimestamp_RoundTrips(t *testing.T) {
	got, err := ParseTimestamp(FormatTimestamp(testNow))
	require.NoError(t, err)
	assert.True(t, testNow.Equal(got))
}
