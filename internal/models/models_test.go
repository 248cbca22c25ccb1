package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func datePtr(t time.Time) *time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return &d
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)
	yesterday := datePtr(now.AddDate(0, 0, -1))
	today := datePtr(now)
	tomorrow := datePtr(now.AddDate(0, 0, 1))

	tests := []struct {
		name     string
		deadline *time.Time
		delivery *time.Time
		want     bool
	}{
		{"no deadline", nil, nil, false},
		{"deadline yesterday, not delivered", yesterday, nil, true},
		{"deadline today, not delivered", today, nil, false},
		{"deadline tomorrow, not delivered", tomorrow, nil, false},
		{"deadline yesterday, delivered", yesterday, today, false},
		{"no deadline but delivered", nil, today, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{Deadline: tt.deadline, DeliveryDate: tt.delivery}
			require.Equal(t, tt.want, task.IsOverdue(now))
		})
	}
}

func TestUser_DisplayName(t *testing.T) {
	u := User{FirstName: "Nikos", LastName: "Papadopoulos"}
	require.Equal(t, "Papadopoulos Nikos", u.DisplayName())
}

func TestParseRank(t *testing.T) {
	r, err := ParseRank("lgos")
	require.NoError(t, err)
	require.Equal(t, RankLgos, r)

	r, err = ParseRank("  EPXIAS ")
	require.NoError(t, err)
	require.Equal(t, RankEpxias, r)

	_, err = ParseRank("colonel")
	require.Error(t, err)

	_, err = ParseRank("")
	require.Error(t, err)

	require.Len(t, Ranks(), 12)
}

func TestParseTaskStatus(t *testing.T) {
	st, err := ParseTaskStatus("in_progress")
	require.NoError(t, err)
	require.Equal(t, TaskStatusInProgress, st)

	_, err = ParseTaskStatus("cancelled")
	require.Error(t, err)
}

func TestParseTaskPriority(t *testing.T) {
	p, err := ParseTaskPriority("High")
	require.NoError(t, err)
	require.Equal(t, TaskPriorityHigh, p)

	_, err = ParseTaskPriority("urgent")
	require.Error(t, err)
}

func TestParseProjectStatus(t *testing.T) {
	st, err := ParseProjectStatus("archived")
	require.NoError(t, err)
	require.Equal(t, ProjectStatusArchived, st)

	_, err = ParseProjectStatus("paused")
	require.Error(t, err)
}
