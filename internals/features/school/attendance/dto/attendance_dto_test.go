package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	dto "schooladmin_backend/internals/features/school/attendance/dto"
)

func TestParseDay(t *testing.T) {
	midnight := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		input string
		want  time.Time
		bad   bool
	}{
		{name: "plain date", input: "2024-01-10", want: midnight},
		{name: "padded input", input: "  2024-01-10  ", want: midnight},
		{name: "rfc3339 truncates", input: "2024-01-10T14:30:00Z", want: midnight},
		{name: "rfc3339 offset converts to utc first", input: "2024-01-10T23:30:00-05:00", want: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)},
		{name: "slash format", input: "10/01/2024", bad: true},
		{name: "empty", input: "", bad: true},
		{name: "garbage", input: "yesterday", bad: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := dto.ParseDay(tc.input)
			if tc.bad {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, got.Equal(tc.want), "got %s want %s", got, tc.want)
		})
	}
}
