package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
}

func TestWeekRange_Wednesday(t *testing.T) {
	wed := date(2024, time.June, 12)

	monday, friday := WeekRange(wed)

	assert.Equal(t, "2024-06-10", FormatDate(monday))
	assert.Equal(t, "2024-06-14", FormatDate(friday))
	assert.False(t, monday.After(wed))
	assert.Equal(t, monday.AddDate(0, 0, 4), friday)
}

func TestWeekRange_SundayGoesToPreviousMonday(t *testing.T) {
	monday, friday := WeekRange(date(2024, time.June, 16))

	assert.Equal(t, "2024-06-10", FormatDate(monday))
	assert.Equal(t, "2024-06-14", FormatDate(friday))
}

func TestWeekRange_CrossesMonthBoundary(t *testing.T) {
	monday, friday := WeekRange(date(2024, time.May, 1))

	assert.Equal(t, "2024-04-29", FormatDate(monday))
	assert.Equal(t, "2024-05-03", FormatDate(friday))
}

func TestWeekRange_KeepsLocalCalendarFields(t *testing.T) {
	bogota := time.FixedZone("COT", -5*60*60)
	// 22:00 in Bogota is already Thursday in UTC.
	wedNight := time.Date(2024, time.June, 12, 22, 0, 0, 0, bogota)

	monday, _ := WeekRange(wedNight)
	assert.Equal(t, "2024-06-10", FormatDate(monday))

	got, err := DateForWeekday(wedNight, "Miércoles")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-12", got)
}

func TestDateForWeekday(t *testing.T) {
	anchor := date(2024, time.June, 12)

	cases := []struct {
		label string
		want  string
	}{
		{"Lunes", "2024-06-10"},
		{"Martes", "2024-06-11"},
		{"Miércoles", "2024-06-12"},
		{"miercoles", "2024-06-12"},
		{"Jueves", "2024-06-13"},
		{"Viernes", "2024-06-14"},
		{"Friday", "2024-06-14"},
	}
	for _, c := range cases {
		got, err := DateForWeekday(anchor, c.label)
		require.NoError(t, err, c.label)
		assert.Equal(t, c.want, got, c.label)
	}

	_, err := DateForWeekday(anchor, "Sábado")
	assert.Error(t, err)
}

func TestNextWorkday_SkipsWeekend(t *testing.T) {
	friday := date(2024, time.June, 14)
	monday := date(2024, time.June, 17)

	assert.Equal(t, "2024-06-17", FormatDate(NextWorkday(friday, 1)))
	assert.Equal(t, "2024-06-14", FormatDate(NextWorkday(monday, -1)))
	assert.Equal(t, "2024-06-13", FormatDate(NextWorkday(friday, -1)))
}

func TestShiftWeek(t *testing.T) {
	anchor := date(2024, time.June, 12)

	assert.Equal(t, "2024-06-19", FormatDate(ShiftWeek(anchor, 1)))
	assert.Equal(t, "2024-06-05", FormatDate(ShiftWeek(anchor, -1)))
}

func TestMonthRangeAndDays(t *testing.T) {
	first, last := MonthRange(2024, time.February, nil)
	assert.Equal(t, "2024-02-01", FormatDate(first))
	assert.Equal(t, "2024-02-29", FormatDate(last))

	days := MonthDays(2024, time.February, nil)
	require.Len(t, days, 29)
	assert.Equal(t, "2024-02-29", FormatDate(days[28]))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-06-10 ", nil)
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d.Weekday())

	_, err = ParseDate("10/06/2024", nil)
	assert.Error(t, err)
}
