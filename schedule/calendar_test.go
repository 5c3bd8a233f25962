package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHoliday(t *testing.T) {
	h := IsHoliday("2025-07-20")
	if assert.NotNil(t, h) {
		assert.Equal(t, "Día de la Independencia", h.Name)
		assert.Equal(t, "national", h.Type)
	}

	assert.Nil(t, IsHoliday("2025-07-21"))
	assert.Nil(t, IsHoliday("not-a-date"))
}

func TestVacationForInclusiveBounds(t *testing.T) {
	assert.Nil(t, VacationFor("2025-06-15"))

	first := VacationFor("2025-06-16")
	if assert.NotNil(t, first) {
		assert.Equal(t, "Vacaciones de mitad de año", first.Name)
	}

	last := VacationFor("2025-07-11")
	if assert.NotNil(t, last) {
		assert.Equal(t, "Vacaciones de mitad de año", last.Name)
	}

	assert.Nil(t, VacationFor("2025-07-12"))
}

func TestHolidaysRange(t *testing.T) {
	hs := Holidays("2025-08-01", "2025-08-31")
	if assert.Len(t, hs, 2) {
		assert.Equal(t, "2025-08-07", hs[0].Date)
		assert.Equal(t, "2025-08-18", hs[1].Date)
	}

	assert.Empty(t, Holidays("2025-02-01", "2025-02-28"))
}

func TestScheduleTypeFor(t *testing.T) {
	assert.Equal(t, 2, ScheduleTypeFor("regular").UnitsPerClass)
	assert.Equal(t, 5, ScheduleTypeFor("intensive").DaysPerWeek)
	assert.Equal(t, 4, ScheduleTypeFor("weekend").UnitsPerClass)

	// Unknown or unset types fall back to regular.
	assert.Equal(t, "regular", ScheduleTypeFor("").Name)
	assert.Equal(t, "regular", ScheduleTypeFor("turbo").Name)
}

func TestParseDateRejectsMalformedInput(t *testing.T) {
	for _, value := range []string{"", "2025-1-5", "2025-13-40", "hoy", "2025/01/05"} {
		_, err := parseDate(value)
		assert.Error(t, err, value)
		assert.IsType(t, &InvalidDateError{}, err, value)
	}

	_, err := parseDate("2025-01-05")
	assert.NoError(t, err)
}
