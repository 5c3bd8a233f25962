package schedule_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aom0101z1/gestion-ventas-sub001/schedule"
	"github.com/aom0101z1/gestion-ventas-sub001/storage"
)

func fixedClock(date string) func() time.Time {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t.Add(12 * time.Hour) }
}

func newTestEngine(today string, groups ...schedule.Group) (*schedule.Engine, *storage.MemoryLedger, *storage.MemoryAudit) {
	ledger := storage.NewMemoryLedger()
	audit := &storage.MemoryAudit{}
	eng := schedule.NewEngine(storage.NewMemoryRegistry(groups...), ledger, audit, nil)
	eng.Now = fixedClock(today)
	return eng, ledger, audit
}

func regularGroup(id string) schedule.Group {
	return schedule.Group{
		ID:           id,
		Name:         "G" + id,
		ScheduleType: "regular",
		Days:         []string{"Martes", "Jueves"},
		StartDate:    "2025-01-01",
		Book:         1,
		TeacherID:    "7",
		Status:       "active",
	}
}

func TestScheduleDaysOf(t *testing.T) {
	eng, _, _ := newTestEngine("2025-01-15")

	assert.Empty(t, eng.ScheduleDaysOf(nil))
	assert.Empty(t, eng.ScheduleDaysOf([]string{}))

	// Unknown names are dropped, not errored.
	days := eng.ScheduleDaysOf([]string{"Lunes", "NotADay"})
	assert.Equal(t, map[int]bool{1: true}, days)

	all := eng.ScheduleDaysOf([]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"})
	assert.Len(t, all, 7)
	assert.True(t, all[0])
	assert.True(t, all[6])
}

func TestCurrentUnitDefaultsToOne(t *testing.T) {
	eng, ledger, _ := newTestEngine("2025-01-15", regularGroup("1"))

	// No records at all: floor of 1, never 0.
	assert.Equal(t, 1, eng.CurrentUnit("1"))

	_, err := ledger.Save("1", "2025-01-07", schedule.ProgressRecord{
		UnitsCovered: []schedule.UnitEntry{{Unit: 3}, {Unit: 5}},
	})
	assert.NoError(t, err)
	assert.Equal(t, 5, eng.CurrentUnit("1"))
}

func TestExpectedProgressBehindGroup(t *testing.T) {
	// Regular group (Tue/Thu, 2 units per class) started 2025-01-01.
	// By mid January the elapsed class days are Jan 2, 7, 9 and 14
	// (Jan 1 is Año Nuevo), so 8 units were expected.
	eng, _, _ := newTestEngine("2025-01-15", regularGroup("1"))

	progress, err := eng.ExpectedProgress(regularGroup("1"))
	assert.NoError(t, err)
	assert.Equal(t, 4, progress.ClassDaysHeld)
	assert.Equal(t, 8, progress.ExpectedUnits)
	assert.Equal(t, 1, progress.ActualUnit)
	assert.Equal(t, -7, progress.Difference)
	assert.Equal(t, "behind", progress.Status)
}

func TestExpectedProgressOnTrack(t *testing.T) {
	eng, ledger, _ := newTestEngine("2025-01-15", regularGroup("1"))

	_, err := ledger.Save("1", "2025-01-14", schedule.ProgressRecord{
		UnitsCovered: []schedule.UnitEntry{{Unit: 8}},
	})
	assert.NoError(t, err)

	progress, err := eng.ExpectedProgress(regularGroup("1"))
	assert.NoError(t, err)
	assert.Equal(t, "on_track", progress.Status)
	assert.Equal(t, 0, progress.Difference)
}

func TestExpectedProgressDefaultsStartDateAndType(t *testing.T) {
	eng, _, _ := newTestEngine("2025-01-15")

	g := schedule.Group{ID: "9", Days: []string{"Martes", "Jueves"}, Status: "active"}
	progress, err := eng.ExpectedProgress(g)
	assert.NoError(t, err)
	// Defaults: start 2025-01-01, regular schedule type.
	assert.Equal(t, 8, progress.ExpectedUnits)
}

func TestExpectedProgressMalformedStartDate(t *testing.T) {
	eng, _, _ := newTestEngine("2025-01-15")

	g := regularGroup("1")
	g.StartDate = "01/01/2025"
	_, err := eng.ExpectedProgress(g)
	var invalid *schedule.InvalidDateError
	assert.True(t, errors.As(err, &invalid))
}

func TestExpectedUnitsMonotonicOverTime(t *testing.T) {
	group := regularGroup("1")
	prev := -1
	for _, today := range []string{
		"2025-01-02", "2025-01-10", "2025-02-01", "2025-04-18",
		"2025-06-20", "2025-07-15", "2025-09-01", "2025-12-20",
	} {
		eng, _, _ := newTestEngine(today, group)
		progress, err := eng.ExpectedProgress(group)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, progress.ExpectedUnits, prev, "expected units regressed at %s", today)
		prev = progress.ExpectedUnits
	}
}

func TestClassesForDateHolidayWins(t *testing.T) {
	// 2025-07-20 is a Sunday and the Independence Day holiday. Even a group
	// scheduled every Sunday gets no class that day.
	sunday := schedule.Group{
		ID: "1", Name: "Dominical", ScheduleType: "weekend",
		Days: []string{"Domingo"}, StartDate: "2025-01-01", Status: "active",
	}
	eng, _, _ := newTestEngine("2025-07-21", sunday)

	day, err := eng.ClassesForDate("2025-07-20")
	assert.NoError(t, err)
	if assert.NotNil(t, day.Holiday) {
		assert.Equal(t, "Día de la Independencia", day.Holiday.Name)
	}
	assert.Nil(t, day.Vacation)
	assert.Empty(t, day.Classes)
}

func TestClassesForDateVacationWins(t *testing.T) {
	eng, _, _ := newTestEngine("2025-06-18", regularGroup("1"))

	// 2025-06-17 is a Tuesday inside the mid-year vacation.
	day, err := eng.ClassesForDate("2025-06-17")
	assert.NoError(t, err)
	assert.Nil(t, day.Holiday)
	if assert.NotNil(t, day.Vacation) {
		assert.Equal(t, "Vacaciones de mitad de año", day.Vacation.Name)
	}
	assert.Empty(t, day.Classes)
}

func TestClassesForDateStatusesAndOrdering(t *testing.T) {
	late := regularGroup("1")
	late.StartTime = "10:00"
	early := regularGroup("2")
	early.StartTime = "08:00"
	untimed := regularGroup("3")

	eng, ledger, _ := newTestEngine("2025-01-15", late, early, untimed)

	_, err := ledger.Save("1", "2025-01-14", schedule.ProgressRecord{
		UnitsCovered:      []schedule.UnitEntry{{Unit: 4}},
		CompletedExpected: true,
	})
	assert.NoError(t, err)
	_, err = ledger.Save("2", "2025-01-14", schedule.ProgressRecord{
		UnitsCovered: []schedule.UnitEntry{{Unit: 2}},
	})
	assert.NoError(t, err)

	day, err := eng.ClassesForDate("2025-01-14")
	assert.NoError(t, err)
	if assert.Len(t, day.Classes, 3) {
		// Groups without a start time sort first.
		assert.Equal(t, "3", day.Classes[0].GroupID)
		assert.Equal(t, "2", day.Classes[1].GroupID)
		assert.Equal(t, "1", day.Classes[2].GroupID)

		assert.Equal(t, "pending", day.Classes[0].Status)
		assert.Equal(t, "partial", day.Classes[1].Status)
		assert.Equal(t, "completed", day.Classes[2].Status)
		assert.Equal(t, 4, day.Classes[2].CurrentUnit)
	}
}

func TestClassesForDateInvalidDate(t *testing.T) {
	eng, _, _ := newTestEngine("2025-01-15")

	_, err := eng.ClassesForDate("2025-13-40")
	var invalid *schedule.InvalidDateError
	assert.True(t, errors.As(err, &invalid))
}

func TestMonthCalendarLayout(t *testing.T) {
	eng, _, _ := newTestEngine("2025-07-21", regularGroup("1"))

	view, err := eng.MonthCalendar(2025, 7)
	assert.NoError(t, err)
	assert.Equal(t, "Julio", view.MonthName)

	// July 1st 2025 is a Tuesday: two leading placeholders, then 31 days.
	assert.Len(t, view.Days, 2+31)
	assert.Nil(t, view.Days[0])
	assert.Nil(t, view.Days[1])
	if assert.NotNil(t, view.Days[2]) {
		assert.Equal(t, 1, view.Days[2].Day)
		assert.Equal(t, "2025-07-01", view.Days[2].Date)
	}

	// The 20th is a holiday cell with no classes.
	cell := view.Days[2+19]
	if assert.NotNil(t, cell) {
		assert.NotNil(t, cell.Schedule.Holiday)
		assert.Equal(t, 0, cell.ClassCount)
	}

	_, err = eng.MonthCalendar(2025, 13)
	var invalid *schedule.InvalidDateError
	assert.True(t, errors.As(err, &invalid))
}

func TestWeeklySummary(t *testing.T) {
	group := regularGroup("1")
	eng, ledger, _ := newTestEngine("2025-01-20", group)

	_, err := ledger.Save("1", "2025-01-14", schedule.ProgressRecord{
		UnitsCovered:      []schedule.UnitEntry{{Unit: 5}, {Unit: 6}},
		CompletedExpected: true,
	})
	assert.NoError(t, err)

	// Week of Mon Jan 13: a Tuesday and a Thursday are scheduled.
	summary, err := eng.WeeklySummary("2025-01-13")
	assert.NoError(t, err)
	assert.Equal(t, "2025-01-19", summary.EndDate)
	assert.Equal(t, 2, summary.TotalClasses)
	assert.Equal(t, 1, summary.CompletedClasses)
	assert.Equal(t, 50, summary.CompletionRate)
	assert.Equal(t, 2, summary.UnitsCovered)
	assert.Len(t, summary.DailyStats, 7)
	assert.Equal(t, 1, summary.DailyStats[1].Scheduled) // Tuesday the 14th
}

func TestWeeklySummaryNoClasses(t *testing.T) {
	eng, _, _ := newTestEngine("2025-01-20")

	summary, err := eng.WeeklySummary("2025-01-13")
	assert.NoError(t, err)
	assert.Equal(t, 0, summary.TotalClasses)
	// Guard against divide-by-zero: the rate is 0, not NaN.
	assert.Equal(t, 0, summary.CompletionRate)
}

func TestTeacherStats(t *testing.T) {
	mine := regularGroup("1")
	other := regularGroup("2")
	other.TeacherID = "99"
	eng, ledger, _ := newTestEngine("2025-01-15", mine, other)

	_, err := ledger.Save("1", "2025-01-07", schedule.ProgressRecord{
		UnitsCovered: []schedule.UnitEntry{{Unit: 1}, {Unit: 2}},
	})
	assert.NoError(t, err)
	_, err = ledger.Save("1", "2025-01-09", schedule.ProgressRecord{
		UnitsCovered: []schedule.UnitEntry{{Unit: 3}},
	})
	assert.NoError(t, err)
	// Outside the range below; must not count.
	_, err = ledger.Save("1", "2025-01-14", schedule.ProgressRecord{
		UnitsCovered: []schedule.UnitEntry{{Unit: 4}},
	})
	assert.NoError(t, err)

	stats, err := eng.TeacherStats("7", "2025-01-01", "2025-01-10")
	assert.NoError(t, err)
	assert.Equal(t, 1, stats.TotalGroups)
	assert.Equal(t, 2, stats.ClassesHeld)
	assert.Equal(t, 3, stats.UnitsCovered)
	assert.Equal(t, 1.5, stats.AverageUnitsPerClass)
}

func TestTeacherStatsNoClasses(t *testing.T) {
	eng, _, _ := newTestEngine("2025-01-15", regularGroup("1"))

	stats, err := eng.TeacherStats("7", "2025-02-01", "2025-02-28")
	assert.NoError(t, err)
	assert.Equal(t, 0, stats.ClassesHeld)
	assert.Equal(t, 0.0, stats.AverageUnitsPerClass)
}

func TestBehindGroupsSortedMostBehindFirst(t *testing.T) {
	older := regularGroup("1") // behind by more: started January 1st
	newer := regularGroup("2")
	newer.StartDate = "2025-01-08"
	caughtUp := regularGroup("3")

	eng, ledger, _ := newTestEngine("2025-01-15", older, newer, caughtUp)
	_, err := ledger.Save("3", "2025-01-14", schedule.ProgressRecord{
		UnitsCovered: []schedule.UnitEntry{{Unit: 20}},
	})
	assert.NoError(t, err)

	behind, err := eng.BehindGroups()
	assert.NoError(t, err)
	if assert.Len(t, behind, 2) {
		assert.Equal(t, "1", behind[0].Group.ID)
		assert.Equal(t, "2", behind[1].Group.ID)
		assert.Less(t, behind[0].Progress.Difference, behind[1].Progress.Difference)
	}
}

func TestTodayAlerts(t *testing.T) {
	eng, _, _ := newTestEngine("2025-01-15", regularGroup("1"))

	alerts, err := eng.TodayAlerts()
	assert.NoError(t, err)

	var warnings, errs, infos []schedule.Alert
	for _, a := range alerts {
		switch a.Level {
		case "warning":
			warnings = append(warnings, a)
		case "error":
			errs = append(errs, a)
		case "info":
			infos = append(infos, a)
		}
	}

	// The group is 7 units behind.
	if assert.Len(t, warnings, 1) {
		assert.Equal(t, "1", warnings[0].GroupID)
		assert.Contains(t, warnings[0].Message, "7 unidades")
	}
	// Yesterday (Tuesday the 14th) had a scheduled class with no record.
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "2025-01-14", errs[0].Date)
	}
	// No holidays fall between Jan 16 and Jan 22.
	assert.Empty(t, infos)
}

func TestTodayAlertsUpcomingHolidayWindow(t *testing.T) {
	eng, _, _ := newTestEngine("2025-08-01")

	alerts, err := eng.TodayAlerts()
	assert.NoError(t, err)

	// Batalla de Boyacá (Aug 7) is inside the 7-day window; Asunción de la
	// Virgen (Aug 18) is not.
	var dates []string
	for _, a := range alerts {
		if a.Level == "info" {
			dates = append(dates, a.Date)
		}
	}
	assert.Equal(t, []string{"2025-08-07"}, dates)
}

func TestSaveProgressRoundTrip(t *testing.T) {
	eng, _, audit := newTestEngine("2025-01-15", regularGroup("1"))

	saved, err := eng.SaveProgress("1", "2025-01-14", schedule.ProgressRecord{
		// The caller does not set GroupID/Date; the save stamps them.
		UnitsCovered:      []schedule.UnitEntry{{Unit: 5}, {Unit: 6}},
		CompletedExpected: true,
		Notes:             "Repaso de la unidad 5",
	})
	assert.NoError(t, err)
	assert.Equal(t, "1", saved.GroupID)
	assert.Equal(t, "2025-01-14", saved.Date)

	view, err := eng.GroupProgressView("1")
	assert.NoError(t, err)
	got, ok := view["2025-01-14"]
	if assert.True(t, ok) {
		assert.Equal(t, saved.UnitsCovered, got.UnitsCovered)
		assert.True(t, got.CompletedExpected)
	}

	if assert.Len(t, audit.Entries, 1) {
		assert.Equal(t, "create_progress", audit.Entries[0].Action)
	}

	// Saving the same key again overwrites the whole record.
	_, err = eng.SaveProgress("1", "2025-01-14", schedule.ProgressRecord{
		UnitsCovered: []schedule.UnitEntry{{Unit: 7}},
	})
	assert.NoError(t, err)
	view, _ = eng.GroupProgressView("1")
	assert.Len(t, view["2025-01-14"].UnitsCovered, 1)
	assert.Equal(t, "update_progress", audit.Entries[1].Action)
}

func TestSaveProgressUnknownGroup(t *testing.T) {
	eng, _, _ := newTestEngine("2025-01-15")

	_, err := eng.SaveProgress("42", "2025-01-14", schedule.ProgressRecord{})
	var notFound *schedule.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestDeleteProgress(t *testing.T) {
	eng, _, _ := newTestEngine("2025-01-15", regularGroup("1"))

	_, err := eng.SaveProgress("1", "2025-01-14", schedule.ProgressRecord{
		UnitsCovered: []schedule.UnitEntry{{Unit: 2}},
	})
	assert.NoError(t, err)

	assert.NoError(t, eng.DeleteProgress("1", "2025-01-14"))
	view, _ := eng.GroupProgressView("1")
	assert.NotContains(t, view, "2025-01-14")

	// Deleting a record that is not there is a NotFoundError.
	err = eng.DeleteProgress("1", "2025-01-14")
	var notFound *schedule.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}
