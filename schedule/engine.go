package schedule

import (
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"
)

// defaultStartDate is assumed for groups created without one.
const defaultStartDate = "2025-01-01"

// Group is the engine-side view of a group's schedule configuration. The
// registry owns it; the engine only reads it.
type Group struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	ScheduleType string   `json:"schedule_type"`
	Days         []string `json:"days"`
	StartDate    string   `json:"start_date"`
	StartTime    string   `json:"start_time"`
	Book         int      `json:"book"`
	TeacherID    string   `json:"teacher_id"`
	Status       string   `json:"status"`
}

// UnitEntry is one curriculum unit covered in a session.
type UnitEntry struct {
	Unit int `json:"unit"`
}

// ProgressRecord is what a teacher recorded for one group on one date.
// There is at most one record per (group, date); saving again overwrites it.
type ProgressRecord struct {
	GroupID           string      `json:"group_id"`
	Date              string      `json:"date"`
	UnitsCovered      []UnitEntry `json:"units_covered"`
	CompletedExpected bool        `json:"completed_expected"`
	Notes             string      `json:"notes"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// ExpectedProgress compares expected curriculum position against what was
// actually recorded. Derived on demand, never stored.
type ExpectedProgress struct {
	ExpectedUnits int    `json:"expected_units"`
	ActualUnit    int    `json:"actual_unit"`
	Difference    int    `json:"difference"`
	Status        string `json:"status"` // on_track, behind
	ClassDaysHeld int    `json:"class_days_held"`
}

// ClassInstance is one group's class slot on a concrete date.
type ClassInstance struct {
	GroupID     string `json:"group_id"`
	GroupName   string `json:"group_name"`
	TeacherID   string `json:"teacher_id"`
	StartTime   string `json:"start_time"`
	CurrentUnit int    `json:"current_unit"`
	HasRecord   bool   `json:"has_record"`
	UnitsCount  int    `json:"units_count"`
	Status      string `json:"status"` // completed, partial, pending
}

// DaySchedule is the resolved view of one calendar date. Holiday and
// vacation are mutually exclusive with a non-empty class list.
type DaySchedule struct {
	Date     string          `json:"date"`
	Holiday  *Holiday        `json:"holiday,omitempty"`
	Vacation *VacationPeriod `json:"vacation,omitempty"`
	Classes  []ClassInstance `json:"classes"`
}

// CalendarDay is one cell of a month view. A nil entry is a leading
// placeholder before the first of the month.
type CalendarDay struct {
	Day            int         `json:"day"`
	Date           string      `json:"date"`
	Schedule       DaySchedule `json:"schedule"`
	ClassCount     int         `json:"class_count"`
	CompletedCount int         `json:"completed_count"`
}

// MonthView is a month of resolved days plus its display name.
type MonthView struct {
	Year      int            `json:"year"`
	Month     int            `json:"month"`
	MonthName string         `json:"month_name"`
	Days      []*CalendarDay `json:"days"`
}

// DailyStat is one day's slice of a weekly summary.
type DailyStat struct {
	Date      string `json:"date"`
	Scheduled int    `json:"scheduled"`
	Completed int    `json:"completed"`
	Units     int    `json:"units"`
}

// WeekSummary aggregates 7 consecutive days of classes.
type WeekSummary struct {
	StartDate        string      `json:"start_date"`
	EndDate          string      `json:"end_date"`
	TotalClasses     int         `json:"total_classes"`
	CompletedClasses int         `json:"completed_classes"`
	CompletionRate   int         `json:"completion_rate"`
	UnitsCovered     int         `json:"units_covered"`
	DailyStats       []DailyStat `json:"daily_stats"`
}

// TeacherStats aggregates one teacher's activity over a date range.
type TeacherStats struct {
	TeacherID            string  `json:"teacher_id"`
	ClassesHeld          int     `json:"classes_held"`
	UnitsCovered         int     `json:"units_covered"`
	TotalGroups          int     `json:"total_groups"`
	GroupsOnTrack        int     `json:"groups_on_track"`
	AverageUnitsPerClass float64 `json:"average_units_per_class"`
}

// GroupProgress pairs a group with its derived progress.
type GroupProgress struct {
	Group    Group            `json:"group"`
	Progress ExpectedProgress `json:"progress"`
}

// Alert is one user-facing notification produced by TodayAlerts.
type Alert struct {
	Level   string `json:"level"` // warning, error, info
	GroupID string `json:"group_id,omitempty"`
	Date    string `json:"date,omitempty"`
	Message string `json:"message"`
}

// GroupRegistry is the read-only source of group configuration.
type GroupRegistry interface {
	GetGroup(groupID string) (Group, error)
	ListActiveGroups() ([]Group, error)
}

// ProgressLedger owns the persisted progress records. Get serves the local
// view hydrated by Load; Save and Delete must only reflect confirmed writes.
type ProgressLedger interface {
	Load() error
	Get(groupID string) map[string]ProgressRecord
	Save(groupID, date string, rec ProgressRecord) (ProgressRecord, error)
	Delete(groupID, date string) error
}

// AuditSink records user actions. Best effort: implementations must never
// fail the primary operation.
type AuditSink interface {
	LogAudit(action, entityType, entityID, description string, before, after interface{})
}

// Engine computes calendar views, expected-vs-actual progress and alerts for
// all groups. All computation is synchronous and free of I/O; the injected
// registry and ledger are the only collaborators.
type Engine struct {
	registry GroupRegistry
	ledger   ProgressLedger
	audit    AuditSink
	logger   *log.Logger

	// Now is the clock used for "today"; tests override it.
	Now func() time.Time
}

func NewEngine(registry GroupRegistry, ledger ProgressLedger, audit AuditSink, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		registry: registry,
		ledger:   ledger,
		audit:    audit,
		logger:   logger,
		Now:      time.Now,
	}
}

func (e *Engine) today() string {
	return e.Now().Format(dateLayout)
}

// ScheduleDaysOf maps Spanish weekday names to weekday ordinals. Names not
// in the table are dropped, not errored; each drop is logged so misconfigured
// groups stay visible.
func (e *Engine) ScheduleDaysOf(names []string) map[int]bool {
	days := make(map[int]bool, len(names))
	for _, name := range names {
		idx, ok := weekdayIndex[name]
		if !ok {
			e.logger.Printf("WARN: unknown weekday name %q dropped from schedule", name)
			continue
		}
		days[idx] = true
	}
	return days
}

// CurrentUnit returns the highest unit ever recorded for the group. A group
// with no records reports unit 1, never 0 — "not started" and "working on
// unit 1" are indistinguishable here, kept for compatibility with the
// recorded data.
func (e *Engine) CurrentUnit(groupID string) int {
	unit := 1
	for _, rec := range e.ledger.Get(groupID) {
		for _, entry := range rec.UnitsCovered {
			if entry.Unit > unit {
				unit = entry.Unit
			}
		}
	}
	return unit
}

// ExpectedProgress walks every calendar day from the group's start date to
// today and derives where the group should be. Cost is linear in the number
// of elapsed days and recomputed on every call; fine for single-school
// lifetimes, a known scaling limit beyond that.
func (e *Engine) ExpectedProgress(group Group) (ExpectedProgress, error) {
	startDate := group.StartDate
	if startDate == "" {
		startDate = defaultStartDate
	}
	start, err := parseDate(startDate)
	if err != nil {
		return ExpectedProgress{}, err
	}

	scheduleDays := e.ScheduleDaysOf(group.Days)
	st := ScheduleTypeFor(group.ScheduleType)
	today := e.today()

	classDays := 0
	for d := start; d.Format(dateLayout) <= today; d = d.AddDate(0, 0, 1) {
		date := d.Format(dateLayout)
		if !scheduleDays[int(d.Weekday())] {
			continue
		}
		if IsHoliday(date) != nil || VacationFor(date) != nil {
			continue
		}
		classDays++
	}

	expected := classDays * st.UnitsPerClass
	actual := e.CurrentUnit(group.ID)
	status := "on_track"
	if actual < expected {
		status = "behind"
	}
	return ExpectedProgress{
		ExpectedUnits: expected,
		ActualUnit:    actual,
		Difference:    actual - expected,
		Status:        status,
		ClassDaysHeld: classDays,
	}, nil
}

// ClassesForDate resolves one date into its scheduled classes. A holiday or
// vacation short-circuits the group schedule entirely: the marker is set and
// the class list stays empty even for groups scheduled that weekday.
func (e *Engine) ClassesForDate(date string) (DaySchedule, error) {
	day, err := parseDate(date)
	if err != nil {
		return DaySchedule{}, err
	}

	sched := DaySchedule{Date: date, Classes: []ClassInstance{}}
	if h := IsHoliday(date); h != nil {
		sched.Holiday = h
		return sched, nil
	}
	if v := VacationFor(date); v != nil {
		sched.Vacation = v
		return sched, nil
	}

	groups, err := e.registry.ListActiveGroups()
	if err != nil {
		return DaySchedule{}, err
	}

	weekday := int(day.Weekday())
	for _, g := range groups {
		if !e.ScheduleDaysOf(g.Days)[weekday] {
			continue
		}
		rec, hasRecord := e.ledger.Get(g.ID)[date]
		status := "pending"
		unitsCount := 0
		if hasRecord {
			unitsCount = len(rec.UnitsCovered)
			if rec.CompletedExpected {
				status = "completed"
			} else {
				status = "partial"
			}
		}
		sched.Classes = append(sched.Classes, ClassInstance{
			GroupID:     g.ID,
			GroupName:   g.Name,
			TeacherID:   g.TeacherID,
			StartTime:   g.StartTime,
			CurrentUnit: e.CurrentUnit(g.ID),
			HasRecord:   hasRecord,
			UnitsCount:  unitsCount,
			Status:      status,
		})
	}

	// HH:MM compares correctly as a string; groups without a time sort first.
	sort.SliceStable(sched.Classes, func(i, j int) bool {
		return sched.Classes[i].StartTime < sched.Classes[j].StartTime
	})
	return sched, nil
}

// MonthCalendar lays out a month as a flat cell array: one nil placeholder
// per weekday before the first, then one resolved cell per day.
func (e *Engine) MonthCalendar(year, month int) (MonthView, error) {
	if month < 1 || month > 12 {
		return MonthView{}, &InvalidDateError{Value: fmt.Sprintf("%d-%02d", year, month)}
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	view := MonthView{
		Year:      year,
		Month:     month,
		MonthName: monthNames[month-1],
		Days:      make([]*CalendarDay, 0, int(first.Weekday())+daysInMonth),
	}
	for i := 0; i < int(first.Weekday()); i++ {
		view.Days = append(view.Days, nil)
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format(dateLayout)
		sched, err := e.ClassesForDate(date)
		if err != nil {
			return MonthView{}, err
		}
		cell := &CalendarDay{Day: day, Date: date, Schedule: sched, ClassCount: len(sched.Classes)}
		for _, cls := range sched.Classes {
			if cls.Status == "completed" {
				cell.CompletedCount++
			}
		}
		view.Days = append(view.Days, cell)
	}
	return view, nil
}

// WeeklySummary aggregates the 7 days starting at startDate.
func (e *Engine) WeeklySummary(startDate string) (WeekSummary, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return WeekSummary{}, err
	}

	summary := WeekSummary{
		StartDate:  startDate,
		EndDate:    start.AddDate(0, 0, 6).Format(dateLayout),
		DailyStats: make([]DailyStat, 0, 7),
	}
	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i).Format(dateLayout)
		sched, err := e.ClassesForDate(date)
		if err != nil {
			return WeekSummary{}, err
		}
		stat := DailyStat{Date: date, Scheduled: len(sched.Classes)}
		for _, cls := range sched.Classes {
			if cls.Status == "completed" {
				stat.Completed++
			}
			if cls.HasRecord {
				stat.Units += cls.UnitsCount
			}
		}
		summary.TotalClasses += stat.Scheduled
		summary.CompletedClasses += stat.Completed
		summary.UnitsCovered += stat.Units
		summary.DailyStats = append(summary.DailyStats, stat)
	}
	if summary.TotalClasses > 0 {
		summary.CompletionRate = int(math.Round(float64(summary.CompletedClasses) / float64(summary.TotalClasses) * 100))
	}
	return summary, nil
}

// TeacherStats aggregates recorded classes for one teacher's active groups
// over [startDate, endDate]. ISO dates compare correctly as strings.
func (e *Engine) TeacherStats(teacherID, startDate, endDate string) (TeacherStats, error) {
	if _, err := parseDate(startDate); err != nil {
		return TeacherStats{}, err
	}
	if _, err := parseDate(endDate); err != nil {
		return TeacherStats{}, err
	}

	groups, err := e.registry.ListActiveGroups()
	if err != nil {
		return TeacherStats{}, err
	}

	stats := TeacherStats{TeacherID: teacherID}
	for _, g := range groups {
		if g.TeacherID != teacherID {
			continue
		}
		stats.TotalGroups++
		for date, rec := range e.ledger.Get(g.ID) {
			if date < startDate || date > endDate {
				continue
			}
			stats.ClassesHeld++
			stats.UnitsCovered += len(rec.UnitsCovered)
		}
		progress, err := e.ExpectedProgress(g)
		if err != nil {
			return TeacherStats{}, err
		}
		if progress.Status == "on_track" {
			stats.GroupsOnTrack++
		}
	}
	if stats.ClassesHeld > 0 {
		stats.AverageUnitsPerClass = math.Round(float64(stats.UnitsCovered)/float64(stats.ClassesHeld)*10) / 10
	}
	return stats, nil
}

// BehindGroups lists active groups running behind schedule, most behind
// first.
func (e *Engine) BehindGroups() ([]GroupProgress, error) {
	groups, err := e.registry.ListActiveGroups()
	if err != nil {
		return nil, err
	}

	behind := []GroupProgress{}
	for _, g := range groups {
		progress, err := e.ExpectedProgress(g)
		if err != nil {
			return nil, err
		}
		if progress.Status == "behind" {
			behind = append(behind, GroupProgress{Group: g, Progress: progress})
		}
	}
	sort.Slice(behind, func(i, j int) bool {
		return behind[i].Progress.Difference < behind[j].Progress.Difference
	})
	return behind, nil
}

// TodayAlerts produces the day's notifications: a warning per group behind
// schedule, an error per class that was scheduled yesterday and never
// recorded, and an info per holiday within the next 7 days. A holiday
// falling today is skipped; the calendar already shows it.
func (e *Engine) TodayAlerts() ([]Alert, error) {
	alerts := []Alert{}

	behind, err := e.BehindGroups()
	if err != nil {
		return nil, err
	}
	for _, gp := range behind {
		gap := gp.Progress.Difference
		if gap < 0 {
			gap = -gap
		}
		alerts = append(alerts, Alert{
			Level:   "warning",
			GroupID: gp.Group.ID,
			Message: fmt.Sprintf("Grupo %s está atrasado %d unidades", gp.Group.Name, gap),
		})
	}

	now := e.Now()
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)
	sched, err := e.ClassesForDate(yesterday)
	if err != nil {
		return nil, err
	}
	for _, cls := range sched.Classes {
		if cls.Status == "pending" {
			alerts = append(alerts, Alert{
				Level:   "error",
				GroupID: cls.GroupID,
				Date:    yesterday,
				Message: fmt.Sprintf("Grupo %s no registró la clase del %s", cls.GroupName, yesterday),
			})
		}
	}

	for i := 1; i <= 7; i++ {
		date := now.AddDate(0, 0, i).Format(dateLayout)
		if h := IsHoliday(date); h != nil {
			alerts = append(alerts, Alert{
				Level:   "info",
				Date:    date,
				Message: fmt.Sprintf("Festivo próximo: %s (%s)", h.Name, date),
			})
		}
	}
	return alerts, nil
}

// GetGroup resolves a group through the injected registry.
func (e *Engine) GetGroup(groupID string) (Group, error) {
	return e.registry.GetGroup(groupID)
}

// GroupProgressView returns the ledger's record map for one group, keyed by
// date, after verifying the group exists.
func (e *Engine) GroupProgressView(groupID string) (map[string]ProgressRecord, error) {
	if _, err := e.registry.GetGroup(groupID); err != nil {
		return nil, err
	}
	return e.ledger.Get(groupID), nil
}

// SaveProgress upserts the record for (groupID, date), stamping the key
// fields itself. Last write wins: there is no concurrency check against
// other editors of the same key.
func (e *Engine) SaveProgress(groupID, date string, in ProgressRecord) (ProgressRecord, error) {
	if _, err := parseDate(date); err != nil {
		return ProgressRecord{}, err
	}
	if _, err := e.registry.GetGroup(groupID); err != nil {
		return ProgressRecord{}, err
	}

	before, existed := e.ledger.Get(groupID)[date]
	in.GroupID = groupID
	in.Date = date
	if in.UnitsCovered == nil {
		in.UnitsCovered = []UnitEntry{}
	}

	saved, err := e.ledger.Save(groupID, date, in)
	if err != nil {
		return ProgressRecord{}, err
	}

	if e.audit != nil {
		action := "create_progress"
		var prev interface{}
		if existed {
			action = "update_progress"
			prev = before
		}
		units := make([]string, 0, len(saved.UnitsCovered))
		for _, u := range saved.UnitsCovered {
			units = append(units, fmt.Sprintf("%d", u.Unit))
		}
		e.audit.LogAudit(action, "progress_record", groupID+"/"+date,
			fmt.Sprintf("Registro de clase %s: unidades %s", date, strings.Join(units, ",")),
			prev, saved)
	}
	return saved, nil
}

// DeleteProgress removes the record for (groupID, date). Deleting a record
// that does not exist is a NotFoundError.
func (e *Engine) DeleteProgress(groupID, date string) error {
	if _, err := parseDate(date); err != nil {
		return err
	}
	if _, err := e.registry.GetGroup(groupID); err != nil {
		return err
	}
	before, ok := e.ledger.Get(groupID)[date]
	if !ok {
		return &NotFoundError{Entity: "progress record", ID: groupID + "/" + date}
	}
	if err := e.ledger.Delete(groupID, date); err != nil {
		return err
	}
	if e.audit != nil {
		e.audit.LogAudit("delete_progress", "progress_record", groupID+"/"+date,
			"Registro de clase eliminado", before, nil)
	}
	return nil
}
