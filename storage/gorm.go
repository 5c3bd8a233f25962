package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"github.com/aom0101z1/gestion-ventas-sub001/models"
	"github.com/aom0101z1/gestion-ventas-sub001/schedule"
)

// GroupStore serves group configuration from Postgres. Read-only from the
// engine's point of view; writes go through the groups API.
type GroupStore struct {
	DB *gorm.DB
}

func NewGroupStore(db *gorm.DB) *GroupStore {
	return &GroupStore{DB: db}
}

func (s *GroupStore) GetGroup(groupID string) (schedule.Group, error) {
	id, err := strconv.ParseUint(groupID, 10, 32)
	if err != nil {
		return schedule.Group{}, &schedule.NotFoundError{Entity: "group", ID: groupID}
	}
	var g models.Group
	if err := s.DB.First(&g, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return schedule.Group{}, &schedule.NotFoundError{Entity: "group", ID: groupID}
		}
		return schedule.Group{}, &schedule.PersistenceError{Op: "get group", Err: err}
	}
	return toScheduleGroup(g), nil
}

func (s *GroupStore) ListActiveGroups() ([]schedule.Group, error) {
	var rows []models.Group
	if err := s.DB.Where("status = ?", "active").Find(&rows).Error; err != nil {
		return nil, &schedule.PersistenceError{Op: "list groups", Err: err}
	}
	groups := make([]schedule.Group, 0, len(rows))
	for _, g := range rows {
		groups = append(groups, toScheduleGroup(g))
	}
	return groups, nil
}

func toScheduleGroup(g models.Group) schedule.Group {
	days := []string{}
	for _, d := range strings.Split(g.Days, ",") {
		if d = strings.TrimSpace(d); d != "" {
			days = append(days, d)
		}
	}
	return schedule.Group{
		ID:           strconv.FormatUint(uint64(g.ID), 10),
		Name:         g.Name,
		ScheduleType: g.ScheduleType,
		Days:         days,
		StartDate:    g.StartDate,
		StartTime:    g.StartTime,
		Book:         g.Book,
		TeacherID:    strconv.FormatUint(uint64(g.TeacherID), 10),
		Status:       g.Status,
	}
}

// ProgressStore is the progress ledger: Postgres as the source of truth,
// with a hydrated local view in front of it. The view only changes after a
// write is confirmed by the database.
type ProgressStore struct {
	DB   *gorm.DB
	view *gocache.Cache
}

func NewProgressStore(db *gorm.DB) *ProgressStore {
	return &ProgressStore{
		DB:   db,
		view: gocache.New(gocache.NoExpiration, 0),
	}
}

// Load bulk-hydrates the local view with every stored record.
func (s *ProgressStore) Load() error {
	var rows []models.ProgressRecord
	if err := s.DB.Find(&rows).Error; err != nil {
		return &schedule.PersistenceError{Op: "load progress records", Err: err}
	}
	byGroup := make(map[string]map[string]schedule.ProgressRecord)
	for _, row := range rows {
		rec := toScheduleRecord(row)
		if byGroup[rec.GroupID] == nil {
			byGroup[rec.GroupID] = make(map[string]schedule.ProgressRecord)
		}
		byGroup[rec.GroupID][rec.Date] = rec
	}
	s.view.Flush()
	for groupID, records := range byGroup {
		s.view.Set(groupID, records, gocache.NoExpiration)
	}
	return nil
}

// Get returns the local view for one group. Empty map when the group has no
// records.
func (s *ProgressStore) Get(groupID string) map[string]schedule.ProgressRecord {
	if cached, ok := s.view.Get(groupID); ok {
		return cached.(map[string]schedule.ProgressRecord)
	}
	return map[string]schedule.ProgressRecord{}
}

// Save upserts the whole record for (groupID, date). Find-then-save keeps
// the natural key unique; the previous record is overwritten, not merged.
func (s *ProgressStore) Save(groupID, date string, rec schedule.ProgressRecord) (schedule.ProgressRecord, error) {
	id, err := strconv.ParseUint(groupID, 10, 32)
	if err != nil {
		return schedule.ProgressRecord{}, &schedule.NotFoundError{Entity: "group", ID: groupID}
	}
	units, err := json.Marshal(rec.UnitsCovered)
	if err != nil {
		return schedule.ProgressRecord{}, &schedule.PersistenceError{Op: "encode units", Err: err}
	}

	var row models.ProgressRecord
	findErr := s.DB.Where("group_id = ? AND date = ?", uint(id), date).First(&row).Error
	switch {
	case findErr == nil:
		row.UnitsCovered = string(units)
		row.CompletedExpected = rec.CompletedExpected
		row.Notes = rec.Notes
		if err := s.DB.Save(&row).Error; err != nil {
			return schedule.ProgressRecord{}, &schedule.PersistenceError{Op: "update progress record", Err: err}
		}
	case errors.Is(findErr, gorm.ErrRecordNotFound):
		row = models.ProgressRecord{
			GroupID:           uint(id),
			Date:              date,
			UnitsCovered:      string(units),
			CompletedExpected: rec.CompletedExpected,
			Notes:             rec.Notes,
		}
		if err := s.DB.Create(&row).Error; err != nil {
			return schedule.ProgressRecord{}, &schedule.PersistenceError{Op: "create progress record", Err: err}
		}
	default:
		return schedule.ProgressRecord{}, &schedule.PersistenceError{Op: "find progress record", Err: findErr}
	}

	saved := toScheduleRecord(row)
	records := s.Get(groupID)
	updated := make(map[string]schedule.ProgressRecord, len(records)+1)
	for k, v := range records {
		updated[k] = v
	}
	updated[date] = saved
	s.view.Set(groupID, updated, gocache.NoExpiration)
	return saved, nil
}

// Delete removes the record for (groupID, date) and drops it from the view.
func (s *ProgressStore) Delete(groupID, date string) error {
	id, err := strconv.ParseUint(groupID, 10, 32)
	if err != nil {
		return &schedule.NotFoundError{Entity: "group", ID: groupID}
	}
	if err := s.DB.Unscoped().Where("group_id = ? AND date = ?", uint(id), date).
		Delete(&models.ProgressRecord{}).Error; err != nil {
		return &schedule.PersistenceError{Op: "delete progress record", Err: err}
	}
	records := s.Get(groupID)
	updated := make(map[string]schedule.ProgressRecord, len(records))
	for k, v := range records {
		if k != date {
			updated[k] = v
		}
	}
	s.view.Set(groupID, updated, gocache.NoExpiration)
	return nil
}

func toScheduleRecord(row models.ProgressRecord) schedule.ProgressRecord {
	var units []schedule.UnitEntry
	if row.UnitsCovered != "" {
		// A decode failure leaves the units empty rather than failing the
		// whole hydrate.
		_ = json.Unmarshal([]byte(row.UnitsCovered), &units)
	}
	if units == nil {
		units = []schedule.UnitEntry{}
	}
	return schedule.ProgressRecord{
		GroupID:           strconv.FormatUint(uint64(row.GroupID), 10),
		Date:              row.Date,
		UnitsCovered:      units,
		CompletedExpected: row.CompletedExpected,
		Notes:             row.Notes,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}

// AuditStore writes audit entries. Failures are logged and swallowed; an
// audit problem must never block the operation being audited.
type AuditStore struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewAuditStore(db *gorm.DB, logger *log.Logger) *AuditStore {
	if logger == nil {
		logger = log.Default()
	}
	return &AuditStore{DB: db, Logger: logger}
}

func (s *AuditStore) LogAudit(action, entityType, entityID, description string, before, after interface{}) {
	entry := models.AuditLog{
		ID:          uuid.NewString(),
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: description,
		Before:      encodeSnapshot(before),
		After:       encodeSnapshot(after),
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		s.Logger.Printf("WARN: audit write failed for %s %s: %v", action, entityID, err)
	}
}

func encodeSnapshot(v interface{}) string {
	if v == nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
