package storage

import (
	"sort"
	"time"

	"github.com/aom0101z1/gestion-ventas-sub001/schedule"
)

// MemoryRegistry is an in-memory GroupRegistry, used in tests and local
// development without a database.
type MemoryRegistry struct {
	Groups map[string]schedule.Group
}

func NewMemoryRegistry(groups ...schedule.Group) *MemoryRegistry {
	r := &MemoryRegistry{Groups: make(map[string]schedule.Group, len(groups))}
	for _, g := range groups {
		r.Groups[g.ID] = g
	}
	return r
}

func (r *MemoryRegistry) GetGroup(groupID string) (schedule.Group, error) {
	g, ok := r.Groups[groupID]
	if !ok {
		return schedule.Group{}, &schedule.NotFoundError{Entity: "group", ID: groupID}
	}
	return g, nil
}

func (r *MemoryRegistry) ListActiveGroups() ([]schedule.Group, error) {
	var out []schedule.Group
	for _, g := range r.Groups {
		if g.Status == "active" {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MemoryLedger is an in-memory ProgressLedger.
type MemoryLedger struct {
	records map[string]map[string]schedule.ProgressRecord
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{records: make(map[string]map[string]schedule.ProgressRecord)}
}

func (l *MemoryLedger) Load() error {
	return nil
}

func (l *MemoryLedger) Get(groupID string) map[string]schedule.ProgressRecord {
	if m, ok := l.records[groupID]; ok {
		return m
	}
	return map[string]schedule.ProgressRecord{}
}

func (l *MemoryLedger) Save(groupID, date string, rec schedule.ProgressRecord) (schedule.ProgressRecord, error) {
	now := time.Now()
	if existing, ok := l.records[groupID][date]; ok {
		rec.CreatedAt = existing.CreatedAt
	} else {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	if l.records[groupID] == nil {
		l.records[groupID] = make(map[string]schedule.ProgressRecord)
	}
	l.records[groupID][date] = rec
	return rec, nil
}

func (l *MemoryLedger) Delete(groupID, date string) error {
	delete(l.records[groupID], date)
	return nil
}

// MemoryAudit collects audit entries in memory.
type MemoryAudit struct {
	Entries []AuditEntry
}

type AuditEntry struct {
	Action      string
	EntityType  string
	EntityID    string
	Description string
	Before      interface{}
	After       interface{}
}

func (a *MemoryAudit) LogAudit(action, entityType, entityID, description string, before, after interface{}) {
	a.Entries = append(a.Entries, AuditEntry{
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: description,
		Before:      before,
		After:       after,
	})
}
