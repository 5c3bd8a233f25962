package schedule

// ScheduleType is the fixed configuration of one class modality.
type ScheduleType struct {
	Name          string `json:"name"`
	DaysPerWeek   int    `json:"days_per_week"`
	HoursPerDay   int    `json:"hours_per_day"`
	UnitsPerClass int    `json:"units_per_class"`
	UnitsPerWeek  int    `json:"units_per_week"`
	Description   string `json:"description"`
}

var scheduleTypes = map[string]ScheduleType{
	"intensive": {
		Name:          "intensive",
		DaysPerWeek:   5,
		HoursPerDay:   2,
		UnitsPerClass: 2,
		UnitsPerWeek:  10,
		Description:   "Lunes a Viernes, 2 horas diarias",
	},
	"regular": {
		Name:          "regular",
		DaysPerWeek:   2,
		HoursPerDay:   2,
		UnitsPerClass: 2,
		UnitsPerWeek:  4,
		Description:   "Dos días por semana, 2 horas por clase",
	},
	"weekend": {
		Name:          "weekend",
		DaysPerWeek:   1,
		HoursPerDay:   4,
		UnitsPerClass: 4,
		UnitsPerWeek:  4,
		Description:   "Sábados, jornada de 4 horas",
	},
}

// ScheduleTypeFor resolves a schedule type by name, falling back to regular
// when the name is unset or unknown.
func ScheduleTypeFor(name string) ScheduleType {
	if st, ok := scheduleTypes[name]; ok {
		return st
	}
	return scheduleTypes["regular"]
}

// UnitsPerBook is the curriculum size of every book (1..5).
const UnitsPerBook = 52

// BookCount is the number of books in the program.
const BookCount = 5
