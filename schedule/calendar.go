package schedule

import (
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// Holiday is one entry of the fixed national calendar.
type Holiday struct {
	Date string `json:"date"`
	Name string `json:"name"`
	Type string `json:"type"` // national, religious
}

// VacationPeriod is a closed date interval [Start, End], both inclusive.
type VacationPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Name  string `json:"name"`
}

// Colombian holidays for the 2025 school year. Read-only reference data.
var holidays = map[string]Holiday{
	"2025-01-01": {"2025-01-01", "Año Nuevo", "national"},
	"2025-01-06": {"2025-01-06", "Día de los Reyes Magos", "religious"},
	"2025-03-24": {"2025-03-24", "Día de San José", "religious"},
	"2025-04-17": {"2025-04-17", "Jueves Santo", "religious"},
	"2025-04-18": {"2025-04-18", "Viernes Santo", "religious"},
	"2025-05-01": {"2025-05-01", "Día del Trabajo", "national"},
	"2025-06-02": {"2025-06-02", "Ascensión del Señor", "religious"},
	"2025-06-23": {"2025-06-23", "Corpus Christi", "religious"},
	"2025-06-30": {"2025-06-30", "San Pedro y San Pablo", "religious"},
	"2025-07-20": {"2025-07-20", "Día de la Independencia", "national"},
	"2025-08-07": {"2025-08-07", "Batalla de Boyacá", "national"},
	"2025-08-18": {"2025-08-18", "Asunción de la Virgen", "religious"},
	"2025-10-13": {"2025-10-13", "Día de la Raza", "national"},
	"2025-11-03": {"2025-11-03", "Todos los Santos", "religious"},
	"2025-11-17": {"2025-11-17", "Independencia de Cartagena", "national"},
	"2025-12-08": {"2025-12-08", "Inmaculada Concepción", "religious"},
	"2025-12-25": {"2025-12-25", "Navidad", "religious"},
}

// School vacation periods. Declaration order matters: when periods overlap,
// the first one declared wins.
var vacations = []VacationPeriod{
	{"2025-06-16", "2025-07-11", "Vacaciones de mitad de año"},
	{"2025-10-06", "2025-10-10", "Semana de receso"},
	{"2025-12-15", "2026-01-12", "Vacaciones de fin de año"},
}

// weekdayIndex maps Spanish weekday names to time.Weekday ordinals
// (Domingo=0 .. Sábado=6).
var weekdayIndex = map[string]int{
	"Domingo":   0,
	"Lunes":     1,
	"Martes":    2,
	"Miércoles": 3,
	"Jueves":    4,
	"Viernes":   5,
	"Sábado":    6,
}

var weekdayNames = [7]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

var monthNames = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, &InvalidDateError{Value: value}
	}
	return t, nil
}

// IsHoliday returns the holiday falling on the given date, or nil.
func IsHoliday(date string) *Holiday {
	if h, ok := holidays[date]; ok {
		return &h
	}
	return nil
}

// VacationFor returns the first declared vacation period containing the
// given date, bounds inclusive, or nil.
func VacationFor(date string) *VacationPeriod {
	for i := range vacations {
		if vacations[i].Start <= date && date <= vacations[i].End {
			return &vacations[i]
		}
	}
	return nil
}

// Holidays returns the holiday table entries within [start, end], both
// inclusive, in date order.
func Holidays(start, end string) []Holiday {
	var out []Holiday
	for date, h := range holidays {
		if start <= date && date <= end {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
