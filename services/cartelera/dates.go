package cartelera

import (
	"fmt"
	"time"
)

// DtmLayout is the wall-time layout of upstream session timestamps. The
// feed carries no zone; times are local to the chain and formatted as-is.
const DtmLayout = "2006-01-02T15:04:05"

var spanishWeekdays = [...]string{
	"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado",
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatDate renders "<weekday> <day> de <month>", e.g. "sábado 5 de octubre".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s %d de %s",
		spanishWeekdays[t.Weekday()], t.Day(), spanishMonths[t.Month()-1])
}

// FormatTime renders "HH:mm".
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}
