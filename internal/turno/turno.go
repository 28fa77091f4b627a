// Package turno implements the fixed business-accounting clock: all
// settlement timestamps and report windows use Guatemala time (UTC−6, no
// DST), and every business day splits into two shifts with the boundary at
// 14:00 and 22:00. A one-minute grace (14:01 / 22:01) keeps a report
// generated exactly at rollover inside the closing shift.
package turno

import (
	"fmt"
	"time"
)

// Shift labels.
const (
	AM = "AM"
	PM = "PM"
)

// Guatemala is the fixed business timezone.
var Guatemala = time.FixedZone("America/Guatemala", -6*60*60)

// Ahora returns the current instant in business time.
func Ahora() time.Time { return time.Now().In(Guatemala) }

// FechaHora formats an instant as the (fecha, hora) string pair persisted on
// settled orders: "2006-01-02" and "15:04:05".
func FechaHora(t time.Time) (fecha, hora string) {
	t = t.In(Guatemala)
	return t.Format("2006-01-02"), t.Format("15:04:05")
}

// Rango describes the shift window containing a given instant.
type Rango struct {
	Inicio   time.Time
	Fin      time.Time
	Etiqueta string // AM | PM
	// EsCambioDeTurno is true during the grace minute right after rollover
	// (14:01 / 22:01), when a report still belongs to the shift that closed.
	EsCambioDeTurno bool
}

// Contiene reports whether t falls inside the window (inclusive).
func (r Rango) Contiene(t time.Time) bool {
	t = t.In(Guatemala)
	return !t.Before(r.Inicio) && !t.After(r.Fin)
}

// RangoDe computes the shift window containing now.
//
// PM runs 14:01–22:00 of the same day; AM runs 22:01 of the previous day
// through 14:00 — the instant 14:00 sharp still belongs to AM, mirroring the
// inclusive end of the window.
func RangoDe(now time.Time) Rango {
	now = now.In(Guatemala)
	h, m := now.Hour(), now.Minute()
	d := func(day, hour, min int) time.Time {
		return time.Date(now.Year(), now.Month(), now.Day()+day, hour, min, 0, 0, Guatemala)
	}

	switch {
	case h > 22 || (h == 22 && m >= 1):
		// Tonight's AM shift, closing tomorrow at 14:00.
		return Rango{
			Inicio:          d(0, 22, 1),
			Fin:             d(1, 14, 0),
			Etiqueta:        AM,
			EsCambioDeTurno: h == 22 && m == 1,
		}
	case h < 14 || (h == 14 && m == 0):
		// Last night's AM shift, closing today at 14:00.
		return Rango{
			Inicio:   d(-1, 22, 1),
			Fin:      d(0, 14, 0),
			Etiqueta: AM,
		}
	default:
		return Rango{
			Inicio:   d(0, 14, 1),
			Fin:      d(0, 22, 0),
			Etiqueta: PM,
		}
	}
}

// EsMinutoDeCorte reports whether now is an auto-publish minute: the last
// minute of each shift (13:59 / 21:59), checked once per minute by the cron.
func EsMinutoDeCorte(now time.Time) bool {
	now = now.In(Guatemala)
	h, m := now.Hour(), now.Minute()
	return (h == 13 && m == 59) || (h == 21 && m == 59)
}

// ParseFechaHora rebuilds a business-time instant from the persisted string
// pair. Hora may omit seconds.
func ParseFechaHora(fecha, hora string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, fecha+" "+hora, Guatemala); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("turno: fecha/hora invalida %q %q", fecha, hora)
}

// FechasConsulta returns yesterday/today/tomorrow around now, the date keys a
// shift window can span (the AM window crosses midnight).
func FechasConsulta(now time.Time) []string {
	now = now.In(Guatemala)
	return []string{
		now.AddDate(0, 0, -1).Format("2006-01-02"),
		now.Format("2006-01-02"),
		now.AddDate(0, 0, 1).Format("2006-01-02"),
	}
}
