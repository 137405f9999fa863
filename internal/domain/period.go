package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Preset padrão usado quando o chamador não informa um período válido
const DefaultRangePreset = "last_7d"

// DateRange representa um intervalo de datas de calendário, inclusivo nas
// duas pontas. As datas são sempre normalizadas para meia-noite UTC.
type DateRange struct {
	Since time.Time `json:"-"`
	Until time.Time `json:"-"`
}

// RangeSpec é a especificação de período vinda do chamador: um preset
// simbólico (today, yesterday, this_week, last_week, this_month,
// last_month, last_<N>d) ou datas explícitas no formato YYYY-MM-DD.
// Datas explícitas, quando presentes, têm precedência sobre o preset.
type RangeSpec struct {
	Preset string `json:"date_preset,omitempty"`
	Since  string `json:"since,omitempty"`
	Until  string `json:"until,omitempty"`
}

// NewDateRange cria um intervalo validando que since <= until
func NewDateRange(since, until time.Time) (DateRange, error) {
	since = dateOnly(since)
	until = dateOnly(until)

	if since.After(until) {
		return DateRange{}, fmt.Errorf("intervalo inválido: since %s posterior a until %s",
			since.Format(time.DateOnly), until.Format(time.DateOnly))
	}

	return DateRange{Since: since, Until: until}, nil
}

// Days retorna a quantidade de dias do intervalo (inclusivo)
func (r DateRange) Days() int {
	return int(r.Until.Sub(r.Since).Hours()/24) + 1
}

// PreviousPeriod retorna o intervalo imediatamente anterior com a mesma
// quantidade de dias, sem sobreposição e sem lacuna:
// prevUntil = since - 1 dia, prevSince = prevUntil - (dias - 1).
func (r DateRange) PreviousPeriod() DateRange {
	days := r.Days()
	prevUntil := r.Since.AddDate(0, 0, -1)
	prevSince := prevUntil.AddDate(0, 0, -(days - 1))

	return DateRange{Since: prevSince, Until: prevUntil}
}

func (r DateRange) SinceString() string {
	return r.Since.Format(time.DateOnly)
}

func (r DateRange) UntilString() string {
	return r.Until.Format(time.DateOnly)
}

// MarshalJSON serializa o intervalo como {"since":"YYYY-MM-DD","until":"YYYY-MM-DD"}
func (r DateRange) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"since":%q,"until":%q}`, r.SinceString(), r.UntilString())), nil
}

// ResolveSpec resolve uma especificação de período usando a data atual (UTC)
func ResolveSpec(spec RangeSpec) (DateRange, error) {
	return ResolveSpecAt(spec, time.Now().UTC())
}

// ResolveSpecAt resolve uma especificação de período ancorada em "today".
// Datas explícitas inválidas retornam erro; presets nunca falham.
func ResolveSpecAt(spec RangeSpec, today time.Time) (DateRange, error) {
	if spec.Since != "" || spec.Until != "" {
		since, err := time.Parse(time.DateOnly, spec.Since)
		if err != nil {
			return DateRange{}, fmt.Errorf("data inicial inválida %q: %w", spec.Since, err)
		}

		until, err := time.Parse(time.DateOnly, spec.Until)
		if err != nil {
			return DateRange{}, fmt.Errorf("data final inválida %q: %w", spec.Until, err)
		}

		return NewDateRange(since, until)
	}

	return ResolveRangeAt(spec.Preset, today), nil
}

// ResolveRange resolve um preset simbólico usando a data atual (UTC)
func ResolveRange(preset string) DateRange {
	return ResolveRangeAt(preset, time.Now().UTC())
}

// ResolveRangeAt resolve um preset simbólico ancorado em "today".
// Semanas começam na segunda-feira. Os presets this_week e this_month
// incluem o dia de hoje; last_<N>d termina em ontem, já que as métricas
// do dia corrente ainda estão incompletas. Presets desconhecidos caem
// na regra last_7d.
func ResolveRangeAt(preset string, today time.Time) DateRange {
	today = dateOnly(today)

	switch preset {
	case "today":
		return DateRange{Since: today, Until: today}

	case "yesterday":
		yesterday := today.AddDate(0, 0, -1)
		return DateRange{Since: yesterday, Until: yesterday}

	case "this_week":
		return DateRange{Since: mondayOf(today), Until: today}

	case "last_week":
		monday := mondayOf(today).AddDate(0, 0, -7)
		return DateRange{Since: monday, Until: monday.AddDate(0, 0, 6)}

	case "this_month":
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return DateRange{Since: first, Until: today}

	case "last_month":
		firstOfThis := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return DateRange{
			Since: firstOfThis.AddDate(0, -1, 0),
			Until: firstOfThis.AddDate(0, 0, -1),
		}
	}

	return lastNDays(preset, today)
}

// lastNDays resolve o padrão last_<N>d: N dias completos terminando ontem
func lastNDays(preset string, today time.Time) DateRange {
	days := 7

	if strings.HasPrefix(preset, "last_") && strings.HasSuffix(preset, "d") {
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(preset, "last_"), "d"))
		if err == nil && n > 0 {
			days = n
		}
	}

	until := today.AddDate(0, 0, -1)
	since := until.AddDate(0, 0, -(days - 1))

	return DateRange{Since: since, Until: until}
}

// mondayOf retorna a segunda-feira da semana da data informada
func mondayOf(t time.Time) time.Time {
	// time.Weekday usa domingo = 0; deslocamos para segunda = 0
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// dateOnly descarta o componente de hora, fixando o instante em meia-noite UTC
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
