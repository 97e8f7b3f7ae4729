package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout é o formato textual das datas de calendário guardadas nos documentos.
const DateLayout = "2006-01-02"

// Date é uma data de calendário sem hora nem fuso (validade de lotes, datas de campanha).
// O valor zero representa "sem data".
type Date struct {
	t time.Time
}

// ParseDate interpreta s no formato AAAA-MM-DD. A validação é de calendário:
// "2024-02-30" é rejeitada, ao contrário de uma comparação lexical.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("data inválida %q: esperado AAAA-MM-DD", s)
	}
	return Date{t: t}, nil
}

// DateOf devolve a data de calendário de t no fuso loc.
func DateOf(t time.Time, loc *time.Location) Date {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// IsZero indica ausência de data.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Before indica se d é estritamente anterior a other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// After indica se d é estritamente posterior a other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// Equal compara duas datas de calendário.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// AddDays devolve d deslocada n dias.
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// String devolve a data em AAAA-MM-DD, ou "" para o valor zero.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
