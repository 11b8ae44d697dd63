package projection

import (
	"fmt"
	"time"
)

// LabelFunc renders a display label for a projection month. The label is a
// presentation concern: the engine sorts and compares months only through
// MonthStart.
type LabelFunc func(year int, month time.Month) string

// Short pt-BR month names, rendered as "jan. 24".
var shortMonthsPTBR = [...]string{
	"jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez",
}

// ShortMonthLabel is the default month-label formatter.
func ShortMonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s. %02d", shortMonthsPTBR[month-1], year%100)
}
