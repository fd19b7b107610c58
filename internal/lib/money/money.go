// Package money содержит форматирование денежных сумм, хранящихся
// в минорных единицах валюты. Суммы в реестре фонда никогда не мутируются:
// деление на 100 выполняется только при отображении.
package money

import "fmt"

// FormatCents превращает сумму в центах в строку вида "$10.50".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
