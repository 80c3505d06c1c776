package invoices

import (
	"fmt"
	"strconv"
	"strings"
)

const numberPrefix = "F-"

// FormatNumber devuelve F-<año>-<secuencia de 5 dígitos>.
func FormatNumber(year, seq int) string {
	return fmt.Sprintf("%s%d-%05d", numberPrefix, year, seq)
}

// parseSequence extrae la secuencia de un número F-YYYY-NNNNN.
func parseSequence(number string) (int, bool) {
	i := strings.LastIndex(number, "-")
	if !strings.HasPrefix(number, numberPrefix) || i < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(number[i+1:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// NextNumber calcula el siguiente número a partir del último emitido.
// Si el último no se puede interpretar, se usa count+1.
func NextNumber(year int, last string, hasLast bool, count int) string {
	if !hasLast {
		return FormatNumber(year, 1)
	}
	if seq, ok := parseSequence(last); ok {
		return FormatNumber(year, seq+1)
	}
	return FormatNumber(year, count+1)
}

// HighestNumber elige el número con la secuencia más alta comparando el valor
// numérico, no el texto (F-2025-100000 va después de F-2025-99999).
// Si ninguno se puede interpretar, devuelve el mayor en orden lexicográfico.
func HighestNumber(numbers []string) (string, bool) {
	best, bestSeq, parsed := "", -1, false
	for _, n := range numbers {
		seq, ok := parseSequence(n)
		switch {
		case ok && (seq > bestSeq || (seq == bestSeq && n > best)):
			best, bestSeq, parsed = n, seq, true
		case !ok && !parsed && n > best:
			best = n
		}
	}
	return best, best != ""
}
