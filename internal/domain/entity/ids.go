package entity

import "fmt"

// FormatSequentialID arma un identificador legible: prefijo + número con relleno a 3 dígitos.
// Ej: ("P", 7) -> "P007", ("M", 1234) -> "M1234".
func FormatSequentialID(prefix string, n int64) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}
