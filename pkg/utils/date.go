package utils

import "time"

// Today retorna a data corrente no formato AAAA-MM-DD
func Today(now time.Time) string {
	return now.Format(time.DateOnly)
}
