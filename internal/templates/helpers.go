package templates

import (
	"fmt"
	"strconv"
	"time"
)

// sizeToDisplay converts a byte count to a short "1.2MB"-style string.
func sizeToDisplay(n int64) string {
	if n >= 1024*1024 {
		return fmt.Sprintf("%.1fMB", float64(n)/(1024*1024))
	}
	return fmt.Sprintf("%.0fKB", float64(n)/1024)
}

// itoa converts an int64 to a string, used for building URL paths.
func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

// millis renders a duration as whole milliseconds for htmx trigger delays.
func millis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10)
}
