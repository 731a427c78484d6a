package utils

import "time"

// NowMillis returns the current wall-clock time in epoch milliseconds, the
// timestamp unit used by sync record metadata and snapshot headers.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
