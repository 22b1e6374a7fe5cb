// Copyright (c) 2025 Neomantra Corp

package market

import "time"

// TimestampToTime converts a millisecond exchange timestamp to time.Time.
func TimestampToTime(millis int64) time.Time {
	return time.UnixMilli(millis)
}

// TimeToTimestamp converts a time.Time to a millisecond exchange timestamp.
func TimeToTimestamp(t time.Time) int64 {
	return t.UnixMilli()
}
