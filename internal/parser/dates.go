package parser

import (
	"regexp"
	"strconv"
	"time"
)

var dateSepRe = regexp.MustCompile(`[-/\s]+`)

// ParseDayFirstDate converts day-first receipt dates (DD-MM-YY, DD/MM/YYYY)
// to ISO YYYY-MM-DD. Two-digit years below 50 are read as 20xx, the rest as
// 19xx.
func ParseDayFirstDate(s string) (string, bool) {
	parts := dateSepRe.Split(s, -1)
	if len(parts) < 3 {
		return "", false
	}

	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return "", false
	}

	if year < 100 {
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
	}

	if day < 1 || day > 31 || month < 1 || month > 12 || year < 1900 || year > 2100 {
		return "", false
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"), true
}

func currentDate() string {
	return time.Now().Format("2006-01-02")
}
