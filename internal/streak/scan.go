package streak

import "sort"

// ScanResult is the outcome of a from-scratch backward streak scan.
type ScanResult struct {
	Length        int
	StartDate     Date // earliest day of the unbroken run; zero when Length == 0
	LastConfirmed Date // most recent completed day; zero when Length == 0
}

// Scan walks backward one calendar day at a time from ref, counting
// consecutive completed days. The reference day itself is exempt from
// breaking the streak while incomplete, since it may still be in progress;
// any earlier incomplete day ends the walk.
func Scan(activities []Activity, ref Date, goal Goal) ScanResult {
	earliest, ok := earliestActivityDate(activities)
	if !ok {
		return ScanResult{}
	}

	var res ScanResult
	for day := ref; !day.Before(earliest); day = day.AddDays(-1) {
		status := EvaluateDay(activities, day, goal)
		if status.Completed {
			if res.Length == 0 {
				res.LastConfirmed = day
			}
			res.Length++
			res.StartDate = day
			continue
		}
		if day == ref {
			continue // today may still be in progress
		}
		break
	}
	return res
}

// Longest finds the longest historical streak by scanning anchored at every
// distinct activity date. Ties keep the earliest anchor.
func Longest(activities []Activity, goal Goal) (length int, start Date) {
	seen := make(map[Date]bool)
	var anchors []Date
	for _, a := range activities {
		if !seen[a.StartDateLocal] {
			seen[a.StartDateLocal] = true
			anchors = append(anchors, a.StartDateLocal)
		}
	}
	sort.Slice(anchors, func(i, j int) bool { return anchors[i].Before(anchors[j]) })

	for _, anchor := range anchors {
		res := Scan(activities, anchor, goal)
		if res.Length > length {
			length = res.Length
			start = res.StartDate
		}
	}
	return length, start
}

func earliestActivityDate(activities []Activity) (Date, bool) {
	var earliest Date
	for _, a := range activities {
		if earliest.IsZero() || a.StartDateLocal.Before(earliest) {
			earliest = a.StartDateLocal
		}
	}
	return earliest, !earliest.IsZero()
}
