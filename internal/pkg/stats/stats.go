// Package stats holds the pure derivation functions shared by the
// attendance, grade and dashboard endpoints. Every ratio checks its
// denominator first; zero records always yields zero, never NaN.
package stats

import "math"

// Attendance statuses as stored in attendance records.
const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
	StatusLate    = "LATE"
	StatusExcused = "EXCUSED"
)

// AttendanceSummary counts attendance records per status.
type AttendanceSummary struct {
	Present int `json:"PRESENT"`
	Absent  int `json:"ABSENT"`
	Late    int `json:"LATE"`
	Excused int `json:"EXCUSED"`
	Total   int `json:"TOTAL"`
}

// SummarizeAttendance counts the given statuses per bucket. Unknown status
// values still count toward the total.
func SummarizeAttendance(statuses []string) AttendanceSummary {
	var s AttendanceSummary
	for _, status := range statuses {
		switch status {
		case StatusPresent:
			s.Present++
		case StatusAbsent:
			s.Absent++
		case StatusLate:
			s.Late++
		case StatusExcused:
			s.Excused++
		}
		s.Total++
	}
	return s
}

// FromStatusCounts builds a summary from pre-grouped status counts, as
// returned by a GROUP BY status query.
func FromStatusCounts(counts map[string]int) AttendanceSummary {
	s := AttendanceSummary{
		Present: counts[StatusPresent],
		Absent:  counts[StatusAbsent],
		Late:    counts[StatusLate],
		Excused: counts[StatusExcused],
	}
	for _, n := range counts {
		s.Total += n
	}
	return s
}

// Percentage returns the present percentage rounded half up, 0 when there
// are no records.
func (s AttendanceSummary) Percentage() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Present) / float64(s.Total) * 100))
}

// GradeAverage returns the arithmetic mean of marks rounded to 2 decimal
// places, 0 for an empty list.
func GradeAverage(marks []int) float64 {
	if len(marks) == 0 {
		return 0
	}
	sum := 0
	for _, m := range marks {
		sum += m
	}
	avg := float64(sum) / float64(len(marks))
	return math.Round(avg*100) / 100
}

// ExamStatistics describes the grade distribution of a single exam.
type ExamStatistics struct {
	TotalStudents int     `json:"totalStudents"`
	Average       float64 `json:"average"`
	Highest       int     `json:"highest"`
	Lowest        int     `json:"lowest"`
}

// ComputeExamStatistics derives exam statistics from raw marks. The average
// here is intentionally unrounded, unlike GradeAverage; the two endpoints
// have always disagreed on this and consumers rely on the raw mean.
func ComputeExamStatistics(marks []int) ExamStatistics {
	stats := ExamStatistics{TotalStudents: len(marks)}
	if len(marks) == 0 {
		return stats
	}

	sum := 0
	stats.Highest = marks[0]
	stats.Lowest = marks[0]
	for _, m := range marks {
		sum += m
		if m > stats.Highest {
			stats.Highest = m
		}
		if m < stats.Lowest {
			stats.Lowest = m
		}
	}
	stats.Average = float64(sum) / float64(len(marks))
	return stats
}
