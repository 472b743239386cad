package dto

import (
	"github.com/okandemir/schoolhub/internal/app/models"
	"github.com/okandemir/schoolhub/internal/pkg/stats"
)

// AdminSummary carries the entity counts of the admin dashboard.
type AdminSummary struct {
	TotalStudents int64 `json:"totalStudents"`
	TotalTeachers int64 `json:"totalTeachers"`
	TotalParents  int64 `json:"totalParents"`
	TotalClasses  int64 `json:"totalClasses"`
	TotalSubjects int64 `json:"totalSubjects"`
}

// AdminActivity carries the recent-activity lists of the admin dashboard.
type AdminActivity struct {
	NewUsers       []models.UserOverview       `json:"newUsers"`
	NewEnrollments []models.EnrollmentOverview `json:"newEnrollments"`
}

// AdminDashboard is the admin view of GET /dashboard.
type AdminDashboard struct {
	Summary        AdminSummary  `json:"summary"`
	RecentActivity AdminActivity `json:"recentActivity"`
}

// TeacherSummary carries the headline numbers of the teacher dashboard.
type TeacherSummary struct {
	TotalClasses  int   `json:"totalClasses"`
	TotalStudents int64 `json:"totalStudents"`
	UpcomingExams int   `json:"upcomingExams"`
}

// TeacherDashboard is the teacher view of GET /dashboard.
type TeacherDashboard struct {
	Summary          TeacherSummary              `json:"summary"`
	MyClasses        []models.ClassOverview      `json:"myClasses"`
	UpcomingExams    []models.ExamOverview       `json:"upcomingExams"`
	RecentAttendance []models.AttendanceOverview `json:"recentAttendance"`
	Timetable        []models.TimetableOverview  `json:"timetable"`
}

// StudentSummary carries the headline numbers of the student dashboard.
type StudentSummary struct {
	AttendancePercentage int  `json:"attendancePercentage"`
	TotalSubjects        int  `json:"totalSubjects"`
	UpcomingExams        int  `json:"upcomingExams"`
	HasClass             bool `json:"hasClass"`
}

// StudentDashboard is the student view of GET /dashboard. The list fields
// are always arrays, never null, including for students without a class.
type StudentDashboard struct {
	StudentInfo   models.StudentDetail       `json:"studentInfo"`
	Summary       StudentSummary             `json:"summary"`
	Attendance    stats.AttendanceSummary    `json:"attendance"`
	RecentGrades  []models.GradeOverview     `json:"recentGrades"`
	UpcomingExams []models.ExamOverview      `json:"upcomingExams"`
	Timetable     []models.TimetableOverview `json:"timetable"`
	Subjects      []models.Subject           `json:"subjects"`
}

// ParentInfo is the parent header of the parent dashboard.
type ParentInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// ParentSummary carries the headline numbers of the parent dashboard.
type ParentSummary struct {
	TotalChildren      int `json:"totalChildren"`
	TotalUpcomingExams int `json:"totalUpcomingExams"`
}

// ChildWithAttendance is a child row annotated with its own attendance
// percentage, derived from that child's records only.
type ChildWithAttendance struct {
	models.ChildOverview
	AttendancePercentage int `json:"attendancePercentage"`
}

// ParentDashboard is the parent view of GET /dashboard.
type ParentDashboard struct {
	ParentInfo    ParentInfo             `json:"parentInfo"`
	Summary       ParentSummary          `json:"summary"`
	Children      []ChildWithAttendance  `json:"children"`
	RecentGrades  []models.GradeOverview `json:"recentGrades"`
	UpcomingExams []models.ExamOverview  `json:"upcomingExams"`
}
