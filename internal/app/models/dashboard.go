package models

import "time"

// Read models for the dashboard views. These are join-shaped rows produced
// by the dashboard repository; they carry only the columns each view shows.

// ClassOverview is a teacher's class with its enrolled student count.
type ClassOverview struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Level        string `json:"level"`
	StudentCount int64  `json:"studentCount"`
}

// ExamOverview is an upcoming exam with its class and subject names.
type ExamOverview struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	ClassName   string    `json:"className,omitempty"`
	SubjectName string    `json:"subjectName"`
}

// AttendanceOverview is a recent attendance record with display names.
type AttendanceOverview struct {
	ID          int64            `json:"id"`
	Date        time.Time        `json:"date"`
	Status      AttendanceStatus `json:"status"`
	StudentName string           `json:"studentName"`
	ClassName   string           `json:"className"`
}

// GradeOverview is a recent grade with exam and subject context.
type GradeOverview struct {
	ID          int64     `json:"id"`
	Marks       int       `json:"marks"`
	ExamName    string    `json:"examName"`
	ExamDate    time.Time `json:"examDate"`
	SubjectName string    `json:"subjectName"`
	StudentName string    `json:"studentName,omitempty"`
}

// TimetableOverview is a timetable slot with display names.
type TimetableOverview struct {
	ID          int64  `json:"id"`
	Day         int    `json:"day"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	ClassName   string `json:"className,omitempty"`
	SubjectName string `json:"subjectName"`
}

// UserOverview is a recently registered user.
type UserOverview struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// EnrollmentOverview is a recent enrollment with display names.
type EnrollmentOverview struct {
	ID          int64     `json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	StudentName string    `json:"studentName"`
	ClassName   string    `json:"className"`
}

// StudentDetail is the student header of the student dashboard: the profile
// with user, class, class teacher and parent display fields resolved.
type StudentDetail struct {
	ID          int64   `json:"id"`
	ClassID     *int64  `json:"classId"`
	FullName    string  `json:"fullName"`
	Email       string  `json:"email"`
	ClassName   *string `json:"className,omitempty"`
	ClassLevel  *string `json:"classLevel,omitempty"`
	TeacherName *string `json:"teacherName,omitempty"`
	ParentName  *string `json:"parentName,omitempty"`
	ParentEmail *string `json:"parentEmail,omitempty"`
}

// ChildOverview is one child row of the parent dashboard.
type ChildOverview struct {
	ID         int64   `json:"id"`
	ClassID    *int64  `json:"classId"`
	FullName   string  `json:"fullName"`
	Email      string  `json:"email"`
	ClassName  *string `json:"className,omitempty"`
	ClassLevel *string `json:"classLevel,omitempty"`
}

// StatusCount is one row of an attendance GROUP BY (student, status) query.
type StatusCount struct {
	StudentID int64            `json:"studentId"`
	Status    AttendanceStatus `json:"status"`
	Count     int              `json:"count"`
}
