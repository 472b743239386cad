package models

import "time"

// Grade defines a grade record based on the 'grades' table. One grade per
// (exam, student, subject).
type Grade struct {
	ID        int64 `json:"id" db:"id"`
	ExamID    int64 `json:"examId" db:"exam_id"`
	StudentID int64 `json:"studentId" db:"student_id"`
	SubjectID int64 `json:"subjectId" db:"subject_id"`
	Marks     int   `json:"marks" db:"marks"`

	Student *Student `json:"student,omitempty"`
	Exam    *Exam    `json:"exam,omitempty"`
	Subject *Subject `json:"subject,omitempty"`
}

// Exam defines the exam model based on the 'exams' table
type Exam struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" example:"Midterm"`
	Date      time.Time `json:"date" db:"date"`
	ClassID   int64     `json:"classId" db:"class_id"`
	SubjectID int64     `json:"subjectId" db:"subject_id"`
	TeacherID int64     `json:"teacherId" db:"teacher_id"`

	Class   *Class   `json:"class,omitempty"`
	Subject *Subject `json:"subject,omitempty"`
	Teacher *Teacher `json:"teacher,omitempty"`
}

// TimetableSlot defines a timetable entry based on the 'timetables' table.
// Day is 1-based from Monday.
type TimetableSlot struct {
	ID        int64  `json:"id" db:"id"`
	ClassID   int64  `json:"classId" db:"class_id"`
	SubjectID int64  `json:"subjectId" db:"subject_id"`
	TeacherID int64  `json:"teacherId" db:"teacher_id"`
	Day       int    `json:"day" db:"day"`
	StartTime string `json:"startTime" db:"start_time" example:"09:00"`
	EndTime   string `json:"endTime" db:"end_time" example:"09:45"`

	Class   *Class   `json:"class,omitempty"`
	Subject *Subject `json:"subject,omitempty"`
}
