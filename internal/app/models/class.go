package models

import "time"

// Class defines the class model based on the 'classes' table
type Class struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name" example:"5-A"`
	Level     string `json:"level" db:"level" example:"Grade 5"`
	TeacherID *int64 `json:"teacherId,omitempty" db:"teacher_id"`

	Teacher      *Teacher  `json:"teacher,omitempty"`
	Students     []Student `json:"students,omitempty"`
	Subjects     []Subject `json:"subjects,omitempty"`
	StudentCount *int64    `json:"studentCount,omitempty"`
}

// Subject defines the subject model based on the 'subjects' table
type Subject struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name" example:"Mathematics"`
	Code    string `json:"code" db:"code" example:"MATH"`
	ClassID *int64 `json:"classId,omitempty" db:"class_id"`
}

// Enrollment defines the enrollment join based on the 'enrollments' table
type Enrollment struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	ClassID   int64     `json:"classId" db:"class_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	Student *Student `json:"student,omitempty"`
	Class   *Class   `json:"class,omitempty"`
}
