package models

import "time"

// Role is the access role of a user account. Exactly one of the four values
// is assigned at registration.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
	RoleParent  Role = "PARENT"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleParent:
		return true
	}
	return false
}

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Email     string    `json:"email" db:"email" example:"user@schoolhub.app"`
	Password  string    `json:"-" db:"password"`
	FullName  string    `json:"fullName" db:"full_name" example:"Jane Doe"`
	Avatar    *string   `json:"avatar,omitempty" db:"avatar"`
	Role      Role      `json:"role" db:"role" example:"STUDENT"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Role profile, at most one populated depending on Role
	Student *Student `json:"student,omitempty"`
	Teacher *Teacher `json:"teacher,omitempty"`
	Parent  *Parent  `json:"parent,omitempty"`
}

// Student defines the student profile based on the 'students' table
type Student struct {
	ID       int64  `json:"id" db:"id"`
	UserID   int64  `json:"userId" db:"user_id"`
	ClassID  *int64 `json:"classId" db:"class_id"`
	ParentID *int64 `json:"parentId,omitempty" db:"parent_id"`

	// Relations (populated when needed)
	User   *User   `json:"user,omitempty"`
	Class  *Class  `json:"class,omitempty"`
	Parent *Parent `json:"parent,omitempty"`
}

// Teacher defines the teacher profile based on the 'teachers' table
type Teacher struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"userId" db:"user_id"`

	User    *User   `json:"user,omitempty"`
	Classes []Class `json:"classes,omitempty"`
}

// Parent defines the parent profile based on the 'parents' table
type Parent struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"userId" db:"user_id"`

	User     *User     `json:"user,omitempty"`
	Students []Student `json:"students,omitempty"`
}
