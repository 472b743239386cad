package models

// Caller is the authenticated identity of a request, resolved once by the
// auth middleware and reused by every authorization check and handler in
// that request. The profile ids are nil unless the matching role profile
// exists; authorization treats a missing id as a denial, never as an error.
type Caller struct {
	UserID   int64  `json:"userId"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`

	StudentID      *int64 `json:"studentId,omitempty"`
	StudentClassID *int64 `json:"studentClassId,omitempty"`
	TeacherID      *int64 `json:"teacherId,omitempty"`
	ParentID       *int64 `json:"parentId,omitempty"`
}

// StudentProfileID returns the caller's student profile id, false when the
// caller has no student profile.
func (c Caller) StudentProfileID() (int64, bool) {
	if c.StudentID == nil {
		return 0, false
	}
	return *c.StudentID, true
}

// TeacherProfileID returns the caller's teacher profile id, false when the
// caller has no teacher profile.
func (c Caller) TeacherProfileID() (int64, bool) {
	if c.TeacherID == nil {
		return 0, false
	}
	return *c.TeacherID, true
}

// ParentProfileID returns the caller's parent profile id, false when the
// caller has no parent profile.
func (c Caller) ParentProfileID() (int64, bool) {
	if c.ParentID == nil {
		return 0, false
	}
	return *c.ParentID, true
}

// HasRole reports whether the caller's role is among roles.
func (c Caller) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}
