package identity

// Student is the ambient user context the mock-test flow reads.
// The test module never mutates it.
type Student struct {
	Username string
	Level    string // "easy", "medium" or "hard", passed to the AI provider as student_level
}

// Provider supplies the current student. Implementations may read a real
// auth session; the default deployment is single-user and static.
type Provider interface {
	Current() Student
}

// Static is a Provider that always returns the same student.
type Static struct {
	Student Student
}

func NewStatic(username, level string) *Static {
	return &Static{Student: Student{Username: username, Level: level}}
}

func (s *Static) Current() Student {
	return s.Student
}
