package roster

// Student is a single roster record.
type Student struct {
	ID      string  `json:"id"`
	Surname string  `json:"surname"`
	Name    string  `json:"name"`
	Grades  []Grade `json:"grades"`
}

// FullName joins surname and name with a single space.
func (s Student) FullName() string {
	return s.Surname + " " + s.Name
}

// clone returns a deep copy so callers can't alias store-owned grade slices.
func (s Student) clone() Student {
	out := s
	out.Grades = make([]Grade, len(s.Grades))
	copy(out.Grades, s.Grades)
	return out
}

func cloneAll(students []Student) []Student {
	out := make([]Student, len(students))
	for i, s := range students {
		out[i] = s.clone()
	}
	return out
}

// emptyGrades returns n empty grade cells.
func emptyGrades(n int) []Grade {
	return make([]Grade, n)
}

// resize pads or truncates grades to width n.
func resize(grades []Grade, n int) []Grade {
	if len(grades) == n {
		return grades
	}
	out := emptyGrades(n)
	copy(out, grades)
	return out
}
