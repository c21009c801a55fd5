package ledger

// Category is one of the fixed fee heads a student's dues are tracked under.
type Category string

const (
	Tuition      Category = "tuition"
	Exam         Category = "exam"
	Transport    Category = "transport"
	Hostel       Category = "hostel"
	Registration Category = "registration"
)

// Categories returns the fixed category set in display order.
func Categories() []Category {
	return []Category{Tuition, Exam, Transport, Hostel, Registration}
}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	switch c {
	case Tuition, Exam, Transport, Hostel, Registration:
		return true
	}
	return false
}
