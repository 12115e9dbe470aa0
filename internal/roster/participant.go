package roster

// Column names recognised by the import format. Any other column is kept
// verbatim on the participant.
const (
	FieldEmail         = "Email"
	FieldFullName      = "Full Name"
	FieldPhone         = "Phone"
	FieldDegreeProgram = "Degree Program"
	FieldYearOfStudy   = "Year of Study"
	FieldFirstTrack    = "First Track"
	FieldMotivation    = "Motivation"
	FieldLinkedIn      = "LinkedIn"
	FieldGitHub        = "GitHub"
	FieldCV            = "CV (Drive Link)"
)

// Participant is one imported row. Every value is a string; missing values
// are stored as "". Email is the identity key.
type Participant map[string]string

// Email returns the identity key, or "" when the column is absent.
func (p Participant) Email() string {
	return p[FieldEmail]
}

// FullName returns the display name.
func (p Participant) FullName() string {
	return p[FieldFullName]
}

// Get returns the value of an arbitrary column.
func (p Participant) Get(field string) string {
	return p[field]
}

// Clone copies the participant so callers cannot mutate store state.
func (p Participant) Clone() Participant {
	if p == nil {
		return nil
	}
	out := make(Participant, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
