package result

// Band is the competency band a mark falls into.
type Band int

const (
	NotYetCompetent Band = iota
	Competent
	Proficient
	Mastery
)

var bandNames = map[Band]string{
	NotYetCompetent: "Not Yet Competent",
	Competent:       "Competent",
	Proficient:      "Proficient",
	Mastery:         "Mastery",
}

func (b Band) String() string {
	return bandNames[b]
}

// Grade maps marks to their band: above 80 is Mastery, 65 to 80 Proficient,
// 50 to 64 Competent and anything below Not Yet Competent.
func Grade(marks int) Band {
	switch {
	case marks > 80:
		return Mastery
	case marks >= 65:
		return Proficient
	case marks >= 50:
		return Competent
	default:
		return NotYetCompetent
	}
}
