package category

const oneDay = 24 * 60

func minutes(n int) *int {
	return &n
}

// Built-in categories for the academic calendar.
var (
	Admissions = Category{
		Name:            "Admissions, Applications, and Program Entry",
		Emoji:           "📝",
		ColorID:         "9",
		ReminderMinutes: minutes(oneDay),
	}
	Registration = Category{
		Name:            "Registration, Enrollment, and Administrative Procedures",
		Emoji:           "🧾",
		ColorID:         "6",
		ReminderMinutes: minutes(oneDay),
	}
	AcademicTerm = Category{
		Name:    "Academic Term Activities (Teaching Cycle)",
		Emoji:   "📚",
		ColorID: "2",
	}
	Exams = Category{
		Name:            "Exams, Assessments, and Academic Evaluation",
		Emoji:           "🧪",
		ColorID:         "11",
		ReminderMinutes: minutes(oneDay),
	}
	Ceremonies = Category{
		Name:    "Orientation, Ceremonies, and University Events",
		Emoji:   "🎓",
		ColorID: "5",
	}
	Holidays = Category{
		Name:    "Holidays and Official Breaks",
		Emoji:   "🏖️",
		ColorID: "10",
	}
)

var defaultTable = NewTable(Registration,
	MustRule(Admissions,
		`\bapplication\b`, `\bapply\b`, `\badmission\b`, `\btransfer\b`,
		`\bentry\b`, `\bdeclaration\b`, `\bmajor\b`, `\bminor\b`,
		`\bdouble\s+major\b`, `\bprogram\b`, `\bexchange\s+students?\b`,
		`\binternational\s+students?\b`,
	),
	MustRule(Registration,
		`\benrollment\b`, `\bregistration\b`, `\badd[-\s]?drop\b`, `\bwithdraw(al)?\b`,
		`\btuition\b`, `\bfee\b`, `\bpayment\b`, `\bsubstitution\b`,
		`\bleave\s+of\s+absence\b`, `\bI\s+grades?\b`, `\bconvert(ing)?\b`,
		`\bsingle\s+course\s+exam\s+application\b`,
	),
	MustRule(AcademicTerm,
		`\bfirst\s+day\s+of\s+classes\b`, `\blast\s+day\s+of\s+classes\b`,
		`\binternship\b`, `\bmake[-\s]?up\s+class\b`,
	),
	MustRule(Exams,
		`\bexam\b`, `\bfinal\b`, `\bmake[-\s]?up\s+exam\b`, `\bassessment\b`,
		`\bgrade\s+submission\b`, `\bresults?\b`, `\bELAE\b`,
	),
	MustRule(Ceremonies,
		`\borientation\b`, `\bcommencement\b`, `\bceremony\b`, `\bawards?\b`,
		`\bfamily\s+campus\s+day\b`, `\bfest\b`,
	),
	MustRule(Holidays,
		`\bholiday\b`, `\bbreak\b`, `\brepublic\b`, `\bvictory\b`,
		`\bramadan\b`, `\bsacrifice\b`, `\bnew\s+year\b`,
		`\bdemocracy\b`, `\bnational\s+unity\b`, `\blabou?r\b`,
		`\byouth\b`, `\bsports\s+day\b`,
	),
)

// Default returns the built-in academic calendar table. It is shared and must
// not be modified; build a custom Table with NewTable instead.
func Default() *Table {
	return defaultTable
}
