package category

import "testing"

func TestDefault_Categorize(t *testing.T) {
	tests := []struct {
		title string
		want  Category
	}{
		{"Application Deadline for Exchange Students", Admissions},
		{"Double Major / Minor Declaration", Admissions},
		{"Course Registration", Registration},
		{"Add-Drop Period", Registration},
		{"Add Drop Period", Registration},
		{"Tuition Fee Payment", Registration},
		{"First Day of Classes", AcademicTerm},
		{"Make-up Class Day", AcademicTerm},
		{"Final Exams", Exams},
		{"Makeup Exam Results Announced", Exams},
		{"ELAE", Exams},
		{"New Student Orientation", Ceremonies},
		{"Commencement Ceremony", Ceremonies},
		{"Republic Day", Holidays},
		{"Ramadan Feast Holiday", Holidays},
		{"Semester Break", Holidays},
		{"Labor and Solidarity Day", Holidays},
		{"Something entirely unrelated", Registration},
		{"", Registration},
	}

	table := Default()
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := table.Categorize(tt.title); got.Name != tt.want.Name {
				t.Errorf("Categorize(%q) = %q, want %q", tt.title, got.Name, tt.want.Name)
			}
		})
	}
}

func TestDefault_PriorityOrder(t *testing.T) {
	// Matches admissions ("application"), registration ("single course exam
	// application") and exams ("exam"); the earliest rule wins.
	title := "Single Course Exam Application"
	if got := Default().Categorize(title); got.Name != Admissions.Name {
		t.Errorf("Categorize(%q) = %q, want %q", title, got.Name, Admissions.Name)
	}

	// Holiday keywords lose to exams when both appear.
	title = "Final Exams end, Semester Break begins"
	if got := Default().Categorize(title); got.Name != Exams.Name {
		t.Errorf("Categorize(%q) = %q, want %q", title, got.Name, Exams.Name)
	}
}

func TestDefault_WordBoundaries(t *testing.T) {
	// "finalize" must not match \bfinal\b and "breakfast" must not match \bbreak\b.
	title := "Finalize breakfast menu"
	if got := Default().Categorize(title); got.Name != Registration.Name {
		t.Errorf("Categorize(%q) = %q, want fallback %q", title, got.Name, Registration.Name)
	}
}

func TestDefault_Reminders(t *testing.T) {
	for _, c := range []Category{Admissions, Registration, Exams} {
		if !c.HasReminder() || *c.ReminderMinutes != 1440 {
			t.Errorf("%s: expected one-day reminder", c.Name)
		}
	}
	for _, c := range []Category{AcademicTerm, Ceremonies, Holidays} {
		if c.HasReminder() {
			t.Errorf("%s: expected default reminders", c.Name)
		}
	}
}

func TestNewTable_Custom(t *testing.T) {
	alpha := Category{Name: "alpha", Emoji: "A", ColorID: "1"}
	beta := Category{Name: "beta", Emoji: "B", ColorID: "2"}
	other := Category{Name: "other", Emoji: "O", ColorID: "3"}

	table := NewTable(other,
		MustRule(alpha, `\bshared\b`, `\bfirst\b`),
		MustRule(beta, `\bshared\b`, `\bsecond\b`),
	)

	tests := []struct {
		title string
		want  string
	}{
		{"SHARED keyword", "alpha"},
		{"the second one", "beta"},
		{"nothing here", "other"},
	}
	for _, tt := range tests {
		if got := table.Categorize(tt.title); got.Name != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.title, got.Name, tt.want)
		}
	}

	if got := len(table.Categories()); got != 2 {
		t.Errorf("Categories() returned %d entries, want 2", got)
	}
	if table.Fallback().Name != "other" {
		t.Errorf("Fallback() = %q, want other", table.Fallback().Name)
	}
}

func TestNewRule_InvalidPattern(t *testing.T) {
	if _, err := NewRule(Category{Name: "bad"}, `(unclosed`); err == nil {
		t.Error("NewRule() expected error for invalid pattern")
	}
}
