package match

import "testing"

func TestNameScore_ExactAfterNormalization(t *testing.T) {
	if got := NameScore("Dr. Rahul Kumar Singh", "rahul   kumar singh"); got != 100 {
		t.Fatalf("normalized-equal names: got %d", got)
	}
}

func TestNameScore_TokenOrder(t *testing.T) {
	if got := NameScore("Singh Rahul Kumar", "Rahul Kumar Singh"); got != 100 {
		t.Fatalf("reordered name: got %d", got)
	}
}

func TestNameScore_PartialWindowWins(t *testing.T) {
	// "rahul" appears verbatim inside the full name, so the window measure
	// returns 100 even though raw similarity is low.
	if got := NameScore("Rahul", "Rahul Kumar Singh"); got != 100 {
		t.Fatalf("partial name: got %d", got)
	}
}

func TestNameScore_Empty(t *testing.T) {
	if got := NameScore("", "Rahul Kumar"); got != 0 {
		t.Fatalf("empty left name: got %d", got)
	}
	if got := NameScore("Rahul Kumar", ""); got != 0 {
		t.Fatalf("empty right name: got %d", got)
	}
}

func TestCourseScore_TokenOrderOnly(t *testing.T) {
	if got := CourseScore("Science Computer of Bachelor", "Bachelor of Computer Science"); got != 100 {
		t.Fatalf("reordered course: got %d", got)
	}
	// Substring alone is not enough for courses: no window measure applies.
	if got := CourseScore("Science", "Bachelor of Science in Computer Science"); got == 100 {
		t.Fatal("course score should not use substring windows")
	}
}

func TestCourseScore_Empty(t *testing.T) {
	if got := CourseScore("", "Bachelor of Science"); got != 0 {
		t.Fatalf("empty course: got %d", got)
	}
}
