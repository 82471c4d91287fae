package extract

import (
	"testing"

	"credverify/internal/domain"
)

const sampleCertificateText = `RANCHI UNIVERSITY
This is to certify that
Student Name: Rahul Kumar Singh
Roll No: RU23BSC001234
Certificate No: RU/2023/BSC/001234
Course: Bachelor of Science in Computer Science
Passing Year: 2023
Grade: A
Marks: 85.5%`

func TestParseFields_SampleCertificate(t *testing.T) {
	fields := ParseFields(sampleCertificateText)

	want := map[string]string{
		domain.FieldCertificateNumber: "ru/2023/bsc/001234",
		domain.FieldStudentName:       "rahul kumar singh",
		domain.FieldRollNumber:        "ru23bsc001234",
		domain.FieldCourse:            "bachelor of science in computer science",
		domain.FieldYear:              "2023",
		domain.FieldGrade:             "a",
		domain.FieldPercentage:        "85.5",
	}
	for field, value := range want {
		got, ok := fields.Get(field)
		if !ok {
			t.Fatalf("field %s not extracted, got %v", field, fields)
		}
		if got != value {
			t.Fatalf("field %s: got %q, want %q", field, got, value)
		}
	}
}

func TestParseFields_CaptureStopsAtLineEnd(t *testing.T) {
	text := "Student Name: Priya Kumari\nRoll No: RU22BA005678"
	fields := ParseFields(text)
	name, ok := fields.Get(domain.FieldStudentName)
	if !ok {
		t.Fatal("name not extracted")
	}
	if name != "priya kumari" {
		t.Fatalf("name capture ran past its line: %q", name)
	}
}

func TestParseFields_AlternateLabels(t *testing.T) {
	text := "Reg No: CUJ/2023/MA/567890\nThis is to certify that Ravi Kumar\nMaster of Arts in Economics\nSession: 2023"
	fields := ParseFields(text)

	if number, _ := fields.Get(domain.FieldCertificateNumber); number != "cuj/2023/ma/567890" {
		t.Fatalf("certificate number: %q", number)
	}
	if name, _ := fields.Get(domain.FieldStudentName); name != "ravi kumar" {
		t.Fatalf("name: %q", name)
	}
	if year, _ := fields.Get(domain.FieldYear); year != "2023" {
		t.Fatalf("year: %q", year)
	}
}

func TestParseFields_AbsentFieldsOmitted(t *testing.T) {
	fields := ParseFields("completely unrelated text")
	if len(fields) != 0 {
		t.Fatalf("expected no fields, got %v", fields)
	}
}

func TestHashContent_Stable(t *testing.T) {
	a := HashContent([]byte("certificate body"))
	b := HashContent([]byte("certificate body"))
	if a != b {
		t.Fatal("hash must be deterministic")
	}
	if len(a) != 64 {
		t.Fatalf("expected hex sha256, got %d chars", len(a))
	}
	if c := HashContent([]byte("different body")); c == a {
		t.Fatal("distinct content must hash differently")
	}
}
