package main

import (
	"os"
	"path/filepath"
	"testing"
)

const seedFixture = `[
  {
    "id": "2026-1",
    "name": "2026 Session 1",
    "subjects": [
      { "id": 1, "name": "Software Design" },
      { "id": 2, "name": "Software Development" }
    ],
    "questions": [
      { "id": 1, "subject": 1, "question": "q1", "choices": ["a","b","c","d"], "answer": 1, "explanation": "e1" },
      { "id": 2, "subject": 2, "question": "q2", "choices": ["a","b","c","d"], "answer": 2, "explanation": "e2" },
      { "id": 3, "subject": 1, "question": "q3", "choices": ["a","b","c","d"], "answer": 3, "explanation": "e3" }
    ]
  }
]`

func seedTestBank(t *testing.T) *ExamBank {
	t.Helper()
	db, err := OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	path := filepath.Join(t.TempDir(), "questions.json")
	if err := os.WriteFile(path, []byte(seedFixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := SeedFromJSON(db, path); err != nil {
		t.Fatalf("seed: %v", err)
	}
	bank, err := LoadBank(db)
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	return bank
}

func TestBank_LookupKnownExam(t *testing.T) {
	bank := seedTestBank(t)

	data := bank.Lookup("2026-1")
	if len(data.Questions) != 3 || len(data.Subjects) != 2 {
		t.Fatalf("lookup = %d questions, %d subjects, want 3 and 2",
			len(data.Questions), len(data.Subjects))
	}
	if data.Subjects[0].ID != 1 || data.Subjects[1].ID != 2 {
		t.Errorf("subject order = %d, %d, want declared order 1, 2",
			data.Subjects[0].ID, data.Subjects[1].ID)
	}
	q := data.Questions[0]
	if q.SubjectName != "Software Design" {
		t.Errorf("SubjectName = %q, want resolved from subject list", q.SubjectName)
	}
	if len(q.Choices) != 4 || q.Answer != 1 {
		t.Errorf("question round-trip lost fields: choices=%d answer=%d", len(q.Choices), q.Answer)
	}
}

func TestBank_LookupUnknownExamIsEmpty(t *testing.T) {
	bank := seedTestBank(t)

	data := bank.Lookup("1999-9")
	if data.Questions == nil || data.Subjects == nil {
		t.Fatalf("unknown exam must yield empty slices, got nil")
	}
	if len(data.Questions) != 0 || len(data.Subjects) != 0 {
		t.Errorf("unknown exam = %d questions, %d subjects, want 0 and 0",
			len(data.Questions), len(data.Subjects))
	}
}

func TestBank_ScopeBySubject(t *testing.T) {
	bank := seedTestBank(t)
	data := bank.Lookup("2026-1")

	sid := 1
	scoped := data.Scope(ExamConfig{Mode: ModeSubject, SubjectID: &sid})
	if len(scoped) != 2 {
		t.Fatalf("len(scoped) = %d, want 2", len(scoped))
	}
	for _, q := range scoped {
		if q.Subject != 1 {
			t.Errorf("question %d has subject %d, want 1", q.ID, q.Subject)
		}
	}

	full := data.Scope(ExamConfig{Mode: ModeFull})
	if len(full) != 3 {
		t.Errorf("full scope = %d questions, want 3", len(full))
	}
}

func TestValidateExamInput(t *testing.T) {
	base := func() ExamInput {
		return ExamInput{
			ID:       "x",
			Name:     "X",
			Subjects: []SubjectInput{{ID: 1, Name: "A"}},
			Questions: []QInput{
				{ID: 1, Subject: 1, Question: "q", Choices: []string{"a", "b", "c", "d"}, Answer: 1},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*ExamInput)
		wantErr bool
	}{
		{name: "valid", mutate: func(in *ExamInput) {}, wantErr: false},
		{name: "missing exam id", mutate: func(in *ExamInput) { in.ID = "" }, wantErr: true},
		{name: "duplicate question id", mutate: func(in *ExamInput) {
			in.Questions = append(in.Questions, in.Questions[0])
		}, wantErr: true},
		{name: "wrong choice count", mutate: func(in *ExamInput) {
			in.Questions[0].Choices = []string{"a", "b"}
		}, wantErr: true},
		{name: "answer out of range", mutate: func(in *ExamInput) { in.Questions[0].Answer = 5 }, wantErr: true},
		{name: "undeclared subject", mutate: func(in *ExamInput) { in.Questions[0].Subject = 9 }, wantErr: true},
		{name: "duplicate subject id", mutate: func(in *ExamInput) {
			in.Subjects = append(in.Subjects, SubjectInput{ID: 1, Name: "B"})
		}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base()
			tt.mutate(&in)
			if err := validateExamInput(in); (err != nil) != tt.wantErr {
				t.Errorf("validateExamInput() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
