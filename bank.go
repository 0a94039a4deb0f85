package main

import (
	"gorm.io/gorm"
)

// ExamData is what a repository lookup yields: the full question and subject
// lists of one exam set.
type ExamData struct {
	Questions []Question `json:"questions"`
	Subjects  []Subject  `json:"subjects"`
}

// Scope returns the questions a session works through. Full mode takes the
// whole set, subject mode only the questions of the configured subject.
func (d ExamData) Scope(cfg ExamConfig) []Question {
	if cfg.Mode != ModeSubject || cfg.SubjectID == nil {
		return d.Questions
	}
	out := make([]Question, 0, len(d.Questions))
	for _, q := range d.Questions {
		if q.Subject == *cfg.SubjectID {
			out = append(out, q)
		}
	}
	return out
}

// ExamBank is the immutable in-memory question repository, loaded once at
// startup from the seeded tables and never written afterwards.
type ExamBank struct {
	sets []ExamSet
	data map[string]ExamData
}

func LoadBank(db *gorm.DB) (*ExamBank, error) {
	var sets []ExamSet
	if err := db.Order("id").Find(&sets).Error; err != nil {
		return nil, err
	}
	bank := &ExamBank{sets: sets, data: make(map[string]ExamData, len(sets))}
	for _, set := range sets {
		var subjects []Subject
		if err := db.Where("exam_id = ?", set.ID).Order("position").Find(&subjects).Error; err != nil {
			return nil, err
		}
		var questions []Question
		if err := db.Where("exam_id = ?", set.ID).Order("id").Find(&questions).Error; err != nil {
			return nil, err
		}
		bank.data[set.ID] = ExamData{Questions: questions, Subjects: subjects}
	}
	return bank, nil
}

func (b *ExamBank) Sets() []ExamSet {
	return b.sets
}

// Lookup returns the exam's data, or empty sequences for an unknown id.
func (b *ExamBank) Lookup(examID string) ExamData {
	if d, ok := b.data[examID]; ok {
		return d
	}
	return ExamData{Questions: []Question{}, Subjects: []Subject{}}
}
