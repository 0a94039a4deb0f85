package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

/*** DTOs shared across handlers ***/

// QuestionDTO is the question as shipped to the UI while answering: no answer
// key, no explanation. Those are revealed per question in practice mode and
// in the submit review.
type QuestionDTO struct {
	ID          int       `json:"id"`
	Subject     int       `json:"subject"`
	SubjectName string    `json:"subjectName"`
	Question    string    `json:"question"`
	Segments    []Segment `json:"segments"`
	Choices     []string  `json:"choices"`
}

func toQuestionDTO(q Question) QuestionDTO {
	return QuestionDTO{
		ID:          q.ID,
		Subject:     q.Subject,
		SubjectName: q.SubjectName,
		Question:    q.Text,
		Segments:    SplitSegments(q.Text),
		Choices:     q.Choices,
	}
}

func toQuestionDTOs(qs []Question) []QuestionDTO {
	out := make([]QuestionDTO, 0, len(qs))
	for _, q := range qs {
		out = append(out, toQuestionDTO(q))
	}
	return out
}

/*** Exam listing & lookup ***/

type SubjectSummaryDTO struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	QuestionCount int    `json:"questionCount"`
}

type ExamSummaryDTO struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	QuestionCount int                 `json:"questionCount"`
	Subjects      []SubjectSummaryDTO `json:"subjects"`
}

func ListExams(bank *ExamBank) gin.HandlerFunc {
	return func(c *gin.Context) {
		out := make([]ExamSummaryDTO, 0, len(bank.Sets()))
		for _, set := range bank.Sets() {
			data := bank.Lookup(set.ID)
			counts := map[int]int{}
			for _, q := range data.Questions {
				counts[q.Subject]++
			}
			subjects := make([]SubjectSummaryDTO, 0, len(data.Subjects))
			for _, s := range data.Subjects {
				subjects = append(subjects, SubjectSummaryDTO{
					ID: s.ID, Name: s.Name, QuestionCount: counts[s.ID],
				})
			}
			out = append(out, ExamSummaryDTO{
				ID:            set.ID,
				Name:          set.Name,
				QuestionCount: len(data.Questions),
				Subjects:      subjects,
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

// GetExam returns the full question and subject lists for an exam set. An
// unknown id yields empty sequences, not an error.
func GetExam(bank *ExamBank) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := bank.Lookup(c.Param("id"))
		c.JSON(http.StatusOK, gin.H{
			"questions": toQuestionDTOs(data.Questions),
			"subjects":  data.Subjects,
		})
	}
}

/*** Session lifecycle ***/

type StartSessionReq struct {
	ExamID       string `json:"examId"`
	Mode         string `json:"mode"` // "full" | "subject"
	SubjectID    *int   `json:"subjectId"`
	PracticeMode bool   `json:"practiceMode"`
}

func StartSession(bank *ExamBank, sessions *SessionRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StartSessionReq
		if err := c.BindJSON(&req); err != nil || req.ExamID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}
		if req.Mode != ModeFull && req.Mode != ModeSubject {
			c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be \"full\" or \"subject\""})
			return
		}
		if req.Mode == ModeSubject && req.SubjectID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "subjectId required in subject mode"})
			return
		}
		if req.Mode == ModeFull {
			req.SubjectID = nil
		}

		cfg := ExamConfig{
			ExamID:       req.ExamID,
			Mode:         req.Mode,
			SubjectID:    req.SubjectID,
			PracticeMode: req.PracticeMode,
		}
		s := NewSession(cfg, bank.Lookup(req.ExamID))
		if len(s.Questions) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no questions"})
			return
		}
		sessions.Start(s)

		c.JSON(http.StatusOK, gin.H{
			"sessionId":    s.ID,
			"practiceMode": s.Config.PracticeMode,
			"questions":    toQuestionDTOs(s.Questions),
		})
	}
}

type SelectAnswerReq struct {
	QuestionID int `json:"questionId"`
	Choice     int `json:"choice"` // 1..4
}

// SelectAnswer records a choice. Practice mode answers are locked after the
// first selection and immediately reveal the answer key; exam mode answers
// stay mutable and reveal nothing until submit.
func SelectAnswer(sessions *SessionRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessions.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		var req SelectAnswerReq
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}
		if req.Choice < 1 || req.Choice > 4 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "choice out of range 1..4"})
			return
		}
		q, ok := s.QuestionByID(req.QuestionID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "question not in session"})
			return
		}

		recorded, locked := s.Select(req.QuestionID, req.Choice)

		resp := gin.H{
			"saved":    !locked,
			"locked":   locked,
			"selected": recorded,
			"answered": s.AnsweredCount(),
		}
		if s.Config.PracticeMode {
			resp["isCorrect"] = recorded == q.Answer
			resp["answer"] = q.Answer
			resp["explanation"] = q.Explanation
		}
		c.JSON(http.StatusOK, resp)
	}
}

// SubmitSession grades the session and appends the result to history. Take
// removes the session first, so a doubled submit grades and saves only once.
// A failed history write is logged inside the store; the result is returned
// either way.
func SubmitSession(sessions *SessionRegistry, history *HistoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessions.Take(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		result := s.Submit(time.Now())
		history.Save(result)
		c.JSON(http.StatusOK, result)
	}
}

// CancelSession discards in-progress state. Nothing is persisted.
func CancelSession(sessions *SessionRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := sessions.Take(c.Param("id")); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
	}
}
