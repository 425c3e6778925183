package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shikshahq/school-console-api/internal/models"
	"github.com/shikshahq/school-console-api/internal/service"
	"github.com/shikshahq/school-console-api/internal/store"
)

func newMarksHandler(t *testing.T) *MarksHandler {
	t.Helper()
	st := newTestStore()
	err := st.Update(context.Background(), func(s *store.State) error {
		s.Master.ClassSubjects["5"] = []models.SubjectAssignment{
			{Name: "English", Type: models.SubjectMandatory},
		}
		s.Master.TermExams[store.DefaultTerm] = []models.ExamDefinition{
			{Name: "Half Yearly", MaxMarks: 80, Subjects: []string{"English"}},
		}
		return nil
	})
	require.NoError(t, err)
	seedStudent(t, st, models.Student{ID: "ADM-1", FirstName: "Aarav", Class: "5"})
	return NewMarksHandler(service.NewMarksService(st, nil, zap.NewNop()))
}

func TestMarksHandlerSetScoreInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newMarksHandler(t)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/marks", bytes.NewReader([]byte(`invalid`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.SetScore(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarksHandlerSetScoreWarnsOverMax(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newMarksHandler(t)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(service.SetScoreRequest{
		StudentID: "ADM-1", Term: store.DefaultTerm, Exam: "Half Yearly", Subject: "English", Value: "95",
	})
	req, _ := http.NewRequest(http.MethodPut, "/marks", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.SetScore(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data service.SetScoreResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Contains(t, envelope.Data.Warning, "exceeds maximum marks")
}

func TestMarksHandlerGridUnknownExam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newMarksHandler(t)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/marks/grid?class=5&term=Term+1&exam=Finals", nil)
	c.Request = req

	handler.Grid(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
