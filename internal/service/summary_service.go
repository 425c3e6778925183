package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shikshahq/school-console-api/internal/models"
	appErrors "github.com/shikshahq/school-console-api/pkg/errors"
)

type summaryState interface {
	Students() []models.Student
}

// SummaryConfig configures the external text-generation endpoint. The
// endpoint speaks the OpenAI-compatible chat completions shape.
type SummaryConfig struct {
	BaseURL  string
	APIKey   string
	Model    string
	Timeout  time.Duration
	Fallback string
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// SummaryService generates a short natural-language profile of a student for
// the detail page. The summary is decorative: every failure path degrades to
// the configured fallback text instead of an error.
type SummaryService struct {
	state  summaryState
	config SummaryConfig
	client *http.Client
	logger *zap.Logger
}

// NewSummaryService constructs a SummaryService.
func NewSummaryService(state summaryState, config SummaryConfig, logger *zap.Logger) *SummaryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &SummaryService{
		state:  state,
		config: config,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Summarize returns a generated summary for the student, or the fallback
// text when the endpoint is unconfigured or unreachable. The student must
// exist; that is the only hard error.
func (s *SummaryService) Summarize(ctx context.Context, studentID string) (string, error) {
	students := s.state.Students()
	idx := findStudentIndex(students, studentID)
	if idx < 0 {
		return "", appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	student := students[idx]

	if s.config.BaseURL == "" || s.config.APIKey == "" {
		return s.config.Fallback, nil
	}

	summary, err := s.generate(ctx, &student)
	if err != nil {
		s.logger.Warn("summary generation failed, using fallback",
			zap.String("student_id", studentID), zap.Error(err))
		return s.config.Fallback, nil
	}
	return summary, nil
}

func (s *SummaryService) generate(ctx context.Context, student *models.Student) (string, error) {
	prompt := buildSummaryPrompt(student)
	body, err := json.Marshal(chatRequest{
		Model: s.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You write brief, factual student profiles for school staff. Two to three sentences, no headings."},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}

	url := strings.TrimRight(s.config.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("summary endpoint returned status %d", resp.StatusCode)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if len(decoded.Choices) == 0 || strings.TrimSpace(decoded.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("summary endpoint returned no content")
	}
	return strings.TrimSpace(decoded.Choices[0].Message.Content), nil
}

func buildSummaryPrompt(student *models.Student) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarise this student record.\nName: %s\nClass: %s", student.FullName(), student.Class)
	if student.Section != "" {
		fmt.Fprintf(&b, "\nSection: %s", student.Section)
	}
	if student.RollNo != "" {
		fmt.Fprintf(&b, "\nRoll No: %s", student.RollNo)
	}
	if student.Gender != "" {
		fmt.Fprintf(&b, "\nGender: %s", student.Gender)
	}
	if student.DOB != "" {
		fmt.Fprintf(&b, "\nDate of Birth: %s", student.DOB)
	}
	if student.Category != "" {
		fmt.Fprintf(&b, "\nCategory: %s", student.Category)
	}
	if student.Father.Name != "" {
		fmt.Fprintf(&b, "\nFather: %s", student.Father.Name)
	}
	if student.Mother.Name != "" {
		fmt.Fprintf(&b, "\nMother: %s", student.Mother.Name)
	}
	fmt.Fprintf(&b, "\nAdmitted: %s", student.AdmissionDate)
	return b.String()
}
