package domain

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestAnswers(t *testing.T) {
	sub := Answers(2, NoAnswer, 0)
	if len(sub) != 3 || sub[1] != nil || *sub[0] != 2 || *sub[2] != 0 {
		t.Fatalf("unexpected submission %v", sub)
	}

	raw, err := json.Marshal(sub)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != "[2,null,0]" {
		t.Fatalf("expected unanswered positions as null, got %s", raw)
	}
}

func TestQuizPublicAndCorrectAnswers(t *testing.T) {
	quiz := Quiz{
		ID:    "q",
		Title: "Colours",
		Questions: []Question{
			{ID: "q1", Text: "Sky?", Options: []string{"Blue", "Green"}, CorrectIndex: 0},
			{ID: "q2", Text: "Grass?", Options: []string{"Blue", "Green"}, CorrectIndex: 1},
		},
	}

	public := quiz.Public()
	raw, _ := json.Marshal(public)
	if strings.Contains(string(raw), "correctIndex") {
		t.Fatalf("public view leaked answers: %s", raw)
	}
	if public.Title != "Colours" || len(public.Questions) != 2 || public.Questions[1].Text != "Grass?" {
		t.Fatalf("unexpected public quiz %+v", public)
	}
	if got := quiz.CorrectAnswers(); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Fatalf("expected [0 1], got %v", got)
	}
}

func TestValidateQuiz(t *testing.T) {
	valid := Quiz{ID: "q", Questions: []Question{{ID: "q1", Options: []string{"a", "b"}, CorrectIndex: 1}}}
	if err := ValidateQuiz(valid); err != nil {
		t.Fatalf("expected valid quiz, got %v", err)
	}
	if err := ValidateQuiz(Quiz{ID: "empty"}); err != nil {
		t.Fatalf("a quiz without questions is valid, got %v", err)
	}

	cases := map[string]Quiz{
		"missing id":   {Questions: valid.Questions},
		"one option":   {ID: "q", Questions: []Question{{ID: "q1", Options: []string{"a"}}}},
		"index high":   {ID: "q", Questions: []Question{{ID: "q1", Options: []string{"a", "b"}, CorrectIndex: 2}}},
		"index below0": {ID: "q", Questions: []Question{{ID: "q1", Options: []string{"a", "b"}, CorrectIndex: -1}}},
	}
	for name, quiz := range cases {
		if err := ValidateQuiz(quiz); !errors.Is(err, ErrInvalidQuiz) {
			t.Fatalf("%s: expected ErrInvalidQuiz, got %v", name, err)
		}
	}
}
