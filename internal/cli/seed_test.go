package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadQuizFile(t *testing.T) {
	quizzes, err := loadQuizFile(filepath.Join("..", "..", "config", "quizzes.example.yaml"))
	if err != nil {
		t.Fatalf("load quiz file: %v", err)
	}
	if len(quizzes) != 1 {
		t.Fatalf("expected 1 quiz, got %d", len(quizzes))
	}
	quiz := quizzes[0]
	if quiz.ID != "premier-league" || len(quiz.Questions) != 2 || quiz.Questions[1].CorrectIndex != 1 {
		t.Fatalf("unexpected quiz %+v", quiz)
	}
}

func TestLoadQuizFileRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, []byte("quizzes: []\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := loadQuizFile(path); err == nil {
		t.Fatalf("expected error for empty quiz list")
	}
}
