//go:build integration
// +build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestHealthz(t *testing.T) {
	resp, err := http.Get(fmt.Sprintf("%s/healthz", baseURL()))
	if err != nil {
		t.Fatalf("health check request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}
}

func TestCategoriesSeeded(t *testing.T) {
	status, body := call(t, http.MethodGet, "/api/categories", nil)
	if status != http.StatusOK {
		t.Fatalf("unexpected status code: %d", status)
	}
	if total, _ := body["total_categories"].(float64); total < 1 {
		t.Fatalf("expected seeded categories, got %v", body)
	}
}

func TestCreateSearchDelete(t *testing.T) {
	marker := fmt.Sprintf("integration-%d", time.Now().UnixNano())
	id := createQuestion(t, "Which test wrote "+marker+"?", 1)

	status, body := call(t, http.MethodPost, "/questions", map[string]interface{}{"searchTerm": marker})
	if status != http.StatusOK {
		t.Fatalf("search: unexpected status %d", status)
	}
	if total, _ := body["total_questions"].(float64); total != 1 {
		t.Fatalf("search: expected one match, got %v", body)
	}

	path := fmt.Sprintf("/questions/%d", id)
	status, body = call(t, http.MethodDelete, path, nil)
	if status != http.StatusOK {
		t.Fatalf("delete: unexpected status %d", status)
	}
	if deleted, _ := body["deleted"].(float64); int(deleted) != id {
		t.Fatalf("delete: expected deleted=%d, got %v", id, body)
	}

	status, _ = call(t, http.MethodDelete, path, nil)
	if status != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", status)
	}
}

func TestCreateUnknownCategory(t *testing.T) {
	status, body := call(t, http.MethodPost, "/questions", map[string]interface{}{
		"question": "Orphan?", "answer": "yes", "category": 999999, "difficulty": 1,
	})
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %v", status, body)
	}
}

func TestQuizRunsToCompletion(t *testing.T) {
	status, body := call(t, http.MethodGet, "/categories", nil)
	if status != http.StatusOK {
		t.Fatalf("categories: unexpected status %d", status)
	}

	previous := []int{}
	seen := map[int]bool{}
	for round := 0; round < 1000; round++ {
		status, body = call(t, http.MethodPost, "/quizzes", map[string]interface{}{
			"previous_questions": previous,
			"quiz_category":      map[string]interface{}{"id": 0, "type": "click"},
		})
		if status != http.StatusOK {
			t.Fatalf("quiz round %d: unexpected status %d", round, status)
		}
		question, ok := body["question"].(map[string]interface{})
		if !ok {
			return
		}
		id := int(question["id"].(float64))
		if seen[id] {
			t.Fatalf("quiz round %d: question %d repeated", round, id)
		}
		seen[id] = true
		previous = append(previous, id)
	}
	t.Fatalf("quiz did not complete")
}
