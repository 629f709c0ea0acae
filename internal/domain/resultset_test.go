package domain_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jonesrussell/goharvest/internal/domain"
)

func TestResultSet_AddAndGet(t *testing.T) {
	t.Parallel()

	rs := domain.NewResultSet()
	rs.Add("skill-b", domain.Record{Name: "skill-b"})
	rs.Add("skill-a", domain.Record{Name: "skill-a"})

	if rs.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", rs.Len())
	}

	rec, ok := rs.Get("skill-a")
	if !ok || rec.Name != "skill-a" {
		t.Errorf("Get(skill-a) = %+v, %v", rec, ok)
	}

	if _, ok = rs.Get("missing"); ok {
		t.Error("Get(missing) reported found")
	}
}

func TestResultSet_ReplaceKeepsPosition(t *testing.T) {
	t.Parallel()

	rs := domain.NewResultSet()
	rs.Add("first", domain.Record{Title: "one"})
	rs.Add("second", domain.Record{Title: "two"})
	rs.Add("first", domain.Record{Title: "updated"})

	names := rs.Names()
	if len(names) != 2 || names[0] != "first" || names[1] != "second" {
		t.Fatalf("Names() = %v", names)
	}

	rec, _ := rs.Get("first")
	if rec.Title != "updated" {
		t.Errorf("Get(first).Title = %q, want updated", rec.Title)
	}
}

func TestResultSet_MarshalInsertionOrder(t *testing.T) {
	t.Parallel()

	rs := domain.NewResultSet()
	rs.Add("zebra", domain.Record{Name: "zebra"})
	rs.Add("alpha", domain.Record{Name: "alpha"})

	data, err := json.Marshal(rs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// Insertion order beats lexical order.
	doc := string(data)
	if strings.Index(doc, `"zebra"`) > strings.Index(doc, `"alpha"`) {
		t.Errorf("keys out of insertion order: %s", doc)
	}
}

func TestResultSet_RoundTrip(t *testing.T) {
	t.Parallel()

	rs := domain.NewResultSet()
	rs.Add("skill-weather", domain.Record{
		Name:      "skill-weather",
		Title:     "Weather",
		Platforms: []string{"all"},
		Icon:      &domain.Icon{Name: "sun", Color: "#22A7F0"},
		Credits:   []domain.Credit{{Name: "MycroftAI", Handle: "MycroftAI"}},
	})
	rs.Add("skill-timer", domain.Record{Name: "skill-timer", Title: "Timer"})

	data, err := json.Marshal(rs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	decoded := domain.NewResultSet()
	if unmarshalErr := json.Unmarshal(data, decoded); unmarshalErr != nil {
		t.Fatalf("unmarshal: %v", unmarshalErr)
	}

	names := decoded.Names()
	if len(names) != 2 || names[0] != "skill-weather" || names[1] != "skill-timer" {
		t.Fatalf("Names() = %v", names)
	}

	rec, ok := decoded.Get("skill-weather")
	if !ok {
		t.Fatal("Get(skill-weather) not found")
	}
	if rec.Icon == nil || rec.Icon.Name != "sun" {
		t.Errorf("Icon = %v", rec.Icon)
	}
	if len(rec.Credits) != 1 || rec.Credits[0].Handle != "MycroftAI" {
		t.Errorf("Credits = %v", rec.Credits)
	}
}

func TestResultSet_UnmarshalRejectsNonObject(t *testing.T) {
	t.Parallel()

	rs := domain.NewResultSet()

	err := json.Unmarshal([]byte(`["not", "an", "object"]`), rs)
	if err == nil {
		t.Fatal("expected error for array document")
	}
}

func TestResultSet_EmptyMarshals(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(domain.NewResultSet())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("marshal empty = %s, want {}", data)
	}
}
