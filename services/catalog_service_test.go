package services

import (
	"errors"
	"testing"

	"github.com/Dosada05/match-tagger/models"
)

func TestCatalogAdd(t *testing.T) {
	c := NewCatalog(models.DefaultActionTypes())

	at, err := c.Add(CreateActionTypeInput{Name: "  Cross  ", Icon: "x", RequiresPlayer: true, CounterAction: str("14")})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if at.ID == "" || at.Name != "Cross" || at.CounterAction == nil || *at.CounterAction != "14" {
		t.Fatalf("added = %+v", at)
	}
	if got, ok := c.Get(at.ID); !ok || got.Name != "Cross" {
		t.Fatalf("Get(%s) = %+v, %v", at.ID, got, ok)
	}
	if n := len(c.List()); n != 15 {
		t.Fatalf("catalog has %d entries, want 15", n)
	}
}

func TestCatalogAddValidation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateActionTypeInput
		want  error
	}{
		{"blank name", CreateActionTypeInput{Name: "   "}, ErrActionTypeNameRequired},
		{"self counter", CreateActionTypeInput{ID: "x", Name: "X", CounterAction: str("x")}, ErrCounterActionSelfReference},
		{"unknown counter", CreateActionTypeInput{Name: "X", CounterAction: str("404")}, ErrCounterActionNotFound},
		{"existing id", CreateActionTypeInput{ID: "3", Name: "Outra Falta"}, ErrActionTypeIDTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCatalog(models.DefaultActionTypes())
			if _, err := c.Add(tt.input); !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if n := len(c.List()); n != 14 {
				t.Fatalf("failed add changed the catalog: %d entries", n)
			}
		})
	}
}

func TestCatalogUpdate(t *testing.T) {
	c := NewCatalog(models.DefaultActionTypes())

	at, err := c.Update("3", UpdateActionTypeInput{Name: str("Foul"), CounterAction: str("")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if at.Name != "Foul" || at.CounterAction != nil || !at.RequiresPlayer {
		t.Fatalf("updated = %+v", at)
	}

	if _, err := c.Update("3", UpdateActionTypeInput{CounterAction: str("3")}); !errors.Is(err, ErrCounterActionSelfReference) {
		t.Fatalf("self reference error = %v", err)
	}
	if _, err := c.Update("nope", UpdateActionTypeInput{}); !errors.Is(err, ErrActionTypeNotFound) {
		t.Fatalf("unknown id error = %v", err)
	}
}

func TestCatalogRemoveLeavesCounterLinks(t *testing.T) {
	c := NewCatalog(models.DefaultActionTypes())
	if err := c.Remove("14"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	foul, _ := c.Get("3")
	if foul.CounterAction == nil || *foul.CounterAction != "14" {
		t.Fatalf("counter link changed: %+v", foul)
	}
	if err := c.Remove("14"); !errors.Is(err, ErrActionTypeNotFound) {
		t.Fatalf("second Remove = %v", err)
	}
}

func TestCatalogResolvePrefersID(t *testing.T) {
	c := NewCatalog([]models.ActionType{
		{ID: "1", Name: "2"},
		{ID: "2", Name: "Pass"},
	})
	at, ok := c.Resolve("2")
	if !ok || at.Name != "Pass" {
		t.Fatalf("Resolve(2) = %+v, want the entry with id 2", at)
	}
	at, ok = c.Resolve("Pass")
	if !ok || at.ID != "2" {
		t.Fatalf("Resolve(Pass) = %+v", at)
	}
}

func TestCatalogCopiesAreIndependent(t *testing.T) {
	c := NewCatalog(models.DefaultActionTypes())
	list := c.List()
	*list[2].CounterAction = "1"
	list[0].Name = "changed"

	foul, _ := c.Get("3")
	first, _ := c.Get("1")
	if *foul.CounterAction != "14" || first.Name != "Chute no Alvo" {
		t.Fatal("List returned shared state")
	}
}
