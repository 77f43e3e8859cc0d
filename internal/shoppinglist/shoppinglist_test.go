package shoppinglist

import (
	"math/rand/v2"
	"reflect"
	"strings"
	"testing"
)

func TestAggregate_SumsMatchingGroups(t *testing.T) {
	lines := []Line{
		{Name: "Flour", Unit: "g", Amount: 200},
		{Name: "Sugar", Unit: "g", Amount: 50},
		{Name: "Flour", Unit: "g", Amount: 100},
	}

	got := Aggregate(lines)
	want := []Total{
		{Name: "Flour", Unit: "g", Amount: 300},
		{Name: "Sugar", Unit: "g", Amount: 50},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Aggregate() = %v, want %v", got, want)
	}
}

func TestAggregate_Empty(t *testing.T) {
	if got := Aggregate(nil); len(got) != 0 {
		t.Errorf("Aggregate(nil) = %v, want empty", got)
	}
}

func TestAggregate_UnitsStaySeparate(t *testing.T) {
	lines := []Line{
		{Name: "Milk", Unit: "ml", Amount: 500},
		{Name: "Milk", Unit: "l", Amount: 1},
	}

	got := Aggregate(lines)
	want := []Total{
		{Name: "Milk", Unit: "l", Amount: 1},
		{Name: "Milk", Unit: "ml", Amount: 500},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Aggregate() = %v, want %v", got, want)
	}
}

func TestAggregate_CaseSensitiveNames(t *testing.T) {
	lines := []Line{
		{Name: "salt", Unit: "g", Amount: 5},
		{Name: "Salt", Unit: "g", Amount: 10},
	}

	got := Aggregate(lines)
	want := []Total{
		{Name: "Salt", Unit: "g", Amount: 10},
		{Name: "salt", Unit: "g", Amount: 5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Aggregate() = %v, want %v", got, want)
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	lines := []Line{
		{Name: "Flour", Unit: "g", Amount: 200},
		{Name: "Milk", Unit: "ml", Amount: 500},
		{Name: "Sugar", Unit: "g", Amount: 50},
		{Name: "Flour", Unit: "g", Amount: 100},
		{Name: "Milk", Unit: "l", Amount: 1},
	}

	want := Aggregate(lines)

	rng := rand.New(rand.NewPCG(9, 9))
	for i := 0; i < 20; i++ {
		shuffled := make([]Line, len(lines))
		copy(shuffled, lines)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		if got := Aggregate(shuffled); !reflect.DeepEqual(got, want) {
			t.Fatalf("Aggregate() order-dependent: got %v, want %v", got, want)
		}
	}
}

func TestRender(t *testing.T) {
	totals := []Total{
		{Name: "Flour", Unit: "g", Amount: 300},
		{Name: "Sugar", Unit: "g", Amount: 50},
	}

	got := Render(totals)
	want := "Flour (g) - 300\nSugar (g) - 50"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("Render() ends with a trailing newline")
	}
}

func TestRender_Empty(t *testing.T) {
	if got := Render(nil); got != "" {
		t.Errorf("Render(nil) = %q, want empty string", got)
	}
}

func TestRender_SingleLine(t *testing.T) {
	got := Render([]Total{{Name: "Eggs", Unit: "pcs", Amount: 12}})
	want := "Eggs (pcs) - 12"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestAggregateAndRender_CartExample(t *testing.T) {
	// Two recipes sharing ingredients, as collected from a cart.
	lines := []Line{
		{Name: "Flour", Unit: "g", Amount: 200},
		{Name: "Sugar", Unit: "g", Amount: 50},
		{Name: "Flour", Unit: "g", Amount: 100},
	}

	got := Render(Aggregate(lines))
	want := "Flour (g) - 300\nSugar (g) - 50"
	if got != want {
		t.Errorf("Render(Aggregate()) = %q, want %q", got, want)
	}
}
