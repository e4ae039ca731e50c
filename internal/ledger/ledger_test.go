package ledger

import (
	"encoding/json"
	"testing"
)

func TestRosterPreservesInsertionOrder(t *testing.T) {
	r := NewRoster()
	r.Set("Ana", 10)
	r.Set("Bea", 10)
	r.Set("Caio", 5)
	r.Set("Ana", 12) // update must not move Ana

	want := []string{"Ana", "Bea", "Caio"}
	got := r.Names()
	if len(got) != len(want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names = %v, want %v", got, want)
		}
	}
	if s, _ := r.Get("Ana"); s != 12 {
		t.Fatalf("Ana score = %d, want 12", s)
	}
}

func TestRosterJSONRoundTrip(t *testing.T) {
	r := NewRoster()
	r.Set("José Açúcar", -70)
	r.Set("Ana", 0)
	r.Set("Bërnard <x>", 150)

	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Roster
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	gotNames := back.Names()
	wantNames := r.Names()
	for i := range wantNames {
		if gotNames[i] != wantNames[i] {
			t.Fatalf("order lost: %v vs %v", gotNames, wantNames)
		}
	}
	for _, n := range wantNames {
		want, _ := r.Get(n)
		got, _ := back.Get(n)
		if got != want {
			t.Fatalf("score for %q = %d, want %d", n, got, want)
		}
	}
}

func TestLedgerRoundTripKeepsMissingModalities(t *testing.T) {
	l := NewLedger()
	l["Técnico"].Set("Ana", 42)

	b, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Ledger
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, m := range Modalities {
		if back[m] == nil {
			t.Fatalf("modality %q missing after round-trip", m)
		}
	}
	if s, ok := back["Técnico"].Get("Ana"); !ok || s != 42 {
		t.Fatalf("Ana = %d (%v), want 42", s, ok)
	}
}

func TestCatalogRoundTripsVariableMarker(t *testing.T) {
	c := Catalog{
		"Pontualidade":                     Fixed(50),
		"Receber advertências":             Fixed(-50),
		"Competições culturais/esportivas": Variable(),
	}
	b, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Catalog
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back["Competições culturais/esportivas"].Variable {
		t.Fatalf("variable marker lost: %+v", back)
	}
	if v := back["Receber advertências"]; v.Variable || v.Points != -50 {
		t.Fatalf("negative fixed value lost: %+v", v)
	}
}

func TestCriterionValueRejectsUnknownMarker(t *testing.T) {
	var v CriterionValue
	if err := json.Unmarshal([]byte(`"bogus"`), &v); err == nil {
		t.Fatal("expected error for unknown marker")
	}
}
