package soxplugins

import "testing"

func TestParameterMapRejectsOutOfRange(t *testing.T) {
	m := NewEffectParameterMap()
	m.SetKindReal("Gain [dB]", -10, 10, 0.01)

	before := m.Value("Gain [dB]")
	if ck := m.SetValue("Gain [dB]", "20"); ck != ChangeKindNone {
		t.Fatalf("expected noChange for out-of-range value, got %v", ck)
	}
	if got := m.Value("Gain [dB]"); got != before {
		t.Fatalf("value changed after rejected SetValue: %v != %v", got, before)
	}
}

func TestParameterMapAcceptsInRange(t *testing.T) {
	m := NewEffectParameterMap()
	m.SetKindReal("Gain [dB]", -10, 10, 0.01)
	if ck := m.SetValue("Gain [dB]", "6"); ck != ChangeKindParameter {
		t.Fatalf("expected parameterChange, got %v", ck)
	}
	if got, want := m.Value("Gain [dB]"), "6"; got != want {
		t.Fatalf("value: got %v want %v", got, want)
	}
}

func TestParameterMapEnumValidation(t *testing.T) {
	m := NewEffectParameterMap()
	m.SetKindEnum("isWetOnly?", []string{"true", "false"})
	if ck := m.SetValue("isWetOnly?", "maybe"); ck != ChangeKindNone {
		t.Fatalf("expected noChange for unlisted enum value, got %v", ck)
	}
	if ck := m.SetValue("isWetOnly?", "false"); ck != ChangeKindParameter {
		t.Fatalf("expected parameterChange, got %v", ck)
	}
}

func TestParameterMapPaging(t *testing.T) {
	m := NewEffectParameterMap()
	m.SetKindInt("-2#Band Count", 1, 10, 1)
	m.SetKindInt("-1#Band Index", 1, 10, 1)
	m.SetKindReal("1#Attack [s]", 0.001, 1, 0.001)
	m.SetKindReal("2#Attack [s]", 0.001, 1, 0.001)

	if m.IsActive("2#Attack [s]") {
		t.Fatal("page-2 parameter should start inactive")
	}
	m.ChangeActivenessByPage(2)
	if !m.IsActive("2#Attack [s]") {
		t.Fatal("page-2 parameter should be active on page 2")
	}
	if m.IsActive("1#Attack [s]") {
		t.Fatal("page-1 parameter should be inactive on page 2")
	}
	if !m.IsActive("-2#Band Count") {
		t.Fatal("page-0-equivalent selector parameters must always be active")
	}

	if ck := m.SetValue("-2#Band Count", "3"); ck != ChangeKindPageCount {
		t.Fatalf("expected pageCountChange, got %v", ck)
	}
	if ck := m.SetValue("-1#Band Index", "2"); ck != ChangeKindPage {
		t.Fatalf("expected pageChange, got %v", ck)
	}
}

func TestSplitParameterName(t *testing.T) {
	cases := []struct {
		name      string
		wantPage  int
		wantBare  string
	}{
		{"Gain [dB]", 0, "Gain [dB]"},
		{"3#Attack [s]", 3, "Attack [s]"},
		{"-1#Band Index", -1, "Band Index"},
		{"-2#Band Count", -2, "Band Count"},
	}
	for _, c := range cases {
		page, bare := SplitParameterName(c.name)
		if page != c.wantPage || bare != c.wantBare {
			t.Fatalf("SplitParameterName(%q) = (%d,%q), want (%d,%q)", c.name, page, bare, c.wantPage, c.wantBare)
		}
	}
}

func TestParameterNameListPreservesInsertionOrder(t *testing.T) {
	m := NewEffectParameterMap()
	m.SetKindReal("b", 0, 1, 0.1)
	m.SetKindReal("a", 0, 1, 0.1)
	m.SetKindReal("c", 0, 1, 0.1)
	got := m.ParameterNameList()
	want := []string{"b", "a", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ParameterNameList() = %v, want %v", got, want)
		}
	}
}
