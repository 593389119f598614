package lexicon

import (
	"testing"
	"time"
)

func TestStrength(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"METFORMIN 500mg tablets", "500mg", true},
		{"LANTUS 100units/ml injection", "100units/ml", true},
		{"ATORVASTATIN 40 mg", "40mg", true},
		{"Hydrocortisone 0.5% cream", "0.5%", true},
		{"PARACETAMOL syrup", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		m, ok := Strength(tt.in)
		if ok != tt.ok {
			t.Errorf("Strength(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && m.Value != tt.want {
			t.Errorf("Strength(%q) = %q, want %q", tt.in, m.Value, tt.want)
		}
	}
}

func TestDosage(t *testing.T) {
	m, ok := Dosage("Take 1 tablet twice daily with meals")
	if !ok {
		t.Fatal("expected dosage match")
	}
	if m.Amount != 1 || m.Unit != "tablets" {
		t.Errorf("got amount %v unit %q, want 1 tablets", m.Amount, m.Unit)
	}

	m, ok = Dosage("Inject 20 units once daily at night")
	if !ok {
		t.Fatal("expected dosage match")
	}
	if m.Amount != 20 || m.Unit != "units" {
		t.Errorf("got amount %v unit %q, want 20 units", m.Amount, m.Unit)
	}

	if _, ok := Dosage("METFORMIN 500mg"); ok {
		t.Error("line without an administration verb should not match")
	}
}

func TestQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"Quantity: 60 tablets", 60, true},
		{"Qty 30", 30, true},
		{"x 28", 28, true},
		{"pack of 14", 14, true},
		{"box of 100", 100, true},
		{"no numbers here", 0, false},
	}
	for _, tt := range tests {
		m, ok := Quantity(tt.in)
		if ok != tt.ok {
			t.Errorf("Quantity(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && m.Count != tt.want {
			t.Errorf("Quantity(%q) = %d, want %d", tt.in, m.Count, tt.want)
		}
	}
}

func TestRepeats(t *testing.T) {
	m, ok := Repeats("+ 5 repeats")
	if !ok || m.Count != 5 {
		t.Fatalf("got %v/%v, want 5 repeats", m.Count, ok)
	}
	m, ok = Repeats("2 refills remaining")
	if !ok || m.Count != 2 {
		t.Fatalf("got %v/%v, want 2 refills", m.Count, ok)
	}
	if _, ok := Repeats("repeat after me"); ok {
		t.Error("bare word without a count should not match")
	}
}

func TestICD10(t *testing.T) {
	m, ok := ICD10("Diagnosis: E11.9")
	if !ok || m.Value != "E11" {
		t.Fatalf("got %q/%v, want E11 with suffix dropped", m.Value, ok)
	}

	all := ICD10All("Diagnosis: E11.9, I10 and J45.0")
	if len(all) != 3 {
		t.Fatalf("got %d codes, want 3", len(all))
	}
	want := []string{"E11", "I10", "J45"}
	for i, w := range want {
		if all[i].Value != w {
			t.Errorf("code %d = %q, want %q", i, all[i].Value, w)
		}
	}

	if _, ok := ICD10("no codes in this sentence"); ok {
		t.Error("expected no match")
	}
}

func TestPrescriptionNumber(t *testing.T) {
	m, ok := PrescriptionNumber("Rx No: AB-123/2026")
	if !ok || m.Value != "AB-123/2026" {
		t.Fatalf("got %q/%v", m.Value, ok)
	}
	m, ok = PrescriptionNumber("Prescription # 998877")
	if !ok || m.Value != "998877" {
		t.Fatalf("got %q/%v", m.Value, ok)
	}
}

func TestDoctorName(t *testing.T) {
	m, ok := DoctorName("Prescribed by Dr. sarah naidoo")
	if !ok {
		t.Fatal("expected doctor match")
	}
	if m.Value != "Sarah Naidoo" {
		t.Errorf("got %q, want Sarah Naidoo", m.Value)
	}
}

func TestExplicitTimes(t *testing.T) {
	times := ExplicitTimes("Take at 18h00")
	if len(times) != 1 || times[0] != "18:00" {
		t.Fatalf("got %v, want [18:00]", times)
	}
	times = ExplicitTimes("08:30 and 20:15")
	if len(times) != 2 || times[0] != "08:30" || times[1] != "20:15" {
		t.Fatalf("got %v, want [08:30 20:15]", times)
	}
	if times := ExplicitTimes("no times"); len(times) != 0 {
		t.Fatalf("got %v, want none", times)
	}
}

func TestMedicationName(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"METFORMIN 500mg tablets", "METFORMIN", true},
		{"Panado Extend tablets", "Panado Extend", true},
		{"LANTUS 100units/ml injection", "LANTUS", true},
		{"Take 1 tablet twice daily", "", false},
		{"Quantity: 60 tablets", "", false},
		{"Diagnosis: E11.9, I10", "", false},
		{"Dr. Sarah Naidoo", "", false},
		{"Date prescribed: 15/03/2026", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		m, ok := MedicationName(tt.in)
		if ok != tt.ok {
			t.Errorf("MedicationName(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && m.Value != tt.want {
			t.Errorf("MedicationName(%q) = %q, want %q", tt.in, m.Value, tt.want)
		}
	}
}

func TestFrequency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Take 1 tablet twice daily with meals", "twice daily"},
		{"three times a day after food", "three times a day"},
		{"1 tablet tds", "tds"},
		{"every 8 hours", "every 8 hours"},
		{"twee keer per dag", "twee keer per dag"},
		{"once daily in the morning", "once daily"},
	}
	for _, tt := range tests {
		m, ok := Frequency(tt.in)
		if !ok {
			t.Errorf("Frequency(%q): no match", tt.in)
			continue
		}
		if m.Value != tt.want {
			t.Errorf("Frequency(%q) = %q, want %q", tt.in, m.Value, tt.want)
		}
	}
	if _, ok := Frequency("no frequency here"); ok {
		t.Error("expected no match")
	}
}

func TestFrequencyEarliestMatchWins(t *testing.T) {
	// "twice daily" appears before the bare "daily" fallback could fire.
	m, ok := Frequency("twice daily, not just daily")
	if !ok || m.Value != "twice daily" {
		t.Fatalf("got %q/%v, want twice daily", m.Value, ok)
	}
}

func TestTiming(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Take 1 tablet twice daily with meals", "with meals"},
		{"Inject 20 units once daily at night", "at night"},
		{"one tablet as needed", "as needed"},
		{"saans een tablet", "saans"},
		{"on an empty stomach", "on an empty stomach"},
	}
	for _, tt := range tests {
		m, ok := Timing(tt.in)
		if !ok {
			t.Errorf("Timing(%q): no match", tt.in)
			continue
		}
		if m.Value != tt.want {
			t.Errorf("Timing(%q) = %q, want %q", tt.in, m.Value, tt.want)
		}
	}
}

func TestDates(t *testing.T) {
	d, ok := Date("issued on 2026-03-15, see notes")
	if !ok {
		t.Fatal("expected date match")
	}
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if !d.Time.Equal(want) {
		t.Errorf("got %v, want %v", d.Time, want)
	}

	d, ok = Date("seen 15/03/2026")
	if !ok || !d.Time.Equal(want) {
		t.Errorf("day-first slash form: got %v/%v, want %v", d.Time, ok, want)
	}

	d, ok = Date("signed 15 March 2026")
	if !ok || !d.Time.Equal(want) {
		t.Errorf("month-name form: got %v/%v, want %v", d.Time, ok, want)
	}

	if _, ok := Date("no date at all"); ok {
		t.Error("expected no match")
	}
}

func TestLabelledDates(t *testing.T) {
	text := "Date prescribed: 15/03/2026\nExpiry date: 15/09/2026"

	p, ok := PrescribedDate(text)
	if !ok {
		t.Fatal("expected prescribed date")
	}
	if p.Time.Month() != time.March {
		t.Errorf("prescribed month = %v, want March", p.Time.Month())
	}

	e, ok := ExpiryDate(text)
	if !ok {
		t.Fatal("expected expiry date")
	}
	if e.Time.Month() != time.September {
		t.Errorf("expiry month = %v, want September", e.Time.Month())
	}

	if _, ok := PrescribedDate("prescribed: sometime soon"); ok {
		t.Error("label without a date should not match")
	}
}

func TestInstructions(t *testing.T) {
	m, ok := Instructions("Take 1 tablet twice daily with meals Quantity: 60")
	if !ok {
		t.Fatal("expected instruction match")
	}
	if m.Value != "Take 1 tablet twice daily with meals" {
		t.Errorf("got %q", m.Value)
	}

	m, ok = Instructions("Inject 20 units once daily at night")
	if !ok || m.Value != "Inject 20 units once daily at night" {
		t.Errorf("got %q/%v", m.Value, ok)
	}

	if _, ok := Instructions("METFORMIN 500mg"); ok {
		t.Error("line without an instruction verb should not match")
	}
}
