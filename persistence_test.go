package soxplugins

import "testing"

func TestPersistenceRoundTrip(t *testing.T) {
	m := NewEffectParameterMap()
	m.SetKindReal("Gain [dB]", -10, 10, 0.01)
	m.SetKindEnum("isWetOnly?", []string{"true", "false"})
	m.SetValue("Gain [dB]", "6.125")
	m.SetValue("isWetOnly?", "true")

	names := m.ParameterNameList()
	first := Serialize("Gain", m, names)

	m2 := NewEffectParameterMap()
	m2.SetKindReal("Gain [dB]", -10, 10, 0.01)
	m2.SetKindEnum("isWetOnly?", []string{"true", "false"})
	Deserialize(first, "Gain", m2)
	second := Serialize("Gain", m2, names)

	if first != second {
		t.Fatalf("round-trip mismatch:\n%q\nvs\n%q", first, second)
	}
}

func TestPersistenceEnumQuoteEscaping(t *testing.T) {
	m := NewEffectParameterMap()
	m.SetKindEnum("Waveform", []string{`Sine`, `"Odd"`})
	m.SetValue("Waveform", `"Odd"`)
	block := Serialize("Phaser", m, m.ParameterNameList())

	m2 := NewEffectParameterMap()
	m2.SetKindEnum("Waveform", []string{`Sine`, `"Odd"`})
	Deserialize(block, "Phaser", m2)

	if got, want := m2.Value("Waveform"), `"Odd"`; got != want {
		t.Fatalf("Value(Waveform) = %q, want %q", got, want)
	}
}

func TestPersistenceTolerratesMalformedLines(t *testing.T) {
	m := NewEffectParameterMap()
	m.SetKindReal("Gain [dB]", -10, 10, 0.01)
	m.SetValue("Gain [dB]", "3")

	block := "Gain\nnot a line\nUnknown Param = 5\nGain [dB] = 7\n"
	Deserialize(block, "Gain", m)

	if got, want := m.Value("Gain [dB]"), "7"; got != want {
		t.Fatalf("Value(Gain [dB]) = %q, want %q", got, want)
	}
}
