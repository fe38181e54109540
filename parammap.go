// parammap.go - typed, ranged, paged effect-parameter dictionary

package soxplugins

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParameterKind tags the value domain of a parameter entry.
type ParameterKind int

const (
	ParameterKindUnknown ParameterKind = iota
	ParameterKindInt
	ParameterKindReal
	ParameterKindEnum
)

// ChangeKind reports what kind of host-visible change a SetValue call
// produced, so the host can decide whether to repaint a single widget or
// rebuild the whole parameter surface.
type ChangeKind int

const (
	ChangeKindNone ChangeKind = iota
	ChangeKindParameter
	ChangeKindPage
	ChangeKindPageCount
	ChangeKindGlobal
)

func (c ChangeKind) String() string {
	switch c {
	case ChangeKindParameter:
		return "parameterChange"
	case ChangeKindPage:
		return "pageChange"
	case ChangeKindPageCount:
		return "pageCountChange"
	case ChangeKindGlobal:
		return "globalChange"
	default:
		return "noChange"
	}
}

type parameterEntry struct {
	kind        ParameterKind
	lo, hi, step float64 // int/real
	enumValues  []string // enum
	value       string   // canonical string, always set
	pageIndex   int      // -2, -1, 0 (always visible), or >=1
	active      bool
}

// EffectParameterMap is a dictionary from fully qualified parameter names
// (possibly carrying a "k#" page prefix) to typed, ranged, paged entries.
// Insertion order is preserved for ParameterNameList.
type EffectParameterMap struct {
	order   []string
	entries map[string]*parameterEntry
}

// NewEffectParameterMap returns an empty map.
func NewEffectParameterMap() *EffectParameterMap {
	return &EffectParameterMap{entries: map[string]*parameterEntry{}}
}

// SplitParameterName decodes a "k#bareName" prefix into its page index and
// bare name. Names with no "#" have page index 0 (always visible).
func SplitParameterName(name string) (pageIndex int, bareName string) {
	i := strings.IndexByte(name, '#')
	if i < 0 {
		return 0, name
	}
	k, err := strconv.Atoi(name[:i])
	if err != nil {
		return 0, name
	}
	return k, name[i+1:]
}

func (m *EffectParameterMap) register(name string, e *parameterEntry) {
	pageIndex, _ := SplitParameterName(name)
	e.pageIndex = pageIndex
	e.active = pageIndex <= 0
	if _, exists := m.entries[name]; !exists {
		m.order = append(m.order, name)
	}
	m.entries[name] = e
}

// SetKindInt declares an integer parameter with range [lo,hi] and step,
// defaulting to lo.
func (m *EffectParameterMap) SetKindInt(name string, lo, hi, step float64) {
	m.register(name, &parameterEntry{kind: ParameterKindInt, lo: lo, hi: hi, step: step, value: formatReal(lo)})
}

// SetKindReal declares a real parameter with range [lo,hi] and step,
// defaulting to lo.
func (m *EffectParameterMap) SetKindReal(name string, lo, hi, step float64) {
	m.register(name, &parameterEntry{kind: ParameterKindReal, lo: lo, hi: hi, step: step, value: formatReal(lo)})
}

// SetKindEnum declares an enum parameter over values, defaulting to the
// first value.
func (m *EffectParameterMap) SetKindEnum(name string, values []string) {
	def := ""
	if len(values) > 0 {
		def = values[0]
	}
	m.SetKindAndValueEnum(name, values, def)
}

// SetKindAndValueEnum declares an enum parameter over values with an
// explicit default.
func (m *EffectParameterMap) SetKindAndValueEnum(name string, values []string, def string) {
	m.register(name, &parameterEntry{kind: ParameterKindEnum, enumValues: append([]string(nil), values...), value: def})
}

func formatReal(v float64) string {
	return strconv.FormatFloat(roundTo4(v), 'f', -1, 64)
}

// SetValue validates and (if valid) installs v as the parameter's new
// value, returning the resulting change kind. Invalid values are silently
// refused, per the DSP error-handling contract (§7): no panic, no error
// return, just ChangeKindNone.
func (m *EffectParameterMap) SetValue(name string, v string) ChangeKind {
	e, ok := m.entries[name]
	if !ok {
		return ChangeKindNone
	}

	switch e.kind {
	case ParameterKindInt, ParameterKindReal:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < e.lo || f > e.hi || !isMultipleOf(f, e.lo, e.step) {
			return ChangeKindNone
		}
		if e.kind == ParameterKindInt {
			f = clampReal(math.Round(f), e.lo, e.hi)
		}
		newValue := formatReal(f)
		if newValue == e.value {
			return ChangeKindNone
		}
		e.value = newValue
	case ParameterKindEnum:
		found := false
		for _, allowed := range e.enumValues {
			if allowed == v {
				found = true
				break
			}
		}
		if !found {
			return ChangeKindNone
		}
		if v == e.value {
			return ChangeKindNone
		}
		e.value = v
	default:
		return ChangeKindNone
	}

	_, bareName := SplitParameterName(name)
	switch {
	case e.pageIndex == -2:
		return ChangeKindPageCount
	case e.pageIndex == -1:
		return ChangeKindPage
	case bareName == "Effect Kind":
		return ChangeKindGlobal
	default:
		return ChangeKindParameter
	}
}

// Value returns the canonical string value of name, or "" if unknown.
func (m *EffectParameterMap) Value(name string) string {
	e, ok := m.entries[name]
	if !ok {
		return ""
	}
	return e.value
}

// RealValue parses Value(name) as a float64, returning 0 if absent or
// non-numeric. It is the convenience accessor DSP setup code uses to pull
// validated parameters out of the map.
func (m *EffectParameterMap) RealValue(name string) float64 {
	f, _ := strconv.ParseFloat(m.Value(name), 64)
	return f
}

// IsActive reports whether name is currently visible given the last
// ChangeActivenessByPage call.
func (m *EffectParameterMap) IsActive(name string) bool {
	e, ok := m.entries[name]
	if !ok {
		return false
	}
	return e.active
}

// ChangeActivenessByPage updates the active flag of every parameter: page
// 0 parameters and the negative-page selectors (-1#, -2#) are always
// active; page k>0 parameters are active only when page == k.
func (m *EffectParameterMap) ChangeActivenessByPage(page int) {
	for _, e := range m.entries {
		e.active = e.pageIndex <= 0 || e.pageIndex == page
	}
}

// ParameterNameList returns every registered name in insertion order.
func (m *EffectParameterMap) ParameterNameList() []string {
	return append([]string(nil), m.order...)
}

// Kind returns the declared kind of name.
func (m *EffectParameterMap) Kind(name string) ParameterKind {
	e, ok := m.entries[name]
	if !ok {
		return ParameterKindUnknown
	}
	return e.kind
}

// EnumValues returns the allowed values of an enum parameter, or nil.
func (m *EffectParameterMap) EnumValues(name string) []string {
	e, ok := m.entries[name]
	if !ok || e.kind != ParameterKindEnum {
		return nil
	}
	return append([]string(nil), e.enumValues...)
}

func (m *EffectParameterMap) String() string {
	var b strings.Builder
	for _, name := range m.order {
		e := m.entries[name]
		fmt.Fprintf(&b, "%s=%s ", name, e.value)
	}
	return b.String()
}
