package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expected  Date
		expectErr bool
	}{
		{name: "Calendar date", raw: "2024-01-01", expected: NewDate(2024, time.January, 1)},
		{name: "UTC datetime", raw: "2024-03-05T10:20:30Z", expected: NewDate(2024, time.March, 5)},
		{name: "Datetime with millis", raw: "2024-03-05T10:20:30.123Z", expected: NewDate(2024, time.March, 5)},
		{name: "Offset crosses midnight", raw: "2024-03-05T23:30:00-05:00", expected: NewDate(2024, time.March, 6)},
		{name: "Local datetime", raw: "2024-03-05T08:00:00", expected: NewDate(2024, time.March, 5)},
		{name: "Impossible day", raw: "2024-02-30", expectErr: true},
		{name: "Not a date", raw: "yesterday", expectErr: true},
		{name: "Empty", raw: "", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate(tc.raw)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(got.Time), "expected %s, got %s", tc.expected, got)
		})
	}
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2024, time.January, 1)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-01"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-01-01T12:00:00Z"`), &back))
	assert.Equal(t, "2024-01-01", back.String())

	assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &back))
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-05-06", d.String())

	require.NoError(t, d.Scan("2024-05-07 00:00:00+00:00"))
	assert.Equal(t, "2024-05-07", d.String())

	require.NoError(t, d.Scan([]byte("2024-05-08")))
	assert.Equal(t, "2024-05-08", d.String())

	assert.Error(t, d.Scan(42))
}

func TestEnums(t *testing.T) {
	assert.True(t, TypeMixer.Valid())
	assert.False(t, EquipmentType("Oven").Valid())
	assert.False(t, EquipmentType("mixer").Valid(), "membership is case sensitive")

	assert.True(t, StatusUnderMaintenance.Valid())
	assert.False(t, EquipmentStatus("Broken").Valid())

	assert.Equal(t, "Machine, Vessel, Tank, Mixer", TypeNames())
	assert.Equal(t, "Active, Inactive, Under Maintenance", StatusNames())
}

func TestPatch_Apply(t *testing.T) {
	base := Equipment{
		ID:              NewID(),
		Name:            "Mixer-1",
		Type:            TypeMixer,
		Status:          StatusActive,
		LastCleanedDate: NewDate(2024, time.January, 1),
	}

	status := StatusInactive
	got := Patch{Status: &status}.Apply(base)

	assert.Equal(t, StatusInactive, got.Status)
	assert.Equal(t, base.Name, got.Name)
	assert.Equal(t, base.Type, got.Type)
	assert.Equal(t, base.LastCleanedDate, got.LastCleanedDate)
	assert.Equal(t, base.ID, got.ID)

	assert.True(t, Patch{}.Empty())
	assert.False(t, Patch{Status: &status}.Empty())
	assert.Equal(t, FieldsOf(base), FieldsOf(PatchOf(FieldsOf(base)).Apply(Equipment{})))
}

func TestIDs(t *testing.T) {
	a, b := NewID(), NewID()
	assert.Len(t, a, 24)
	assert.NotEqual(t, a, b)
	assert.True(t, ValidID(a))
	assert.False(t, ValidID("123"))
	assert.False(t, ValidID("zzzzzzzzzzzzzzzzzzzzzzzz"))
	assert.False(t, ValidID(""))
}
