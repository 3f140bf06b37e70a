package validate

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"equipment-tracker-backend/internal/model"
)

// Accepted names always come back trimmed and within the length limit.
func TestProperty_AcceptedNamesAreTrimmedAndBounded(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	v := New()

	properties.Property("accepted names are trimmed and at most 100 characters", prop.ForAll(
		func(core string, pad int) bool {
			raw := strings.Repeat(" ", pad) + core + strings.Repeat(" ", pad)
			body := validBody()
			body["name"] = raw

			fields, errs := v.Create(body)
			trimmed := strings.TrimSpace(raw)
			valid := trimmed != "" && utf8.RuneCountInString(trimmed) <= MaxNameLength
			if !valid {
				return len(errs) == 1 && errs[0].Field == FieldName
			}
			return errs == nil && fields.Name == trimmed
		},
		gen.AnyString(),
		gen.IntRange(0, 3),
	))

	properties.TestingRun(t)
}

// Removing any subset of required fields reports exactly those fields.
func TestProperty_CreateReportsEveryMissingField(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)
	v := New()
	order := []string{FieldName, FieldType, FieldStatus, FieldLastCleanedDate}

	properties.Property("one error per missing field, in field order", prop.ForAll(
		func(mask uint8) bool {
			body := validBody()
			var want []string
			for i, f := range order {
				if mask&(1<<i) != 0 {
					delete(body, f)
					want = append(want, f)
				}
			}

			_, errs := v.Create(body)
			if len(errs) != len(want) {
				return false
			}
			for i := range want {
				if errs[i].Field != want[i] {
					return false
				}
			}
			return true
		},
		gen.UInt8Range(0, 15),
	))

	properties.TestingRun(t)
}

// Type and status accept exactly the enumerated values.
func TestProperty_EnumsAreExact(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)
	v := New()

	properties.Property("type accepted iff it is a member", prop.ForAll(
		func(s string) bool {
			_, errs := v.Update(map[string]any{FieldType: s})
			return (errs == nil) == model.EquipmentType(s).Valid()
		},
		gen.OneGenOf(
			gen.OneConstOf("Machine", "Vessel", "Tank", "Mixer", "machine", "Tank ", ""),
			gen.AlphaString(),
		),
	))

	properties.Property("status accepted iff it is a member", prop.ForAll(
		func(s string) bool {
			_, errs := v.Update(map[string]any{FieldStatus: s})
			return (errs == nil) == model.EquipmentStatus(s).Valid()
		},
		gen.OneGenOf(
			gen.OneConstOf("Active", "Inactive", "Under Maintenance", "active", "Under maintenance"),
			gen.AlphaString(),
		),
	))

	properties.TestingRun(t)
}
