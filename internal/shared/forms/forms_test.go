package forms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResult_RejectCollectsPerObject(t *testing.T) {
	result := NewResult()
	require.False(t, result.HasErrors())

	result.Reject("pet", "name", "required")
	result.Reject("pet", "type", "required")

	require.True(t, result.HasErrors())
	require.True(t, result.HasObjectErrors("pet"))
	require.False(t, result.HasObjectErrors("owner"))
	require.True(t, result.HasFieldError("pet", "name"))
	require.False(t, result.HasFieldError("pet", "birthDate"))

	errs := result.FieldErrors("pet")
	require.Len(t, errs, 2)
	require.Equal(t, FieldError{Field: "name", Code: "required"}, errs[0])
}

func TestResult_ByObjectOmitsCleanObjects(t *testing.T) {
	result := NewResult()
	result.Reject("pet", "birthDate", "typeMismatch")

	byObject := result.ByObject()
	require.Len(t, byObject, 1)
	require.Contains(t, byObject, "pet")
	require.NotContains(t, byObject, "owner")
}

func TestResult_ByObjectReturnsCopies(t *testing.T) {
	result := NewResult()
	result.Reject("pet", "name", "required")

	byObject := result.ByObject()
	byObject["pet"][0].Code = "mutated"

	require.Equal(t, "required", result.FieldErrors("pet")[0].Code)
}

func TestHasText(t *testing.T) {
	require.True(t, HasText("Betty"))
	require.True(t, HasText("  Betty  "))
	require.False(t, HasText(""))
	require.False(t, HasText("\t \n"))
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2015-02-12")
	require.NoError(t, err)
	require.Equal(t, time.Date(2015, time.February, 12, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseDate("2015/02/12")
	require.Error(t, err)

	require.Equal(t, "2015-02-12", FormatDate(parsed))
}
