package result_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lewisTech25code/lewis/core"
	"github.com/lewisTech25code/lewis/core/result"
	dummydb "github.com/lewisTech25code/lewis/storage/database/dummy"
)

func setup() (*result.Service, *validator.Validate) {
	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())
	return result.NewService(dummydb.NewResultRepository(dummydb.Open())), validate
}

func add(t *testing.T, svc *result.Service, validate *validator.Validate, nr result.NewResult) result.Result {
	t.Helper()
	require.NoError(t, nr.Validate(context.Background(), validate))
	res, err := svc.Add(context.Background(), nr)
	require.NoError(t, err)
	return res
}

func TestService_AddAndList(t *testing.T) {
	ctx := context.Background()
	svc, validate := setup()

	math := add(t, svc, validate, result.NewResult{StudentID: "2", Subject: " Math ", Marks: "85"})
	add(t, svc, validate, result.NewResult{StudentID: "3", Subject: "Math", Marks: "40"})
	eng := add(t, svc, validate, result.NewResult{StudentID: "2", Subject: "English", Marks: "70"})
	again := add(t, svc, validate, result.NewResult{StudentID: "2", Subject: "Math", Marks: "60"})

	assert.Equal(t, "Math", math.Subject)
	assert.Equal(t, 85, math.Marks)
	assert.Equal(t, result.Mastery, math.Band())

	got, err := svc.ListForStudent(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []result.Result{math, eng, again}, got)

	got, err = svc.ListForStudent(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_AddOrphanAndOutOfRange(t *testing.T) {
	ctx := context.Background()
	svc, validate := setup()

	res := add(t, svc, validate, result.NewResult{StudentID: "999", Subject: "Physics", Marks: "150"})
	assert.Equal(t, 999, res.StudentID)
	assert.Equal(t, result.Mastery, res.Band())

	res = add(t, svc, validate, result.NewResult{StudentID: "999", Subject: "Physics", Marks: "-3"})
	assert.Equal(t, result.NotYetCompetent, res.Band())

	got, err := svc.ListForStudent(ctx, 999)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestNewResult_Validate(t *testing.T) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	tests := []struct {
		name string
		nr   result.NewResult
		want map[string]string
	}{
		{name: "valid", nr: result.NewResult{StudentID: "1", Subject: "Math", Marks: "50"}},
		{
			name: "missing",
			nr:   result.NewResult{},
			want: map[string]string{
				"student_id": "this field is required",
				"subject":    "this field is required",
				"marks":      "this field is required",
			},
		},
		{
			name: "not numbers",
			nr:   result.NewResult{StudentID: "abc", Subject: "Math", Marks: "high"},
			want: map[string]string{
				"student_id": "a whole number is required",
				"marks":      "a whole number is required",
			},
		},
		{
			name: "blank subject",
			nr:   result.NewResult{StudentID: "1", Subject: "   ", Marks: "50"},
			want: map[string]string{"subject": "this field is required"},
		},
		{
			name: "overflow",
			nr:   result.NewResult{StudentID: "1", Subject: "Math", Marks: "99999999999999999999"},
			want: map[string]string{"marks": "a whole number is required"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := core.TranslateErrors(tc.nr.Validate(context.Background(), validate), translator)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			require.IsType(t, &core.ValidationError{}, err)
			assert.Equal(t, tc.want, err.(*core.ValidationError).FieldMap())
		})
	}
}

func TestService_AddParsesForm(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup()

	res, err := svc.Add(ctx, result.NewResult{StudentID: " 7 ", Subject: " Biology ", Marks: "55"})
	require.NoError(t, err)
	assert.Equal(t, 7, res.StudentID)
	assert.Equal(t, "Biology", res.Subject)
	assert.Equal(t, 55, res.Marks)
	assert.Equal(t, result.Competent, res.Band())

	_, err = svc.Add(ctx, result.NewResult{StudentID: "7", Subject: "Biology", Marks: ""})
	require.IsType(t, &core.ValidationError{}, err)
	assert.Equal(t, map[string]string{"marks": "a whole number is required"}, err.(*core.ValidationError).FieldMap())

	got, err := svc.ListForStudent(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = svc.ListForStudent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
