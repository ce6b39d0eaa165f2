package service

import (
	"bytes"
	"context"
	"golf-coach/internal/common"
	"golf-coach/internal/model"
	"golf-coach/internal/store"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func intp(v int) *int { return &v }

func TestCreateRoundComputesDifferential(t *testing.T) {
	st, u := seeded(t)
	svc := NewRoundService(st)
	cr := decimal.RequireFromString("72.1")

	r, err := svc.Create(context.Background(), u.ID, model.CreateRoundRequest{
		Date:         "2025-03-02",
		CourseName:   "  Harding Park ",
		TotalScore:   84,
		CourseRating: &cr,
		SlopeRating:  intp(131),
	})
	require.NoError(t, err)
	assert.Equal(t, "Harding Park", r.CourseName)
	assert.Equal(t, "10.3", r.Differential.StringFixed(1))
	assert.Equal(t, model.RoundManual, r.Source)

	got, err := svc.Get(context.Background(), u.ID, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
}

func TestCreateRoundWithoutRatingHasZeroDifferential(t *testing.T) {
	st, u := seeded(t)
	r, err := NewRoundService(st).Create(context.Background(), u.ID, model.CreateRoundRequest{
		Date: "2025-03-02", CourseName: "Lincoln Park", TotalScore: 90,
	})
	require.NoError(t, err)
	assert.True(t, r.Differential.IsZero())
	assert.False(t, r.CourseRating.Valid)
}

func TestCreateRoundValidation(t *testing.T) {
	st, u := seeded(t)
	svc := NewRoundService(st)
	low := decimal.NewFromInt(40)

	cases := map[string]struct {
		req   model.CreateRoundRequest
		field string
	}{
		"bad date":   {model.CreateRoundRequest{Date: "03/02/2025", CourseName: "X", TotalScore: 80}, "date"},
		"blank name": {model.CreateRoundRequest{Date: "2025-03-02", CourseName: "  ", TotalScore: 80}, "courseName"},
		"rating low": {model.CreateRoundRequest{Date: "2025-03-02", CourseName: "X", TotalScore: 80, CourseRating: &low}, "courseRating"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), u.ID, tc.req)
			var ve *common.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tc.field)
		})
	}
}

func TestGetRoundOfOtherUser(t *testing.T) {
	st, u := seeded(t)
	rounds, err := st.ListRounds(context.Background(), u.ID)
	require.NoError(t, err)

	_, err = NewRoundService(st).Get(context.Background(), u.ID+1, rounds[0].ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestExportRounds(t *testing.T) {
	st, u := seeded(t)
	var buf bytes.Buffer
	require.NoError(t, NewRoundService(st).Export(context.Background(), u.ID, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(roundsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, roundColumns, rows[0])
	assert.Equal(t, "2024-12-15", rows[1][0])
	assert.Equal(t, "Pebble Beach Golf Links", rows[1][1])
	assert.Equal(t, "82", rows[1][2])
	assert.Equal(t, "72.1", rows[1][3])
	assert.Equal(t, "8.5", rows[1][5])
}

func TestExportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRoundService(store.NewMemory()).Export(context.Background(), 1, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(roundsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
