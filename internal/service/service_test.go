package service

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/study-organizer/internal/apperror"
	"github.com/sakif/study-organizer/internal/calendar"
	"github.com/sakif/study-organizer/internal/model"
	"github.com/sakif/study-organizer/internal/repository/sqlite"
)

// The services run against a real in-memory SQLite store rather than mocks:
// a ":memory:" database costs a few milliseconds and exercises the same SQL
// the binary runs.
func newTestStore(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var seedSubjects = []string{"國文", "英文", "數學"}

func fixedToday(y int, m time.Month, d int) clock {
	return func() time.Time { return calendar.Date(y, m, d) }
}

func TestInitialize(t *testing.T) {
	ctx := context.Background()
	db := newTestStore(t)

	require.NoError(t, Initialize(ctx, db, seedSubjects, testLogger()))
	require.NoError(t, Initialize(ctx, db, seedSubjects, testLogger()), "second run must be a no-op")

	grades := NewGradeService(db, testLogger())
	view, err := grades.Overview(ctx)
	require.NoError(t, err)
	assert.Len(t, view.Subjects, len(seedSubjects))

	profile, err := NewProfileService(db, testLogger()).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultProfileName, profile.Name)
}

func TestInitialize_KeepsExistingSubjects(t *testing.T) {
	ctx := context.Background()
	db := newTestStore(t)
	grades := NewGradeService(db, testLogger())

	_, err := grades.AddSubject(ctx, "Physics")
	require.NoError(t, err)
	require.NoError(t, Initialize(ctx, db, seedSubjects, testLogger()))

	view, err := grades.Overview(ctx)
	require.NoError(t, err)
	require.Len(t, view.Subjects, 1)
	assert.Equal(t, "Physics", view.Subjects[0].Name)
}

func TestProfileService_Update(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(newTestStore(t), testLogger())

	p, err := svc.Update(ctx, "  Amy ", "https://example.com/a.png")
	require.NoError(t, err)
	assert.Equal(t, "Amy", p.Name)
	assert.Equal(t, "https://example.com/a.png", p.AvatarURL)

	// Blank name keeps the old one; blank avatar clears it.
	p, err = svc.Update(ctx, "   ", "")
	require.NoError(t, err)
	assert.Equal(t, "Amy", p.Name)
	assert.Empty(t, p.AvatarURL)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, *p, *got)
}

func TestCalendarService_AddEventAndMonth(t *testing.T) {
	ctx := context.Background()
	svc := NewCalendarService(newTestStore(t), testLogger())
	svc.today = fixedToday(2024, time.May, 20)

	created, err := svc.AddEvent(ctx, NewEvent{
		Title:     "Math test",
		Start:     time.Date(2024, time.May, 10, 9, 0, 0, 0, time.UTC),
		End:       time.Date(2024, time.May, 10, 10, 0, 0, 0, time.UTC),
		Reminder1: model.ReminderTwoHours,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = svc.AddEvent(ctx, NewEvent{
		Title: "June trip",
		Start: time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.June, 1, 18, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	view, err := svc.Month(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2024, view.Year)
	assert.Equal(t, time.May, view.Month)
	assert.Equal(t, time.April, view.PrevMonth)
	assert.Equal(t, time.June, view.NextMonth)
	assert.Len(t, view.Weeks, 5)

	day := calendar.Date(2024, time.May, 10)
	require.Len(t, view.EventsByDay[day], 1)
	assert.Equal(t, "Math test", view.EventsByDay[day][0].Title)
	assert.Equal(t, model.ReminderTwoHours, view.EventsByDay[day][0].Reminder1)
	assert.Len(t, view.EventsByDay, 1, "June events must not leak into May")
}

func TestCalendarService_AddEventValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewCalendarService(newTestStore(t), testLogger())
	start := time.Date(2024, time.May, 10, 9, 0, 0, 0, time.UTC)

	long := make([]rune, MaxEventTitleLength+1)
	for i := range long {
		long[i] = '考'
	}

	tests := []struct {
		name string
		in   NewEvent
	}{
		{name: "blank title", in: NewEvent{Title: "  ", Start: start, End: start}},
		{name: "title too long", in: NewEvent{Title: string(long), Start: start, End: start}},
		{name: "missing start", in: NewEvent{Title: "x", End: start}},
		{name: "unknown reminder", in: NewEvent{Title: "x", Start: start, End: start, Reminder2: "3d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddEvent(ctx, tt.in)
			assert.True(t, apperror.IsValidation(err), "got %v", err)
		})
	}
}

func TestCalendarService_EndBeforeStartAccepted(t *testing.T) {
	svc := NewCalendarService(newTestStore(t), testLogger())
	_, err := svc.AddEvent(context.Background(), NewEvent{
		Title: "backwards",
		Start: time.Date(2024, time.May, 10, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.May, 10, 9, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
}

func TestCalendarService_MonthValidation(t *testing.T) {
	svc := NewCalendarService(newTestStore(t), testLogger())

	_, err := svc.Month(context.Background(), 2024, 13)
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Month(context.Background(), 10000, 1)
	assert.True(t, apperror.IsValidation(err))
}

func TestCalendarService_DeleteEvent(t *testing.T) {
	ctx := context.Background()
	svc := NewCalendarService(newTestStore(t), testLogger())

	created, err := svc.AddEvent(ctx, NewEvent{
		Title: "Math test",
		Start: time.Date(2024, time.May, 10, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.May, 10, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	deleted, err := svc.DeleteEvent(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Start, deleted.Start)

	_, err = svc.DeleteEvent(ctx, created.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCheckinService_Toggle(t *testing.T) {
	ctx := context.Background()
	svc := NewCheckinService(newTestStore(t), testLogger())
	svc.today = fixedToday(2024, time.May, 3)
	day := time.Date(2024, time.May, 3, 17, 30, 0, 0, time.UTC)

	for range 2 {
		c, err := svc.Toggle(ctx, day, true)
		require.NoError(t, err)
		assert.True(t, c.Checked)
	}

	view, err := svc.Month(ctx, 2024, 5)
	require.NoError(t, err)
	require.Len(t, view.ByDay, 1)
	assert.True(t, view.ByDay[calendar.Date(2024, time.May, 3)].Checked)
	assert.Equal(t, calendar.Date(2024, time.May, 3), view.Today)

	c, err := svc.Toggle(ctx, day, false)
	require.NoError(t, err)
	assert.False(t, c.Checked)

	_, err = svc.Toggle(ctx, time.Time{}, true)
	assert.True(t, apperror.IsValidation(err))
}

func TestQuestionService(t *testing.T) {
	ctx := context.Background()
	svc := NewQuestionService(newTestStore(t), testLogger())

	q, err := svc.Ask(ctx, "   ")
	require.NoError(t, err)
	assert.Nil(t, q, "blank question must not be stored")

	q, err = svc.Ask(ctx, " What is 2+2? ")
	require.NoError(t, err)
	assert.Equal(t, "What is 2+2?", q.Text)

	answered, err := svc.Answer(ctx, q.ID, " 4 ")
	require.NoError(t, err)
	require.NotNil(t, answered.Answer)
	assert.Equal(t, "4", *answered.Answer)

	cleared, err := svc.Answer(ctx, q.ID, "")
	require.NoError(t, err)
	assert.Nil(t, cleared.Answer)

	_, err = svc.Answer(ctx, q.ID+100, "x")
	assert.True(t, apperror.IsNotFound(err))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestNotebookService(t *testing.T) {
	ctx := context.Background()
	svc := NewNotebookService(newTestStore(t), testLogger())
	svc.today = fixedToday(2024, time.May, 10)

	page, err := svc.Page(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, calendar.Date(2024, time.May, 10), page.Date)
	assert.Equal(t, []string{""}, page.Bullets)

	day := calendar.Date(2024, time.May, 10)
	_, err = svc.Save(ctx, day, []string{"Read ch.3", "", "Homework p.12"})
	require.NoError(t, err)
	page, err = svc.Page(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, []string{"Read ch.3", "Homework p.12"}, page.Bullets)

	_, err = svc.Save(ctx, day, []string{"Only this"})
	require.NoError(t, err)
	page, err = svc.Page(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, []string{"Only this"}, page.Bullets, "save replaces the whole entry")
}

func TestGradeService(t *testing.T) {
	ctx := context.Background()
	svc := NewGradeService(newTestStore(t), testLogger())

	_, err := svc.AddSubject(ctx, " ")
	assert.True(t, apperror.IsValidation(err))

	physics, err := svc.AddSubject(ctx, " Physics ")
	require.NoError(t, err)
	assert.Equal(t, "Physics", physics.Name)

	rank := 3
	g, err := svc.AddGrade(ctx, NewGrade{
		Date:      calendar.Date(2024, time.May, 17),
		SubjectID: physics.ID,
		Score:     88.5,
		Rank:      &rank,
	})
	require.NoError(t, err)
	assert.Equal(t, "Physics", g.Subject.Name)

	view, err := svc.Overview(ctx)
	require.NoError(t, err)
	require.Len(t, view.Grades, 1)
	assert.Equal(t, "88.5", view.Grades[0].ScoreText())
	assert.Equal(t, "3", view.Grades[0].RankText())

	_, err = svc.AddGrade(ctx, NewGrade{Date: calendar.Date(2024, 5, 17), SubjectID: physics.ID + 99, Score: 1})
	assert.True(t, apperror.IsNotFound(err))

	_, err = svc.AddGrade(ctx, NewGrade{Date: calendar.Date(2024, 5, 17), SubjectID: physics.ID, Score: math.NaN()})
	assert.True(t, apperror.IsValidation(err))

	require.NoError(t, svc.DeleteGrade(ctx, g.ID))
	assert.True(t, apperror.IsNotFound(svc.DeleteGrade(ctx, g.ID)))
}
