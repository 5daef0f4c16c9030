package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseReminder(t *testing.T) {
	tests := []struct {
		in      string
		want    Reminder
		wantErr bool
	}{
		{in: "", want: ReminderNone},
		{in: "2h", want: ReminderTwoHours},
		{in: "1d", want: ReminderOneDay},
		{in: "3h", wantErr: true},
		{in: "1D", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseReminder(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownReminder)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJoinBullets_DropsBlankLines(t *testing.T) {
	got := JoinBullets([]string{"read ch. 3", "", "   ", "math p.12"})
	assert.Equal(t, "read ch. 3\nmath p.12", got)
}

func TestJoinBullets_AllBlank(t *testing.T) {
	assert.Equal(t, "", JoinBullets([]string{"", " "}))
}

func TestNotebookEntryBullets(t *testing.T) {
	assert.Nil(t, NotebookEntry{}.Bullets())
	assert.Equal(t, []string{"a", "b"}, NotebookEntry{Content: "a\nb"}.Bullets())
}

func TestGradeText(t *testing.T) {
	rank := 3
	g := Grade{Score: 88.5, Rank: &rank}
	assert.Equal(t, "88.5", g.ScoreText())
	assert.Equal(t, "3", g.RankText())

	assert.Equal(t, "90", Grade{Score: 90}.ScoreText())
	assert.Equal(t, "", Grade{}.RankText())
}

func TestQuestionAnswerText(t *testing.T) {
	answer := "x = 4"
	assert.Equal(t, "x = 4", Question{Answer: &answer}.AnswerText())
	assert.Equal(t, "", Question{}.AnswerText())
}
