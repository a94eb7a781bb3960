package mailer

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
	"zylumine/entity"
)

func TestPurchaseCodeMail(t *testing.T) {
	msg, err := PurchaseCodeMail(&entity.Guest{Name: "Ada", Email: "ada@x.com", Code: "482913"})
	require.NoError(t, err)

	assert.Equal(t, "ada@x.com", msg.To)
	assert.Equal(t, "Ada", msg.ToName)
	assert.Equal(t, PurchaseCodeSubject, msg.Subject)
	assert.Contains(t, msg.HTML, "<p>Dear Ada,</p>")
	assert.Contains(t, msg.HTML, ">482913</h2>")
	assert.Contains(t, msg.Text, "Your unique purchase code is: 482913")
}

func TestPurchaseCodeMail_EscapesName(t *testing.T) {
	msg, err := PurchaseCodeMail(&entity.Guest{Name: "<b>Ada</b>", Email: "ada@x.com", Code: "482913"})
	require.NoError(t, err)
	assert.NotContains(t, msg.HTML, "<b>Ada</b>")
	assert.Contains(t, msg.HTML, "&lt;b&gt;Ada&lt;/b&gt;")
}

func TestFeedbackMail(t *testing.T) {
	f := &entity.Feedback{
		Name:        "Ada",
		Rating:      4,
		Quality:     "Great",
		Recommend:   true,
		Comments:    "Lovely packaging",
		SubmittedAt: time.Date(2025, 3, 4, 14, 5, 0, 0, time.UTC),
	}
	msg, err := FeedbackMail("owner@x.com", f)
	require.NoError(t, err)

	assert.Equal(t, "owner@x.com", msg.To)
	assert.Equal(t, "⭐ New Feedback from Ada: 4/5 Stars", msg.Subject)
	assert.Contains(t, msg.HTML, "★★★★☆")
	assert.Contains(t, msg.HTML, "4 out of 5")
	assert.Contains(t, msg.HTML, "✓ Yes")
	assert.Contains(t, msg.HTML, "Lovely packaging")
	assert.Contains(t, msg.Text, "Submitted: Tuesday, March 4, 2025 at 02:05 PM")
	assert.Contains(t, msg.Text, "Rating: 4/5 ★★★★☆")
	assert.Contains(t, msg.Text, "Would Recommend: Yes")
}

func TestFeedbackMail_NoComments(t *testing.T) {
	msg, err := FeedbackMail("owner@x.com", &entity.Feedback{Name: "Bo", Rating: 1, Quality: "Poor", Recommend: true})
	require.NoError(t, err)
	assert.Contains(t, msg.HTML, "No additional comments provided")
	assert.Contains(t, msg.Text, "No comments provided")
}
