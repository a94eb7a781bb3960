package mailer

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"
	"zylumine/entity"
	"zylumine/lib/clock"
)

const PurchaseCodeSubject = "Your Purchase Code from Zylumine"

const purchaseCodeHTML = `<p>Dear {{.Name}},</p>
<p>Thank you for your purchase! Your unique purchase code is:</p>
<h2 style="font-family: monospace; background-color: #f0f0f0; padding: 10px; display: inline-block;">{{.Code}}</h2>
<p>Please keep this code safe as it will be required for future reference.</p>
<p>Best regards,<br/>Zylumine Team</p>
`

const purchaseCodeText = `Dear {{.Name}},

Thank you for your purchase! Your unique purchase code is: {{.Code}}

Please keep this code safe as it will be required for future reference.

Best regards,
Zylumine Team
`

const feedbackHTML = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>New Feedback Received</title>
  </head>
  <body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f4f5;">
    <table width="100%" cellpadding="0" cellspacing="0" style="background-color: #f4f4f5; padding: 40px 20px;">
      <tr><td align="center">
        <table width="600" cellpadding="0" cellspacing="0" style="background-color: #ffffff; border-radius: 16px;">
          <tr>
            <td style="background: #7c3aed; padding: 40px; text-align: center;">
              <h1 style="color: #ffffff; margin: 0; font-size: 28px;">New Feedback Received</h1>
              <p style="color: #ede9fe; margin: 10px 0 0 0; font-size: 14px;">{{.Submitted}}</p>
            </td>
          </tr>
          <tr>
            <td style="padding: 40px;">
              <div style="background-color: #faf5ff; border-radius: 12px; padding: 24px; margin-bottom: 24px; text-align: center;">
                <p style="margin: 0 0 8px 0; font-size: 14px; color: #6b7280; text-transform: uppercase;">Overall Rating</p>
                <p style="margin: 0; font-size: 36px; color: #eab308;">{{.Stars}}</p>
                <p style="margin: 8px 0 0 0; font-size: 24px; font-weight: 700; color: #1f2937;">{{.Rating}} out of 5</p>
              </div>
              <table width="100%" cellpadding="0" cellspacing="0" style="margin-bottom: 24px;">
                <tr>
                  <td width="48%" style="background-color: #f0fdf4; border-radius: 12px; padding: 20px;">
                    <p style="margin: 0 0 4px 0; font-size: 12px; color: #6b7280; text-transform: uppercase;">Quality Rating</p>
                    <p style="margin: 0; font-size: 18px; font-weight: 600; color: #166534;">{{.Quality}}</p>
                  </td>
                  <td width="4%"></td>
                  <td width="48%" style="background-color: {{if .Recommend}}#f0fdf4{{else}}#fef2f2{{end}}; border-radius: 12px; padding: 20px;">
                    <p style="margin: 0 0 4px 0; font-size: 12px; color: #6b7280; text-transform: uppercase;">Would Recommend</p>
                    <p style="margin: 0; font-size: 18px; font-weight: 600; color: {{if .Recommend}}#166534{{else}}#dc2626{{end}};">{{if .Recommend}}✓ Yes{{else}}✗ No{{end}}</p>
                  </td>
                </tr>
              </table>
              {{if .Comments}}
              <div style="background-color: #f9fafb; border-radius: 12px; padding: 24px; border-left: 4px solid #8b5cf6;">
                <p style="margin: 0 0 12px 0; font-size: 12px; color: #6b7280; text-transform: uppercase;">Customer Comments</p>
                <p style="margin: 0; font-size: 16px; color: #374151; line-height: 1.6; font-style: italic;">"{{.Comments}}"</p>
              </div>
              {{else}}
              <div style="background-color: #f9fafb; border-radius: 12px; padding: 24px; text-align: center;">
                <p style="margin: 0; font-size: 14px; color: #9ca3af;">No additional comments provided</p>
              </div>
              {{end}}
            </td>
          </tr>
          <tr>
            <td style="background-color: #f9fafb; padding: 24px 40px; text-align: center; border-top: 1px solid #e5e7eb;">
              <p style="margin: 0; font-size: 12px; color: #9ca3af;">This feedback was submitted through your website's feedback form.</p>
              <p style="margin: 8px 0 0 0; font-size: 12px; color: #9ca3af;">© {{.Year}} Zylumine. All rights reserved.</p>
            </td>
          </tr>
        </table>
      </td></tr>
    </table>
  </body>
</html>
`

const feedbackText = `New Feedback Received
=====================
Submitted: {{.Submitted}}
Rating: {{.Rating}}/5 {{.Stars}}
Quality: {{.Quality}}
Would Recommend: {{if .Recommend}}Yes{{else}}No{{end}}
Comments:
{{if .Comments}}{{.Comments}}{{else}}No comments provided{{end}}
---
This feedback was submitted through your website's feedback form.
`

var (
	purchaseCodeHTMLTmpl = htmltemplate.Must(htmltemplate.New("code.html").Parse(purchaseCodeHTML))
	purchaseCodeTextTmpl = texttemplate.Must(texttemplate.New("code.txt").Parse(purchaseCodeText))
	feedbackHTMLTmpl     = htmltemplate.Must(htmltemplate.New("feedback.html").Parse(feedbackHTML))
	feedbackTextTmpl     = texttemplate.Must(texttemplate.New("feedback.txt").Parse(feedbackText))
)

func render(html *htmltemplate.Template, text *texttemplate.Template, data any) (string, string, error) {
	var h, t bytes.Buffer
	if err := html.Execute(&h, data); err != nil {
		return "", "", err
	}
	if err := text.Execute(&t, data); err != nil {
		return "", "", err
	}
	return h.String(), t.String(), nil
}

// PurchaseCodeMail renders the code delivery mail for a freshly registered guest.
func PurchaseCodeMail(guest *entity.Guest) (*entity.MailMessage, error) {
	data := struct{ Name, Code string }{guest.Name, guest.Code}
	html, text, err := render(purchaseCodeHTMLTmpl, purchaseCodeTextTmpl, data)
	if err != nil {
		return nil, err
	}
	return &entity.MailMessage{
		To:      guest.Email,
		ToName:  guest.Name,
		Subject: PurchaseCodeSubject,
		HTML:    html,
		Text:    text,
	}, nil
}

// FeedbackSubject is e.g. "⭐ New Feedback from Ada: 4/5 Stars".
func FeedbackSubject(f *entity.Feedback) string {
	return fmt.Sprintf("⭐ New Feedback from %s: %d/5 Stars", f.Name, f.Rating)
}

// FeedbackMail renders the operator summary of one feedback submission.
func FeedbackMail(to string, f *entity.Feedback) (*entity.MailMessage, error) {
	quality := f.Quality
	if quality == "" {
		quality = "Not specified"
	}
	submitted := f.SubmittedAt
	if submitted.IsZero() {
		submitted = time.Now()
	}
	data := struct {
		Submitted string
		Stars     string
		Rating    int
		Quality   string
		Recommend bool
		Comments  string
		Year      int
	}{
		Submitted: clock.DateTime(submitted),
		Stars:     f.Stars(),
		Rating:    f.Rating,
		Quality:   quality,
		Recommend: f.Recommend,
		Comments:  f.Comments,
		Year:      time.Now().Year(),
	}
	html, text, err := render(feedbackHTMLTmpl, feedbackTextTmpl, data)
	if err != nil {
		return nil, err
	}
	return &entity.MailMessage{
		To:      to,
		Subject: FeedbackSubject(f),
		HTML:    html,
		Text:    text,
	}, nil
}
