// Package letter composes the personalized thank-you letter and the aftercare
// guide unlocked by a verified purchase code.
package letter

import (
	"fmt"
	"zylumine/entity"
	"zylumine/lib/clock"
)

type CareStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Letter struct {
	Company      string     `json:"company"`
	Tagline      string     `json:"tagline"`
	Greeting     string     `json:"greeting"`
	DeliveryDate string     `json:"deliveryDate"`
	Paragraphs   []string   `json:"paragraphs"`
	Quote        string     `json:"quote"`
	SignOff      string     `json:"signOff"`
	Signature    string     `json:"signature"`
	Care         []CareStep `json:"care"`
}

var careSteps = []CareStep{
	{
		Title:       "Unboxing Ritual",
		Description: "Carefully remove your product from its protective packaging. Take a moment to appreciate the craftsmanship before first use. Document this special moment!",
	},
	{
		Title:       "Initial Setup",
		Description: "Follow the included quick-start guide. Ensure all components are present and properly assembled. Register your product for warranty benefits.",
	},
	{
		Title:       "Regular Maintenance",
		Description: "Clean with a soft, dry cloth weekly. Avoid harsh chemicals and extreme temperatures. Store in a cool, dry place when not in use.",
	},
	{
		Title:       "Handle with Love",
		Description: "Treat your product with care and it will serve you faithfully. Avoid dropping or applying excessive force. Your mindful handling ensures longevity.",
	},
}

// CareGuide returns a copy of the aftercare steps.
func CareGuide() []CareStep {
	steps := make([]CareStep, len(careSteps))
	copy(steps, careSteps)
	return steps
}

// Compose builds the letter for a verified guest; the delivery date is the
// registration time of the guest record.
func Compose(guest *entity.GuestIdentity) *Letter {
	return &Letter{
		Company:      "Zylumine",
		Tagline:      "Crafted with care",
		Greeting:     fmt.Sprintf("Dear %s,", guest.Name),
		DeliveryDate: clock.Date(guest.CreatedAt),
		Paragraphs: []string{
			"Thank you for choosing us. Every piece we send out is prepared by hand, and yours was packed with the same attention we would want for ourselves.",
			"We hope it brings you joy for a long time. The care guide below will help you keep it looking and working its best.",
			"If anything is not as it should be, simply reply to the email that brought you your code and we will make it right.",
		},
		Quote:     "Beautiful things deserve a beautiful beginning.",
		SignOff:   "With gratitude,",
		Signature: "The Zylumine Team",
		Care:      CareGuide(),
	}
}
