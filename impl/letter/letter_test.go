package letter

import (
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
	"zylumine/entity"
)

func TestCompose(t *testing.T) {
	l := Compose(&entity.GuestIdentity{
		Name:      "Ada",
		Email:     "ada@x.com",
		CreatedAt: time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, "Dear Ada,", l.Greeting)
	assert.Equal(t, "March 4, 2025", l.DeliveryDate)
	assert.Len(t, l.Care, 4)
	assert.Equal(t, "Unboxing Ritual", l.Care[0].Title)
	assert.Equal(t, "Handle with Love", l.Care[3].Title)
}

func TestCareGuide_ReturnsCopy(t *testing.T) {
	steps := CareGuide()
	steps[0].Title = "changed"
	assert.Equal(t, "Unboxing Ritual", CareGuide()[0].Title)
}
