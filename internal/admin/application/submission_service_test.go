package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	admindomain "github.com/sngm3741/halal-food-club/api/internal/admin/domain"
	"github.com/sngm3741/halal-food-club/api/internal/infrastructure/memory"
)

func validSubmitCommand() SubmitCommand {
	return SubmitCommand{
		OwnerUID:      "owner-1",
		Name:          "Al-Madina",
		Cuisines:      []string{"Turkish", " turkish ", "Grill"},
		Address:       "1 Stratford Rd, Birmingham",
		Postcode:      "b111ja",
		Lat:           52.4625,
		Lng:           -1.8848,
		Phone:         "0121 000 0000",
		Website:       "https://almadina.example",
		HygieneRating: "5",
		Menu: []MenuSectionCommand{{
			Section: "Grills",
			Items:   []MenuItemCommand{{Name: "Adana", Price: 12.5}},
		}},
		Gallery: []string{"https://img.example/1.jpg"},
		Email:   "owner@almadina.example",
	}
}

func TestSubmissionService_SubmitCreatesPendingUnpaid(t *testing.T) {
	clock := newTestClock()
	repo := memory.NewSubmissionRepository()
	svc := NewSubmissionService(repo, clock.Now)

	sub, err := svc.Submit(context.Background(), validSubmitCommand())
	require.NoError(t, err)
	require.NotEmpty(t, sub.ID)
	assert.Equal(t, admindomain.StatusPending, sub.Status)
	assert.False(t, sub.Paid)
	assert.Equal(t, admindomain.Postcode("B11 1JA"), sub.Postcode)
	assert.Equal(t, []string{"Turkish", "Grill"}, sub.Cuisines.Strings())
	assert.Equal(t, clock.Now(), sub.CreatedAt)

	pending, err := svc.List(context.Background(), SubmissionFilter{})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, sub.ID, pending[0].ID)
}

func TestSubmissionService_SubmitValidation(t *testing.T) {
	svc := NewSubmissionService(memory.NewSubmissionRepository(), nil)

	cases := map[string]func(*SubmitCommand){
		"cuisines": func(c *SubmitCommand) { c.Cuisines = nil },
		"lat":      func(c *SubmitCommand) { c.Lat = 91 },
		"postcode": func(c *SubmitCommand) { c.Postcode = "12345" },
		"website":  func(c *SubmitCommand) { c.Website = "not a url" },
		"name":     func(c *SubmitCommand) { c.Name = "" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			cmd := validSubmitCommand()
			mutate(&cmd)
			_, err := svc.Submit(context.Background(), cmd)
			var vErr *admindomain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, field, vErr.Field)
		})
	}
}

func TestSubmissionService_DetailForOwner(t *testing.T) {
	svc := NewSubmissionService(memory.NewSubmissionRepository(), nil)
	sub, err := svc.Submit(context.Background(), validSubmitCommand())
	require.NoError(t, err)

	got, err := svc.DetailForOwner(context.Background(), sub.ID, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, sub.ID, got.ID)

	_, err = svc.DetailForOwner(context.Background(), sub.ID, "someone-else")
	require.ErrorIs(t, err, admindomain.ErrNotFound)
}
