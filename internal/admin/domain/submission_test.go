package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecidePayment(t *testing.T) {
	cases := []struct {
		name    string
		sub     Submission
		ref     string
		want    PaymentDecision
		wantErr error
	}{
		{name: "pending unpaid", sub: Submission{Status: StatusPending}, ref: "ref1", want: PaymentApply},
		{name: "replay", sub: Submission{Status: StatusPending, Paid: true, PaymentReference: "ref1"}, ref: "ref1", want: PaymentReplay},
		{name: "different ref", sub: Submission{Status: StatusPending, Paid: true, PaymentReference: "ref1"}, ref: "ref2", wantErr: ErrDuplicatePayment},
		{name: "approved replay", sub: Submission{Status: StatusApproved, Paid: true, PaymentReference: "ref1"}, ref: "ref1", want: PaymentReplay},
		{name: "approved new ref", sub: Submission{Status: StatusApproved, Paid: true, PaymentReference: "ref1"}, ref: "ref2", wantErr: ErrInvalidTransition},
		{name: "rejected late", sub: Submission{Status: StatusRejected}, ref: "ref1", want: PaymentIgnoredLate},
		{name: "rejected paid other ref", sub: Submission{Status: StatusRejected, Paid: true, PaymentReference: "ref1"}, ref: "ref2", wantErr: ErrInvalidTransition},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.sub.DecidePayment(tc.ref)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCheckApprovable(t *testing.T) {
	assert.NoError(t, (&Submission{Status: StatusPending, Paid: true}).CheckApprovable())
	assert.ErrorIs(t, (&Submission{Status: StatusPending}).CheckApprovable(), ErrPaymentRequired)
	assert.ErrorIs(t, (&Submission{Status: StatusApproved, Paid: true}).CheckApprovable(), ErrInvalidTransition)
	assert.ErrorIs(t, (&Submission{Status: StatusRejected, Paid: true}).CheckApprovable(), ErrInvalidTransition)
}

func TestCheckRejectable(t *testing.T) {
	assert.NoError(t, (&Submission{Status: StatusPending}).CheckRejectable())
	assert.NoError(t, (&Submission{Status: StatusPending, Paid: true}).CheckRejectable())
	assert.ErrorIs(t, (&Submission{Status: StatusApproved}).CheckRejectable(), ErrInvalidTransition)
	assert.ErrorIs(t, (&Submission{Status: StatusRejected}).CheckRejectable(), ErrInvalidTransition)
}

func TestSubmissionPatchApplyKeepsUpdatedAtMonotonic(t *testing.T) {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	sub := Submission{Status: StatusPending, UpdatedAt: now}

	paid := true
	ref := "ref1"
	SubmissionPatch{Paid: &paid, PaymentReference: &ref, UpdatedAt: now.Add(-time.Hour)}.Apply(&sub)

	assert.True(t, sub.Paid)
	assert.Equal(t, "ref1", sub.PaymentReference)
	assert.Equal(t, now, sub.UpdatedAt)
	assert.Equal(t, StatusPending, sub.Status)
}

func TestParseSubmissionStatus(t *testing.T) {
	status, err := ParseSubmissionStatus(" Rejected ")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, status)

	_, err = ParseSubmissionStatus("live")
	assert.True(t, IsValidation(err))
}
