package dto_test

import (
	"testing"

	"github.com/SscSPs/general_ledger_app/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, dto.RegisterValidators(v))
	return v
}

func TestJournalEntryRequest_Validation(t *testing.T) {
	v := newValidator(t)
	req := dto.JournalEntryRequest{
		Date:        "2024-01-15",
		Description: "Daily sales",
		Transactions: []dto.TransactionLineRequest{
			{AccountID: 1, Debit: decimal.NewFromInt(10)},
			{AccountID: 2, Credit: decimal.NewFromInt(10)},
		},
	}
	assert.NoError(t, v.Struct(req))

	req.Date = "15/01/2024"
	assert.Error(t, v.Struct(req))

	req.Date = "2024-01-15T10:00:00Z"
	assert.NoError(t, v.Struct(req))

	req.Transactions[0].AccountID = -1
	assert.Error(t, v.Struct(req))
}

func TestJournalEntryRequest_ToInput(t *testing.T) {
	req := dto.JournalEntryRequest{
		Date:         "2024-01-15",
		Reference:    "  SALES001 ",
		Description:  " Daily sales ",
		Transactions: []dto.TransactionLineRequest{{AccountID: 3, Debit: decimal.NewFromInt(5)}},
	}
	in := req.ToInput()
	assert.Equal(t, "SALES001", in.Reference)
	assert.Equal(t, "Daily sales", in.Description)
	require.Len(t, in.Transactions, 1)
	assert.Equal(t, int64(3), in.Transactions[0].AccountID)
}

func TestUpdateProfileRequest(t *testing.T) {
	v := newValidator(t)
	bad := "JPY"
	assert.Error(t, v.Struct(dto.UpdateProfileRequest{Currency: &bad}))

	blank, phone := "  ", " 555-0100 "
	upd := dto.UpdateProfileRequest{FullName: &blank, Phone: &phone}.ToProfileUpdate()
	assert.Nil(t, upd.FullName)
	require.NotNil(t, upd.Phone)
	assert.Equal(t, "555-0100", *upd.Phone)
	assert.True(t, dto.UpdateProfileRequest{Address: &blank}.ToProfileUpdate().IsEmpty())
}
