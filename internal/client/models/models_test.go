package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginResponse_BearerToken(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"snake", `{"access_token":" a "}`, "a"},
		{"camel", `{"accessToken":"b"}`, "b"},
		{"plain", `{"token":"c"}`, "c"},
		{"snake wins", `{"access_token":"a","token":"c"}`, "a"},
		{"blank skipped", `{"access_token":"  ","token":"c"}`, "c"},
		{"none", `{}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r LoginResponse
			require.NoError(t, json.Unmarshal([]byte(tt.body), &r))
			assert.Equal(t, tt.want, r.BearerToken())
		})
	}
}

func TestSortStaffOrdersNewestFirst(t *testing.T) {
	rows := []StaffOrder{
		{OrderID: 1, CreatedAt: "2025-01-01T10:00:00Z"},
		{OrderID: 2, CreatedAt: "2025-01-03T10:00:00Z"},
		{OrderID: 3, CreatedAt: "2025-01-02T10:00:00Z"},
	}
	SortStaffOrdersNewestFirst(rows)
	assert.Equal(t, []int64{2, 3, 1}, []int64{rows[0].OrderID, rows[1].OrderID, rows[2].OrderID})
}

func TestCashout_Completed(t *testing.T) {
	for status, want := range map[string]bool{
		"paid":      true,
		"PAID_OUT":  true,
		"completed": true,
		"pending":   false,
		"failed":    false,
		"":          false,
	} {
		assert.Equal(t, want, Cashout{Status: status}.Completed(), status)
	}
}

func TestBankInfo(t *testing.T) {
	b := BankInfo{BankName: " Chase ", AccountHolderName: "A", RoutingNumber: "0210", AccountNumber: " 123456789 "}
	assert.True(t, b.Complete())
	assert.Equal(t, "Chase", b.Trimmed().BankName)
	assert.Equal(t, "6789", b.Last4())

	b.RoutingNumber = "   "
	assert.False(t, b.Complete())

	assert.Equal(t, "12", BankInfo{AccountNumber: "12"}.Last4())
}

func TestNormalizeIdentityStatus(t *testing.T) {
	assert.Equal(t, IdentityVerified, NormalizeIdentityStatus(" Verified "))
	assert.Equal(t, IdentityPending, NormalizeIdentityStatus("pending"))
	assert.Equal(t, IdentityStarted, NormalizeIdentityStatus("STARTED"))
	assert.Equal(t, IdentityFailed, NormalizeIdentityStatus("failed"))
	assert.Equal(t, IdentityRequired, NormalizeIdentityStatus("approved"))
	assert.Equal(t, IdentityRequired, NormalizeIdentityStatus(""))
}

func TestProfileResponse_Resolve(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"profile", `{"profile":{"displayName":"P"},"profileExt":{"displayName":"X"}}`, "P"},
		{"ext", `{"profileExt":{"displayName":"X"}}`, "X"},
		{"by id", `{"profileId":7,"profiles":[{"id":3,"displayName":"A"},{"id":7,"displayName":"B"}]}`, "B"},
		{"first", `{"profiles":[{"id":3,"displayName":"A"}]}`, "A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r ProfileResponse
			require.NoError(t, json.Unmarshal([]byte(tt.body), &r))
			p := r.Resolve()
			require.NotNil(t, p)
			assert.Equal(t, tt.want, p.DisplayName)
		})
	}

	assert.Nil(t, ProfileResponse{}.Resolve())
}
