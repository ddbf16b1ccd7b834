package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func bindJSON(t *testing.T, body string, out interface{}) error {
	t.Helper()
	return binding.JSON.BindBody([]byte(body), out)
}

func TestProvisionWalletRequest_SafeID(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		valid bool
	}{
		{"plain uid", `{"uid":"user-123"}`, true},
		{"with dots", `{"uid":"firebase.uid_1"}`, true},
		{"empty", `{"uid":""}`, false},
		{"missing", `{}`, false},
		{"whitespace", `{"uid":"user 1"}`, false},
		{"sql metachars", `{"uid":"u'; DROP TABLE--"}`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var req ProvisionWalletRequest
			err := bindJSON(t, tc.body, &req)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestMintRequest_EthAddr(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		valid bool
	}{
		{"checksummed", `{"to":"0x5FbDB2315678afecb367f032d93F642f64180aa3","amount":"100"}`, true},
		{"lowercase", `{"to":"0x5fbdb2315678afecb367f032d93f642f64180aa3","amount":"0.5"}`, true},
		{"no prefix", `{"to":"5FbDB2315678afecb367f032d93F642f64180aa3","amount":"1"}`, true},
		{"too short", `{"to":"0x1234","amount":"1"}`, false},
		{"not hex", `{"to":"0xZZdB2315678afecb367f032d93F642f64180aa3","amount":"1"}`, false},
		{"missing amount", `{"to":"0x5FbDB2315678afecb367f032d93F642f64180aa3"}`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var req MintRequest
			err := bindJSON(t, tc.body, &req)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestBurnRequest_EthAddr(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		valid bool
	}{
		{"valid", `{"from":"0x5FbDB2315678afecb367f032d93F642f64180aa3","amount":"30"}`, true},
		{"missing from", `{"amount":"30"}`, false},
		{"bad address", `{"from":"0x1234","amount":"30"}`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var req BurnRequest
			err := bindJSON(t, tc.body, &req)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSanitizeStruct(t *testing.T) {
	req := LoginRequest{Username: "  admin  ", Password: "<script>p</script>"}
	SanitizeStruct(&req)
	assert.Equal(t, "admin", req.Username)
	assert.NotContains(t, req.Password, "<script>")
}
