package engine

import "testing"

func TestInferIntent(t *testing.T) {
	tests := []struct {
		text string
		want Intent
	}{
		{"check wallet 0xabc", IntentWallet},
		{"what are the holdings of 0xabc", IntentWallet},
		{"is 0xabc a honeypot?", IntentHoneypotCheck},
		{"bought 0xabc and now I can't sell", IntentHoneypotCheck},
		{"cant sell this token 0xabc", IntentHoneypotCheck},
		{"check this token 0xabc for spam", IntentTokenSpamCheck},
		{"scam check on token 0xabc please", IntentTokenSpamCheck},
		{"0xabc", IntentHoneypotCheck},
		{"is this safe", IntentHoneypotCheck},
		// "wallet" outranks honeypot wording when both appear.
		{"did this wallet buy a honeypot", IntentWallet},
	}
	for _, tt := range tests {
		if got := InferIntent(tt.text); got != tt.want {
			t.Errorf("InferIntent(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
