package engine

import "strings"

// InferIntent maps free-text chat input onto an analysis intent. Rules,
// in order: wallet wording wins, then honeypot wording, then a
// spam/scam + check + token combination; anything else is treated as a
// honeypot check, the most thorough default.
func InferIntent(text string) Intent {
	t := strings.ToLower(text)

	if strings.Contains(t, "wallet") || strings.Contains(t, "holdings") {
		return IntentWallet
	}
	if strings.Contains(t, "honeypot") || strings.Contains(t, "can't sell") || strings.Contains(t, "cant sell") {
		return IntentHoneypotCheck
	}
	if (strings.Contains(t, "spam") || strings.Contains(t, "scam")) &&
		strings.Contains(t, "check") && strings.Contains(t, "token") {
		return IntentTokenSpamCheck
	}
	return IntentHoneypotCheck
}
