package signals

// spamKeywords are the marketing/fraud trigger phrases scored by the default
// spam counter. All lowercase; matched as substrings.
var spamKeywords = []string{
	"urgent", "cheap", "limited offer", "100% original", "guaranteed",
	"best price", "free delivery", "whatsapp", "call now", "promotion",
	"genuine", "no scam",
}

// uaePhonePattern matches UAE mobile numbers: optional country code, the 05x
// mobile prefix, then digit groups with optional spacing.
const uaePhonePattern = `(\+971|971)?\s*5\d\s*\d{3}\s*\d{4}`

const emailPattern = `[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`

// SpamKeywords returns the default spam trigger-phrase counter.
func SpamKeywords() *KeywordCounter {
	return NewKeywordCounter("spam_kw", spamKeywords)
}

// UAEPhone returns the default phone detector for the UAE locale.
func UAEPhone() *PatternDetector {
	d, err := NewPatternDetector("has_phone", uaePhonePattern)
	if err != nil {
		panic(err) // static pattern, cannot fail
	}
	return d
}

// Email returns the default email address detector.
func Email() *PatternDetector {
	d, err := NewPatternDetector("has_email", emailPattern)
	if err != nil {
		panic(err) // static pattern, cannot fail
	}
	return d
}
