// Package gate classifies a question as banking-related or not before any
// model call is paid for. This is a plain disjunctive substring test, not NLP.
package gate

import "strings"

// DefaultKeywords is the built-in banking vocabulary.
var DefaultKeywords = []string{
	"bank", "account", "balance", "loan", "emi", "interest",
	"deposit", "withdraw", "atm", "card", "debit", "credit",
	"ifsc", "branch", "cheque", "fd", "rd",
	"fixed deposit", "recurring deposit",
	"kyc", "passbook", "statement", "transaction",
	"savings", "current",
}

// Gate answers the in-domain / out-of-domain question.
type Gate struct {
	keywords []string
}

// New builds a Gate over the default keyword set plus any extra phrases.
func New(extra ...string) *Gate {
	kws := make([]string, 0, len(DefaultKeywords)+len(extra))
	kws = append(kws, DefaultKeywords...)
	for _, k := range extra {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			kws = append(kws, k)
		}
	}
	return &Gate{keywords: kws}
}

// InDomain reports whether the question contains at least one banking keyword.
// Empty or whitespace-only input is out-of-domain.
func (g *Gate) InDomain(question string) bool {
	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return false
	}
	for _, kw := range g.keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}
