package learnhub

import "github.com/jimiolaniyan/learnhub/auth"

// TokenIssuer produces an opaque signed credential for a serialized account.
type TokenIssuer interface {
	Issue(p PublicAccount) (string, error)
}

type signerIssuer struct {
	signer *auth.Signer
}

func NewTokenIssuer(s *auth.Signer) TokenIssuer {
	return &signerIssuer{signer: s}
}

func (i *signerIssuer) Issue(p PublicAccount) (string, error) {
	return i.signer.Sign(p.Username, p)
}
