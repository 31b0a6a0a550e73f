package token

import (
	authmw "sedprefill/pkg/platform/middleware/auth"
)

// ValidatorAdapter narrows the full claims down to what the auth middleware
// consumes.
type ValidatorAdapter struct {
	validator *Validator
}

func NewValidatorAdapter(validator *Validator) *ValidatorAdapter {
	return &ValidatorAdapter{validator: validator}
}

func (a *ValidatorAdapter) ValidateToken(tokenString string) (*authmw.Claims, error) {
	claims, err := a.validator.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &authmw.Claims{Subject: claims.Subject}, nil
}
