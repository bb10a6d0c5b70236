package rate

import (
	"fmt"
	"fxconverter/internal/domain"
	"slices"
)

type CurrencyValidator struct {
	supportedCodesSet map[string]struct{} // read only copy
	supportedCodesLst []string            // read only copy
}

func (v *CurrencyValidator) Validate(code string) error {
	if code == "" {
		return fmt.Errorf("%w: currency code is required", domain.ErrInvalidCurrency)
	}
	if _, ok := v.supportedCodesSet[code]; !ok {
		return fmt.Errorf("%w: %s is not supported, use one of %v", domain.ErrInvalidCurrency, code, v.supportedCodesLst)
	}
	return nil
}

// ValidatePair checks both sides of a conversion; identical codes are allowed.
func (v *CurrencyValidator) ValidatePair(from, to string) error {
	if err := v.Validate(from); err != nil {
		return err
	}
	return v.Validate(to)
}

func (v *CurrencyValidator) SupportedCodes() []string {
	return slices.Clone(v.supportedCodesLst)
}

func NewValidator(supportedCurrencies []string) *CurrencyValidator {
	codesSet := make(map[string]struct{}, len(supportedCurrencies))
	for _, code := range supportedCurrencies {
		codesSet[code] = struct{}{}
	}
	codesLst := make([]string, 0, len(codesSet))
	for code := range codesSet {
		codesLst = append(codesLst, code)
	}
	slices.Sort(codesLst)

	return &CurrencyValidator{
		supportedCodesSet: codesSet,
		supportedCodesLst: codesLst,
	}
}
