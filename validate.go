package web

// SelfValidator is implemented by Bind targets that validate themselves.
type SelfValidator interface {
	Validate() error
}

// Validator validates any bound value.
type Validator interface {
	Validate(v any) error
}

// ValidatorFunc adapts a function into a Validator.
type ValidatorFunc func(v any) error

// Validate calls f(v).
func (f ValidatorFunc) Validate(v any) error { return f(v) }

// validate runs constraint tags, then SelfValidator, then each validator in order.
func validate(v any, validators []Validator) error {
	if err := validateConstraints(v); err != nil {
		return err
	}
	if sv, ok := v.(SelfValidator); ok {
		if err := sv.Validate(); err != nil {
			return err
		}
	}
	for _, val := range validators {
		if err := val.Validate(v); err != nil {
			return err
		}
	}
	return nil
}
