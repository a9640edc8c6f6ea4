package validation

// NilModelMessage is the single failure message reported for an absent
// candidate object.
const NilModelMessage = "Model cannot be null."

// Failure describes one rule violation. Field is empty when the failure is
// not attributable to a single field (the nil-model case).
type Failure struct {
	Field   string
	Message string
	Code    string
}

// Rule is a single predicate bound to exactly one ErrorCode. Check returns
// true when the candidate satisfies the rule.
type Rule[T any] struct {
	Field string
	Check func(T) bool
	Error ErrorCode
}

// Validator evaluates an ordered list of rules against a candidate object.
type Validator[T any] struct {
	rules []Rule[T]
}

// New builds a validator from rules. Rules are evaluated in the order given.
func New[T any](rules ...Rule[T]) *Validator[T] {
	return &Validator[T]{rules: rules}
}

// Validate checks candidate against every rule in declaration order and
// returns the accumulated failures. A nil candidate short-circuits all field
// rules and yields a single model-level failure.
func (v *Validator[T]) Validate(candidate *T) []Failure {
	if candidate == nil {
		return []Failure{{Message: NilModelMessage, Code: FieldNull.Code}}
	}

	var failures []Failure
	for _, r := range v.rules {
		if !r.Check(*candidate) {
			failures = append(failures, Failure{
				Field:   r.Field,
				Message: r.Error.Message,
				Code:    r.Error.Code,
			})
		}
	}
	return failures
}

// NotEmpty requires a non-empty string field.
func NotEmpty[T any](field string, get func(T) string) Rule[T] {
	return Rule[T]{
		Field: field,
		Check: func(t T) bool { return get(t) != "" },
		Error: FieldEmpty,
	}
}

// LengthBetween requires the string field length to be inside [min, max].
func LengthBetween[T any](field string, get func(T) string, min, max int) Rule[T] {
	return Rule[T]{
		Field: field,
		Check: func(t T) bool {
			n := len(get(t))
			return n >= min && n <= max
		},
		Error: FieldLengthBetween(min, max),
	}
}

// GreaterThan requires an integer field to be strictly greater than value.
func GreaterThan[T any](field string, get func(T) int, value int) Rule[T] {
	return Rule[T]{
		Field: field,
		Check: func(t T) bool { return get(t) > value },
		Error: FieldNotGreater(value),
	}
}

// Between requires an integer field to be inside [min, max].
func Between[T any](field string, get func(T) int, min, max int) Rule[T] {
	return Rule[T]{
		Field: field,
		Check: func(t T) bool {
			v := get(t)
			return v >= min && v <= max
		},
		Error: FieldValueBetween(min, max),
	}
}

// Unique requires the candidate to satisfy an injected uniqueness predicate.
// The predicate carries its comparison data; the validator never queries
// storage itself.
func Unique[T any](field string, pred func(T) bool) Rule[T] {
	return Rule[T]{
		Field: field,
		Check: pred,
		Error: FieldNotUnique,
	}
}
