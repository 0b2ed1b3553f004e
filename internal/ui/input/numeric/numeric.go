// Package numeric restricts text-entry widgets to numeric content. A
// Filter decides which runes may enter the field; a Field binds one
// widget to one external variable and moves the value between them.
package numeric

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

// Filter is the admission policy for one numeric field.
type Filter struct {
	// Float admits a single decimal point.
	Float bool
	// Signed admits a leading minus as the first character.
	Signed bool
}

// CheckRune reports whether r may appear at rune position pos given the
// rest of the content. Digits are always admissible; a sign only at the
// start of a signed field; a decimal point only once in a float field.
func (f Filter) CheckRune(r rune, pos int, content string) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r == '-':
		return f.Signed && pos == 0
	case r == '.':
		return f.Float && !strings.ContainsRune(content, '.')
	default:
		return false
	}
}

// Check validates complete field content against the policy. The empty
// string and partial entries like "-" or "3." pass: they are legitimate
// states while typing, and parsing is the transfer step's job.
func (f Filter) Check(s string) error {
	decimals := 0
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '-':
			if !f.Signed {
				return fmt.Errorf("sign not allowed in unsigned field")
			}
			if i != 0 {
				return fmt.Errorf("sign only allowed as the first character")
			}
		case r == '.':
			if !f.Float {
				return fmt.Errorf("decimal point not allowed in integer field")
			}
			decimals++
			if decimals > 1 {
				return fmt.Errorf("more than one decimal point")
			}
		default:
			return fmt.Errorf("invalid character %q in numeric field", r)
		}
	}
	return nil
}

// Field binds a text input to one external numeric variable. Exactly one
// of the two pointers is set, fixing the field as integer or float.
type Field struct {
	Input textinput.Model

	filter   Filter
	intPtr   *int
	floatPtr *float64
}

// NewIntField creates a field bound to an integer variable.
func NewIntField(target *int, signed bool) *Field {
	return newField(Filter{Signed: signed}, target, nil)
}

// NewFloatField creates a field bound to a float variable.
func NewFloatField(target *float64, signed bool) *Field {
	return newField(Filter{Float: true, Signed: signed}, nil, target)
}

func newField(filter Filter, intPtr *int, floatPtr *float64) *Field {
	f := &Field{
		filter:   filter,
		intPtr:   intPtr,
		floatPtr: floatPtr,
	}
	f.Input = textinput.New()
	f.Input.CharLimit = 16
	f.Input.Validate = filter.Check
	return f
}

// Filter returns the field's admission policy.
func (f *Field) Filter() Filter {
	return f.filter
}

// TransferToWidget writes the bound variable's value into the widget.
func (f *Field) TransferToWidget() {
	switch {
	case f.intPtr != nil:
		f.Input.SetValue(strconv.Itoa(*f.intPtr))
	case f.floatPtr != nil:
		f.Input.SetValue(strconv.FormatFloat(*f.floatPtr, 'f', -1, 64))
	}
}

// TransferFromWidget parses the widget content into the bound variable.
// The variable is untouched when the content does not parse.
func (f *Field) TransferFromWidget() error {
	text := strings.TrimSpace(f.Input.Value())
	switch {
	case f.intPtr != nil:
		v, err := strconv.Atoi(text)
		if err != nil {
			return fmt.Errorf("not a whole number: %q", text)
		}
		if !f.filter.Signed && v < 0 {
			return fmt.Errorf("negative value in unsigned field: %q", text)
		}
		*f.intPtr = v
	case f.floatPtr != nil:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fmt.Errorf("not a number: %q", text)
		}
		if !f.filter.Signed && v < 0 {
			return fmt.Errorf("negative value in unsigned field: %q", text)
		}
		*f.floatPtr = v
	}
	return nil
}

// Clone returns a fresh field with the same policy and binding. The new
// widget starts empty and unfocused.
func (f *Field) Clone() *Field {
	return newField(f.filter, f.intPtr, f.floatPtr)
}
