package form

const (
	CheckboxInput ElementType = "checkbox"
	ColorInput    ElementType = "color"
	DateInput     ElementType = "date"
	DateTimeInput ElementType = "datetime-local"
	EmailInput    ElementType = "email"
	HiddenInput   ElementType = "hidden"
	MonthInput    ElementType = "month"
	NumberInput   ElementType = "number"
	RadioInput    ElementType = "radio"
	RangeInput    ElementType = "range"
	SearchInput   ElementType = "search"
	TelInput      ElementType = "tel"
	TextInput     ElementType = "text"
	TimeInput     ElementType = "time"
	URLInput      ElementType = "url"
	WeekInput     ElementType = "week"
	TextArea      ElementType = "textarea"
	Select        ElementType = "select"
)

// ElementType defines the type of a form input element:
// https://developer.mozilla.org/en-US/docs/Web/HTML/Element/input
type ElementType string

// HasOptions reports whether elements of this type render their ValueList as
// the set of choices.
func (et ElementType) HasOptions() bool {
	return et == Select || et == RadioInput
}

// Form is the top level type for defining the web form for user input.
type Form struct {
	// The Name appears at the top of the form and in the HTML title.
	Name string `yaml:"name"`
	// The Description appears under the Name.
	Description string `yaml:"description"`
	// Each Section creates a collapsible block with the included elements.
	// Sections are validated in the order they appear here.
	Sections []Section `yaml:"sections"`
	// Rules link the value of one element to the visibility of a group of
	// dependent elements.
	Rules []Rule `yaml:"rules"`
}

// Section represents a single collapsible part of a multi-section form.
type Section struct {
	// ID of the section container.
	ID string `yaml:"id"`
	// Title is shown next to the section toggle.
	Title string `yaml:"title"`
	// The Description appears at the top of the section content.  Simple
	// inline markup is allowed and is sanitized before rendering.
	Description string `yaml:"description"`
	// Each element creates an input field in the section.
	Elements []Element `yaml:"elements"`
}

// Element represents a single form element (field).
type Element struct {
	// ID of the element.  Must be unique.  Defaults to the Name.
	ID string `yaml:"id"`
	// Name of the element.  Used as key to retrieve the value on submission.
	Name string `yaml:"name"`
	// The Label of the field as it appears on the rendered form and in
	// validation messages.
	Label string `yaml:"label"`
	// Whether the element represents a required form field.
	Required bool `yaml:"required"`
	// An optional description for the field.  If set will be displayed under
	// the input field.  Can be used to provide extra information such as input
	// constraints.
	Description string `yaml:"description"`
	// Type is the HTML input element type.
	Type ElementType `yaml:"type"`
	// ValueList should contain a set of values that represent the permissible
	// or recommended options available to the element.  For input type
	// elements, it represents suggested values (datalist).  For select and
	// radio elements, it represents the choices.
	ValueList []string `yaml:"options"`
	// Group is the ID of the dependent container the element is shown in.
	// Elements without a Group are always shown.
	Group string `yaml:"group"`
}

// Rule is a fixed pairwise visibility mapping: the Dependent group is visible
// exactly when the element named Controller holds the Trigger value.
type Rule struct {
	Controller string `yaml:"controller"`
	Trigger    string `yaml:"trigger"`
	Dependent  string `yaml:"dependent"`
}

// ElementID returns the ID of the element, falling back to its Name.
func (e Element) ElementID() string {
	if e.ID != "" {
		return e.ID
	}
	return e.Name
}

// Groups returns the IDs of all dependent groups, in the order the rules
// declare them.
func (f Form) Groups() []string {
	groups := make([]string, 0, len(f.Rules))
	for _, rule := range f.Rules {
		groups = append(groups, rule.Dependent)
	}
	return groups
}
