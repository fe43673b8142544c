package form

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidForm is returned when a form definition can't back a
	// Controller.
	ErrInvalidForm = errors.New("invalid form definition")
	// ErrSectionRange is returned for a section index outside the form.
	ErrSectionRange = errors.New("section index out of range")
	// ErrUnknownField is returned when a value is set on a name that no
	// element of the form uses.
	ErrUnknownField = errors.New("unknown field")
)

const (
	// ExpandedIndicator is the toggle text of an open section.
	ExpandedIndicator = "-"
	// CollapsedIndicator is the toggle text of a closed section.
	CollapsedIndicator = "+"

	fallbackLabel = "This field"
)

// State holds everything that changes while a form is being filled.  It is
// plain data so it can be stored between requests.
type State struct {
	Expanded       []bool            `json:"expanded"`
	Visible        map[string]bool   `json:"visible"`
	Values         map[string]string `json:"values"`
	Messages       []string          `json:"messages"`
	ShowMessages   bool              `json:"show_messages"`
	CurrentSection int               `json:"current_section"`
}

// Entry is a label and value pair of a submitted field.
type Entry struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Result is the outcome of a submission attempt.
type Result struct {
	Valid     bool     `json:"valid"`
	Messages  []string `json:"messages"`
	Notice    string   `json:"notice,omitempty"`
	Submitted []Entry  `json:"submitted,omitempty"`
}

// SubmitAction receives the values of a valid form and returns the notice to
// show to the user.
type SubmitAction func(values map[string]string) (string, error)

// SubmitNotice is the notice returned by SimulateSubmit.
const SubmitNotice = "Form submitted successfully! Data would be processed on a real server."

// SimulateSubmit is the default SubmitAction.  Nothing is sent anywhere.
func SimulateSubmit(map[string]string) (string, error) {
	return SubmitNotice, nil
}

type fieldRef struct {
	section int
	element int
}

// Controller drives a multi-section form: it toggles sections, reveals
// dependent groups according to the form rules, validates required fields and
// simulates submission.  A Controller is not safe for concurrent use.
type Controller struct {
	form   Form
	fields map[string]fieldRef
	rules  map[string][]Rule
	action SubmitAction
	state  State
}

// NewController checks the form definition and returns a Controller in the
// initial state: first section expanded, all others collapsed, all dependent
// groups hidden.
func NewController(f Form) (*Controller, error) {
	if err := Validate(f); err != nil {
		return nil, err
	}
	ctrl := &Controller{
		form:   f,
		fields: make(map[string]fieldRef),
		rules:  make(map[string][]Rule),
		action: SimulateSubmit,
	}
	for sidx, section := range f.Sections {
		for eidx, elem := range section.Elements {
			ctrl.fields[elem.Name] = fieldRef{section: sidx, element: eidx}
		}
	}
	for _, rule := range f.Rules {
		ctrl.rules[rule.Controller] = append(ctrl.rules[rule.Controller], rule)
	}
	ctrl.Reset()
	return ctrl, nil
}

// Validate checks that a form definition is usable.
func Validate(f Form) error {
	if len(f.Sections) == 0 {
		return fmt.Errorf("%w: no sections", ErrInvalidForm)
	}
	names := make(map[string]bool)
	ids := make(map[string]bool)
	groups := make(map[string]bool)
	for sidx, section := range f.Sections {
		for _, elem := range section.Elements {
			if elem.Name == "" {
				return fmt.Errorf("%w: unnamed element in section %d", ErrInvalidForm, sidx)
			}
			if names[elem.Name] {
				return fmt.Errorf("%w: duplicate element name %q", ErrInvalidForm, elem.Name)
			}
			names[elem.Name] = true
			if ids[elem.ElementID()] {
				return fmt.Errorf("%w: duplicate element ID %q", ErrInvalidForm, elem.ElementID())
			}
			ids[elem.ElementID()] = true
			if elem.Group != "" {
				groups[elem.Group] = true
			}
		}
	}
	controlled := make(map[string]bool)
	for _, rule := range f.Rules {
		if !names[rule.Controller] {
			return fmt.Errorf("%w: rule controller %q is not an element", ErrInvalidForm, rule.Controller)
		}
		if !groups[rule.Dependent] {
			return fmt.Errorf("%w: rule dependent %q has no elements", ErrInvalidForm, rule.Dependent)
		}
		if controlled[rule.Dependent] {
			return fmt.Errorf("%w: group %q has more than one rule", ErrInvalidForm, rule.Dependent)
		}
		controlled[rule.Dependent] = true
	}
	return nil
}

// SetSubmitAction replaces the action run on a valid submission.  A nil action
// restores SimulateSubmit.
func (ctrl *Controller) SetSubmitAction(action SubmitAction) {
	if action == nil {
		action = SimulateSubmit
	}
	ctrl.action = action
}

// Form returns the form definition the controller was built from.
func (ctrl *Controller) Form() Form {
	return ctrl.form
}

// NumSections returns the number of sections in the form.
func (ctrl *Controller) NumSections() int {
	return len(ctrl.form.Sections)
}

func (ctrl *Controller) checkSection(idx int) error {
	if idx < 0 || idx >= len(ctrl.form.Sections) {
		return fmt.Errorf("%w: %d (form has %d sections)", ErrSectionRange, idx, len(ctrl.form.Sections))
	}
	return nil
}

// Toggle inverts the visibility of a single section.  Other sections are not
// affected.  Expanding a section makes it the current section.
func (ctrl *Controller) Toggle(idx int) error {
	if err := ctrl.checkSection(idx); err != nil {
		return err
	}
	expanded := !ctrl.state.Expanded[idx]
	ctrl.state.Expanded[idx] = expanded
	if expanded {
		ctrl.state.CurrentSection = idx
	}
	return nil
}

// Expanded reports whether the section at idx is open.  Out of range indices
// report false.
func (ctrl *Controller) Expanded(idx int) bool {
	if ctrl.checkSection(idx) != nil {
		return false
	}
	return ctrl.state.Expanded[idx]
}

// Indicator returns the toggle text for the section at idx.
func (ctrl *Controller) Indicator(idx int) string {
	if ctrl.Expanded(idx) {
		return ExpandedIndicator
	}
	return CollapsedIndicator
}

// CurrentSection returns the index of the section most recently expanded.
func (ctrl *Controller) CurrentSection() int {
	return ctrl.state.CurrentSection
}

// Change sets the value of the named field and re-evaluates every rule the
// field controls.
func (ctrl *Controller) Change(name, value string) error {
	if _, ok := ctrl.fields[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	ctrl.state.Values[name] = value
	for _, rule := range ctrl.rules[name] {
		ctrl.state.Visible[rule.Dependent] = value == rule.Trigger
	}
	return nil
}

// Value returns the current value of the named field.
func (ctrl *Controller) Value(name string) string {
	return ctrl.state.Values[name]
}

// Visible reports whether a dependent group is shown.  The empty group is
// always visible.
func (ctrl *Controller) Visible(group string) bool {
	if group == "" {
		return true
	}
	return ctrl.state.Visible[group]
}

// ElementVisible reports whether the named element is currently shown.
func (ctrl *Controller) ElementVisible(name string) bool {
	ref, ok := ctrl.fields[name]
	if !ok {
		return false
	}
	return ctrl.Visible(ctrl.form.Sections[ref.section].Elements[ref.element].Group)
}

// Messages returns a copy of the current validation messages.
func (ctrl *Controller) Messages() []string {
	return append([]string(nil), ctrl.state.Messages...)
}

// MessagesVisible reports whether the message panel is shown.
func (ctrl *Controller) MessagesVisible() bool {
	return ctrl.state.ShowMessages
}

func (ctrl *Controller) clearMessages() {
	ctrl.state.Messages = ctrl.state.Messages[:0]
	ctrl.state.ShowMessages = false
}

// ValidateSection clears the message list, hides the message panel and checks
// every required field of the section.  A message is added for each field
// left blank.  The panel is left hidden; showing it is up to the caller.
func (ctrl *Controller) ValidateSection(idx int) (bool, error) {
	if err := ctrl.checkSection(idx); err != nil {
		return false, err
	}
	ctrl.clearMessages()
	return ctrl.validate(idx), nil
}

// validate appends messages for the blank required fields of a section.
func (ctrl *Controller) validate(idx int) bool {
	valid := true
	for _, elem := range ctrl.form.Sections[idx].Elements {
		if !elem.Required || strings.TrimSpace(ctrl.state.Values[elem.Name]) != "" {
			continue
		}
		valid = false
		label := strings.TrimSpace(elem.Label)
		if label == "" {
			label = fallbackLabel
		}
		ctrl.state.Messages = append(ctrl.state.Messages, fmt.Sprintf("%s is required.", label))
	}
	return valid
}

// Submit validates all sections in order.  Every section is checked so the
// messages of all invalid sections are reported together.  If the form is
// invalid the message panel is shown and the values are kept.  Otherwise the
// submit action runs and the controller is reset.
func (ctrl *Controller) Submit() (Result, error) {
	ctrl.clearMessages()
	valid := true
	for idx := range ctrl.form.Sections {
		if !ctrl.validate(idx) {
			valid = false
		}
	}
	if !valid {
		ctrl.state.ShowMessages = true
		return Result{Valid: false, Messages: ctrl.Messages()}, nil
	}

	values := make(map[string]string, len(ctrl.state.Values))
	for k, v := range ctrl.state.Values {
		values[k] = v
	}
	notice, err := ctrl.action(values)
	if err != nil {
		return Result{}, fmt.Errorf("submit action failed: %w", err)
	}
	res := Result{Valid: true, Messages: []string{}, Notice: notice, Submitted: ctrl.entries()}
	ctrl.Reset()
	return res, nil
}

// entries lists the non-empty values of the shown elements in form order.
func (ctrl *Controller) entries() []Entry {
	entries := make([]Entry, 0, len(ctrl.state.Values))
	for _, section := range ctrl.form.Sections {
		for _, elem := range section.Elements {
			if !ctrl.Visible(elem.Group) {
				continue
			}
			value := strings.TrimSpace(ctrl.state.Values[elem.Name])
			if value == "" {
				continue
			}
			entries = append(entries, Entry{Name: elem.Name, Label: elem.Label, Value: value})
		}
	}
	return entries
}

// Reset returns the controller to its initial display state: all values
// cleared, dependent groups hidden, only the first section expanded and no
// messages.
func (ctrl *Controller) Reset() {
	expanded := make([]bool, len(ctrl.form.Sections))
	expanded[0] = true
	visible := make(map[string]bool, len(ctrl.form.Rules))
	for _, group := range ctrl.form.Groups() {
		visible[group] = false
	}
	ctrl.state = State{
		Expanded:       expanded,
		Visible:        visible,
		Values:         make(map[string]string, len(ctrl.fields)),
		Messages:       []string{},
		ShowMessages:   false,
		CurrentSection: 0,
	}
}

// State returns a copy of the controller state.
func (ctrl *Controller) State() State {
	st := State{
		Expanded:       append([]bool(nil), ctrl.state.Expanded...),
		Visible:        make(map[string]bool, len(ctrl.state.Visible)),
		Values:         make(map[string]string, len(ctrl.state.Values)),
		Messages:       ctrl.Messages(),
		ShowMessages:   ctrl.state.ShowMessages,
		CurrentSection: ctrl.state.CurrentSection,
	}
	if st.Messages == nil {
		st.Messages = []string{}
	}
	for k, v := range ctrl.state.Visible {
		st.Visible[k] = v
	}
	for k, v := range ctrl.state.Values {
		st.Values[k] = v
	}
	return st
}

// Restore loads a previously saved state.  A state that doesn't match the
// form (e.g. saved before the form definition changed) resets the controller
// instead and Restore reports false.  Values of unknown fields are dropped and
// the visibility of every group is recomputed from its controller value.
func (ctrl *Controller) Restore(st State) bool {
	if len(st.Expanded) != len(ctrl.form.Sections) {
		ctrl.Reset()
		return false
	}
	ctrl.Reset()
	copy(ctrl.state.Expanded, st.Expanded)
	for name, value := range st.Values {
		if _, ok := ctrl.fields[name]; ok {
			ctrl.state.Values[name] = value
		}
	}
	for _, rule := range ctrl.form.Rules {
		if _, set := st.Values[rule.Controller]; set {
			ctrl.state.Visible[rule.Dependent] = ctrl.state.Values[rule.Controller] == rule.Trigger
		}
	}
	ctrl.state.Messages = append(ctrl.state.Messages, st.Messages...)
	ctrl.state.ShowMessages = st.ShowMessages
	if ctrl.checkSection(st.CurrentSection) == nil {
		ctrl.state.CurrentSection = st.CurrentSection
	}
	return true
}
