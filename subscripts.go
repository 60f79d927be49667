package cgeltree

import "strings"

// SubscriptForm pairs an underscore-subscript name used in bracket notation
// with its typeset display form.
type SubscriptForm struct {
	Plain   string
	Display string
}

// SubscriptForms is the closed table of subscript-decorated names. After
// ToDisplay no underscore may remain in converted text.
var SubscriptForms = []SubscriptForm{
	{Plain: "N_pro", Display: `N\textsubscript{\textsc{pro}}`},
	{Plain: "V_aux", Display: `V\textsubscript{\textsc{aux}}`},
	{Plain: "Clause_rel", Display: `Clause\textsubscript{rel}`},
	{Plain: "Obj_dir", Display: `Obj\textsubscript{dir}`},
	{Plain: "Obj_ind", Display: `Obj\textsubscript{ind}`},
	{Plain: "Comp_ind", Display: `Comp\textsubscript{ind}`},
}

// IsSubscriptForm reports whether name is one of the tabulated plain forms,
// in which case its underscore is not a coindexation separator.
func IsSubscriptForm(name string) bool {
	for _, form := range SubscriptForms {
		if form.Plain == name {
			return true
		}
	}

	return false
}

// ToDisplay replaces every tabulated plain form in s with its display form.
func ToDisplay(s string) string {
	for _, form := range SubscriptForms {
		s = strings.ReplaceAll(s, form.Plain, form.Display)
	}

	return s
}

// FromDisplay is the inverse of ToDisplay.
func FromDisplay(s string) string {
	for _, form := range SubscriptForms {
		s = strings.ReplaceAll(s, form.Display, form.Plain)
	}

	return s
}
