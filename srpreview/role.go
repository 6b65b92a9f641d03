package srpreview

import "strings"

// abstractRoles are ARIA superclass roles that authors must not use.
// Browsers that surface them anyway get them collapsed to generic.
var abstractRoles = map[string]bool{
	"command":     true,
	"composite":   true,
	"landmark":    true,
	"range":       true,
	"roletype":    true,
	"section":     true,
	"sectionhead": true,
	"select":      true,
	"structure":   true,
	"widget":      true,
	"window":      true,
}

// roleSynonyms maps canonical roles to what a screen reader says.
var roleSynonyms = map[string]string{
	"textbox":            "edit",
	"combobox":           "combo box",
	"disclosuretriangle": "button",
	"gridcell":           "cell",
	"listitem":           "list item",
	"treeitem":           "tree item",
	"listbox":            "list",
	"menuitem":           "menu item",
	"menuitemcheckbox":   "menu item checkbox",
	"menuitemradio":      "menu item radio",
	"img":                "image",
	"radiogroup":         "radio group",
	"radio":              "radio button",
	"tabpanel":           "tab panel",
	"scrollbar":          "scroll bar",
	"alertdialog":        "alert dialog",
	"menubar":            "menu bar",
	"progressbar":        "progress bar",
	"spinbutton":         "spin button",
	"columnheader":       "column header",
	"rowheader":          "row header",
	"treegrid":           "tree grid",
	"contentinfo":        "content info",
}

// NormalizeRole lowercases a raw role and collapses abstract roles to
// "generic". An empty role stays empty.
func NormalizeRole(raw string) string {
	if raw == "" {
		return ""
	}
	r := strings.ToLower(raw)
	if abstractRoles[r] {
		return "generic"
	}
	return r
}

// RoleLabel returns the spoken role for d. An author-supplied
// roledescription always wins.
func RoleLabel(d Descriptor) string {
	if rd := str(d.RoleDescription); strings.TrimSpace(rd) != "" {
		return rd
	}
	if d.Role == "" {
		return ""
	}
	if s, ok := roleSynonyms[d.Role]; ok {
		return s
	}
	return d.Role
}
