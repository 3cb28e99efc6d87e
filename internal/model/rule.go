package model

// Rule selects zero or more nodes of a document. It carries no mutation
// logic: every selected node goes through the same rewrite.
type Rule struct {
	Desc  string `yaml:"desc" json:"desc"`
	XPath string `yaml:"xpath" json:"xpath"`
}

// Label returns a human readable identifier for logs and tables.
func (r Rule) Label() string {
	if r.Desc != "" {
		return r.Desc
	}

	return r.XPath
}

// RuleSet is the ordered list of rules read from a rules file.
type RuleSet struct {
	Origin Path
	Rules  []Rule
}

// Len returns the number of rules.
func (rs RuleSet) Len() int {
	return len(rs.Rules)
}
