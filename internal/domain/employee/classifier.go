package employee

import "strings"

// Classifier maps position text to a PayRuleClass. The rule is pure text
// matching: an employee is rank-and-file when the position's department
// equals the designated department (case-insensitive) or when the title
// contains every designated keyword fragment.
type Classifier struct {
	department string
	keywords   []string
}

func NewClassifier(department string, keywords []string) Classifier {
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(k)))
	}
	return Classifier{
		department: strings.ToLower(strings.TrimSpace(department)),
		keywords:   lowered,
	}
}

func (c Classifier) Classify(department, title string) PayRuleClass {
	if strings.EqualFold(strings.TrimSpace(department), c.department) && c.department != "" {
		return ClassRankAndFile
	}

	loweredTitle := strings.ToLower(title)
	if len(c.keywords) == 0 {
		return ClassExempt
	}
	for _, k := range c.keywords {
		if !strings.Contains(loweredTitle, k) {
			return ClassExempt
		}
	}
	return ClassRankAndFile
}

// IsRankAndFile is a convenience wrapper for the common eligibility check.
func (c Classifier) IsRankAndFile(e Employee) bool {
	return c.Classify(e.Department, e.PositionTitle) == ClassRankAndFile
}
