package knowledge

// Entry is one FAQ record. Question is display text only; matching uses Keywords.
type Entry struct {
	Question string   `json:"question" yaml:"question"`
	Answer   string   `json:"answer" yaml:"answer"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

func (e Entry) clone() Entry {
	e.Keywords = append([]string(nil), e.Keywords...)
	return e
}
