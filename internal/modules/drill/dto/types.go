package dto

type CueOutput struct {
	Offset int
	Text   string
}

type DrillOutput struct {
	ID          string
	Name        string
	Description string
	Builtin     bool
	Cues        []CueOutput
}
