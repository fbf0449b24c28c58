package out

// AudioPlayer receives playback commands for practice background audio.
type AudioPlayer interface {
	PracticeStarted(environment string)
	PracticePaused()
	PracticeResumed()
	PracticeEnded()
}

type Metrics interface {
	PracticeStarted(drillID string)
	PracticeCompleted()
	PracticeEndedEarly()
	SessionSkipped()
	SessionLogged(xpEarned, totalXP int)
}
