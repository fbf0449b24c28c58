package out

import (
	"go.uber.org/zap"

	practiceout "focusflow/internal/modules/practice/port/out"
)

// LoggingAudioPlayer records playback commands instead of playing sound.
type LoggingAudioPlayer struct {
	logger *zap.Logger
}

func NewLoggingAudioPlayer(logger *zap.Logger) practiceout.AudioPlayer {
	return &LoggingAudioPlayer{logger: logger.Named("audio")}
}

func (p *LoggingAudioPlayer) PracticeStarted(environment string) {
	p.logger.Debug("play ambience", zap.String("environment", environment))
}

func (p *LoggingAudioPlayer) PracticePaused() { p.logger.Debug("pause ambience") }

func (p *LoggingAudioPlayer) PracticeResumed() { p.logger.Debug("resume ambience") }

func (p *LoggingAudioPlayer) PracticeEnded() { p.logger.Debug("stop ambience") }
