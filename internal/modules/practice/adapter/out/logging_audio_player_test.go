package out_test

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	practiceout "focusflow/internal/modules/practice/adapter/out"
)

func TestLoggingAudioPlayerLogsCommands(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zap.DebugLevel)
	player := practiceout.NewLoggingAudioPlayer(zap.New(core))

	player.PracticeStarted("ocean")
	player.PracticePaused()
	player.PracticeResumed()
	player.PracticeEnded()

	entries := logs.All()
	if len(entries) != 4 {
		t.Fatalf("expected 4 log entries, got %d", len(entries))
	}
	if entries[0].Message != "play ambience" || entries[0].ContextMap()["environment"] != "ocean" {
		t.Fatalf("unexpected first entry %+v", entries[0])
	}
	if entries[3].LoggerName != "audio" {
		t.Fatalf("expected named logger, got %q", entries[3].LoggerName)
	}
}
