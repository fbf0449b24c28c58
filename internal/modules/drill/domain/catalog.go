package domain

// Builtins returns the drills shipped with the application. Each call
// returns fresh slices so callers cannot mutate the catalog.
func Builtins() []Drill {
	return []Drill{
		{
			ID:          "focused_breathing",
			Name:        "Focused Breathing",
			Description: "Rest attention on the breath.\n\n- Breathe naturally\n- Count **3 in, 4 out** when prompted\n- When the mind wanders, return to the breath",
			Builtin:     true,
			Cues: []Cue{
				{Offset: 0, Text: "Notice your breath. No need to change it."},
				{Offset: 30, Text: "Take a slow inhale for 3 counts, exhale for 4."},
				{Offset: 60, Text: "Return to natural breathing."},
				{Offset: 120, Text: "Continue breathing naturally."},
				{Offset: 180, Text: "Gently guide attention back to breath."},
			},
		},
		{
			ID:          "body_scan",
			Name:        "Body Scan",
			Description: "Move attention slowly from head to hands.\n\nNotice sensation without trying to change it.",
			Builtin:     true,
			Cues: []Cue{
				{Offset: 0, Text: "Notice your head and face."},
				{Offset: 30, Text: "Relax your jaw."},
				{Offset: 60, Text: "Notice your neck and shoulders."},
				{Offset: 120, Text: "Feel your chest and belly."},
				{Offset: 180, Text: "Notice your arms and hands."},
			},
		},
		{
			ID:          "attention_to_sound",
			Name:        "Attention to Sound",
			Description: "Use the sounds around you as the anchor.\n\nName each sound, then let it go.",
			Builtin:     true,
			Cues: []Cue{
				{Offset: 0, Text: "Listen to the sounds around you."},
				{Offset: 45, Text: "Name each sound silently."},
				{Offset: 90, Text: "Notice sounds near and far."},
				{Offset: 135, Text: "Return to listening."},
			},
		},
	}
}
