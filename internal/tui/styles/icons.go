package styles

const (
	CheckIcon   string = "✓"
	ErrorIcon   string = "✗"
	WarningIcon string = "⚠"

	RunningIcon string = "▶"
	StoppedIcon string = "■"
	PausedIcon  string = "⏸"
	SelectIcon  string = "›"
)
