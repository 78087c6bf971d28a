package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

// Task icons, keyed by the icon names tasks carry.
var (
	IconZap    = "\U000F140B" // lightning
	IconLayers = "\U000F0328" // layers
	IconChart  = "\U000F0128" // chart
	IconBrain  = "\U000F09D1" // brain
)

// Status glyphs.
var (
	IconPlay    = "\uf04b"     // play
	IconPause   = "\uf04c"     // pause
	IconHourly  = "\uf252"     // hourglass
	IconCheck   = "\uf00c"     // check
	IconUnread  = "\uf444"     // dot
	IconMonitor = "\U000F0379" // monitor
)

// Notification glyphs.
var (
	IconNotifyInfo    = "\uf05a" // info-circle
	IconNotifyWarning = "\uf071" // warning
	IconNotifyError   = "\uf057" // times-circle
)

// TaskIcon returns the glyph for a task icon name, falling back to zap.
func TaskIcon(name string) string {
	switch name {
	case "layers":
		return IconLayers
	case "chart":
		return IconChart
	case "brain":
		return IconBrain
	default:
		return IconZap
	}
}
