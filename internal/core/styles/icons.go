package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconScale     = "\U000F04C5" // 󰓅
	IconDocument  = " "
	IconCheckList = " "
	IconChat      = ""          //
	IconContext   = "\U000F0B76" // 󰭶
	IconPatch     = ""          //
	IconSparkle   = "\U000F04D2" // 󰓒
)

// Checklist item state icons.
var (
	IconItemDone = " "
	IconItemOpen = " "
)

// Patch status icons.
var (
	IconApplied  = " "
	IconReverted = "󰕌 "
	IconStale    = " "
)
