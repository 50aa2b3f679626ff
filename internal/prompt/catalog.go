package prompt

// Hook and angle catalogs: fixed menus of creative entry points the
// auxiliary flows choose from.

// HookCategory selects a hook style for the hook-generate flow.
type HookCategory string

const (
	HookShortPunch HookCategory = "shortPunch"
	HookQuestions  HookCategory = "questions"
	HookChallenge  HookCategory = "challenge"
	HookData       HookCategory = "data"
	HookPain       HookCategory = "pain"
	HookDream      HookCategory = "dream"
	HookObjection  HookCategory = "objection"
)

// HookOption describes one hook category.
type HookOption struct {
	Key    HookCategory
	Label  string
	Helper string
}

// HookOptions lists all hook categories in menu order.
var HookOptions = []HookOption{
	{HookShortPunch, "Short punch (<40)", "Ultra-fast hook, max 40 characters."},
	{HookQuestions, "Questions", "Open with a question that sparks curiosity."},
	{HookChallenge, "Challenge hooks", "Challenge the reader with a claim or dare."},
	{HookData, "Data/number", "Use numbers or percentages as proof."},
	{HookPain, "Pain hooks", "Start from the pain point or frustration."},
	{HookDream, "Dream hooks", "Paint the desired outcome or dream."},
	{HookObjection, "Objection-busting", "Neutralize doubts or objections upfront."},
}

// HookByKey returns the option for a category, falling back to short punch
// for unknown keys so builders never fail.
func HookByKey(key HookCategory) HookOption {
	for _, opt := range HookOptions {
		if opt.Key == key {
			return opt
		}
	}
	return HookOptions[0]
}

// AngleKey selects a campaign angle for the angle-expand flow.
type AngleKey string

const (
	AngleProblemFirst     AngleKey = "problemFirst"
	AngleStatusFirst      AngleKey = "statusFirst"
	AngleValueFirst       AngleKey = "valueFirst"
	AngleSocialProofFirst AngleKey = "socialProofFirst"
	AngleCompetitorFirst  AngleKey = "competitorFirst"
	AngleFOMO             AngleKey = "fomo"
	AngleEfficiency       AngleKey = "efficiency"
	AnglePriceSensitive   AngleKey = "priceSensitive"
	AngleOldVsNew         AngleKey = "oldVsNew"
)

// AngleOption describes one campaign angle.
type AngleOption struct {
	Key    AngleKey
	Label  string
	Helper string
}

// AngleOptions lists all angles in menu order.
var AngleOptions = []AngleOption{
	{AngleProblemFirst, "Problem-first", "Start from the pain point or frustration."},
	{AngleStatusFirst, "Status-first", "Play on status, prestige, or progress."},
	{AngleValueFirst, "Value-first", "Stress the concrete result or benefit."},
	{AngleSocialProofFirst, "Social proof-first", "Use proof: customer counts, reviews, cases."},
	{AngleCompetitorFirst, "Competitor-first", "Position against the old tool or competitor."},
	{AngleFOMO, "Fear of missing out", "Limit time or slots and stress the missed chance."},
	{AngleEfficiency, "Efficiency angle", "Saves time and effort; faster, lighter, less work."},
	{AnglePriceSensitive, "Price-sensitive", "Price advantage, ROI, lower total cost."},
	{AngleOldVsNew, "Old way vs new way", "Confront the old approach with the new one."},
}

// AngleByKey returns the option for a key, falling back to problem-first for
// unknown keys so builders never fail.
func AngleByKey(key AngleKey) AngleOption {
	for _, opt := range AngleOptions {
		if opt.Key == key {
			return opt
		}
	}
	return AngleOptions[0]
}
