package risk

// Tier 表示 triage 对话累计出的风险层级。
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

// String returns the wire label for the tier.
func (t Tier) String() string {
	switch t {
	case TierMedium:
		return "medium"
	case TierHigh:
		return "high"
	default:
		return "low"
	}
}

// MarshalText lets tiers serialize as their wire labels.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

type optionKey struct {
	Question int
	Option   int
}

// severityFloor maps a selected option to the minimum tier it forces.
// Options absent from the table carry no signal. Self-harm options dominate
// every other answer, hence the unconditional TierHigh entries.
var severityFloor = map[optionKey]Tier{
	// Hopelessness frequency: the two most severe options.
	{Question: 1, Option: 2}: TierMedium,
	{Question: 1, Option: 3}: TierMedium,
	// Self-harm ideation.
	{Question: 2, Option: 1}: TierMedium,
	{Question: 2, Option: 2}: TierHigh,
	{Question: 2, Option: 3}: TierHigh,
}

// supportQuestion is the social-support turn whose "no one" option only
// escalates an already elevated tier, never a TierLow baseline.
const (
	supportQuestion    = 3
	supportNoOneOption = 3
)

// Accumulate folds one answered option into the running tier. The result
// never falls below current: tiers are monotonic across a dialogue.
func Accumulate(current Tier, question, option int) Tier {
	if question == supportQuestion && option == supportNoOneOption {
		if current > TierLow {
			return TierHigh
		}
		return current
	}

	floor, ok := severityFloor[optionKey{Question: question, Option: option}]
	if !ok {
		return current
	}
	if floor > current {
		return floor
	}
	return current
}

// Raises reports whether answering option on question would lift the tier.
func Raises(current Tier, question, option int) bool {
	return Accumulate(current, question, option) > current
}
