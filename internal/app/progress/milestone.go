package progress

import "github.com/upward-labs/upward/internal/domain"

// milestones in ascending threshold order.
var milestones = []domain.Milestone{
	domain.MilestoneQuarter,
	domain.MilestoneHalf,
	domain.MilestoneThreeQuarter,
	domain.MilestoneComplete,
}

// CheckMilestone reports the goal-progress threshold crossed between two
// observations. Inputs are clamped to [0,1]. Returns the HIGHEST threshold
// t with previous < t <= current; when a single update jumps several
// thresholds, the intermediate ones do not fire — callers only ever see
// the top crossing.
func CheckMilestone(previous, current float64) (domain.Milestone, bool) {
	previous = clamp01(previous)
	current = clamp01(current)

	var crossed domain.Milestone
	var found bool
	for _, m := range milestones {
		t := m.Threshold()
		if previous < t && t <= current {
			crossed = m
			found = true
		}
	}
	return crossed, found
}

// winSizeForMilestone sizes the auto-created milestone win.
func winSizeForMilestone(m domain.Milestone) domain.WinSize {
	switch m {
	case domain.MilestoneQuarter:
		return domain.SizeSmall
	case domain.MilestoneHalf:
		return domain.SizeMedium
	case domain.MilestoneThreeQuarter:
		return domain.SizeBig
	case domain.MilestoneComplete:
		return domain.SizeMassive
	}
	return domain.SizeSmall
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
