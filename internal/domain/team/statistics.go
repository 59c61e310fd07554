package team

// Statistics is the aggregated view of one team used by reporting
// endpoints. Superlative fields are nil when the team has no members.
type Statistics struct {
	TeamID       int64
	Name         string
	MemberCount  int
	Strongest    *string
	Smartest     *string
	Fastest      *string
}

// ComputeStatistics derives the member count and the per-attribute
// superlatives of a team. Ties keep the first member encountered in
// roster order.
func ComputeStatistics(t Team) Statistics {
	stats := Statistics{
		TeamID:      t.ID,
		Name:        t.Name,
		MemberCount: len(t.Members),
	}
	if len(t.Members) == 0 {
		return stats
	}

	strongest, smartest, fastest := 0, 0, 0
	for i, member := range t.Members {
		if i == 0 {
			continue
		}
		if member.Strength > t.Members[strongest].Strength {
			strongest = i
		}
		if member.Intelligence > t.Members[smartest].Intelligence {
			smartest = i
		}
		if member.Speed > t.Members[fastest].Speed {
			fastest = i
		}
	}

	stats.Strongest = &t.Members[strongest].Name
	stats.Smartest = &t.Members[smartest].Name
	stats.Fastest = &t.Members[fastest].Name

	return stats
}
