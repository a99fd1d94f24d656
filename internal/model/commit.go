package model

// Commit is one entry of the lesson's version history panel.
type Commit struct {
	ID        string
	Message   string
	Author    string
	Date      string
	Branch    string
	IsCurrent bool
}

// CommitsByBranch groups commits by branch preserving the order inside each
// branch. Branch iteration order follows first appearance.
func CommitsByBranch(commits []Commit) (branches []string, grouped map[string][]Commit) {
	grouped = map[string][]Commit{}
	for _, c := range commits {
		if _, ok := grouped[c.Branch]; !ok {
			branches = append(branches, c.Branch)
		}
		grouped[c.Branch] = append(grouped[c.Branch], c)
	}
	return branches, grouped
}
