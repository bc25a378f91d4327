package rank

import "github.com/poiesic/sift/core"

// Monitor provides hooks to observe the ranking process.
// Implement this interface to track intermediate steps and results during a Rank call.
type Monitor interface {
	Start(view core.View, criteria string)
	AfterRetrieval(candidates []core.Candidate)
	ClassificationFailed(identity core.Identity, err error)
	AfterClassification(outcomes []core.ClassificationOutcome)
	Finish(results []*core.RankedResult)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ core.View, _ string)                        {}
func (n *noopMonitor) AfterRetrieval(_ []core.Candidate)                  {}
func (n *noopMonitor) ClassificationFailed(_ core.Identity, _ error)      {}
func (n *noopMonitor) AfterClassification(_ []core.ClassificationOutcome) {}
func (n *noopMonitor) Finish(_ []*core.RankedResult)                      {}
