// ABOUTME: Concurrent-use tests for the aggregation engine
// ABOUTME: Runs the same aggregations from many goroutines and checks for leaks
package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/harperreed/pulse/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestConcurrentCallersAgree(t *testing.T) {
	opps := make([]models.Opportunity, 500)
	for i := range opps {
		opps[i] = models.Opportunity{
			Value:       float64(i * 10),
			Probability: float64(i % 101),
			Stage:       models.OpportunityStages[i%len(models.OpportunityStages)],
		}
	}

	wantWeighted := WeightedValue(opps, oppValue, oppProb)
	wantGroups := GroupBy(opps, func(o models.Opportunity) string { return o.Stage }, oppValue, models.OpportunityStages)

	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			assert.Equal(t, wantWeighted, WeightedValue(opps, oppValue, oppProb))
			assert.Equal(t, wantGroups, GroupBy(opps, func(o models.Opportunity) string { return o.Stage }, oppValue, models.OpportunityStages))
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
